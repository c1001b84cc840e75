// Package fixtures holds the worked example queries the demo CLI
// renders, built directly against pkg/node over a small in-memory
// catalog (person/location/condition_occurrence), matching spec.md §8's
// concrete end-to-end scenarios.
package fixtures

import (
	"sort"

	"github.com/go-sequel/sequel/pkg/catalog"
	"github.com/go-sequel/sequel/pkg/node"
)

// Catalog builds the small table set the fixtures query against.
func Catalog() (*catalog.Table, *catalog.Table, *catalog.Table, error) {
	person, err := catalog.NewTable("person", []string{
		"person_id", "year_of_birth", "gender_concept_id", "location_id",
	})
	if err != nil {
		return nil, nil, nil, err
	}
	location, err := catalog.NewTable("location", []string{"location_id", "state"})
	if err != nil {
		return nil, nil, nil, err
	}
	condition, err := catalog.NewTable("condition_occurrence", []string{
		"person_id", "condition_concept_id",
	})
	if err != nil {
		return nil, nil, nil, err
	}
	return person, location, condition, nil
}

// Query is one named, renderable fixture.
type Query struct {
	Name string
	Node node.Node
}

// All returns every fixture, sorted by name.
func All() []Query {
	byBirthYear := node.Where(node.From("person"), node.Eq(node.Get("year_of_birth"), node.Lit(1980)))
	q1 := node.Select(byBirthYear, node.Get("person_id"))

	grouped := node.Group(node.From("person"), node.Get("year_of_birth"))
	q2 := node.Select(grouped, node.Get("year_of_birth"), node.Agg("count"))

	loc := node.As("l", node.From("location"))
	joined := node.Join(node.From("person"), loc,
		node.Eq(node.Get("location_id"), node.Get("l", "location_id")),
		node.Left())
	q3 := node.Select(joined, node.Get("person_id"), node.Get("l", "state"))

	qs := []Query{
		{Name: "person-by-birth-year", Node: q1},
		{Name: "person-count-by-birth-year", Node: q2},
		{Name: "person-location-join", Node: q3},
	}
	sort.Slice(qs, func(i, j int) bool { return qs[i].Name < qs[j].Name })
	return qs
}

// Get returns the named fixture, or ok=false.
func Get(name string) (Query, bool) {
	for _, q := range All() {
		if q.Name == name {
			return q, true
		}
	}
	return Query{}, false
}

// Names returns every fixture name, sorted.
func Names() []string {
	qs := All()
	names := make([]string, len(qs))
	for i, q := range qs {
		names[i] = q.Name
	}
	return names
}
