package node

import (
	"fmt"

	"go.uber.org/multierr"
)

// Item is a single labeled entry in a Select/Define/With/Bind/Group/
// Partition item list: an output column name paired with the Node that
// produces it.
type Item struct {
	Label string
	Value Node
}

// Labeled explicitly pairs a label with a value, equivalent to the
// source language's `name => value` pair sugar.
func Labeled(label string, value Node) Item {
	return Item{Label: label, Value: value}
}

// buildItems derives a label for each Node (via As, or the node kind's
// default) and raises DuplicateLabelError for any label collision within
// the list. kind names the caller (e.g. "Select") for error paths.
//
// Multiple collisions found while scanning one list are collected with
// multierr instead of stopping at the first one, so a caller sees every
// duplicate in a single construction-time error.
func buildItems(kind string, nodes []Node) ([]Item, error) {
	items := make([]Item, len(nodes))
	seen := make(map[string]bool, len(nodes))
	var errs error
	for i, n := range nodes {
		label, ok := Label(n)
		if !ok {
			label = fmt.Sprintf("_%d", i+1)
		}
		if seen[label] {
			errs = multierr.Append(errs, &DuplicateLabelError{Label: label, Path: []string{kind}})
		}
		seen[label] = true
		items[i] = Item{Label: label, Value: n}
	}
	return items, errs
}

// mustBuildItems panics on a construction error, matching the rest of the
// package's "constructors panic, the compiler returns errors" convention:
// a DuplicateLabel is a programmer mistake in the query shape, detected
// the moment the offending node is built, not a runtime/data condition.
func mustBuildItems(kind string, nodes []Node) []Item {
	items, err := buildItems(kind, nodes)
	if err != nil {
		panic(err)
	}
	return items
}
