package node_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/go-sequel/sequel/pkg/node"
)

func TestSelect_DuplicateLabel_Panics(t *testing.T) {
	defer func() {
		r := recover()
		if assert.NotNil(t, r) {
			_, ok := r.(error)
			assert.True(t, ok)
		}
	}()
	node.Select(node.From("person"), node.Get("person_id"), node.Get("person_id"))
}

func TestSelect_DuplicateLabel_CollectsEveryCollision(t *testing.T) {
	defer func() {
		r := recover()
		err, ok := r.(error)
		if !assert.True(t, ok) {
			return
		}
		// Two independent collisions (a, a) and (b, b) must both surface,
		// not just the first.
		assert.Contains(t, err.Error(), `"a"`)
		assert.Contains(t, err.Error(), `"b"`)
	}()
	node.Select(node.From("person"),
		node.Labeled("a", node.Get("person_id")),
		node.Labeled("a", node.Get("year_of_birth")),
		node.Labeled("b", node.Get("gender_concept_id")),
		node.Labeled("b", node.Get("location_id")),
	)
}

func TestWith_DuplicateCTELabel_Panics(t *testing.T) {
	assert.Panics(t, func() {
		node.With(node.From("person"),
			node.CTE("x", node.From("person")),
			node.CTE("x", node.From("location")),
		)
	})
}

func TestBind_DuplicateArgLabel_Panics(t *testing.T) {
	assert.Panics(t, func() {
		node.Bind(node.From("person"),
			node.Labeled("p", node.Lit(1)),
			node.Labeled("p", node.Lit(2)),
		)
	})
}

func TestAgg_InvalidArity_Panics(t *testing.T) {
	assert.Panics(t, func() {
		node.Agg("sum") // sum requires exactly one argument
	})
}

func TestAgg_UnknownFunction_NeverErrors(t *testing.T) {
	assert.NotPanics(t, func() {
		node.Agg("my_custom_agg", node.Get("x"), node.Get("y"), node.Get("z"))
	})
}

func TestFun_NormalizesOperatorNames(t *testing.T) {
	f := node.Fun("==", node.Lit(1), node.Lit(2)).(*node.FunNode)
	assert.Equal(t, "=", f.Name)

	f = node.Fun("!=", node.Lit(1), node.Lit(2)).(*node.FunNode)
	assert.Equal(t, "<>", f.Name)

	f = node.Fun("&&", node.Lit(true), node.Lit(false)).(*node.FunNode)
	assert.Equal(t, "and", f.Name)
}

func TestLit_PassesThroughExistingNode(t *testing.T) {
	g := node.Get("x")
	assert.Same(t, g, node.Lit(g))
}

func TestGet_BuildsInnerChainRootFirst(t *testing.T) {
	g := node.Get("l", "state")
	assert.Equal(t, "state", g.Name)
	if assert.NotNil(t, g.Inner) {
		assert.Equal(t, "l", g.Inner.Name)
		assert.Nil(t, g.Inner.Inner)
	}
}

func TestLabel_DefaultsFromNodeKind(t *testing.T) {
	name, ok := node.Label(node.Get("person_id"))
	assert.True(t, ok)
	assert.Equal(t, "person_id", name)

	name, ok = node.Label(node.As("n", node.Get("person_id")))
	assert.True(t, ok)
	assert.Equal(t, "n", name)

	_, ok = node.Label(node.Lit(1))
	assert.False(t, ok)
}
