package translate

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-sequel/sequel/internal/clause"
	"github.com/go-sequel/sequel/pkg/node"
)

// infixOps is the set of normalized operator names (node.normalizeOperator's
// output) rendered as clause.Op rather than clause.Fun. "is null" is the
// one postfix-unary entry; "not" is prefix-unary; everything else here
// is binary infix.
var infixOps = map[string]bool{
	"=": true, "<>": true, "<": true, "<=": true, ">": true, ">=": true,
	"and": true, "or": true, "not": true, "like": true, "is null": true,
	"+": true, "-": true, "*": true, "/": true, "%": true,
}

// expr translates one scalar Semantic IR node into a clause.Expr
// against env (the row currently in scope), win (the innermost
// enclosing Partition's window spec, or nil), and tc (lexical CTE/Var
// bindings).
func (tr *Translator) expr(n node.Node, env *environment, win *clause.Partition, tc *tctx) (clause.Expr, error) {
	switch v := n.(type) {
	case *node.GetNode:
		return tr.getExpr(v, env)
	case *node.VarNode:
		if e, ok := tc.lookupVar(v.Name); ok {
			return e, nil
		}
		return &clause.Var{Name: v.Name}, nil
	case *node.LitNode:
		return litExpr(v.Value), nil
	case *node.FunNode:
		return tr.funExpr(v, env, win, tc)
	case *node.AggNode:
		return tr.aggExpr(v, env, win, tc)
	case *node.SortNode:
		return tr.expr(v.Value, env, win, tc)
	case *node.AsNode:
		return tr.expr(v.Input, env, win, tc)
	default:
		return nil, fmt.Errorf("translate: unsupported scalar node %T", n)
	}
}

func (tr *Translator) getExpr(g *node.GetNode, env *environment) (clause.Expr, error) {
	binding, ok := tr.types.Gets[g]
	var path []string
	if ok {
		path = binding.Path
	} else {
		path = flattenGetPath(g)
	}
	e := env
	var b *binding
	for i, name := range path {
		bd, ok := e.get(name)
		if !ok {
			return nil, fmt.Errorf("translate: column %q not found", name)
		}
		b = bd
		if i < len(path)-1 {
			if bd.nested == nil {
				return nil, fmt.Errorf("translate: %q is not a nested record", name)
			}
			e = bd.nested
		}
	}
	return b.expr, nil
}

func flattenGetPath(g *node.GetNode) []string {
	var names []string
	for g != nil {
		names = append([]string{g.Name}, names...)
		g = g.Inner
	}
	return names
}

func (tr *Translator) funExpr(v *node.FunNode, env *environment, win *clause.Partition, tc *tctx) (clause.Expr, error) {
	args := make([]clause.Expr, len(v.Args))
	for i, a := range v.Args {
		if isPipelineNode(a) {
			e, err := tr.subqueryExpr(a, env, tc)
			if err != nil {
				return nil, err
			}
			args[i] = e
			continue
		}
		e, err := tr.expr(a, env, win, tc)
		if err != nil {
			return nil, err
		}
		args[i] = e
	}
	if infixOps[v.Name] {
		return &clause.Op{Name: v.Name, Args: args}, nil
	}
	if v.Name == "in" && len(args) == 2 {
		if _, ok := args[1].(*clause.Subquery); ok {
			return &clause.Op{Name: v.Name, Args: args}, nil
		}
	}
	if v.Name == "count" && len(args) == 0 {
		args = []clause.Expr{&clause.Kw{Text: "*"}}
	}
	if v.Name == "concat" && len(args) >= 2 && tr.dialect.StringConcatOp == "||" {
		return &clause.Fun{Template: strings.Repeat("? || ", len(args)-1) + "?", Args: args}, nil
	}
	return &clause.Fun{Name: v.Name, Args: args}, nil
}

func (tr *Translator) aggExpr(v *node.AggNode, env *environment, win *clause.Partition, tc *tctx) (clause.Expr, error) {
	scope := env.aggregateScope
	if scope == nil {
		scope = env
	}
	args := make([]clause.Expr, len(v.Args))
	for i, a := range v.Args {
		e, err := tr.expr(a, scope, win, tc)
		if err != nil {
			return nil, err
		}
		args[i] = e
	}
	if v.Name == "count" && len(args) == 0 {
		args = []clause.Expr{&clause.Kw{Text: "*"}}
	}
	var filter clause.Expr
	if v.Filter != nil {
		var err error
		filter, err = tr.expr(v.Filter, scope, win, tc)
		if err != nil {
			return nil, err
		}
	}
	agg := &clause.Agg{Name: v.Name, Args: args, Filter: filter}
	if win != nil {
		agg.Over = &clause.WindowDef{Spec: win}
	}
	return agg, nil
}

// subqueryExpr translates a Fun argument that is itself a pipeline
// into a parenthesized scalar subquery,
// correlated via translateBind when the pipeline is Bind-wrapped.
func (tr *Translator) subqueryExpr(n node.Node, env *environment, tc *tctx) (clause.Expr, error) {
	var b *builder
	var err error
	if bn, ok := n.(*node.BindNode); ok {
		b, err = tr.translateBind(bn, tc, env)
	} else {
		b, err = tr.translate(n, tc)
	}
	if err != nil {
		return nil, err
	}
	needed := tr.neededNamesFor(n)
	sel := tr.finishSelect(b, needed)
	return &clause.Subquery{Select: sel}, nil
}

func litExpr(value any) clause.Expr {
	switch v := value.(type) {
	case nil:
		return &clause.Lit{Kind: clause.LitNull}
	case bool:
		return &clause.Lit{Kind: clause.LitBool, Value: v}
	case string:
		return &clause.Lit{Kind: clause.LitString, Value: v}
	case time.Time:
		return &clause.Lit{Kind: clause.LitDate, Value: v}
	default:
		return &clause.Lit{Kind: clause.LitNumber, Value: v}
	}
}

// itemExpr translates one Select/Define/Group/Partition/Bind item,
// peeling a scalar-position As wrapper (which only supplies the
// label, already captured in item.Label) before translating its value.
func (tr *Translator) itemExpr(item node.Item, env *environment, win *clause.Partition, tc *tctx) (clause.Expr, error) {
	v := item.Value
	if as, ok := v.(*node.AsNode); ok && !isPipelineNode(as.Input) {
		v = as.Input
	}
	return tr.expr(v, env, win, tc)
}

func isPipelineNode(n node.Node) bool {
	switch v := n.(type) {
	case *node.FromNode, *node.WhereNode, *node.SelectNode, *node.DefineNode,
		*node.JoinNode, *node.AppendNode, *node.IterateNode, *node.WithNode,
		*node.WithExternalNode, *node.BindNode, *node.GroupNode, *node.PartitionNode,
		*node.OrderNode, *node.LimitNode:
		return true
	case *node.AsNode:
		return isPipelineNode(v.Input)
	default:
		return false
	}
}

// exprReferencesAgg reports whether n contains an Agg call anywhere in
// its own (non-pipeline-crossing) expression tree, used to route a
// post-Group Where into HAVING instead of WHERE.
func exprReferencesAgg(n node.Node) bool {
	switch v := n.(type) {
	case *node.AggNode:
		return true
	case *node.FunNode:
		for _, a := range v.Args {
			if !isPipelineNode(a) && exprReferencesAgg(a) {
				return true
			}
		}
		return false
	case *node.SortNode:
		return exprReferencesAgg(v.Value)
	case *node.AsNode:
		return !isPipelineNode(v.Input) && exprReferencesAgg(v.Input)
	default:
		return false
	}
}
