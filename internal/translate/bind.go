package translate

import (
	"github.com/go-sequel/sequel/internal/clause"
	"github.com/go-sequel/sequel/pkg/node"
)

// translateBind resolves v's arguments against outerEnv (the scope at
// the point Bind was reached — a lateral join's left side, or a Fun
// argument's enclosing row) and makes them available as Var
// substitutions while translating v's inner pipeline.
func (tr *Translator) translateBind(v *node.BindNode, tc *tctx, outerEnv *environment) (*builder, error) {
	frame := make(map[string]clause.Expr, len(v.Args))
	for _, a := range v.Args {
		e, err := tr.itemExpr(a, outerEnv, nil, tc)
		if err != nil {
			return nil, err
		}
		frame[a.Label] = e
	}
	tc2 := tc.withVars(frame)
	return tr.translate(v.Tail(), tc2)
}
