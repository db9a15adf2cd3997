package typeinfer

import (
	"github.com/errikos/hopes/internal/term"
	"github.com/errikos/hopes/internal/types"
	"github.com/errikos/hopes/internal/typesolve"
)

// Group infers one dependency group: fabricate tentative types, collect
// constraints per clause, solve once, propagate the solution through the
// group's tree, and install the generalized result into outerEnv.
func Group[I any](outerEnv *types.Env, fresh *term.Fresher, g term.Group[I]) (term.Group[TypedInfo[I]], error) {
	groupEnv := outerEnv.Extend()

	// Step 1: fabricate the most-general tentative type for every
	// predicate defined in this group.
	tentative := make(map[types.Key]types.Type, len(g.Preds))
	for _, pd := range g.Preds {
		t := types.MostGeneral(fresh, pd.Arity)
		tentative[types.Key{Name: pd.Name, Arity: pd.Arity}] = t
		// Step 2: bind the tentative monomorphic type (no quantified
		// variables) so every use within the group, including recursive
		// self-calls, resolves to the very same type variables.
		groupEnv.Bind(pd.Name, pd.Arity, types.Monomorphic(t))
	}

	var allCons []Cons[I]
	typedPreds := make([]term.PredDef[TypedInfo[I]], len(g.Preds))
	for i, pd := range g.Preds {
		typedClauses := make([]term.Clause[TypedInfo[I]], len(pd.Clauses))
		for j, cl := range pd.Clauses {
			tc, cs, err := inferClause(groupEnv, fresh, cl)
			if err != nil {
				return term.Group[TypedInfo[I]]{}, err
			}
			typedClauses[j] = tc
			allCons = append(allCons, cs...)
		}
		typedPreds[i] = term.PredDef[TypedInfo[I]]{Name: pd.Name, Arity: pd.Arity, Clauses: typedClauses}
	}

	// Step 3: solve every constraint collected across the whole group.
	sigma, err := typesolve.Solve(allCons)
	if err != nil {
		return term.Group[TypedInfo[I]]{}, err
	}

	// Step 4: apply sigma to every payload in the group's syntax tree, and
	// to the tentative predicate types.
	finalPreds := make([]term.PredDef[TypedInfo[I]], len(typedPreds))
	for i, pd := range typedPreds {
		clauses := make([]term.Clause[TypedInfo[I]], len(pd.Clauses))
		for j, cl := range pd.Clauses {
			clauses[j] = applySigmaClause(sigma, cl)
		}
		finalPreds[i] = term.PredDef[TypedInfo[I]]{Name: pd.Name, Arity: pd.Arity, Clauses: clauses}
	}

	// Step 5: generalize and install into the outer environment. Free
	// means: not appearing in the ambient environment at group entry.
	ambient := outerEnv.FreeVars()
	for _, pd := range g.Preds {
		key := types.Key{Name: pd.Name, Arity: pd.Arity}
		solved := types.Apply(sigma, tentative[key])
		poly := types.Generalize(ambient, solved)
		outerEnv.Bind(pd.Name, pd.Arity, poly)
	}

	return term.Group[TypedInfo[I]]{Preds: finalPreds}, nil
}

// inferClause types one clause. The head is typed with all
// head-variables bound to fresh α's (naturally, since the head is
// processed first against a clause-local existentials map); the body
// reuses those same bindings.
func inferClause[I any](env *types.Env, fresh *term.Fresher, cl term.Clause[I]) (term.Clause[TypedInfo[I]], []Cons[I], error) {
	c := &ctx[I]{env: env, fresh: fresh, exists: map[string]types.Type{}}
	vs := &varScope{table: map[string]types.Type{}}

	flat := cl.Head.FlatArgs()
	typedArgs, argTs, err := c.inferArgs(vs, flat)
	if err != nil {
		return term.Clause[TypedInfo[I]]{}, nil, err
	}

	headPoly := types.FindPoly(env, fresh, cl.Head.Name, cl.Head.InferredArity)
	phi := types.FreshPhi(fresh)
	// headOrigin is a synthetic reference node used only so the constraint
	// carries *some* origin; callers that need precise origins can walk
	// the clause themselves since every sub-constraint already carries its
	// own expression node.
	var headOrigin term.Expr[I]
	if len(flat) > 0 {
		headOrigin = flat[0]
	}
	c.emit(headPoly, types.Fun{Args: argTs, Ret: phi}, headOrigin)
	headType := types.Type(phi)

	typedHead := rebuildHead(cl.Head, typedArgs, c, headType)

	var typedBody *term.ClauseBody[TypedInfo[I]]
	switch {
	case cl.Body == nil:
		c.emit(headType, types.Prop{}, headOrigin)
	case cl.Body.Gets == term.Mono:
		c.emit(headType, types.Prop{}, headOrigin)
		bodyExpr, bodyT, err := c.exprNode(vs, cl.Body.Expr)
		if err != nil {
			return term.Clause[TypedInfo[I]]{}, nil, err
		}
		c.emit(bodyT, types.Prop{}, cl.Body.Expr)
		typedBody = &term.ClauseBody[TypedInfo[I]]{Gets: term.Mono, Expr: bodyExpr}
	default: // term.Poly
		bodyExpr, bodyT, err := c.exprNode(vs, cl.Body.Expr)
		if err != nil {
			return term.Clause[TypedInfo[I]]{}, nil, err
		}
		c.emit(bodyT, headType, cl.Body.Expr)
		typedBody = &term.ClauseBody[TypedInfo[I]]{Gets: term.Poly, Expr: bodyExpr}
	}

	return term.Clause[TypedInfo[I]]{Head: typedHead, Body: typedBody}, c.cs, nil
}

func rebuildHead[I any](h term.SHead[I], flatTyped []term.Expr[TypedInfo[I]], c *ctx[I], headType types.Type) term.SHead[TypedInfo[I]] {
	groups := make([][]term.Expr[TypedInfo[I]], len(h.Args))
	idx := 0
	for i, grp := range h.Args {
		g2 := make([]term.Expr[TypedInfo[I]], len(grp))
		for j := range grp {
			g2[j] = flatTyped[idx]
			idx++
		}
		groups[i] = g2
	}
	return term.SHead[TypedInfo[I]]{
		Payload:       c.info(headType, h.Payload),
		Name:          h.Name,
		Args:          groups,
		InferredArity: h.InferredArity,
	}
}

func applySigmaClause[I any](sigma types.Subst, cl term.Clause[TypedInfo[I]]) term.Clause[TypedInfo[I]] {
	groups := make([][]term.Expr[TypedInfo[I]], len(cl.Head.Args))
	for i, grp := range cl.Head.Args {
		g2 := make([]term.Expr[TypedInfo[I]], len(grp))
		for j, a := range grp {
			g2[j] = applySigmaExpr(sigma, a)
		}
		groups[i] = g2
	}
	head := term.SHead[TypedInfo[I]]{
		Payload:       applySigmaInfo(sigma, cl.Head.Payload),
		Name:          cl.Head.Name,
		Args:          groups,
		InferredArity: cl.Head.InferredArity,
	}
	var body *term.ClauseBody[TypedInfo[I]]
	if cl.Body != nil {
		body = &term.ClauseBody[TypedInfo[I]]{Gets: cl.Body.Gets, Expr: applySigmaExpr(sigma, cl.Body.Expr)}
	}
	return term.Clause[TypedInfo[I]]{Head: head, Body: body}
}

func applySigmaExpr[I any](sigma types.Subst, e term.Expr[TypedInfo[I]]) term.Expr[TypedInfo[I]] {
	return term.MapInfo(e, func(ti TypedInfo[I]) TypedInfo[I] {
		return applySigmaInfo(sigma, ti)
	})
}

func applySigmaInfo[I any](sigma types.Subst, ti TypedInfo[I]) TypedInfo[I] {
	return TypedInfo[I]{Type: types.Apply(sigma, ti.Type), Orig: ti.Orig}
}
