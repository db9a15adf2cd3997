package typeinfer

import (
	"github.com/errikos/hopes/internal/errs"
	"github.com/errikos/hopes/internal/term"
	"github.com/errikos/hopes/internal/types"
)

func (c *ctx[I]) emit(a, b types.Type, origin term.Expr[I]) {
	c.cs = append(c.cs, Cons[I]{A: a, B: b, Origin: origin})
}

// exprNode infers e under the given lambda-parameter scope, returning the
// typed node (with unsolved, pre-substitution types in its payloads) and
// e's own type.
func (c *ctx[I]) exprNode(vs *varScope, e term.Expr[I]) (term.Expr[TypedInfo[I]], types.Type, error) {
	switch n := e.(type) {

	case term.Number[I]:
		t := types.Type(types.Individual{})
		return term.Number[TypedInfo[I]]{Payload: c.info(t, n.Payload), IsFloat: n.IsFloat, Int: n.Int, Float: n.Float}, t, nil

	case term.Const[I]:
		var t types.Type
		if n.IsPredicate {
			t = types.FindPoly(c.env, c.fresh, n.Name, n.InferredArity)
		} else {
			t = types.Individual{}
		}
		return term.Const[TypedInfo[I]]{Payload: c.info(t, n.Payload), Name: n.Name, IsPredicate: n.IsPredicate, GivenArity: n.GivenArity, InferredArity: n.InferredArity}, t, nil

	case term.PredConst[I]:
		t := types.FindPoly(c.env, c.fresh, n.Name, n.InferredArity)
		return term.PredConst[TypedInfo[I]]{Payload: c.info(t, n.Payload), Name: n.Name, GivenArity: n.GivenArity, InferredArity: n.InferredArity}, t, nil

	case term.Var[I]:
		t := c.lookupVar(vs, n.Name)
		return term.Var[TypedInfo[I]]{Payload: c.info(t, n.Payload), Name: n.Name}, t, nil

	case term.AnonVar[I]:
		t := types.FreshAlpha(c.fresh)
		return term.AnonVar[TypedInfo[I]]{Payload: c.info(t, n.Payload)}, t, nil

	case term.App[I]:
		return c.inferApp(vs, n, e)

	case term.Op[I]:
		return c.inferOp(vs, n, e)

	case term.List[I]:
		return c.inferList(vs, n, e)

	case term.Eq[I]:
		lhs, lt, err := c.exprNode(vs, n.Lhs)
		if err != nil {
			return nil, nil, err
		}
		rhs, rt, err := c.exprNode(vs, n.Rhs)
		if err != nil {
			return nil, nil, err
		}
		c.emit(lt, rt, e)
		t := types.Type(types.Prop{})
		return term.Eq[TypedInfo[I]]{Payload: c.info(t, n.Payload), Lhs: lhs, Rhs: rhs}, t, nil

	case term.Lam[I]:
		return c.inferLam(vs, n, e)

	case term.Paren[I]:
		inner, it, err := c.exprNode(vs, n.Inner)
		if err != nil {
			return nil, nil, err
		}
		return term.Paren[TypedInfo[I]]{Payload: c.info(it, n.Payload), Inner: inner}, it, nil

	case term.Ann[I]:
		return nil, nil, errs.New(errs.NotImpl, "type annotations are reserved and not yet supported")

	default:
		return nil, nil, errs.New(errs.NotImpl, "unrecognized expression node")
	}
}

func (c *ctx[I]) info(t types.Type, orig I) TypedInfo[I] {
	return TypedInfo[I]{Type: t, Orig: orig}
}

// lookupVar implements "lookup in env; else in exists; else fresh α and
// record in exists under name v".
func (c *ctx[I]) lookupVar(vs *varScope, name string) types.Type {
	if t, ok := vs.lookup(name); ok {
		return t
	}
	if t, ok := c.exists[name]; ok {
		return t
	}
	t := types.FreshAlpha(c.fresh)
	c.exists[name] = t
	return t
}

func (c *ctx[I]) inferArgs(vs *varScope, args []term.Expr[I]) ([]term.Expr[TypedInfo[I]], []types.Type, error) {
	typed := make([]term.Expr[TypedInfo[I]], len(args))
	typs := make([]types.Type, len(args))
	for i, a := range args {
		ta, tt, err := c.exprNode(vs, a)
		if err != nil {
			return nil, nil, err
		}
		typed[i] = ta
		typs[i] = tt
	}
	return typed, typs, nil
}

func (c *ctx[I]) inferApp(vs *varScope, n term.App[I], origin term.Expr[I]) (term.Expr[TypedInfo[I]], types.Type, error) {
	head, headT, err := c.exprNode(vs, n.Head)
	if err != nil {
		return nil, nil, err
	}
	args, argTs, err := c.inferArgs(vs, n.Args)
	if err != nil {
		return nil, nil, err
	}

	if hc, ok := n.Head.(term.Const[I]); ok && !hc.IsPredicate {
		// Functional application of a non-predicate constant: the result and
		// every argument are individuals.
		for _, at := range argTs {
			c.emit(at, types.Individual{}, origin)
		}
		t := types.Type(types.Individual{})
		return term.App[TypedInfo[I]]{Payload: c.info(t, n.Payload), Head: head, Args: args}, t, nil
	}

	phi := types.FreshPhi(c.fresh)
	c.emit(headT, types.Fun{Args: argTs, Ret: phi}, origin)
	return term.App[TypedInfo[I]]{Payload: c.info(phi, n.Payload), Head: head, Args: args}, phi, nil
}

func (c *ctx[I]) inferOp(vs *varScope, n term.Op[I], origin term.Expr[I]) (term.Expr[TypedInfo[I]], types.Type, error) {
	args, argTs, err := c.inferArgs(vs, n.Args)
	if err != nil {
		return nil, nil, err
	}
	if !n.IsPredicate {
		for _, at := range argTs {
			c.emit(at, types.Individual{}, origin)
		}
		t := types.Type(types.Individual{})
		return term.Op[TypedInfo[I]]{Payload: c.info(t, n.Payload), Name: n.Name, IsPredicate: false, Args: args}, t, nil
	}
	phi := types.FreshPhi(c.fresh)
	poly := types.FindPoly(c.env, c.fresh, n.Name, len(n.Args))
	c.emit(poly, types.Fun{Args: argTs, Ret: phi}, origin)
	return term.Op[TypedInfo[I]]{Payload: c.info(phi, n.Payload), Name: n.Name, IsPredicate: true, Args: args}, phi, nil
}

func (c *ctx[I]) inferList(vs *varScope, n term.List[I], origin term.Expr[I]) (term.Expr[TypedInfo[I]], types.Type, error) {
	elems := make([]term.Expr[TypedInfo[I]], len(n.Elements))
	for i, el := range n.Elements {
		te, tt, err := c.exprNode(vs, el)
		if err != nil {
			return nil, nil, err
		}
		elems[i] = te
		c.emit(tt, types.Individual{}, origin)
	}
	var tail term.Expr[TypedInfo[I]]
	if n.Tail != nil {
		tt, ttype, err := c.exprNode(vs, n.Tail)
		if err != nil {
			return nil, nil, err
		}
		c.emit(ttype, types.Individual{}, origin)
		tail = tt
	}
	t := types.Type(types.Individual{})
	return term.List[TypedInfo[I]]{Payload: c.info(t, n.Payload), Elements: elems, Tail: tail}, t, nil
}

func (c *ctx[I]) inferLam(vs *varScope, n term.Lam[I], origin term.Expr[I]) (term.Expr[TypedInfo[I]], types.Type, error) {
	inner := vs.extend()
	argTs := make([]types.Type, len(n.Params))
	for i, p := range n.Params {
		t := types.FreshAlpha(c.fresh)
		argTs[i] = t
		if p != "" {
			inner.table[p] = t
		}
	}
	body, bodyT, err := c.exprNode(inner, n.Body)
	if err != nil {
		return nil, nil, err
	}
	phi := types.FreshPhi(c.fresh)
	c.emit(bodyT, phi, origin)
	t := types.Fun{Args: argTs, Ret: phi}
	return term.Lam[TypedInfo[I]]{Payload: c.info(t, n.Payload), Params: n.Params, Body: body}, t, nil
}
