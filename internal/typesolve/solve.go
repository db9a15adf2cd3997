// Package typesolve implements the Type Constraint Solver: the
// first-order unifier over ρ-types that resolves the constraints type
// inference emits. It is deliberately a separate package from internal/unify
// even though the two algorithms are structurally twins, because they
// unify different grammars for different masters (types feeding back into
// the syntax tree's info payloads, versus runtime terms feeding proof
// search).
package typesolve

import (
	"github.com/errikos/hopes/internal/errs"
	"github.com/errikos/hopes/internal/term"
	"github.com/errikos/hopes/internal/types"
)

// Constraint is a pair (A, B, Origin): A and B must unify, and Origin,
// the node that produced the constraint, is retained purely for error
// reporting.
type Constraint[O any] struct {
	A, B   types.Type
	Origin O
}

// Solve runs the constraints to a single substitution, applying each
// constraint's result to the remainder before continuing so that earlier
// bindings are visible to later constraints. The first failing constraint
// aborts with a TypeClash error carrying its origin.
func Solve[O any](cs []Constraint[O]) (types.Subst, error) {
	sigma := types.Success()
	for _, c := range cs {
		a := types.Apply(sigma, c.A)
		b := types.Apply(sigma, c.B)
		s2, err := Unify(a, b)
		if err != nil {
			if e, ok := err.(*errs.Error); ok {
				return nil, e.WithOrigin(c.Origin)
			}
			return nil, err
		}
		sigma = types.Compose(s2, sigma)
	}
	return sigma, nil
}

// Unify runs first-order unification directly over two ρ-types.
func Unify(t1, t2 types.Type) (types.Subst, error) {
	switch a := t1.(type) {
	case types.Var:
		return bindVar(a.Sym, t2)
	case types.Individual:
		if _, ok := t2.(types.Individual); ok {
			return types.Success(), nil
		}
		if v, ok := t2.(types.Var); ok {
			return bindVar(v.Sym, t1)
		}
		return nil, errs.New(errs.TypeClash, "expected individual type i, got "+t2.String())
	case types.Prop:
		if _, ok := t2.(types.Prop); ok {
			return types.Success(), nil
		}
		if v, ok := t2.(types.Var); ok {
			return bindVar(v.Sym, t1)
		}
		return nil, errs.New(errs.TypeClash, "expected o, got "+t2.String())
	case types.Fun:
		switch b := t2.(type) {
		case types.Fun:
			return unifyFun(a, b)
		case types.Var:
			return bindVar(b.Sym, t1)
		default:
			return nil, errs.New(errs.TypeClash, "expected function type "+a.String()+", got "+t2.String())
		}
	default:
		return nil, errs.New(errs.TypeClash, "unrecognized type shape")
	}
}

func bindVar(v term.Symbol, t types.Type) (types.Subst, error) {
	if tv, ok := t.(types.Var); ok && tv.Sym.Equal(v) {
		return types.Success(), nil
	}
	if types.Occurs(v, t) {
		return nil, errs.New(errs.TypeClash, "occurs check failed: "+v.Name+" occurs in "+t.String())
	}
	return types.Bind(v, t), nil
}

func unifyFun(a, b types.Fun) (types.Subst, error) {
	if len(a.Args) != len(b.Args) {
		return nil, errs.New(errs.TypeClash, "arity mismatch in function type unification")
	}
	sigma := types.Success()
	for i := range a.Args {
		ai := types.Apply(sigma, a.Args[i])
		bi := types.Apply(sigma, b.Args[i])
		s2, err := Unify(ai, bi)
		if err != nil {
			return nil, err
		}
		sigma = types.Compose(s2, sigma)
	}
	ar := types.Apply(sigma, a.Ret)
	br := types.Apply(sigma, b.Ret)
	s2, err := Unify(ar, br)
	if err != nil {
		return nil, err
	}
	return types.Compose(s2, sigma), nil
}
