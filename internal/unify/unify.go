// Package unify implements first-order syntactic unification over
// runtime terms with occurs-check.
package unify

import (
	"github.com/errikos/hopes/internal/errs"
	"github.com/errikos/hopes/internal/pterm"
	"github.com/errikos/hopes/internal/subst"
	"github.com/errikos/hopes/internal/term"
)

// Unify attempts to find a substitution that makes t1 and t2 syntactically
// equal: variables bind after an occurs-check, applications and tuples
// descend pointwise, rigid symbols must match exactly.
func Unify(t1, t2 pterm.Term) (subst.Subst, error) {
	switch a := t1.(type) {
	case pterm.Flex:
		if b, ok := t2.(pterm.Flex); ok && b.Var.Equal(a.Var) {
			return subst.Success(), nil
		}
		return bindOccursChecked(a.Var, t2)
	default:
		if b, ok := t2.(pterm.Flex); ok {
			return bindOccursChecked(b.Var, t1)
		}
	}

	switch a := t1.(type) {
	case pterm.App:
		b, ok := t2.(pterm.App)
		if !ok {
			return nil, errs.New(errs.Clash, "expected application, got different shape")
		}
		s1, err := Unify(a.Head, b.Head)
		if err != nil {
			return nil, err
		}
		tailA := subst.Apply(s1, pterm.Tup{Elems: a.Args})
		tailB := subst.Apply(s1, pterm.Tup{Elems: b.Args})
		s2, err := Unify(tailA, tailB)
		if err != nil {
			return nil, err
		}
		return subst.Combine(s2, s1), nil

	case pterm.Tup:
		b, ok := t2.(pterm.Tup)
		if !ok {
			return nil, errs.New(errs.Clash, "expected tuple, got different shape")
		}
		if len(a.Elems) != len(b.Elems) {
			return nil, errs.New(errs.Arity, "tuple length mismatch")
		}
		sigma := subst.Success()
		for i := range a.Elems {
			ai := subst.Apply(sigma, a.Elems[i])
			bi := subst.Apply(sigma, b.Elems[i])
			s, err := Unify(ai, bi)
			if err != nil {
				return nil, err
			}
			sigma = subst.Combine(s, sigma)
		}
		return sigma, nil

	case pterm.Rigid:
		b, ok := t2.(pterm.Rigid)
		if !ok {
			return nil, errs.New(errs.Clash, "expected rigid symbol, got different shape")
		}
		if b.Sym.Equal(a.Sym) {
			return subst.Success(), nil
		}
		return nil, errs.New(errs.Clash, "rigid symbols "+a.Sym.Name+" and "+b.Sym.Name+" do not match")

	default:
		return nil, errs.New(errs.Clash, "unrecognized term shape")
	}
}

func bindOccursChecked(v term.Symbol, t pterm.Term) (subst.Subst, error) {
	if occurs(v, t) {
		return nil, errs.New(errs.OccurCheck, v.Name+" occurs in its binding candidate")
	}
	return subst.Bind(v, t), nil
}

func occurs(v term.Symbol, t pterm.Term) bool {
	switch x := t.(type) {
	case pterm.Flex:
		return x.Var.Equal(v)
	case pterm.App:
		if occurs(v, x.Head) {
			return true
		}
		for _, a := range x.Args {
			if occurs(v, a) {
				return true
			}
		}
		return false
	case pterm.Tup:
		for _, e := range x.Elems {
			if occurs(v, e) {
				return true
			}
		}
		return false
	case pterm.Set:
		for _, e := range x.Snapshot {
			if occurs(v, e) {
				return true
			}
		}
		for _, w := range x.Witnesses {
			if w.Var.Equal(v) {
				return true
			}
		}
		return false
	default: // Rigid
		return false
	}
}
