// Package hores implements the higher-order resolver: rigid resolution
// via clause variants, set resolution over flexible atoms, and the
// waybelow relation that finitizes higher-order search by growing a set
// abstraction one demand at a time.
package hores

import (
	"github.com/errikos/hopes/internal/errs"
	"github.com/errikos/hopes/internal/pterm"
	"github.com/errikos/hopes/internal/subst"
	"github.com/errikos/hopes/internal/term"
	"github.com/errikos/hopes/internal/types"
	"github.com/errikos/hopes/internal/unify"
)

// Variant renames every variable of a clause to a fresh one, via a
// substitution mapping each original variable to a fresh Flex.
func Variant(fresh *term.Fresher, c pterm.Clause) pterm.Clause {
	ren := subst.Subst{}
	collectVars(pterm.Tup{Elems: c.HeadArgs}, ren, fresh)
	for _, b := range c.Body {
		collectVars(b, ren, fresh)
	}
	args := make([]pterm.Term, len(c.HeadArgs))
	for i, a := range c.HeadArgs {
		args[i] = subst.Apply(ren, a)
	}
	body := make([]pterm.Term, len(c.Body))
	for i, b := range c.Body {
		body[i] = subst.Apply(ren, b)
	}
	return pterm.Clause{Head: c.Head, HeadArgs: args, Body: body}
}

func collectVars(t pterm.Term, ren subst.Subst, fresh *term.Fresher) {
	switch x := t.(type) {
	case pterm.Flex:
		if _, ok := ren[x.Var]; !ok {
			ren[x.Var] = pterm.Flex{Var: fresh.Next(x.Var.Name), Typ: x.Typ}
		}
	case pterm.App:
		collectVars(x.Head, ren, fresh)
		for _, a := range x.Args {
			collectVars(a, ren, fresh)
		}
	case pterm.Tup:
		for _, e := range x.Elems {
			collectVars(e, ren, fresh)
		}
	case pterm.Set:
		for _, e := range x.Snapshot {
			collectVars(e, ren, fresh)
		}
		for _, w := range x.Witnesses {
			collectVars(w, ren, fresh)
		}
	}
}

// RigidResolve enumerates clausesOf(atom's head symbol), producing one
// branch per clause: a fresh variant unified against the atom, succeeding
// with (variant.Body, unifier) on match.
func RigidResolve(fresh *term.Fresher, db *pterm.Program, atom pterm.App) ([]pterm.Goal, []subst.Subst, error) {
	head, ok := atom.Head.(pterm.Rigid)
	if !ok {
		return nil, nil, errs.New(errs.NoRule, "rigid resolution requires a rigid head")
	}
	var goals []pterm.Goal
	var substs []subst.Subst
	for _, clause := range db.ClausesOf(head.Sym.Name) {
		v := Variant(fresh, clause)
		s, err := unify.Unify(atom, v.HeadAsTerm())
		if err != nil {
			continue // a clashing clause contributes no branch
		}
		goals = append(goals, pterm.Goal(v.Body))
		substs = append(substs, s)
	}
	return goals, substs, nil
}

// SetResolve handles an atom whose head is a Set: grow the
// set by one demand-derived element and succeed with the empty subgoal.
func SetResolve(fresh *term.Fresher, atom pterm.App) (subst.Subst, error) {
	set, ok := atom.Head.(pterm.Set)
	if !ok {
		return nil, errs.New(errs.NoRule, "set resolution requires a Set head")
	}
	v, ok := set.LastWitness()
	if !ok {
		return nil, errs.New(errs.NoRule, "set carrier has no witness to refine")
	}
	fn, ok := v.Typ.(types.Fun)
	if !ok || len(fn.Args) == 0 {
		return nil, errs.New(errs.TypeClash, "set witness must have function type with at least one argument")
	}
	x := pterm.Flex{Var: fresh.Next("x"), Typ: fn.Args[0]}
	vNext := pterm.Flex{Var: fresh.Next("v"), Typ: v.Typ}

	sigma, err := Waybelow(fresh, x, pterm.Tup{Elems: atom.Args})
	if err != nil {
		return nil, err
	}
	grow := subst.Bind(v.Var, pterm.Set{Snapshot: []pterm.Term{x}, Witnesses: []pterm.Flex{vNext}})
	return subst.Combine(grow, sigma), nil
}

// Waybelow implements the "x is way-below t" relation: the
// domain-theoretic approximation used to finitize higher-order search.
func Waybelow(fresh *term.Fresher, x pterm.Flex, t pterm.Term) (subst.Subst, error) {
	switch tt := t.(type) {
	case pterm.Rigid:
		if tt.Arity == 0 {
			return unify.Unify(x, t)
		}
		return nil, errs.New(errs.NotImpl, "higher-order waybelow over a rigid predicate symbol is not implemented")

	case pterm.App:
		return unify.Unify(x, t)

	case pterm.Set:
		v, ok := tt.LastWitness()
		if !ok {
			return nil, errs.New(errs.NoRule, "set carrier has no witness")
		}
		vNext := pterm.Flex{Var: fresh.Next("v"), Typ: v.Typ}
		return subst.Bind(v.Var, pterm.Set{Snapshot: nil, Witnesses: []pterm.Flex{x, vNext}}), nil

	case pterm.Flex:
		w := tt
		if w.Order() == 0 {
			return unify.Unify(x, t)
		}
		return Waybelow(fresh, x, pterm.LiftSet(w))

	case pterm.Tup:
		elems := make([]pterm.Term, len(tt.Elems))
		sigma := subst.Success()
		for i, e := range tt.Elems {
			xi := pterm.Flex{Var: fresh.Next("e"), Typ: nil}
			s, err := Waybelow(fresh, xi, e)
			if err != nil {
				return nil, err
			}
			sigma = subst.Combine(s, sigma)
			elems[i] = xi
		}
		s2, err := unify.Unify(x, pterm.Tup{Elems: elems})
		if err != nil {
			return nil, err
		}
		return subst.Combine(s2, sigma), nil

	default:
		return nil, errs.New(errs.Clash, "waybelow: unsupported right-hand shape")
	}
}

// Resolve is the dispatch table entry point for a flexible or set-headed
// atom: a bare flex head is
// first lifted into a singleton set, then set-resolved.
func Resolve(fresh *term.Fresher, atom pterm.App) (pterm.Goal, subst.Subst, error) {
	switch h := atom.Head.(type) {
	case pterm.Flex:
		lifted := pterm.App{Head: pterm.LiftSet(h), Args: atom.Args}
		return Resolve(fresh, lifted)
	case pterm.Set:
		s, err := SetResolve(fresh, atom)
		if err != nil {
			return nil, nil, err
		}
		return nil, s, nil
	default:
		return nil, nil, errs.New(errs.NoRule, "higher-order resolve requires a flex or set head")
	}
}
