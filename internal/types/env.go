package types

import "github.com/errikos/hopes/internal/term"

// Poly is a type scheme ∀ vars. Body: a predicate's generalized type
// .
type Poly struct {
	Vars []term.Symbol
	Body Type
}

// Monomorphic wraps t with no quantified variables, the tentative type
// installed for a group's own predicates before generalization.
func Monomorphic(t Type) Poly { return Poly{Body: t} }

// Freshen (the external entry point's "freshen") alpha-renames every
// quantified variable of p to a fresh one and returns the instantiated
// type.
func (p Poly) Freshen(f *term.Fresher) Type {
	if len(p.Vars) == 0 {
		return p.Body
	}
	ren := make(Subst, len(p.Vars))
	for _, v := range p.Vars {
		ren[v] = FreshAlpha(f)
	}
	return Apply(ren, p.Body)
}

// Generalize promotes every type variable in t that is free (i.e. absent
// from ambientFree, the variables already in scope at group entry) to a
// universally quantified parameter of the resulting Poly.
func Generalize(ambientFree map[term.Symbol]bool, t Type) Poly {
	var vars []term.Symbol
	seen := map[term.Symbol]bool{}
	for _, v := range FreeVars(t) {
		if ambientFree[v] || seen[v] {
			continue
		}
		seen[v] = true
		vars = append(vars, v)
	}
	return Poly{Vars: vars, Body: t}
}

// Key identifies a predicate by name and arity: the same name may be
// declared at several arities simultaneously.
type Key struct {
	Name  string
	Arity int
}

// Env is the predicate-type environment: a chain of scopes, each installed
// when entering a dependency group and released on return.
type Env struct {
	parent *Env
	table  map[Key]Poly
}

// NewEnv returns an empty root environment, seeded by built-in predicates
// by the host before inference runs (e.g. =/2, true/0, fail/0).
func NewEnv() *Env {
	return &Env{table: map[Key]Poly{}}
}

// Extend returns a new scope nested under e, used when entering a
// dependency group so that tentative, not-yet-generalized bindings don't
// leak into sibling groups.
func (e *Env) Extend() *Env {
	return &Env{parent: e, table: map[Key]Poly{}}
}

// Bind installs (name, arity) -> p in the innermost scope.
func (e *Env) Bind(name string, arity int, p Poly) {
	e.table[Key{Name: name, Arity: arity}] = p
}

// Lookup searches this scope and its ancestors for (name, arity).
func (e *Env) Lookup(name string, arity int) (Poly, bool) {
	for s := e; s != nil; s = s.parent {
		if p, ok := s.table[Key{Name: name, Arity: arity}]; ok {
			return p, true
		}
	}
	return Poly{}, false
}

// FreeVars returns the type variables occurring anywhere in e's chain,
// i.e. the "ambient" variables not eligible for generalization by an inner
// group.
func (e *Env) FreeVars() map[term.Symbol]bool {
	out := map[term.Symbol]bool{}
	for s := e; s != nil; s = s.parent {
		for _, p := range s.table {
			for _, v := range FreeVars(p.Body) {
				bound := false
				for _, q := range p.Vars {
					if q.Equal(v) {
						bound = true
						break
					}
				}
				if !bound {
					out[v] = true
				}
			}
		}
	}
	return out
}

// FindPoly instantiates the polytype bound to (name, arity), or, if none
// is bound, fabricates the most-general type for that arity. This is the
// single lookup path constraint generation uses for every predicate
// occurrence.
func FindPoly(e *Env, f *term.Fresher, name string, arity int) Type {
	if p, ok := e.Lookup(name, arity); ok {
		return p.Freshen(f)
	}
	return MostGeneral(f, arity)
}
