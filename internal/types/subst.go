package types

import "github.com/errikos/hopes/internal/term"

// Subst is a finite mapping from type variables to types. The zero
// value is Success, the two-sided identity substitution.
type Subst map[term.Symbol]Type

// Success is the identity substitution.
func Success() Subst { return Subst{} }

// Bind returns the singleton substitution {v -> t}. It trusts its input:
// occurs-checking is the solver's responsibility, mirroring the
// term-level bind in internal/subst.
func Bind(v term.Symbol, t Type) Subst {
	return Subst{v: t}
}

// Apply rewrites t under s. Because the solver only ever produces
// substitutions in triangular form (each new binding's right-hand side is
// fully resolved against prior bindings before being added), one pass
// suffices; Apply does not loop to a fixpoint.
func Apply(s Subst, t Type) Type {
	switch x := t.(type) {
	case Var:
		if repl, ok := s[x.Sym]; ok {
			return repl
		}
		return x
	case Fun:
		args := make([]Type, len(x.Args))
		for i, a := range x.Args {
			args[i] = Apply(s, a)
		}
		return Fun{Args: args, Ret: Apply(s, x.Ret)}
	default:
		return t
	}
}

// applyToSubst rewrites every type in a Subst's codomain under s, i.e.
// composes as apply(s, apply(target, t)).
func applyToSubst(s, target Subst) Subst {
	out := make(Subst, len(target))
	for k, v := range target {
		out[k] = Apply(s, v)
	}
	return out
}

// Compose returns a substitution sigma such that
// Apply(sigma, t) == Apply(s1, Apply(s2, t)) for all t.
func Compose(s1, s2 Subst) Subst {
	out := applyToSubst(s1, s2)
	for k, v := range s1 {
		if _, already := out[k]; !already {
			out[k] = v
		}
	}
	return out
}
