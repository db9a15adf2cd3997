// Package subst implements Substitution: building, composing, and
// applying substitutions over runtime terms, plus restriction to a set of
// variables for answer extraction.
package subst

import (
	"github.com/errikos/hopes/internal/pterm"
	"github.com/errikos/hopes/internal/term"
)

// Subst is a finite mapping from variables to terms. The zero value,
// Success(), is the identity substitution.
type Subst map[term.Symbol]pterm.Term

// Success returns the identity substitution.
func Success() Subst { return Subst{} }

// Bind returns the singleton substitution {v -> t}. It trusts its input:
// the occurs-check lives in the unifier, not here.
func Bind(v term.Symbol, t pterm.Term) Subst {
	return Subst{v: t}
}

// Apply recursively rewrites t under s. Idempotent after one pass provided
// s is in triangular form, which the unifier maintains by always resolving
// a binding's right-hand side against the substitution built so far before
// adding it.
func Apply(s Subst, t pterm.Term) pterm.Term {
	switch x := t.(type) {
	case pterm.Flex:
		if repl, ok := s[x.Var]; ok {
			return Apply(s, repl)
		}
		return x
	case pterm.App:
		args := make([]pterm.Term, len(x.Args))
		for i, a := range x.Args {
			args[i] = Apply(s, a)
		}
		return pterm.App{Head: Apply(s, x.Head), Args: args}
	case pterm.Tup:
		elems := make([]pterm.Term, len(x.Elems))
		for i, e := range x.Elems {
			elems[i] = Apply(s, e)
		}
		return pterm.Tup{Elems: elems}
	case pterm.Set:
		snap := make([]pterm.Term, len(x.Snapshot))
		for i, e := range x.Snapshot {
			snap[i] = Apply(s, e)
		}
		wit := make([]pterm.Flex, len(x.Witnesses))
		for i, w := range x.Witnesses {
			if applied, ok := Apply(s, w).(pterm.Flex); ok {
				wit[i] = applied
			} else {
				wit[i] = w
			}
		}
		return pterm.Set{Snapshot: snap, Witnesses: wit}
	default: // Rigid
		return t
	}
}

// ApplyGoal applies s to every atom of a goal.
func ApplyGoal(s Subst, g pterm.Goal) pterm.Goal {
	out := make(pterm.Goal, len(g))
	for i, a := range g {
		out[i] = Apply(s, a)
	}
	return out
}

// Combine returns sigma such that Apply(sigma, t) == Apply(s1, Apply(s2, t))
// for all t.
func Combine(s1, s2 Subst) Subst {
	out := make(Subst, len(s1)+len(s2))
	for k, v := range s2 {
		out[k] = Apply(s1, v)
	}
	for k, v := range s1 {
		if _, already := out[k]; !already {
			out[k] = v
		}
	}
	return out
}

// Restrict keeps only bindings for variables in vars, after fully
// resolving right-hand sides against s itself.
func Restrict(vars map[term.Symbol]bool, s Subst) Subst {
	out := make(Subst, len(vars))
	for v := range vars {
		if t, ok := s[v]; ok {
			out[v] = Apply(s, t)
		}
	}
	return out
}
