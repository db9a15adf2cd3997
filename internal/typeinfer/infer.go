// Package typeinfer implements the type inference engine: constraint
// generation over the surface syntax tree, per-group elaboration, and
// generalization into the outer predicate-type environment. Inference is
// a constraint-collecting walk followed by a single solve per group.
package typeinfer

import (
	"github.com/errikos/hopes/internal/term"
	"github.com/errikos/hopes/internal/types"
	"github.com/errikos/hopes/internal/typesolve"
)

// TypedInfo is the info payload every node carries after inference: its
// solved type, paired with whatever payload the caller attached originally
// (typically a source location, per the parser collaborator contract).
type TypedInfo[I any] struct {
	Type types.Type
	Orig I
}

// Cons is the constraint kind this engine emits; Origin is the surface
// node that produced it, carried only for error reporting.
type Cons[I any] = typesolve.Constraint[term.Expr[I]]

// varScope holds named-parameter bindings introduced by Lam; it is
// distinct from the clause-wide existentials map; lookups consult the
// lambda scope first, then the existentials.
type varScope struct {
	parent *varScope
	table  map[string]types.Type
}

func (s *varScope) extend() *varScope {
	return &varScope{parent: s, table: map[string]types.Type{}}
}

func (s *varScope) lookup(name string) (types.Type, bool) {
	for c := s; c != nil; c = c.parent {
		if t, ok := c.table[name]; ok {
			return t, true
		}
	}
	return nil, false
}

// ctx is the reader/state threaded through one clause's constraint
// generation: a read-only predicate environment and fresh-variable
// counter, plus the mutable constraint list and existentials map that are
// local to the clause.
type ctx[I any] struct {
	env    *types.Env
	fresh  *term.Fresher
	cs     []Cons[I]
	exists map[string]types.Type
}

// Program runs inference over every group of prog in order, threading a
// single growing environment and a single fresh-variable counter from
// group to group. fresh is shared for the whole run
// so that no two groups can ever mint colliding fresh variables.
func Program[I any](prog term.Program[I], env *types.Env, fresh *term.Fresher) (term.Program[TypedInfo[I]], *types.Env, error) {
	out := make(term.Program[TypedInfo[I]], len(prog))
	for i, g := range prog {
		tg, err := Group(env, fresh, g)
		if err != nil {
			return nil, nil, err
		}
		out[i] = tg
	}
	return out, env, nil
}
