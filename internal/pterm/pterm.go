// Package pterm is the runtime term model proof search operates over
// : rigid symbols, logic variables, applications, tuples (used to
// encode multi-argument clause heads and bodies), and set abstractions (the
// finitary carriers higher-order resolution grows lazily).
package pterm

import (
	"github.com/errikos/hopes/internal/term"
	"github.com/errikos/hopes/internal/types"
)

// Term is any runtime value proof search manipulates. Terms are immutable;
// substitutions are built and then applied to produce new terms.
type Term interface {
	isTerm()
}

// Rigid is a named predicate or function symbol with known arity.
type Rigid struct {
	Sym   term.Symbol
	Arity int
}

func (Rigid) isTerm() {}

// Flex is a logic variable, typed so that higher-order resolution can tell
// an individual witness from a predicate-valued one.
type Flex struct {
	Var term.Symbol
	Typ types.Type
}

func (Flex) isTerm() {}

// Order returns 0 for an individual-typed variable and >=1 for a
// predicate-valued one (the "order of a symbol", glossary).
func (f Flex) Order() int {
	if f.Typ == nil {
		return 0
	}
	if fn, ok := f.Typ.(types.Fun); ok {
		return 1 + fn.Arity()
	}
	return 0
}

// App is an application of Head to Args.
type App struct {
	Head Term
	Args []Term
}

func (App) isTerm() {}

// Tup is a tuple of terms, used to unify multi-argument clause heads and
// bodies pointwise.
type Tup struct {
	Elems []Term
}

func (Tup) isTerm() {}

// Set is a set abstraction: a finitary, lazily-growing subset of a
// predicate's extension. Snapshot is the enumerated-so-far elements;
// Witnesses are the auxiliary variables used to grow the set.
type Set struct {
	Snapshot  []Term
	Witnesses []Flex
}

func (Set) isTerm() {}

// LiftSet wraps a single flex variable as a singleton set carrier: the
// starting point for higher-order resolution of a bare flexible atom head
// .
func LiftSet(v Flex) Set {
	return Set{Witnesses: []Flex{v}}
}

// LastWitness returns the "continuation" variable of a set, by convention
// the last witness.
func (s Set) LastWitness() (Flex, bool) {
	if len(s.Witnesses) == 0 {
		return Flex{}, false
	}
	return s.Witnesses[len(s.Witnesses)-1], true
}
