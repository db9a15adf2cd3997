// Package types implements the two-sort type model: individuals (the
// single ground sort i) and predicate types π (propositions o, function
// types Fun, and type variables). ρ-types, the argument positions, are
// simply any Type; the stratification is structural, not
// Go-type-enforced, which is also how the solver treats it.
package types

import (
	"strconv"
	"strings"

	"github.com/errikos/hopes/internal/term"
)

// Type is any node of the ρ/π grammar: Individual, Prop, Fun, or Var.
type Type interface {
	isType()
	String() string
}

// Individual is the sole ground individual sort, i.
type Individual struct{}

func (Individual) isType()        {}
func (Individual) String() string { return "i" }

// Prop is the propositional predicate type, o. Arity 0.
type Prop struct{}

func (Prop) isType()        {}
func (Prop) String() string { return "o" }

// Fun is a predicate type taking arguments of type Args and yielding Ret
// (itself a π-type). Arity is len(Args).
type Fun struct {
	Args []Type
	Ret  Type
}

func (Fun) isType() {}
func (f Fun) String() string {
	parts := make([]string, len(f.Args))
	for i, a := range f.Args {
		parts[i] = a.String()
	}
	return "(" + strings.Join(parts, ", ") + ") -> " + f.Ret.String()
}

// Arity returns len(Args), the structural arity checked against any
// user-declared arity for the predicate.
func (f Fun) Arity() int { return len(f.Args) }

// Var is a type variable, either a ρ-position "α" or a π-position "φ"; the
// two play identically in the solver and are distinguished only by
// the base name used when they were freshened, for readability.
type Var struct {
	Sym term.Symbol
}

func (Var) isType() {}
func (v Var) String() string {
	if v.Sym.Gen == 0 {
		return v.Sym.Name
	}
	return v.Sym.Name + "_" + strconv.Itoa(v.Sym.Gen)
}

// Arity returns the structural arity of a π-type: 0 for Prop and Var
// (unknown/proposition-like), or len(Args) for Fun.
func Arity(t Type) int {
	if f, ok := t.(Fun); ok {
		return f.Arity()
	}
	return 0
}

// FreeVars returns the type variables occurring in t, deduplicated.
func FreeVars(t Type) []term.Symbol {
	seen := map[term.Symbol]bool{}
	var order []term.Symbol
	var walk func(Type)
	walk = func(t Type) {
		switch x := t.(type) {
		case Var:
			if !seen[x.Sym] {
				seen[x.Sym] = true
				order = append(order, x.Sym)
			}
		case Fun:
			for _, a := range x.Args {
				walk(a)
			}
			walk(x.Ret)
		}
	}
	walk(t)
	return order
}

// Occurs reports whether v occurs free in t.
func Occurs(v term.Symbol, t Type) bool {
	switch x := t.(type) {
	case Var:
		return x.Sym.Equal(v)
	case Fun:
		for _, a := range x.Args {
			if Occurs(v, a) {
				return true
			}
		}
		return Occurs(v, x.Ret)
	default:
		return false
	}
}

// FreshAlpha allocates a fresh ρ-position type variable.
func FreshAlpha(f *term.Fresher) Var { return Var{Sym: f.Next("α")} }

// FreshPhi allocates a fresh π-position type variable.
func FreshPhi(f *term.Fresher) Var { return Var{Sym: f.Next("φ")} }

// MostGeneral fabricates the most-general predicate type for a given
// arity: Fun([α1..αn], Var(φ)), used both as the tentative type installed
// for a group's own predicates and as findPoly's fallback for
// an unknown predicate.
func MostGeneral(f *term.Fresher, arity int) Type {
	args := make([]Type, arity)
	for i := range args {
		args[i] = FreshAlpha(f)
	}
	return Fun{Args: args, Ret: FreshPhi(f)}
}
