// Package hopes exposes the four external entry points of the system
// : typecheck, prove, unify, and freshen. It is the thin façade a
// driver (CLI, RPC service, or test) calls into; all the real work lives
// in the internal/ packages it wires together.
package hopes

import (
	"github.com/errikos/hopes/internal/errs"
	"github.com/errikos/hopes/internal/logic"
	"github.com/errikos/hopes/internal/proof"
	"github.com/errikos/hopes/internal/pterm"
	"github.com/errikos/hopes/internal/subst"
	"github.com/errikos/hopes/internal/term"
	"github.com/errikos/hopes/internal/typeinfer"
	"github.com/errikos/hopes/internal/types"
	"github.com/errikos/hopes/internal/unify"
)

// TypedProgram is a surface program after Typecheck has annotated every
// node with its solved type.
type TypedProgram[I any] = term.Program[typeinfer.TypedInfo[I]]

// Typecheck runs the Type Inference Engine over prog, returning the
// annotated program and the predicate environment it installed every
// group's generalized type into.
func Typecheck[I any](prog term.Program[I]) (TypedProgram[I], *types.Env, error) {
	env := types.NewEnv()
	fresh := term.NewFresher()
	return typeinfer.Program(prog, env, fresh)
}

// Prove refutes goal against db, returning a lazy stream of answer
// substitutions restricted to goal's free variables. fresh
// must be the same counter used to mint every variable appearing in db
// and goal, so that resolution's own fresh variants can never collide
// with a variable the caller already built.
func Prove(db *pterm.Program, goal pterm.Goal, fresh *term.Fresher) logic.Stream {
	engine := proof.NewEngine(db, fresh)
	return engine.Prove(goal)
}

// Unify attempts first-order syntactic unification of t1 and t2 with
// occurs-check, returning the most general unifier.
func Unify(t1, t2 pterm.Term) (subst.Subst, error) {
	return unify.Unify(t1, t2)
}

// Freshen instantiates a polymorphic predicate type, alpha-renaming every
// quantified variable to one not used anywhere else yet.
func Freshen(p types.Poly, fresh *term.Fresher) types.Type {
	return p.Freshen(fresh)
}

// AnswerCount reports how many answers a stream yields, up to limit (0
// meaning unbounded); a thin convenience wrapper over logic.Take used by
// drivers that just want a count rather than the substitutions themselves.
func AnswerCount(s logic.Stream, limit int) int {
	if limit == 0 {
		limit = -1
	}
	return len(logic.Take(s, limit))
}

// errIfNoGoal is returned by drivers that validate an empty goal before
// calling Prove, since an empty conjunction trivially succeeds once and a
// caller asking to "prove nothing" is almost always a mistake upstream.
var errIfNoGoal = errs.New(errs.NoRule, "goal must contain at least one atom")

// ValidateGoal rejects the trivially-succeeding empty goal, a guard
// drivers are expected to call before Prove.
func ValidateGoal(goal pterm.Goal) error {
	if len(goal) == 0 {
		return errIfNoGoal
	}
	return nil
}
