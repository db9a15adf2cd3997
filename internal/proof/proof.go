// Package proof implements proof search: SLD-resolution extended with
// the higher-order resolver of internal/hores, driven by the fair logic
// monad of internal/logic. The engine takes one resolution step at a
// time over the lazy Stream construction, so a caller who stops pulling
// answers stops the search.
package proof

import (
	"fmt"

	"github.com/errikos/hopes/internal/errs"
	"github.com/errikos/hopes/internal/hores"
	"github.com/errikos/hopes/internal/logic"
	"github.com/errikos/hopes/internal/pterm"
	"github.com/errikos/hopes/internal/subst"
	"github.com/errikos/hopes/internal/term"
	"github.com/errikos/hopes/internal/trace"
)

// Engine bundles the read-only clause database and the shared variable
// fresher every derivation step draws from. Sess is optional; a nil
// Sess disables per-step tracing.
type Engine struct {
	DB    *pterm.Program
	Fresh *term.Fresher
	Sess  *trace.Session
}

// NewEngine builds a search engine over db, sharing fresh for variant
// renaming across every resolution step so variables never collide.
func NewEngine(db *pterm.Program, fresh *term.Fresher) *Engine {
	return &Engine{DB: db, Fresh: fresh}
}

// Prove runs refute(g) and restricts every answer to the variables
// free in the original goal.
func (e *Engine) Prove(goal pterm.Goal) logic.Stream {
	free := freeVarsOf(goal)
	n := 0
	s := mapSubst(e.refute(goal), func(s subst.Subst) subst.Subst {
		n++
		if e.Sess != nil {
			e.Sess.Answer(n)
		}
		return subst.Restrict(free, s)
	})
	if e.Sess != nil {
		return traceDone(s, e.Sess, &n)
	}
	return s
}

// traceDone wraps a stream so the session is marked done once the stream
// runs dry; n is read lazily, after the caller has pulled every answer.
func traceDone(s logic.Stream, sess *trace.Session, n *int) logic.Stream {
	return doneStream{inner: s, sess: sess, n: n}
}

type doneStream struct {
	inner logic.Stream
	sess  *trace.Session
	n     *int
}

func (d doneStream) Pull() (subst.Subst, logic.Stream, bool) {
	ans, rest, ok := d.inner.Pull()
	if !ok {
		d.sess.Done(*d.n)
		return nil, logic.Mzero, false
	}
	return ans, traceDone(rest, d.sess, d.n), true
}

// refute succeeds immediately on the empty goal, otherwise derives every
// way the goal can take one resolution step and recurses fairly on each
// resulting goal, composing substitutions along the way.
func (e *Engine) refute(goal pterm.Goal) logic.Stream {
	if len(goal) == 0 {
		return logic.Unit(subst.Success())
	}
	nextGoals, substs, err := e.derive(goal)
	if err != nil {
		return logic.Mzero
	}
	branches := make([]logic.Stream, len(substs))
	for i, s := range substs {
		s, next := s, nextGoals[i]
		branches[i] = mapSubst(e.refute(next), func(ans subst.Subst) subst.Subst {
			return subst.Combine(s, ans)
		})
	}
	return logic.MplusN(branches...)
}

// derive splits the goal into its first atom and the rest, resolves the
// atom (possibly several ways), and returns one (goal, subst) pair per way
// the atom resolved, each goal being the resolved subgoal prepended to the
// rest of the conjunction, with that way's substitution applied to the whole.
func (e *Engine) derive(goal pterm.Goal) ([]pterm.Goal, []subst.Subst, error) {
	atom, rest, ok := split(goal)
	if !ok {
		return nil, nil, errs.New(errs.NoRule, "cannot derive from an empty goal")
	}
	subgoals, substs, err := e.resolve(atom)
	if err != nil {
		return nil, nil, err
	}
	goals := make([]pterm.Goal, len(substs))
	for i, s := range substs {
		var subgoal pterm.Goal
		if i < len(subgoals) {
			subgoal = subgoals[i]
		}
		merged := append(append(pterm.Goal{}, subgoal...), rest...)
		goals[i] = subst.ApplyGoal(s, merged)
	}
	return goals, substs, nil
}

// resolve dispatches on the atom's head shape: a rigid
// head tries every matching clause; a flex or set head grows the
// set abstraction it denotes; anything else has no applicable rule.
func (e *Engine) resolve(atom pterm.Term) ([]pterm.Goal, []subst.Subst, error) {
	app, ok := atom.(pterm.App)
	if !ok {
		e.traceNoRule(atom)
		return nil, nil, errs.New(errs.NoRule, "goal atom must be an application")
	}
	switch app.Head.(type) {
	case pterm.Rigid:
		goals, substs, err := hores.RigidResolve(e.Fresh, e.DB, app)
		if e.Sess != nil {
			e.Sess.Derivation("rigid", fmt.Sprintf("%v branches", len(substs)))
		}
		return goals, substs, err
	case pterm.Flex, pterm.Set:
		subgoal, s, err := hores.Resolve(e.Fresh, app)
		if err != nil {
			return nil, nil, err
		}
		if e.Sess != nil {
			e.Sess.Derivation("set", "growth step")
		}
		return []pterm.Goal{subgoal}, []subst.Subst{s}, nil
	default:
		e.traceNoRule(atom)
		return nil, nil, errs.New(errs.NoRule, "no resolution rule for this atom head")
	}
}

func (e *Engine) traceNoRule(atom pterm.Term) {
	if e.Sess != nil {
		e.Sess.NoRule(fmt.Sprintf("%v", atom))
	}
}

// split picks the first atom of the goal as the one to resolve next,
// left-to-right, and returns the remaining conjunction.
func split(goal pterm.Goal) (pterm.Term, pterm.Goal, bool) {
	if len(goal) == 0 {
		return nil, nil, false
	}
	return goal[0], goal[1:], true
}

func freeVarsOf(goal pterm.Goal) map[term.Symbol]bool {
	out := map[term.Symbol]bool{}
	for _, atom := range goal {
		collectFree(atom, out)
	}
	return out
}

func collectFree(t pterm.Term, out map[term.Symbol]bool) {
	switch x := t.(type) {
	case pterm.Flex:
		out[x.Var] = true
	case pterm.App:
		collectFree(x.Head, out)
		for _, a := range x.Args {
			collectFree(a, out)
		}
	case pterm.Tup:
		for _, e := range x.Elems {
			collectFree(e, out)
		}
	case pterm.Set:
		for _, e := range x.Snapshot {
			collectFree(e, out)
		}
		for _, w := range x.Witnesses {
			out[w.Var] = true
		}
	}
}

func mapSubst(s logic.Stream, f func(subst.Subst) subst.Subst) logic.Stream {
	return logic.Bind(s, func(ans subst.Subst) logic.Stream {
		return logic.Unit(f(ans))
	})
}
