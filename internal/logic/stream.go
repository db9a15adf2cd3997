// Package logic implements the backtracking nondeterminism primitive:
// mzero, mplus, and a fair-interleaving bind, realized as a lazy stream
// of substitutions in the classic miniKanren style, built from pure
// closures rather than goroutines so a caller cancels a search simply by
// not pulling any further.
package logic

import "github.com/errikos/hopes/internal/subst"

// Stream is a lazy, possibly-infinite sequence of answers. Pull forces at
// most one element; the scheduler (Mplus, Bind) decides how much of either
// side to force before yielding to the other, which is what makes search
// fair rather than depth-first.
type Stream interface {
	Pull() (ans subst.Subst, rest Stream, ok bool)
}

// Mzero is the stream with no answers.
var Mzero Stream = mzeroStream{}

type mzeroStream struct{}

func (mzeroStream) Pull() (subst.Subst, Stream, bool) { return nil, Mzero, false }

// Unit returns the single-answer stream {ans}.
func Unit(ans subst.Subst) Stream {
	return consStream{head: ans, tail: Mzero}
}

type consStream struct {
	head subst.Subst
	tail Stream
}

func (c consStream) Pull() (subst.Subst, Stream, bool) { return c.head, c.tail, true }

// Delay wraps a thunk so that it is not forced until Pull is called; every
// recursive call in Mplus/Bind goes through Delay so that an infinite
// stream never overflows the Go call stack before the caller asks for an
// answer.
func Delay(thunk func() Stream) Stream {
	return delayStream{thunk: thunk}
}

type delayStream struct {
	thunk func() Stream
}

func (d delayStream) Pull() (subst.Subst, Stream, bool) {
	return d.thunk().Pull()
}

// Mplus is fair choice: it alternates sides on every pull so that an
// infinite left branch can never starve a finite right branch.
func Mplus(a, b Stream) Stream {
	return Delay(func() Stream {
		head, rest, ok := a.Pull()
		if !ok {
			return b
		}
		return consStream{head: head, tail: Mplus(b, rest)}
	})
}

// Bind is the fair monadic bind (">>-"): every answer from s is fed to g,
// and the resulting streams are interleaved fairly with the continuation
// of s itself, rather than exhausting g(head) before moving to the next
// head.
func Bind(s Stream, g func(subst.Subst) Stream) Stream {
	return Delay(func() Stream {
		head, rest, ok := s.Pull()
		if !ok {
			return Mzero
		}
		return Mplus(g(head), Delay(func() Stream { return Bind(rest, g) }))
	})
}

// MplusN fairly interleaves any number of streams (used by rigid
// resolution, which may have any number of matching clauses).
func MplusN(streams ...Stream) Stream {
	switch len(streams) {
	case 0:
		return Mzero
	case 1:
		return streams[0]
	default:
		return Mplus(streams[0], MplusN(streams[1:]...))
	}
}

// Take pulls at most n answers, or every answer if n < 0.
func Take(s Stream, n int) []subst.Subst {
	var out []subst.Subst
	for n < 0 || len(out) < n {
		head, rest, ok := s.Pull()
		if !ok {
			break
		}
		out = append(out, head)
		s = rest
	}
	return out
}

// First returns the first answer, if any: the "one answer" cancellation
// mode.
func First(s Stream) (subst.Subst, bool) {
	head, _, ok := s.Pull()
	return head, ok
}
