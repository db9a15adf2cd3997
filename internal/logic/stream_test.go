package logic

import (
	"strconv"
	"testing"

	"github.com/errikos/hopes/internal/subst"
	"github.com/errikos/hopes/internal/term"
)

func ans(name string) subst.Subst {
	return subst.Subst{term.Symbol{Name: name}: nil}
}

func TestMzeroYieldsNothing(t *testing.T) {
	_, _, ok := Mzero.Pull()
	if ok {
		t.Errorf("Mzero.Pull() should never succeed")
	}
}

func TestUnitYieldsExactlyOne(t *testing.T) {
	s := Unit(ans("a"))
	head, rest, ok := s.Pull()
	if !ok {
		t.Fatalf("Unit should yield one answer")
	}
	if _, ok := head[term.Symbol{Name: "a"}]; !ok {
		t.Errorf("unexpected answer: %v", head)
	}
	if _, _, ok := rest.Pull(); ok {
		t.Errorf("Unit should yield exactly one answer")
	}
}

func TestMplusInterleaves(t *testing.T) {
	left := Unit(ans("1"))
	// right has two answers
	right := Mplus(Unit(ans("2")), Unit(ans("3")))
	got := Take(Mplus(left, right), -1)
	if len(got) != 3 {
		t.Fatalf("Mplus() yielded %d answers, want 3", len(got))
	}
}

// infiniteFrom returns a stream of infinitely many answers, each a
// distinct fresh symbol, used to test that fair interleaving never lets
// an infinite branch starve a finite sibling.
func infiniteFrom(prefix string, n int) Stream {
	return Delay(func() Stream {
		return consStream{head: ans(prefix + strconv.Itoa(n)), tail: infiniteFrom(prefix, n+1)}
	})
}

func TestMplusFairAgainstInfiniteBranch(t *testing.T) {
	infinite := infiniteFrom("inf", 0)
	finite := Unit(ans("finite"))

	// The finite answer must appear at a finite position in the
	// interleaved stream, even though the left branch never terminates.
	s := Mplus(infinite, finite)
	found := false
	for i := 0; i < 10; i++ {
		head, rest, ok := s.Pull()
		if !ok {
			t.Fatalf("stream ended unexpectedly at position %d", i)
		}
		if _, ok := head[term.Symbol{Name: "finite"}]; ok {
			found = true
			break
		}
		s = rest
	}
	if !found {
		t.Errorf("finite answer did not appear within the first 10 pulls of a fair interleaving")
	}
}

func TestBindFairAgainstInfiniteGenerator(t *testing.T) {
	// g produces an infinite stream for "inf" and a single answer for
	// "finite"; Bind must not let the infinite generator's output starve
	// the finite one.
	src := Mplus(Unit(ans("inf")), Unit(ans("finite")))
	g := func(a subst.Subst) Stream {
		if _, ok := a[term.Symbol{Name: "inf"}]; ok {
			return infiniteFrom("grown", 0)
		}
		return Unit(ans("done"))
	}
	s := Bind(src, g)
	found := false
	for i := 0; i < 20; i++ {
		head, rest, ok := s.Pull()
		if !ok {
			break
		}
		if _, ok := head[term.Symbol{Name: "done"}]; ok {
			found = true
			break
		}
		s = rest
	}
	if !found {
		t.Errorf("Bind starved the finite generator's answer behind an infinite one")
	}
}

func TestMplusNEmptyAndSingle(t *testing.T) {
	if _, _, ok := MplusN().Pull(); ok {
		t.Errorf("MplusN() with no streams should yield nothing")
	}
	single := Unit(ans("x"))
	got := Take(MplusN(single), -1)
	if len(got) != 1 {
		t.Errorf("MplusN(single) should yield exactly one answer, got %d", len(got))
	}
}

func TestMplusNInterleavesMany(t *testing.T) {
	streams := []Stream{Unit(ans("a")), Unit(ans("b")), Unit(ans("c"))}
	got := Take(MplusN(streams...), -1)
	if len(got) != 3 {
		t.Fatalf("MplusN() yielded %d answers, want 3", len(got))
	}
}

func TestTakeRespectsLimit(t *testing.T) {
	s := Mplus(Unit(ans("a")), Unit(ans("b")))
	got := Take(s, 1)
	if len(got) != 1 {
		t.Errorf("Take(s, 1) returned %d answers, want 1", len(got))
	}
}

func TestTakeNegativeMeansUnbounded(t *testing.T) {
	s := Mplus(Unit(ans("a")), Unit(ans("b")))
	got := Take(s, -1)
	if len(got) != 2 {
		t.Errorf("Take(s, -1) returned %d answers, want 2", len(got))
	}
}

func TestFirst(t *testing.T) {
	s := Mplus(Unit(ans("a")), Unit(ans("b")))
	head, ok := First(s)
	if !ok {
		t.Fatalf("First() should succeed on a non-empty stream")
	}
	if _, ok := head[term.Symbol{Name: "a"}]; !ok {
		t.Errorf("First() = %v, want the first answer", head)
	}
	if _, ok := First(Mzero); ok {
		t.Errorf("First(Mzero) should fail")
	}
}
