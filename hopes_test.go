package hopes

import (
	"testing"

	"github.com/errikos/hopes/internal/errs"
	"github.com/errikos/hopes/internal/pterm"
	"github.com/errikos/hopes/internal/term"
	"github.com/errikos/hopes/internal/types"
)

func TestValidateGoalRejectsEmpty(t *testing.T) {
	if err := ValidateGoal(pterm.Goal{}); !errs.Of(err, errs.NoRule) {
		t.Fatalf("expected NoRule for an empty goal, got %v", err)
	}
}

func TestValidateGoalAcceptsNonEmpty(t *testing.T) {
	goal := pterm.Goal{pterm.App{Head: pterm.Rigid{Sym: term.Symbol{Name: "p"}}}}
	if err := ValidateGoal(goal); err != nil {
		t.Errorf("unexpected error for a non-empty goal: %v", err)
	}
}

func TestUnifyFacade(t *testing.T) {
	x := pterm.Flex{Var: term.Symbol{Name: "X"}}
	a := pterm.Rigid{Sym: term.Symbol{Name: "a"}}
	s, err := Unify(x, a)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := s[x.Var]; got != pterm.Term(a) {
		t.Errorf("Unify(X, a) should bind X to a, got %v", got)
	}
}

func TestFreshenInstantiatesDistinctVars(t *testing.T) {
	fresh := term.NewFresher()
	alpha := term.Symbol{Name: "alpha"}
	poly := types.Poly{Vars: []term.Symbol{alpha}, Body: types.Fun{
		Args: []types.Type{types.Var{Sym: alpha}},
		Ret:  types.Prop{},
	}}
	t1 := Freshen(poly, fresh)
	t2 := Freshen(poly, fresh)
	v1 := t1.(types.Fun).Args[0].(types.Var).Sym
	v2 := t2.(types.Fun).Args[0].(types.Var).Sym
	if v1.Equal(v2) {
		t.Errorf("two Freshen calls must allocate distinct variables, got %v both times", v1)
	}
}

func TestAnswerCountBounded(t *testing.T) {
	fact1 := pterm.Clause{Head: pterm.Rigid{Sym: term.Symbol{Name: "p"}, Arity: 1}, HeadArgs: []pterm.Term{pterm.Rigid{Sym: term.Symbol{Name: "1"}}}}
	fact2 := pterm.Clause{Head: pterm.Rigid{Sym: term.Symbol{Name: "p"}, Arity: 1}, HeadArgs: []pterm.Term{pterm.Rigid{Sym: term.Symbol{Name: "2"}}}}
	db := pterm.NewProgram([]pterm.Clause{fact1, fact2})
	fresh := term.NewFresher()
	goal := pterm.Goal{pterm.App{Head: pterm.Rigid{Sym: term.Symbol{Name: "p"}}, Args: []pterm.Term{pterm.Flex{Var: term.Symbol{Name: "X"}}}}}

	s := Prove(db, goal, fresh)
	if n := AnswerCount(s, 1); n != 1 {
		t.Errorf("AnswerCount(s, 1) = %d, want 1", n)
	}
}

func TestAnswerCountUnbounded(t *testing.T) {
	fact1 := pterm.Clause{Head: pterm.Rigid{Sym: term.Symbol{Name: "p"}, Arity: 1}, HeadArgs: []pterm.Term{pterm.Rigid{Sym: term.Symbol{Name: "1"}}}}
	fact2 := pterm.Clause{Head: pterm.Rigid{Sym: term.Symbol{Name: "p"}, Arity: 1}, HeadArgs: []pterm.Term{pterm.Rigid{Sym: term.Symbol{Name: "2"}}}}
	db := pterm.NewProgram([]pterm.Clause{fact1, fact2})
	fresh := term.NewFresher()
	goal := pterm.Goal{pterm.App{Head: pterm.Rigid{Sym: term.Symbol{Name: "p"}}, Args: []pterm.Term{pterm.Flex{Var: term.Symbol{Name: "X"}}}}}

	s := Prove(db, goal, fresh)
	if n := AnswerCount(s, 0); n != 2 {
		t.Errorf("AnswerCount(s, 0) = %d, want 2 (unbounded)", n)
	}
}

func TestTypecheckSimpleFact(t *testing.T) {
	// id(X, X).
	prog := term.Program[int]{
		term.Group[int]{Preds: []term.PredDef[int]{
			{
				Name:  "id",
				Arity: 2,
				Clauses: []term.Clause[int]{
					{
						Head: term.SHead[int]{
							Name:          "id",
							Args:          [][]term.Expr[int]{{term.Var[int]{Name: "X"}}, {term.Var[int]{Name: "X"}}},
							InferredArity: 2,
						},
					},
				},
			},
		}},
	}
	typed, env, err := Typecheck(prog)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(typed) != 1 || len(typed[0].Preds) != 1 {
		t.Fatalf("expected the typed program to preserve its shape, got %v", typed)
	}
	if _, ok := env.Lookup("id", 2); !ok {
		t.Errorf("expected id/2 to be bound in the resulting environment")
	}
}
