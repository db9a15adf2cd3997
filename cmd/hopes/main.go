// Command hopes is a small demo driver over the core: it builds the
// classic append/3 program in-memory (surface-syntax parsing belongs to
// a separate front end), proves a fixed goal against it, and prints the
// answer stream one substitution per line, colored when stdout is a
// terminal.
package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/errikos/hopes"
	"github.com/errikos/hopes/internal/pterm"
	"github.com/errikos/hopes/internal/subst"
	"github.com/errikos/hopes/internal/term"
)

func main() {
	fresh := term.NewFresher()
	db := appendProgram(fresh)
	goal := appendGoal(fresh)

	colorize := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())

	answers := hopes.Prove(db, goal, fresh)
	n := 0
	for {
		ans, rest, ok := answers.Pull()
		if !ok {
			break
		}
		n++
		printAnswer(n, ans, colorize)
		answers = rest
	}
	if n == 0 {
		fmt.Println("no.")
	}
}

func printAnswer(n int, ans subst.Subst, colorize bool) {
	for v, t := range ans {
		line := fmt.Sprintf("%s = %s", v.Name, render(t))
		if colorize {
			line = "\033[32m" + line + "\033[0m"
		}
		fmt.Printf("[%d] %s\n", n, line)
	}
}

func render(t pterm.Term) string {
	switch x := t.(type) {
	case pterm.Rigid:
		return x.Sym.Name
	case pterm.Flex:
		return "_" + x.Var.Name
	case pterm.App:
		s := render(x.Head) + "("
		for i, a := range x.Args {
			if i > 0 {
				s += ", "
			}
			s += render(a)
		}
		return s + ")"
	case pterm.Tup:
		s := "("
		for i, e := range x.Elems {
			if i > 0 {
				s += ", "
			}
			s += render(e)
		}
		return s + ")"
	default:
		return "?"
	}
}

// list builds a Prolog-style cons list out of elems, terminated by tail
// (a fresh Flex for an open list, or the nil-list Rigid for a closed one).
func list(elems []pterm.Term, tail pterm.Term) pterm.Term {
	out := tail
	for i := len(elems) - 1; i >= 0; i-- {
		out = pterm.App{Head: consSym, Args: []pterm.Term{elems[i], out}}
	}
	return out
}

var (
	nilSym  = pterm.Rigid{Sym: term.Symbol{Name: "[]"}, Arity: 0}
	consSym = pterm.Rigid{Sym: term.Symbol{Name: "."}, Arity: 2}
)

func num(n int) pterm.Term {
	return pterm.Rigid{Sym: term.Symbol{Name: fmt.Sprint(n)}, Arity: 0}
}

// appendProgram builds the canonical two-clause append/3 definition
// directly as pterm values.
func appendProgram(fresh *term.Fresher) *pterm.Program {
	ys := pterm.Flex{Var: fresh.Next("Ys")}
	fact := pterm.Clause{
		Head:     pterm.Rigid{Sym: term.Symbol{Name: "append"}, Arity: 3},
		HeadArgs: []pterm.Term{nilSym, ys, ys},
	}

	x := pterm.Flex{Var: fresh.Next("X")}
	xs := pterm.Flex{Var: fresh.Next("Xs")}
	ys2 := pterm.Flex{Var: fresh.Next("Ys")}
	zs := pterm.Flex{Var: fresh.Next("Zs")}
	rule := pterm.Clause{
		Head: pterm.Rigid{Sym: term.Symbol{Name: "append"}, Arity: 3},
		HeadArgs: []pterm.Term{
			list([]pterm.Term{x}, xs),
			ys2,
			list([]pterm.Term{x}, zs),
		},
		Body: []pterm.Term{
			pterm.App{
				Head: pterm.Rigid{Sym: term.Symbol{Name: "append"}, Arity: 3},
				Args: []pterm.Term{xs, ys2, zs},
			},
		},
	}

	return pterm.NewProgram([]pterm.Clause{fact, rule})
}

// appendGoal builds append([1,2], [3], R).
func appendGoal(fresh *term.Fresher) pterm.Goal {
	r := pterm.Flex{Var: fresh.Next("R")}
	return pterm.Goal{
		pterm.App{
			Head: pterm.Rigid{Sym: term.Symbol{Name: "append"}, Arity: 3},
			Args: []pterm.Term{
				list([]pterm.Term{num(1), num(2)}, nilSym),
				list([]pterm.Term{num(3)}, nilSym),
				r,
			},
		},
	}
}
