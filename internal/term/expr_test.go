package term

import (
	"reflect"
	"testing"
)

// loc is a stand-in source-location payload, the kind the parser
// front end attaches to every node.
type loc struct{ Line int }

func num(n int64) Expr[loc]   { return Number[loc]{Payload: loc{}, Int: n} }
func v(name string) Expr[loc] { return Var[loc]{Payload: loc{}, Name: name} }
func anon() Expr[loc]         { return AnonVar[loc]{Payload: loc{}} }
func cst(name string) Expr[loc] {
	return Const[loc]{Payload: loc{}, Name: name}
}

func app(head Expr[loc], args ...Expr[loc]) Expr[loc] {
	return App[loc]{Payload: loc{}, Head: head, Args: args}
}

func TestNameOf(t *testing.T) {
	tests := []struct {
		name string
		e    Expr[loc]
		want string
	}{
		{"const", cst("foo"), "foo"},
		{"var", v("X"), "X"},
		{"app head const", app(cst("f"), num(1)), "f"},
		{"paren transparent", Paren[loc]{Payload: loc{}, Inner: cst("g")}, "g"},
		{"number has no name", num(1), ""},
		{"anon has no name", anon(), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NameOf(tt.e); got != tt.want {
				t.Errorf("NameOf() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestArityOf(t *testing.T) {
	e := app(cst("f"), num(1), num(2))
	if got := ArityOf(e); got != 2 {
		t.Errorf("ArityOf() = %d, want 2", got)
	}
	if got := ArityOf(num(1)); got != 0 {
		t.Errorf("ArityOf(Number) = %d, want 0", got)
	}
	paren := Paren[loc]{Payload: loc{}, Inner: app(cst("f"), num(1), num(2), num(3))}
	if got := ArityOf(paren); got != 3 {
		t.Errorf("ArityOf(Paren) = %d, want 3", got)
	}
}

func TestVarsOfOrderAndDedup(t *testing.T) {
	// f(X, Y, X, _): X repeats, Y is new, AnonVar never contributes.
	e := app(cst("f"), v("X"), v("Y"), v("X"), anon())
	got := VarsOf(e)
	want := []Symbol{{Name: "X"}, {Name: "Y"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("VarsOf() = %v, want %v", got, want)
	}
}

func TestVarsOfNested(t *testing.T) {
	e := Eq[loc]{Payload: loc{}, Lhs: v("A"), Rhs: List[loc]{
		Payload:  loc{},
		Elements: []Expr[loc]{v("B"), v("A")},
		Tail:     v("C"),
	}}
	got := VarsOf[loc](e)
	want := []Symbol{{Name: "A"}, {Name: "B"}, {Name: "C"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("VarsOf() = %v, want %v", got, want)
	}
}

func TestEqualStructuralIgnoresPayload(t *testing.T) {
	a := Var[loc]{Payload: loc{Line: 1}, Name: "X"}
	b := Var[loc]{Payload: loc{Line: 99}, Name: "X"}
	if !EqualStructural[loc](a, b) {
		t.Errorf("EqualStructural must ignore info payloads")
	}
	c := Var[loc]{Payload: loc{Line: 1}, Name: "Y"}
	if EqualStructural[loc](a, c) {
		t.Errorf("EqualStructural must compare names")
	}
}

func TestEqualStructuralCompound(t *testing.T) {
	a := app(cst("f"), v("X"), num(1))
	b := app(cst("f"), v("X"), num(1))
	c := app(cst("f"), v("X"), num(2))
	if !EqualStructural[loc](a, b) {
		t.Errorf("expected structurally equal applications to compare equal")
	}
	if EqualStructural[loc](a, c) {
		t.Errorf("expected applications with differing args to compare unequal")
	}
}

func TestMapInfoPreservesShape(t *testing.T) {
	e := app(cst("f"), v("X"), List[loc]{
		Payload:  loc{},
		Elements: []Expr[loc]{num(1), anon()},
	})
	mapped := MapInfo(e, func(l loc) int { return l.Line + 1 })
	// A payload-only transform must not change names/arities/shape.
	if NameOf(mapped) != NameOf(e) {
		t.Errorf("MapInfo changed NameOf: got %q want %q", NameOf(mapped), NameOf(e))
	}
	if ArityOf(mapped) != ArityOf(e) {
		t.Errorf("MapInfo changed ArityOf: got %d want %d", ArityOf(mapped), ArityOf(e))
	}
}
