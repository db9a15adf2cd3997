package term

// Expr is the surface-expression tree, generic over its info
// payload I. Before inference I is typically a source location; after
// inference it is the pair (type, original info) produced by MapInfo.
type Expr[I any] interface {
	isExpr()
	Info() I
}

// Number is an integer or floating-point literal.
type Number[I any] struct {
	Payload I
	IsFloat bool
	Int     int64
	Float   float64
}

func (Number[I]) isExpr()   {}
func (n Number[I]) Info() I { return n.Payload }

// Const is a non-predicate constant, or a predicate used as a constant
// (IsPredicate). GivenArity is the arity declared at the use site, if any;
// InferredArity is filled in by the preprocessor (out of scope here, but
// threaded through so inference can check it against the structural arity).
type Const[I any] struct {
	Payload       I
	Name          string
	IsPredicate   bool
	GivenArity    *int
	InferredArity int
}

func (Const[I]) isExpr()   {}
func (c Const[I]) Info() I { return c.Payload }

// PredConst is a predicate name used in value position, e.g. passed as an
// argument to a higher-order predicate.
type PredConst[I any] struct {
	Payload       I
	Name          string
	GivenArity    *int
	InferredArity int
}

func (PredConst[I]) isExpr()   {}
func (p PredConst[I]) Info() I { return p.Payload }

// Var is a named logic/individual variable occurrence.
type Var[I any] struct {
	Payload I
	Name    string
}

func (Var[I]) isExpr()   {}
func (v Var[I]) Info() I { return v.Payload }

// AnonVar is the wildcard variable ("_").
type AnonVar[I any] struct {
	Payload I
}

func (AnonVar[I]) isExpr()   {}
func (a AnonVar[I]) Info() I { return a.Payload }

// App is an application of head to args. Whether this is a functional
// application or a predicate application depends on head's nature and is
// resolved during constraint generation.
type App[I any] struct {
	Payload I
	Head    Expr[I]
	Args    []Expr[I]
}

func (App[I]) isExpr()   {}
func (a App[I]) Info() I { return a.Payload }

// Op is an operator application, distinguished from App because operators
// may be declared predicate or non-predicate independent of a lookup.
type Op[I any] struct {
	Payload     I
	Name        string
	IsPredicate bool
	Args        []Expr[I]
}

func (Op[I]) isExpr()   {}
func (o Op[I]) Info() I { return o.Payload }

// Lam is a lambda abstraction: Params are named parameters bound in the
// body's environment (anonymous params never need binding).
type Lam[I any] struct {
	Payload I
	Params  []string
	Body    Expr[I]
}

func (Lam[I]) isExpr()   {}
func (l Lam[I]) Info() I { return l.Payload }

// List is a list literal with an optional tail (cons-cell sugar).
type List[I any] struct {
	Payload  I
	Elements []Expr[I]
	Tail     Expr[I] // nil if absent
}

func (List[I]) isExpr()   {}
func (l List[I]) Info() I { return l.Payload }

// Eq is a unification goal "Lhs = Rhs".
type Eq[I any] struct {
	Payload I
	Lhs     Expr[I]
	Rhs     Expr[I]
}

func (Eq[I]) isExpr()   {}
func (e Eq[I]) Info() I { return e.Payload }

// Paren is a transparent parenthesization; it carries its own info but
// typeOf(Paren(e)) == typeOf(e).
type Paren[I any] struct {
	Payload I
	Inner   Expr[I]
}

func (Paren[I]) isExpr()   {}
func (p Paren[I]) Info() I { return p.Payload }

// Ann is a user type annotation. Reserved: constraint generation always
// fails on Ann with errs.NotImpl.
type Ann[I any] struct {
	Payload    I
	Inner      Expr[I]
	Annotation string // opaque surface-syntax rendering of the declared type
}

func (Ann[I]) isExpr()   {}
func (a Ann[I]) Info() I { return a.Payload }
