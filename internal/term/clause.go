package term

// Gets distinguishes a clause body's commitment: Mono bodies are
// conventional Prolog ":-" bodies (constrained to type o); Poly bodies make
// no such commitment, letting the body's type flow through to the head
// .
type Gets int

const (
	Mono Gets = iota
	Poly
)

// SHead is a clause head. Args is a list of argument lists because parsing
// may curry the head across several applications; InferredArity is the
// length of the flattened argument list.
type SHead[I any] struct {
	Payload       I
	Name          string
	Args          [][]Expr[I]
	InferredArity int
}

// FlatArgs returns the head's arguments flattened to a single list of
// length InferredArity.
func (h SHead[I]) FlatArgs() []Expr[I] {
	out := make([]Expr[I], 0, h.InferredArity)
	for _, group := range h.Args {
		out = append(out, group...)
	}
	return out
}

// ClauseBody is the optional body of a clause; a fact has no ClauseBody.
type ClauseBody[I any] struct {
	Gets Gets
	Expr Expr[I]
}

// Clause is a definite rule (Body != nil) or a fact (Body == nil).
type Clause[I any] struct {
	Head SHead[I]
	Body *ClauseBody[I]
}

// IsFact reports whether c has no body.
func (c Clause[I]) IsFact() bool { return c.Body == nil }

// PredDef groups every clause of one (name, arity) predicate.
type PredDef[I any] struct {
	Name    string
	Arity   int
	Clauses []Clause[I]
}

// Group is a dependency group: a mutually recursive clique of predicate
// definitions, inferred together.
type Group[I any] struct {
	Preds []PredDef[I]
}

// Program is a DAG of dependency groups in reverse topological order: a
// group may only refer to predicates defined in itself or in an earlier
// group of the slice.
type Program[I any] []Group[I]
