// Package errs defines the error kinds shared by the unifier, the type
// solver, and proof search. Kinds are carried as typed errors rather than
// sentinel values so that callers can attach origin context (the node that
// produced an offending constraint) without losing the ability to test for
// a specific kind with errors.Is.
package errs

// Kind identifies one of the error categories from the language's error
// handling design. It is a string so that Error() messages are readable
// without a lookup table.
type Kind string

const (
	// Clash: unifying two incompatible term shapes.
	Clash Kind = "clash"
	// OccurCheck: a variable occurs in its own binding candidate.
	OccurCheck Kind = "occurs_check"
	// Arity: tuple/list length mismatch during unification.
	Arity Kind = "arity"
	// TypeClash: the type constraint solver cannot proceed.
	TypeClash Kind = "type_clash"
	// NotImpl: a feature reserved but not implemented in this revision.
	NotImpl Kind = "not_implemented"
	// NoRule: proof search has no applicable resolution rule for an atom.
	NoRule Kind = "no_rule"
	// IncomparableRigid: waybelow applied to two unequal rigid symbols.
	IncomparableRigid Kind = "incomparable_rigid"
)

// Error is the concrete error type for every kind above. Origin, when
// non-nil, is the syntax node that produced the failing constraint; it is
// retained for error reporting only and ignored by Is/equality checks.
type Error struct {
	Kind   Kind
	Msg    string
	Origin any
}

func (e *Error) Error() string {
	if e.Msg == "" {
		return string(e.Kind)
	}
	return string(e.Kind) + ": " + e.Msg
}

// New builds an Error of the given kind with no origin context.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// WithOrigin returns a copy of e carrying the given origin node. It is used
// by the type constraint solver, which must retain the node that produced a
// constraint purely for error reporting.
func (e *Error) WithOrigin(origin any) *Error {
	return &Error{Kind: e.Kind, Msg: e.Msg, Origin: origin}
}

// Of reports whether err is an *Error of the given kind.
func Of(err error, kind Kind) bool {
	e, ok := err.(*Error)
	return ok && e.Kind == kind
}

// Is reports whether target is an *Error of the same kind, so that
// errors.Is(err, New(kind, "")) matches any error of that kind whatever its
// message or origin.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}
