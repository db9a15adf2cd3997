// Package trace provides per-search structured logging: a unique
// session id for each top-level Prove call and a logger that annotates
// every line with it, so interleaved branches of a fair search can still
// be told apart in the log.
package trace

import (
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Session identifies one top-level proof search for logging purposes.
type Session struct {
	ID     string
	log    *logrus.Entry
	nDeriv int
}

// NewSession starts a session with a fresh id, logging through log (the
// caller's configured logrus instance, or logrus.StandardLogger() if nil).
func NewSession(log *logrus.Logger) *Session {
	if log == nil {
		log = logrus.StandardLogger()
	}
	id := uuid.NewString()
	return &Session{ID: id, log: log.WithField("session", id)}
}

// Derivation logs one resolution step taken during the search, tagged
// with the rule that fired (rigid-clause resolution or set growth).
func (s *Session) Derivation(rule, atom string) {
	s.nDeriv++
	s.log.WithField("step", s.nDeriv).WithField("rule", rule).Debug(atom)
}

// NoRule logs that no resolution rule applied to an atom: a dead branch,
// not necessarily a bug, so it's logged at Warn rather than Error.
func (s *Session) NoRule(atom string) {
	s.log.WithField("atom", atom).Warn("no resolution rule applies")
}

// Answer logs that the search yielded an answer.
func (s *Session) Answer(n int) {
	s.log.WithField("answer", n).Debug("search yielded an answer")
}

// Done logs the end of a session, after count answers were produced.
func (s *Session) Done(count int) {
	s.log.WithField("answers", count).WithField("derivations", s.nDeriv).Info("search finished")
}
