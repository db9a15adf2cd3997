package trace

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
)

func newTestLogger(buf *bytes.Buffer) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(buf)
	log.SetLevel(logrus.DebugLevel)
	log.SetFormatter(&logrus.TextFormatter{DisableColors: true})
	return log
}

func TestNewSessionAssignsUniqueIDs(t *testing.T) {
	var buf bytes.Buffer
	log := newTestLogger(&buf)
	s1 := NewSession(log)
	s2 := NewSession(log)
	if s1.ID == "" {
		t.Fatalf("expected a non-empty session id")
	}
	if s1.ID == s2.ID {
		t.Errorf("two sessions should never share an id, got %q twice", s1.ID)
	}
}

func TestNewSessionFallsBackToStandardLogger(t *testing.T) {
	s := NewSession(nil)
	if s.ID == "" {
		t.Errorf("expected a session id even with a nil logger")
	}
}

func TestDerivationLogsSessionAndStep(t *testing.T) {
	var buf bytes.Buffer
	s := NewSession(newTestLogger(&buf))
	s.Derivation("rigid", "p(1)")
	out := buf.String()
	if !bytes.Contains([]byte(out), []byte("session="+s.ID)) {
		t.Errorf("Derivation log line missing session id, got %q", out)
	}
	if !bytes.Contains([]byte(out), []byte("step=1")) {
		t.Errorf("Derivation log line missing step=1, got %q", out)
	}
	if !bytes.Contains([]byte(out), []byte("rule=rigid")) {
		t.Errorf("Derivation log line missing rule=rigid, got %q", out)
	}
	if !bytes.Contains([]byte(out), []byte("p(1)")) {
		t.Errorf("Derivation log line missing the atom message, got %q", out)
	}
}

func TestDerivationIncrementsStepCounter(t *testing.T) {
	var buf bytes.Buffer
	s := NewSession(newTestLogger(&buf))
	s.Derivation("rigid", "p(1)")
	s.Derivation("hores", "P(1)")
	if s.nDeriv != 2 {
		t.Errorf("expected 2 derivations recorded, got %d", s.nDeriv)
	}
}

func TestNoRuleLogsAtWarnLevel(t *testing.T) {
	var buf bytes.Buffer
	s := NewSession(newTestLogger(&buf))
	s.NoRule("q(X)")
	out := buf.String()
	if !bytes.Contains([]byte(out), []byte("level=warning")) {
		t.Errorf("NoRule should log at warning level, got %q", out)
	}
	if !bytes.Contains([]byte(out), []byte("atom=")) || !bytes.Contains([]byte(out), []byte("q(X)")) {
		t.Errorf("NoRule log line missing atom field, got %q", out)
	}
}

func TestAnswerLogsAtDebugLevel(t *testing.T) {
	var buf bytes.Buffer
	s := NewSession(newTestLogger(&buf))
	s.Answer(1)
	out := buf.String()
	if !bytes.Contains([]byte(out), []byte("level=debug")) {
		t.Errorf("Answer should log at debug level, got %q", out)
	}
}

func TestDoneLogsAnswersAndDerivations(t *testing.T) {
	var buf bytes.Buffer
	s := NewSession(newTestLogger(&buf))
	s.Derivation("rigid", "p(1)")
	s.Done(1)
	out := buf.String()
	if !bytes.Contains([]byte(out), []byte("level=info")) {
		t.Errorf("Done should log at info level, got %q", out)
	}
	if !bytes.Contains([]byte(out), []byte("answers=1")) {
		t.Errorf("Done log line missing answers field, got %q", out)
	}
	if !bytes.Contains([]byte(out), []byte("derivations=1")) {
		t.Errorf("Done log line missing derivations field, got %q", out)
	}
}
