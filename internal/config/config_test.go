package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.MaxAnswers != 0 {
		t.Errorf("default MaxAnswers = %d, want 0 (unbounded)", cfg.MaxAnswers)
	}
	if cfg.FreshPrefix != "_G" {
		t.Errorf("default FreshPrefix = %q, want %q", cfg.FreshPrefix, "_G")
	}
}

func TestParseConfigOverridesDefaults(t *testing.T) {
	data := []byte("max_answers: 5\nfresh_prefix: _Q\ntrace: true\ncache_db: /tmp/answers.db\n")
	cfg, err := ParseConfig(data, "test.yaml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.MaxAnswers != 5 || cfg.FreshPrefix != "_Q" || !cfg.Trace || cfg.CacheDB != "/tmp/answers.db" {
		t.Errorf("ParseConfig() = %+v, unexpected fields", cfg)
	}
}

func TestParseConfigKeepsDefaultsForOmittedFields(t *testing.T) {
	cfg, err := ParseConfig([]byte("trace: true\n"), "test.yaml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.FreshPrefix != "_G" {
		t.Errorf("omitted fresh_prefix should keep its default, got %q", cfg.FreshPrefix)
	}
}

func TestParseConfigRejectsNegativeMaxAnswers(t *testing.T) {
	_, err := ParseConfig([]byte("max_answers: -1\n"), "test.yaml")
	if err == nil {
		t.Fatalf("expected a validation error for a negative max_answers")
	}
}

func TestParseConfigRejectsEmptyFreshPrefix(t *testing.T) {
	_, err := ParseConfig([]byte("fresh_prefix: \"\"\n"), "test.yaml")
	if err == nil {
		t.Fatalf("expected a validation error for an empty fresh_prefix")
	}
}

func TestParseConfigRejectsMalformedYAML(t *testing.T) {
	_, err := ParseConfig([]byte("not: [valid"), "test.yaml")
	if err == nil {
		t.Fatalf("expected a parse error for malformed YAML")
	}
}

func TestLoadConfigReadsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hopes.yaml")
	if err := os.WriteFile(path, []byte("max_answers: 3\n"), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}
	if cfg.MaxAnswers != 3 {
		t.Errorf("LoadConfig() MaxAnswers = %d, want 3", cfg.MaxAnswers)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatalf("expected an error for a missing config file")
	}
}

func TestFindConfigWalksUpToParent(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "hopes.yaml"), []byte("trace: true\n"), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	nested := filepath.Join(root, "a", "b", "c")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("failed to create nested dirs: %v", err)
	}
	got, err := FindConfig(nested)
	if err != nil {
		t.Fatalf("FindConfig() failed: %v", err)
	}
	want := filepath.Join(root, "hopes.yaml")
	if got != want {
		t.Errorf("FindConfig() = %q, want %q", got, want)
	}
}

func TestFindConfigReturnsEmptyWhenNoneFound(t *testing.T) {
	dir := t.TempDir()
	got, err := FindConfig(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "" {
		t.Errorf("FindConfig() = %q, want empty string when no hopes.yaml exists", got)
	}
}

func TestFindConfigPrefersYmlWhenYamlAbsent(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "hopes.yml"), []byte("trace: true\n"), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	got, err := FindConfig(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := filepath.Join(dir, "hopes.yml")
	if got != want {
		t.Errorf("FindConfig() = %q, want %q", got, want)
	}
}
