package registry

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const loaderValidSource = `STATUTE voting_rights: "Voting Rights" {
    WHEN AGE >= 18
    THEN GRANT "right to vote"
}
`

const loaderDeprecatedSource = `STATUTE permit: "Permit" {
    WHEN AGE >= 21
    EXCEPT WHEN STATUS == "suspended" "permit suspended"
    THEN GRANT "permit"
}
`

func writeSourceFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile(%s) failed: %v", name, err)
	}
	return path
}

func TestLoader_LoadPath_Directory(t *testing.T) {
	dir := t.TempDir()
	first := writeSourceFile(t, dir, "a.sdl", loaderValidSource)
	second := writeSourceFile(t, dir, "b.statute", loaderValidSource)
	writeSourceFile(t, dir, "notes.txt", "not a statute")

	loader := NewLoader(nil)
	result, err := loader.LoadPath(dir)
	if err != nil {
		t.Fatalf("LoadPath() error = %v", err)
	}

	if len(result.Documents) != 2 {
		t.Fatalf("len(Documents) = %d, want 2", len(result.Documents))
	}
	for _, path := range []string{first, second} {
		if result.Documents[path] == nil {
			t.Errorf("Documents[%s] is nil", path)
		}
	}
	if result.StatuteCount != 2 {
		t.Errorf("StatuteCount = %d, want 2", result.StatuteCount)
	}
	if result.SessionID == "" {
		t.Error("SessionID is empty")
	}
}

func TestLoader_LoadPath_SingleFile(t *testing.T) {
	dir := t.TempDir()
	path := writeSourceFile(t, dir, "one.sdl", loaderValidSource)

	loader := NewLoader(nil)
	result, err := loader.LoadPath(path)
	if err != nil {
		t.Fatalf("LoadPath() error = %v", err)
	}
	if len(result.Documents) != 1 {
		t.Fatalf("len(Documents) = %d, want 1", len(result.Documents))
	}
	doc := result.Documents[path]
	if doc == nil || len(doc.Statutes) != 1 {
		t.Fatalf("Documents[%s] = %v, want one statute", path, doc)
	}
	if doc.Statutes[0].ID != "voting_rights" {
		t.Errorf("statute ID = %q, want %q", doc.Statutes[0].ID, "voting_rights")
	}
}

func TestLoader_LoadPath_WarningsPerFile(t *testing.T) {
	dir := t.TempDir()
	clean := writeSourceFile(t, dir, "clean.sdl", loaderValidSource)
	legacy := writeSourceFile(t, dir, "legacy.sdl", loaderDeprecatedSource)

	loader := NewLoader(nil)
	result, err := loader.LoadPath(dir)
	if err != nil {
		t.Fatalf("LoadPath() error = %v", err)
	}

	if _, ok := result.Warnings[clean]; ok {
		t.Errorf("Warnings[%s] present, want none", clean)
	}
	warnings := result.Warnings[legacy]
	if len(warnings) != 1 {
		t.Fatalf("len(Warnings[%s]) = %d, want 1", legacy, len(warnings))
	}
	if warnings[0].OldSyntax != "EXCEPT" {
		t.Errorf("warning OldSyntax = %q, want %q", warnings[0].OldSyntax, "EXCEPT")
	}
}

func TestLoader_LoadPath_ParseError(t *testing.T) {
	dir := t.TempDir()
	bad := writeSourceFile(t, dir, "bad.sdl", "STATUTE x: \"X\" {\n    THEN GRANT \"y\"\n}\n")

	loader := NewLoader(nil)
	_, err := loader.LoadPath(dir)
	if err == nil {
		t.Fatal("LoadPath() error = nil, want parse failure")
	}
	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("error type = %T, want *LoadError", err)
	}
	if loadErr.FilePath != bad {
		t.Errorf("FilePath = %q, want %q", loadErr.FilePath, bad)
	}
	if loadErr.Cause == nil {
		t.Error("Cause is nil, want parse diagnostics")
	}
}

func TestLoader_LoadPath_MissingPath(t *testing.T) {
	loader := NewLoader(nil)
	_, err := loader.LoadPath(filepath.Join(t.TempDir(), "absent"))
	if err == nil {
		t.Fatal("LoadPath() error = nil, want access failure")
	}
	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("error type = %T, want *LoadError", err)
	}
}

func TestLoader_LoadPath_SizeLimit(t *testing.T) {
	dir := t.TempDir()
	path := writeSourceFile(t, dir, "big.sdl", loaderValidSource)

	loader := NewLoader(&LoaderConfig{MaxFileSize: 8, Extensions: []string{".sdl"}})
	_, err := loader.LoadPath(path)
	if err == nil {
		t.Fatal("LoadPath() error = nil, want size failure")
	}
	if !strings.Contains(err.Error(), "exceeds maximum") {
		t.Errorf("error = %q, want size limit message", err)
	}
}

func TestLoader_OnParse_Success(t *testing.T) {
	dir := t.TempDir()
	writeSourceFile(t, dir, "a.sdl", loaderValidSource)
	writeSourceFile(t, dir, "b.sdl", loaderValidSource)

	type observed struct {
		outcome  string
		statutes int
	}
	var calls []observed
	cfg := DefaultLoaderConfig()
	cfg.OnParse = func(outcome string, duration time.Duration, statutes int) {
		if duration < 0 {
			t.Errorf("OnParse duration = %v, want >= 0", duration)
		}
		calls = append(calls, observed{outcome, statutes})
	}

	loader := NewLoader(cfg)
	if _, err := loader.LoadPath(dir); err != nil {
		t.Fatalf("LoadPath() error = %v", err)
	}

	if len(calls) != 2 {
		t.Fatalf("OnParse called %d times, want 2", len(calls))
	}
	for i, call := range calls {
		if call.outcome != "success" {
			t.Errorf("calls[%d].outcome = %q, want %q", i, call.outcome, "success")
		}
		if call.statutes != 1 {
			t.Errorf("calls[%d].statutes = %d, want 1", i, call.statutes)
		}
	}
}

func TestLoader_OnParse_Error(t *testing.T) {
	var outcomes []string
	cfg := DefaultLoaderConfig()
	cfg.OnParse = func(outcome string, _ time.Duration, statutes int) {
		outcomes = append(outcomes, outcome)
		if statutes != 0 {
			t.Errorf("OnParse statutes = %d, want 0 on error", statutes)
		}
	}

	loader := NewLoader(cfg)
	if _, err := loader.LoadBytes([]byte("STATUTE {"), "bad.sdl"); err == nil {
		t.Fatal("LoadBytes() error = nil, want parse failure")
	}

	if len(outcomes) != 1 || outcomes[0] != "error" {
		t.Errorf("OnParse outcomes = %v, want [error]", outcomes)
	}
}

func TestLoader_LoadBytes(t *testing.T) {
	loader := NewLoader(nil)
	result, err := loader.LoadBytes([]byte(loaderValidSource), "inline.sdl")
	if err != nil {
		t.Fatalf("LoadBytes() error = %v", err)
	}
	if result.StatuteCount != 1 {
		t.Errorf("StatuteCount = %d, want 1", result.StatuteCount)
	}
	if result.Documents["inline.sdl"] == nil {
		t.Error(`Documents["inline.sdl"] is nil`)
	}
}
