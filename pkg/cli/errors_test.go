package cli

import (
	"errors"
	"fmt"
	"testing"
)

func TestConfigError_Error(t *testing.T) {
	err := NewConfigError("store.backend", "unknown backend")
	want := "config error in store.backend: unknown backend"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}

	bare := NewConfigError("", "file missing")
	if bare.Error() != "config error: file missing" {
		t.Errorf("Error() = %q, want %q", bare.Error(), "config error: file missing")
	}
}

func TestCommandError_Error(t *testing.T) {
	cause := fmt.Errorf("boom")
	err := NewCommandError("lint", cause)
	want := "command lint failed: boom"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is() = false, want cause unwrapped")
	}
}
