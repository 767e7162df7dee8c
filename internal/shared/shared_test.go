package shared

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewLogger(t *testing.T) {
	t.Run("writes to the given writer with the app prefix", func(t *testing.T) {
		buf := &bytes.Buffer{}
		logger := NewLogger(buf)

		logger.Info("session restored")

		output := buf.String()
		if !strings.Contains(output, loggerPrefix) {
			t.Errorf("expected prefix %q in output, got %q", loggerPrefix, output)
		}
		if !strings.Contains(output, "session restored") {
			t.Errorf("expected message in output, got %q", output)
		}
	})

	t.Run("nil writer defaults to stderr", func(t *testing.T) {
		logger := NewLogger(nil)
		if logger == nil {
			t.Fatal("expected a logger")
		}
	})
}

func TestGenerateID(t *testing.T) {
	first := GenerateID()
	second := GenerateID()

	if first == "" {
		t.Fatal("expected non-empty ID")
	}
	if len(first) != 36 {
		t.Errorf("expected UUID string length 36, got %d", len(first))
	}
	if first == second {
		t.Error("expected distinct IDs across calls")
	}
}

func TestOpenBrowser(t *testing.T) {
	t.Run("honors the browser override", func(t *testing.T) {
		t.Setenv("ENUNANOTA_BROWSER", "true")

		if err := OpenBrowser("http://127.0.0.1:3000/callback"); err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})

	t.Run("unsupported platform fails", func(t *testing.T) {
		t.Setenv("ENUNANOTA_BROWSER", "")
		original := getRuntime
		getRuntime = func() string { return "plan9" }
		defer func() { getRuntime = original }()

		err := OpenBrowser("http://127.0.0.1:3000/callback")
		if err == nil {
			t.Fatal("expected error for unsupported platform")
		}
		if !strings.Contains(err.Error(), "unsupported platform") {
			t.Errorf("expected platform error, got %v", err)
		}
	})
}
