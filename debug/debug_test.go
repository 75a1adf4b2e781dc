package debug

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLogger_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")

	d := NewLogger(true, path)
	d.Printf("parsed: %s", "take lantern")
	d.Println("turn complete")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "DEBUG MODE ENABLED") {
		t.Error("expected enable banner in log")
	}
	if !strings.Contains(content, "parsed: take lantern") {
		t.Error("expected Printf output in log")
	}
	if !strings.Contains(content, "turn complete") {
		t.Error("expected Println output in log")
	}
}

func TestLogger_DisabledIsSilent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")

	d := NewLogger(false, path)
	if d.Enabled() {
		t.Error("disabled logger reports enabled")
	}
	d.Printf("should not appear")

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("disabled logger should not create the log file")
	}
}
