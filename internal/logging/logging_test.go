package logging

import (
	"bytes"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNewLevels(t *testing.T) {
	var buf bytes.Buffer
	log, err := New("test", "warn", zapcore.AddSync(&buf))
	if err != nil {
		t.Fatal(err)
	}
	log.Infow("hidden")
	log.Warnw("shown", "id", "0x100")
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("info line written at warn level")
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "0x100") || !strings.Contains(out, "test") {
		t.Errorf("unexpected output %q", out)
	}
}

func TestNewInvalidLevel(t *testing.T) {
	if _, err := New("test", "loud"); err == nil {
		t.Error("expected an error for an unknown level")
	}
	if Must("test", "loud") == nil {
		t.Error("Must returned nil")
	}
}
