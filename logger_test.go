package texpack

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestSetLogger(t *testing.T) {
	defer SetLogger(nil)

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))

	Logger().Info("hello", "k", "v")
	if !strings.Contains(buf.String(), "hello") {
		t.Errorf("log output missing message: %q", buf.String())
	}
}

func TestSetLogger_NilRestoresSilence(t *testing.T) {
	SetLogger(nil)
	l := Logger()
	if l == nil {
		t.Fatal("Logger returned nil")
	}
	// The nop handler must report disabled at every level.
	if l.Enabled(context.Background(), slog.LevelError) {
		t.Error("nil logger should disable all output")
	}
}
