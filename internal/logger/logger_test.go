package logger

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestNewWithWriter(t *testing.T) {
	buf := &bytes.Buffer{}
	log := NewWithWriter(buf)

	log.Info().Str("component", "test").Msg("hello")

	out := buf.String()
	if out == "" {
		t.Fatal("expected log output, got empty string")
	}
	if !strings.Contains(out, "hello") {
		t.Errorf("expected output to contain message, got: %s", out)
	}
	if !strings.Contains(out, "component") {
		t.Errorf("expected output to contain field, got: %s", out)
	}
}

func TestContextRoundTrip(t *testing.T) {
	buf := &bytes.Buffer{}
	log := NewWithWriter(buf)

	ctx := WithContext(context.Background(), log)
	ctxLog := FromContext(ctx)
	ctxLog.Info().Msg("from context")

	if !strings.Contains(buf.String(), "from context") {
		t.Errorf("expected logger from context to write to buffer, got: %s", buf.String())
	}
}

func TestFromContextDefault(t *testing.T) {
	// No logger stored: must still return a usable logger, not panic.
	log := FromContext(context.Background())
	log.Debug().Msg("default logger")
}
