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

	log.Info().Msg("test message")

	output := buf.String()
	if output == "" {
		t.Error("Expected log output, got empty string")
	}
	if !strings.Contains(output, "test message") {
		t.Errorf("Expected output to contain 'test message', got: %s", output)
	}
}

func TestLevelFromEnv(t *testing.T) {
	t.Setenv("CASHBOOK_LOG_LEVEL", "warn")

	buf := &bytes.Buffer{}
	log := NewWithWriter(buf)

	log.Info().Msg("filtered")
	log.Warn().Msg("kept")

	output := buf.String()
	if strings.Contains(output, "filtered") {
		t.Errorf("Expected info message to be filtered at warn level, got: %s", output)
	}
	if !strings.Contains(output, "kept") {
		t.Errorf("Expected warn message in output, got: %s", output)
	}
}

func TestFromContext(t *testing.T) {
	buf := &bytes.Buffer{}
	testLog := NewWithWriter(buf)
	ctx := WithContext(context.Background(), testLog)

	retrieved := FromContext(ctx)
	retrieved.Info().Msg("via context")

	if !strings.Contains(buf.String(), "via context") {
		t.Errorf("Expected logger from context to write to the original buffer, got: %s", buf.String())
	}
}

func TestFromContextMissing(t *testing.T) {
	log := FromContext(context.Background())
	// Must return a usable default, not panic or a disabled logger.
	log.Debug().Msg("default logger")
}
