package internal

import (
	"bytes"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestNewLoggerDisabled(t *testing.T) {
	t.Setenv("JJ_PROMPT_LOG", "")
	var buf bytes.Buffer

	log := NewLogger(&buf, false)
	log.Debug("hidden", zap.String("k", "v"))
	log.Error("also hidden")

	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}

func TestNewLoggerDebug(t *testing.T) {
	t.Setenv("JJ_PROMPT_LOG", "")
	var buf bytes.Buffer

	NewLogger(&buf, true).Debug("loaded jj repository", zap.Int("commits", 3))

	out := buf.String()
	for _, want := range []string{"DEBUG", "jj-prompt", "loaded jj repository", "commits"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
}

func TestNewLoggerFromEnv(t *testing.T) {
	t.Setenv("JJ_PROMPT_LOG", "DEBUG")
	var buf bytes.Buffer

	NewLogger(&buf, false).Debug("from env")

	if !strings.Contains(buf.String(), "from env") {
		t.Errorf("expected env to enable logging, got %q", buf.String())
	}
}
