package internal

import (
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger returns a console logger on w when debug output is requested
// (debug flag or JJ_PROMPT_LOG=debug) and a no-op logger otherwise, so that a
// prompt never prints diagnostics unasked.
func NewLogger(w io.Writer, debug bool) *zap.Logger {
	if !debug && !strings.EqualFold(os.Getenv("JJ_PROMPT_LOG"), "debug") {
		return zap.NewNop()
	}
	if w == nil {
		w = os.Stderr
	}

	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(cfg),
		zapcore.Lock(zapcore.AddSync(w)),
		zapcore.DebugLevel,
	)
	return zap.New(core).Named("jj-prompt")
}
