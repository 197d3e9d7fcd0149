package v1

import (
	"go.uber.org/zap"

	"github.com/4thel00z/jj-prompt/internal"
)

// Option configures a Client.
type Option func(*clientConfig)

type clientConfig struct {
	jjBinary    string
	searchDepth int
	logger      *zap.Logger
	loader      internal.Loader
}

// WithJJBinary sets the jj executable used to read repositories.
func WithJJBinary(path string) Option {
	return func(c *clientConfig) {
		c.jjBinary = path
	}
}

// WithSearchDepth limits how many parent hops are searched for bookmarks.
func WithSearchDepth(depth int) Option {
	return func(c *clientConfig) {
		c.searchDepth = depth
	}
}

// WithLogger receives diagnostics about repositories that yield no status.
func WithLogger(log *zap.Logger) Option {
	return func(c *clientConfig) {
		c.logger = log
	}
}

func withLoader(load internal.Loader) Option {
	return func(c *clientConfig) {
		c.loader = load
	}
}
