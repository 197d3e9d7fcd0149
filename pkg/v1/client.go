package v1

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/4thel00z/jj-prompt/internal"
)

// Client answers status and prompt queries for jj workspaces.
type Client struct {
	status *internal.StatusUseCase
	prompt *internal.PromptUseCase
}

// New creates a new Client with the given options.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		jjBinary:    "jj",
		searchDepth: internal.DefaultSearchDepth,
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	depth, err := internal.ParseNonNegative("search depth", cfg.searchDepth)
	if err != nil {
		return nil, err
	}

	loader := cfg.loader
	if loader == nil {
		loader = internal.NewJJLoader(internal.JJOptions{
			Runner:      internal.NewExecRunner(cfg.jjBinary),
			SearchDepth: depth,
			Log:         cfg.logger,
		})
	}

	status := internal.NewStatusUseCase(internal.NewCollector(loader, depth, cfg.logger), cfg.logger)
	return &Client{
		status: status,
		prompt: internal.NewPromptUseCase(status),
	}, nil
}

// Status returns the status of the workspace containing path, or nil when
// there is none. An empty path means the working directory.
func (c *Client) Status(ctx context.Context, path string) (*Status, error) {
	st, err := c.status.Execute(ctx, internal.StatusInput{Path: path})
	if err != nil {
		return nil, fmt.Errorf("status: %w", err)
	}
	if st == nil {
		return nil, nil
	}
	return fromInternal(st), nil
}

// Prompt renders the workspace containing path. It returns "" when there is
// no status and an error only for invalid options.
func (c *Client) Prompt(ctx context.Context, path string, opts FormatOptions) (string, error) {
	line, err := c.prompt.Execute(ctx, internal.PromptInput{Path: path, Format: opts})
	if err != nil {
		return "", fmt.Errorf("prompt: %w", err)
	}
	return line, nil
}

// Close releases any resources held by the client.
func (c *Client) Close() error {
	return nil
}
