package internal

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"
)

type StatusInput struct {
	Path string // defaults to the working directory
}

type PromptInput struct {
	Path   string
	Format FormatOptions
}

// StatusUseCase answers the status query. Every repository failure is
// reported as an absent status; the cause only reaches the debug log.
type StatusUseCase struct {
	collector *Collector
	log       *zap.Logger
}

func NewStatusUseCase(collector *Collector, log *zap.Logger) *StatusUseCase {
	if log == nil {
		log = zap.NewNop()
	}
	return &StatusUseCase{collector: collector, log: log}
}

// Execute returns nil without an error when no status is available.
func (uc *StatusUseCase) Execute(ctx context.Context, input StatusInput) (*Status, error) {
	path := input.Path
	if path == "" {
		wd, err := os.Getwd()
		if err != nil {
			uc.log.Debug("get working directory", zap.Error(err))
			return nil, nil
		}
		path = wd
	}

	st, err := uc.collector.Collect(ctx, path)
	if err != nil {
		if IsNoStatus(err) {
			uc.log.Debug("no status", zap.String("path", path), zap.Error(err))
		} else {
			uc.log.Debug("status read failed", zap.String("path", path), zap.Error(err))
		}
		return nil, nil
	}
	return st, nil
}

// PromptUseCase answers the formatted-prompt query.
type PromptUseCase struct {
	status *StatusUseCase
}

func NewPromptUseCase(status *StatusUseCase) *PromptUseCase {
	return &PromptUseCase{status: status}
}

// Execute validates the format options before touching the repository and
// returns "" when no status is available.
func (uc *PromptUseCase) Execute(ctx context.Context, input PromptInput) (string, error) {
	if err := input.Format.Validate(); err != nil {
		return "", fmt.Errorf("format options: %w", err)
	}

	st, err := uc.status.Execute(ctx, StatusInput{Path: input.Path})
	if err != nil || st == nil {
		return "", err
	}
	return Render(st, input.Format), nil
}
