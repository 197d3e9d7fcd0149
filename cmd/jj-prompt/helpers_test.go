package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/4thel00z/jj-prompt/internal"
	"go.uber.org/zap"
)

type fakeRepo struct {
	commits map[internal.CommitID]*internal.Commit
	view    *internal.View
	wc      internal.CommitID
	empty   bool
}

func (r *fakeRepo) Commit(_ context.Context, id internal.CommitID) (*internal.Commit, error) {
	c, ok := r.commits[id]
	if !ok {
		return nil, fmt.Errorf("commit %s not found", id)
	}
	return c, nil
}

func (r *fakeRepo) View() internal.RefView                         { return r.view }
func (r *fakeRepo) WorkingCopyCommitID() (internal.CommitID, bool) { return r.wc, r.wc != "" }

func (r *fakeRepo) ShortestChangeIDPrefixLen(context.Context, *internal.Commit) (int, error) {
	return 3, nil
}

func (r *fakeRepo) IsEmpty(context.Context, *internal.Commit) (bool, error) {
	return r.empty, nil
}

func (r *fakeRepo) IsDivergent(context.Context, *internal.Commit) (bool, error) {
	return false, nil
}

func (r *fakeRepo) IsHidden(context.Context, *internal.Commit) (bool, error) {
	return false, nil
}

// newFakeRepo is a working copy "wc" on top of "base", which carries the
// bookmark main mirrored on origin.
func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		commits: map[internal.CommitID]*internal.Commit{
			"wc":   {ID: "wc", ChangeID: "qpvuntsmwlqt", ParentIDs: []internal.CommitID{"base"}, Description: "fix prompt"},
			"base": {ID: "base", ChangeID: "zzzzzzzzzzzz", ParentIDs: []internal.CommitID{internal.RootCommitID}},
		},
		view: internal.NewView(
			[]internal.LocalBookmark{{Name: "main", Target: internal.NormalTarget("base")}},
			[]internal.RemoteBookmark{{Name: "main", Remote: "origin", Target: internal.NormalTarget("base"), Tracked: true}},
			nil,
		),
		wc: "wc",
	}
}

func fakeLoader(repo internal.Repository) loaderFunc {
	return func(*internal.Config, *zap.Logger) internal.Loader {
		return func(context.Context, string) (internal.Repository, error) {
			return repo, nil
		}
	}
}

func setupWorkspace(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, internal.WorkspaceDir, "repo", "op_heads", "heads"), 0755); err != nil {
		t.Fatalf("mkdir workspace: %v", err)
	}
	return root
}

// runCmd executes the root command with an isolated config file.
func runCmd(t *testing.T, repo internal.Repository, args ...string) (string, error) {
	t.Helper()
	return runCmdContext(context.Background(), t, repo, args...)
}

func runCmdContext(ctx context.Context, t *testing.T, repo internal.Repository, args ...string) (string, error) {
	t.Helper()
	t.Setenv("NO_COLOR", "")
	t.Setenv("JJ_PROMPT_LOG", "")

	cmd := NewRootCmd("test", fakeLoader(repo))
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	hasConfig := false
	for _, a := range args {
		if a == "--config" {
			hasConfig = true
		}
	}
	if !hasConfig {
		args = append(args, "--config", filepath.Join(t.TempDir(), "config.yaml"))
	}
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)
	return out.String(), err
}
