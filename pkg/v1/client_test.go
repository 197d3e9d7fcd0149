package v1

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/4thel00z/jj-prompt/internal"
)

type stubRepo struct {
	commits map[internal.CommitID]*internal.Commit
	view    *internal.View
}

func (r *stubRepo) Commit(_ context.Context, id internal.CommitID) (*internal.Commit, error) {
	if c, ok := r.commits[id]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("commit %s not found", id)
}

func (r *stubRepo) View() internal.RefView                         { return r.view }
func (r *stubRepo) WorkingCopyCommitID() (internal.CommitID, bool) { return "wc", true }

func (r *stubRepo) ShortestChangeIDPrefixLen(context.Context, *internal.Commit) (int, error) {
	return 1, nil
}

func (r *stubRepo) IsEmpty(context.Context, *internal.Commit) (bool, error) {
	return true, nil
}

func (r *stubRepo) IsDivergent(context.Context, *internal.Commit) (bool, error) {
	return false, nil
}

func (r *stubRepo) IsHidden(context.Context, *internal.Commit) (bool, error) {
	return false, nil
}

func setupClientTest(t *testing.T) (*Client, string) {
	t.Helper()
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, ".jj", "repo"), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	repo := &stubRepo{
		commits: map[internal.CommitID]*internal.Commit{
			"wc":                  {ID: "wc", ChangeID: "xyzzyxyzzy", ParentIDs: []internal.CommitID{internal.RootCommitID}},
			internal.RootCommitID: {ID: internal.RootCommitID},
		},
		view: internal.NewView(
			[]internal.LocalBookmark{{Name: "topic", Target: internal.NormalTarget("wc")}},
			nil, nil,
		),
	}
	load := func(context.Context, string) (internal.Repository, error) { return repo, nil }

	client, err := New(withLoader(load))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })

	return client, root
}

func TestClientStatus(t *testing.T) {
	client, root := setupClientTest(t)

	st, err := client.Status(context.Background(), root)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if st == nil {
		t.Fatal("expected a status")
	}
	if st.ChangeID != "xyzzyxyz" {
		t.Errorf("change id = %q", st.ChangeID)
	}
	if len(st.Bookmarks) != 1 || st.Bookmarks[0] != (Bookmark{Name: "topic", Distance: 0}) {
		t.Errorf("bookmarks = %+v", st.Bookmarks)
	}
	if !st.Empty || st.HasRemote || !st.IsSynced {
		t.Errorf("unexpected flags: %+v", st)
	}
}

func TestClientStatusOutsideRepository(t *testing.T) {
	client, _ := setupClientTest(t)

	st, err := client.Status(context.Background(), t.TempDir())
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if st != nil {
		t.Errorf("expected nil status, got %+v", st)
	}
}

func TestClientPrompt(t *testing.T) {
	client, root := setupClientTest(t)

	opts := DefaultFormatOptions()
	opts.NoColor = true

	line, err := client.Prompt(context.Background(), root, opts)
	if err != nil {
		t.Fatalf("prompt: %v", err)
	}
	if want := "@ xyzzyxyz topic (empty) (no description set)"; line != want {
		t.Errorf("prompt = %q, want %q", line, want)
	}
}

func TestClientPromptInvalidOptions(t *testing.T) {
	client, root := setupClientTest(t)

	opts := DefaultFormatOptions()
	opts.ChangeIDLen = -1

	_, err := client.Prompt(context.Background(), root, opts)
	if !errors.Is(err, internal.ErrValidation) {
		t.Errorf("err = %v, want validation error", err)
	}
}

func TestNewRejectsNegativeDepth(t *testing.T) {
	if _, err := New(WithSearchDepth(-1)); !errors.Is(err, internal.ErrValidation) {
		t.Errorf("err = %v, want validation error", err)
	}
}

func TestNewDefaults(t *testing.T) {
	client, err := New(WithJJBinary("/nonexistent/jj"), WithLogger(nil))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	st, err := client.Status(context.Background(), t.TempDir())
	if err != nil || st != nil {
		t.Errorf("Status outside repo = %v, %v; want nil, nil", st, err)
	}
}
