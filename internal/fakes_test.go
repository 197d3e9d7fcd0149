package internal

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// fakeStore serves commits from a map and counts lookups.
type fakeStore struct {
	commits map[CommitID]*Commit
	lookups map[CommitID]int
}

func newFakeStore(commits ...*Commit) *fakeStore {
	s := &fakeStore{commits: map[CommitID]*Commit{}, lookups: map[CommitID]int{}}
	for _, c := range commits {
		s.commits[c.ID] = c
	}
	return s
}

func (s *fakeStore) Commit(_ context.Context, id CommitID) (*Commit, error) {
	s.lookups[id]++
	c, ok := s.commits[id]
	if !ok {
		return nil, fmt.Errorf("commit %s not found", id)
	}
	return c, nil
}

func commit(id string, parents ...string) *Commit {
	c := &Commit{ID: CommitID(id), ChangeID: "zzzzzzzzzzzzzzzz"}
	for _, p := range parents {
		c.ParentIDs = append(c.ParentIDs, CommitID(p))
	}
	return c
}

func local(name, target string) LocalBookmark {
	return LocalBookmark{Name: name, Target: NormalTarget(CommitID(target))}
}

func remote(name, remoteName, target string) RemoteBookmark {
	return RemoteBookmark{Name: name, Remote: remoteName, Target: NormalTarget(CommitID(target)), Tracked: true}
}

// fakeRepository lets each test override the lookups it cares about.
type fakeRepository struct {
	*fakeStore
	view RefView
	wcID CommitID

	noWorkingCopy bool

	prefixLenFn func(*Commit) (int, error)
	emptyFn     func(*Commit) (bool, error)
	divergentFn func(*Commit) (bool, error)
	hiddenFn    func(*Commit) (bool, error)
}

func (r *fakeRepository) View() RefView {
	return r.view
}

func (r *fakeRepository) WorkingCopyCommitID() (CommitID, bool) {
	if r.noWorkingCopy {
		return "", false
	}
	return r.wcID, true
}

func (r *fakeRepository) ShortestChangeIDPrefixLen(_ context.Context, c *Commit) (int, error) {
	if r.prefixLenFn != nil {
		return r.prefixLenFn(c)
	}
	return 2, nil
}

func (r *fakeRepository) IsEmpty(_ context.Context, c *Commit) (bool, error) {
	if r.emptyFn != nil {
		return r.emptyFn(c)
	}
	return false, nil
}

func (r *fakeRepository) IsDivergent(_ context.Context, c *Commit) (bool, error) {
	if r.divergentFn != nil {
		return r.divergentFn(c)
	}
	return false, nil
}

func (r *fakeRepository) IsHidden(_ context.Context, c *Commit) (bool, error) {
	if r.hiddenFn != nil {
		return r.hiddenFn(c)
	}
	return false, nil
}

func loaderFor(repo Repository) Loader {
	return func(context.Context, string) (Repository, error) {
		return repo, nil
	}
}

// setupWorkspace creates a directory containing an empty .jj/repo.
func setupWorkspace(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, WorkspaceDir, "repo", "op_heads", "heads"), 0755); err != nil {
		t.Fatalf("mkdir workspace: %v", err)
	}
	return root
}
