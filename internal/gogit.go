package internal

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/cache"
	"github.com/go-git/go-git/v5/storage/filesystem"
)

const gitBackendType = "git"

var ErrNotGitBacked = errors.New("store is not git-backed")

// GitCommitStore reads commit parents and descriptions of a git-backed jj
// store directly from its git object database. Change ids live in jj's own
// tables and are not populated.
type GitCommitStore struct {
	repo   *git.Repository
	gitDir string
}

// OpenGitCommitStore opens the git repository behind repoDir (.jj/repo).
func OpenGitCommitStore(repoDir string) (*GitCommitStore, error) {
	storeDir := filepath.Join(repoDir, "store")

	kind, err := os.ReadFile(filepath.Join(storeDir, "type"))
	if err != nil {
		return nil, fmt.Errorf("read store type: %w", err)
	}
	if strings.TrimSpace(string(kind)) != gitBackendType {
		return nil, ErrNotGitBacked
	}

	target, err := os.ReadFile(filepath.Join(storeDir, "git_target"))
	if err != nil {
		return nil, fmt.Errorf("read git target: %w", err)
	}
	gitDir := strings.TrimSpace(string(target))
	if !filepath.IsAbs(gitDir) {
		gitDir = filepath.Join(storeDir, gitDir)
	}

	return OpenGitDir(filepath.Clean(gitDir))
}

// OpenGitDir opens a git directory (bare repository or .git) for reading.
func OpenGitDir(gitDir string) (*GitCommitStore, error) {
	if _, err := os.Stat(gitDir); err != nil {
		return nil, fmt.Errorf("stat git dir: %w", err)
	}

	fs := osfs.New(gitDir)
	storage := filesystem.NewStorage(fs, cache.NewObjectLRUDefault())

	repo, err := git.Open(storage, nil)
	if err != nil {
		return nil, fmt.Errorf("open git repository: %w", err)
	}

	return &GitCommitStore{repo: repo, gitDir: gitDir}, nil
}

func (s *GitCommitStore) GitDir() string {
	return s.gitDir
}

// Commit maps a git commit onto jj's model: a git commit without parents is
// a child of the virtual root commit.
func (s *GitCommitStore) Commit(ctx context.Context, id CommitID) (*Commit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if id == RootCommitID {
		return &Commit{ID: RootCommitID}, nil
	}
	if !plumbing.IsHash(string(id)) {
		return nil, fmt.Errorf("invalid commit id %q", id)
	}

	obj, err := s.repo.CommitObject(plumbing.NewHash(string(id)))
	if err != nil {
		return nil, fmt.Errorf("get commit: %w", err)
	}

	parents := make([]CommitID, 0, len(obj.ParentHashes))
	for _, h := range obj.ParentHashes {
		parents = append(parents, CommitID(h.String()))
	}
	if len(parents) == 0 {
		parents = append(parents, RootCommitID)
	}

	return &Commit{
		ID:          id,
		ParentIDs:   parents,
		Description: obj.Message,
	}, nil
}
