package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const WorkspaceDir = ".jj"

// FindWorkspaceRoot walks up from start looking for a .jj directory.
func FindWorkspaceRoot(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolve path: %w", err)
	}

	for {
		info, err := os.Stat(filepath.Join(dir, WorkspaceDir))
		if err == nil && info.IsDir() {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%w: %s", ErrNotRepository, start)
		}
		dir = parent
	}
}

// RepoDir returns the shared repository directory of a workspace. Secondary
// workspaces store the path to it in .jj/repo as a file.
func RepoDir(workspaceRoot string) (string, error) {
	repoPath := filepath.Join(workspaceRoot, WorkspaceDir, "repo")

	info, err := os.Stat(repoPath)
	if err != nil {
		return "", fmt.Errorf("stat repo dir: %w", err)
	}
	if info.IsDir() {
		return repoPath, nil
	}

	data, err := os.ReadFile(repoPath)
	if err != nil {
		return "", fmt.Errorf("read repo pointer: %w", err)
	}
	target := strings.TrimSpace(string(data))
	if !filepath.IsAbs(target) {
		target = filepath.Join(filepath.Dir(repoPath), target)
	}
	return filepath.Clean(target), nil
}

// OpHeadsDir is the directory jj rewrites whenever an operation completes.
func OpHeadsDir(workspaceRoot string) (string, error) {
	repoDir, err := RepoDir(workspaceRoot)
	if err != nil {
		return "", err
	}
	return filepath.Join(repoDir, "op_heads", "heads"), nil
}
