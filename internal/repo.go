package internal

import (
	"context"
)

// Commit holds the commit attributes the status engine reads.
type Commit struct {
	ID          CommitID
	ChangeID    string // reverse-hex, full length
	ParentIDs   []CommitID
	Description string
	Conflict    bool
}

// CommitStore looks up commits by id.
type CommitStore interface {
	Commit(ctx context.Context, id CommitID) (*Commit, error)
}

// Repository is a loaded, read-only jj repository at its operation head.
type Repository interface {
	CommitStore

	View() RefView
	WorkingCopyCommitID() (CommitID, bool)

	ShortestChangeIDPrefixLen(ctx context.Context, c *Commit) (int, error)
	IsEmpty(ctx context.Context, c *Commit) (bool, error)
	IsDivergent(ctx context.Context, c *Commit) (bool, error)
	IsHidden(ctx context.Context, c *Commit) (bool, error)
}

// Loader opens the repository rooted at root.
type Loader func(ctx context.Context, root string) (Repository, error)
