package internal

import (
	"errors"
)

var (
	ErrNotRepository  = errors.New("not a jj repository")
	ErrLoadRepository = errors.New("load repository")
	ErrNoWorkingCopy  = errors.New("no working-copy commit")
)

// IsNoStatus reports whether err is an expected repository state that a
// prompt should render as nothing.
func IsNoStatus(err error) bool {
	return errors.Is(err, ErrNotRepository) ||
		errors.Is(err, ErrLoadRepository) ||
		errors.Is(err, ErrNoWorkingCopy)
}

// Bookmark is a local bookmark found on or below the working-copy commit.
// Distance is the number of parent hops from the working copy.
type Bookmark struct {
	Name     string `json:"name"`
	Distance int    `json:"distance"`
}

// Status is the prompt summary of a working-copy commit.
type Status struct {
	RepoRoot          string     `json:"repo_root"`
	ChangeID          string     `json:"change_id"`
	ChangeIDPrefixLen int        `json:"change_id_prefix_len"`
	Bookmarks         []Bookmark `json:"bookmarks"`
	Description       string     `json:"description"`
	Empty             bool       `json:"empty"`
	Conflict          bool       `json:"conflict"`
	Divergent         bool       `json:"divergent"`
	Hidden            bool       `json:"hidden"`
	Immutable         bool       `json:"immutable"`
	HasRemote         bool       `json:"has_remote"`
	IsSynced          bool       `json:"is_synced"`
}
