package internal

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

const ChangeIDStoredLen = 8

// Collector builds a Status for the workspace containing a path.
type Collector struct {
	load  Loader
	depth int
	log   *zap.Logger
}

func NewCollector(load Loader, depth int, log *zap.Logger) *Collector {
	if log == nil {
		log = zap.NewNop()
	}
	return &Collector{load: load, depth: depth, log: log}
}

// Collect reads the working-copy commit of the workspace containing path.
// Expected absences are reported as ErrNotRepository, ErrLoadRepository or
// ErrNoWorkingCopy; see IsNoStatus.
func (c *Collector) Collect(ctx context.Context, path string) (*Status, error) {
	root, err := FindWorkspaceRoot(path)
	if err != nil {
		return nil, err
	}

	repo, err := c.load(ctx, root)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadRepository, err)
	}

	wcID, ok := repo.WorkingCopyCommitID()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoWorkingCopy, root)
	}

	commit, err := repo.Commit(ctx, wcID)
	if err != nil {
		return nil, fmt.Errorf("get commit: %w", err)
	}

	changeID := commit.ChangeID[:min(ChangeIDStoredLen, len(commit.ChangeID))]

	prefixLen, err := repo.ShortestChangeIDPrefixLen(ctx, commit)
	if err != nil {
		c.log.Debug("shortest prefix unavailable", zap.Error(err))
		prefixLen = ChangeIDStoredLen
	}
	prefixLen = min(prefixLen, len(changeID))

	empty, err := repo.IsEmpty(ctx, commit)
	if err != nil {
		return nil, fmt.Errorf("check empty: %w", err)
	}

	divergent, err := repo.IsDivergent(ctx, commit)
	if err != nil {
		c.log.Debug("resolve change id", zap.Error(err))
		divergent = false
	}

	hidden, err := repo.IsHidden(ctx, commit)
	if err != nil {
		c.log.Debug("check hidden", zap.Error(err))
		hidden = false
	}

	view := repo.View()
	immutable := FindImmutableHeads(view)

	bookmarks := []Bookmark{}
	for _, name := range view.LocalBookmarksForCommit(wcID) {
		bookmarks = append(bookmarks, Bookmark{Name: name, Distance: 0})
	}

	ancestors, err := FindAncestorBookmarks(ctx, repo, view, commit, immutable, c.depth)
	if err != nil {
		return nil, fmt.Errorf("find ancestor bookmarks: %w", err)
	}
	bookmarks = append(bookmarks, ancestors...)

	hasRemote, isSynced := CheckRemoteSync(view, bookmarks)

	c.log.Debug("collected status",
		zap.String("root", root),
		zap.String("commit", wcID.Short()),
		zap.Int("bookmarks", len(bookmarks)),
		zap.Int("immutable_heads", len(immutable)),
	)

	return &Status{
		RepoRoot:          root,
		ChangeID:          changeID,
		ChangeIDPrefixLen: prefixLen,
		Bookmarks:         bookmarks,
		Description:       firstLine(commit.Description),
		Empty:             empty,
		Conflict:          commit.Conflict,
		Divergent:         divergent,
		Hidden:            hidden,
		Immutable:         immutable.Contains(wcID),
		HasRemote:         hasRemote,
		IsSynced:          isSynced,
	}, nil
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return strings.TrimSuffix(line, "\r")
}
