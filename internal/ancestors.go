package internal

import (
	"context"
	"fmt"
	"sort"
)

const DefaultSearchDepth = 10

type queued struct {
	id    CommitID
	depth int
}

// FindAncestorBookmarks walks the parents of wc breadth-first, up to maxDepth
// hops, and collects the local bookmarks it meets. Each name is reported at
// the smallest distance it was first seen. The walk does not continue past an
// immutable commit.
func FindAncestorBookmarks(
	ctx context.Context,
	store CommitStore,
	view RefView,
	wc *Commit,
	immutable CommitSet,
	maxDepth int,
) ([]Bookmark, error) {
	queue := make([]queued, 0, len(wc.ParentIDs))
	for _, p := range wc.ParentIDs {
		queue = append(queue, queued{id: p, depth: 1})
	}

	visited := map[CommitID]struct{}{}
	distance := map[string]int{}
	var order []string

	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		next := queue[0]
		queue = queue[1:]

		if next.depth > maxDepth {
			continue
		}
		if _, seen := visited[next.id]; seen {
			continue
		}
		visited[next.id] = struct{}{}

		for _, name := range view.LocalBookmarksForCommit(next.id) {
			if _, found := distance[name]; found {
				continue
			}
			distance[name] = next.depth
			order = append(order, name)
		}

		if immutable.Contains(next.id) || next.depth >= maxDepth {
			continue
		}

		commit, err := store.Commit(ctx, next.id)
		if err != nil {
			return nil, fmt.Errorf("get commit %s: %w", next.id.Short(), err)
		}
		for _, p := range commit.ParentIDs {
			queue = append(queue, queued{id: p, depth: next.depth + 1})
		}
	}

	found := make([]Bookmark, 0, len(order))
	for _, name := range order {
		found = append(found, Bookmark{Name: name, Distance: distance[name]})
	}
	sort.SliceStable(found, func(i, j int) bool {
		return found[i].Distance < found[j].Distance
	})
	return found, nil
}
