package internal

import "slices"

type CommitSet map[CommitID]struct{}

func (s CommitSet) Add(id CommitID) {
	s[id] = struct{}{}
}

func (s CommitSet) Contains(id CommitID) bool {
	_, ok := s[id]
	return ok
}

// FindImmutableHeads returns the commits treated as immutable roots: trunk
// bookmarks on a conventional upstream, remote bookmarks without a local
// counterpart, and every tag. Absent or conflicted targets are skipped.
func FindImmutableHeads(view RefView) CommitSet {
	heads := CommitSet{}

	for _, rb := range view.RemoteBookmarksMatching(MatchAll(), MatchAll()) {
		if rb.Remote == InternalRemote {
			continue
		}

		if !isTrunk(rb) && !view.LocalBookmark(rb.Name).IsAbsent() {
			continue
		}
		if id, ok := rb.Target.AsNormal(); ok {
			heads.Add(id)
		}
	}

	for _, tag := range view.Tags() {
		if id, ok := tag.Target.AsNormal(); ok {
			heads.Add(id)
		}
	}

	return heads
}

func isTrunk(rb RemoteBookmark) bool {
	return slices.Contains(TrunkRemotes, rb.Remote) && slices.Contains(TrunkNames, rb.Name)
}
