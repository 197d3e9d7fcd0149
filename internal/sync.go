package internal

// CheckRemoteSync reports whether the closest bookmark has a remote
// counterpart and whether any such remote points where the local one does.
// Only bookmarks[0] is considered.
func CheckRemoteSync(view RefView, bookmarks []Bookmark) (hasRemote, isSynced bool) {
	if len(bookmarks) == 0 {
		return false, true
	}

	name := bookmarks[0].Name
	local := view.LocalBookmark(name)

	for _, rb := range view.RemoteBookmarksMatching(MatchExact(name), MatchAll()) {
		if rb.Remote == InternalRemote {
			continue
		}
		hasRemote = true
		if rb.Target.Equal(local) {
			isSynced = true
			break
		}
	}

	return hasRemote, isSynced || !hasRemote
}
