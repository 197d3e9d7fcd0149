package internal

import "testing"

func TestCheckRemoteSync(t *testing.T) {
	locals := []LocalBookmark{
		local("main", "aaa"),
		local("feature", "bbb"),
		local("solo", "ccc"),
		local("gitonly", "ddd"),
		local("forked", "eee"),
	}
	remotes := []RemoteBookmark{
		remote("main", "origin", "aaa"),
		remote("feature", "origin", "old"),
		remote("gitonly", InternalRemote, "ddd"),
		remote("forked", "origin", "xxx"),
		remote("forked", "upstream", "eee"),
	}
	view := NewView(locals, remotes, nil)

	tests := []struct {
		name       string
		bookmarks  []Bookmark
		wantRemote bool
		wantSynced bool
	}{
		{"no bookmarks", nil, false, true},
		{"synced", []Bookmark{{Name: "main"}}, true, true},
		{"behind", []Bookmark{{Name: "feature"}}, true, false},
		{"local only", []Bookmark{{Name: "solo"}}, false, true},
		{"git remote ignored", []Bookmark{{Name: "gitonly"}}, false, true},
		{"any remote matches", []Bookmark{{Name: "forked"}}, true, true},
		{"only first bookmark counts", []Bookmark{{Name: "feature"}, {Name: "main", Distance: 1}}, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hasRemote, isSynced := CheckRemoteSync(view, tt.bookmarks)
			if hasRemote != tt.wantRemote || isSynced != tt.wantSynced {
				t.Errorf("CheckRemoteSync() = (%v, %v), want (%v, %v)",
					hasRemote, isSynced, tt.wantRemote, tt.wantSynced)
			}
		})
	}
}
