package v1

import "github.com/4thel00z/jj-prompt/internal"

// Bookmark is a local bookmark on or below the working-copy commit.
type Bookmark struct {
	Name     string `json:"name"`
	Distance int    `json:"distance"`
}

// Status summarizes a jj working-copy commit.
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

// FormatOptions controls prompt rendering. Start from DefaultFormatOptions.
type FormatOptions = internal.FormatOptions

// DefaultFormatOptions returns the documented defaults.
func DefaultFormatOptions() FormatOptions {
	return internal.DefaultFormatOptions()
}

func fromInternal(st *internal.Status) *Status {
	bookmarks := make([]Bookmark, 0, len(st.Bookmarks))
	for _, b := range st.Bookmarks {
		bookmarks = append(bookmarks, Bookmark{Name: b.Name, Distance: b.Distance})
	}
	return &Status{
		RepoRoot:          st.RepoRoot,
		ChangeID:          st.ChangeID,
		ChangeIDPrefixLen: st.ChangeIDPrefixLen,
		Bookmarks:         bookmarks,
		Description:       st.Description,
		Empty:             st.Empty,
		Conflict:          st.Conflict,
		Divergent:         st.Divergent,
		Hidden:            st.Hidden,
		Immutable:         st.Immutable,
		HasRemote:         st.HasRemote,
		IsSynced:          st.IsSynced,
	}
}
