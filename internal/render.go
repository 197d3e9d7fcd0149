package internal

import (
	"strconv"
	"strings"
)

const ellipsis = "…"

// Render formats a Status as a single prompt line. Segments are joined with
// single spaces; empty segments are left out.
func Render(st *Status, opts FormatOptions) string {
	style := func(color, text string) string {
		if text == "" {
			return ""
		}
		text = promptText(opts.Shell, text)
		if opts.NoColor {
			return text
		}
		return zeroWidth(opts.Shell, ResolveColor(color)) + text + zeroWidth(opts.Shell, ColorReset)
	}

	var segments []string
	add := func(s string) {
		if s != "" {
			segments = append(segments, s)
		}
	}

	add(style(opts.IconColor, opts.Icon))
	add(renderChangeID(st, opts, style))
	add(renderBookmarks(st, opts, style))
	add(promptText(opts.Shell, renderFlags(st, opts)))

	if st.Empty {
		add(style(opts.StatusColor, opts.EmptyText))
	}

	desc := opts.NoDescText
	if st.Description != "" {
		desc = truncate(st.Description, opts.DescLen)
	}
	add(style(opts.StatusColor, desc))

	return strings.Join(segments, " ")
}

func renderChangeID(st *Status, opts FormatOptions, style func(string, string) string) string {
	n := min(max(opts.ChangeIDLen, 0), len(st.ChangeID))
	id := st.ChangeID[:n]
	split := min(max(st.ChangeIDPrefixLen, 0), n)
	return style(opts.ChangeIDColor, id[:split]) + style(opts.ChangeIDRestColor, id[split:])
}

func renderBookmarks(st *Status, opts FormatOptions, style func(string, string) string) string {
	if len(st.Bookmarks) == 0 {
		return ""
	}

	names := make([]string, 0, len(st.Bookmarks))
	for i, b := range st.Bookmarks {
		name := b.Name
		if opts.ShowDistance && b.Distance > 0 {
			name += "+" + strconv.Itoa(b.Distance)
		}
		if i == 0 && st.HasRemote && !st.IsSynced {
			name += opts.UnsyncedSymbol
		}
		names = append(names, style(opts.BookmarkColor, name))
	}
	return strings.Join(names, " ")
}

func renderFlags(st *Status, opts FormatOptions) string {
	var b strings.Builder
	if st.Conflict {
		b.WriteString(opts.ConflictSymbol)
	}
	if st.Divergent {
		b.WriteString(opts.DivergentSymbol)
	}
	if st.Hidden {
		b.WriteString(opts.HiddenSymbol)
	}
	if st.Immutable {
		b.WriteString(opts.ImmutableSymbol)
	}
	return b.String()
}

// truncate keeps the first limit characters of s and marks the cut with an
// ellipsis. Characters are Unicode scalar values, not bytes.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:max(limit, 0)]) + ellipsis
}
