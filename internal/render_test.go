package internal

import (
	"regexp"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderExample(t *testing.T) {
	st := &Status{
		ChangeID:          "abcdefgh",
		ChangeIDPrefixLen: 3,
		Bookmarks:         []Bookmark{{Name: "main", Distance: 0}},
		Description:       "desc",
		Empty:             true,
		Conflict:          true,
		Hidden:            true,
	}

	opts := DefaultFormatOptions()
	opts.Icon = "*"
	opts.ConflictSymbol = "C"
	opts.DivergentSymbol = "D"
	opts.HiddenSymbol = "H"
	opts.ImmutableSymbol = "I"

	got := Render(st, opts)
	assert.Equal(t, "* abcdefgh main CH (empty) desc", ansi.Strip(got))
}

func TestRenderColors(t *testing.T) {
	st := &Status{ChangeID: "abcdefgh", ChangeIDPrefixLen: 3, Description: "desc"}
	opts := DefaultFormatOptions()

	got := Render(st, opts)

	assert.True(t, strings.HasPrefix(got, "\x1b[34m@\x1b[0m "), "icon: %q", got)
	assert.Contains(t, got, "\x1b[1;35mabc\x1b[0m\x1b[2;35mdefgh\x1b[0m")
	assert.Contains(t, got, "\x1b[32mdesc\x1b[0m")
}

func TestRenderNoColor(t *testing.T) {
	st := &Status{ChangeID: "abcdefgh", ChangeIDPrefixLen: 3, Description: "desc"}
	opts := DefaultFormatOptions()
	opts.NoColor = true

	got := Render(st, opts)
	assert.Equal(t, "@ abcdefgh desc", got)
	assert.NotContains(t, got, "\x1b")
}

func TestRenderNoDescription(t *testing.T) {
	st := &Status{ChangeID: "abcdefgh", ChangeIDPrefixLen: 2}
	assert.Equal(t, "@ abcdefgh (no description set)", ansi.Strip(Render(st, DefaultFormatOptions())))
}

func TestRenderOmitsEmptySegments(t *testing.T) {
	st := &Status{ChangeID: "abcdefgh", ChangeIDPrefixLen: 2, Description: "x"}
	opts := DefaultFormatOptions()
	opts.Icon = ""
	opts.ChangeIDLen = 0

	assert.Equal(t, "x", ansi.Strip(Render(st, opts)))
}

func TestRenderChangeIDLen(t *testing.T) {
	tests := []struct {
		name      string
		length    int
		prefixLen int
		want      string
	}{
		{"shorter", 4, 2, "@ abcd d"},
		{"longer than stored", 20, 2, "@ abcdefgh d"},
		{"prefix beyond length", 3, 8, "@ abc d"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := &Status{ChangeID: "abcdefgh", ChangeIDPrefixLen: tt.prefixLen, Description: "d"}
			opts := DefaultFormatOptions()
			opts.ChangeIDLen = tt.length
			assert.Equal(t, tt.want, ansi.Strip(Render(st, opts)))
		})
	}
}

func TestRenderFlagsOrder(t *testing.T) {
	st := &Status{
		ChangeID:    "abcdefgh",
		Description: "d",
		Conflict:    true,
		Divergent:   true,
		Hidden:      true,
		Immutable:   true,
	}
	got := ansi.Strip(Render(st, DefaultFormatOptions()))
	assert.Equal(t, "@ abcdefgh ×?⊘◆ d", got)
}

func TestRenderBookmarks(t *testing.T) {
	st := &Status{
		ChangeID:    "abcdefgh",
		Description: "d",
		Bookmarks: []Bookmark{
			{Name: "feature", Distance: 0},
			{Name: "main", Distance: 3},
		},
		HasRemote: true,
		IsSynced:  false,
	}

	opts := DefaultFormatOptions()
	assert.Equal(t, "@ abcdefgh feature main d", ansi.Strip(Render(st, opts)))

	opts.ShowDistance = true
	opts.UnsyncedSymbol = "*"
	assert.Equal(t, "@ abcdefgh feature* main+3 d", ansi.Strip(Render(st, opts)))
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		limit int
		want  string
	}{
		{"hello world", 4, "hell…"},
		{"hello", 5, "hello"},
		{"hello", 10, "hello"},
		{"hello", 0, "…"},
		{"", 0, ""},
		{"héllo wörld", 5, "héllo…"},
		{"日本語のテキスト", 3, "日本語…"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, truncate(tt.in, tt.limit), "truncate(%q, %d)", tt.in, tt.limit)
	}
}

func TestRenderTruncatesDescription(t *testing.T) {
	st := &Status{ChangeID: "abcdefgh", Description: "hello world"}
	opts := DefaultFormatOptions()
	opts.DescLen = 4
	assert.Equal(t, "@ abcdefgh hell…", ansi.Strip(Render(st, opts)))
}

func TestRenderZeroWidthEscapes(t *testing.T) {
	st := &Status{
		ChangeID:          "abcdefgh",
		ChangeIDPrefixLen: 3,
		Bookmarks:         []Bookmark{{Name: "main"}},
		Description:       "desc",
		Empty:             true,
		Conflict:          true,
	}

	tests := []struct {
		shell   string
		wrapped *regexp.Regexp
	}{
		{ShellBash, regexp.MustCompile("\x01\x1b\\[[0-9;]*m\x02")},
		{ShellZsh, regexp.MustCompile("%\\{\x1b\\[[0-9;]*m%\\}")},
	}

	for _, tt := range tests {
		t.Run(tt.shell, func(t *testing.T) {
			opts := DefaultFormatOptions()
			opts.Shell = tt.shell

			got := Render(st, opts)
			require.NotEmpty(t, tt.wrapped.FindAllString(got, -1))

			bare := tt.wrapped.ReplaceAllString(got, "")
			assert.NotContains(t, bare, "\x1b", "unwrapped escape in %q", got)
			assert.Equal(t, "@ abcdefgh main × (empty) desc", bare)
		})
	}
}

func TestRenderZshEscapesPercent(t *testing.T) {
	st := &Status{ChangeID: "abcdefgh", Description: "100% done", Bookmarks: []Bookmark{{Name: "50%"}}}
	opts := DefaultFormatOptions()
	opts.NoColor = true
	opts.Shell = ShellZsh
	opts.ConflictSymbol = "%"
	st.Conflict = true

	assert.Equal(t, "@ abcdefgh 50%% %% 100%% done", Render(st, opts))

	opts.Shell = ShellBash
	assert.Equal(t, "@ abcdefgh 50% % 100% done", Render(st, opts))
}
