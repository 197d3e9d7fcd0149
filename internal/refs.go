package internal

import (
	"slices"
	"sort"
)

// CommitID is the hex encoding of a commit's content hash.
type CommitID string

// RootCommitID is the id of jj's virtual root commit.
const RootCommitID CommitID = "0000000000000000000000000000000000000000"

func (id CommitID) String() string {
	return string(id)
}

// Short returns the first 12 characters of the id.
func (id CommitID) Short() string {
	if len(id) <= 12 {
		return string(id)
	}
	return string(id[:12])
}

const (
	// InternalRemote tracks git refs inside jj and is never a collaboration remote.
	InternalRemote = "git"
)

var (
	TrunkRemotes = []string{"origin", "upstream"}
	TrunkNames   = []string{"main", "master", "trunk"}
)

// RefTarget is where a ref points. A conflicted ref has more than one add.
type RefTarget struct {
	Removes []CommitID
	Adds    []CommitID
}

func NormalTarget(id CommitID) RefTarget {
	return RefTarget{Adds: []CommitID{id}}
}

func AbsentTarget() RefTarget {
	return RefTarget{}
}

func (t RefTarget) IsAbsent() bool {
	return len(t.Adds) == 0 && len(t.Removes) == 0
}

func (t RefTarget) IsConflicted() bool {
	return len(t.Removes) > 0 || len(t.Adds) > 1
}

// AsNormal returns the single target commit if the ref is neither absent nor conflicted.
func (t RefTarget) AsNormal() (CommitID, bool) {
	if len(t.Removes) != 0 || len(t.Adds) != 1 {
		return "", false
	}
	return t.Adds[0], true
}

func (t RefTarget) Equal(other RefTarget) bool {
	return slices.Equal(t.Removes, other.Removes) && slices.Equal(t.Adds, other.Adds)
}

type LocalBookmark struct {
	Name   string
	Target RefTarget
}

type RemoteBookmark struct {
	Name    string
	Remote  string
	Target  RefTarget
	Tracked bool
}

type Tag struct {
	Name   string
	Target RefTarget
}

// StringMatcher selects ref or remote names.
type StringMatcher func(string) bool

func MatchAll() StringMatcher {
	return func(string) bool { return true }
}

func MatchExact(want string) StringMatcher {
	return func(s string) bool { return s == want }
}

// RefView is a read-only view of the repository's references.
type RefView interface {
	LocalBookmarks() []LocalBookmark
	LocalBookmark(name string) RefTarget
	LocalBookmarksForCommit(id CommitID) []string
	RemoteBookmarksMatching(name, remote StringMatcher) []RemoteBookmark
	Tags() []Tag
}

// View is an in-memory snapshot of the repository's references.
type View struct {
	locals  []LocalBookmark
	remotes []RemoteBookmark
	tags    []Tag
	byName  map[string]int
}

// NewView builds a snapshot. Entries are ordered by name, then remote.
func NewView(locals []LocalBookmark, remotes []RemoteBookmark, tags []Tag) *View {
	v := &View{
		locals:  slices.Clone(locals),
		remotes: slices.Clone(remotes),
		tags:    slices.Clone(tags),
		byName:  make(map[string]int, len(locals)),
	}

	sort.SliceStable(v.locals, func(i, j int) bool {
		return v.locals[i].Name < v.locals[j].Name
	})
	sort.SliceStable(v.remotes, func(i, j int) bool {
		if v.remotes[i].Name != v.remotes[j].Name {
			return v.remotes[i].Name < v.remotes[j].Name
		}
		return v.remotes[i].Remote < v.remotes[j].Remote
	})
	sort.SliceStable(v.tags, func(i, j int) bool {
		return v.tags[i].Name < v.tags[j].Name
	})

	for i, b := range v.locals {
		v.byName[b.Name] = i
	}
	return v
}

func (v *View) LocalBookmarks() []LocalBookmark {
	return slices.Clone(v.locals)
}

func (v *View) LocalBookmark(name string) RefTarget {
	i, ok := v.byName[name]
	if !ok {
		return AbsentTarget()
	}
	return v.locals[i].Target
}

// LocalBookmarksForCommit returns local bookmarks whose target adds id,
// including conflicted bookmarks with id as one side.
func (v *View) LocalBookmarksForCommit(id CommitID) []string {
	var names []string
	for _, b := range v.locals {
		if slices.Contains(b.Target.Adds, id) {
			names = append(names, b.Name)
		}
	}
	return names
}

func (v *View) RemoteBookmarksMatching(name, remote StringMatcher) []RemoteBookmark {
	var out []RemoteBookmark
	for _, r := range v.remotes {
		if name(r.Name) && remote(r.Remote) {
			out = append(out, r)
		}
	}
	return out
}

func (v *View) Tags() []Tag {
	return slices.Clone(v.tags)
}
