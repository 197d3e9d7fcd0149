package internal

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

const (
	fieldSep  = "\t"
	recordSep = "\x00"
)

// Templates emit one NUL-terminated record per item with tab-separated
// fields. Descriptions may contain tabs, so they always come last.
const (
	commitTemplate = `commit_id ++ "\t" ++ change_id ++ "\t" ++ change_id.shortest().prefix() ++ "\t" ++ ` +
		`if(current_working_copy, "1", "0") ++ "\t" ++ if(empty, "1", "0") ++ "\t" ++ ` +
		`if(conflict, "1", "0") ++ "\t" ++ if(divergent, "1", "0") ++ "\t" ++ if(hidden, "1", "0") ++ "\t" ++ ` +
		`parents.map(|c| c.commit_id()).join(",") ++ "\t" ++ description ++ "\0"`

	refTemplate = `name ++ "\t" ++ remote ++ "\t" ++ if(tracked, "1", "0") ++ "\t" ++ ` +
		`removed_targets.map(|c| c.commit_id()).join(",") ++ "\t" ++ ` +
		`added_targets.map(|c| c.commit_id()).join(",") ++ "\0"`
)

const commitFields = 10

// Runner executes the jj binary.
type Runner interface {
	Run(ctx context.Context, dir string, args ...string) (string, error)
}

type ExecRunner struct {
	Bin string
}

func NewExecRunner(bin string) *ExecRunner {
	if strings.TrimSpace(bin) == "" {
		bin = "jj"
	}
	return &ExecRunner{Bin: bin}
}

func (r *ExecRunner) Run(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, r.Bin, args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		sub := "jj"
		if len(args) > 0 {
			sub = "jj " + args[0]
		}
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("%s: %v: %s", sub, err, msg)
		}
		return "", fmt.Errorf("%s: %w", sub, err)
	}
	return stdout.String(), nil
}

type JJOptions struct {
	Runner      Runner
	SearchDepth int
	Log         *zap.Logger
}

type commitRecord struct {
	commit      Commit
	prefix      string
	workingCopy bool
	empty       bool
	divergent   bool
	hidden      bool
}

type refRecord struct {
	name    string
	remote  string
	tracked bool
	target  RefTarget
}

// JJRepository reads repository state through the jj executable. It never
// snapshots the working copy, so it reflects the last recorded operation.
type JJRepository struct {
	root    string
	run     Runner
	log     *zap.Logger
	view    *View
	wcID    CommitID
	hasWC   bool
	commits map[CommitID]*commitRecord
	git     *GitCommitStore
}

// NewJJLoader returns a Loader backed by OpenJJ.
func NewJJLoader(opts JJOptions) Loader {
	return func(ctx context.Context, root string) (Repository, error) {
		return OpenJJ(ctx, root, opts)
	}
}

// OpenJJ loads the references and the working-copy commit. Without a
// git-backed store it also preloads the commits within SearchDepth+1
// generations of the working copy.
func OpenJJ(ctx context.Context, root string, opts JJOptions) (*JJRepository, error) {
	if opts.Runner == nil {
		opts.Runner = NewExecRunner("")
	}
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}

	r := &JJRepository{
		root:    root,
		run:     opts.Runner,
		log:     opts.Log,
		commits: map[CommitID]*commitRecord{},
	}

	if repoDir, err := RepoDir(root); err == nil {
		if store, err := OpenGitCommitStore(repoDir); err == nil {
			r.git = store
		} else {
			r.log.Debug("git commit store unavailable", zap.Error(err))
		}
	}

	// Git-backed stores answer parent lookups from the object database, so
	// only the working copy needs jj's view of it.
	revset := "@"
	if r.git == nil {
		revset = fmt.Sprintf("ancestors(@, %d)", opts.SearchDepth+1)
	}
	records, err := r.logCommits(ctx, revset)
	if err != nil {
		return nil, err
	}
	for _, rec := range records {
		r.commits[rec.commit.ID] = rec
		if rec.workingCopy {
			r.wcID = rec.commit.ID
			r.hasWC = true
		}
	}

	bookmarks, err := r.jj(ctx, "bookmark", "list", "--all-remotes", "-T", refTemplate)
	if err != nil {
		return nil, err
	}
	bookmarkRefs, err := parseRefs(bookmarks)
	if err != nil {
		return nil, fmt.Errorf("parse bookmarks: %w", err)
	}

	tags, err := r.jj(ctx, "tag", "list", "-T", refTemplate)
	if err != nil {
		return nil, err
	}
	tagRefs, err := parseRefs(tags)
	if err != nil {
		return nil, fmt.Errorf("parse tags: %w", err)
	}

	r.view = buildView(bookmarkRefs, tagRefs)

	r.log.Debug("loaded jj repository",
		zap.String("root", root),
		zap.Int("commits", len(r.commits)),
		zap.Bool("git_backed", r.git != nil),
		zap.Int("bookmarks", len(bookmarkRefs)),
		zap.Int("tags", len(tagRefs)),
	)
	return r, nil
}

func (r *JJRepository) Root() string {
	return r.root
}

func (r *JJRepository) View() RefView {
	return r.view
}

func (r *JJRepository) WorkingCopyCommitID() (CommitID, bool) {
	return r.wcID, r.hasWC
}

// Commit serves preloaded records first, then the git object store, then a
// direct jj query.
func (r *JJRepository) Commit(ctx context.Context, id CommitID) (*Commit, error) {
	if rec, ok := r.commits[id]; ok {
		return &rec.commit, nil
	}

	if r.git != nil {
		c, err := r.git.Commit(ctx, id)
		if err == nil {
			return c, nil
		}
		r.log.Debug("git lookup failed", zap.String("commit", id.Short()), zap.Error(err))
	}

	rec, err := r.record(ctx, id)
	if err != nil {
		return nil, err
	}
	return &rec.commit, nil
}

func (r *JJRepository) ShortestChangeIDPrefixLen(ctx context.Context, c *Commit) (int, error) {
	rec, err := r.record(ctx, c.ID)
	if err != nil {
		return 0, err
	}
	if rec.prefix == "" {
		return 0, fmt.Errorf("no shortest prefix for %s", c.ID.Short())
	}
	return len(rec.prefix), nil
}

func (r *JJRepository) IsEmpty(ctx context.Context, c *Commit) (bool, error) {
	rec, err := r.record(ctx, c.ID)
	if err != nil {
		return false, err
	}
	return rec.empty, nil
}

func (r *JJRepository) IsDivergent(ctx context.Context, c *Commit) (bool, error) {
	rec, err := r.record(ctx, c.ID)
	if err != nil {
		return false, err
	}
	return rec.divergent, nil
}

func (r *JJRepository) IsHidden(ctx context.Context, c *Commit) (bool, error) {
	rec, err := r.record(ctx, c.ID)
	if err != nil {
		return false, err
	}
	return rec.hidden, nil
}

func (r *JJRepository) record(ctx context.Context, id CommitID) (*commitRecord, error) {
	if rec, ok := r.commits[id]; ok {
		return rec, nil
	}

	records, err := r.logCommits(ctx, string(id))
	if err != nil {
		return nil, err
	}
	for _, rec := range records {
		r.commits[rec.commit.ID] = rec
	}

	rec, ok := r.commits[id]
	if !ok {
		return nil, fmt.Errorf("commit %s not found", id.Short())
	}
	return rec, nil
}

func (r *JJRepository) logCommits(ctx context.Context, revset string) ([]*commitRecord, error) {
	out, err := r.jj(ctx, "log", "--no-graph", "-r", revset, "-T", commitTemplate)
	if err != nil {
		return nil, err
	}
	records, err := parseCommits(out)
	if err != nil {
		return nil, fmt.Errorf("parse log: %w", err)
	}
	return records, nil
}

func (r *JJRepository) jj(ctx context.Context, args ...string) (string, error) {
	global := []string{
		"--repository", r.root,
		"--ignore-working-copy",
		"--no-pager",
		"--color=never",
		// shortest() must be unique across the repository, not the log revset.
		"--config=revsets.short-prefixes=''",
	}
	return r.run.Run(ctx, r.root, append(args, global...)...)
}

func parseCommits(out string) ([]*commitRecord, error) {
	var records []*commitRecord
	for _, raw := range splitRecords(out) {
		fields := strings.SplitN(raw, fieldSep, commitFields)
		if len(fields) != commitFields {
			return nil, fmt.Errorf("unexpected commit record: %q", raw)
		}
		id := CommitID(strings.TrimSpace(fields[0]))
		if id == "" {
			return nil, fmt.Errorf("unexpected commit record: %q", raw)
		}

		flags := make([]bool, 5)
		for i := range flags {
			v, err := parseFlag(fields[3+i])
			if err != nil {
				return nil, fmt.Errorf("commit %s: %w", id.Short(), err)
			}
			flags[i] = v
		}

		records = append(records, &commitRecord{
			commit: Commit{
				ID:          id,
				ChangeID:    strings.TrimSpace(fields[1]),
				ParentIDs:   parseIDList(fields[8]),
				Description: fields[9],
				Conflict:    flags[2],
			},
			prefix:      strings.TrimSpace(fields[2]),
			workingCopy: flags[0],
			empty:       flags[1],
			divergent:   flags[3],
			hidden:      flags[4],
		})
	}
	return records, nil
}

func parseRefs(out string) ([]refRecord, error) {
	var refs []refRecord
	for _, raw := range splitRecords(out) {
		fields := strings.Split(raw, fieldSep)
		if len(fields) != 5 || fields[0] == "" {
			return nil, fmt.Errorf("unexpected ref record: %q", raw)
		}
		tracked, err := parseFlag(fields[2])
		if err != nil {
			return nil, fmt.Errorf("ref %s: %w", fields[0], err)
		}
		refs = append(refs, refRecord{
			name:    fields[0],
			remote:  fields[1],
			tracked: tracked,
			target: RefTarget{
				Removes: parseIDList(fields[3]),
				Adds:    parseIDList(fields[4]),
			},
		})
	}
	return refs, nil
}

func buildView(bookmarks, tags []refRecord) *View {
	var locals []LocalBookmark
	var remotes []RemoteBookmark
	for _, ref := range bookmarks {
		if ref.remote == "" {
			if !ref.target.IsAbsent() {
				locals = append(locals, LocalBookmark{Name: ref.name, Target: ref.target})
			}
			continue
		}
		remotes = append(remotes, RemoteBookmark{
			Name:    ref.name,
			Remote:  ref.remote,
			Target:  ref.target,
			Tracked: ref.tracked,
		})
	}

	var tagList []Tag
	for _, ref := range tags {
		if ref.remote != "" {
			continue
		}
		tagList = append(tagList, Tag{Name: ref.name, Target: ref.target})
	}

	return NewView(locals, remotes, tagList)
}

func splitRecords(out string) []string {
	var records []string
	for _, raw := range strings.Split(out, recordSep) {
		raw = strings.TrimLeft(raw, "\r\n")
		if raw == "" {
			continue
		}
		records = append(records, raw)
	}
	return records
}

func parseIDList(s string) []CommitID {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	ids := make([]CommitID, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			ids = append(ids, CommitID(p))
		}
	}
	return ids
}

var errBadFlag = errors.New("bad flag field")

func parseFlag(s string) (bool, error) {
	v, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		return false, fmt.Errorf("%w: %q", errBadFlag, s)
	}
	return v, nil
}
