package analysis

import (
	"context"
	"fmt"
	"time"

	"github.com/roivaz/pr-messages/internal/gitrepo"
)

// fakeBackend serves a linear history (newest first) plus explicit ranges.
type fakeBackend struct {
	branch    string
	branchErr error
	refs      map[string]bool
	refErr    error
	history   []gitrepo.Commit
	ranges    map[string][]gitrepo.Commit
	rangeErr  error
	recentErr error
	diffs     map[string][]gitrepo.FileStat
	diffErrs  map[string]error

	recentCalls []string
}

func (f *fakeBackend) CurrentBranch(context.Context) (string, error) {
	return f.branch, f.branchErr
}

func (f *fakeBackend) RefExists(_ context.Context, ref string) (bool, error) {
	if f.refErr != nil {
		return false, f.refErr
	}
	return f.refs[ref], nil
}

func (f *fakeBackend) LogRange(_ context.Context, base, branch string, max int) (gitrepo.LogResult, error) {
	if f.rangeErr != nil {
		return gitrepo.LogResult{}, f.rangeErr
	}
	commits, ok := f.ranges[base+".."+branch]
	if !ok {
		return gitrepo.LogResult{}, fmt.Errorf("unknown revision %s", base)
	}
	return capped(commits, max), nil
}

func (f *fakeBackend) LogRecent(_ context.Context, ref string, max int) (gitrepo.LogResult, error) {
	f.recentCalls = append(f.recentCalls, ref)
	if f.recentErr != nil {
		return gitrepo.LogResult{}, f.recentErr
	}
	if len(f.history) == 0 {
		return gitrepo.LogResult{}, fmt.Errorf("bad revision %s", ref)
	}
	return capped(f.history, max), nil
}

func (f *fakeBackend) ParentDiff(_ context.Context, hash string) ([]gitrepo.FileStat, error) {
	if err := f.diffErrs[hash]; err != nil {
		return nil, err
	}
	return f.diffs[hash], nil
}

func capped(commits []gitrepo.Commit, max int) gitrepo.LogResult {
	res := gitrepo.LogResult{Total: len(commits)}
	if max > 0 && len(commits) > max {
		commits = commits[:max]
	}
	res.Commits = append([]gitrepo.Commit{}, commits...)
	return res
}

// makeHistory returns n commits newest first, hashed c<n-1>..c0.
func makeHistory(n int) []gitrepo.Commit {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	out := make([]gitrepo.Commit, 0, n)
	for i := n - 1; i >= 0; i-- {
		out = append(out, gitrepo.Commit{
			Hash:    fmt.Sprintf("c%039d", i),
			Author:  "Ada",
			Date:    base.Add(time.Duration(i) * time.Hour),
			Message: fmt.Sprintf("commit %d", i),
		})
	}
	return out
}
