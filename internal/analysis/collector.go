package analysis

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/hashicorp/go-multierror"

	"github.com/roivaz/pr-messages/internal/gitrepo"
	"github.com/roivaz/pr-messages/internal/logging"
)

type logStrategy struct {
	name  string
	fetch func(c *Collector, ctx context.Context, branch BranchContext, limit int) (gitrepo.LogResult, error)
}

// logStrategies are tried in order until one query succeeds.
var logStrategies = []logStrategy{
	{name: SourceRange, fetch: (*Collector).rangeLog},
	{name: SourceRecent, fetch: (*Collector).recentLog},
}

type Collector struct {
	backend Backend
	log     logging.Logger
}

func NewCollector(backend Backend, log logging.Logger) *Collector {
	return &Collector{backend: backend, log: log.WithName("collector")}
}

// Collect lists up to limit commits of the branch, newest first, each with
// the files it changed relative to its first parent. A commit whose diff
// cannot be read keeps an empty file list; it never fails the call.
func (c *Collector) Collect(ctx context.Context, branch BranchContext, limit int) (Result, error) {
	if limit <= 0 {
		limit = DefaultAnalyzeLimit
	}
	res := Result{Branch: branch, Source: SourceNone, Commits: []CommitRecord{}}

	var (
		logRes gitrepo.LogResult
		found  bool
	)
	for _, s := range logStrategies {
		out, err := s.fetch(c, ctx, branch, limit)
		if err != nil {
			c.log.Debug("commit query failed", "source", s.name, "error", err.Error())
			continue
		}
		logRes, found = out, true
		res.Source = s.name
		break
	}
	if !found {
		if err := ctx.Err(); err != nil {
			return Result{}, errors.Wrap(err, "collect commits")
		}
		c.log.Info("no commit query succeeded, returning empty analysis", "branch", branch.CurrentBranch, "base", branch.BaseRef)
		return res, nil
	}

	commits := logRes.Commits
	if len(commits) > limit {
		commits = commits[:limit]
	}

	var diffErrs *multierror.Error
	for _, commit := range commits {
		if err := ctx.Err(); err != nil {
			return Result{}, errors.Wrap(err, "collect commits")
		}
		files, err := c.changedFiles(ctx, commit.Hash)
		if err != nil {
			diffErrs = multierror.Append(diffErrs, err)
		}
		res.Commits = append(res.Commits, CommitRecord{
			Hash:    commit.Hash,
			Message: commit.Message,
			Author:  commit.Author,
			Date:    commit.Date,
			Files:   files,
		})
	}
	if err := diffErrs.ErrorOrNil(); err != nil {
		c.log.Debug("file statistics unavailable for some commits", "count", len(diffErrs.Errors), "error", err.Error())
	}

	res.TotalCommits = logRes.Total
	if res.TotalCommits < len(res.Commits) {
		res.TotalCommits = len(res.Commits)
	}
	return res, nil
}

func (c *Collector) rangeLog(ctx context.Context, branch BranchContext, limit int) (gitrepo.LogResult, error) {
	out, err := c.backend.LogRange(ctx, branch.BaseRef, branch.CurrentBranch, limit)
	if err != nil {
		return gitrepo.LogResult{}, queryError(err, "log %s..%s", branch.BaseRef, branch.CurrentBranch)
	}
	return out, nil
}

func (c *Collector) recentLog(ctx context.Context, branch BranchContext, limit int) (gitrepo.LogResult, error) {
	out, err := c.backend.LogRecent(ctx, branch.CurrentBranch, limit)
	if err != nil {
		return gitrepo.LogResult{}, queryError(err, "log %s", branch.CurrentBranch)
	}
	return out, nil
}

// changedFiles always returns a non-nil slice.
func (c *Collector) changedFiles(ctx context.Context, hash string) ([]FileChange, error) {
	stats, err := c.backend.ParentDiff(ctx, hash)
	if err != nil {
		return []FileChange{}, queryError(err, "diff %s", shortHash(hash))
	}
	files := make([]FileChange, 0, len(stats))
	for _, s := range stats {
		ins, del := max(s.Insertions, 0), max(s.Deletions, 0)
		files = append(files, FileChange{Path: s.Path, Insertions: ins, Deletions: del, Changes: ins + del})
	}
	return files, nil
}

func shortHash(hash string) string {
	return CommitRecord{Hash: hash}.ShortHash()
}
