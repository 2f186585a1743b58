package gitrepo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
)

// GoGitRepo implements Backend in-process with go-git, without requiring a
// git binary on PATH.
type GoGitRepo struct {
	repo *git.Repository
}

func OpenGoGit(path string) (*GoGitRepo, error) {
	if path == "" {
		path = "."
	}
	r, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("open repository %s: %w", path, err)
	}
	return &GoGitRepo{repo: r}, nil
}

// NewGoGit wraps an already opened repository.
func NewGoGit(r *git.Repository) *GoGitRepo {
	return &GoGitRepo{repo: r}
}

func (g *GoGitRepo) CurrentBranch(ctx context.Context) (string, error) {
	head, err := g.repo.Reference(plumbing.HEAD, false)
	if err != nil {
		return "", fmt.Errorf("read HEAD: %w", err)
	}
	if head.Type() != plumbing.SymbolicReference || !head.Target().IsBranch() {
		return "", ErrDetachedHead
	}
	return head.Target().Short(), nil
}

func (g *GoGitRepo) RefExists(ctx context.Context, ref string) (bool, error) {
	if strings.TrimSpace(ref) == "" || checkRef(ref) != nil {
		return false, nil
	}
	_, err := g.resolve(ref)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, plumbing.ErrReferenceNotFound), errors.Is(err, plumbing.ErrObjectNotFound):
		return false, nil
	default:
		return false, err
	}
}

func (g *GoGitRepo) LogRange(ctx context.Context, base, branch string, max int) (LogResult, error) {
	baseCommit, err := g.commit(base)
	if err != nil {
		return LogResult{}, err
	}
	head, err := g.commit(branch)
	if err != nil {
		return LogResult{}, err
	}

	excluded := map[plumbing.Hash]bool{}
	err = object.NewCommitPreorderIter(baseCommit, nil, nil).ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		excluded[c.Hash] = true
		return nil
	})
	if err != nil {
		return LogResult{}, fmt.Errorf("walk %s: %w", base, err)
	}
	if excluded[head.Hash] {
		return LogResult{Commits: []Commit{}}, nil
	}
	return g.walk(ctx, head, excluded, max)
}

func (g *GoGitRepo) LogRecent(ctx context.Context, ref string, max int) (LogResult, error) {
	head, err := g.commit(ref)
	if err != nil {
		return LogResult{}, err
	}
	return g.walk(ctx, head, nil, max)
}

// walk lists commits reachable from head by committer time, newest first,
// without descending into the excluded set.
func (g *GoGitRepo) walk(ctx context.Context, head *object.Commit, excluded map[plumbing.Hash]bool, max int) (LogResult, error) {
	res := LogResult{Commits: []Commit{}}
	err := object.NewCommitIterCTime(head, excluded, nil).ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		res.Total++
		if max <= 0 || len(res.Commits) < max {
			res.Commits = append(res.Commits, Commit{
				Hash:    c.Hash.String(),
				Author:  c.Author.Name,
				Date:    c.Author.When,
				Message: strings.TrimRight(c.Message, "\r\n "),
			})
		}
		return nil
	})
	if err != nil && !errors.Is(err, storer.ErrStop) {
		return LogResult{}, fmt.Errorf("walk history from %s: %w", head.Hash, err)
	}
	return res, nil
}

func (g *GoGitRepo) ParentDiff(ctx context.Context, hash string) ([]FileStat, error) {
	if err := checkRef(hash); err != nil {
		return nil, err
	}
	c, err := g.repo.CommitObject(plumbing.NewHash(hash))
	if err != nil {
		return nil, fmt.Errorf("load commit %s: %w", hash, err)
	}
	if c.NumParents() == 0 {
		return nil, fmt.Errorf("%s: %w", hash, ErrNoParent)
	}
	parent, err := c.Parent(0)
	if err != nil {
		return nil, fmt.Errorf("load parent of %s: %w", hash, err)
	}
	patch, err := parent.PatchContext(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("diff %s: %w", hash, err)
	}
	var stats []FileStat
	for _, s := range patch.Stats() {
		stats = append(stats, FileStat{Path: s.Name, Insertions: s.Addition, Deletions: s.Deletion})
	}
	return stats, nil
}

func (g *GoGitRepo) RemoteURL(ctx context.Context, name string) (string, error) {
	remote, err := g.repo.Remote(name)
	if err != nil {
		return "", fmt.Errorf("remote %s: %w", name, err)
	}
	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", fmt.Errorf("remote %s has no URL", name)
	}
	return urls[0], nil
}

func (g *GoGitRepo) resolve(ref string) (plumbing.Hash, error) {
	h, err := g.repo.ResolveRevision(plumbing.Revision(ref))
	if err != nil {
		return plumbing.ZeroHash, err
	}
	return *h, nil
}

func (g *GoGitRepo) commit(ref string) (*object.Commit, error) {
	if err := checkRef(ref); err != nil {
		return nil, err
	}
	h, err := g.resolve(ref)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", ref, err)
	}
	c, err := g.repo.CommitObject(h)
	if err != nil {
		return nil, fmt.Errorf("load commit %s: %w", ref, err)
	}
	return c, nil
}
