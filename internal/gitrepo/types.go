package gitrepo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrDetachedHead is returned when HEAD does not point to a named branch.
	ErrDetachedHead = errors.New("HEAD is detached or does not name a branch")
	// ErrNoParent is returned when diffing a root commit against its parent.
	ErrNoParent = errors.New("commit has no parent")
	// ErrInvalidRef is returned for revisions git would parse as an option.
	ErrInvalidRef = errors.New("invalid revision")
)

// checkRef rejects revisions that start with a dash.
func checkRef(refs ...string) error {
	for _, ref := range refs {
		if strings.HasPrefix(strings.TrimSpace(ref), "-") {
			return fmt.Errorf("%w %q", ErrInvalidRef, ref)
		}
	}
	return nil
}

// Commit is the metadata of a single log entry.
type Commit struct {
	Hash    string
	Author  string
	Date    time.Time
	Message string
}

// LogResult holds the (possibly capped) commits of a log query together with
// the number of commits the query matched before capping.
type LogResult struct {
	Commits []Commit
	Total   int
}

// FileStat is the numstat line of a single path. Binary files report zero
// insertions and deletions.
type FileStat struct {
	Path       string
	Insertions int
	Deletions  int
}

// Backend is the repository surface shared by the git CLI and go-git
// implementations.
type Backend interface {
	CurrentBranch(ctx context.Context) (string, error)
	RefExists(ctx context.Context, ref string) (bool, error)
	LogRange(ctx context.Context, base, branch string, max int) (LogResult, error)
	LogRecent(ctx context.Context, ref string, max int) (LogResult, error)
	ParentDiff(ctx context.Context, hash string) ([]FileStat, error)
	RemoteURL(ctx context.Context, name string) (string, error)
}

const (
	BackendCLI   = "cli"
	BackendGoGit = "go-git"
)

type OpenConfig struct {
	Kind    string // cli (default) or go-git
	Path    string
	Timeout time.Duration
}

// Open returns the backend selected by cfg.Kind.
func Open(cfg OpenConfig) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Kind)) {
	case "", BackendCLI:
		return New(RepoConfig{Path: cfg.Path, Timeout: cfg.Timeout}), nil
	case BackendGoGit, "gogit":
		return OpenGoGit(cfg.Path)
	default:
		return nil, fmt.Errorf("unknown git backend %q (want %s or %s)", cfg.Kind, BackendCLI, BackendGoGit)
	}
}
