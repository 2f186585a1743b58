package analysis

import (
	"context"

	"github.com/cockroachdb/errors"

	"github.com/roivaz/pr-messages/internal/gitrepo"
)

var (
	// ErrRepositoryState marks failures caused by the repository being in a
	// state the analysis cannot work with, such as a detached HEAD.
	ErrRepositoryState = errors.New("repository state")
	// ErrBackendQuery marks failed repository queries. They are recovered
	// inside the resolver and collector and only surface through logs.
	ErrBackendQuery = errors.New("repository query failed")
)

// Backend is the read-only repository access the analysis depends on.
type Backend interface {
	CurrentBranch(ctx context.Context) (string, error)
	RefExists(ctx context.Context, ref string) (bool, error)
	LogRange(ctx context.Context, base, branch string, max int) (gitrepo.LogResult, error)
	LogRecent(ctx context.Context, ref string, max int) (gitrepo.LogResult, error)
	ParentDiff(ctx context.Context, hash string) ([]gitrepo.FileStat, error)
}

func queryError(err error, format string, args ...any) error {
	return errors.Mark(errors.Wrapf(err, format, args...), ErrBackendQuery)
}
