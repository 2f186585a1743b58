package analysis

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/roivaz/pr-messages/internal/logging"
)

// baseStrategy is one tier of the base ref fallback. resolve reports the ref
// to use and whether the tier matched.
type baseStrategy struct {
	name    string
	resolve func(r *Resolver, ctx context.Context, requested string) (string, bool)
}

// baseStrategies are tried in order; the first match wins.
var baseStrategies = []baseStrategy{
	{name: StrategyRequested, resolve: (*Resolver).requestedBase},
	{name: StrategyMaster, resolve: (*Resolver).masterBase},
	{name: StrategyOldestCommit, resolve: (*Resolver).oldestCommitBase},
}

type Resolver struct {
	backend  Backend
	lookback int
	log      logging.Logger
}

func NewResolver(backend Backend, lookback int, log logging.Logger) *Resolver {
	if lookback <= 0 {
		lookback = DefaultOldestLookback
	}
	return &Resolver{backend: backend, lookback: lookback, log: log.WithName("resolver")}
}

// Resolve determines the current branch and the base ref to compare it
// against. Only a missing current branch is an error; every base lookup
// failure degrades to the next strategy.
func (r *Resolver) Resolve(ctx context.Context, requested string) (BranchContext, error) {
	requested = strings.TrimSpace(requested)
	if requested == "" {
		requested = DefaultBaseBranch
	}

	current, err := r.backend.CurrentBranch(ctx)
	if err != nil {
		return BranchContext{}, errors.WithHint(
			errors.Mark(errors.Wrap(err, "cannot determine current branch"), ErrRepositoryState),
			"check out a named branch before analyzing",
		)
	}
	current = strings.TrimSpace(current)
	if current == "" {
		return BranchContext{}, errors.Mark(errors.New("cannot determine current branch: HEAD has no branch name"), ErrRepositoryState)
	}

	for _, s := range baseStrategies {
		if base, ok := s.resolve(r, ctx, requested); ok {
			r.log.Debug("resolved base ref", "branch", current, "requested", requested, "base", base, "strategy", s.name)
			return BranchContext{CurrentBranch: current, BaseRef: base, Strategy: s.name}, nil
		}
	}

	r.log.Debug("no base ref found, keeping requested name", "branch", current, "requested", requested)
	return BranchContext{CurrentBranch: current, BaseRef: requested, Strategy: StrategyUnresolved}, nil
}

func (r *Resolver) requestedBase(ctx context.Context, requested string) (string, bool) {
	return requested, r.exists(ctx, requested)
}

func (r *Resolver) masterBase(ctx context.Context, requested string) (string, bool) {
	if requested != DefaultBaseBranch {
		return "", false
	}
	return "master", r.exists(ctx, "master")
}

// oldestCommitBase picks the oldest of the most recent lookback commits
// reachable from HEAD.
func (r *Resolver) oldestCommitBase(ctx context.Context, _ string) (string, bool) {
	res, err := r.backend.LogRecent(ctx, "HEAD", r.lookback)
	if err != nil {
		r.log.Debug("oldest commit lookup failed", "error", queryError(err, "log HEAD").Error())
		return "", false
	}
	if len(res.Commits) == 0 {
		return "", false
	}
	return res.Commits[len(res.Commits)-1].Hash, true
}

func (r *Resolver) exists(ctx context.Context, ref string) bool {
	ok, err := r.backend.RefExists(ctx, ref)
	if err != nil {
		r.log.Debug("ref lookup failed", "ref", ref, "error", queryError(err, "verify %s", ref).Error())
		return false
	}
	return ok
}
