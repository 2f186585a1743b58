package analysis

import (
	"context"

	"github.com/roivaz/pr-messages/internal/logging"
)

type Options struct {
	// OldestLookback is how many recent commits the oldest-commit fallback
	// inspects. Zero means DefaultOldestLookback.
	OldestLookback int
}

// Analyzer runs the resolver and collector back to back.
type Analyzer struct {
	resolver  *Resolver
	collector *Collector
}

func NewAnalyzer(backend Backend, opts Options, log logging.Logger) *Analyzer {
	log = log.WithName("analysis")
	return &Analyzer{
		resolver:  NewResolver(backend, opts.OldestLookback, log),
		collector: NewCollector(backend, log),
	}
}

func (a *Analyzer) Analyze(ctx context.Context, base string, limit int) (Result, error) {
	branch, err := a.resolver.Resolve(ctx, base)
	if err != nil {
		return Result{}, err
	}
	return a.collector.Collect(ctx, branch, limit)
}
