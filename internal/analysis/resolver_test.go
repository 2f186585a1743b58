package analysis

import (
	"context"
	"errors"
	"testing"

	crdb "github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roivaz/pr-messages/internal/gitrepo"
	"github.com/roivaz/pr-messages/internal/logging"
)

func TestResolveFallbacks(t *testing.T) {
	history := makeHistory(5)

	tests := []struct {
		name      string
		refs      map[string]bool
		history   []gitrepo.Commit
		requested string
		want      BranchContext
	}{
		{
			name:      "requested base exists",
			refs:      map[string]bool{"main": true, "master": true},
			history:   history,
			requested: "main",
			want:      BranchContext{CurrentBranch: "feature", BaseRef: "main", Strategy: StrategyRequested},
		},
		{
			name:      "empty request means main",
			refs:      map[string]bool{"main": true},
			history:   history,
			requested: "  ",
			want:      BranchContext{CurrentBranch: "feature", BaseRef: "main", Strategy: StrategyRequested},
		},
		{
			name:      "main missing falls back to master",
			refs:      map[string]bool{"master": true},
			history:   history,
			requested: "main",
			want:      BranchContext{CurrentBranch: "feature", BaseRef: "master", Strategy: StrategyMaster},
		},
		{
			name:      "main and master missing uses oldest recent commit",
			refs:      map[string]bool{},
			history:   history,
			requested: "main",
			want:      BranchContext{CurrentBranch: "feature", BaseRef: history[4].Hash, Strategy: StrategyOldestCommit},
		},
		{
			name:      "master fallback only applies to main",
			refs:      map[string]bool{"master": true},
			history:   history,
			requested: "develop",
			want:      BranchContext{CurrentBranch: "feature", BaseRef: history[4].Hash, Strategy: StrategyOldestCommit},
		},
		{
			name:      "no commits keeps the requested name",
			refs:      map[string]bool{},
			requested: "develop",
			want:      BranchContext{CurrentBranch: "feature", BaseRef: "develop", Strategy: StrategyUnresolved},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &fakeBackend{branch: "feature", refs: tt.refs, history: tt.history}
			r := NewResolver(b, 0, logging.Discard())

			got, err := r.Resolve(context.Background(), tt.requested)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveOldestCommitRespectsLookback(t *testing.T) {
	history := makeHistory(150)
	b := &fakeBackend{branch: "feature", history: history}

	got, err := NewResolver(b, 0, logging.Discard()).Resolve(context.Background(), "main")
	require.NoError(t, err)
	assert.Equal(t, history[DefaultOldestLookback-1].Hash, got.BaseRef)
	assert.Equal(t, []string{"HEAD"}, b.recentCalls)

	got, err = NewResolver(b, 3, logging.Discard()).Resolve(context.Background(), "main")
	require.NoError(t, err)
	assert.Equal(t, history[2].Hash, got.BaseRef)
}

func TestResolveTreatsLookupErrorsAsMisses(t *testing.T) {
	b := &fakeBackend{
		branch: "feature",
		refErr: errors.New("git rev-parse: exit status 128"),
	}
	got, err := NewResolver(b, 0, logging.Discard()).Resolve(context.Background(), "main")
	require.NoError(t, err)
	assert.Equal(t, StrategyUnresolved, got.Strategy)
	assert.Equal(t, "main", got.BaseRef)
}

func TestResolveDetachedHead(t *testing.T) {
	b := &fakeBackend{branchErr: gitrepo.ErrDetachedHead}
	_, err := NewResolver(b, 0, logging.Discard()).Resolve(context.Background(), "main")
	require.Error(t, err)
	assert.True(t, crdb.Is(err, ErrRepositoryState))
	assert.True(t, crdb.Is(err, gitrepo.ErrDetachedHead))
	assert.Contains(t, err.Error(), "cannot determine current branch")
}

func TestResolveEmptyBranchName(t *testing.T) {
	b := &fakeBackend{branch: ""}
	_, err := NewResolver(b, 0, logging.Discard()).Resolve(context.Background(), "main")
	require.Error(t, err)
	assert.True(t, crdb.Is(err, ErrRepositoryState))
}

func TestResolveIsDeterministic(t *testing.T) {
	b := &fakeBackend{branch: "feature", history: makeHistory(7)}
	r := NewResolver(b, 0, logging.Discard())

	first, err := r.Resolve(context.Background(), "main")
	require.NoError(t, err)
	second, err := r.Resolve(context.Background(), "main")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
