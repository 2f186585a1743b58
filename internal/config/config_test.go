package config

import (
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	viper.Reset()
	Init(nil)

	assert.Equal(t, ".", RepoPath())
	assert.Equal(t, "cli", GitBackend())
	assert.Equal(t, "main", DefaultBaseBranch())
	assert.Equal(t, 10, AnalyzeCommitLimit())
	assert.Equal(t, 20, PRCommitLimit())
	assert.Equal(t, 100, OldestLookback())
	assert.Equal(t, "stdio", Transport())
	assert.Equal(t, 8000, HTTPPort())
	assert.False(t, GitHubLookupEnabled())
	assert.Equal(t, 30*time.Second, GitTimeout())
}

func TestEnvironmentOverrides(t *testing.T) {
	viper.Reset()
	t.Setenv("PR_COMMIT_LIMIT", "5")
	t.Setenv("GIT_BACKEND", "GO-GIT")
	t.Setenv("GIT_TIMEOUT", "2s")
	Init(nil)

	assert.Equal(t, 5, PRCommitLimit())
	assert.Equal(t, "go-git", GitBackend())
	assert.Equal(t, 2*time.Second, GitTimeout())
}

func TestMalformedTimeoutFallsBack(t *testing.T) {
	viper.Reset()
	t.Setenv("GIT_TIMEOUT", "soon")
	Init(nil)

	assert.Equal(t, 30*time.Second, GitTimeout())
}

func TestFlagsOverrideDefaults(t *testing.T) {
	viper.Reset()
	root := &cobra.Command{Use: "test"}
	root.PersistentFlags().String("base", "main", "")
	root.PersistentFlags().String("transport", "stdio", "")
	root.PersistentFlags().Int("port", 8000, "")
	Init(root)

	require.NoError(t, root.PersistentFlags().Set("base", "develop"))
	require.NoError(t, root.PersistentFlags().Set("transport", "HTTP"))
	require.NoError(t, root.PersistentFlags().Set("port", "9090"))

	assert.Equal(t, "develop", DefaultBaseBranch())
	assert.Equal(t, "http", Transport())
	assert.Equal(t, 9090, HTTPPort())
}
