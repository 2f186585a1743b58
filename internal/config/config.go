package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

func Init(root *cobra.Command) {
	viper.AutomaticEnv()
	_ = godotenv.Load(".env")
	if root != nil {
		bindFlags(root.PersistentFlags())
		bindFlags(root.Flags())
	}
	setDefaults()
}

func bindFlags(flags *pflag.FlagSet) {
	flags.VisitAll(func(f *pflag.Flag) {
		if key, ok := flagKeys[f.Name]; ok {
			_ = viper.BindPFlag(key, f)
		}
	})
}

func setDefaults() {
	viper.SetDefault(KeyRepoPath, ".")
	viper.SetDefault(KeyGitBackend, "cli")
	viper.SetDefault(KeyGitTimeout, "30s")
	viper.SetDefault(KeyLogLevel, "info")
	viper.SetDefault(KeyDefaultBaseBranch, "main")
	viper.SetDefault(KeyAnalyzeCommitLimit, 10)
	viper.SetDefault(KeyPRCommitLimit, 20)
	viper.SetDefault(KeyOldestLookback, 100)
	viper.SetDefault(KeyTransport, "stdio")
	viper.SetDefault(KeyHTTPHost, "127.0.0.1")
	viper.SetDefault(KeyHTTPPort, 8000)
	viper.SetDefault(KeyGitHubLookupEnabled, false)
}

func RepoPath() string          { return viper.GetString(KeyRepoPath) }
func GitBackend() string        { return strings.ToLower(viper.GetString(KeyGitBackend)) }
func LogLevel() string          { return viper.GetString(KeyLogLevel) }
func DefaultBaseBranch() string { return viper.GetString(KeyDefaultBaseBranch) }
func AnalyzeCommitLimit() int   { return viper.GetInt(KeyAnalyzeCommitLimit) }
func PRCommitLimit() int        { return viper.GetInt(KeyPRCommitLimit) }
func OldestLookback() int       { return viper.GetInt(KeyOldestLookback) }
func Transport() string         { return strings.ToLower(viper.GetString(KeyTransport)) }
func HTTPHost() string          { return viper.GetString(KeyHTTPHost) }
func HTTPPort() int             { return viper.GetInt(KeyHTTPPort) }
func GitHubLookupEnabled() bool { return viper.GetBool(KeyGitHubLookupEnabled) }
func GitHubToken() string       { return viper.GetString(KeyGitHubToken) }

// GitTimeout parses git_timeout, falling back to 30s when unset or malformed.
func GitTimeout() time.Duration {
	d, err := parseDuration(viper.GetString(KeyGitTimeout), 30*time.Second)
	if err != nil || d <= 0 {
		return 30 * time.Second
	}
	return d
}

func parseDuration(value string, fallback time.Duration) (time.Duration, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fallback, nil
	}
	return time.ParseDuration(trimmed)
}
