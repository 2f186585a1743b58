package config

const (
	KeyRepoPath            = "repo_path"
	KeyGitBackend          = "git_backend"
	KeyGitTimeout          = "git_timeout"
	KeyLogLevel            = "log_level"
	KeyDefaultBaseBranch   = "default_base_branch"
	KeyAnalyzeCommitLimit  = "analyze_commit_limit"
	KeyPRCommitLimit       = "pr_commit_limit"
	KeyOldestLookback      = "oldest_commit_lookback"
	KeyTransport           = "transport"
	KeyHTTPHost            = "http_host"
	KeyHTTPPort            = "http_port"
	KeyGitHubLookupEnabled = "github_lookup_enabled"
	KeyGitHubToken         = "github_token"
)

// flagKeys maps cobra flag names to the viper keys they override.
var flagKeys = map[string]string{
	"repo":          KeyRepoPath,
	"git-backend":   KeyGitBackend,
	"git-timeout":   KeyGitTimeout,
	"log-level":     KeyLogLevel,
	"base":          KeyDefaultBaseBranch,
	"transport":     KeyTransport,
	"host":          KeyHTTPHost,
	"port":          KeyHTTPPort,
	"github-lookup": KeyGitHubLookupEnabled,
}
