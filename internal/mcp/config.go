package mcp

import (
	"fmt"

	"github.com/google/go-github/v66/github"
	"github.com/mark3labs/mcp-go/server"

	"github.com/roivaz/pr-messages/internal/analysis"
	"github.com/roivaz/pr-messages/internal/config"
	"github.com/roivaz/pr-messages/internal/gitrepo"
	"github.com/roivaz/pr-messages/internal/logging"
	"github.com/roivaz/pr-messages/internal/mcp/tools"
	"github.com/roivaz/pr-messages/internal/metrics"
	"github.com/roivaz/pr-messages/internal/prlookup"
	"github.com/roivaz/pr-messages/internal/prmessage"
)

type Config struct {
	ToolAdapters map[string]ToolAdapter
	Options      []server.StreamableHTTPOption
	EndpointPath string
	Metrics      *metrics.Recorder
	Log          logging.Logger
}

// Settings tune the tools built by NewConfig.
type Settings struct {
	DefaultBase    string
	AnalyzeLimit   int
	PRLimit        int
	OldestLookback int
	// GitHub enables lookup_branch_pull_request when non-nil.
	GitHub *github.Client
}

func settingsFromConfig() Settings {
	s := Settings{
		DefaultBase:    config.DefaultBaseBranch(),
		AnalyzeLimit:   config.AnalyzeCommitLimit(),
		PRLimit:        config.PRCommitLimit(),
		OldestLookback: config.OldestLookback(),
	}
	if config.GitHubLookupEnabled() {
		s.GitHub = prlookup.NewGitHubClient(config.GitHubToken())
	}
	return s
}

// DefaultConfig wires the tools against the repository and settings from
// the loaded configuration.
func DefaultConfig(log logging.Logger) (Config, error) {
	backend, err := gitrepo.Open(gitrepo.OpenConfig{
		Kind:    config.GitBackend(),
		Path:    config.RepoPath(),
		Timeout: config.GitTimeout(),
	})
	if err != nil {
		return Config{}, fmt.Errorf("open repository: %w", err)
	}
	log.Info("repository backend ready", "backend", config.GitBackend(), "path", config.RepoPath())
	return NewConfig(backend, settingsFromConfig(), log), nil
}

func NewConfig(backend gitrepo.Backend, s Settings, log logging.Logger) Config {
	if s.DefaultBase == "" {
		s.DefaultBase = analysis.DefaultBaseBranch
	}
	analyzer := analysis.NewAnalyzer(backend, analysis.Options{OldestLookback: s.OldestLookback}, log)
	generator := prmessage.NewGenerator(analyzer, s.PRLimit, log)

	adapters := map[string]ToolAdapter{
		ToolAnalyzeCurrentBranch: &tools.AnalyzeBranchHandler{
			Service:      analyzer,
			DefaultBase:  s.DefaultBase,
			DefaultLimit: s.AnalyzeLimit,
		},
		ToolGeneratePRMessage: &tools.GeneratePRMessageHandler{
			Service:     generator,
			DefaultBase: s.DefaultBase,
		},
	}
	if s.GitHub != nil {
		adapters[ToolLookupBranchPRs] = &tools.LookupBranchPRHandler{
			Service: prlookup.NewLookup(s.GitHub, backend, log),
		}
	}

	return Config{
		ToolAdapters: adapters,
		Metrics:      metrics.NewRecorder(),
		Log:          log,
	}
}
