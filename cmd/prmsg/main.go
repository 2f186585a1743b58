package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/roivaz/pr-messages/internal/analysis"
	"github.com/roivaz/pr-messages/internal/config"
	"github.com/roivaz/pr-messages/internal/gitrepo"
	"github.com/roivaz/pr-messages/internal/logging"
	"github.com/roivaz/pr-messages/internal/prlookup"
	"github.com/roivaz/pr-messages/internal/prmessage"
)

func main() {
	root := &cobra.Command{
		Use:          "prmsg",
		Short:        "Analyze the current branch and draft PR messages without an MCP client",
		SilenceUsage: true,
	}
	root.PersistentFlags().String("repo", ".", "Path to the git repository")
	root.PersistentFlags().String("git-backend", "cli", "Git backend: cli or go-git")
	root.PersistentFlags().String("git-timeout", "30s", "Timeout for a single git command")
	root.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn, error")
	root.PersistentFlags().String("base", "main", "Base branch to compare against")

	root.AddCommand(analyzeCmd(), generateCmd(), pullRequestsCmd())

	config.Init(root)

	if err := root.Execute(); err != nil {
		log.Fatalf("prmsg: %v", err)
	}
}

func analyzeCmd() *cobra.Command {
	var (
		limit  int
		format string
	)
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Print the commits of the current branch that are not on the base branch",
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit < 1 {
				return fmt.Errorf("--limit must be at least 1")
			}
			backend, logger, err := openBackend()
			if err != nil {
				return err
			}
			analyzer := analysis.NewAnalyzer(backend, analysis.Options{OldestLookback: config.OldestLookback()}, logger)
			result, err := analyzer.Analyze(cmd.Context(), config.DefaultBaseBranch(), limit)
			if err != nil {
				return err
			}
			report, err := prmessage.RenderReport(result, prmessage.ReportFormat(format))
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(os.Stdout, report)
			return err
		},
	}
	cmd.Flags().IntVar(&limit, "limit", analysis.DefaultAnalyzeLimit, "Maximum number of commits to analyze")
	cmd.Flags().StringVar(&format, "format", string(prmessage.FormatText), "Output format: text, json or yaml")
	return cmd
}

func generateCmd() *cobra.Command {
	var (
		style        string
		includeFiles bool
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Draft a PR message from the commits of the current branch",
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := prmessage.ParseStyle(style)
			if err != nil {
				return err
			}
			backend, logger, err := openBackend()
			if err != nil {
				return err
			}
			analyzer := analysis.NewAnalyzer(backend, analysis.Options{OldestLookback: config.OldestLookback()}, logger)
			generator := prmessage.NewGenerator(analyzer, config.PRCommitLimit(), logger)
			msg, err := generator.Generate(cmd.Context(), prmessage.Request{
				Style:        parsed,
				BaseBranch:   config.DefaultBaseBranch(),
				IncludeFiles: includeFiles,
			})
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(os.Stdout, msg)
			return err
		},
	}
	cmd.Flags().StringVar(&style, "style", string(prmessage.StyleDetailed), "Message style: detailed, simple or conventional")
	cmd.Flags().BoolVar(&includeFiles, "include-files", true, "Include changed files in the message")
	return cmd
}

func pullRequestsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prs",
		Short: "List GitHub pull requests opened from the current branch",
		RunE: func(cmd *cobra.Command, args []string) error {
			backend, logger, err := openBackend()
			if err != nil {
				return err
			}
			lookup := prlookup.NewLookup(prlookup.NewGitHubClient(config.GitHubToken()), backend, logger)
			found, err := lookup.FindForCurrentBranch(cmd.Context())
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(os.Stdout, found.Markdown())
			return err
		},
	}
}

func openBackend() (gitrepo.Backend, logging.Logger, error) {
	logger := logging.New(logging.NewLogr(config.LogLevel())).WithName("prmsg")
	backend, err := gitrepo.Open(gitrepo.OpenConfig{
		Kind:    config.GitBackend(),
		Path:    config.RepoPath(),
		Timeout: config.GitTimeout(),
	})
	if err != nil {
		return nil, logger, fmt.Errorf("open repository: %w", err)
	}
	return backend, logger, nil
}
