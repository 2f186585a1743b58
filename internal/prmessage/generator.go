package prmessage

import (
	"context"

	"github.com/roivaz/pr-messages/internal/analysis"
	"github.com/roivaz/pr-messages/internal/logging"
)

// Analyzer produces the commits a message is rendered from.
type Analyzer interface {
	Analyze(ctx context.Context, base string, limit int) (analysis.Result, error)
}

type Request struct {
	Style        Style
	BaseBranch   string
	IncludeFiles bool
}

type Generator struct {
	analyzer    Analyzer
	commitLimit int
	log         logging.Logger
}

// NewGenerator returns a Generator that analyzes up to commitLimit commits
// per message (analysis.DefaultPRLimit when zero).
func NewGenerator(analyzer Analyzer, commitLimit int, log logging.Logger) *Generator {
	if commitLimit <= 0 {
		commitLimit = analysis.DefaultPRLimit
	}
	return &Generator{analyzer: analyzer, commitLimit: commitLimit, log: log.WithName("generator")}
}

// Generate analyzes the current branch and renders the PR message. The
// message is NoCommitsMessage when the branch has no commits.
func (g *Generator) Generate(ctx context.Context, req Request) (string, error) {
	style, err := ParseStyle(string(req.Style))
	if err != nil {
		return "", err
	}
	result, err := g.analyzer.Analyze(ctx, req.BaseBranch, g.commitLimit)
	if err != nil {
		return "", err
	}
	g.log.Debug("rendering message", "style", style, "branch", result.Branch.CurrentBranch, "base", result.Branch.BaseRef, "commits", len(result.Commits))
	return Render(style, result.Commits, req.IncludeFiles)
}
