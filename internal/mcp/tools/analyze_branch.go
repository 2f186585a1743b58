package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/roivaz/pr-messages/internal/analysis"
	"github.com/roivaz/pr-messages/internal/prmessage"
)

type BranchAnalyzer interface {
	Analyze(ctx context.Context, base string, limit int) (analysis.Result, error)
}

type AnalyzeBranchParams struct {
	BaseBranch   *string `json:"baseBranch" validate:"omitempty,revision"`
	LimitCommits *int    `json:"limitCommits" validate:"omitempty,min=1"`
	Format       string  `json:"format" validate:"omitempty,oneof=text json yaml"`
}

type AnalyzeBranchHandler struct {
	Service      BranchAnalyzer
	DefaultBase  string
	DefaultLimit int
}

func (h *AnalyzeBranchHandler) ToolAdapter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params AnalyzeBranchParams
	if err := bindArguments(req, &params); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	base := stringOr(params.BaseBranch, h.DefaultBase)
	limit := h.DefaultLimit
	if params.LimitCommits != nil {
		limit = *params.LimitCommits
	}
	if limit <= 0 {
		limit = analysis.DefaultAnalyzeLimit
	}

	result, err := h.Service.Analyze(ctx, base, limit)
	if err != nil {
		return toolError("failed to analyze branch", err), nil
	}

	format := prmessage.FormatText
	if params.Format != "" {
		format = prmessage.ReportFormat(params.Format)
	}
	report, err := prmessage.RenderReport(result, format)
	if err != nil {
		return toolError("failed to render report", err), nil
	}
	return mcp.NewToolResultText(report), nil
}
