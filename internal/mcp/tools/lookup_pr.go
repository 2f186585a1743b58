package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/roivaz/pr-messages/internal/prlookup"
)

type PullRequestFinder interface {
	FindForCurrentBranch(ctx context.Context) (prlookup.BranchPullRequests, error)
}

type LookupBranchPRHandler struct {
	Service PullRequestFinder
}

func (h *LookupBranchPRHandler) ToolAdapter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	found, err := h.Service.FindForCurrentBranch(ctx)
	if err != nil {
		return toolError("failed to look up pull requests", err), nil
	}
	return mcp.NewToolResultText(found.Markdown()), nil
}
