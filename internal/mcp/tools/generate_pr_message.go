package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/roivaz/pr-messages/internal/prmessage"
)

type PRMessageGenerator interface {
	Generate(ctx context.Context, req prmessage.Request) (string, error)
}

type GeneratePRMessageParams struct {
	Style        string  `json:"style" validate:"required,oneof=detailed simple conventional"`
	BaseBranch   *string `json:"baseBranch" validate:"omitempty,revision"`
	IncludeFiles *bool   `json:"includeFiles"`
}

type GeneratePRMessageHandler struct {
	Service     PRMessageGenerator
	DefaultBase string
}

func (h *GeneratePRMessageHandler) ToolAdapter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params GeneratePRMessageParams
	if err := bindArguments(req, &params); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	includeFiles := true
	if params.IncludeFiles != nil {
		includeFiles = *params.IncludeFiles
	}
	style := prmessage.Style(params.Style)

	msg, err := h.Service.Generate(ctx, prmessage.Request{
		Style:        style,
		BaseBranch:   stringOr(params.BaseBranch, h.DefaultBase),
		IncludeFiles: includeFiles,
	})
	if err != nil {
		return toolError("failed to generate PR message", err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("# 📝 Generated PR Message (%s)\n\n%s", style, msg)), nil
}
