package mcp

import (
	"context"
	"io"
	"net/http"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/roivaz/pr-messages/internal/logging"
	"github.com/roivaz/pr-messages/internal/metrics"
)

const (
	ServerName    = "pr-messages"
	ServerVersion = "1.0.0"

	ToolAnalyzeCurrentBranch   = "analyze_current_branch"
	ToolGeneratePRMessage      = "generate_pr_message"
	ToolLookupBranchPRs        = "lookup_branch_pull_request"
	defaultEndpointPath        = "/mcp"
	defaultMetricsEndpointPath = "/metrics"
)

type ToolAdapter interface {
	ToolAdapter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error)
}

type Server struct {
	MCP     *server.MCPServer
	HTTP    *server.StreamableHTTPServer
	Handler http.Handler
	Metrics *metrics.Recorder
	log     logging.Logger
}

var toolDefinitions = map[string]mcp.Tool{
	ToolAnalyzeCurrentBranch: mcp.NewTool(ToolAnalyzeCurrentBranch,
		mcp.WithDescription("Analyze the commits of the current git branch that are not on the base branch. Returns each commit with hash, author, date and changed files."),
		mcp.WithString("baseBranch",
			mcp.Description("Base branch to compare against (default: main)"),
		),
		mcp.WithNumber("limitCommits",
			mcp.Description("Maximum number of commits to analyze (default: 10)"),
			mcp.Min(1),
		),
		mcp.WithString("format",
			mcp.Description("Report format (default: text)"),
			mcp.Enum("text", "json", "yaml"),
		),
	),
	ToolGeneratePRMessage: mcp.NewTool(ToolGeneratePRMessage,
		mcp.WithDescription("Generate a descriptive pull request message from the commits of the current branch."),
		mcp.WithString("style",
			mcp.Required(),
			mcp.Description("PR message style"),
			mcp.Enum("detailed", "simple", "conventional"),
		),
		mcp.WithString("baseBranch",
			mcp.Description("Base branch to compare against (default: main)"),
		),
		mcp.WithBoolean("includeFiles",
			mcp.Description("Include changed files in the message (default: true)"),
		),
	),
	ToolLookupBranchPRs: mcp.NewTool(ToolLookupBranchPRs,
		mcp.WithDescription("List GitHub pull requests whose head is the current branch of the origin repository. Read-only."),
	),
}

func New(cfg Config) *Server {
	mcpServer := server.NewMCPServer(
		ServerName,
		ServerVersion,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)

	for name, adapter := range cfg.ToolAdapters {
		tool, ok := toolDefinitions[name]
		if !ok {
			cfg.Log.Info("skipping unknown tool", "tool", name)
			continue
		}
		mcpServer.AddTool(tool, cfg.Metrics.Instrument(name, adapter.ToolAdapter))
	}

	path := endpointPath(cfg)
	opts := append([]server.StreamableHTTPOption{
		server.WithEndpointPath(path),
		server.WithStateLess(true),
	}, cfg.Options...)
	httpServer := server.NewStreamableHTTPServer(mcpServer, opts...)

	mux := http.NewServeMux()
	mux.Handle(path, httpServer)
	if cfg.Metrics != nil {
		mux.Handle(defaultMetricsEndpointPath, cfg.Metrics.Handler())
	}

	return &Server{
		MCP:     mcpServer,
		HTTP:    httpServer,
		Handler: mux,
		Metrics: cfg.Metrics,
		log:     cfg.Log.WithName("server"),
	}
}

// ServeStdio serves MCP over the given streams until ctx is done or in closes.
func (s *Server) ServeStdio(ctx context.Context, in io.Reader, out io.Writer) error {
	stdio := server.NewStdioServer(s.MCP)
	stdio.SetErrorLogger(s.log.WithName("stdio").StdLogger())
	return stdio.Listen(ctx, in, out)
}

func endpointPath(cfg Config) string {
	if cfg.EndpointPath != "" {
		return cfg.EndpointPath
	}
	return defaultEndpointPath
}
