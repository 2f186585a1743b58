package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/roivaz/pr-messages/internal/config"
	"github.com/roivaz/pr-messages/internal/logging"
	"github.com/roivaz/pr-messages/internal/mcp"
)

func main() {
	root := &cobra.Command{
		Use:          "mcp-server",
		Short:        "MCP server that analyzes the current git branch and drafts PR messages",
		SilenceUsage: true,
		RunE:         run,
	}

	root.PersistentFlags().String("repo", ".", "Path to the git repository")
	root.PersistentFlags().String("git-backend", "cli", "Git backend: cli or go-git")
	root.PersistentFlags().String("git-timeout", "30s", "Timeout for a single git command")
	root.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn, error")
	root.PersistentFlags().String("base", "main", "Default base branch")
	root.PersistentFlags().String("transport", "stdio", "Transport: stdio or http")
	root.PersistentFlags().String("host", "127.0.0.1", "HTTP host")
	root.PersistentFlags().Int("port", 8000, "HTTP port")
	root.PersistentFlags().Bool("github-lookup", false, "Enable the lookup_branch_pull_request tool")

	config.Init(root)

	if err := root.Execute(); err != nil {
		log.Fatalf("command failed: %v", err)
	}
}

func run(cmd *cobra.Command, args []string) error {
	logger := logging.New(logging.NewLogr(config.LogLevel())).WithName("mcp-server")

	cfg, err := mcp.DefaultConfig(logger)
	if err != nil {
		return err
	}
	srv := mcp.New(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	switch config.Transport() {
	case "stdio":
		logger.Info("serving MCP over stdio")
		if err := srv.ServeStdio(ctx, os.Stdin, os.Stdout); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	case "http":
		return serveHTTP(ctx, srv, logger)
	default:
		return fmt.Errorf("unknown transport %q (want stdio or http)", config.Transport())
	}
}

func serveHTTP(ctx context.Context, srv *mcp.Server, logger logging.Logger) error {
	addr := config.HTTPHost() + ":" + strconv.Itoa(config.HTTPPort())
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           srv.Handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("MCP server listening", "addr", addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
