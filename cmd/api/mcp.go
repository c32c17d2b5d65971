package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"peds-aftercare/internal/platform/config"
	"peds-aftercare/internal/tools"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
)

func newMCPCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the reminder and risk tools over MCP (stdio)",
		Long: `Runs an MCP server on stdin/stdout so an agent can set, list and cancel
medication reminders and evaluate symptom risk. Logs and reminder banners go to stderr.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			return runMCP(cmd.Context(), cfg)
		},
	}
}

func runMCP(parent context.Context, cfg config.Config) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := newLogger(cfg, os.Stderr)

	a, err := buildApp(ctx, cfg, log, os.Stderr)
	if err != nil {
		log.Error("startup failed", map[string]any{"error": err})
		return err
	}
	defer a.close()

	s := tools.NewServer(a.reminders, a.risk)

	log.Info("mcp server listening on stdio", nil)
	if err := server.NewStdioServer(s).Listen(ctx, os.Stdin, os.Stdout); err != nil && ctx.Err() == nil {
		log.Error("mcp server error", map[string]any{"error": err})
		return err
	}
	return nil
}
