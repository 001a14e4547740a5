package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/jholhewres/devconsult/pkg/devconsult/mcpserver"
	"github.com/spf13/cobra"
)

// newMCPCmd creates the `devconsult mcp` command group for MCP server operations.
func newMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Model Context Protocol server",
		Long:  `Run devconsult as an MCP (Model Context Protocol) server for IDE and assistant integration.`,
	}

	cmd.AddCommand(newMCPServeCmd())
	return cmd
}

// newMCPServeCmd creates the `devconsult mcp serve` command.
func newMCPServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start MCP server over stdio",
		Long: `Start the MCP server using stdio transport (JSON-RPC 2.0 over stdin/stdout).
Logs go to stderr.

Add to your host configuration (.mcp.json, .cursor/mcp.json, ...):

  {
    "mcpServers": {
      "software-engineer": {
        "command": "devconsult",
        "args": ["mcp", "serve"],
        "env": { "GROQ_API_KEY": "gsk_..." }
      }
    }
  }`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			consultant, cfg, logger, err := buildConsultant(cmd, false)
			if err != nil {
				return err
			}

			server := mcpserver.New(cfg.Name, consultant, logger)

			ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			logger.Info("starting MCP server on stdio", "name", cfg.Name)
			return mcpserver.Serve(ctx, server, os.Stdin, os.Stdout, logger)
		},
	}

	cmd.Flags().StringP("model", "m", "", "chat model to use (overrides config and env)")
	return cmd
}
