// Package commands implements the devconsult CLI commands using cobra.
package commands

import (
	"github.com/jholhewres/devconsult/pkg/devconsult/mcpserver"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command with every subcommand registered.
func NewRootCmd(version string) *cobra.Command {
	mcpserver.Version = version

	rootCmd := &cobra.Command{
		Use:   "devconsult",
		Short: "devconsult - software engineering consultant for MCP hosts",
		Long: `devconsult answers software engineering questions with strategic guidance.
It calls an OpenAI-compatible chat endpoint (Groq by default) and falls back
to built-in consulting templates when no key is set or the call fails.

Examples:
  devconsult mcp serve
  devconsult ask "How should I structure a payments service?"
  devconsult chat
  devconsult config check-key`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		newMCPCmd(),
		newAskCmd(),
		newChatCmd(),
		newSetupCmd(),
		newConfigCmd(),
	)

	rootCmd.PersistentFlags().StringP("config", "c", "", "path to the configuration file")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")

	return rootCmd
}
