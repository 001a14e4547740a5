package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/jholhewres/devconsult/pkg/devconsult/consult"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

// newConfigCmd creates the `devconsult config` command group.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration and credentials",
		Long: `Inspect the effective configuration and manage the API key.

Examples:
  devconsult config show
  devconsult config check-key
  devconsult config set-key
  devconsult config delete-key`,
	}

	cmd.AddCommand(
		newConfigShowCmd(),
		newConfigCheckKeyCmd(),
		newConfigSetKeyCmd(),
		newConfigDeleteKeyCmd(),
	)
	return cmd
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, path, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			creds := consult.ResolveCredentials(cfg)

			shown := *cfg
			shown.API.APIKey = consult.MaskKey(creds.APIKey)
			shown.Model = creds.Model
			data, err := yaml.Marshal(&shown)
			if err != nil {
				return fmt.Errorf("marshaling config: %w", err)
			}

			out := cmd.OutOrStdout()
			if path == "" {
				path = "(defaults)"
			}
			fmt.Fprintf(out, "# source: %s\n%s", path, data)
			return nil
		},
	}
}

func newConfigCheckKeyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check-key",
		Short: "Report whether the resolved API key looks usable",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, _, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			creds := consult.ResolveCredentials(cfg)
			fmt.Fprintf(cmd.OutOrStdout(), "API key %s: %s\n",
				consult.MaskKey(creds.APIKey), consult.CheckKeyFormat(creds.APIKey))
			return nil
		},
	}
}

func newConfigSetKeyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-key [key]",
		Short: "Store the API key in the OS keyring",
		Long: `Store the API key in the OS keyring. Without an argument the key is read
from the terminal without echo. The environment variable still takes priority.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var key string
			if len(args) > 0 {
				key = args[0]
			} else {
				var err error
				if key, err = readSecret("API key: "); err != nil {
					return err
				}
			}
			key = strings.TrimSpace(key)
			if status := consult.CheckKeyFormat(key); status != consult.KeyStatusValid {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: key %s\n", status)
			}
			return consult.StoreAPIKey(key, quietLogger(cmd))
		},
	}
}

func newConfigDeleteKeyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete-key",
		Short: "Remove the API key from the OS keyring",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := consult.DeleteAPIKey(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "API key removed from keyring")
			return nil
		},
	}
}

// readSecret reads a line from the terminal without echo.
func readSecret(prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", fmt.Errorf("stdin is not a terminal; pass the key as an argument")
	}
	fmt.Fprint(os.Stderr, prompt)
	secret, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading secret: %w", err)
	}
	return string(secret), nil
}
