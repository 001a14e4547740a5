package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// newAskCmd creates the `devconsult ask` command for a single consultation.
func newAskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ask [question]",
		Short: "Ask one software engineering question",
		Long: `Ask a single question and print the consultation.
Without an argument the question is read from stdin.

Examples:
  devconsult ask "Why is my API slow under load?"
  git diff | devconsult ask`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			question, err := questionFromArgs(args, os.Stdin)
			if err != nil {
				return err
			}

			consultant, _, _, err := buildConsultant(cmd, true)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), strings.TrimSpace(consultant.Ask(cmd.Context(), question)))
			return nil
		},
	}

	cmd.Flags().StringP("model", "m", "", "chat model to use (overrides config and env)")
	return cmd
}

// questionFromArgs returns the argument, or stdin when it is piped.
func questionFromArgs(args []string, stdin *os.File) (string, error) {
	if len(args) > 0 && strings.TrimSpace(args[0]) != "" {
		return args[0], nil
	}
	if term.IsTerminal(int(stdin.Fd())) {
		return "", fmt.Errorf("no question given. Usage: devconsult ask \"<question>\"")
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	question := strings.TrimSpace(string(data))
	if question == "" {
		return "", fmt.Errorf("empty question on stdin")
	}
	return question, nil
}
