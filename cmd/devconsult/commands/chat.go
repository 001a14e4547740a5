package commands

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"
)

// newChatCmd creates the `devconsult chat` command for an interactive session.
func newChatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Interactive consultation session",
		Long: `Start an interactive session. Every question shares the same conversation,
so follow-ups keep the context of earlier answers. Type /history to see the
number of recorded turns, /exit or Ctrl-D to quit.`,
		Args: cobra.NoArgs,
		RunE: runChat,
	}

	cmd.Flags().StringP("model", "m", "", "chat model to use (overrides config and env)")
	return cmd
}

func runChat(cmd *cobra.Command, _ []string) error {
	consultant, _, _, err := buildConsultant(cmd, true)
	if err != nil {
		return err
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "consult> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("starting prompt: %w", err)
	}
	defer rl.Close()

	out := rl.Stdout()
	fmt.Fprintf(out, "devconsult session %s (model %s)\n\n",
		consultant.SessionID(), consultant.Credentials().Model)

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			if line == "" {
				return nil
			}
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}

		line = strings.TrimSpace(line)
		switch line {
		case "":
			continue
		case "/exit", "/quit":
			return nil
		case "/history":
			fmt.Fprintf(out, "%d turns recorded\n", len(consultant.History()))
			continue
		}

		fmt.Fprintln(out, strings.TrimSpace(consultant.Ask(cmd.Context(), line)))
		fmt.Fprintln(out)
	}
}
