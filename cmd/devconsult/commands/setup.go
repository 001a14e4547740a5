package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/jholhewres/devconsult/pkg/devconsult/consult"
	"github.com/spf13/cobra"
)

// newSetupCmd creates the `devconsult setup` command for interactive configuration.
func newSetupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Interactive setup wizard",
		Long: `Starts an interactive wizard that writes devconsult.yaml and stores the
API key in the OS keyring (never in the config file).

Examples:
  devconsult setup
  devconsult setup --output ./configs/devconsult.yaml`,
		Args: cobra.NoArgs,
		RunE: runSetup,
	}

	cmd.Flags().StringP("output", "o", "devconsult.yaml", "where to write the config file")
	return cmd
}

func runSetup(cmd *cobra.Command, _ []string) error {
	cfg := consult.DefaultConfig()
	output, _ := cmd.Flags().GetString("output")

	var (
		apiKey    string
		storeKey  = true
		overwrite = true
	)

	models := []string{consult.DefaultModel, "llama-3.3-70b-versatile", "mixtral-8x7b-32768"}
	options := make([]huh.Option[string], 0, len(models))
	for _, m := range models {
		options = append(options, huh.NewOption(m, m))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("API base URL").
				Description("OpenAI-compatible endpoint root").
				Value(&cfg.API.BaseURL),
			huh.NewSelect[string]().
				Title("Model").
				Options(options...).
				Value(&cfg.Model),
			huh.NewInput().
				Title("API key").
				Description("Leave empty to rely on $" + consult.DefaultKeyEnv).
				EchoMode(huh.EchoModePassword).
				Value(&apiKey),
			huh.NewConfirm().
				Title("Store the key in the OS keyring?").
				Value(&storeKey),
		),
	)
	if err := form.Run(); err != nil {
		return fmt.Errorf("setup cancelled: %w", err)
	}

	if _, err := os.Stat(output); err == nil {
		confirm := huh.NewConfirm().
			Title(fmt.Sprintf("%s exists. Overwrite?", output)).
			Value(&overwrite)
		if err := confirm.Run(); err != nil {
			return fmt.Errorf("setup cancelled: %w", err)
		}
		if !overwrite {
			return nil
		}
	}

	if err := consult.SaveConfigToFile(cfg, output); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Config written to %s\n", output)

	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Key check: %s\n", consult.CheckKeyFormat(apiKey))
	if !storeKey {
		fmt.Fprintf(cmd.OutOrStdout(), "Export it before starting: export %s=...\n", cfg.API.KeyEnv)
		return nil
	}
	return consult.StoreAPIKey(apiKey, quietLogger(cmd))
}
