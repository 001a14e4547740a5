package commands

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/jholhewres/devconsult/pkg/devconsult/consult"
	"github.com/spf13/cobra"
)

// resolveConfig loads .env files and then the config named by --config, or
// the first standard location. No file yields the defaults.
func resolveConfig(cmd *cobra.Command) (*consult.Config, string, error) {
	consult.LoadEnvFiles(newLogger(cmd, nil, os.Stderr))

	path, _ := cmd.Root().PersistentFlags().GetString("config")
	return consult.LoadConfig(path)
}

// newLogger builds the process logger. Logs always go to w (stderr), since
// stdout carries MCP traffic or answers.
func newLogger(cmd *cobra.Command, cfg *consult.Config, w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	format := "text"
	if cfg != nil {
		level = parseLevel(cfg.Logging.Level)
		if cfg.Logging.Format != "" {
			format = cfg.Logging.Format
		}
	}
	if verbose, _ := cmd.Root().PersistentFlags().GetBool("verbose"); verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// quietLogger only reports errors; used by one-shot commands.
func quietLogger(cmd *cobra.Command) *slog.Logger {
	if verbose, _ := cmd.Root().PersistentFlags().GetBool("verbose"); verbose {
		return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// buildConsultant resolves config and credentials and returns a consultant.
// Quiet commands only log errors unless --verbose is set.
func buildConsultant(cmd *cobra.Command, quiet bool) (*consult.Consultant, *consult.Config, *slog.Logger, error) {
	cfg, _, err := resolveConfig(cmd)
	if err != nil {
		return nil, nil, nil, err
	}
	log := newLogger(cmd, cfg, os.Stderr)
	if quiet {
		log = quietLogger(cmd)
	}

	model, _ := cmd.Flags().GetString("model")
	c := consult.New(cfg, log, consult.WithModel(model))
	creds := c.Credentials()

	log.Info("consultant ready",
		"session", c.SessionID(),
		"model", creds.Model,
		"key", consult.MaskKey(creds.APIKey),
		"key_status", consult.CheckKeyFormat(creds.APIKey),
	)
	return c, cfg, log, nil
}
