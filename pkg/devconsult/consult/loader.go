// Package consult – loader.go loads configuration from YAML files and resolves
// credentials from the environment, .env files and the OS keyring.
package consult

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"regexp"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// envFiles are loaded in order; earlier files win because godotenv never
// overwrites a variable that is already set.
var envFiles = []string{".env.local", ".env"}

// envVarPattern matches ${VAR} and ${VAR:-default}.
var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(?::-([^}]*))?\}`)

// LoadEnvFiles loads .env files from the working directory into the process
// environment. Existing variables are kept. Failures are logged, never fatal.
func LoadEnvFiles(logger *slog.Logger) {
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			logger.Warn("could not load env file", "file", f, "error", err)
		}
	}
}

// LoadConfigFromFile reads and parses a YAML configuration file.
// Environment references are expanded before parsing.
func LoadConfigFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return ParseConfig([]byte(expandEnvVars(string(data))))
}

// LoadConfig loads the config at path, or the first standard location when
// path is empty. No file at all yields DefaultConfig.
func LoadConfig(path string) (*Config, string, error) {
	if path == "" {
		path = FindConfigFile()
	}
	if path == "" {
		return DefaultConfig(), "", nil
	}
	cfg, err := LoadConfigFromFile(path)
	if err != nil {
		return nil, path, err
	}
	return cfg, path, nil
}

// ParseConfig parses YAML bytes into a Config.
// Starts with defaults and overlays values from the YAML.
func ParseConfig(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	// Explicit empty values in YAML would otherwise disable the defaults.
	defaults := DefaultConfig()
	if cfg.Model == "" {
		cfg.Model = defaults.Model
	}
	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = defaults.API.BaseURL
	}
	if cfg.API.KeyEnv == "" {
		cfg.API.KeyEnv = defaults.API.KeyEnv
	}
	if cfg.API.Timeout <= 0 {
		cfg.API.Timeout = defaults.API.Timeout
	}
	return cfg, nil
}

// SaveConfigToFile writes cfg as YAML with owner-only permissions.
// A literal API key is never written; the key lives in the env or keyring.
func SaveConfigToFile(cfg *Config, path string) error {
	sanitized := *cfg
	sanitized.API.APIKey = ""

	data, err := yaml.Marshal(&sanitized)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// FindConfigFile searches for config files in standard locations.
func FindConfigFile() string {
	candidates := []string{
		"devconsult.yaml",
		"devconsult.yml",
		"config.yaml",
		"configs/devconsult.yaml",
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ResolveCredentials resolves the API key and model once.
// Key priority: env var named by api.key_env, OS keyring, literal config value.
// Model priority: DEVCONSULT_MODEL, config, DefaultModel.
// Never fails; an empty key routes every question to the templates.
func ResolveCredentials(cfg *Config) Credentials {
	keyEnv := cfg.API.KeyEnv
	if keyEnv == "" {
		keyEnv = DefaultKeyEnv
	}

	creds := Credentials{Model: cfg.Model}
	if key := os.Getenv(keyEnv); key != "" {
		creds.APIKey = key
	} else if key := GetKeyring(keyringAPIKey); key != "" {
		creds.APIKey = key
	} else if !IsEnvReference(cfg.API.APIKey) {
		creds.APIKey = strings.TrimSpace(cfg.API.APIKey)
	}

	if m := os.Getenv(ModelEnv); m != "" {
		creds.Model = m
	}
	if creds.Model == "" {
		creds.Model = DefaultModel
	}
	return creds
}

// IsEnvReference checks if a string is an unexpanded ${VAR} reference.
// A bare leading "$" is a valid literal key character.
func IsEnvReference(s string) bool {
	return strings.HasPrefix(strings.TrimSpace(s), "${")
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} references. Unset
// variables without a default keep their placeholder.
func expandEnvVars(input string) string {
	return envVarPattern.ReplaceAllStringFunc(input, func(match string) string {
		sub := envVarPattern.FindStringSubmatch(match)
		if val, ok := os.LookupEnv(sub[1]); ok {
			return val
		}
		if strings.Contains(match, ":-") {
			return sub[2]
		}
		return match
	})
}
