// Package consult – keyring.go stores the API key in the operating system's
// native keyring (Linux: Secret Service, macOS: Keychain, Windows: Credential
// Manager) so it never has to live in a config file.
package consult

import (
	"fmt"
	"log/slog"

	"github.com/zalando/go-keyring"
)

const (
	// keyringService is the service name used in the OS keyring.
	keyringService = "devconsult"

	// keyringAPIKey is the key name for the chat API key.
	keyringAPIKey = "api_key"
)

// StoreKeyring saves a secret to the OS keyring.
func StoreKeyring(key, value string) error {
	return keyring.Set(keyringService, key, value)
}

// GetKeyring retrieves a secret from the OS keyring.
// Returns empty string if not found or the keyring is unavailable.
func GetKeyring(key string) string {
	val, err := keyring.Get(keyringService, key)
	if err != nil {
		return ""
	}
	return val
}

// DeleteKeyring removes a secret from the OS keyring.
func DeleteKeyring(key string) error {
	return keyring.Delete(keyringService, key)
}

// StoreAPIKey saves the chat API key to the OS keyring.
func StoreAPIKey(apiKey string, logger *slog.Logger) error {
	if err := StoreKeyring(keyringAPIKey, apiKey); err != nil {
		return fmt.Errorf("storing in keyring: %w", err)
	}
	logger.Info("API key stored in OS keyring",
		"service", keyringService,
		"key", MaskKey(apiKey))
	return nil
}

// DeleteAPIKey removes the chat API key from the OS keyring.
func DeleteAPIKey() error {
	if err := DeleteKeyring(keyringAPIKey); err != nil {
		return fmt.Errorf("deleting from keyring: %w", err)
	}
	return nil
}
