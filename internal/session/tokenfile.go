// ABOUTME: Durable storage for the session token in the XDG config directory
// ABOUTME: The token file is the only state that survives a process restart

package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const tokenFileName = "session.json"

// TokenFile persists the raw session token under a config directory
type TokenFile struct {
	configDir string
}

type tokenData struct {
	Token string `json:"token"`
}

// NewTokenFile creates a TokenFile rooted at the given config directory
func NewTokenFile(configDir string) *TokenFile {
	return &TokenFile{configDir: configDir}
}

// DefaultConfigDir returns the config directory, honoring XDG_CONFIG_HOME
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "brightwave")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "brightwave")
}

// path returns the full path of the token file
func (tf *TokenFile) path() string {
	return filepath.Join(tf.configDir, tokenFileName)
}

// Load reads the persisted token. A missing or corrupt file means there is
// no session to hydrate, which is not an error.
func (tf *TokenFile) Load() (string, error) {
	data, err := os.ReadFile(tf.path())
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read token file: %w", err)
	}

	var td tokenData
	if err := json.Unmarshal(data, &td); err != nil {
		// Invalid JSON, treat as absent
		return "", nil
	}
	return td.Token, nil
}

// Save writes the token to disk. The file is owner-only since it holds a
// live credential.
func (tf *TokenFile) Save(token string) error {
	if err := os.MkdirAll(tf.configDir, 0700); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}

	data, err := json.MarshalIndent(tokenData{Token: token}, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(tf.path(), data, 0600)
}

// Clear removes the token file. Removing an absent file is not an error.
func (tf *TokenFile) Clear() error {
	err := os.Remove(tf.path())
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove token file: %w", err)
	}
	return nil
}
