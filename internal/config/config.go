// Package config handles the styler's persisted settings: the library root
// resolution and the optional config.json inside it.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultPort is the API server port when nothing else is configured
const DefaultPort = 8188

// EnvDir overrides the library root when set
const EnvDir = "PROMPT_STYLER_DIR"

// Config holds user-tunable settings persisted in <root>/config.json
type Config struct {
	Port       int  `json:"port"`
	LogPrompts bool `json:"log_prompts"`

	root string
}

// DefaultLibraryDir returns the library root: $PROMPT_STYLER_DIR when set,
// ~/.prompt-styler otherwise
func DefaultLibraryDir() (string, error) {
	if dir := os.Getenv(EnvDir); dir != "" {
		return dir, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".prompt-styler"), nil
}

// Load reads <root>/config.json, falling back to defaults when the file
// does not exist. A malformed config file is an error; silently ignoring it
// would hide a typo in the user's settings.
func Load(root string) (*Config, error) {
	cfg := &Config{
		Port:       DefaultPort,
		LogPrompts: true,
		root:       root,
	}

	path := filepath.Join(root, "config.json")
	content, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := json.Unmarshal(content, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if cfg.Port == 0 {
		cfg.Port = DefaultPort
	}

	return cfg, nil
}

// Save writes the config back to <root>/config.json
func (c *Config) Save() error {
	if err := os.MkdirAll(c.root, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	content, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	path := filepath.Join(c.root, "config.json")
	if err := os.WriteFile(path, content, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
