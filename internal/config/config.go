package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/taskdeck/taskdeck/internal/auth"
)

// Defaults for the hosted Taskdeck service.
const (
	DefaultAPIBaseURL = "https://api.taskdeck.io"
	DefaultAuthURL    = "https://taskdeck.io/oauth/authorize"
	DefaultTokenURL   = "https://taskdeck.io/oauth/access_token"

	// ClientID identifies the taskdeck CLI to the authorization server.
	// PKCE replaces a client secret for native apps, so there is nothing
	// confidential about it.
	ClientID = "cbf2a1d94ae04d11"

	// Scope requested during login.
	Scope = "data:read_write"
)

// Config holds the effective client configuration.
type Config struct {
	APIBaseURL   string `yaml:"api_base_url"`
	AuthURL      string `yaml:"auth_url"`
	TokenURL     string `yaml:"token_url"`
	CallbackPort int    `yaml:"callback_port"`
}

// Default returns the compiled-in configuration.
func Default() Config {
	return Config{
		APIBaseURL:   DefaultAPIBaseURL,
		AuthURL:      DefaultAuthURL,
		TokenURL:     DefaultTokenURL,
		CallbackPort: auth.DefaultCallbackPort,
	}
}

// Load returns the defaults merged with the user's config file, if present.
func Load() (Config, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return Default(), nil
	}
	return LoadFile(filepath.Join(configDir, "taskdeck", "config.yaml"))
}

// LoadFile loads path over the defaults. A missing file is not an error.
func LoadFile(path string) (Config, error) {
	cfg := Default()

	slurp, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	var overrides Config
	if err := yaml.Unmarshal(slurp, &overrides); err != nil {
		return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if overrides.APIBaseURL != "" {
		cfg.APIBaseURL = overrides.APIBaseURL
	}
	if overrides.AuthURL != "" {
		cfg.AuthURL = overrides.AuthURL
	}
	if overrides.TokenURL != "" {
		cfg.TokenURL = overrides.TokenURL
	}
	if overrides.CallbackPort != 0 {
		cfg.CallbackPort = overrides.CallbackPort
	}
	return cfg, nil
}

// RedirectURI returns the redirect URI registered for the CLI's callback
// listener.
func (c Config) RedirectURI() string {
	return fmt.Sprintf("http://127.0.0.1:%d/callback", c.CallbackPort)
}
