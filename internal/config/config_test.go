package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFileMissing(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFileOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "api_base_url: https://staging.taskdeck.io\ncallback_port: 9123\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "https://staging.taskdeck.io", cfg.APIBaseURL)
	assert.Equal(t, 9123, cfg.CallbackPort)
	// Untouched values keep their defaults.
	assert.Equal(t, DefaultAuthURL, cfg.AuthURL)
	assert.Equal(t, DefaultTokenURL, cfg.TokenURL)
}

func TestLoadFileInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(":\tnot yaml"), 0600))

	_, err := LoadFile(path)
	assert.Error(t, err)
}

func TestRedirectURI(t *testing.T) {
	cfg := Default()
	cfg.CallbackPort = 8976
	assert.Equal(t, "http://127.0.0.1:8976/callback", cfg.RedirectURI())
}
