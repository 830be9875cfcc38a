package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	saved := &Config{
		TrackerURL: "https://tracker.example.com",
		APIToken:   "sekret",
		CopyFields: []string{"Change Log Group"},
		PageSize:   25,
	}
	require.NoError(t, saveTo(path, saved))

	loaded, err := loadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, saved, loaded)
}

func TestLoadDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "tracker_url: https://tracker.example.com/\napi_token: sekret\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0600))

	cfg, err := loadFrom(path)
	require.NoError(t, err)
	// Trailing slash is stripped, absent settings fall back to defaults.
	assert.Equal(t, "https://tracker.example.com", cfg.TrackerURL)
	assert.Equal(t, DefaultCopyFields, cfg.CopyFields)
	assert.Equal(t, DefaultPageSize, cfg.PageSize)
}

func TestLoadMissingConnection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("page_size: 10\n"), 0600))

	_, err := loadFrom(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("BACKPORT_TRACKER_URL", "https://env.example.com")
	t.Setenv("BACKPORT_API_TOKEN", "from-env")

	// No config file at all: the environment alone is enough.
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg, err := loadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, "https://env.example.com", cfg.TrackerURL)
	assert.Equal(t, "from-env", cfg.APIToken)
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tracker_url: [unterminated\n"), 0600))

	_, err := loadFrom(path)
	require.Error(t, err)
}

func TestSplitFieldList(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"Change Log Group, Change Log Message", []string{"Change Log Group", "Change Log Message"}},
		{"One", []string{"One"}},
		{" , ,", nil},
		{"", nil},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, splitFieldList(tt.in), "input %q", tt.in)
	}
}
