package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFileMissingUsesDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := LoadFile(filepath.Join(t.TempDir(), "config.toml"))
	require.NoError(t, err)

	assert.Equal(t, DefaultPollInterval, cfg.PollInterval.Duration)
	assert.Equal(t, DefaultRequestTimeout, cfg.RequestTimeout.Duration)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, filepath.Join(os.Getenv("HOME"), ".config", "classwork"), cfg.DataDir)
}

func TestLoadFileOverridesAndClamps(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
poll_interval = "10m"
request_timeout = "5s"
log_level = "DEBUG"
data_dir = "~/school"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, MaxPollInterval, cfg.PollInterval.Duration)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout.Duration)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, filepath.Join(home, "school"), cfg.DataDir)
	assert.Equal(t, filepath.Join(home, "school", CoursesFile), cfg.Path(CoursesFile))
}

func TestLoadFileRejectsBadDuration(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`poll_interval = "soon"`), 0600))

	_, err := LoadFile(path)
	assert.Error(t, err)
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want time.Duration
	}{
		{0, DefaultPollInterval},
		{-time.Second, DefaultPollInterval},
		{5 * time.Second, MinPollInterval},
		{90 * time.Second, 90 * time.Second},
		{time.Hour, MaxPollInterval},
	}
	for _, tt := range tests {
		cfg := &Config{PollInterval: Duration{tt.in}, LogLevel: "loud"}
		cfg.Normalize()
		assert.Equal(t, tt.want, cfg.PollInterval.Duration, tt.in.String())
		assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
	}
}

func TestSaveFileRoundTrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cfg := &Config{
		PollInterval:   Duration{90 * time.Second},
		RequestTimeout: Duration{20 * time.Second},
		LogLevel:       "warn",
		DataDir:        "/tmp/classwork",
	}

	require.NoError(t, SaveFile(path, cfg))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "poll_interval")
	assert.Contains(t, string(data), "1m30s")

	got, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}
