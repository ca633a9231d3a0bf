package cmd

import (
	"testing"
	"time"

	"github.com/harrisonrobin/classwork/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveConfigFlagsWin(t *testing.T) {
	cfg := &config.Config{PollInterval: config.Duration{Duration: 45 * time.Second}, LogLevel: "info"}
	resolveConfig(cfg, &options{interval: 100 * time.Second, logLevel: "debug"})

	assert.Equal(t, 100*time.Second, cfg.PollInterval.Duration)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestResolveConfigKeepsFileValues(t *testing.T) {
	cfg := &config.Config{PollInterval: config.Duration{Duration: 45 * time.Second}, LogLevel: "warn"}
	resolveConfig(cfg, &options{})

	assert.Equal(t, 45*time.Second, cfg.PollInterval.Duration)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, config.DefaultRequestTimeout, cfg.RequestTimeout.Duration)
}

func TestResolveConfigClampsFlagInterval(t *testing.T) {
	cfg := &config.Config{}
	resolveConfig(cfg, &options{interval: time.Second})
	assert.Equal(t, config.MinPollInterval, cfg.PollInterval.Duration)
}

func TestRootCommandFlags(t *testing.T) {
	cmd := newRootCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--interval", "90s", "--auth", "--log-level", "debug"}))

	interval, err := cmd.Flags().GetDuration("interval")
	require.NoError(t, err)
	assert.Equal(t, 90*time.Second, interval)

	reauth, err := cmd.Flags().GetBool("auth")
	require.NoError(t, err)
	assert.True(t, reauth)
}

func TestRootCommandRejectsArgs(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"unexpected"})
	assert.Error(t, cmd.Execute())
}
