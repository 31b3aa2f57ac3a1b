package config_test

import (
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"gitdeploy.dev/gitdeploy/internal/config"
	"gitdeploy.dev/gitdeploy/internal/git"
)

func newFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.Bool("debug", false, "")
	fs.Bool("dry-run", false, "")
	fs.String("log-file", "", "")
	fs.Duration("timeout", 0, "")
	return fs
}

// Environment-mutating tests cannot run in parallel.

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DEBUG", "")

	cfg, err := config.Load(nil)
	require.NoError(t, err)
	require.Equal(t, git.DefaultTools(), cfg.Tools)
	require.Equal(t, "master", cfg.Branch)
	require.Zero(t, cfg.Timeout)
	require.False(t, cfg.DryRun)
	require.False(t, cfg.Log.Debug)
	require.Empty(t, cfg.Log.File)
	require.Equal(t, 1, cfg.Log.MaxSize)
	require.Equal(t, 2, cfg.Log.MaxBackups)
	require.Equal(t, 30, cfg.Log.MaxAge)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("GITDEPLOY_GIT", "/usr/local/bin/git")
	t.Setenv("GITDEPLOY_SCP", "/opt/fake-scp")
	t.Setenv("GITDEPLOY_SHELL", "bash")
	t.Setenv("GITDEPLOY_BRANCH", "main")
	t.Setenv("GITDEPLOY_TIMEOUT", "10m")
	t.Setenv("GITDEPLOY_LOG_FILE", "/tmp/gitdeploy.log")
	t.Setenv("GITDEPLOY_LOG_MAX_SIZE", "5")
	t.Setenv("GITDEPLOY_DEBUG", "true")

	cfg, err := config.Load(nil)
	require.NoError(t, err)
	require.Equal(t, git.Tools{Git: "/usr/local/bin/git", SCP: "/opt/fake-scp", Shell: "bash"}, cfg.Tools)
	require.Equal(t, "main", cfg.Branch)
	require.Equal(t, 10*time.Minute, cfg.Timeout)
	require.Equal(t, "/tmp/gitdeploy.log", cfg.Log.File)
	require.Equal(t, 5, cfg.Log.MaxSize)
	require.True(t, cfg.Log.Debug)
}

func TestLoadFlagsOverrideEnvironment(t *testing.T) {
	t.Setenv("GITDEPLOY_LOG_FILE", "/tmp/from-env.log")

	fs := newFlags()
	require.NoError(t, fs.Parse([]string{"--dry-run", "--log-file", "/tmp/from-flag.log", "--timeout", "30s"}))

	cfg, err := config.Load(fs)
	require.NoError(t, err)
	require.True(t, cfg.DryRun)
	require.Equal(t, "/tmp/from-flag.log", cfg.Log.File)
	require.Equal(t, 30*time.Second, cfg.Timeout)
}

func TestLoadUnsetFlagsKeepEnvironment(t *testing.T) {
	t.Setenv("GITDEPLOY_LOG_FILE", "/tmp/from-env.log")

	fs := newFlags()
	require.NoError(t, fs.Parse(nil))

	cfg, err := config.Load(fs)
	require.NoError(t, err)
	require.Equal(t, "/tmp/from-env.log", cfg.Log.File)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Run("negative timeout", func(t *testing.T) {
		t.Setenv("GITDEPLOY_TIMEOUT", "-1s")
		_, err := config.Load(nil)
		require.ErrorContains(t, err, "invalid timeout")
	})

	t.Run("blank branch", func(t *testing.T) {
		t.Setenv("GITDEPLOY_BRANCH", " ")
		_, err := config.Load(nil)
		require.ErrorContains(t, err, "branch must not be empty")
	})
}
