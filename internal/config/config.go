// Package config resolves gitdeploy settings from flags and GITDEPLOY_*
// environment variables. Nothing is read from or written to disk.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"gitdeploy.dev/gitdeploy/internal/git"
)

// EnvPrefix is prepended to every environment key.
const EnvPrefix = "GITDEPLOY"

// Config holds all run settings.
type Config struct {
	Tools   git.Tools
	Branch  string
	Timeout time.Duration
	DryRun  bool
	Log     LogConfig
}

// LogConfig holds console and log file settings.
type LogConfig struct {
	Debug      bool
	File       string
	MaxSize    int // megabytes
	MaxBackups int
	MaxAge     int // days
}

// Load builds a Config from defaults, environment and any flags bound in
// flags. Flag names match keys with '_' replaced by '-'.
func Load(flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	v.SetDefault("git", "git")
	v.SetDefault("scp", "scp")
	v.SetDefault("shell", "sh")
	v.SetDefault("branch", "master")
	v.SetDefault("timeout", "0s")
	v.SetDefault("dry_run", false)
	v.SetDefault("debug", os.Getenv("DEBUG") != "")
	v.SetDefault("log_file", "")
	v.SetDefault("log_max_size", 1)
	v.SetDefault("log_max_backups", 2)
	v.SetDefault("log_max_age", 30)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for _, key := range []string{"debug", "dry_run", "log_file", "timeout"} {
			if f := flags.Lookup(strings.ReplaceAll(key, "_", "-")); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", f.Name, err)
				}
			}
		}
	}

	timeout := v.GetDuration("timeout")
	if timeout < 0 {
		return nil, fmt.Errorf("invalid timeout %s: must not be negative", timeout)
	}

	branch := strings.TrimSpace(v.GetString("branch"))
	if branch == "" {
		return nil, fmt.Errorf("branch must not be empty")
	}

	return &Config{
		Tools: git.Tools{
			Git:   v.GetString("git"),
			SCP:   v.GetString("scp"),
			Shell: v.GetString("shell"),
		},
		Branch:  branch,
		Timeout: timeout,
		DryRun:  v.GetBool("dry_run"),
		Log: LogConfig{
			Debug:      v.GetBool("debug"),
			File:       v.GetString("log_file"),
			MaxSize:    v.GetInt("log_max_size"),
			MaxBackups: v.GetInt("log_max_backups"),
			MaxAge:     v.GetInt("log_max_age"),
		},
	}, nil
}
