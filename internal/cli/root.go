// Package cli wires the gitdeploy command line to the deployment pipeline.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"gitdeploy.dev/gitdeploy/internal/config"
	"gitdeploy.dev/gitdeploy/internal/deploy"
	"gitdeploy.dev/gitdeploy/internal/git"
	"gitdeploy.dev/gitdeploy/internal/tui"
)

// NewRootCmd creates the root cobra command
func NewRootCmd(version, commit, date string) *cobra.Command {
	var remoteName string

	rootCmd := &cobra.Command{
		Use:   "gitdeploy <project> <server>",
		Short: "Clone a project as a bare repository, copy it to a server and push to it",
		Long: `Clone a project as a bare repository, copy it to a server and push to it.

Run from the directory containing <project>. gitdeploy will:
  1. git clone --bare <project> <project>.git
  2. scp -r <project>.git <server>:<project>.git
  3. remove the local <project>.git
  4. in the working copy <remote name>, add a remote called <project>
     pointing at <server>:<project>.git and push master to it

The first failing step stops the run. Nothing is rolled back.

Environment:
  GITDEPLOY_GIT, GITDEPLOY_SCP, GITDEPLOY_SHELL   override tool binaries
  GITDEPLOY_BRANCH                                branch to push (default master)
  GITDEPLOY_TIMEOUT                               per-command timeout (default none)
  GITDEPLOY_LOG_FILE                              write a rotated log file`,
		Args:          cobra.ExactArgs(2),
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := deploy.NewRequest(args[0], args[1], remoteName)
			if err != nil {
				return err
			}

			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			tui.ConfigureColor(os.Stdout)
			splog, err := tui.NewSplogWithOptions(tui.LogOptions{
				Debug:      cfg.Log.Debug,
				File:       cfg.Log.File,
				MaxSize:    cfg.Log.MaxSize,
				MaxBackups: cfg.Log.MaxBackups,
				MaxAge:     cfg.Log.MaxAge,
				Stdout:     cmd.OutOrStdout(),
				Stderr:     cmd.ErrOrStderr(),
			})
			if err != nil {
				return fmt.Errorf("failed to open log: %w", err)
			}
			defer func() { _ = splog.Close() }()

			workDir, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get working directory: %w", err)
			}

			runner := git.NewCommandRunner(workDir)
			runner.SetOutput(cmd.OutOrStdout(), cmd.ErrOrStderr())
			runner.SetTimeout(cfg.Timeout)

			deployer := deploy.NewDeployer(runner, deploy.Options{
				Tools:   cfg.Tools,
				Branch:  cfg.Branch,
				DryRun:  cfg.DryRun,
				WorkDir: workDir,
				Splog:   splog,
			})
			return deployer.Run(cmd.Context(), req)
		},
	}

	rootCmd.Flags().StringVarP(&remoteName, "remote", "r", deploy.DefaultRemoteName, "Working copy directory to add the remote to")
	rootCmd.Flags().Bool("dry-run", false, "Print the commands without running them")
	rootCmd.Flags().Bool("debug", false, "Show debug output")
	rootCmd.Flags().String("log-file", "", "Also write a rotated log to this file")
	rootCmd.Flags().Duration("timeout", 0, "Abort any single command running longer than this (0 disables)")

	return rootCmd
}
