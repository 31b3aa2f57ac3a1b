package errors_test

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	deployerrors "gitdeploy.dev/gitdeploy/internal/errors"
)

func TestStepError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		step     deployerrors.Step
		sentinel error
		prefix   string
	}{
		{deployerrors.StepGuard, deployerrors.ErrUsage, "use this tool from the parent directory"},
		{deployerrors.StepClone, deployerrors.ErrClone, "failed to clone repository"},
		{deployerrors.StepTransfer, deployerrors.ErrTransfer, "failed to copy repository to server"},
		{deployerrors.StepCleanup, deployerrors.ErrCleanup, "failed to remove local repository"},
		{deployerrors.StepPush, deployerrors.ErrPush, "failed to add remote or push to server"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(string(tt.step), func(t *testing.T) {
			t.Parallel()
			cause := fmt.Errorf("boom")
			err := deployerrors.NewStepError(tt.step, cause)

			require.ErrorIs(t, err, tt.sentinel)
			require.ErrorIs(t, err, cause)
			require.Equal(t, tt.prefix+": boom", err.Error())
		})
	}

	t.Run("does not match other steps", func(t *testing.T) {
		t.Parallel()
		err := deployerrors.NewStepError(deployerrors.StepClone, nil)
		require.NotErrorIs(t, err, deployerrors.ErrPush)
		require.Equal(t, "failed to clone repository", err.Error())
	})

	t.Run("wrapped step error still matches", func(t *testing.T) {
		t.Parallel()
		err := fmt.Errorf("deploy: %w", deployerrors.NewStepError(deployerrors.StepTransfer, nil))
		require.ErrorIs(t, err, deployerrors.ErrTransfer)

		var stepErr *deployerrors.StepError
		require.ErrorAs(t, err, &stepErr)
		require.Equal(t, deployerrors.StepTransfer, stepErr.Step)
	})
}

func TestUsageError(t *testing.T) {
	t.Parallel()
	err := deployerrors.NewUsageError(".")
	require.ErrorIs(t, err, deployerrors.ErrUsage)
	require.Contains(t, err.Error(), "parent directory")
}

func TestCommandError(t *testing.T) {
	t.Parallel()

	t.Run("includes exit code and last stderr line", func(t *testing.T) {
		t.Parallel()
		err := deployerrors.NewCommandError("git", []string{"clone", "--bare", "app", "app.git"},
			"Cloning into bare repository 'app.git'...\nfatal: repository 'app' does not exist\n\n", 128, errors.New("exit status 128"))

		require.Equal(t, "git clone --bare app app.git: exit status 128: fatal: repository 'app' does not exist", err.Error())
	})

	t.Run("reports spawn failures", func(t *testing.T) {
		t.Parallel()
		err := deployerrors.NewCommandError("scp", []string{"-r"}, "", -1, os.ErrNotExist)

		require.Equal(t, "scp -r: file does not exist", err.Error())
		require.ErrorIs(t, err, os.ErrNotExist)
	})
}
