package git_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"gitdeploy.dev/gitdeploy/internal/git"
)

func TestTools(t *testing.T) {
	t.Parallel()
	tools := git.DefaultTools()

	t.Run("clone bare", func(t *testing.T) {
		t.Parallel()
		cmd := tools.CloneBare("myapp", "myapp.git")
		require.Equal(t, "git", cmd.Name)
		require.Equal(t, []string{"clone", "--bare", "myapp", "myapp.git"}, cmd.Args)
	})

	t.Run("secure copy", func(t *testing.T) {
		t.Parallel()
		cmd := tools.SecureCopy("myapp.git", "myhost:myapp.git")
		require.Equal(t, "scp", cmd.Name)
		require.Equal(t, []string{"-r", "myapp.git", "myhost:myapp.git"}, cmd.Args)
	})

	t.Run("add remote and push", func(t *testing.T) {
		t.Parallel()
		cmd := tools.AddRemoteAndPush("origin", "myapp", "myhost:myapp.git", "master")
		require.Equal(t, "sh", cmd.Name)
		require.Equal(t, []string{"-c",
			"cd origin && git remote add myapp myhost:myapp.git && git push --set-upstream myapp master",
		}, cmd.Args)
	})

	t.Run("quotes arguments with spaces", func(t *testing.T) {
		t.Parallel()
		cmd := tools.AddRemoteAndPush("my remote", "myapp", "myhost:myapp.git", "master")
		require.Equal(t, "cd 'my remote' && git remote add myapp myhost:myapp.git && git push --set-upstream myapp master", cmd.Args[1])
	})

	t.Run("unset tools fall back to defaults", func(t *testing.T) {
		t.Parallel()
		custom := git.Tools{SCP: "/opt/bin/scp"}
		require.Equal(t, "git", custom.CloneBare("a", "a.git").Name)
		require.Equal(t, "/opt/bin/scp", custom.SecureCopy("a.git", "h:a.git").Name)
		require.Equal(t, "sh", custom.AddRemoteAndPush("origin", "a", "h:a.git", "master").Name)
	})
}

func TestCommandString(t *testing.T) {
	t.Parallel()
	cmd := git.DefaultTools().CloneBare("my app", "my app.git")
	require.Equal(t, "git clone --bare 'my app' 'my app.git'", cmd.String())
}

func TestAddRemoteAndPushKeepsArgumentsIntact(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	runner, stdout, _ := newQuietRunner(t.TempDir())

	// echo stands in for git so the shell's view of each argument is visible.
	tools := git.Tools{Git: "echo"}
	cmd := tools.AddRemoteAndPush(dir, "we;ird $(name)", "myhost:app.git", "master")
	require.NoError(t, runner.Run(context.Background(), cmd))

	require.Equal(t,
		"remote add we;ird $(name) myhost:app.git\npush --set-upstream we;ird $(name) master\n",
		stdout.String())
}
