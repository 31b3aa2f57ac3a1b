package git_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"gitdeploy.dev/gitdeploy/internal/git"
	"gitdeploy.dev/gitdeploy/testhelpers"
)

func TestRepository(t *testing.T) {
	t.Parallel()

	setup := func(t *testing.T) *testhelpers.GitRepo {
		t.Helper()
		repo, err := testhelpers.NewGitRepo(filepath.Join(t.TempDir(), "work"))
		require.NoError(t, err)
		require.NoError(t, repo.CreateChangeAndCommit("initial", "init"))
		return repo
	}

	t.Run("reads remote urls", func(t *testing.T) {
		t.Parallel()
		work := setup(t)
		require.NoError(t, work.RunGitCommand("remote", "add", "myapp", "myhost:myapp.git"))

		repo, err := git.OpenRepository(work.Dir)
		require.NoError(t, err)
		urls, err := repo.RemoteURLs("myapp")
		require.NoError(t, err)
		require.Equal(t, []string{"myhost:myapp.git"}, urls)

		_, err = repo.RemoteURLs("missing")
		require.Error(t, err)
	})

	t.Run("reads branch upstream", func(t *testing.T) {
		t.Parallel()
		work := setup(t)
		require.NoError(t, work.RunGitCommand("config", "branch.master.remote", "myapp"))
		require.NoError(t, work.RunGitCommand("config", "branch.master.merge", "refs/heads/master"))

		repo, err := git.OpenRepository(work.Dir)
		require.NoError(t, err)
		upstream, err := repo.BranchUpstream("master")
		require.NoError(t, err)
		require.Equal(t, git.Upstream{Remote: "myapp", Merge: "refs/heads/master"}, upstream)
	})

	t.Run("missing upstream", func(t *testing.T) {
		t.Parallel()
		repo, err := git.OpenRepository(setup(t).Dir)
		require.NoError(t, err)
		_, err = repo.BranchUpstream("master")
		require.ErrorIs(t, err, git.ErrNoUpstream)
	})

	t.Run("working copies are not bare", func(t *testing.T) {
		t.Parallel()
		repo, err := git.OpenRepository(setup(t).Dir)
		require.NoError(t, err)
		require.False(t, repo.IsBare())
		require.True(t, repo.HasBranch("master"))
		require.False(t, repo.HasBranch("nope"))
	})

	t.Run("opening a plain directory fails", func(t *testing.T) {
		t.Parallel()
		_, err := git.OpenRepository(t.TempDir())
		require.Error(t, err)
	})
}
