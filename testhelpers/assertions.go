package testhelpers

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"gitdeploy.dev/gitdeploy/internal/git"
)

// ExpectNotExist asserts that nothing exists at path.
func ExpectNotExist(t *testing.T, path string) {
	t.Helper()
	_, err := os.Stat(path)
	require.True(t, os.IsNotExist(err), "expected %s to not exist (stat err: %v)", path, err)
}

// ExpectBareRepo asserts that path holds a bare repository containing branch.
func ExpectBareRepo(t *testing.T, path, branch string) {
	t.Helper()
	repo, err := git.OpenRepository(path)
	require.NoError(t, err, "expected a repository at %s", path)
	require.True(t, repo.IsBare(), "expected %s to be bare", path)
	require.True(t, repo.HasBranch(branch), "expected %s to contain branch %s", path, branch)
}

// ExpectRemote asserts that the repository at dir has remote name pointing at url.
func ExpectRemote(t *testing.T, dir, name, url string) {
	t.Helper()
	repo, err := git.OpenRepository(dir)
	require.NoError(t, err)
	urls, err := repo.RemoteURLs(name)
	require.NoError(t, err)
	require.Equal(t, []string{url}, urls)
}

// ExpectUpstream asserts that branch in dir tracks remote/branch.
func ExpectUpstream(t *testing.T, dir, branch, remote string) {
	t.Helper()
	repo, err := git.OpenRepository(dir)
	require.NoError(t, err)
	upstream, err := repo.BranchUpstream(branch)
	require.NoError(t, err)
	require.Equal(t, remote, upstream.Remote)
	require.Equal(t, "refs/heads/"+branch, upstream.Merge)
}
