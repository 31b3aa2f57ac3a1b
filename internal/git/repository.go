package git

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// ErrNoUpstream indicates a branch has no tracking configuration
var ErrNoUpstream = errors.New("branch has no upstream")

// Repository wraps a go-git repository
type Repository struct {
	*git.Repository
	path string
}

// OpenRepository opens the git repository at path, bare or not.
func OpenRepository(path string) (*Repository, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}

	repo, err := git.PlainOpenWithOptions(absPath, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open repository: %w", err)
	}

	return &Repository{
		Repository: repo,
		path:       absPath,
	}, nil
}

// Path returns the absolute path the repository was opened from
func (r *Repository) Path() string {
	return r.path
}

// IsBare reports whether the repository has no working tree
func (r *Repository) IsBare() bool {
	_, err := r.Worktree()
	return errors.Is(err, git.ErrIsBareRepository)
}

// RemoteURLs returns the URLs of a named remote as written in the config,
// before any url.<base>.insteadOf rewriting.
func (r *Repository) RemoteURLs(name string) ([]string, error) {
	cfg, err := r.Config()
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	remotes := cfg.Raw.Section("remote")
	if !remotes.HasSubsection(name) {
		return nil, fmt.Errorf("remote %s: %w", name, git.ErrRemoteNotFound)
	}
	return remotes.Subsection(name).Options.GetAll("url"), nil
}

// Upstream describes the tracking configuration of a local branch
type Upstream struct {
	Remote string
	Merge  string
}

// BranchUpstream returns the remote and ref a local branch tracks
func (r *Repository) BranchUpstream(branch string) (Upstream, error) {
	cfg, err := r.Config()
	if err != nil {
		return Upstream{}, fmt.Errorf("failed to read config: %w", err)
	}

	b, ok := cfg.Branches[branch]
	if !ok || b.Remote == "" {
		return Upstream{}, fmt.Errorf("%s: %w", branch, ErrNoUpstream)
	}
	return Upstream{Remote: b.Remote, Merge: b.Merge.String()}, nil
}

// HasBranch reports whether refs/heads/<branch> exists
func (r *Repository) HasBranch(branch string) bool {
	_, err := r.Reference(plumbing.NewBranchReferenceName(branch), true)
	return err == nil
}
