package deploy

import (
	"fmt"
	"strings"

	deployerrors "gitdeploy.dev/gitdeploy/internal/errors"
)

// DefaultRemoteName is the working copy used when no remote name is given.
const DefaultRemoteName = "origin"

// Request describes a single deployment. It is built once from CLI input
// and never modified.
type Request struct {
	// Project is the local repository directory to deploy.
	Project string
	// Server is the host or ssh alias receiving the bare repository.
	Server string
	// RemoteName is the working copy directory that gets the new remote.
	RemoteName string
}

// NewRequest builds a Request, defaulting RemoteName. Only the
// current-directory guard is enforced; anything else is left to git and scp.
func NewRequest(project, server, remoteName string) (Request, error) {
	if remoteName == "" {
		remoteName = DefaultRemoteName
	}
	req := Request{Project: project, Server: server, RemoteName: remoteName}
	if err := req.Validate(); err != nil {
		return Request{}, err
	}
	return req, nil
}

// Validate rejects a project of ".", which would clone and delete the
// current working directory.
func (r Request) Validate() error {
	if r.Project == "." {
		return deployerrors.NewUsageError(r.Project)
	}
	return nil
}

// BareDir is the local directory the bare clone is written to.
func (r Request) BareDir() string {
	return r.Project + ".git"
}

// RemotePath is the path of the bare repository on the server.
func (r Request) RemotePath() string {
	return r.Project + ".git"
}

// RemoteURL is the scp-style location of the deployed bare repository.
func (r Request) RemoteURL() string {
	return fmt.Sprintf("%s:%s", r.Server, r.RemotePath())
}

func (r Request) String() string {
	return strings.Join([]string{r.Project, "->", r.RemoteURL(), "via", r.RemoteName}, " ")
}
