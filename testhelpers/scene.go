package testhelpers

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// DefaultHost is the server name scenes deploy to.
const DefaultHost = "myhost"

// Scene is a deployment sandbox: a workspace the CLI runs in and a directory
// standing in for the remote host's home directory. A fake scp copies into
// RemoteRoot, and working copies rewrite Host: URLs onto RemoteRoot so pushes
// stay local.
type Scene struct {
	Dir        string
	RemoteRoot string
	Host       string
	SCPPath    string
	SCPLog     string
}

// SceneOptions tweaks how a scene is built.
type SceneOptions struct {
	// FailTransfer makes the fake scp exit non-zero without copying.
	FailTransfer bool
}

// NewScene creates a scene under t.TempDir().
func NewScene(t *testing.T, opts *SceneOptions) *Scene {
	t.Helper()
	if opts == nil {
		opts = &SceneOptions{}
	}

	root := t.TempDir()
	s := &Scene{
		Dir:        filepath.Join(root, "workspace"),
		RemoteRoot: filepath.Join(root, "remote"),
		Host:       DefaultHost,
		SCPPath:    filepath.Join(root, "bin", "scp"),
		SCPLog:     filepath.Join(root, "scp.log"),
	}

	for _, dir := range []string{s.Dir, s.RemoteRoot, filepath.Dir(s.SCPPath)} {
		require.NoError(t, os.MkdirAll(dir, 0750))
	}
	require.NoError(t, s.writeFakeSCP(opts.FailTransfer))

	return s
}

// writeFakeSCP installs a script that accepts `-r src host:dest`, logs its
// arguments and copies src to RemoteRoot/dest.
func (s *Scene) writeFakeSCP(fail bool) error {
	var b strings.Builder
	b.WriteString("#!/bin/sh\n")
	fmt.Fprintf(&b, "echo \"$@\" >> '%s'\n", s.SCPLog)
	if fail {
		b.WriteString("echo \"ssh: connect to host ${3%%:*} port 22: Connection refused\" >&2\n")
		b.WriteString("exit 1\n")
	} else {
		b.WriteString("[ \"$1\" = \"-r\" ] || exit 2\n")
		fmt.Fprintf(&b, "exec cp -R \"$2\" '%s'/\"${3#*:}\"\n", s.RemoteRoot)
	}
	//nolint:gosec // the fake scp must be executable
	return os.WriteFile(s.SCPPath, []byte(b.String()), 0755)
}

// CreateProject creates a repository at Dir/name with one commit on master.
func (s *Scene) CreateProject(name string) (*GitRepo, error) {
	repo, err := NewGitRepo(filepath.Join(s.Dir, name))
	if err != nil {
		return nil, err
	}
	if err := repo.CreateChangeAndCommit("initial", "init"); err != nil {
		return nil, err
	}
	return repo, nil
}

// CreateWorkingCopy clones project into Dir/name and points Host: URLs at
// RemoteRoot. A commit is added so the push has something to send.
func (s *Scene) CreateWorkingCopy(name, project string) (*GitRepo, error) {
	repo, err := CloneGitRepo(filepath.Join(s.Dir, project), filepath.Join(s.Dir, name))
	if err != nil {
		return nil, err
	}
	if err := repo.RunGitCommand("config", "url."+s.RemoteRoot+"/.insteadOf", s.Host+":"); err != nil {
		return nil, err
	}
	if err := repo.CreateChangeAndCommit("work", "work"); err != nil {
		return nil, err
	}
	return repo, nil
}

// Env is the environment the CLI runs with inside the scene.
func (s *Scene) Env() []string {
	return append(gitEnv(),
		"GITDEPLOY_SCP="+s.SCPPath,
		"GITDEPLOY_LOG_FILE=",
		"NO_COLOR=1",
	)
}

// Run executes the gitdeploy binary in Dir and returns its combined output.
func (s *Scene) Run(binaryPath string, args ...string) (string, error) {
	cmd := exec.Command(binaryPath, args...)
	cmd.Dir = s.Dir
	cmd.Env = s.Env()
	out, err := cmd.CombinedOutput()
	return string(out), err
}

// SCPCalls returns the argument lines the fake scp was invoked with.
func (s *Scene) SCPCalls() []string {
	data, err := os.ReadFile(s.SCPLog)
	if err != nil {
		return nil
	}
	return strings.Split(strings.TrimSpace(string(data)), "\n")
}
