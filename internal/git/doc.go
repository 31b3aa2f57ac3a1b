// Package git runs the external tools a deployment drives and reads the
// resulting repositories.
//
// It provides:
//   - Command builders for git clone, scp and the remote add/push shell step
//   - CommandRunner, which executes commands and captures their stderr
//   - Repository, a go-git wrapper for inspecting remotes and upstreams
//
// This package should be the only place where external commands are executed.
package git
