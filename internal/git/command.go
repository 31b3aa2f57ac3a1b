package git

import (
	"strings"

	"github.com/kballard/go-shellquote"
)

// Command is a single external process invocation.
type Command struct {
	Name string
	Args []string
	Env  []string
}

// String renders the command as it would be typed into a shell.
func (c Command) String() string {
	return shellquote.Join(append([]string{c.Name}, c.Args...)...)
}

// Tools names the external binaries a deployment drives.
type Tools struct {
	Git   string
	SCP   string
	Shell string
}

// DefaultTools resolves each tool from PATH.
func DefaultTools() Tools {
	return Tools{Git: "git", SCP: "scp", Shell: "sh"}
}

// withDefaults fills unset binaries from DefaultTools.
func (t Tools) withDefaults() Tools {
	d := DefaultTools()
	if t.Git == "" {
		t.Git = d.Git
	}
	if t.SCP == "" {
		t.SCP = d.SCP
	}
	if t.Shell == "" {
		t.Shell = d.Shell
	}
	return t
}

// CloneBare builds `git clone --bare <src> <dest>`.
func (t Tools) CloneBare(src, dest string) Command {
	t = t.withDefaults()
	return Command{Name: t.Git, Args: []string{"clone", "--bare", src, dest}}
}

// SecureCopy builds a recursive `scp -r <src> <target>` where target is host:path.
func (t Tools) SecureCopy(src, target string) Command {
	t = t.withDefaults()
	return Command{Name: t.SCP, Args: []string{"-r", src, target}}
}

// AddRemoteAndPush builds a shell invocation that enters dir, registers
// remote at url and pushes branch to it with upstream tracking.
func (t Tools) AddRemoteAndPush(dir, remote, url, branch string) Command {
	t = t.withDefaults()
	script := strings.Join([]string{
		shellquote.Join("cd", dir),
		shellquote.Join(t.Git, "remote", "add", remote, url),
		shellquote.Join(t.Git, "push", "--set-upstream", remote, branch),
	}, " && ")
	return Command{Name: t.Shell, Args: []string{"-c", script}}
}
