package deploy

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/kballard/go-shellquote"

	deployerrors "gitdeploy.dev/gitdeploy/internal/errors"
	"gitdeploy.dev/gitdeploy/internal/git"
	"gitdeploy.dev/gitdeploy/internal/tui"
)

// DefaultBranch is the branch pushed to the new remote.
const DefaultBranch = "master"

// Runner executes the external commands and filesystem changes of a
// deployment. *git.CommandRunner is the production implementation.
type Runner interface {
	Run(ctx context.Context, cmd git.Command) error
	RemoveAll(path string) error
}

// Step is one planned stage of a deployment.
type Step struct {
	Kind  deployerrors.Step
	Title string
	// Command is run for every step except cleanup.
	Command git.Command
	// RemovePath is deleted by the cleanup step.
	RemovePath string
}

// Display renders the step as an equivalent shell command.
func (s Step) Display() string {
	if s.Kind == deployerrors.StepCleanup {
		return shellquote.Join("rm", "-rf", s.RemovePath)
	}
	return s.Command.String()
}

// Options configures a Deployer. Zero values select the defaults.
type Options struct {
	Tools  git.Tools
	Branch string
	DryRun bool
	// WorkDir is the directory project and remote paths are relative to.
	// It is only used to inspect the working copy after a push.
	WorkDir string
	Splog   *tui.Splog
}

// Deployer runs the deployment pipeline: bare clone, remote copy, local
// cleanup, then remote registration and push. The first failure ends the
// run and nothing already done is rolled back.
type Deployer struct {
	runner  Runner
	tools   git.Tools
	branch  string
	dryRun  bool
	workDir string
	splog   *tui.Splog
}

// NewDeployer creates a Deployer that executes through runner.
func NewDeployer(runner Runner, opts Options) *Deployer {
	if opts.Branch == "" {
		opts.Branch = DefaultBranch
	}
	if opts.Splog == nil {
		opts.Splog = tui.NewSplog()
	}
	return &Deployer{
		runner:  runner,
		tools:   opts.Tools,
		branch:  opts.Branch,
		dryRun:  opts.DryRun,
		workDir: opts.WorkDir,
		splog:   opts.Splog,
	}
}

// Plan returns the ordered steps Run would execute for req.
func (d *Deployer) Plan(req Request) ([]Step, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return []Step{
		{
			Kind:    deployerrors.StepClone,
			Title:   "Cloning " + req.Project + " into " + req.BareDir(),
			Command: d.tools.CloneBare(req.Project, req.BareDir()),
		},
		{
			Kind:    deployerrors.StepTransfer,
			Title:   "Copying " + req.BareDir() + " to " + req.RemoteURL(),
			Command: d.tools.SecureCopy(req.BareDir(), req.RemoteURL()),
		},
		{
			Kind:       deployerrors.StepCleanup,
			Title:      "Removing local " + req.BareDir(),
			RemovePath: req.BareDir(),
		},
		{
			Kind:    deployerrors.StepPush,
			Title:   "Adding remote " + req.Project + " in " + req.RemoteName + " and pushing " + d.branch,
			Command: d.tools.AddRemoteAndPush(req.RemoteName, req.Project, req.RemoteURL(), d.branch),
		},
	}, nil
}

// Run executes the pipeline for req, returning a *errors.StepError naming
// the step that failed.
func (d *Deployer) Run(ctx context.Context, req Request) error {
	steps, err := d.Plan(req)
	if err != nil {
		d.splog.Error("refusing to deploy %q: %v", req.Project, err)
		return err
	}

	d.splog.Debug("Deploying %s", req)
	for i, step := range steps {
		d.splog.Info(tui.StepBanner(i+1, len(steps), step.Title))
		d.splog.Info(tui.ColorCommand(step.Display()))
		if d.dryRun {
			continue
		}

		if err := d.execute(ctx, step); err != nil {
			stepErr := deployerrors.NewStepError(step.Kind, err)
			d.splog.Error("%v", stepErr)
			d.explainFailure(req, step.Kind)
			return stepErr
		}
	}

	if d.dryRun {
		d.splog.Info("Dry run: no commands were executed.")
		return nil
	}

	d.splog.Info(tui.ColorSuccess("Deployed " + req.Project + " to " + req.RemoteURL()))
	d.reportRemote(req)
	return nil
}

func (d *Deployer) execute(ctx context.Context, step Step) error {
	if step.Kind == deployerrors.StepCleanup {
		return d.runner.RemoveAll(step.RemovePath)
	}
	return d.runner.Run(ctx, step.Command)
}

// explainFailure tells the operator what state a failed run left behind.
func (d *Deployer) explainFailure(req Request, failed deployerrors.Step) {
	switch failed {
	case deployerrors.StepTransfer:
		d.splog.Tip("The local bare clone %s was kept; remove it before retrying.", req.BareDir())
	case deployerrors.StepCleanup:
		d.splog.Tip("%s was copied to %s but the local copy %s remains.", req.BareDir(), req.RemoteURL(), req.BareDir())
	case deployerrors.StepPush:
		d.splog.Tip("%s exists on the server but %s is not linked to it. To finish manually:", req.RemoteURL(), req.RemoteName)
		d.splog.Tip("  %s", d.tools.AddRemoteAndPush(req.RemoteName, req.Project, req.RemoteURL(), d.branch).Args[1])
	}
}

// reportRemote logs the remote and upstream the push configured. Failures
// only produce debug output.
func (d *Deployer) reportRemote(req Request) {
	dir := req.RemoteName
	if d.workDir != "" && !filepath.IsAbs(dir) {
		dir = filepath.Join(d.workDir, dir)
	}

	repo, err := git.OpenRepository(dir)
	if err != nil {
		d.splog.Debug("Could not inspect %s: %v", dir, err)
		return
	}

	urls, err := repo.RemoteURLs(req.Project)
	if err != nil {
		d.splog.Debug("Could not read remote %s: %v", req.Project, err)
		return
	}
	for _, url := range urls {
		d.splog.Info("Remote %s -> %s", tui.ColorName(req.Project), url)
	}

	upstream, err := repo.BranchUpstream(d.branch)
	if err != nil {
		d.splog.Debug("Could not read upstream of %s: %v", d.branch, err)
		return
	}
	d.splog.Info("Branch %s tracks %s/%s", tui.ColorName(d.branch), upstream.Remote, strings.TrimPrefix(upstream.Merge, "refs/heads/"))
}
