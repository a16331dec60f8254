package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"

	"golang.org/x/sync/errgroup"

	"github.com/bashhack/syncshot/internal/config"
	"github.com/bashhack/syncshot/internal/daemon"
	"github.com/bashhack/syncshot/internal/engine"
	syncErrors "github.com/bashhack/syncshot/internal/errors"
	"github.com/bashhack/syncshot/internal/git"
	"github.com/bashhack/syncshot/internal/lock"
	"github.com/bashhack/syncshot/internal/logger"
)

// Syncer runs the sync daemon
type Syncer interface {
	Run(ctx context.Context) error
	WatchSignals(ctx context.Context, signals <-chan os.Signal) error
	PrintSummary()
}

// BranchInspector reports how the working copy is tracked upstream
type BranchInspector interface {
	CurrentBranch(ctx context.Context) (string, error)
	Upstream(ctx context.Context) (string, error)
}

// Locker manages file locking
type Locker interface {
	Acquire() error
	Release() error
}

// AppOptions contains app configuration and dependencies.
// This struct allows injection of both required and optional dependencies,
// enabling flexible configuration and easier testing.
type AppOptions struct {
	// Config holds the application configuration settings (required).
	// The application will panic if this field is nil.
	Config *config.Config

	// Optional components

	// Logger provides logging functionality (optional, a default will be created if nil).
	Logger logger.Logger

	// Locker manages repository locking (optional, a default will be created if nil).
	// Used to prevent multiple syncshot instances from syncing the same repository.
	Locker Locker

	// Syncer runs the sync loop (optional, a default will be created if nil).
	Syncer Syncer

	// Branches inspects the tracked branch at startup (optional, defaults to
	// the git repository at Config.RepoPath).
	Branches BranchInspector

	// I/O dependencies

	// Stdout is the writer for standard output (optional, defaults to os.Stdout).
	Stdout io.Writer

	// Stderr is the writer for error output (optional, defaults to os.Stderr).
	Stderr io.Writer

	// System dependencies

	// Exit is the function to terminate the application (optional, defaults to os.Exit).
	Exit func(code int)

	// ExecLookPath is used to find executables in PATH (optional, defaults to exec.LookPath).
	ExecLookPath func(file string) (string, error)

	// IsRepository checks if a path is a valid Git repository (optional, defaults to git.IsRepository).
	IsRepository func(string) (bool, error)

	// NotifySignals subscribes to shutdown signals (optional, defaults to daemon.NotifyShutdownSignals).
	NotifySignals func() (<-chan os.Signal, func())
}

// App is the main syncshot application.
// It orchestrates all components and manages the application lifecycle,
// handling initialization, the sync loop, and cleanup.
type App struct {
	// Config holds the application configuration and settings.
	Config *config.Config

	// Logger provides logging functionality for both internal and user-facing messages.
	Logger logger.Logger

	// Locker manages repository locking to prevent concurrent syncshot instances.
	Locker Locker

	// Syncer runs the sync loop until shutdown.
	Syncer Syncer

	// Branches reports the tracked branch and its upstream.
	Branches BranchInspector

	// I/O streams

	// Stdout is the writer for standard output messages.
	Stdout io.Writer

	// Stderr is the writer for error messages and warnings.
	Stderr io.Writer

	// System dependencies

	exit          func(code int)
	execLookPath  func(file string) (string, error)
	isRepository  func(string) (bool, error)
	notifySignals func() (<-chan os.Signal, func())
}

// NewDefaultApp creates an App with standard dependencies.
func NewDefaultApp(versionInfo config.VersionInfo) *App {
	cfg := config.New()
	cfg.VersionInfo = versionInfo

	return NewApp(AppOptions{
		Config:       cfg,
		Stdout:       os.Stdout,
		Stderr:       os.Stderr,
		Exit:         os.Exit,
		ExecLookPath: exec.LookPath,
		IsRepository: git.IsRepository,
	})
}

// NewApp creates an App with custom dependencies specified in opts.
// It panics if Config is nil. Missing optional dependencies are
// created during Initialize or defaulted here.
func NewApp(opts AppOptions) *App {
	if opts.Config == nil {
		panic("Config is required in AppOptions")
	}

	app := &App{
		Config:        opts.Config,
		Logger:        opts.Logger,
		Locker:        opts.Locker,
		Syncer:        opts.Syncer,
		Branches:      opts.Branches,
		Stdout:        opts.Stdout,
		Stderr:        opts.Stderr,
		exit:          opts.Exit,
		execLookPath:  opts.ExecLookPath,
		isRepository:  opts.IsRepository,
		notifySignals: opts.NotifySignals,
	}

	// Set defaults for nil dependencies
	if app.Stdout == nil {
		app.Stdout = os.Stdout
	}
	if app.Stderr == nil {
		app.Stderr = os.Stderr
	}
	if app.exit == nil {
		app.exit = os.Exit
	}
	if app.execLookPath == nil {
		app.execLookPath = exec.LookPath
	}
	if app.isRepository == nil {
		app.isRepository = git.IsRepository
	}
	if app.notifySignals == nil {
		app.notifySignals = daemon.NotifyShutdownSignals
	}

	return app
}

// Initialize validates the configuration and sets up components not
// provided during construction
func (a *App) Initialize() error {
	if err := a.Config.Finalize(); err != nil {
		if syncErrors.Is(err, syncErrors.ErrInvalidConfiguration) {
			return err
		}
		return syncErrors.Wrap(syncErrors.ErrInvalidConfiguration, err.Error())
	}

	if a.Logger == nil {
		a.Logger = logger.New(a.Config.Debug, a.Config.LogFile)
	}

	if a.Locker == nil {
		locker, err := lock.New(a.Config.RepoPath)
		if err != nil {
			return syncErrors.Wrap(err, "failed to initialize lock")
		}
		a.Locker = locker
	}

	if a.Syncer == nil || a.Branches == nil {
		executor := git.NewExecExecutorWithTimeout(a.Config.CommandTimeoutDuration())
		// Nobody is there to answer a credential prompt
		executor.Env = []string{"GIT_TERMINAL_PROMPT=0"}
		repo := git.NewRepository(a.Config.RepoPath, executor, a.Logger)

		if a.Branches == nil {
			a.Branches = repo
		}
		if a.Syncer == nil {
			cycle := engine.NewCycle(repo, a.Logger, a.Config.MaxCommitRounds)
			a.Syncer = daemon.New(cycle, a.Logger, daemon.Options{
				Period: a.Config.PeriodDuration(),
			})
		}
	}

	return nil
}

// Run verifies the environment, takes the repository lock and runs the
// sync loop until a shutdown signal arrives or ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	if a.Config.Version {
		a.ShowVersion()
		return nil
	}

	if err := a.Initialize(); err != nil {
		return err
	}

	// Ensure we always clean up logger / lock, even on early error paths
	defer func() {
		if err := a.Close(); err != nil {
			_, _ = fmt.Fprintf(a.Stderr, "❌ Error during cleanup: %v\n", err)
		}
	}()

	if err := a.checkRequiredCommands(); err != nil {
		_, _ = fmt.Fprintf(a.Stderr, "❌ Error: %v. Please install it and try again.\n", err)
		return err
	}

	isRepo, err := a.isRepository(a.Config.RepoPath)
	if err != nil {
		a.Logger.Warning("Failed to check if path is a git repository: %v", err)
		return syncErrors.Wrap(syncErrors.ErrGitOperationFailed, err.Error())
	}
	if !isRepo {
		return syncErrors.Wrap(syncErrors.ErrNotGitRepository, a.Config.RepoPath)
	}
	a.Logger.Info("Git repository verified")

	if err := a.Locker.Acquire(); err != nil {
		if syncErrors.Is(err, syncErrors.ErrAlreadyRunning) || syncErrors.Is(err, syncErrors.ErrLockAcquisitionFailure) {
			return err
		}
		return syncErrors.Wrap(syncErrors.ErrLockAcquisitionFailure, err.Error())
	}
	if stale, ok := a.Locker.(interface{ StalePID() int }); ok && stale.StalePID() != 0 {
		a.Logger.Warning("Recovered lock left behind by PID %d", stale.StalePID())
	}

	a.displayStartupInfo(ctx)

	err = a.runSyncer(ctx)
	a.Syncer.PrintSummary()
	return err
}

// runSyncer runs the sync loop alongside the signal watcher. The watcher is
// stopped once the loop returns.
func (a *App) runSyncer(ctx context.Context) error {
	signals, stop := a.notifySignals()
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	watchCtx, stopWatching := context.WithCancel(gctx)

	g.Go(func() error {
		return a.Syncer.WatchSignals(watchCtx, signals)
	})
	g.Go(func() error {
		defer stopWatching()
		return a.Syncer.Run(gctx)
	})

	return g.Wait()
}

func (a *App) displayStartupInfo(ctx context.Context) {
	a.Logger.InfoToUser("syncshot %s syncing %s every %ds", a.Config.VersionInfo.Version, a.Config.RepoPath, a.Config.Period)
	a.displayTracking(ctx)
	if a.Config.CommandTimeout > 0 {
		a.Logger.InfoToUser("Git commands time out after %ds", a.Config.CommandTimeout)
	}
	if a.Config.ConfigFile != "" {
		a.Logger.Info("Using config file %s", a.Config.ConfigFile)
	}
	a.Logger.StatusMessage("Press Ctrl+C to stop")
}

// displayTracking reports the branch being synced. Without an upstream the
// divergence is always zero, so snapshots would never leave the machine.
func (a *App) displayTracking(ctx context.Context) {
	branch, err := a.Branches.CurrentBranch(ctx)
	if err != nil {
		a.Logger.Warning("Failed to determine current branch: %v", err)
		return
	}
	if branch == "" {
		a.Logger.WarningToUser("HEAD is detached, snapshots will not be pushed until a branch is checked out")
		return
	}

	upstream, err := a.Branches.Upstream(ctx)
	if err != nil {
		a.Logger.Debug("Upstream lookup for %s failed: %v", branch, err)
		a.Logger.WarningToUser("Branch %s has no upstream, snapshots will only be committed locally "+
			"(set one with: git push --set-upstream <remote> %s)", branch, branch)
		return
	}
	a.Logger.InfoToUser("Branch %s tracks %s", branch, upstream)
}

// ShowVersion displays version information
func (a *App) ShowVersion() {
	_, _ = fmt.Fprintf(a.Stdout, "syncshot %s (%s) built on %s\n",
		a.Config.VersionInfo.Version,
		a.Config.VersionInfo.Commit,
		a.Config.VersionInfo.Date)
}

// checkRequiredCommands verifies git is available in PATH
func (a *App) checkRequiredCommands() error {
	_, err := a.execLookPath("git")
	if err != nil {
		return fmt.Errorf("git is not found in PATH")
	}
	return nil
}

// Close releases resources held by the App
func (a *App) Close() error {
	var errs []error

	if a.Locker != nil {
		if err := a.Locker.Release(); err != nil {
			if a.Logger != nil {
				a.Logger.Error("Failed to release lock during cleanup: %v", err)
			} else {
				_, _ = fmt.Fprintf(a.Stderr, "❌ Failed to release lock during cleanup: %v\n", err)
			}
			errs = append(errs, err)
		}
	}

	if a.Logger != nil {
		if err := a.Logger.Close(); err != nil {
			_, _ = fmt.Fprintf(a.Stderr, "❌ Failed to close logger: %v\n", err)
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return syncErrors.Join(errs...)
	}
	return nil
}
