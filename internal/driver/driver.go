package driver

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/kubev2v/installer-driver/internal/config"
	"github.com/kubev2v/installer-driver/internal/models"
	"github.com/kubev2v/installer-driver/pkg/console"
	srvErrors "github.com/kubev2v/installer-driver/pkg/errors"
)

// Driver runs install.sh and uninstall.sh through their prompts. A Driver
// owns at most one child process at a time; concurrent calls on the same
// Driver are serialized.
type Driver struct {
	installerDir string
	logDir       string
	timeout      time.Duration
	env          []string

	mu sync.Mutex
}

type Option func(*Driver)

func WithLogDir(dir string) Option {
	return func(d *Driver) {
		d.logDir = dir
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(d *Driver) {
		d.timeout = timeout
	}
}

// WithEnv sets the environment of the installer scripts. Defaults to the
// environment of the current process.
func WithEnv(env []string) Option {
	return func(d *Driver) {
		d.env = env
	}
}

func New(installerDir string, opts ...Option) *Driver {
	d := &Driver{
		installerDir: installerDir,
		logDir:       ".",
		timeout:      console.DefaultTimeout,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Driver) AttemptInstall(ctx context.Context, target models.Target, expectFailure, force bool) (models.Result, error) {
	return d.Attempt(ctx, Script{
		Operation:     models.OperationInstall,
		Target:        target,
		ExpectFailure: expectFailure,
		Force:         force,
	})
}

func (d *Driver) AttemptUninstall(ctx context.Context, target models.Target, expectFailure bool) (models.Result, error) {
	return d.Attempt(ctx, Script{
		Operation:     models.OperationUninstall,
		Target:        target,
		ExpectFailure: expectFailure,
	})
}

// Attempt spawns the script's installer and walks the transition table until
// Done. Environment faults are returned as *errors.EnvironmentError, protocol
// mismatches and timeouts as *errors.ProtocolError. Installer rejections are
// not errors: they are reported through the Outcome.
func (d *Driver) Attempt(ctx context.Context, script Script) (models.Result, error) {
	if err := config.ValidateTarget(script.Target); err != nil {
		return models.Result{}, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	logPath := filepath.Join(d.logDir, script.Operation.LogFile())
	result := models.Result{LogPath: logPath, ExitCode: -1}
	executable := filepath.Join(d.installerDir, script.Operation.Script())

	log := zap.S().Named("driver").With("operation", script.Operation, "host", script.Target.Host)

	c, err := console.Spawn(ctx, logPath, console.Options{Dir: d.installerDir, Env: d.env, Timeout: d.timeout}, executable, script.Args()...)
	if err != nil {
		log.Errorw("failed to start installer", "executable", executable, "error", err)
		return result, err
	}
	defer c.Close()

	table := script.table()
	state := AwaitHost
	for state != Done {
		t := table[state]

		idx, err := c.Expect(ctx, t.expect...)
		if err != nil {
			log.Errorw("protocol mismatch", "state", state, "error", err, "log", logPath)
			return result, srvErrors.NewProtocolError(state.String(), console.DescribePatterns(t.expect...), c.Pending(), err)
		}

		b := t.branches[idx]
		log.Debugw("matched", "state", state, "pattern", t.expect[idx].String(), "next", b.next)

		if b.send {
			if err := c.SendLine(b.reply); err != nil {
				return result, srvErrors.NewProtocolError(state.String(), console.DescribePatterns(t.expect...), c.Pending(), err)
			}
			if b.secret {
				log.Debugw("sent response", "state", state)
			} else {
				log.Debugw("sent response", "state", state, "response", b.reply)
			}
		}

		if b.drain {
			if _, err := c.Expect(ctx, console.EOF); err != nil {
				return result, srvErrors.NewProtocolError(state.String(), console.DescribePatterns(console.EOF), c.Pending(), err)
			}
		}

		if b.outcome != "" {
			result.Outcome = b.outcome
		}
		state = b.next
	}

	code, err := c.Wait()
	result.ExitCode = code
	if err != nil {
		return result, fmt.Errorf("failed to release installer session: %w", err)
	}

	log.Infow("installer finished", "outcome", result.Outcome, "exit_code", code, "log", logPath)

	return result, nil
}
