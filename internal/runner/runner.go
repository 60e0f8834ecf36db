package runner

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/kubev2v/installer-driver/internal/models"
	"github.com/kubev2v/installer-driver/pkg/console"
	srvErrors "github.com/kubev2v/installer-driver/pkg/errors"
)

const (
	// Properties the NGC build reads the vCenter administrator from.
	DefaultUsernameParam = "env.VC_ADMIN_USERNAME"
	DefaultPasswordParam = "env.VC_ADMIN_PASSWORD"

	DefaultRunlist = "work/runlists/default.runlist"

	// Test project locations relative to the UI source root.
	H5CTestPath  = "vic-ui-h5c/uia/h5-plugin-tests/ui-automation/vic-uia"
	FlexTestPath = "vic-uia/flex-automation-test/uia/vic-uia"

	vsphere65Marker = "TEST_VSPHERE_VER=65"
)

// Runner launches the UI test builds and waits for them to finish. The NGC
// suite gets the target credentials as build properties; the HSUIA suite
// runs a runlist and takes no credentials.
type Runner struct {
	command       string
	args          []string
	hsuiaArgs     []string
	runlist       string
	paramPrefix   string
	hostParam     string
	usernameParam string
	passwordParam string
	dir           string
	logDir        string
	timeout       time.Duration
	env           []string

	mu sync.Mutex
}

type Option func(*Runner)

// WithCommand replaces the NGC build invocation. args come before the
// credential parameters.
func WithCommand(command string, args ...string) Option {
	return func(r *Runner) {
		r.command = command
		r.args = args
	}
}

// WithHSUIAArgs replaces the goals of the HSUIA build. The runlist
// parameter is appended after them.
func WithHSUIAArgs(args ...string) Option {
	return func(r *Runner) {
		r.hsuiaArgs = args
	}
}

func WithRunlist(runlist string) Option {
	return func(r *Runner) {
		r.runlist = runlist
	}
}

func WithParamPrefix(prefix string) Option {
	return func(r *Runner) {
		r.paramPrefix = prefix
	}
}

// WithParamNames sets the build properties receiving the credentials. An
// empty host leaves the host out of the parameters.
func WithParamNames(host, username, password string) Option {
	return func(r *Runner) {
		r.hostParam = host
		r.usernameParam = username
		r.passwordParam = password
	}
}

func WithDir(dir string) Option {
	return func(r *Runner) {
		r.dir = dir
	}
}

func WithLogDir(dir string) Option {
	return func(r *Runner) {
		r.logDir = dir
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(r *Runner) {
		r.timeout = timeout
	}
}

func WithEnv(env []string) Option {
	return func(r *Runner) {
		r.env = env
	}
}

func New(opts ...Option) *Runner {
	r := &Runner{
		command:       "mvn",
		args:          []string{"test"},
		hsuiaArgs:     []string{"clean", "compile", "exec:exec", "-e"},
		runlist:       DefaultRunlist,
		paramPrefix:   "-D",
		usernameParam: DefaultUsernameParam,
		passwordParam: DefaultPasswordParam,
		dir:           ".",
		logDir:        ".",
		timeout:       console.LongTimeout,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Params returns the credential parameters appended to the NGC build.
func (r *Runner) Params(target models.Target) []string {
	var params []string
	if r.hostParam != "" {
		params = append(params, r.paramPrefix+r.hostParam+"="+target.Host)
	}
	return append(params,
		r.paramPrefix+r.usernameParam+"="+target.Username,
		r.paramPrefix+r.passwordParam+"="+target.Password,
	)
}

// HSUIAArgs returns the full argument list of the HSUIA build.
func (r *Runner) HSUIAArgs() []string {
	return append(append([]string{}, r.hsuiaArgs...), r.paramPrefix+"hsuia.runlist="+r.runlist)
}

// Run spawns the NGC build and waits for end of output. There is no prompt
// exchange: the outcome is success when the build exits 0.
func (r *Runner) Run(ctx context.Context, target models.Target) (models.Result, error) {
	if r.hostParam != "" && target.Host == "" {
		return models.Result{}, srvErrors.NewConfigurationError("host", "target vCenter host is empty")
	}
	if target.Username == "" {
		return models.Result{}, srvErrors.NewConfigurationError("username", "administrator username is empty")
	}

	args := append(append([]string{}, r.args...), r.Params(target)...)
	return r.run(ctx, models.OperationUITests, args)
}

// RunHSUIA spawns the HSUIA build on the configured runlist.
func (r *Runner) RunHSUIA(ctx context.Context) (models.Result, error) {
	return r.run(ctx, models.OperationHSUIA, r.HSUIAArgs())
}

func (r *Runner) run(ctx context.Context, op models.Operation, args []string) (models.Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	logPath := filepath.Join(r.logDir, op.LogFile())
	result := models.Result{LogPath: logPath, ExitCode: -1}

	log := zap.S().Named("runner").With("operation", op, "command", r.command, "dir", r.dir)

	c, err := console.Spawn(ctx, logPath, console.Options{Dir: r.dir, Env: r.env, Timeout: r.timeout}, r.command, args...)
	if err != nil {
		log.Errorw("failed to start build", "error", err)
		return result, err
	}
	defer c.Close()

	log.Infow("ui tests started", "pid", c.Pid(), "log", logPath)

	if _, err := c.Expect(ctx, console.EOF); err != nil {
		log.Errorw("ui tests did not finish", "error", err, "log", logPath)
		return result, srvErrors.NewProtocolError("AwaitEOF", console.DescribePatterns(console.EOF), c.Pending(), err)
	}

	code, err := c.Wait()
	result.ExitCode = code
	if err != nil {
		return result, fmt.Errorf("failed to release build session: %w", err)
	}

	result.Outcome = models.OutcomeSuccess
	if code != 0 {
		result.Outcome = models.OutcomeUnexpectedError
	}

	log.Infow("ui tests finished", "outcome", result.Outcome, "exit_code", code)

	return result, nil
}

// ResolveTestDir picks the UI test project under uiRoot. The first line of
// the testbed information file selects the vSphere 6.5 HTML5 client tests
// when it carries TEST_VSPHERE_VER=65; any other testbed runs the flex tests.
func ResolveTestDir(uiRoot, testbedInfo string) (string, error) {
	f, err := os.Open(testbedInfo)
	if err != nil {
		return "", fmt.Errorf("failed to read testbed information: %w", err)
	}
	defer f.Close()

	var first string
	scanner := bufio.NewScanner(f)
	if scanner.Scan() {
		first = scanner.Text()
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("failed to read testbed information %s: %w", testbedInfo, err)
	}

	if strings.Contains(first, vsphere65Marker) {
		return filepath.Join(uiRoot, H5CTestPath), nil
	}
	return filepath.Join(uiRoot, FlexTestPath), nil
}
