package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"
	"syscall"
	"time"

	"github.com/creack/pty"
	"go.uber.org/zap"

	srvErrors "github.com/kubev2v/installer-driver/pkg/errors"
)

const (
	DefaultTimeout = 180 * time.Second
	LongTimeout    = 1800 * time.Second

	readBufSize = 32 * 1024
)

var (
	ErrTimeout = errors.New("timeout waiting for output")
	ErrEOF     = errors.New("end of output")
)

type Options struct {
	Dir     string
	Env     []string
	Timeout time.Duration
	Rows    uint16
	Cols    uint16
}

// Console is a child process attached to a pseudo terminal. Everything the
// child writes is copied to the log file; Expect consumes the same stream.
type Console struct {
	cmd     *exec.Cmd
	ptmx    *os.File
	log     *os.File
	logPath string
	timeout time.Duration

	chunks chan []byte
	pumped chan struct{}

	buf    []byte
	before []byte
	eof    bool

	waitOnce sync.Once
	exitCode int
	waitErr  error

	closeOnce sync.Once
	closeErr  error
}

// Spawn opens (truncating) the log file at logPath and starts name on a new
// pseudo terminal. Failures are reported as *errors.EnvironmentError and leave
// no open handles behind; the log file is still present on disk.
func Spawn(ctx context.Context, logPath string, opts Options, name string, args ...string) (*Console, error) {
	logFile, err := os.Create(logPath)
	if err != nil {
		return nil, srvErrors.NewLogFileError(logPath, err)
	}

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = opts.Dir
	cmd.Env = opts.Env
	if cmd.Env == nil {
		cmd.Env = os.Environ()
	}

	rows, cols := opts.Rows, opts.Cols
	if rows == 0 {
		rows = 40
	}
	if cols == 0 {
		cols = 120
	}

	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{Rows: rows, Cols: cols})
	if err != nil {
		fmt.Fprintf(logFile, "failed to spawn %s: %v\n", name, err)
		_ = logFile.Close()
		return nil, srvErrors.NewSpawnError(name, err)
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	c := &Console{
		cmd:     cmd,
		ptmx:    ptmx,
		log:     logFile,
		logPath: logPath,
		timeout: timeout,
		chunks:  make(chan []byte, 256),
		pumped:  make(chan struct{}),
	}

	zap.S().Named("console").Debugw("spawned", "cmd", name, "args", args, "pid", cmd.Process.Pid, "log", logPath)

	go c.pump()

	return c, nil
}

// pump copies PTY output to the transcript and to the Expect buffer until the
// child closes the terminal.
func (c *Console) pump() {
	defer close(c.pumped)
	defer close(c.chunks)

	buf := make([]byte, readBufSize)
	for {
		n, err := c.ptmx.Read(buf)
		if n > 0 {
			data := make([]byte, n)
			copy(data, buf[:n])
			if _, werr := c.log.Write(data); werr != nil {
				zap.S().Named("console").Warnw("failed to write transcript", "log", c.logPath, "error", werr)
			}
			c.chunks <- data
		}
		if err != nil {
			// Linux reports EIO on the master once the slave side is gone.
			return
		}
	}
}

func (c *Console) LogPath() string {
	return c.logPath
}

func (c *Console) Pid() int {
	return c.cmd.Process.Pid
}

// Pending returns the output received but not yet consumed by a match.
func (c *Console) Pending() string {
	return string(c.buf)
}

// Before returns the output that preceded the last match.
func (c *Console) Before() string {
	return string(c.before)
}

// Expect blocks until one of patterns matches the unread output and returns
// its index. Alternatives are tried in the order given; the first one that
// matches wins. EOF only matches when it is listed, otherwise end of output
// yields ErrEOF. Waiting longer than the console timeout yields ErrTimeout.
func (c *Console) Expect(ctx context.Context, patterns ...Pattern) (int, error) {
	timer := time.NewTimer(c.timeout)
	defer timer.Stop()

	for {
		if idx, ok := c.match(patterns); ok {
			return idx, nil
		}
		if c.eof {
			if idx := indexOfEOF(patterns); idx >= 0 {
				c.before, c.buf = c.buf, nil
				return idx, nil
			}
			return -1, ErrEOF
		}

		select {
		case data, ok := <-c.chunks:
			if !ok {
				c.eof = true
				continue
			}
			c.buf = append(c.buf, data...)
		case <-timer.C:
			return -1, ErrTimeout
		case <-ctx.Done():
			return -1, ctx.Err()
		}
	}
}

func (c *Console) match(patterns []Pattern) (int, bool) {
	for i, p := range patterns {
		end, ok := p.find(c.buf)
		if !ok {
			continue
		}
		c.before = c.buf[:end]
		c.buf = c.buf[end:]
		return i, true
	}
	return -1, false
}

// SendLine writes s followed by a newline to the child's terminal.
func (c *Console) SendLine(s string) error {
	if _, err := io.WriteString(c.ptmx, s+"\n"); err != nil {
		return fmt.Errorf("failed to write to terminal: %w", err)
	}
	return nil
}

// Wait drains the remaining output, waits for the child to exit and
// releases the terminal and the log file. It returns the child's exit code.
func (c *Console) Wait() (int, error) {
	for data := range c.chunks {
		c.buf = append(c.buf, data...)
	}
	c.eof = true
	c.reap()
	if err := c.Close(); err != nil {
		return c.exitCode, err
	}
	return c.exitCode, c.waitErr
}

// Close kills the child if it is still running and releases the terminal and
// the log file. It is safe to call more than once.
func (c *Console) Close() error {
	c.closeOnce.Do(func() {
		if c.cmd.ProcessState == nil && c.cmd.Process != nil {
			// The child leads its own session; take its process group down with it.
			if err := syscall.Kill(-c.cmd.Process.Pid, syscall.SIGKILL); err != nil {
				_ = c.cmd.Process.Kill()
			}
		}
		_ = c.ptmx.Close()
		for range c.chunks {
		}
		<-c.pumped
		c.reap()
		c.closeErr = c.log.Close()
	})
	return c.closeErr
}

func (c *Console) reap() {
	c.waitOnce.Do(func() {
		err := c.cmd.Wait()
		c.exitCode = exitCode(c.cmd, err)
		var exitErr *exec.ExitError
		if err != nil && !errors.As(err, &exitErr) {
			c.waitErr = err
		}
	})
}

func exitCode(cmd *exec.Cmd, err error) int {
	if cmd.ProcessState != nil {
		return cmd.ProcessState.ExitCode()
	}
	if err != nil {
		return -1
	}
	return 0
}
