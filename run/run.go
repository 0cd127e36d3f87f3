package run

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"

	"github.com/simonhull/firebird-suite/talon/output"
	"github.com/simonhull/firebird-suite/talon/resolve"
)

// Result is the outcome of one execution. A non-zero exit code is data,
// not an error: it means the command ran and failed, which callers must
// be able to tell apart from "the command could not be started".
type Result struct {
	ExitCode int
	Stdout   string // captured text, empty unless CaptureStdout was set
	Stderr   string // captured text, empty unless CaptureStderr was set
}

// LaunchError reports that a resolved command could not be started.
type LaunchError struct {
	Path string
	Err  error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("failed to launch %s: %v", e.Path, e.Err)
}

func (e *LaunchError) Unwrap() error { return e.Err }

// Command executes one resolved spec. Configuration is fluent and must
// finish before Execute is called; configuring a running command panics,
// naming the attempted operation.
type Command struct {
	spec        *resolve.Spec
	dir         string
	env         map[string]string
	stdout      *Forwarder
	stderr      *Forwarder
	passthrough bool
	started     bool
}

// New wraps a resolved spec for execution.
func New(spec *resolve.Spec) *Command {
	return &Command{
		spec:   spec,
		env:    map[string]string{},
		stdout: NewForwarder(),
		stderr: NewForwarder(),
	}
}

// Spec returns the spec this command will execute.
func (c *Command) Spec() *resolve.Spec { return c.spec }

// WorkingDirectory sets the child's working directory.
func (c *Command) WorkingDirectory(dir string) *Command {
	c.assertNotStarted("WorkingDirectory")
	c.dir = dir
	return c
}

// Env adds or overrides one environment variable for the child.
func (c *Command) Env(key, value string) *Command {
	c.assertNotStarted("Env")
	c.env[key] = value
	return c
}

// AnsiPassthrough controls the default standard error sink: with
// passthrough on, child stderr lines are written exactly as received so
// ANSI sequences survive instead of being re-styled. Sinks configured
// explicitly via ForwardStderr are unaffected.
func (c *Command) AnsiPassthrough(on bool) *Command {
	c.assertNotStarted("AnsiPassthrough")
	c.passthrough = on
	return c
}

// CaptureStdout captures the child's standard output into the result.
func (c *Command) CaptureStdout() *Command {
	c.assertNotStarted("CaptureStdout")
	c.stdout.Capture()
	return c
}

// CaptureStderr captures the child's standard error into the result.
func (c *Command) CaptureStderr() *Command {
	c.assertNotStarted("CaptureStderr")
	c.stderr.Capture()
	return c
}

// ForwardStdout forwards standard output lines to sink instead of the
// default console reporter.
func (c *Command) ForwardStdout(sink output.LineSink) *Command {
	c.assertNotStarted("ForwardStdout")
	c.stdout.ForwardTo(sink)
	return c
}

// ForwardStderr forwards standard error lines to sink instead of the
// default console reporter.
func (c *Command) ForwardStderr(sink output.LineSink) *Command {
	c.assertNotStarted("ForwardStderr")
	c.stderr.ForwardTo(sink)
	return c
}

// OnOutputLine invokes fn for each completed standard output line.
func (c *Command) OnOutputLine(fn func(string)) *Command {
	c.assertNotStarted("OnOutputLine")
	c.stdout.OnLine(fn)
	return c
}

// OnErrorLine invokes fn for each completed standard error line.
func (c *Command) OnErrorLine(fn func(string)) *Command {
	c.assertNotStarted("OnErrorLine")
	c.stderr.OnLine(fn)
	return c
}

// Execute starts the child process, drains both output streams
// concurrently, and blocks until the child has exited and both streams
// are fully flushed. Captured output is therefore complete by the time
// the result is returned.
//
// Cancelling ctx kills the child; the resulting pipe closure unblocks the
// readers and the wait.
func (c *Command) Execute(ctx context.Context) (*Result, error) {
	c.assertNotStarted("Execute")
	c.started = true

	// Streams nobody asked to consume still go somewhere visible.
	c.defaultSinks()

	cmd := exec.Command(c.spec.Path, c.spec.Args...)
	cmd.Dir = c.dir
	cmd.Env = c.buildEnv()
	applySysProcAttr(cmd, c.spec)

	stdoutPipe, err := cmd.StdoutPipe()
	if err != nil {
		return nil, &LaunchError{Path: c.spec.Path, Err: err}
	}
	stderrPipe, err := cmd.StderrPipe()
	if err != nil {
		return nil, &LaunchError{Path: c.spec.Path, Err: err}
	}

	output.Verbose(fmt.Sprintf("executing: %s", c.spec.CommandLine()))

	if err := cmd.Start(); err != nil {
		return nil, &LaunchError{Path: c.spec.Path, Err: err}
	}

	stdoutDone := c.stdout.BeginRead(stdoutPipe)
	stderrDone := c.stderr.BeginRead(stderrPipe)

	waitDone := make(chan struct{})
	if ctx != nil {
		go func() {
			select {
			case <-ctx.Done():
				if cmd.Process != nil {
					cmd.Process.Kill()
				}
			case <-waitDone:
			}
		}()
	}

	// Drain order matters: both readers must see EOF before Wait closes
	// the pipes, and both must finish before the result is built so every
	// captured line is present.
	<-stdoutDone
	<-stderrDone

	waitErr := cmd.Wait()
	close(waitDone)

	result := &Result{
		Stdout: c.stdout.CapturedText(),
		Stderr: c.stderr.CapturedText(),
	}

	if waitErr != nil {
		var exitErr *exec.ExitError
		if errors.As(waitErr, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
			return result, nil
		}
		return nil, &LaunchError{Path: c.spec.Path, Err: waitErr}
	}

	return result, nil
}

// IsNotFound reports whether err means the resolved path did not exist or
// was not runnable at process-start time.
func IsNotFound(err error) bool {
	var launchErr *LaunchError
	if !errors.As(err, &launchErr) {
		return false
	}
	return errors.Is(launchErr.Err, exec.ErrNotFound) ||
		errors.Is(launchErr.Err, fs.ErrNotExist) ||
		errors.Is(launchErr.Err, os.ErrNotExist)
}

// defaultSinks attaches the console sinks to any stream that was not
// configured before Execute.
func (c *Command) defaultSinks() {
	if !c.stdout.configured() {
		c.stdout.ForwardTo(output.StdoutSink())
	}
	if !c.stderr.configured() {
		c.stderr.ForwardTo(output.StderrSink(c.passthrough))
	}
}

func (c *Command) buildEnv() []string {
	env := os.Environ()
	for k, v := range c.spec.Env {
		env = append(env, k+"="+v)
	}
	for k, v := range c.env {
		env = append(env, k+"="+v)
	}
	return env
}

func (c *Command) assertNotStarted(op string) {
	if c.started {
		panic(fmt.Sprintf("run: %s called after Execute has started", op))
	}
}
