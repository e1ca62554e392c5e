package binary

import (
	"bufio"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"
	"time"

	. "github.com/cricklet/perftdiff/internal/helpers"
)

// BinaryRunner wraps a long-lived external process with line-based stdin and
// stdout. The reference engine is driven through one of these for the whole
// session rather than being re-spawned per query.
type BinaryRunner struct {
	cmdPath string
	cmd     *exec.Cmd

	stdin io.WriteCloser

	stdout *StdOutBuffer

	recordLock sync.Mutex
	record     []string

	exitOnce sync.Once
	exitErr  error

	Logger Logger
}

type BinaryRunnerOption func(*BinaryRunner)

func WithLogger(logger Logger) BinaryRunnerOption {
	return func(u *BinaryRunner) {
		u.Logger = logger
	}
}

func (u *BinaryRunner) CmdPath() string {
	return u.cmdPath
}

// appendRecord is the only writer of the transcript; the stdout pump, the
// stderr pump, and the caller all go through it.
func (u *BinaryRunner) appendRecord(line string) {
	u.recordLock.Lock()
	defer u.recordLock.Unlock()
	u.record = append(u.record, line)
}

func (u *BinaryRunner) waitForExit() error {
	u.exitOnce.Do(func() {
		u.exitErr = u.cmd.Wait()
	})
	return u.exitErr
}

// Flush returns the recorded stdin/stdout/stderr transcript, for attaching
// to provider failures.
func (u *BinaryRunner) Flush() string {
	u.recordLock.Lock()
	defer u.recordLock.Unlock()
	return "> " + Indent(strings.Join(u.record, "\n"), "> ")
}

func wrapError(u *BinaryRunner, err error) Error {
	if !IsNil(err) {
		return Wrap(fmt.Errorf("%w\n%v", err, u.Flush()))
	}
	return NilError
}

func SetupBinaryRunner(cmdPath string, args []string, options ...BinaryRunnerOption) (*BinaryRunner, Error) {
	u := &BinaryRunner{
		cmdPath: cmdPath,
	}

	for _, option := range options {
		option(u)
	}

	if u.Logger == nil {
		u.Logger = &DefaultLogger
	}

	u.Logger.Println(cmdPath, args)
	u.cmd = exec.Command(cmdPath, args...)

	var err error
	u.stdin, err = u.cmd.StdinPipe()
	if !IsNil(err) {
		return u, wrapError(u, err)
	}

	stdout, err := u.cmd.StdoutPipe()
	if !IsNil(err) {
		return u, wrapError(u, err)
	}
	stderr, err := u.cmd.StderrPipe()
	if !IsNil(err) {
		return u, wrapError(u, err)
	}

	u.stdout = NewStdOutBuffer()

	go func() {
		stdoutScanner := bufio.NewScanner(bufio.NewReader(stdout))
		for stdoutScanner.Scan() {
			line := stdoutScanner.Text()
			u.Logger.Println("stdout: ", Ellipses(line, 140))
			u.appendRecord("out: " + line)
			u.stdout.Update(line)
		}
		// EOF: the process is gone, wake anyone blocked in RunSync
		u.stdout.Close()
	}()

	go func() {
		stderrScanner := bufio.NewScanner(bufio.NewReader(stderr))
		for stderrScanner.Scan() {
			line := stderrScanner.Text()
			u.appendRecord("err: " + line)
		}
	}()

	err = u.cmd.Start()
	if !IsNil(err) {
		return u, wrapError(u, err)
	}

	return u, NilError
}

func (u *BinaryRunner) RunAsync(input string) Error {
	if u.cmd == nil {
		return wrapError(u, Errorf("cmd not setup: %v", u.cmdPath))
	}

	if u.cmd.ProcessState != nil && u.cmd.ProcessState.Exited() {
		return wrapError(u, Errorf("cmd exited: %v", u.cmdPath))
	}

	u.Logger.Println("stdin: ", input)
	u.appendRecord("in:  " + strings.TrimSpace(input))

	_, err := u.stdin.Write([]byte(input + "\n"))
	if !IsNil(err) {
		return wrapError(u, err)
	}

	return NilError
}

type LoopResult int

const (
	LoopContinue LoopResult = iota
	LoopBreak
)

// RunSync writes input and feeds back every stdout line until the callback
// breaks the loop or the timeout elapses.
func (u *BinaryRunner) RunSync(input string, callback func(line string) (LoopResult, Error), timeout Optional[time.Duration]) Error {
	err := u.RunAsync(input)
	if !IsNil(err) {
		return err
	}

	timeoutChan := make(chan bool, 1)
	if timeout.HasValue() {
		go func() {
			time.Sleep(timeout.Value())
			timeoutChan <- true
		}()
	}

	done := false
	handleLine := func(line string) Error {
		result, err := callback(line)
		if result == LoopBreak {
			done = true
		}
		return err
	}

	for !done {
		select {
		case <-timeoutChan:
			err = u.stdout.Flush(handleLine)
			if !done {
				err = Join(err, wrapError(u, Errorf("timeout running %q", input)))
				done = true
			}
		case <-u.stdout.Wait():
			err = u.stdout.Flush(handleLine)
			if IsNil(err) && !done && u.stdout.Exhausted() {
				_ = u.waitForExit()
				err = wrapError(u, Errorf("%v exited while running %q: %v", u.cmdPath, input, u.cmd.ProcessState))
				done = true
			}
		}

		if !IsNil(err) {
			return err
		}
	}

	return NilError
}

// Run writes input and collects output lines until one contains waitFor.
func (u *BinaryRunner) Run(input string, waitFor Optional[string], timeout Optional[time.Duration]) ([]string, Error) {
	result := []string{}

	err := u.RunSync(input, func(line string) (LoopResult, Error) {
		result = append(result, line)

		if waitFor.HasValue() && strings.Contains(line, waitFor.Value()) {
			return LoopBreak, NilError
		}
		return LoopContinue, NilError
	}, timeout)

	return result, err
}

func (u *BinaryRunner) Close() {
	if u.cmd != nil {
		_ = u.cmd.Process.Kill()
		_ = u.waitForExit()
		u.cmd = nil
	}
}
