package binary

import (
	"fmt"
	"strings"
	"testing"
	"time"

	. "github.com/cricklet/perftdiff/internal/helpers"

	"github.com/stretchr/testify/assert"
)

func TestTee(t *testing.T) {
	runner, err := SetupBinaryRunner("tee", []string{}, WithLogger(&SilentLogger))
	assert.True(t, err.IsNil())

	for i := 0; i < 10; i++ {
		v := fmt.Sprintf("hello world %d", i)
		err = runner.RunSync(v, func(line string) (LoopResult, Error) {
			assert.Equal(t, v, line)
			return LoopBreak, NilError
		}, Some(time.Second))

		assert.True(t, err.IsNil())
	}

	err = runner.RunSync("hello world", func(line string) (LoopResult, Error) {
		assert.Equal(t, "hello world", line)
		return LoopBreak, NilError
	}, Empty[time.Duration]())

	assert.True(t, err.IsNil())

	runner.Close()
}

func TestRunCollectsUntilMatch(t *testing.T) {
	runner, err := SetupBinaryRunner("tee", []string{}, WithLogger(&SilentLogger))
	assert.True(t, err.IsNil())
	defer runner.Close()

	output, err := runner.Run("first line", Some("first"), Some(time.Second))
	assert.True(t, err.IsNil())
	assert.Equal(t, []string{"first line"}, output)
}

func TestRunSyncTimeout(t *testing.T) {
	// `sleep` never writes, so waiting on its stdout has to time out
	runner, err := SetupBinaryRunner("sleep", []string{"10"}, WithLogger(&SilentLogger))
	assert.True(t, err.IsNil())
	defer runner.Close()

	err = runner.RunSync("ignored", func(line string) (LoopResult, Error) {
		return LoopContinue, NilError
	}, Some(100*time.Millisecond))

	assert.True(t, err.HasError())
	assert.Contains(t, err.Message(), "timeout")
}

func TestRunSyncProcessExit(t *testing.T) {
	// `head -n 1` echoes one line and quits. The callback never breaks and no
	// timeout is set, so RunSync has to notice the exit on its own.
	runner, err := SetupBinaryRunner("head", []string{"-n", "1"}, WithLogger(&SilentLogger))
	assert.True(t, err.IsNil())
	defer runner.Close()

	seen := []string{}
	err = runner.RunSync("only line", func(line string) (LoopResult, Error) {
		seen = append(seen, line)
		return LoopContinue, NilError
	}, Empty[time.Duration]())

	assert.True(t, err.HasError())
	assert.Contains(t, err.Message(), "exited")
	assert.Equal(t, []string{"only line"}, seen)
}

func TestTranscriptKeepsEveryEntry(t *testing.T) {
	runner, err := SetupBinaryRunner("sh",
		[]string{"-c", `while read l; do echo "$l"; echo "$l" >&2; done`},
		WithLogger(&SilentLogger))
	assert.True(t, err.IsNil())
	defer runner.Close()

	n := 50
	for i := 0; i < n; i++ {
		v := fmt.Sprintf("message %d", i)
		_, err = runner.Run(v, Some(v), Some(time.Second))
		assert.True(t, err.IsNil())
	}

	// stderr is pumped on its own goroutine; give it a moment to drain
	time.Sleep(200 * time.Millisecond)

	transcript := runner.Flush()
	assert.Equal(t, n, strings.Count(transcript, "in:  message"))
	assert.Equal(t, n, strings.Count(transcript, "out: message"))
	assert.Equal(t, n, strings.Count(transcript, "err: message"))
}

func TestFlushRecordsTranscript(t *testing.T) {
	runner, err := SetupBinaryRunner("tee", []string{}, WithLogger(&SilentLogger))
	assert.True(t, err.IsNil())
	defer runner.Close()

	_, err = runner.Run("hello", Some("hello"), Some(time.Second))
	assert.True(t, err.IsNil())

	transcript := runner.Flush()
	assert.Contains(t, transcript, "in:  hello")
	assert.Contains(t, transcript, "out: hello")
}

func TestRunAsyncAfterClose(t *testing.T) {
	runner, err := SetupBinaryRunner("tee", []string{}, WithLogger(&SilentLogger))
	assert.True(t, err.IsNil())

	runner.Close()

	err = runner.RunAsync("hello")
	assert.True(t, err.HasError())
}
