package runner

import (
	"bytes"
	"context"
	"os"
	"strings"
	"testing"
	"testing/iotest"
	"time"

	"github.com/arthur-debert/cmdmail/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func shRunner() *Runner {
	return &Runner{Shell: "/bin/sh"}
}

func TestRun_CapturesCombinedOutput(t *testing.T) {
	res, err := shRunner().Run(context.Background(), "echo out; echo err 1>&2")
	require.NoError(t, err)

	assert.Equal(t, "out\nerr\n", res.Output)
	assert.Equal(t, 0, res.ExitCode)
	assert.True(t, res.Succeeded())
	assert.Equal(t, SourceCommand, res.Source)
	assert.Equal(t, "echo out; echo err 1>&2", res.Command)
	assert.False(t, res.Finished.Before(res.Started))
}

func TestRun_NonZeroExitIsAResult(t *testing.T) {
	res, err := shRunner().Run(context.Background(), "echo failing; exit 3")
	require.NoError(t, err)

	assert.Equal(t, 3, res.ExitCode)
	assert.False(t, res.Succeeded())
	assert.Equal(t, "failing\n", res.Output)
}

func TestRun_Tee(t *testing.T) {
	var tee bytes.Buffer
	r := shRunner()
	r.Tee = &tee

	res, err := r.Run(context.Background(), "printf 'a\\nb'")
	require.NoError(t, err)

	assert.Equal(t, "a\nb", res.Output)
	assert.Equal(t, res.Output, tee.String())
}

func TestRun_StdinAndDir(t *testing.T) {
	dir := t.TempDir()
	r := shRunner()
	r.Stdin = strings.NewReader("piped\n")
	r.Dir = dir

	res, err := r.Run(context.Background(), "cat; pwd")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(res.Output, "piped\n"))
	assert.Contains(t, res.Output, dir)
}

func TestRun_ShellFallback(t *testing.T) {
	t.Setenv("SHELL", "")
	assert.Equal(t, DefaultShell, New().shell())

	t.Setenv("SHELL", "/bin/bash")
	assert.Equal(t, "/bin/bash", New().shell())
	assert.Equal(t, "/bin/zsh", (&Runner{Shell: "/bin/zsh"}).shell())
}

func TestRun_StartFailure(t *testing.T) {
	r := &Runner{Shell: "/definitely/not/a/shell"}

	res, err := r.Run(context.Background(), "true")

	assert.Nil(t, res)
	assert.True(t, errors.IsErrorCode(err, errors.ErrCommandStart))
	assert.Equal(t, "true", errors.GetErrorDetails(err)["command"])
}

func TestRun_ContextCancelKillsCommand(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	res, err := shRunner().Run(ctx, "exec sleep 5")
	require.NoError(t, err)
	assert.NotEqual(t, 0, res.ExitCode)
	assert.Less(t, res.Duration(), 5*time.Second)
}

func TestRun_UsesClock(t *testing.T) {
	times := []time.Time{
		time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		time.Date(2026, 1, 2, 3, 4, 7, 0, time.UTC),
	}
	r := shRunner()
	r.now = func() time.Time {
		next := times[0]
		times = times[1:]
		return next
	}

	res, err := r.Run(context.Background(), "true")
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, res.Duration())
}

func TestReadInput(t *testing.T) {
	var tee bytes.Buffer
	r := &Runner{Tee: &tee}

	res, err := r.ReadInput(strings.NewReader("line 1\nline 2\n"), "")
	require.NoError(t, err)

	assert.Equal(t, "stdin", res.Command)
	assert.Equal(t, SourceStdin, res.Source)
	assert.Equal(t, "line 1\nline 2\n", res.Output)
	assert.Equal(t, 0, res.ExitCode)
	assert.Equal(t, res.Output, tee.String())

	res, err = r.ReadInput(strings.NewReader(""), "nightly backup")
	require.NoError(t, err)
	assert.Equal(t, "nightly backup", res.Command)
}

func TestReadInput_Error(t *testing.T) {
	_, err := New().ReadInput(iotest.ErrReader(os.ErrClosed), "x")
	assert.True(t, errors.IsErrorCode(err, errors.ErrInputRead))
}

func TestStdinIsPiped(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "input")
	require.NoError(t, err)
	defer f.Close()

	assert.True(t, StdinIsPiped(f))
	assert.False(t, StdinIsPiped(nil))
}
