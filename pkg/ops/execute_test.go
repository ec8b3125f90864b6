package ops_test

import (
	"context"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/arthur-debert/vacuum/pkg/errors"
	"github.com/arthur-debert/vacuum/pkg/ops"
	"github.com/arthur-debert/vacuum/pkg/testutil"
	"github.com/arthur-debert/vacuum/pkg/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func skipWithoutShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("commands are run through sh")
	}
}

func TestExecute(t *testing.T) {
	skipWithoutShell(t)

	t.Run("runs in the source directory", func(t *testing.T) {
		env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
		rec := ui.NewRecorder()
		o := ops.New(ops.WithSink(rec))

		require.NoError(t, o.Execute(context.Background(), env.Sandbox(), "pwd"))

		assert.Equal(t, env.SourceRoot, strings.TrimSpace(rec.Output()))
		execs := rec.Of(ui.EventExec)
		require.Len(t, execs, 1)
		assert.Equal(t, "pwd", execs[0].Command)
		assert.Equal(t, env.SourceRoot, execs[0].Dir)
	})

	t.Run("streams stdout and stderr", func(t *testing.T) {
		env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
		rec := ui.NewRecorder()
		o := ops.New(ops.WithSink(rec))

		require.NoError(t, o.Execute(context.Background(), env.Sandbox(), "echo out; echo err >&2"))

		assert.Equal(t, "out\n", rec.Output())
		assert.Equal(t, "err\n", rec.ErrorOutput())
	})

	t.Run("does not write to the target", func(t *testing.T) {
		env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
		o := ops.New()

		require.NoError(t, o.Execute(context.Background(), env.Sandbox(), "echo hi > made.txt"))

		assert.True(t, testutil.Exists(t, env.Fs, env.SourceRoot+"/made.txt"))
		assert.Empty(t, testutil.ListFiles(t, env.Fs, env.TargetRoot))
	})

	t.Run("non-zero exit is a command error", func(t *testing.T) {
		env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
		o := ops.New()

		err := o.Execute(context.Background(), env.Sandbox(), "exit 3")

		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrCommand))
		assert.Equal(t, 3, errors.GetErrorDetails(err)["exit_code"])
	})

	t.Run("missing directory is a command error", func(t *testing.T) {
		env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
		o := ops.New()

		err := o.Execute(context.Background(), env.Sandbox().Sub("nope"), "true")

		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrCommand))
	})

	t.Run("honours cancellation", func(t *testing.T) {
		env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
		o := ops.New()
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
		defer cancel()

		start := time.Now()
		err := o.Execute(ctx, env.Sandbox(), "sleep 5")

		require.Error(t, err)
		assert.Less(t, time.Since(start), 4*time.Second)
	})

	t.Run("custom shell", func(t *testing.T) {
		env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
		rec := ui.NewRecorder()
		o := ops.New(ops.WithSink(rec), ops.WithShell([]string{"/bin/sh", "-c"}))

		require.NoError(t, o.Execute(context.Background(), env.Sandbox(), "printf vacuum"))

		assert.Equal(t, "vacuum", rec.Output())
	})
}
