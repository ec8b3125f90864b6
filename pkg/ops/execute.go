package ops

import (
	"context"
	stderrors "errors"
	"os/exec"
	"time"

	"github.com/arthur-debert/vacuum/pkg/dirctx"
	"github.com/arthur-debert/vacuum/pkg/errors"
	"github.com/arthur-debert/vacuum/pkg/logging"
	"github.com/arthur-debert/vacuum/pkg/ui"
)

// Execute runs command through the shell with the context's source as the
// working directory. Output streams to the sink. There is no timeout beyond
// what ctx imposes.
func (o *Ops) Execute(ctx context.Context, dc dirctx.Context, command string) error {
	dir := dc.Source()
	o.sink.Emit(ui.Event{Kind: ui.EventExec, Command: command, Dir: dir})
	logging.LogCommand(o.logger, command, dir)

	argv := make([]string, 0, len(o.shell))
	argv = append(argv, o.shell[1:]...)
	argv = append(argv, command)

	cmd := exec.CommandContext(ctx, o.shell[0], argv...)
	cmd.Dir = dir
	cmd.Stdout = o.sink.Stdout()
	cmd.Stderr = o.sink.Stderr()
	// children still holding the output pipes must not outlive a cancelled ctx
	cmd.WaitDelay = time.Second

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if stderrors.As(err, &exitErr) {
			return errors.Wrapf(err, errors.ErrCommand, "command %q exited with status %d", command, exitErr.ExitCode()).
				WithDetail("command", command).
				WithDetail("dir", dir).
				WithDetail("exit_code", exitErr.ExitCode())
		}
		return errors.Wrapf(err, errors.ErrCommand, "command %q could not be run", command).
			WithDetail("command", command).
			WithDetail("dir", dir)
	}

	o.logger.Debug().Str("command", command).Msg("Command finished")
	return nil
}
