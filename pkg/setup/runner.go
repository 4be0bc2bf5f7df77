// Package setup implements the server setup tasks: system update, hostname
// change, user provisioning, firewall rules, swap file, and SSH hardening.
// Every task validates its inputs before running anything, reports progress
// events, and leaves error recovery to the caller's menu loop.
package setup

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/nigeyuk/serverConfig/pkg/errors"
	"github.com/nigeyuk/serverConfig/pkg/execx"
	"github.com/nigeyuk/serverConfig/pkg/logging"
)

// Runner executes setup tasks through a shared executor.
type Runner struct {
	executor execx.Executor
	progress ProgressCallback
	stdout   io.Writer
	stderr   io.Writer
	log      zerolog.Logger
}

// NewRunner creates a Runner using the given executor.
func NewRunner(executor execx.Executor) *Runner {
	return &Runner{
		executor: executor,
		progress: NoOpProgress,
		stdout:   os.Stdout,
		stderr:   os.Stderr,
		log:      logging.GetLogger("setup"),
	}
}

// SetProgress installs a progress callback.
func (r *Runner) SetProgress(cb ProgressCallback) {
	if cb == nil {
		cb = NoOpProgress
	}
	r.progress = cb
}

// SetOutput redirects streamed command output.
func (r *Runner) SetOutput(stdout, stderr io.Writer) {
	r.stdout = stdout
	r.stderr = stderr
}

// emit sends a progress event.
func (r *Runner) emit(stage Stage, message, command string) {
	r.progress(ProgressEvent{
		Stage:     stage,
		Message:   message,
		Command:   command,
		IsError:   stage == StageError,
		Timestamp: time.Now(),
	})
}

// runStep streams one external command, treating a non-zero exit as a SETUP
// error.
func (r *Runner) runStep(ctx context.Context, message, name string, args ...string) error {
	command := name
	if len(args) > 0 {
		command = name + " " + strings.Join(args, " ")
	}

	r.emit(StageRunning, message, command)
	r.log.Info().Str("command", command).Msg(message)

	exitCode, err := r.executor.Stream(ctx, r.stdout, r.stderr, name, args...)
	if err != nil {
		r.emit(StageError, message+" failed", command)
		return err
	}
	if exitCode != 0 {
		r.emit(StageError, fmt.Sprintf("%s failed (exit %d)", message, exitCode), command)
		return errors.Newf(errors.ErrSetup, "%s exited with code %d", name, exitCode)
	}
	return nil
}

// appendLine appends a line to a system file via the shell. Used for fstab
// and sysctl entries the way the underlying admin tooling expects.
func (r *Runner) appendLine(ctx context.Context, message, line, file string) error {
	return r.runStep(ctx, message, "sh", "-c", fmt.Sprintf("echo '%s' >> %s", line, file))
}
