// Package installer invokes the system package manager with a batch of
// packages resolved from the catalog.
package installer

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/nigeyuk/serverConfig/pkg/errors"
	"github.com/nigeyuk/serverConfig/pkg/execx"
	"github.com/nigeyuk/serverConfig/pkg/logging"
)

// Status is the outcome of an install request.
type Status string

const (
	// StatusSuccess means the package manager exited zero.
	StatusSuccess Status = "success"
	// StatusCancelled means the operator declined; nothing was invoked.
	StatusCancelled Status = "cancelled"
	// StatusFailed means the package manager exited non-zero.
	StatusFailed Status = "failed"
)

// Result is the outcome of Install. ExitCode is only meaningful for
// StatusFailed.
type Result struct {
	Status   Status
	ExitCode int
}

// Installer runs batched package installations.
type Installer struct {
	aptCommand string
	executor   execx.Executor
	stdout     io.Writer
	stderr     io.Writer
}

// New creates an Installer that invokes aptCommand through the executor.
func New(aptCommand string, executor execx.Executor) *Installer {
	return &Installer{
		aptCommand: aptCommand,
		executor:   executor,
		stdout:     os.Stdout,
		stderr:     os.Stderr,
	}
}

// SetOutput redirects the package manager's streamed output.
func (i *Installer) SetOutput(stdout, stderr io.Writer) {
	i.stdout = stdout
	i.stderr = stderr
}

// Install installs the packages as a single batch. With confirmed=false it
// returns StatusCancelled and never touches the package manager. The install
// runs to completion or failure; the exit status is the sole success signal.
func (i *Installer) Install(ctx context.Context, packages []string, confirmed bool) (Result, error) {
	logger := logging.GetLogger("installer")

	if !confirmed {
		logger.Info().Msg("installation cancelled by operator")
		return Result{Status: StatusCancelled}, nil
	}

	if len(packages) == 0 {
		logger.Info().Msg("nothing to install")
		return Result{Status: StatusSuccess}, nil
	}

	args := append([]string{"install", "-y"}, packages...)
	logger.Info().
		Int("count", len(packages)).
		Str("packages", strings.Join(packages, " ")).
		Msg("installing packages")

	exitCode, err := i.executor.Stream(ctx, i.stdout, i.stderr, i.aptCommand, args...)
	if err != nil {
		logger.Error().Err(err).Msg("package manager could not be run")
		return Result{Status: StatusFailed, ExitCode: -1}, err
	}

	if exitCode != 0 {
		logger.Error().Int("exit_code", exitCode).Msg("installation failed")
		return Result{Status: StatusFailed, ExitCode: exitCode},
			errors.Newf(errors.ErrInstall, "%s exited with code %d", i.aptCommand, exitCode)
	}

	logger.Info().Int("count", len(packages)).Msg("installation complete")
	return Result{Status: StatusSuccess}, nil
}
