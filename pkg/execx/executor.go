// Package execx provides command execution for serverconfig.
// All packages that shell out (installer, setup tasks, doctor) go through the
// Executor interface so tests can substitute a fake.
package execx

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"

	"github.com/nigeyuk/serverConfig/pkg/errors"
)

// Executor is an interface for executing external commands.
type Executor interface {
	// LookPath finds the path to an executable.
	LookPath(file string) (string, error)

	// Run executes a command and returns its output.
	Run(name string, args ...string) (string, error)

	// CombinedOutput runs a command and returns combined stdout and stderr.
	CombinedOutput(name string, args ...string) ([]byte, error)

	// Stream runs a command with output streamed to the given writers.
	// Returns the command's exit code; a non-zero exit is not an error here,
	// failure to start the command is.
	Stream(ctx context.Context, stdout, stderr io.Writer, name string, args ...string) (int, error)

	// FileExists checks if a file exists.
	FileExists(path string) bool
}

// Real is the default executor that uses the real system.
type Real struct{}

// NewReal creates a Real executor.
func NewReal() *Real {
	return &Real{}
}

// LookPath finds the path to an executable.
func (e *Real) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

// Run executes a command and returns its output.
func (e *Real) Run(name string, args ...string) (string, error) {
	cmd := exec.Command(name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	if err != nil {
		// Some tools write diagnostics to stderr only
		if stderr.Len() > 0 {
			return stderr.String(), err
		}
		return stdout.String(), err
	}
	output := stdout.String()
	if output == "" {
		output = stderr.String()
	}
	return output, nil
}

// CombinedOutput runs a command and returns combined stdout and stderr.
func (e *Real) CombinedOutput(name string, args ...string) ([]byte, error) {
	cmd := exec.Command(name, args...)
	return cmd.CombinedOutput()
}

// Stream runs a command, streaming output to the provided writers.
func (e *Real) Stream(ctx context.Context, stdout, stderr io.Writer, name string, args ...string) (int, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	runErr := cmd.Run()
	if runErr != nil {
		// Command ran but returned non-zero
		if exitErr, ok := runErr.(*exec.ExitError); ok {
			return exitErr.ExitCode(), nil
		}
		return -1, errors.WrapWithSuggestion(runErr, errors.ErrExec,
			"couldn't run "+name,
			"make sure the command exists and is executable")
	}

	return 0, nil
}

// FileExists checks if a file exists.
func (e *Real) FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
