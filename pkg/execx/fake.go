package execx

import (
	"context"
	"fmt"
	"io"
	"strings"
)

// Call records a single command invocation on the Fake executor.
type Call struct {
	Name string
	Args []string
}

// String returns the call as a shell-like command line.
func (c Call) String() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	return c.Name + " " + strings.Join(c.Args, " ")
}

// Fake is a recording executor for tests. Behavior is overridable per method;
// the zero value succeeds on everything and records all calls.
type Fake struct {
	Calls []Call

	LookPathFunc   func(file string) (string, error)
	RunFunc        func(name string, args ...string) (string, error)
	CombinedFunc   func(name string, args ...string) ([]byte, error)
	StreamFunc     func(ctx context.Context, stdout, stderr io.Writer, name string, args ...string) (int, error)
	FileExistsFunc func(path string) bool
}

// LookPath implements Executor.
func (f *Fake) LookPath(file string) (string, error) {
	if f.LookPathFunc != nil {
		return f.LookPathFunc(file)
	}
	return "/usr/bin/" + file, nil
}

// Run implements Executor.
func (f *Fake) Run(name string, args ...string) (string, error) {
	f.record(name, args)
	if f.RunFunc != nil {
		return f.RunFunc(name, args...)
	}
	return "", nil
}

// CombinedOutput implements Executor.
func (f *Fake) CombinedOutput(name string, args ...string) ([]byte, error) {
	f.record(name, args)
	if f.CombinedFunc != nil {
		return f.CombinedFunc(name, args...)
	}
	return nil, nil
}

// Stream implements Executor.
func (f *Fake) Stream(ctx context.Context, stdout, stderr io.Writer, name string, args ...string) (int, error) {
	f.record(name, args)
	if f.StreamFunc != nil {
		return f.StreamFunc(ctx, stdout, stderr, name, args...)
	}
	return 0, nil
}

// FileExists implements Executor.
func (f *Fake) FileExists(path string) bool {
	if f.FileExistsFunc != nil {
		return f.FileExistsFunc(path)
	}
	return true
}

// CommandLines returns all recorded calls as command-line strings.
func (f *Fake) CommandLines() []string {
	lines := make([]string, len(f.Calls))
	for i, c := range f.Calls {
		lines[i] = c.String()
	}
	return lines
}

// Ran reports whether any recorded call starts with the given fragment.
func (f *Fake) Ran(fragment string) bool {
	for _, line := range f.CommandLines() {
		if strings.HasPrefix(line, fragment) {
			return true
		}
	}
	return false
}

func (f *Fake) record(name string, args []string) {
	f.Calls = append(f.Calls, Call{Name: name, Args: args})
}

var _ Executor = (*Fake)(nil)
var _ Executor = (*Real)(nil)
var _ fmt.Stringer = Call{}
