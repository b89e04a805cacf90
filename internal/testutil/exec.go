// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"testing"
)

type (
	// CommandRecorder captures arguments passed to exec.Command for
	// verification. It uses the TestHelperProcess pattern to simulate
	// command execution: the test binary re-executes itself and behaves per
	// the GO_HELPER_* environment variables.
	//
	// Each test package using CommandRecorder must define:
	//
	//	func TestHelperProcess(t *testing.T) { testutil.HelperProcess() }
	CommandRecorder struct {
		// Invocations records each call to the mock exec.Command
		Invocations []Invocation
		// ExitCode is the exit code to return (0 = success)
		ExitCode int
		// Stdout is the output to write to stdout
		Stdout string
		// Stderr is the output to write to stderr
		Stderr string
	}

	// Invocation represents a single invocation of exec.Command.
	Invocation struct {
		// Name is the binary path handed to exec.Command
		Name string
		// Args are the arguments passed to the command
		Args []string
	}
)

// NewCommandRecorder creates a recorder with default settings (success, no output).
func NewCommandRecorder() *CommandRecorder {
	return &CommandRecorder{
		Invocations: make([]Invocation, 0),
	}
}

// CommandFunc returns a function that can replace an exec.CommandContext seam.
// The function records invocations and returns a command that runs the
// calling package's TestHelperProcess.
func (r *CommandRecorder) CommandFunc(t *testing.T) func(ctx context.Context, name string, args ...string) *exec.Cmd {
	t.Helper()
	return func(_ context.Context, name string, args ...string) *exec.Cmd {
		r.Invocations = append(r.Invocations, Invocation{
			Name: name,
			Args: args,
		})

		cs := []string{"-test.run=TestHelperProcess", "--", name}
		cs = append(cs, args...)
		cmd := exec.Command(os.Args[0], cs...)
		cmd.Env = []string{
			"GO_WANT_HELPER_PROCESS=1",
			fmt.Sprintf("GO_HELPER_EXIT_CODE=%d", r.ExitCode),
			fmt.Sprintf("GO_HELPER_STDOUT=%s", r.Stdout),
			fmt.Sprintf("GO_HELPER_STDERR=%s", r.Stderr),
		}
		return cmd
	}
}

// LastInvocation returns the most recent invocation, or nil if none.
func (r *CommandRecorder) LastInvocation() *Invocation {
	if len(r.Invocations) == 0 {
		return nil
	}
	return &r.Invocations[len(r.Invocations)-1]
}

// HelperProcess implements the body of the TestHelperProcess test. It is a
// no-op unless the process was spawned by CommandRecorder.
func HelperProcess() {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}

	if stdout := os.Getenv("GO_HELPER_STDOUT"); stdout != "" {
		fmt.Fprint(os.Stdout, stdout)
	}
	if stderr := os.Getenv("GO_HELPER_STDERR"); stderr != "" {
		fmt.Fprint(os.Stderr, stderr)
	}

	exitCode := 0
	if code := os.Getenv("GO_HELPER_EXIT_CODE"); code != "" {
		fmt.Sscanf(code, "%d", &exitCode)
	}
	os.Exit(exitCode)
}
