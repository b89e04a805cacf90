// SPDX-License-Identifier: MPL-2.0

package hostcli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
)

type (
	// ExecCommandFunc is the function signature for creating exec.Cmd.
	// This allows injection of mock implementations for testing.
	ExecCommandFunc func(ctx context.Context, name string, arg ...string) *exec.Cmd

	// Option configures a BaseCLI.
	Option func(*BaseCLI)

	// BaseCLI provides common implementation for wrappers over external
	// binaries. GitCLI and TutorCLI embed this struct.
	BaseCLI struct {
		name        string // Binary name for error messages (e.g., "git", "tutor")
		binaryPath  string // Resolved at construction via exec.LookPath
		execCommand ExecCommandFunc
		stdout      io.Writer
		stderr      io.Writer
	}
)

// WithExecCommand sets a custom exec command function for testing.
func WithExecCommand(fn ExecCommandFunc) Option {
	return func(c *BaseCLI) {
		c.execCommand = fn
	}
}

// WithBinary overrides the binary to invoke. Relative names are resolved on
// PATH; absolute paths are used as-is.
func WithBinary(binary string) Option {
	return func(c *BaseCLI) {
		c.binaryPath = lookPath(binary)
	}
}

// WithStdout sets the writer that receives subprocess stdout.
func WithStdout(w io.Writer) Option {
	return func(c *BaseCLI) {
		c.stdout = w
	}
}

// WithStderr sets the writer that receives subprocess stderr.
func WithStderr(w io.Writer) Option {
	return func(c *BaseCLI) {
		c.stderr = w
	}
}

// newBaseCLI creates a BaseCLI for the given binary name.
func newBaseCLI(name string, opts ...Option) *BaseCLI {
	c := &BaseCLI{
		name:        name,
		binaryPath:  lookPath(name),
		execCommand: exec.CommandContext,
		stdout:      os.Stdout,
		stderr:      os.Stderr,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name returns the binary name used in error messages.
func (c *BaseCLI) Name() string {
	return c.name
}

// BinaryPath returns the resolved path to the binary, or "" when the binary
// was not found on PATH.
func (c *BaseCLI) BinaryPath() string {
	return c.binaryPath
}

// Available reports whether the binary was found on PATH.
func (c *BaseCLI) Available() bool {
	return c.binaryPath != ""
}

// RunStatus executes a command, streaming output to the configured writers,
// and returns only the error status.
func (c *BaseCLI) RunStatus(ctx context.Context, args ...string) error {
	cmd := c.CreateCommand(ctx, args...)
	cmd.Stdout = c.stdout
	cmd.Stderr = c.stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("command %s %v failed: %w", c.name, args, err)
	}
	return nil
}

// RunOutput executes a command with stdout captured to a buffer. Stderr still
// goes to the configured writer so subprocess diagnostics reach the user.
func (c *BaseCLI) RunOutput(ctx context.Context, args ...string) (string, error) {
	cmd := c.CreateCommand(ctx, args...)
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = c.stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("command %s %v failed: %w", c.name, args, err)
	}

	return out.String(), nil
}

// CreateCommand creates an exec.Cmd for the given arguments. This is useful
// when the caller needs to customize stdin/stdout/stderr.
func (c *BaseCLI) CreateCommand(ctx context.Context, args ...string) *exec.Cmd {
	return c.execCommand(ctx, c.binaryPath, args...)
}

// lookPath resolves a binary name on PATH. Names containing a path separator
// are checked directly by exec.LookPath, so configured absolute paths work
// even when not on PATH. Returns "" when the binary cannot be found.
func lookPath(binary string) string {
	if binary == "" {
		return ""
	}
	path, err := exec.LookPath(binary)
	if err != nil {
		return ""
	}
	return path
}
