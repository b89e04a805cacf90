// SPDX-License-Identifier: MPL-2.0

package hostcli

import (
	"context"
	"io"
	"slices"
	"testing"

	"picasso-cli/internal/testutil"
)

// TestHelperProcess backs testutil.CommandRecorder subprocesses; it is not a
// real test.
func TestHelperProcess(t *testing.T) { testutil.HelperProcess() }

func newTestGitCLI(t *testing.T, recorder *testutil.CommandRecorder) *GitCLI {
	t.Helper()
	return NewGitCLI(
		WithBinary("git"),
		WithExecCommand(recorder.CommandFunc(t)),
		WithStdout(io.Discard),
		WithStderr(io.Discard),
	)
}

func TestCloneArguments(t *testing.T) {
	recorder := testutil.NewCommandRecorder()
	git := newTestGitCLI(t, recorder)

	err := git.Clone(context.Background(), "https://x/a.git", "main", "/tmp/reqs/a")
	if err != nil {
		t.Fatalf("Clone failed: %v", err)
	}

	inv := recorder.LastInvocation()
	if inv == nil {
		t.Fatal("Expected a git invocation")
	}
	want := []string{"clone", "-b", "main", "https://x/a.git", "/tmp/reqs/a"}
	if !slices.Equal(inv.Args, want) {
		t.Errorf("Expected args %v, got %v", want, inv.Args)
	}
}

func TestCloneFailurePropagates(t *testing.T) {
	recorder := testutil.NewCommandRecorder()
	recorder.ExitCode = 128
	git := newTestGitCLI(t, recorder)

	err := git.Clone(context.Background(), "https://x/a.git", "missing-branch", "/tmp/reqs/a")
	if err == nil {
		t.Fatal("Expected clone failure to propagate")
	}
}
