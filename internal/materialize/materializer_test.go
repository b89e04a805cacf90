// SPDX-License-Identifier: MPL-2.0

package materialize

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"picasso-cli/internal/discovery"
	"picasso-cli/internal/hostcli"
	"picasso-cli/internal/issue"
	"picasso-cli/internal/testutil"
)

func newTestGitCLI(t *testing.T, recorder *testutil.CommandRecorder) *hostcli.GitCLI {
	t.Helper()
	return hostcli.NewGitCLI(
		hostcli.WithBinary("git"),
		hostcli.WithExecCommand(recorder.CommandFunc(t)),
		hostcli.WithStdout(io.Discard),
		hostcli.WithStderr(io.Discard),
	)
}

func completeDescriptor() discovery.Descriptor {
	return discovery.Descriptor{
		Key:     "PICASSO_A_DPKG",
		Name:    "a",
		Repo:    "https://x/a.git",
		Version: "main",
	}
}

func TestRunClonesAndRegisters(t *testing.T) {
	root := t.TempDir()
	gitRecorder := testutil.NewCommandRecorder()
	m := New(root, newTestGitCLI(t, gitRecorder), NewManifestRegistrar(RequirementsDir(root)))

	err := m.Run(context.Background(), []discovery.Descriptor{completeDescriptor()})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	// Requirements directory exists and the manifest has the entry.
	reqDir := RequirementsDir(root)
	if info, statErr := os.Stat(reqDir); statErr != nil || !info.IsDir() {
		t.Fatalf("Expected requirements directory at %s", reqDir)
	}
	data, _ := os.ReadFile(filepath.Join(reqDir, ManifestFileName))
	if string(data) != "-e ./a/\n" {
		t.Errorf("Expected manifest entry, got %q", string(data))
	}

	// The clone invocation carries exactly the declared values.
	inv := gitRecorder.LastInvocation()
	want := []string{"clone", "-b", "main", "https://x/a.git", filepath.Join(reqDir, "a")}
	if inv == nil || !slices.Equal(inv.Args, want) {
		t.Errorf("Expected clone args %v, got %v", want, inv)
	}
}

func TestRunValidatesBeforeCloning(t *testing.T) {
	root := t.TempDir()
	gitRecorder := testutil.NewCommandRecorder()
	m := New(root, newTestGitCLI(t, gitRecorder), NewManifestRegistrar(RequirementsDir(root)))

	incomplete := discovery.Descriptor{Key: "PICASSO_BAD_DPKG", Name: "bad"}
	err := m.Run(context.Background(), []discovery.Descriptor{incomplete})

	if !errors.Is(err, discovery.ErrMissingField) {
		t.Fatalf("Expected ErrMissingField, got %v", err)
	}
	if !strings.Contains(err.Error(), "PICASSO_BAD_DPKG") {
		t.Errorf("Expected offending key in error, got %q", err.Error())
	}
	if len(gitRecorder.Invocations) != 0 {
		t.Errorf("Expected no clone attempt, got %v", gitRecorder.Invocations)
	}
}

func TestRunAbortsOnFirstInvalidDescriptor(t *testing.T) {
	root := t.TempDir()
	gitRecorder := testutil.NewCommandRecorder()
	m := New(root, newTestGitCLI(t, gitRecorder), NewManifestRegistrar(RequirementsDir(root)))

	pkgs := []discovery.Descriptor{
		completeDescriptor(),
		{Key: "PICASSO_BAD_DPKG"},
		{Key: "PICASSO_C_DPKG", Name: "c", Repo: "https://x/c.git", Version: "main"},
	}

	err := m.Run(context.Background(), pkgs)
	if err == nil {
		t.Fatal("Expected run to fail on the malformed descriptor")
	}

	// The first package was processed, the rest were not.
	if len(gitRecorder.Invocations) != 1 {
		t.Errorf("Expected exactly one clone before the abort, got %d", len(gitRecorder.Invocations))
	}
}

func TestRunRemovesStaleCheckout(t *testing.T) {
	root := t.TempDir()
	reqDir := RequirementsDir(root)
	stale := filepath.Join(reqDir, "a")
	if err := os.MkdirAll(stale, 0o755); err != nil {
		t.Fatalf("Failed to create stale checkout: %v", err)
	}
	marker := filepath.Join(stale, "leftover.txt")
	if err := os.WriteFile(marker, []byte("old"), 0o644); err != nil {
		t.Fatalf("Failed to write marker: %v", err)
	}

	gitRecorder := testutil.NewCommandRecorder()
	m := New(root, newTestGitCLI(t, gitRecorder), NewManifestRegistrar(reqDir))

	if err := m.Run(context.Background(), []discovery.Descriptor{completeDescriptor()}); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	// The mock clone creates nothing, so the marker's absence proves the
	// stale tree was removed before cloning.
	if _, err := os.Stat(marker); !os.IsNotExist(err) {
		t.Errorf("Expected stale checkout to be removed, stat err: %v", err)
	}
}

func TestRunCloneFailureIsFatal(t *testing.T) {
	root := t.TempDir()
	gitRecorder := testutil.NewCommandRecorder()
	gitRecorder.ExitCode = 128
	m := New(root, newTestGitCLI(t, gitRecorder), NewManifestRegistrar(RequirementsDir(root)))

	err := m.Run(context.Background(), []discovery.Descriptor{completeDescriptor()})
	if err == nil {
		t.Fatal("Expected clone failure to abort the run")
	}

	var ae *issue.ActionableError
	if !errors.As(err, &ae) {
		t.Fatalf("Expected ActionableError, got %T", err)
	}
	if ae.Operation != "clone private package" {
		t.Errorf("Unexpected operation: %q", ae.Operation)
	}

	// Registration never happened: no manifest was written.
	if _, statErr := os.Stat(filepath.Join(RequirementsDir(root), ManifestFileName)); !os.IsNotExist(statErr) {
		t.Errorf("Expected no manifest after clone failure, stat err: %v", statErr)
	}
}

func TestRunEmptyPackageListIsValid(t *testing.T) {
	root := t.TempDir()
	m := New(root, nil, nil)

	if err := m.Run(context.Background(), nil); err != nil {
		t.Fatalf("Expected empty run to succeed, got %v", err)
	}
}

func TestRunWithoutRegistrarFails(t *testing.T) {
	root := t.TempDir()
	m := New(root, newTestGitCLI(t, testutil.NewCommandRecorder()), nil)

	err := m.Run(context.Background(), []discovery.Descriptor{completeDescriptor()})
	if !errors.Is(err, ErrNoRegistrar) {
		t.Errorf("Expected ErrNoRegistrar, got %v", err)
	}
}

func TestDryRunPerformsNoSideEffects(t *testing.T) {
	root := t.TempDir()
	reqDir := RequirementsDir(root)
	stale := filepath.Join(reqDir, "a")
	if err := os.MkdirAll(stale, 0o755); err != nil {
		t.Fatalf("Failed to create stale checkout: %v", err)
	}

	gitRecorder := testutil.NewCommandRecorder()
	m := New(root, newTestGitCLI(t, gitRecorder), NewManifestRegistrar(reqDir), WithDryRun(true))

	if err := m.Run(context.Background(), []discovery.Descriptor{completeDescriptor()}); err != nil {
		t.Fatalf("Dry run failed: %v", err)
	}

	if len(gitRecorder.Invocations) != 0 {
		t.Errorf("Expected no git invocations in dry run, got %v", gitRecorder.Invocations)
	}
	if _, err := os.Stat(stale); err != nil {
		t.Errorf("Expected stale checkout untouched in dry run, stat err: %v", err)
	}
	if _, err := os.Stat(filepath.Join(reqDir, ManifestFileName)); !os.IsNotExist(err) {
		t.Errorf("Expected no manifest in dry run, stat err: %v", err)
	}
}

func TestRunIsIdempotent(t *testing.T) {
	root := t.TempDir()
	reqDir := RequirementsDir(root)
	gitRecorder := testutil.NewCommandRecorder()
	m := New(root, newTestGitCLI(t, gitRecorder), NewManifestRegistrar(reqDir))

	for range 2 {
		if err := m.Run(context.Background(), []discovery.Descriptor{completeDescriptor()}); err != nil {
			t.Fatalf("Run failed: %v", err)
		}
	}

	// The clone re-executes every run, but the end state is stable: one
	// manifest line, one destination path.
	if len(gitRecorder.Invocations) != 2 {
		t.Errorf("Expected clone to re-execute on rerun, got %d invocations", len(gitRecorder.Invocations))
	}
	data, _ := os.ReadFile(filepath.Join(reqDir, ManifestFileName))
	if string(data) != "-e ./a/\n" {
		t.Errorf("Expected single manifest line after reruns, got %q", string(data))
	}
}
