// SPDX-License-Identifier: MPL-2.0

package main

import (
	"errors"
	"strings"
	"testing"

	"picasso-cli/internal/discovery"
	"picasso-cli/internal/issue"
)

func TestGetVersionString(t *testing.T) {
	// Not parallel: subtests mutate package-level Version/Commit/BuildDate vars.

	t.Run("ldflags version takes priority", func(t *testing.T) {
		origVersion, origCommit, origBuildDate := Version, Commit, BuildDate
		t.Cleanup(func() {
			Version, Commit, BuildDate = origVersion, origCommit, origBuildDate
		})

		Version = "v1.2.3"
		Commit = "abc1234"
		BuildDate = "2025-06-15T10:00:00Z"

		got := getVersionString()
		want := "v1.2.3 (commit: abc1234, built: 2025-06-15T10:00:00Z)"
		if got != want {
			t.Errorf("getVersionString() = %q, want %q", got, want)
		}
	})

	t.Run("fallback to dev when no build info", func(t *testing.T) {
		origVersion, origCommit, origBuildDate := Version, Commit, BuildDate
		t.Cleanup(func() {
			Version, Commit, BuildDate = origVersion, origCommit, origBuildDate
		})

		Version = "dev"
		Commit = "unknown"
		BuildDate = "unknown"

		got := getVersionString()
		want := "dev (built from source)"
		if got != want {
			t.Errorf("getVersionString() = %q, want %q", got, want)
		}
	})
}

func TestFormatErrorForDisplay(t *testing.T) {
	t.Run("plain error passes through", func(t *testing.T) {
		got := formatErrorForDisplay(errors.New("boom"), false)
		if got != "boom" {
			t.Errorf("formatErrorForDisplay() = %q, want %q", got, "boom")
		}
	})

	t.Run("actionable error uses Format", func(t *testing.T) {
		ae := issue.NewErrorContext().
			WithOperation("clone private package").
			WithSuggestion("check the repository URL").
			Wrap(errors.New("exit status 128")).
			Build()

		got := formatErrorForDisplay(ae, false)
		if !strings.Contains(got, "clone private package") {
			t.Errorf("formatErrorForDisplay() = %q, missing operation", got)
		}
		if !strings.Contains(got, "check the repository URL") {
			t.Errorf("formatErrorForDisplay() = %q, missing suggestion", got)
		}
	})
}

func TestIssueForMaterializeError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want issue.Id
	}{
		{
			name: "missing field maps to malformed package",
			err: issue.NewErrorContext().
				WithOperation("read private package declaration").
				Wrap(&discovery.MissingFieldError{Key: "PICASSO_X_DPKG", Missing: []string{"repo"}}).
				BuildError(),
			want: issue.MalformedPackageId,
		},
		{
			name: "clone failure maps to clone card",
			err: issue.NewErrorContext().
				WithOperation("clone private package").
				Wrap(errors.New("exit status 128")).
				BuildError(),
			want: issue.CloneFailedId,
		},
		{
			name: "registration failure maps to mount card",
			err: issue.NewErrorContext().
				WithOperation("register private package").
				Wrap(errors.New("exit status 1")).
				BuildError(),
			want: issue.MountRegistrationFailedId,
		},
		{
			name: "unrelated error maps to nothing",
			err:  errors.New("boom"),
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := issueForMaterializeError(tt.err); got != tt.want {
				t.Errorf("issueForMaterializeError() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEnableSummaries(t *testing.T) {
	if got := enableSuccessSummary(3); !strings.Contains(got, "Enabled 3 private package(s)") {
		t.Errorf("enableSuccessSummary(3) = %q", got)
	}
	if got := enableFailureSummary(); !strings.Contains(got, "enable-private-packages failed") {
		t.Errorf("enableFailureSummary() = %q", got)
	}
	if got := dryRunSummary(2); !strings.Contains(got, "2 private package(s) would be enabled") ||
		!strings.Contains(got, "nothing was changed") {
		t.Errorf("dryRunSummary(2) = %q", got)
	}
}

func TestValueOrPlaceholder(t *testing.T) {
	if got := valueOrPlaceholder(""); !strings.Contains(got, "(not set)") {
		t.Errorf("valueOrPlaceholder(\"\") = %q, want placeholder", got)
	}
	if got := valueOrPlaceholder("main"); !strings.Contains(got, "main") {
		t.Errorf("valueOrPlaceholder(\"main\") = %q, want value", got)
	}
}
