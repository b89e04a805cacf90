// SPDX-License-Identifier: MPL-2.0

package hostcli

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// DefaultTutorBinary is the binary used when no override is configured.
const DefaultTutorBinary = "tutor"

// ErrUnparseableVersion indicates tutor --version produced output the plugin
// cannot interpret.
var ErrUnparseableVersion = errors.New("unparseable tutor version output")

// TutorCLI wraps the tutor binary. It embeds BaseCLI for command execution.
type TutorCLI struct {
	*BaseCLI
}

// NewTutorCLI creates a tutor wrapper. Use WithBinary to point at a
// non-default tutor executable.
func NewTutorCLI(opts ...Option) *TutorCLI {
	return &TutorCLI{BaseCLI: newBaseCLI(DefaultTutorBinary, opts...)}
}

// Version returns the tutor release version as reported by the binary.
//
// Generated command: tutor --version
func (t *TutorCLI) Version(ctx context.Context) (string, error) {
	out, err := t.RunOutput(ctx, "--version")
	if err != nil {
		return "", fmt.Errorf("querying tutor version: %w", err)
	}
	return ParseVersionOutput(out)
}

// MountsAdd registers a local directory with the tutor build pipeline.
//
// Generated command: tutor mounts add <path>
func (t *TutorCLI) MountsAdd(ctx context.Context, path string) error {
	if err := t.RunStatus(ctx, "mounts", "add", path); err != nil {
		return fmt.Errorf("adding mount %s: %w", path, err)
	}
	return nil
}

// ParseVersionOutput extracts the version number from tutor --version output.
// Click-based CLIs print "tutor, version 17.0.2"; a bare version string is
// also accepted. The result keeps tutor's own formatting (no "v" prefix) —
// normalization is the caller's concern.
func ParseVersionOutput(out string) (string, error) {
	fields := strings.Fields(strings.TrimSpace(out))
	if len(fields) == 0 {
		return "", fmt.Errorf("%w: empty output", ErrUnparseableVersion)
	}

	version := fields[len(fields)-1]
	if version == "" || !strings.ContainsAny(version, "0123456789") {
		return "", fmt.Errorf("%w: %q", ErrUnparseableVersion, out)
	}
	return version, nil
}
