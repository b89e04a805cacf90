// SPDX-License-Identifier: MPL-2.0

package materialize

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"picasso-cli/internal/hostcli"
)

// ManifestFileName is the legacy manifest listing locally editable
// requirement paths, relative to the requirements directory.
const ManifestFileName = "private.txt"

type (
	// Registrar exposes a cloned package checkout to the Tutor build
	// pipeline. The variant is chosen once per run from the resolved Tutor
	// version — see SelectRegistrar — not per descriptor.
	Registrar interface {
		// Register makes the checkout named name visible to the build.
		Register(ctx context.Context, name string) error
		// Describe returns the side effect Register would perform, for
		// dry-run output.
		Describe(name string) string
	}

	// ManifestRegistrar appends `-e ./<name>/` lines to private.txt.
	// Used for Tutor releases older than MountsMinVersion.
	ManifestRegistrar struct {
		path string
	}

	// MountRegistrar invokes `tutor mounts add` with the checkout path.
	// Used for Tutor releases at or above MountsMinVersion.
	MountRegistrar struct {
		requirementsDir string
		tutor           *hostcli.TutorCLI
	}
)

// SelectRegistrar picks the registration variant for the given Tutor release.
// requirementsDir must be the directory package checkouts are cloned into.
func SelectRegistrar(tutorVersion, requirementsDir string, tutor *hostcli.TutorCLI) (Registrar, error) {
	mounts, err := UsesMounts(tutorVersion)
	if err != nil {
		return nil, err
	}
	if mounts {
		return NewMountRegistrar(requirementsDir, tutor), nil
	}
	return NewManifestRegistrar(requirementsDir), nil
}

// NewManifestRegistrar creates a registrar writing to private.txt under
// requirementsDir.
func NewManifestRegistrar(requirementsDir string) *ManifestRegistrar {
	return &ManifestRegistrar{path: filepath.Join(requirementsDir, ManifestFileName)}
}

// Path returns the manifest file location.
func (r *ManifestRegistrar) Path() string {
	return r.path
}

// Register appends the requirement line for name, creating the manifest empty
// first if it does not exist. A line already present is not appended again,
// so repeated runs leave a single entry per package.
func (r *ManifestRegistrar) Register(_ context.Context, name string) error {
	line := manifestLine(name)

	data, err := os.ReadFile(r.path)
	if err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("reading manifest %s: %w", r.path, err)
		}
		if writeErr := os.WriteFile(r.path, nil, 0o644); writeErr != nil {
			return fmt.Errorf("creating manifest %s: %w", r.path, writeErr)
		}
	}

	for existing := range strings.Lines(string(data)) {
		if strings.TrimRight(existing, "\n") == line {
			return nil
		}
	}

	f, err := os.OpenFile(r.path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0o644)
	if err != nil {
		return fmt.Errorf("opening manifest %s: %w", r.path, err)
	}

	if _, err := f.WriteString(line + "\n"); err != nil {
		_ = f.Close()
		return fmt.Errorf("appending to manifest %s: %w", r.path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("flushing manifest %s: %w", r.path, err)
	}
	return nil
}

// Describe returns the manifest append this registrar would perform.
func (r *ManifestRegistrar) Describe(name string) string {
	return fmt.Sprintf("append %q to %s", manifestLine(name), r.path)
}

// manifestLine is the editable-requirement line format the openedx build
// expects, relative to the requirements directory.
func manifestLine(name string) string {
	return fmt.Sprintf("-e ./%s/", name)
}

// NewMountRegistrar creates a registrar that delegates to the tutor CLI.
func NewMountRegistrar(requirementsDir string, tutor *hostcli.TutorCLI) *MountRegistrar {
	return &MountRegistrar{requirementsDir: requirementsDir, tutor: tutor}
}

// Register adds the checkout as a tutor mount.
func (r *MountRegistrar) Register(ctx context.Context, name string) error {
	return r.tutor.MountsAdd(ctx, filepath.Join(r.requirementsDir, name))
}

// Describe returns the tutor invocation this registrar would perform.
func (r *MountRegistrar) Describe(name string) string {
	return fmt.Sprintf("run tutor mounts add %s", filepath.Join(r.requirementsDir, name))
}
