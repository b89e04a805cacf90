// SPDX-License-Identifier: MPL-2.0

package materialize

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/mod/semver"
)

// MountsMinVersion is the first Tutor release ("Quince") whose build pipeline
// picks up private requirements through `tutor mounts add`. Earlier releases
// use the private.txt manifest instead.
const MountsMinVersion = "v17.0.0"

// ErrInvalidVersion indicates the resolved Tutor version is not valid semver.
var ErrInvalidVersion = errors.New("invalid tutor version")

// UsesMounts reports whether the given Tutor release registers private
// requirements via the mounts mechanism rather than the legacy manifest.
func UsesMounts(tutorVersion string) (bool, error) {
	norm, err := normalizeVersion(tutorVersion)
	if err != nil {
		return false, err
	}
	return semver.Compare(norm, MountsMinVersion) >= 0, nil
}

// normalizeVersion ensures the version string has a "v" prefix as required by
// the semver package, and validates that the result is a well-formed semantic
// version. Returns ErrInvalidVersion if the input cannot be normalized to
// valid semver.
func normalizeVersion(v string) (string, error) {
	norm := v
	if !strings.HasPrefix(norm, "v") {
		norm = "v" + norm
	}
	if !semver.IsValid(norm) {
		return "", fmt.Errorf("%w: %q", ErrInvalidVersion, v)
	}
	return norm, nil
}
