// SPDX-License-Identifier: MPL-2.0

package discovery

import (
	"errors"
	"fmt"
	"strings"

	"picasso-cli/internal/tutorconf"
)

const (
	// KeyPrefix marks the start of a private package declaration key.
	KeyPrefix = "PICASSO_"
	// KeySuffix marks the end of a private package declaration key.
	KeySuffix = "_DPKG"
)

// ErrMissingField is the sentinel error wrapped by MissingFieldError.
var ErrMissingField = errors.New("missing required field")

type (
	// Descriptor is a private package declaration extracted from the Tutor
	// configuration. Key is the declaring setting name; Name, Repo, and
	// Version are required for materialization but may be empty here —
	// callers gate on Validate before acting on a Descriptor.
	Descriptor struct {
		// Key is the configuration setting the descriptor came from
		// (e.g., "PICASSO_XBLOCK_DPKG").
		Key string
		// Name is the local checkout directory name.
		Name string
		// Repo is the source repository URL.
		Repo string
		// Version is the branch or tag to check out.
		Version string
	}

	// MissingFieldError reports a declaration that lacks one or more of the
	// required name/repo/version fields.
	MissingFieldError struct {
		Key     string
		Missing []string
	}
)

// Error implements the error interface.
func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s is missing required field(s): %s", e.Key, strings.Join(e.Missing, ", "))
}

// Unwrap returns ErrMissingField so callers can use errors.Is for programmatic detection.
func (e *MissingFieldError) Unwrap() error { return ErrMissingField }

// Validate returns a MissingFieldError if any of the required fields is empty.
func (d Descriptor) Validate() error {
	missing := d.MissingFields()
	if len(missing) > 0 {
		return &MissingFieldError{Key: d.Key, Missing: missing}
	}
	return nil
}

// MissingFields returns the names of the required fields that are empty, in
// a fixed name/repo/version order.
func (d Descriptor) MissingFields() []string {
	var missing []string
	if d.Name == "" {
		missing = append(missing, "name")
	}
	if d.Repo == "" {
		missing = append(missing, "repo")
	}
	if d.Version == "" {
		missing = append(missing, "version")
	}
	return missing
}

// Packages returns a Descriptor for every setting whose key matches the
// PICASSO_*_DPKG convention and whose value is non-empty, in configuration
// file order. Settings with matching keys but empty values are skipped, not
// errors; an empty result is valid.
//
// Field extraction is lenient: a matching entry whose value is not a mapping,
// or whose mapping lacks some fields, still yields a Descriptor — with the
// affected fields empty — so that Validate can report the offending key.
func Packages(cfg *tutorconf.Mapping) []Descriptor {
	var pkgs []Descriptor
	for _, entry := range cfg.Entries() {
		if !matchesKey(entry.Key) || isEmptyValue(entry.Value) {
			continue
		}
		pkgs = append(pkgs, descriptorFrom(entry.Key, entry.Value))
	}
	return pkgs
}

// matchesKey reports whether key follows the declaration naming convention.
// Prefix and suffix may overlap, so degenerate keys such as PICASSO_DPKG and
// PICASSO__DPKG are still candidates; they carry no usable fields, and
// Validate rejects them naming the offending key.
func matchesKey(key string) bool {
	return strings.HasPrefix(key, KeyPrefix) && strings.HasSuffix(key, KeySuffix)
}

// isEmptyValue reports whether a configuration value counts as "unset":
// nil, an empty string, an empty mapping or sequence, false, or zero.
func isEmptyValue(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return val == ""
	case bool:
		return !val
	case int:
		return val == 0
	case float64:
		return val == 0
	case map[string]any:
		return len(val) == 0
	case []any:
		return len(val) == 0
	}
	return false
}

// descriptorFrom extracts the required string fields from a declaration value.
func descriptorFrom(key string, value any) Descriptor {
	d := Descriptor{Key: key}

	fields, ok := value.(map[string]any)
	if !ok {
		return d
	}

	d.Name = stringField(fields, "name")
	d.Repo = stringField(fields, "repo")
	d.Version = stringField(fields, "version")
	return d
}

// stringField returns the field as a string, or "" when absent or not a string.
func stringField(fields map[string]any, name string) string {
	s, _ := fields[name].(string)
	return s
}
