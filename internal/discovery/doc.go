// SPDX-License-Identifier: MPL-2.0

// Package discovery finds private package declarations in the Tutor project
// configuration. A declaration is any top-level setting whose key matches
// PICASSO_*_DPKG and whose value is non-empty; its value is expected to be a
// mapping with name, repo, and version fields.
package discovery
