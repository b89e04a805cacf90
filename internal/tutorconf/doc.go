// SPDX-License-Identifier: MPL-2.0

// Package tutorconf provides read-only access to the Tutor project
// configuration (config.yml in the Tutor root). Keys are preserved exactly as
// written — Tutor settings are upper-case with underscores — and entries are
// enumerated in file order.
package tutorconf
