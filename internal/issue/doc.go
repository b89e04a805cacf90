// SPDX-License-Identifier: MPL-2.0

// Package issue provides user-facing error reporting: ActionableError carries
// operation/resource context plus fix suggestions, and a small catalog of
// known failure conditions (missing binaries, unreadable Tutor configuration)
// renders markdown guidance cards in the terminal.
package issue
