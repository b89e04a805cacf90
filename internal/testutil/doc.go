// SPDX-License-Identifier: MPL-2.0

// Package testutil provides shared test infrastructure, chiefly a recorder
// for external command invocations built on the TestHelperProcess pattern.
package testutil
