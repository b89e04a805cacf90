// SPDX-License-Identifier: MPL-2.0

// Package materialize turns discovered private package descriptors into local
// checkouts registered with the Tutor build pipeline. Processing is strictly
// sequential and fail-fast: the first malformed descriptor, failed clone, or
// failed registration aborts the run. Stale checkouts are removed
// unconditionally before cloning, so a rerun reclaims anything a previous
// failed run left behind.
package materialize
