// SPDX-License-Identifier: MPL-2.0

// Package hostcli wraps the external binaries this plugin drives: git for
// cloning package sources and the tutor CLI for mount registration. Both
// wrappers share BaseCLI, which resolves the binary on PATH and provides an
// injectable exec seam for tests.
package hostcli
