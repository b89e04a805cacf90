// SPDX-License-Identifier: MPL-2.0

// picasso is a Tutor plugin command set for materializing private Open edX
// packages declared in the project configuration.
package main

func main() {
	Execute()
}
