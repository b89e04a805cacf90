// SPDX-License-Identifier: MPL-2.0

// Package config loads the plugin's own settings (binary overrides, UI
// defaults) and resolves the Tutor project root. Settings come from an
// optional YAML file in the platform config directory, overridable through
// PICASSO_CLI_* environment variables. The Tutor project configuration
// itself is handled by package tutorconf, not here.
package config
