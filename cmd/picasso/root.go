// SPDX-License-Identifier: MPL-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"picasso-cli/internal/config"
	"picasso-cli/internal/issue"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// verbose enables verbose output
	verbose bool
	// tutorRoot overrides the Tutor project root discovery
	tutorRoot string

	// appConfig holds the configuration loaded by initRootConfig.
	appConfig *config.Config

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "picasso",
		Short: "Private package companion for Tutor-managed Open edX projects",
		Long: TitleStyle.Render("picasso") + SubtitleStyle.Render(" - Private package companion for Tutor") + `

picasso reads private package declarations (PICASSO_*_DPKG entries) from
the Tutor project's config.yml, clones each declared repository into the
openedx build requirements directory, and registers the checkout with the
image build via private.txt or 'tutor mounts add', depending on the
installed Tutor version.

` + SubtitleStyle.Render("Quick Start:") + `
  1. Declare packages in config.yml under PICASSO_<NAME>_DPKG keys
  2. Run: picasso enable-private-packages
  3. Rebuild the openedx image with Tutor

` + SubtitleStyle.Render("Examples:") + `
  picasso enable-private-packages    Clone and register all declared packages
  picasso packages list              List declared packages without touching disk
  picasso config show                Show current configuration`,
	}
)

func init() {
	cobra.OnInitialize(initRootConfig)

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&tutorRoot, "root", "", "Tutor project root (default is $TUTOR_ROOT or ~/.local/share/tutor)")

	// Add subcommands
	rootCmd.AddCommand(enableCmd)
	rootCmd.AddCommand(packagesCmd)
	rootCmd.AddCommand(configCmd)
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	// Use fang.Execute for enhanced Cobra styling
	// Pass version via fang.WithVersion() since fang overrides rootCmd.Version
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(1)
	}
}

// initRootConfig reads in config file and ENV variables if set.
func initRootConfig() {
	cfg, err := config.Load()
	if err != nil {
		// Always surface config loading errors to the user
		fmt.Fprintln(os.Stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, verbose))
	}
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	appConfig = cfg

	// Apply verbose from config if not set via flag
	if !verbose {
		verbose = cfg.UI.Verbose
	}
}

// newLogger returns the logger used by materialization commands. Output goes
// to stderr so that stdout stays reserved for command results.
func newLogger() *log.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		ReportTimestamp: false,
	})
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}

// renderIssueCard writes the styled catalog entry for id to w. Rendering
// failures fall back to plain text so the underlying error is never masked
// by a presentation problem.
func renderIssueCard(w io.Writer, id issue.Id) {
	iss := issue.Get(id)
	if iss == nil {
		return
	}
	rendered, err := iss.Render("dark")
	if err != nil {
		fmt.Fprintln(w, string(iss.MarkdownMsg()))
		return
	}
	fmt.Fprint(w, rendered)
}
