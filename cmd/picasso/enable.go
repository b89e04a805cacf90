// SPDX-License-Identifier: MPL-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"picasso-cli/internal/config"
	"picasso-cli/internal/discovery"
	"picasso-cli/internal/hostcli"
	"picasso-cli/internal/issue"
	"picasso-cli/internal/materialize"
	"picasso-cli/internal/tutorconf"

	"github.com/spf13/cobra"
)

var (
	// dryRun makes enable-private-packages describe side effects instead of
	// performing them.
	dryRun bool

	enableCmd = &cobra.Command{
		Use:   "enable-private-packages",
		Short: "Clone and register all declared private packages",
		Long: `Clone and register all declared private packages.

Reads PICASSO_*_DPKG declarations from the Tutor project's config.yml,
clones each repository at the declared version into
env/build/openedx/requirements/, and registers the checkout so the next
image build picks it up. Tutor versions before 17.0.0 get an entry in
private.txt; newer versions get 'tutor mounts add'.

Re-running is safe: stale checkouts are replaced and registrations are
not duplicated.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEnablePrivatePackages(cmd.Context())
		},
	}
)

func init() {
	enableCmd.Flags().BoolVar(&dryRun, "dry-run", false, "describe actions without touching disk or running git/tutor")
}

func runEnablePrivatePackages(ctx context.Context) error {
	root, err := config.TutorRoot(tutorRoot)
	if err != nil {
		return err
	}

	tconf, err := tutorconf.Load(root)
	if err != nil {
		if errors.Is(err, tutorconf.ErrConfigNotFound) {
			renderIssueCard(os.Stderr, issue.TutorConfigNotFoundId)
		}
		return err
	}

	pkgs := discovery.Packages(tconf)
	logger := newLogger()
	logger.Debug("discovered private packages", "count", len(pkgs), "root", root)

	git := hostcli.NewGitCLI(hostcli.WithBinary(appConfig.GitBinary))

	var registrar materialize.Registrar
	if len(pkgs) > 0 {
		if !git.Available() {
			renderIssueCard(os.Stderr, issue.GitNotFoundId)
			return fmt.Errorf("git binary %q not found", appConfig.GitBinary)
		}

		tutor := hostcli.NewTutorCLI(hostcli.WithBinary(appConfig.TutorBinary))
		if !tutor.Available() {
			renderIssueCard(os.Stderr, issue.TutorNotFoundId)
			return fmt.Errorf("tutor binary %q not found", appConfig.TutorBinary)
		}

		version, verErr := tutor.Version(ctx)
		if verErr != nil {
			return verErr
		}
		logger.Debug("resolved tutor version", "version", version)

		registrar, err = materialize.SelectRegistrar(version, materialize.RequirementsDir(root), tutor)
		if err != nil {
			return err
		}
	}

	m := materialize.New(root, git, registrar,
		materialize.WithLogger(logger),
		materialize.WithDryRun(dryRun),
	)
	if err := m.Run(ctx, pkgs); err != nil {
		renderIssueCard(os.Stderr, issueForMaterializeError(err))
		fmt.Fprintln(os.Stderr, enableFailureSummary())
		return err
	}

	if len(pkgs) > 0 {
		if dryRun {
			fmt.Println(dryRunSummary(len(pkgs)))
		} else {
			fmt.Println(enableSuccessSummary(len(pkgs)))
		}
	}
	return nil
}

// enableSuccessSummary is the final line printed after a successful run.
func enableSuccessSummary(count int) string {
	return fmt.Sprintf("%s Enabled %d private package(s)", SuccessStyle.Render("✓"), count)
}

// enableFailureSummary is the final line printed to stderr after a failed run.
func enableFailureSummary() string {
	return ErrorStyle.Render("✗") + " enable-private-packages failed"
}

// dryRunSummary is the final line printed after a dry run.
func dryRunSummary(count int) string {
	return VerboseStyle.Render(fmt.Sprintf("dry run: %d private package(s) would be enabled, nothing was changed", count))
}

// issueForMaterializeError maps a materialization failure to its catalog
// entry. Unknown failures get no card; the error itself is still surfaced.
func issueForMaterializeError(err error) issue.Id {
	if errors.Is(err, discovery.ErrMissingField) {
		return issue.MalformedPackageId
	}
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		switch ae.Operation {
		case "clone private package":
			return issue.CloneFailedId
		case "register private package":
			return issue.MountRegistrationFailedId
		}
	}
	return 0
}
