// SPDX-License-Identifier: MPL-2.0

package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"picasso-cli/internal/config"
	"picasso-cli/internal/discovery"
	"picasso-cli/internal/issue"
	"picasso-cli/internal/tutorconf"

	"github.com/spf13/cobra"
)

var (
	packagesCmd = &cobra.Command{
		Use:   "packages",
		Short: "Inspect private package declarations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	packagesListCmd = &cobra.Command{
		Use:   "list",
		Short: "List declared private packages without touching disk",
		Long: `List declared private packages without touching disk.

Shows every PICASSO_*_DPKG entry found in the Tutor project's config.yml,
in declaration order, including incomplete ones that enable-private-packages
would reject.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listPackages()
		},
	}
)

func init() {
	packagesCmd.AddCommand(packagesListCmd)
}

func listPackages() error {
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
	if len(pkgs) == 0 {
		fmt.Println(SubtitleStyle.Render("No private packages declared"))
		return nil
	}

	fmt.Println(TitleStyle.Render("Private Packages"))
	fmt.Println()

	for _, pkg := range pkgs {
		fmt.Println(CmdStyle.Render(pkg.Key))
		fmt.Printf("  name:    %s\n", valueOrPlaceholder(pkg.Name))
		fmt.Printf("  repo:    %s\n", valueOrPlaceholder(pkg.Repo))
		fmt.Printf("  version: %s\n", valueOrPlaceholder(pkg.Version))
		if missing := pkg.MissingFields(); len(missing) > 0 {
			fmt.Printf("  %s\n", WarningStyle.Render("incomplete: missing "+strings.Join(missing, ", ")))
		}
		fmt.Println()
	}

	fmt.Printf("%s\n", SubtitleStyle.Render(fmt.Sprintf("%d package(s) declared in %s", len(pkgs), root)))
	return nil
}

// valueOrPlaceholder styles an empty declaration field as a visible gap.
func valueOrPlaceholder(v string) string {
	if v == "" {
		return SubtitleStyle.Render("(not set)")
	}
	return SuccessStyle.Render(v)
}
