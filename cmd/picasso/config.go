// SPDX-License-Identifier: MPL-2.0

package main

import (
	"fmt"
	"os"

	"picasso-cli/internal/config"
	"picasso-cli/internal/issue"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage picasso configuration",
	Long: `Manage picasso configuration.

Configuration is stored in:
  - Linux: ~/.config/picasso/config.yaml
  - macOS: ~/Library/Application Support/picasso/config.yaml
  - Windows: %APPDATA%\picasso\config.yaml

Every setting can also be supplied through PICASSO_CLI_* environment
variables, e.g. PICASSO_CLI_TUTOR_BINARY.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func init() {
	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig()
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfigPath()
		},
	})
}

func showConfig() error {
	cfg, err := config.Load()
	if err != nil {
		renderIssueCard(os.Stderr, issue.ConfigLoadFailedId)
		return err
	}

	fmt.Println(TitleStyle.Render("Current Configuration"))
	fmt.Println()

	cfgPath, pathErr := config.ConfigFilePath()
	if pathErr == nil && fileExistsCheck(cfgPath) {
		fmt.Printf("%s: %s\n", CmdStyle.Render("Config file"), cfgPath)
	} else {
		fmt.Printf("%s: %s\n", CmdStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}
	fmt.Println()

	fmt.Printf("%s: %s\n", CmdStyle.Render("git_binary"), SuccessStyle.Render(cfg.GitBinary))
	fmt.Printf("%s: %s\n", CmdStyle.Render("tutor_binary"), SuccessStyle.Render(cfg.TutorBinary))

	fmt.Println()
	fmt.Printf("%s:\n", CmdStyle.Render("ui"))
	fmt.Printf("  verbose: %s\n", SuccessStyle.Render(fmt.Sprintf("%v", cfg.UI.Verbose)))

	root, rootErr := config.TutorRoot(tutorRoot)
	if rootErr == nil {
		fmt.Println()
		fmt.Printf("%s: %s\n", CmdStyle.Render("Tutor root"), SuccessStyle.Render(root))
	}

	return nil
}

func showConfigPath() error {
	cfgDir, err := config.ConfigDir()
	if err != nil {
		return err
	}

	cfgPath, err := config.ConfigFilePath()
	if err != nil {
		return err
	}

	fmt.Printf("Config directory: %s\n", cfgDir)
	fmt.Printf("Config file: %s\n", cfgPath)
	return nil
}

// fileExistsCheck checks if a file exists and is not a directory.
func fileExistsCheck(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}
