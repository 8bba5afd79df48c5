// Package cli implements the labelsmith command-line interface.
//
// This package provides commands for generating printable asset label
// sheets from a Homebox inventory, managing the stored login session, and
// inspecting sheet templates. The CLI is built using cobra and supports
// verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - generate: Resolve assets and render label sheets
//   - login / logout / whoami: Manage the Homebox session
//   - template: Validate and inspect sheet template files
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context so every command shares one configured
// instance.
package cli

import (
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/labelsmith/labelsmith/pkg/buildinfo"
)

// Execute runs the labelsmith CLI and returns an error if any command
// fails. The context carries cancellation from the caller's signal
// handling.
func Execute(ctx context.Context) error {
	var verbose bool

	root := &cobra.Command{
		Use:          "labelsmith",
		Short:        "Labelsmith prints QR-coded asset labels from a Homebox inventory",
		Long:         `Labelsmith resolves asset IDs against a Homebox instance and lays the items out on printable label sheets, with a scannable code linking each label back to its item.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(os.Stderr, level)))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newGenerateCmd())
	root.AddCommand(newLoginCmd())
	root.AddCommand(newLogoutCmd())
	root.AddCommand(newWhoamiCmd())
	root.AddCommand(newTemplateCmd())
	root.AddCommand(newCompletionCmd())

	return root.ExecuteContext(ctx)
}
