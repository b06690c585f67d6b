package commands

import (
	"github.com/spf13/cobra"

	"github.com/simonhull/firebird-suite/plume"
	"github.com/simonhull/firebird-suite/plume/internal/output"
)

// RootCmd creates and returns the root command for the plume CLI
func RootCmd() *cobra.Command {
	var verbose bool
	var configPath string

	cmd := &cobra.Command{
		Use:   "plume",
		Short: "Generators for Firebase-backed Vue front ends",
		Long: `Plume asks a few questions and writes the boilerplate for you.

• store     - reactive store with Firestore CRUD actions, auth flows and activity logging
• email     - inline-styled HTML email template
• function  - Firebase Cloud Function with validation and tests

Settings are read from plume.yml in the working directory (or --config);
PLUME_* environment variables override them.`,
		Version:       plume.Version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			output.SetVerbose(verbose)
			output.SetWriter(cmd.OutOrStdout())
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output for debugging")
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to plume.yml")

	return cmd
}

// Run executes app and reports a failure on the app's error stream. It
// returns the process exit code.
func Run(app *cobra.Command) int {
	prev := output.SetErrorWriter(app.ErrOrStderr())
	defer output.SetErrorWriter(prev)

	if err := app.Execute(); err != nil {
		output.Failure(err)
		return 1
	}
	return 0
}

// NewApp builds the full command tree.
func NewApp() *cobra.Command {
	root := RootCmd()
	root.AddCommand(StoreCmd())
	root.AddCommand(EmailCmd())
	root.AddCommand(FunctionCmd())
	return root
}
