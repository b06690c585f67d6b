package commands

import (
	"github.com/spf13/cobra"

	"github.com/simonhull/firebird-suite/plume/internal/generators/function"
	"github.com/simonhull/firebird-suite/plume/internal/logger"
	"github.com/simonhull/firebird-suite/plume/internal/output"
)

// FunctionCmd creates and returns the 'function' command
func FunctionCmd() *cobra.Command {
	var flags genFlags

	cmd := &cobra.Command{
		Use:   "function",
		Short: "Scaffold a Firebase Cloud Function",
		Long: `Scaffold a Cloud Function under <dir>/functions/src/<name>/:
  index.js        the handler, with payload validation and auth checks
  validate.js     required field validation
  <name>.test.js  Jest tests for the validation

Triggers: https, callable (default), firestore. The files are written
together: if one cannot be written, none are.

Examples:
  plume function
  plume function --dir backend --answers send-welcome.yml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := setup(cmd, &flags)
			if err != nil {
				return err
			}
			return r.finish(runFunction(r))
		},
	}

	flags.register(cmd)
	return cmd
}

func runFunction(r *run) error {
	base := function.Options{
		Region:  r.cfg.Functions.Region,
		Runtime: r.cfg.Functions.Runtime,
		Dir:     r.dir,
	}

	opts, err := function.Ask(r.session, base)
	if err != nil {
		return err
	}
	if err := r.saveAnswers(); err != nil {
		return err
	}

	r.log.Info("generating function",
		logger.F("name", opts.Name),
		logger.F("trigger", opts.Trigger),
		logger.F("region", opts.Region))

	ops, err := function.New(r.log).Generate(opts)
	if err != nil {
		return err
	}
	if err := r.executeAtomic(ops); err != nil {
		return err
	}

	if r.flags.dryRun {
		return nil
	}
	output.Success("Generated function " + function.ExportName(opts.Name))
	output.Info("Add this line to functions/index.js:")
	output.Step(function.ExportLine(opts.Name))
	return nil
}
