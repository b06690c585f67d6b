package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/simonhull/firebird-suite/plume/internal/generator"
	"github.com/simonhull/firebird-suite/plume/internal/generators/email"
	"github.com/simonhull/firebird-suite/plume/internal/logger"
	"github.com/simonhull/firebird-suite/plume/internal/output"
)

// EmailCmd creates and returns the 'email' command
func EmailCmd() *cobra.Command {
	var flags genFlags

	cmd := &cobra.Command{
		Use:   "email",
		Short: "Generate an HTML email template",
		Long: `Generate a table-based, inline-styled HTML email at <dir>/emails/<name>.html.

Styles: minimal, branded (default), card. Merge tokens such as {{first_name}}
are kept as written.

Examples:
  plume email
  plume email --answers welcome.yml --dry-run`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := setup(cmd, &flags)
			if err != nil {
				return err
			}
			return r.finish(runEmail(r))
		},
	}

	flags.register(cmd)
	return cmd
}

func runEmail(r *run) error {
	base := email.Options{
		DefaultColor: r.cfg.Email.BrandColor,
		Company:      r.cfg.Email.Company,
		Font:         r.cfg.Email.Font,
		Dir:          r.dir,
	}

	opts, err := email.Ask(r.session, base)
	if err != nil {
		return err
	}
	if err := r.saveAnswers(); err != nil {
		return err
	}

	r.log.Info("generating email", logger.F("name", opts.Name), logger.F("style", opts.Style))

	ops, err := email.New(r.log).Generate(opts)
	if err != nil {
		return err
	}
	if err := r.execute(ops); err != nil {
		return err
	}

	if r.flags.dryRun {
		return nil
	}
	output.Success("Generated email " + email.Path(r.dir, opts.Name))
	if w, ok := ops[0].(*generator.WriteFileOp); ok {
		if tokens := email.Placeholders(string(w.Content)); len(tokens) > 0 {
			output.Info(fmt.Sprintf("Merge tokens: %s", strings.Join(tokens, ", ")))
		}
	}
	return nil
}
