package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/simonhull/firebird-suite/plume/internal/classify"
	"github.com/simonhull/firebird-suite/plume/internal/generators/store"
	"github.com/simonhull/firebird-suite/plume/internal/logger"
	"github.com/simonhull/firebird-suite/plume/internal/output"
)

// StoreCmd creates and returns the 'store' command
func StoreCmd() *cobra.Command {
	var flags genFlags

	cmd := &cobra.Command{
		Use:   "store",
		Short: "Generate a Firestore-backed store",
		Long: `Generate a reactive store for one or more Firestore collections.

Writes under <dir>/stores/<store>/:
  state.js                          shared reactive state
  useFirestoreCollectionActions.js  CRUD action factory
  actions/<collection>.js           one action module per collection
  index.js                          the use<Store>Store() composable
  activityLogger.js                 with activity logging enabled
  STORE_GUIDE.md                    usage guide

Collections named like users, admins or members (see auth.collections in
plume.yml) get auth flows and role management.

Examples:
  plume store
  plume store --dir src --dry-run
  plume store --answers shop.yml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := setup(cmd, &flags)
			if err != nil {
				return err
			}
			return r.finish(runStore(r))
		},
	}

	flags.register(cmd)
	return cmd
}

func runStore(r *run) error {
	base := store.Options{
		Dir:            r.dir,
		Extension:      r.cfg.Output.Extension,
		FirebaseImport: r.cfg.Firebase.Import,
		PageSize:       r.cfg.Store.PageSize,
		Messages:       r.cfg.Auth.Messages,
		IsAuth:         classify.Nouns(r.cfg.Auth.Collections...),
	}

	opts, err := store.Ask(r.session, base)
	if err != nil {
		return err
	}
	if err := r.saveAnswers(); err != nil {
		return err
	}

	output.Verbose(fmt.Sprintf("Generating store %s: %s (dry-run=%v)",
		opts.Store, strings.Join(opts.Collections, ", "), r.flags.dryRun))
	r.log.Info("generating store",
		logger.F("store", opts.Store),
		logger.F("collections", opts.Collections),
		logger.F("logging", opts.Logging))

	ops, err := store.New(r.log).Generate(opts)
	if err != nil {
		return err
	}
	if err := r.execute(ops); err != nil {
		return err
	}

	if !r.flags.dryRun {
		output.Success(fmt.Sprintf("Generated store %s (%d files)", opts.Store, len(ops)))
		output.Info("Next steps:")
		output.Step(fmt.Sprintf("import { %s } from '@/stores/%s'", store.StoreHook(opts.Store), opts.Store))
		output.Step("See STORE_GUIDE.md in the store directory for every action")
	}
	return nil
}
