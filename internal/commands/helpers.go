package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/simonhull/firebird-suite/plume/internal/config"
	"github.com/simonhull/firebird-suite/plume/internal/generator"
	"github.com/simonhull/firebird-suite/plume/internal/input"
	"github.com/simonhull/firebird-suite/plume/internal/logger"
	"github.com/simonhull/firebird-suite/plume/internal/output"
)

// genFlags are the flags every generator command shares.
type genFlags struct {
	dir         string
	dryRun      bool
	skip        bool
	diff        bool
	answers     string
	saveAnswers string
}

func (f *genFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.dir, "dir", "", "Output root (default output.dir from plume.yml)")
	cmd.Flags().BoolVar(&f.dryRun, "dry-run", false, "Show what would be written without writing")
	cmd.Flags().BoolVar(&f.skip, "skip", false, "Keep existing files that differ")
	cmd.Flags().BoolVar(&f.diff, "diff", false, "Show a diff and ask before replacing existing files")
	cmd.Flags().StringVar(&f.answers, "answers", "", "YAML file with answers to the prompts")
	cmd.Flags().StringVar(&f.saveAnswers, "save-answers", "", "Write the answers given to this YAML file")
}

// run is the shared state of one generator invocation.
type run struct {
	cmd     *cobra.Command
	flags   *genFlags
	cfg     *config.Config
	log     logger.Logger
	session *input.Session
	dir     string
}

// setup loads configuration, builds the run logger and opens the prompt
// session on the command's streams.
func setup(cmd *cobra.Command, f *genFlags) (*run, error) {
	if f.skip && f.diff {
		return nil, &generator.InputError{Field: "flags", Message: "--skip and --diff are mutually exclusive"}
	}

	configPath, _ := cmd.Flags().GetString("config")
	verbose, _ := cmd.Flags().GetBool("verbose")

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	level := logger.ParseLevel(cfg.Log.Level)
	if verbose {
		level = logger.LevelDebug
	}
	log := logger.NewRunLogger(level, cmd.ErrOrStderr()).WithFields(logger.F("command", cmd.Name()))

	var preset input.Answers
	if f.answers != "" {
		if preset, err = input.LoadAnswers(f.answers); err != nil {
			return nil, err
		}
		log.Debug("loaded answers", logger.F("path", f.answers), logger.F("count", len(preset)))
	}

	dir := f.dir
	if dir == "" {
		dir = cfg.Output.Dir
	}

	return &run{
		cmd:     cmd,
		flags:   f,
		cfg:     cfg,
		log:     log,
		session: input.NewSession(input.NewLinePrompter(cmd.InOrStdin(), cmd.OutOrStdout()), preset),
		dir:     dir,
	}, nil
}

func (r *run) executeOptions() (generator.ExecuteOptions, error) {
	resolver, err := generator.NewResolver(r.cmd.OutOrStdout(), r.flags.skip, r.flags.diff)
	if err != nil {
		return generator.ExecuteOptions{}, err
	}
	return generator.ExecuteOptions{
		DryRun:   r.flags.dryRun,
		Resolver: resolver,
		Writer:   r.cmd.OutOrStdout(),
		Logger:   r.log,
	}, nil
}

// execute writes ops in order. Files written before a failure stay.
func (r *run) execute(ops []generator.Operation) error {
	opts, err := r.executeOptions()
	if err != nil {
		return err
	}
	return generator.Execute(context.Background(), ops, opts)
}

// executeAtomic writes ops as one transaction.
func (r *run) executeAtomic(ops []*generator.WriteFileOp) error {
	opts, err := r.executeOptions()
	if err != nil {
		return err
	}
	return generator.ExecuteAtomic(context.Background(), ops, opts)
}

// saveAnswers writes the session's answers when --save-answers is set.
func (r *run) saveAnswers() error {
	if r.flags.saveAnswers == "" {
		return nil
	}
	if err := input.SaveAnswers(r.flags.saveAnswers, r.session.Answers()); err != nil {
		return err
	}
	output.Verbose("Saved answers to " + r.flags.saveAnswers)
	return nil
}

// finish logs and syncs the run logger, translating cancellation into a
// plain message.
func (r *run) finish(err error) error {
	defer r.log.Sync() //nolint:errcheck
	switch {
	case err == nil:
		return nil
	case errors.Is(err, generator.ErrCancelled):
		output.Warn("Cancelled, remaining files were not written")
		return err
	case errors.Is(err, generator.ErrInput):
		r.log.Debug("rejected input", logger.Err(err))
		return err
	default:
		r.log.Error("generation failed", logger.Err(err))
		return err
	}
}
