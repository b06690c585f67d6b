package generator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/simonhull/firebird-suite/plume/internal/logger"
)

// ErrCancelled is returned when the user cancels at a conflict prompt.
var ErrCancelled = errors.New("generation cancelled")

// ExecuteOptions configures execution behavior
type ExecuteOptions struct {
	DryRun bool

	// Resolver decides what happens to files that already exist with
	// different content. Nil overwrites unconditionally.
	Resolver *Resolver

	Writer io.Writer     // Where to write output (defaults to os.Stdout)
	Logger logger.Logger // Diagnostics (defaults to a silent logger)
}

func (o *ExecuteOptions) defaults() {
	if o.Writer == nil {
		o.Writer = os.Stdout
	}
	if o.Logger == nil {
		o.Logger = logger.NewSilentLogger()
	}
}

// Execute validates every operation, then runs them in order. Files written
// before a failing operation are left in place.
func Execute(ctx context.Context, ops []Operation, opts ExecuteOptions) error {
	opts.defaults()

	// Phase 1: Validate all operations
	if err := validateAll(ctx, ops); err != nil {
		return err
	}

	// Phase 2: Execute or report
	for _, op := range ops {
		if opts.DryRun {
			fmt.Fprintf(opts.Writer, "✓ [DRY RUN] %s\n", op.Description())
			continue
		}

		proceed, err := resolve(op, opts)
		if err != nil {
			return err
		}
		if !proceed {
			continue
		}

		desc := op.Description()
		if err := op.Execute(ctx); err != nil {
			opts.Logger.Error("operation failed", logger.F("op", desc), logger.Err(err))
			return fmt.Errorf("execution failed: %w", err)
		}
		opts.Logger.Debug("operation done", logger.F("op", desc))
		fmt.Fprintf(opts.Writer, "✓ %s\n", desc)
	}

	return nil
}

// ExecuteAtomic validates every operation and commits the file writes as a
// single Transaction: either all files land or none change.
func ExecuteAtomic(ctx context.Context, ops []*WriteFileOp, opts ExecuteOptions) error {
	opts.defaults()

	generic := make([]Operation, len(ops))
	for i, op := range ops {
		generic[i] = op
	}
	if err := validateAll(ctx, generic); err != nil {
		return err
	}

	tx := NewTransaction()
	var descs []string
	for _, op := range ops {
		if opts.DryRun {
			fmt.Fprintf(opts.Writer, "✓ [DRY RUN] %s\n", op.Description())
			continue
		}
		proceed, err := resolve(op, opts)
		if err != nil {
			return err
		}
		if !proceed {
			continue
		}
		descs = append(descs, op.Description())
		tx.AddFile(op.Path, op.Content, op.Mode)
	}
	if opts.DryRun {
		return nil
	}

	if err := tx.Commit(); err != nil {
		opts.Logger.Error("transaction rolled back", logger.Err(err))
		return fmt.Errorf("execution failed: %w", err)
	}
	for _, d := range descs {
		fmt.Fprintf(opts.Writer, "✓ %s\n", d)
	}
	return nil
}

func validateAll(ctx context.Context, ops []Operation) error {
	for _, op := range ops {
		if err := op.Validate(ctx); err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
	}
	return nil
}

// resolve consults the resolver for writes that would replace different
// content. It reports whether the operation should run.
func resolve(op Operation, opts ExecuteOptions) (bool, error) {
	w, ok := op.(*WriteFileOp)
	if !ok || opts.Resolver == nil {
		return true, nil
	}

	existing, err := os.ReadFile(w.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return true, nil
		}
		return false, fmt.Errorf("failed to read existing file %s: %w", w.Path, err)
	}
	if bytes.Equal(existing, w.Content) {
		fmt.Fprintf(opts.Writer, "✓ Unchanged %s\n", w.Path)
		return false, nil
	}

	for {
		resolution, err := opts.Resolver.ResolveConflict(w.Path, existing, w.Content)
		if err != nil {
			return false, err
		}
		switch resolution {
		case Overwrite:
			return true, nil
		case Skip:
			opts.Logger.Info("kept existing file", logger.F("path", w.Path))
			fmt.Fprintf(opts.Writer, "⊘ Skip %s (kept existing)\n", w.Path)
			return false, nil
		case ShowDiff:
			fmt.Fprintln(opts.Writer, opts.Resolver.Diff(w.Path, existing, w.Content))
		default:
			return false, ErrCancelled
		}
	}
}
