// Package generator turns composed artifacts into files on disk.
//
// # Features
//
//   - Template rendering with naming helper functions
//   - Two-phase execution: validate every operation, then write
//   - Atomic single-file writes (temp file + rename)
//   - Conflict resolution (--skip, --diff with an interactive menu)
//   - Transactions for all-or-nothing multi-file scaffolds
//
// # Execution
//
// Generators return a slice of Operations; Execute validates all of them
// before writing any, so invalid input never leaves a partial artifact:
//
//	err := generator.Execute(ctx, ops, generator.ExecuteOptions{
//	    DryRun:   dryRun,
//	    Resolver: resolver,
//	})
//
// Files written before a failing write are kept. Use ExecuteAtomic when a
// scaffold must land completely or not at all.
//
// # Transactions
//
//	tx := generator.NewTransaction()
//	tx.AddFile("functions/src/notify/index.js", content1, 0644)
//	tx.AddFile("functions/src/notify/validate.js", content2, 0644)
//
//	if err := tx.Commit(); err != nil {
//	    // Every written file is restored to its previous state
//	    return err
//	}
package generator
