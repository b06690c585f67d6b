package generator

import (
	"errors"
	"fmt"
	"os"
)

// Transaction represents a set of file operations that can be committed or rolled back
type Transaction struct {
	operations []fileOperation
	applied    []snapshot
	committed  bool
}

// fileOperation represents a single file write operation
type fileOperation struct {
	path    string
	content []byte
	mode    os.FileMode
}

// snapshot is the state of a path before the transaction touched it.
type snapshot struct {
	path    string
	existed bool
	content []byte
	mode    os.FileMode
}

// NewTransaction creates a new file operation transaction
func NewTransaction() *Transaction {
	return &Transaction{
		operations: make([]fileOperation, 0),
	}
}

// AddFile stages a file write operation (doesn't write yet)
func (t *Transaction) AddFile(path string, content []byte, mode os.FileMode) {
	t.operations = append(t.operations, fileOperation{
		path:    path,
		content: content,
		mode:    mode,
	})
}

// Len returns the number of staged writes.
func (t *Transaction) Len() int {
	return len(t.operations)
}

// Commit writes all staged files to disk.
// If any write fails, every file already written is restored: new files are
// deleted and replaced files get their previous content back.
func (t *Transaction) Commit() error {
	if t.committed {
		return fmt.Errorf("transaction already committed")
	}

	for _, op := range t.operations {
		snap, err := take(op.path)
		if err != nil {
			t.rollback()
			return err
		}

		if err := WriteAtomic(op.path, op.content, op.mode); err != nil {
			t.rollback()
			return err
		}
		t.applied = append(t.applied, snap)
	}

	t.committed = true
	t.applied = nil
	return nil
}

// Rollback restores any files written by a failed or abandoned Commit
// (for use in defer). It is a no-op after a successful Commit.
func (t *Transaction) Rollback() {
	if !t.committed {
		t.rollback()
	}
}

// rollback restores snapshots in reverse order, best effort.
func (t *Transaction) rollback() {
	for i := len(t.applied) - 1; i >= 0; i-- {
		s := t.applied[i]
		if s.existed {
			_ = WriteAtomic(s.path, s.content, s.mode)
		} else {
			_ = os.Remove(s.path)
		}
	}
	t.applied = nil
}

func take(path string) (snapshot, error) {
	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return snapshot{path: path}, nil
	}
	if err != nil {
		return snapshot{}, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return snapshot{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return snapshot{path: path, existed: true, content: content, mode: info.Mode().Perm()}, nil
}
