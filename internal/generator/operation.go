package generator

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Operation represents a file system operation that can be validated and executed.
//
// Validate checks if the operation would succeed without executing it and
// must not touch the file system.
//
// Execute performs the actual operation. This should only be called after Validate succeeds.
//
// Description returns a human-readable description for output (e.g., "Create stores/shop/index.js (234 bytes)").
type Operation interface {
	Validate(ctx context.Context) error
	Execute(ctx context.Context) error
	Description() string
}

// WriteFileOp writes one composed artifact.
//
// Validation behavior:
//   - Rejects an empty path and nil content (empty is OK)
//   - Fails if the context is already done
//
// Execution behavior:
//   - Creates parent directories if needed
//   - Replaces any existing file atomically with the specified Mode
type WriteFileOp struct {
	Path    string      // File path to write
	Content []byte      // File content (can be empty, must not be nil)
	Mode    fs.FileMode // File permissions (e.g., 0644)
}

// NewWriteFile creates a write of text content normalized with TextFile.
func NewWriteFile(path, content string) *WriteFileOp {
	return &WriteFileOp{Path: path, Content: TextFile(content), Mode: 0644}
}

func (op *WriteFileOp) Validate(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if op.Path == "" {
		return fmt.Errorf("write operation has no path")
	}
	if op.Content == nil {
		return fmt.Errorf("content is nil for file: %s", op.Path)
	}
	return nil
}

func (op *WriteFileOp) Execute(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return WriteAtomic(op.Path, op.Content, op.Mode)
}

func (op *WriteFileOp) Description() string {
	verb := "Create"
	if _, err := os.Stat(op.Path); err == nil {
		verb = "Overwrite"
	}
	return fmt.Sprintf("%s %s (%d bytes)", verb, op.Path, len(op.Content))
}

// TextFile trims surrounding whitespace and terminates the text with exactly
// one newline.
func TextFile(content string) []byte {
	return []byte(strings.TrimSpace(content) + "\n")
}

// WriteAtomic writes data to a temporary file next to path and renames it
// into place, so readers never observe a partially written file. Parent
// directories are created as needed.
func WriteAtomic(path string, data []byte, mode fs.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("cannot create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to write file %s: %w", path, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write file %s: %w", path, err)
	}
	if err := tmp.Chmod(mode); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write file %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write file %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to write file %s: %w", path, err)
	}
	return nil
}
