package generator

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/pmezard/go-difflib/difflib"
	"golang.org/x/term"
)

var (
	addStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("green"))
	delStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("red"))
	hunkStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("cyan"))
	fileStyle = lipgloss.NewStyle().Bold(true)
)

// DiffOptions configures how diffs are generated and displayed.
// All fields are optional with sensible defaults.
type DiffOptions struct {
	// ContextLines is the number of unchanged lines to show around changes.
	// Default: 3
	ContextLines int

	// Color styles added, removed and hunk header lines.
	Color bool
}

// UnifiedDiff returns a unified diff between the existing and generated
// content of path. Identical inputs produce an empty string.
func UnifiedDiff(path string, old, newer []byte, opts *DiffOptions) string {
	if opts == nil {
		opts = &DiffOptions{ContextLines: 3}
	}
	if opts.ContextLines <= 0 {
		opts.ContextLines = 3
	}

	if bytes.Equal(old, newer) {
		return ""
	}
	if isBinary(old) || isBinary(newer) {
		return fmt.Sprintf("Binary files a/%s and b/%s differ\n", path, path)
	}

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(old)),
		B:        difflib.SplitLines(string(newer)),
		FromFile: "a/" + path,
		ToFile:   "b/" + path,
		Context:  opts.ContextLines,
	})
	if err != nil {
		return fmt.Sprintf("failed to diff %s: %v\n", path, err)
	}

	if opts.Color {
		return colorize(diff)
	}
	return diff
}

func colorize(diff string) string {
	lines := strings.Split(diff, "\n")
	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			lines[i] = fileStyle.Render(line)
		case strings.HasPrefix(line, "@@"):
			lines[i] = hunkStyle.Render(line)
		case strings.HasPrefix(line, "+"):
			lines[i] = addStyle.Render(line)
		case strings.HasPrefix(line, "-"):
			lines[i] = delStyle.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}

// isBinary checks the first 8KB for NUL bytes or invalid UTF-8.
func isBinary(data []byte) bool {
	if len(data) > 8000 {
		data = data[:8000]
	}
	return bytes.IndexByte(data, 0) >= 0 || !utf8.Valid(data)
}

// terminalHeight returns the stdout height, or 0 when not a terminal.
func terminalHeight() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return 0
	}
	_, h, err := term.GetSize(fd)
	if err != nil {
		return 0
	}
	return h
}
