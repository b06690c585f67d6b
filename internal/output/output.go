// Package output provides styled terminal output for the plume generators.
//
// Every command reports through this package so the look stays consistent.
// Functions use lipgloss for styling but abstract away the details from
// callers. Output goes to stdout unless redirected with SetWriter; the
// command-boundary Failure line goes to stderr unless redirected with
// SetErrorWriter.
package output

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("green")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("red")).Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("yellow"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("cyan"))
	stepStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	mu          sync.Mutex
	out         io.Writer = os.Stdout
	errOut      io.Writer = os.Stderr
	verboseMode bool
)

// SetVerbose enables or disables verbose output for debugging.
// This should be called by the CLI when the --verbose flag is set.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verboseMode = v
}

// SetWriter redirects all output to w and returns the previous writer.
// A nil w restores stdout.
func SetWriter(w io.Writer) io.Writer {
	mu.Lock()
	defer mu.Unlock()
	prev := out
	if w == nil {
		w = os.Stdout
	}
	out = w
	return prev
}

// SetErrorWriter redirects Failure to w and returns the previous writer.
// A nil w restores stderr.
func SetErrorWriter(w io.Writer) io.Writer {
	mu.Lock()
	defer mu.Unlock()
	prev := errOut
	if w == nil {
		w = os.Stderr
	}
	errOut = w
	return prev
}

// Writer returns the current output writer.
func Writer() io.Writer {
	mu.Lock()
	defer mu.Unlock()
	return out
}

func emit(s string) {
	mu.Lock()
	defer mu.Unlock()
	fmt.Fprintln(out, s)
}

// Success prints a success message with 🔥 emoji and green color.
// Use this for completed operations.
//
// Example:
//
//	output.Success("Generated store: shop")
func Success(msg string) {
	emit(successStyle.Render("🔥 " + msg))
}

// Error prints an error message with ❌ emoji and red color.
// Use this for failures that need user attention.
//
// Example:
//
//	output.Error("Error: at least one collection is required")
func Error(msg string) {
	emit(errorStyle.Render("❌ " + msg))
}

// Failure prints err to the error writer in the one-line form used at the
// command boundary: "❌ Error: <message>".
func Failure(err error) {
	mu.Lock()
	defer mu.Unlock()
	fmt.Fprintln(errOut, errorStyle.Render("❌ Error: "+err.Error()))
}

// Warn prints a warning with ⚠️ emoji and yellow color.
func Warn(msg string) {
	emit(warnStyle.Render("⚠️  " + msg))
}

// Info prints an informational message with ℹ️ emoji and cyan color.
// Use this for status updates or explanations.
//
// Example:
//
//	output.Info("Next steps:")
func Info(msg string) {
	emit(infoStyle.Render("ℹ️  " + msg))
}

// Step prints an indented step message in gray.
// Use this for actionable next steps or sub-items.
//
// Example:
//
//	output.Step("import { useShopStore } from '@/stores/shop'")
func Step(msg string) {
	emit(stepStyle.Render("   " + msg))
}

// Verbose prints a debug message with 🔍 emoji only if verbose mode is enabled.
// Use this for detailed debugging information.
//
// Example:
//
//	output.Verbose("Auth collections: users")
func Verbose(msg string) {
	mu.Lock()
	v := verboseMode
	mu.Unlock()
	if v {
		emit(stepStyle.Render("🔍 " + msg))
	}
}
