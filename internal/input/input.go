package input

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var (
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("cyan")).Bold(true)
)

// Prompter reads one answer per prompt. Implementations return the line
// without its trailing newline; io.EOF signals the input is exhausted.
type Prompter interface {
	ReadLine(prompt string) (string, error)
}

// LinePrompter prompts on a writer and reads newline-terminated answers from
// a reader. Prompts are styled only when the writer is a terminal.
type LinePrompter struct {
	r      *bufio.Reader
	w      io.Writer
	styled bool
}

// NewLinePrompter creates a prompter over in and out.
func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	return &LinePrompter{
		r:      bufio.NewReader(in),
		w:      out,
		styled: isTerminal(out),
	}
}

// ReadLine writes prompt and blocks until a full line (or EOF) is read.
// A final unterminated line is returned as is; EOF with nothing read is
// reported as io.EOF.
func (p *LinePrompter) ReadLine(prompt string) (string, error) {
	if p.styled {
		fmt.Fprint(p.w, promptStyle.Render(prompt)+" ")
	} else {
		fmt.Fprint(p.w, prompt+" ")
	}

	line, err := p.r.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// formatPrompt renders "Message (default):".
func formatPrompt(message, def string) string {
	if def == "" {
		return message + ":"
	}
	return message + " (" + def + "):"
}
