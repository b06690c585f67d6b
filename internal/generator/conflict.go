package generator

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ConflictResolution represents what to do with an existing file
type ConflictResolution int

const (
	Skip ConflictResolution = iota
	Overwrite
	ShowDiff
	Cancel
)

// Resolver handles file conflict resolution
type Resolver struct {
	strategy ConflictStrategy
	color    bool
}

// ConflictStrategy determines how to resolve conflicts
type ConflictStrategy interface {
	Resolve(path string, existing, newer []byte) (ConflictResolution, error)
}

// Lipgloss styles for terminal output
var (
	warningStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("yellow")).Bold(true)
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("cyan")).Bold(true)
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	borderStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240"))
	titleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("white")).Bold(true)
)

// NewResolver creates a conflict resolver for the --skip and --diff flags.
// With neither flag set, existing files are overwritten without asking.
// Diffs are printed to out, or os.Stdout when out is nil.
func NewResolver(out io.Writer, skip, diff bool) (*Resolver, error) {
	if skip && diff {
		return nil, fmt.Errorf("--skip cannot be combined with --diff")
	}
	if out == nil {
		out = os.Stdout
	}

	return &Resolver{
		strategy: selectStrategy(out, skip, diff),
		color:    terminalHeight() > 0,
	}, nil
}

// NewResolverWithStrategy creates a resolver around a custom strategy.
func NewResolverWithStrategy(s ConflictStrategy) *Resolver {
	return &Resolver{strategy: s}
}

// ResolveConflict determines what to do with a file that already exists.
// Returns the user's decision (or automatic decision based on flags).
func (r *Resolver) ResolveConflict(path string, existing, newer []byte) (ConflictResolution, error) {
	return r.strategy.Resolve(path, existing, newer)
}

// Diff renders the unified diff shown when the user asks to see changes.
func (r *Resolver) Diff(path string, existing, newer []byte) string {
	return UnifiedDiff(path, existing, newer, &DiffOptions{Color: r.color})
}

// selectStrategy chooses the appropriate strategy based on flags
func selectStrategy(out io.Writer, skip, diff bool) ConflictStrategy {
	switch {
	case skip:
		return &SkipStrategy{}
	case diff:
		return &DiffStrategy{Out: out}
	default:
		return &OverwriteStrategy{}
	}
}

// OverwriteStrategy always returns Overwrite (no prompts)
type OverwriteStrategy struct{}

// Resolve always returns Overwrite
func (s *OverwriteStrategy) Resolve(path string, existing, newer []byte) (ConflictResolution, error) {
	return Overwrite, nil
}

// SkipStrategy always returns Skip (no prompts)
type SkipStrategy struct{}

// Resolve always returns Skip for skip mode
func (s *SkipStrategy) Resolve(path string, existing, newer []byte) (ConflictResolution, error) {
	return Skip, nil
}

// DiffStrategy shows diff then delegates to interactive
type DiffStrategy struct {
	Out io.Writer
}

// Resolve shows the diff and then prompts for decision
func (s *DiffStrategy) Resolve(path string, existing, newer []byte) (ConflictResolution, error) {
	height := terminalHeight()
	diff := UnifiedDiff(path, existing, newer, &DiffOptions{Color: height > 0})

	lineCount := strings.Count(diff, "\n")
	if height > 0 && lineCount > height-6 {
		// Show in full-screen viewport
		model := newDiffViewerModel(path, diff)
		p := tea.NewProgram(model, tea.WithAltScreen())
		finalModel, err := p.Run()
		if err != nil {
			return Cancel, fmt.Errorf("failed to show diff: %w", err)
		}
		if finalModel.(diffViewerModel).cancelled {
			return Cancel, nil
		}
	} else {
		fmt.Fprintln(s.Out, diff)
	}

	// Now show interactive menu for decision
	interactive := &InteractiveStrategy{}
	return interactive.Resolve(path, existing, newer)
}

// InteractiveStrategy shows menu with keyboard navigation.
// If the user selects "Show diff and decide", Resolve returns ShowDiff and
// the caller prints the diff and asks again.
type InteractiveStrategy struct{}

// Resolve shows interactive menu and returns user's choice.
func (s *InteractiveStrategy) Resolve(path string, existing, newer []byte) (ConflictResolution, error) {
	fileInfo, err := os.Stat(path)
	if err != nil && !os.IsNotExist(err) {
		return Cancel, fmt.Errorf("failed to stat file: %w", err)
	}

	model := newConflictMenuModel(path, fileInfo, existing)
	p := tea.NewProgram(model)
	finalModel, err := p.Run()
	if err != nil {
		return Cancel, fmt.Errorf("failed to show menu: %w", err)
	}

	result := finalModel.(conflictMenuModel)
	if result.selected == nil {
		return Cancel, nil
	}

	return *result.selected, nil
}

// GeneratedMarker appears in the header of every file plume writes. A
// conflicting file without it was not produced by plume.
const GeneratedMarker = "Generated by plume"

type menuChoice struct {
	key        string
	label      string
	resolution ConflictResolution
}

var menuChoices = []menuChoice{
	{"d", "Show diff and decide", ShowDiff},
	{"s", "Skip (keep existing file)", Skip},
	{"o", "Overwrite (replace with generated output)", Overwrite},
	{"c", "Cancel generation", Cancel},
}

// conflictMenuModel asks what to do with one conflicting file.
type conflictMenuModel struct {
	path      string
	fileInfo  os.FileInfo
	generated bool // existing file carries GeneratedMarker
	cursor    int
	selected  *ConflictResolution
}

func newConflictMenuModel(path string, fileInfo os.FileInfo, existing []byte) conflictMenuModel {
	return conflictMenuModel{
		path:      path,
		fileInfo:  fileInfo,
		generated: strings.Contains(string(existing), GeneratedMarker),
	}
}

func (m conflictMenuModel) Init() tea.Cmd {
	return nil
}

func (m conflictMenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "ctrl+c", "q", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(menuChoices)-1 {
			m.cursor++
		}
	case "enter":
		return m.choose(m.cursor)
	default:
		for i, c := range menuChoices {
			if key.String() == c.key {
				return m.choose(i)
			}
		}
	}
	return m, nil
}

func (m conflictMenuModel) choose(i int) (tea.Model, tea.Cmd) {
	m.cursor = i
	resolution := menuChoices[i].resolution
	m.selected = &resolution
	return m, tea.Quit
}

func (m conflictMenuModel) View() string {
	var b strings.Builder

	b.WriteString(warningStyle.Render("⚠️  File conflict detected: ") + titleStyle.Render(m.path) + "\n")

	if m.fileInfo != nil {
		b.WriteString(mutedStyle.Render("    Last modified: ") + formatRelativeTime(m.fileInfo.ModTime()) + "\n")
		b.WriteString(mutedStyle.Render("    Size: ") + formatFileSize(m.fileInfo.Size()) + "\n")
	}
	if m.generated {
		b.WriteString(mutedStyle.Render("    Written by an earlier plume run, local edits will be lost on overwrite") + "\n")
	} else {
		b.WriteString(mutedStyle.Render("    Not written by plume") + "\n")
	}

	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("    [↑/↓] Navigate    [Enter] Select    [d/s/o/c] Choose    [q] Cancel") + "\n\n")

	for i, c := range menuChoices {
		label := fmt.Sprintf("[%s] %s", c.key, c.label)
		if m.cursor == i {
			b.WriteString("    " + selectedStyle.Render("> "+label) + "\n")
		} else {
			b.WriteString("      " + label + "\n")
		}
	}

	return b.String()
}

// diffViewerModel is the BubbleTea model for showing long diffs
type diffViewerModel struct {
	path      string
	diff      string
	viewport  viewport.Model
	ready     bool
	cancelled bool
}

func newDiffViewerModel(path, diff string) diffViewerModel {
	return diffViewerModel{path: path, diff: diff}
}

func (m diffViewerModel) Init() tea.Cmd {
	return nil
}

func (m diffViewerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.cancelled = true
			return m, tea.Quit

		case "q", "esc":
			return m, tea.Quit

		case "up", "k":
			m.viewport.ScrollUp(1)

		case "down", "j":
			m.viewport.ScrollDown(1)

		case "pgup", "b":
			m.viewport.PageUp()

		case "pgdown", "f", "space":
			m.viewport.PageDown()
		}

	case tea.WindowSizeMsg:
		headerHeight := 3
		footerHeight := 2
		verticalMargin := headerHeight + footerHeight

		if !m.ready {
			m.viewport = viewport.New(msg.Width-4, msg.Height-verticalMargin)
			m.viewport.SetContent(m.diff)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width - 4
			m.viewport.Height = msg.Height - verticalMargin
		}
	}

	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m diffViewerModel) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var b strings.Builder

	title := fmt.Sprintf("─ Diff: %s ", m.path)
	padding := strings.Repeat("─", max(0, m.viewport.Width-len(title)+4))
	b.WriteString(borderStyle.Render(fmt.Sprintf("┌%s%s┐\n", title, padding)))

	for _, line := range strings.Split(m.viewport.View(), "\n") {
		b.WriteString(borderStyle.Render("│") + " " + line)
		pad := strings.Repeat(" ", max(0, m.viewport.Width-lipgloss.Width(line)-1))
		b.WriteString(pad + borderStyle.Render("│") + "\n")
	}

	footer := " [↑/↓] Scroll    [q] Return to menu "
	padding = strings.Repeat("─", max(0, m.viewport.Width-len(footer)+4))
	b.WriteString(borderStyle.Render(fmt.Sprintf("└%s%s┘\n", padding, footer)))

	return b.String()
}

// formatRelativeTime formats a time as relative (e.g., "2 hours ago")
func formatRelativeTime(t time.Time) string {
	d := time.Since(t)

	plural := func(n int, unit string) string {
		if n == 1 {
			return "1 " + unit + " ago"
		}
		return fmt.Sprintf("%d %ss ago", n, unit)
	}

	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return plural(int(d.Minutes()), "minute")
	case d < 24*time.Hour:
		return plural(int(d.Hours()), "hour")
	case d < 7*24*time.Hour:
		return plural(int(d.Hours()/24), "day")
	case d < 30*24*time.Hour:
		return plural(int(d.Hours()/24/7), "week")
	case d < 365*24*time.Hour:
		return plural(int(d.Hours()/24/30), "month")
	default:
		return plural(int(d.Hours()/24/365), "year")
	}
}

// formatFileSize formats file size in human-readable format
func formatFileSize(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}

	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}

	return fmt.Sprintf("%.1f %cB", float64(size)/float64(div), "KMGTPE"[exp])
}
