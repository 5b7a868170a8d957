package controller

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	m "apicheck.dev/pkg/apicheck/internal/model"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	footerStyle = lipgloss.NewStyle().Faint(true)
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

// TUI implements UI using Bubble Tea for long, scrollable tables.
type TUI struct {
	output io.Writer
	simple *SimpleUI
}

// NewTUI creates a new TUI writing to output. Tables are rendered the same
// way simple renders them.
func NewTUI(output io.Writer, simple *SimpleUI) *TUI {
	return &TUI{output: output, simple: simple}
}

// DisplaySummary shows the diff summary.
func (p *TUI) DisplaySummary(ctx context.Context, summary m.DiffSummary) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	title := fmt.Sprintf("API changes %s -> %s", summary.Lesser, summary.Greater)
	body := renderSummaryTable(summary) + "\n" + renderGroupsTable(summary.Removed.Descriptors)

	return p.show(newPagerModel(title, body))
}

// DisplayGroups shows the deprecated API groups.
func (p *TUI) DisplayGroups(ctx context.Context, descriptors []m.ApiGroupDescriptor) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return p.show(newPagerModel("Deprecated API groups", renderGroupsTable(descriptors)))
}

// DisplayFindings shows the deprecated API usages.
func (p *TUI) DisplayFindings(ctx context.Context, report m.Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if len(report.Findings) == 0 {
		return p.simple.DisplayFindings(ctx, report)
	}

	title := warnStyle.Render(fmt.Sprintf("Deprecated APIs found in %d scanned file(s)", report.FilesScanned))

	return p.show(newPagerModel(title, renderFindingsTable(report)))
}

func (p *TUI) show(model pagerModel) error {
	// Get initial terminal size
	if f, ok := p.output.(*os.File); ok {
		width, height, err := term.GetSize(int(f.Fd()))
		if err == nil {
			model.height = height
			model.width = width
		}
	}

	// If the table is small, just print and exit
	if !model.needsPagination() {
		_, err := fmt.Fprint(p.output, model.transcript())
		return err
	}

	program := tea.NewProgram(model, tea.WithOutput(p.output), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return err
	}

	// The alt screen is discarded on exit; leave the full table in scrollback.
	_, err := fmt.Fprint(p.output, model.transcript())

	return err
}

type pagerKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	PgUp   key.Binding
	PgDown key.Binding
	Top    key.Binding
	Bottom key.Binding
	Quit   key.Binding
}

// ShortHelp implements help.KeyMap.
func (k pagerKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Top, k.Bottom, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k pagerKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.PgUp, k.PgDown}, {k.Top, k.Bottom, k.Quit}}
}

var pagerKeys = pagerKeyMap{
	Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	PgUp:   key.NewBinding(key.WithKeys("pgup", "u"), key.WithHelp("u", "page up")),
	PgDown: key.NewBinding(key.WithKeys("pgdown", "d"), key.WithHelp("d", "page down")),
	Top:    key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "top")),
	Bottom: key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "bottom")),
	Quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
}

// pagerModel is the Bubble Tea model scrolling a rendered table.
type pagerModel struct {
	title    string
	lines    []string
	help     help.Model
	height   int
	width    int
	offset   int // Current scroll offset
	quitting bool
}

func newPagerModel(title, body string) pagerModel {
	return pagerModel{
		title: title,
		lines: strings.Split(strings.TrimRight(body, "\n"), "\n"),
		help:  help.New(),
	}
}

func (pm pagerModel) Init() tea.Cmd {
	return nil
}

func (pm pagerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		pm.height = msg.Height
		pm.width = msg.Width
		pm.help.Width = msg.Width
		pm.offset = pm.clamp(pm.offset)

		return pm, nil

	case tea.KeyMsg:
		return pm.handleKeyPress(msg)
	}

	return pm, nil
}

func (pm pagerModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, pagerKeys.Quit):
		pm.quitting = true
		return pm, tea.Quit
	case key.Matches(msg, pagerKeys.Down):
		pm.offset = pm.clamp(pm.offset + 1)
	case key.Matches(msg, pagerKeys.Up):
		pm.offset = pm.clamp(pm.offset - 1)
	case key.Matches(msg, pagerKeys.PgDown):
		pm.offset = pm.clamp(pm.offset + pm.itemsPerPage())
	case key.Matches(msg, pagerKeys.PgUp):
		pm.offset = pm.clamp(pm.offset - pm.itemsPerPage())
	case key.Matches(msg, pagerKeys.Top):
		pm.offset = 0
	case key.Matches(msg, pagerKeys.Bottom):
		pm.offset = pm.maxOffset()
	}

	return pm, nil
}

// itemsPerPage calculates how many lines fit on screen.
func (pm pagerModel) itemsPerPage() int {
	if pm.height == 0 {
		return 20 // Default
	}
	// Title and blank line, blank line, page line and help line.
	reserved := 5

	available := pm.height - reserved
	if available < 1 {
		return 1
	}

	return available
}

// maxOffset returns the maximum scroll offset.
func (pm pagerModel) maxOffset() int {
	maxOff := len(pm.lines) - pm.itemsPerPage()
	if maxOff < 0 {
		return 0
	}

	return maxOff
}

func (pm pagerModel) clamp(offset int) int {
	if offset < 0 {
		return 0
	}

	if maxOff := pm.maxOffset(); offset > maxOff {
		return maxOff
	}

	return offset
}

// needsPagination returns true if the table is too large to fit on screen.
func (pm pagerModel) needsPagination() bool {
	return pm.height > 0 && len(pm.lines) > pm.itemsPerPage()
}

// transcript renders the title and every line without pagination chrome.
func (pm pagerModel) transcript() string {
	pm.height = 0
	pm.quitting = false

	return pm.View()
}

func (pm pagerModel) View() string {
	if pm.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render(pm.title))
	b.WriteString("\n\n")

	paginate := pm.needsPagination()

	start, end := 0, len(pm.lines)
	if paginate {
		start = pm.clamp(pm.offset)
		end = min(start+pm.itemsPerPage(), len(pm.lines))
	}

	for _, line := range pm.lines[start:end] {
		b.WriteString(line)
		b.WriteString("\n")
	}

	if paginate {
		b.WriteString("\n")
		b.WriteString(footerStyle.Render(fmt.Sprintf("Showing %d-%d of %d", start+1, end, len(pm.lines))))
		b.WriteString("\n")
		b.WriteString(pm.help.ShortHelpView(pagerKeys.ShortHelp()))
		b.WriteString("\n")
	}

	return b.String()
}
