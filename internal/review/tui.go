// Package review provides an interactive browser over a conclusion workbook
// so mismatched controls can be inspected without leaving the terminal.
package review

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"ctrlsheet/internal/compare"
	"ctrlsheet/internal/excel"
)

// UI States
type state int

const (
	stateList state = iota
	stateDetail
)

// UIConfig represents UI configuration settings
type UIConfig struct {
	RowsPerPage int
}

// Model represents the TUI model
type model struct {
	results  []compare.Result
	filtered []int // indexes into results currently shown

	// UI state
	state        state
	mismatchOnly bool
	cursor       int
	page         int
	rowsPerPage  int
	selected     int

	// Screen dimensions
	width  int
	height int

	// Styling
	titleStyle    lipgloss.Style
	selectedStyle lipgloss.Style
	normalStyle   lipgloss.Style
	helpStyle     lipgloss.Style
	matchStyle    lipgloss.Style
	mismatchStyle lipgloss.Style
	dupStyle      lipgloss.Style
}

func initialModel(results []compare.Result, uiConfig UIConfig) model {
	m := model{
		results:     results,
		state:       stateList,
		rowsPerPage: uiConfig.RowsPerPage,

		titleStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			Align(lipgloss.Center),
		selectedStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")).
			Background(lipgloss.Color("235")).
			Padding(0, 1),
		normalStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Padding(0, 1),
		helpStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
		matchStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("40")).
			Padding(0, 1),
		mismatchStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Padding(0, 1),
		dupStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Padding(0, 1),
	}
	m.applyFilter()
	return m
}

func (m *model) applyFilter() {
	m.filtered = m.filtered[:0]
	for i, r := range m.results {
		if m.mismatchOnly && r.Verdict == compare.PairMatch {
			continue
		}
		m.filtered = append(m.filtered, i)
	}
	m.cursor = 0
	m.page = 0
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tea.KeyMsg:
		switch m.state {
		case stateList:
			return m.updateList(msg)
		case stateDetail:
			return m.updateDetail(msg)
		}
	}
	return m, nil
}

func (m model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		} else if m.page > 0 {
			m.page--
			m.cursor = m.rowsPerPage - 1
		}

	case "down", "j":
		if m.cursor < m.maxCursor() {
			m.cursor++
		} else if m.hasNextPage() {
			m.page++
			m.cursor = 0
		}

	case "left", "h":
		if m.page > 0 {
			m.page--
			m.cursor = 0
		}

	case "right", "l":
		if m.hasNextPage() {
			m.page++
			m.cursor = 0
		}

	case "m":
		m.mismatchOnly = !m.mismatchOnly
		m.applyFilter()

	case "enter":
		idx := m.page*m.rowsPerPage + m.cursor
		if idx < len(m.filtered) {
			m.selected = m.filtered[idx]
			m.state = stateDetail
		}
	}
	return m, nil
}

func (m model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "esc", "enter":
		m.state = stateList
	}
	return m, nil
}

// Helper functions
func (m model) maxCursor() int {
	itemsOnPage := len(m.filtered) - m.page*m.rowsPerPage
	if itemsOnPage > m.rowsPerPage {
		return m.rowsPerPage - 1
	}
	return itemsOnPage - 1
}

func (m model) hasNextPage() bool {
	return (m.page+1)*m.rowsPerPage < len(m.filtered)
}

func (m model) verdictStyle(verdict string) lipgloss.Style {
	switch verdict {
	case compare.PairMatch:
		return m.matchStyle
	case compare.PairDuplicate:
		return m.dupStyle
	default:
		return m.mismatchStyle
	}
}

func (m model) View() string {
	switch m.state {
	case stateList:
		return m.viewList()
	case stateDetail:
		return m.viewDetail()
	}
	return ""
}

func (m model) viewList() string {
	var b strings.Builder

	title := m.titleStyle.Width(m.width).Render("Conclusion Review")
	b.WriteString(title)
	b.WriteString("\n\n")

	mismatches := 0
	for _, r := range m.results {
		if r.Verdict != compare.PairMatch {
			mismatches++
		}
	}
	status := fmt.Sprintf("%d pairs, %d flagged", len(m.results), mismatches)
	if m.mismatchOnly {
		status += " (showing flagged only)"
	}
	b.WriteString(m.helpStyle.Render(status))
	b.WriteString("\n\n")

	totalPages := int(math.Ceil(float64(len(m.filtered)) / float64(m.rowsPerPage)))
	if totalPages == 0 {
		totalPages = 1
	}
	b.WriteString(m.helpStyle.Render(fmt.Sprintf("Page %d/%d", m.page+1, totalPages)))
	b.WriteString("\n\n")

	start := m.page * m.rowsPerPage
	end := start + m.rowsPerPage
	if end > len(m.filtered) {
		end = len(m.filtered)
	}

	for i := start; i < end; i++ {
		r := m.results[m.filtered[i]]
		line := fmt.Sprintf("%-12s design:%-10s operation:%-10s %s",
			r.Key, r.Design.Verdict, r.Operation.Verdict, r.Verdict)

		style := m.verdictStyle(r.Verdict)
		if i-start == m.cursor {
			style = m.selectedStyle
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	if len(m.filtered) == 0 {
		b.WriteString(m.normalStyle.Render("nothing to show"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	help := "↑↓←→: navigate | Enter: detail | m: toggle flagged only | q: quit"
	b.WriteString(m.helpStyle.Render(help))

	return b.String()
}

func (m model) viewDetail() string {
	r := m.results[m.selected]
	var b strings.Builder

	b.WriteString(m.titleStyle.Render(fmt.Sprintf("Control %s", r.Key)))
	b.WriteString("\n\n")

	if r.Description != "" {
		b.WriteString(m.normalStyle.Render(r.Description))
		b.WriteString("\n\n")
	}

	b.WriteString(fmt.Sprintf("Design    summary: %q\n", r.Design.Summary))
	b.WriteString(fmt.Sprintf("          tested:  %q\n", r.Design.Tested))
	b.WriteString(m.verdictStyle(string(r.Design.Verdict)).Render(fmt.Sprintf("verdict: %s", r.Design.Verdict)))
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("Operation summary: %q\n", r.Operation.Summary))
	b.WriteString(fmt.Sprintf("          tested:  %q\n", r.Operation.Tested))
	b.WriteString(m.verdictStyle(string(r.Operation.Verdict)).Render(fmt.Sprintf("verdict: %s", r.Operation.Verdict)))
	b.WriteString("\n\n")

	b.WriteString(m.verdictStyle(r.Verdict).Render(fmt.Sprintf("Result: %s", r.Verdict)))
	b.WriteString("\n\n")

	b.WriteString(m.helpStyle.Render("Esc/Enter: back | q: quit"))
	return b.String()
}

// LoadConclusionFile reads the rows of a conclusion workbook back into
// results for browsing.
func LoadConclusionFile(path string) ([]compare.Result, error) {
	editor, err := excel.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open conclusion file: %v", err)
	}
	defer editor.Close()

	if !editor.HasSheet(compare.OutputSheet) {
		return nil, fmt.Errorf("%s is not a conclusion file: no %q sheet", path, compare.OutputSheet)
	}
	rows, err := editor.GetAllRows(compare.OutputSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read conclusion rows: %v", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("conclusion file has no data rows")
	}

	results := make([]compare.Result, 0, len(rows)-1)
	for _, row := range rows[1:] {
		get := func(col int) string {
			if col < len(row) {
				return row[col]
			}
			return ""
		}
		results = append(results, compare.Result{
			Key:         get(0),
			Description: get(1),
			Design: compare.FieldResult{
				Summary: get(2),
				Tested:  get(3),
				Verdict: compare.Verdict(get(4)),
			},
			Operation: compare.FieldResult{
				Summary: get(5),
				Tested:  get(6),
				Verdict: compare.Verdict(get(7)),
			},
			Verdict: get(8),
		})
	}
	return results, nil
}

// RunReviewTUI opens the interactive browser over a conclusion workbook.
func RunReviewTUI(conclusionFile string, uiConfig UIConfig) error {
	results, err := LoadConclusionFile(conclusionFile)
	if err != nil {
		return err
	}
	if uiConfig.RowsPerPage <= 0 {
		uiConfig.RowsPerPage = 20
	}

	p := tea.NewProgram(initialModel(results, uiConfig), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %v", err)
	}
	return nil
}
