// Package explorer provides the Bubble Tea candidate browser.
package explorer

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/caesar-breaker/internal/cipher"
	"github.com/verte-zerg/caesar-breaker/internal/model"
)

const (
	shiftColWidth     = 5
	markColWidth      = 1
	defaultPlainWidth = 60
	defaultRows       = cipher.Size
	chromeHeight      = 5
	estimateMark      = "*"
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	cipherStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

// Model implements the Bubble Tea candidate browser.
type Model struct {
	ciphertext  string
	candidates  []model.Candidate
	estimate    int
	hasEstimate bool
	estimateErr string

	table table.Model

	width  int
	height int

	selected    model.Candidate
	hasSelected bool
}

// NewModel builds a browser over brute-force candidates. estimate is the
// frequency-derived shift when hasEstimate is set; estimateErr explains why
// there is none.
func NewModel(ciphertext string, candidates []model.Candidate, estimate int, hasEstimate bool, estimateErr string) *Model {
	m := &Model{
		ciphertext:  ciphertext,
		candidates:  candidates,
		hasEstimate: hasEstimate,
		estimateErr: estimateErr,
	}
	if hasEstimate {
		m.estimate = cipher.Normalize(estimate)
	}
	m.table = table.New(
		table.WithColumns(columns(defaultPlainWidth)),
		table.WithRows(m.rows()),
		table.WithHeight(defaultRows),
		table.WithFocused(true),
	)
	m.table.SetStyles(tableStyles())
	if hasEstimate && m.estimate < len(candidates) {
		m.table.SetCursor(m.estimate)
	}
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "enter":
			idx := m.table.Cursor()
			if idx >= 0 && idx < len(m.candidates) {
				m.selected = m.candidates[idx]
				m.hasSelected = true
			}
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m *Model) View() string {
	lines := []string{
		headerStyle.Render("Ciphertext: ") + cipherStyle.Render(m.ciphertext),
		headerStyle.Render(m.estimateLine()),
		m.table.View(),
		footerStyle.Render("↑/↓ move · enter print · q quit"),
	}
	return strings.Join(lines, "\n")
}

// Selected returns the candidate chosen with enter, if any.
func (m *Model) Selected() (model.Candidate, bool) {
	return m.selected, m.hasSelected
}

func (m *Model) estimateLine() string {
	if m.hasEstimate {
		return fmt.Sprintf("Frequency estimate: shift %d (marked %s)", m.estimate, estimateMark)
	}
	if m.estimateErr != "" {
		return "Frequency estimate unavailable: " + m.estimateErr
	}
	return "Frequency estimate unavailable"
}

func (m *Model) rows() []table.Row {
	rows := make([]table.Row, 0, len(m.candidates))
	for _, c := range m.candidates {
		mark := ""
		if m.hasEstimate && c.Shift == m.estimate {
			mark = estimateMark
		}
		rows = append(rows, table.Row{fmt.Sprintf("%d", c.Shift), mark, c.Plaintext})
	}
	return rows
}

func (m *Model) updateLayout() {
	if m.width > 0 {
		plainWidth := m.width - shiftColWidth - markColWidth - 4
		if plainWidth < 10 {
			plainWidth = 10
		}
		m.table.SetColumns(columns(plainWidth))
		m.table.SetWidth(m.width)
	}
	if m.height > 0 {
		m.table.SetHeight(maxInt(1, minInt(defaultRows, m.height-chromeHeight)))
	}
}

func columns(plainWidth int) []table.Column {
	return []table.Column{
		{Title: "Shift", Width: shiftColWidth},
		{Title: "", Width: markColWidth},
		{Title: "Plaintext", Width: plainWidth},
	}
}

func tableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
