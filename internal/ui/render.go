package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/airshare/internal/locale"
	"github.com/five82/airshare/internal/view"
)

const (
	logo        = "airshare"
	minLogLines = 4
)

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return m.engine.T("ui.loading")
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")
	b.WriteString(m.renderPrinters())
	b.WriteString("\n")
	b.WriteString(m.renderLogPanel())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	return b.String()
}

// renderHeader shows the title, refresh state and active language.
func (m Model) renderHeader() string {
	styles := m.theme.Styles()
	bg := NewBgStyle(m.theme.Surface)
	d := m.directory

	parts := []string{
		bg.Render(logo, styles.Logo),
		bg.Render(m.engine.T("ui.title"), styles.Text.Bold(true)),
	}
	switch {
	case d.Refreshing:
		parts = append(parts, bg.Render("● "+m.engine.T("ui.refreshing"), styles.WarningText))
	case d.LastError != nil && d.Unreachable:
		parts = append(parts, bg.Render("● "+m.engine.T("ui.unreachable"), styles.DangerText))
	case d.LastError != nil:
		parts = append(parts, bg.Render("● "+m.engine.T("ui.load_failed", locale.Params{"error": d.LastError.Error()}), styles.DangerText))
	case d.Available:
		parts = append(parts, bg.Render(fmt.Sprintf("● %d", len(d.Rows)), styles.SuccessText))
	}
	parts = append(parts,
		bg.Render(m.engine.T("ui.language")+":", styles.MutedText)+bg.Render(" "+d.Locale, styles.AccentText))

	return styles.Header.Width(m.width).Render(bg.Join(parts, 2))
}

// renderPrinters renders one line per printer, or the list's empty state.
func (m Model) renderPrinters() string {
	styles := m.theme.Styles()
	d := m.directory

	switch {
	case !d.Available && d.LastError != nil:
		return styles.DangerText.Render(m.engine.T("ui.load_failed", locale.Params{"error": d.LastError.Error()}))
	case !d.Available:
		return styles.MutedText.Render(m.engine.T("ui.loading"))
	case len(d.Rows) == 0:
		return styles.MutedText.Render(m.engine.T("ui.no_printers"))
	}

	nameWidth, idWidth := m.columnWidths()
	lines := make([]string, 0, len(d.Rows))
	for i, row := range d.Rows {
		lines = append(lines, m.renderRow(row, i == m.selected, nameWidth, idWidth, styles))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderRow(row view.Row, selected bool, nameWidth, idWidth int, styles Styles) string {
	cursor := "  "
	if selected {
		cursor = styles.AccentText.Render("› ")
	}
	name := lipgloss.NewStyle().Width(nameWidth).Render(truncate(row.Name, nameWidth))
	if selected {
		name = styles.Selected.Width(nameWidth).Render(truncate(row.Name, nameWidth))
	}
	id := styles.FaintText.Width(idWidth).Render(truncate(m.engine.T("ui.id")+" "+row.ID, idWidth))
	status := styles.StatusStyle(row.Online).Width(10).Render(row.DisplayStatus)
	button := styles.ButtonStyle(row.ShareVariant).Render(row.ShareLabel)

	return cursor + name + " " + id + " " + status + " " + button
}

func (m Model) columnWidths() (name, id int) {
	name, id = 28, 18
	if m.width > 0 && m.width < 80 {
		name = max(10, m.width/3)
		id = max(8, m.width/5)
	}
	return name, id
}

// renderLogPanel draws the activity log in a bordered viewport.
func (m Model) renderLogPanel() string {
	styles := m.theme.Styles()
	title := styles.AccentText.Bold(true).Render(m.engine.T("ui.log_title"))
	return title + "\n" + styles.Panel.Width(m.logWidth()).Render(m.logViewport.View())
}

func (m *Model) updateLogViewport() {
	if !m.ready {
		return
	}
	m.logViewport.SetContent(m.logContent())
	m.logViewport.GotoBottom()
}

func (m Model) logContent() string {
	styles := m.theme.Styles()
	if len(m.entries) == 0 {
		return styles.FaintText.Render(m.engine.T("ui.log_empty"))
	}
	width := m.logWidth() - 1
	lines := make([]string, 0, len(m.entries))
	for _, e := range m.entries {
		stamp := styles.FaintText.Render(e.Time)
		msg := styles.LevelStyle(e.Level).Render(truncate(e.Message, width-lipgloss.Width(e.Time)-1))
		lines = append(lines, stamp+" "+msg)
	}
	return strings.Join(lines, "\n")
}

func (m Model) logWidth() int {
	if m.width <= 4 {
		return 40
	}
	return m.width - 2
}

// logHeight gives the log panel the space the printer list does not use.
func (m Model) logHeight() int {
	rows := max(1, len(m.directory.Rows))
	h := m.height - rows - 7
	return max(minLogLines, h)
}

// renderCommandBar renders the key hints.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles()
	bg := NewBgStyle(m.theme.Surface)
	hints := m.help.View(m.keys)
	themeHint := bg.Render("T", styles.AccentText) + bg.Render(":"+m.theme.Name, styles.FaintText)
	return styles.Header.Width(m.width).Render(hints + "  " + themeHint)
}
