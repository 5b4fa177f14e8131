package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
)

// newHelp returns the footer help model styled for the theme.
func newHelp(theme Theme) help.Model {
	h := help.New()
	h.ShortSeparator = " · "
	h.Styles.ShortKey = lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Warning))
	h.Styles.ShortDesc = lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Muted))
	h.Styles.ShortSeparator = lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Faint))
	h.Styles.FullKey = h.Styles.ShortKey
	h.Styles.FullDesc = h.Styles.ShortDesc
	h.Styles.FullSeparator = h.Styles.ShortSeparator
	h.Styles.Ellipsis = h.Styles.ShortSeparator
	return h
}

// renderHelp renders the help overlay.
func (m Model) renderHelp() string {
	styles := m.theme.Styles()

	sections := []helpSection{
		{
			title: "Navigation",
			items: []helpItem{
				{"tab/S-tab", "Next/previous panel"},
				{"1-7", "Jump to panel"},
				{"j/k", "Next/previous field"},
			},
		},
		{
			title: "Editing",
			items: []helpItem{
				{"h/l", "Nudge value (batched)"},
				{"H/L", "Nudge ×10 (batched)"},
				{"enter", "Edit text or colour"},
				{"space", "Toggle or apply preset"},
			},
		},
		{
			title: "History",
			items: []helpItem{
				{"ctrl+z/u", "Undo"},
				{"ctrl+y/ctrl+r", "Redo"},
			},
		},
		{
			title: "General",
			items: []helpItem{
				{"ctrl+s", "Export JSON to file"},
				{"y", "Copy JSON to clipboard"},
				{"T", "Cycle theme"},
				{"?", "Toggle help"},
				{"q/ctrl+c", "Quit"},
			},
		},
	}

	var b strings.Builder

	title := styles.Text.Bold(true).Render("Keyboard Shortcuts")
	b.WriteString(title)
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 30)))
	b.WriteString("\n\n")

	for i, section := range sections {
		b.WriteString(styles.AccentText.Bold(true).Render(section.title))
		b.WriteString("\n")

		for _, item := range section.items {
			keyStyle := lipgloss.NewStyle().
				Foreground(lipgloss.Color(m.theme.Warning)).
				Width(15)
			b.WriteString(keyStyle.Render(item.key))
			b.WriteString(styles.Text.Render(item.desc))
			b.WriteString("\n")
		}

		if i < len(sections)-1 {
			b.WriteString("\n")
		}
	}

	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Accent)).
		Padding(1, 2).
		Width(44)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		modal.Render(b.String()),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(m.theme.Background)),
	)
}

type helpSection struct {
	title string
	items []helpItem
}

type helpItem struct {
	key  string
	desc string
}
