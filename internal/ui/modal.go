package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Modal is the interface for modal dialogs.
// The Update method returns the updated modal, a command, and a bool indicating if the modal should close.
type Modal interface {
	Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool)
	View(theme Theme, width, height int) string
}

// inputModal edits one text or colour field.
type inputModal struct {
	label     string
	color     bool // validate as hex colour
	input     textinput.Model
	confirmed bool
	err       string
}

func newInputModal(label, value string, color bool) *inputModal {
	ti := textinput.New()
	ti.SetValue(value)
	ti.CursorEnd()
	ti.CharLimit = 500
	ti.Width = 40
	if color {
		ti.CharLimit = 9
		ti.Placeholder = "#rrggbb"
	}
	ti.Focus()
	return &inputModal{label: label, color: color, input: ti}
}

// Value returns the trimmed input.
func (im *inputModal) Value() string {
	return strings.TrimSpace(im.input.Value())
}

func (im *inputModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(km, keys.Cancel):
			return im, nil, true
		case key.Matches(km, keys.Confirm):
			if im.color {
				v := im.Value()
				if !strings.HasPrefix(v, "#") {
					v = "#" + v
				}
				if _, err := colorful.Hex(v); err != nil {
					im.err = "not a hex colour"
					return im, nil, false
				}
				im.input.SetValue(strings.ToLower(v))
			}
			im.confirmed = true
			return im, nil, true
		}
	}
	im.err = ""
	var cmd tea.Cmd
	im.input, cmd = im.input.Update(msg)
	return im, cmd, false
}

func (im *inputModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()

	var b strings.Builder
	b.WriteString(styles.AccentText.Bold(true).Render("Edit " + im.label))
	b.WriteString("\n\n")
	b.WriteString(im.input.View())
	b.WriteString("\n\n")
	if im.color {
		if c, err := colorful.Hex(im.Value()); err == nil {
			swatch := lipgloss.NewStyle().Background(lipgloss.Color(c.Hex())).Render("      ")
			b.WriteString(swatch + " ")
		}
	}
	if im.err != "" {
		b.WriteString(styles.DangerText.Render(im.err))
	} else {
		b.WriteString(styles.FaintText.Render("enter to apply · esc to cancel"))
	}

	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.Accent)).
		Padding(1, 2).
		Width(48)

	return lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		modal.Render(b.String()),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(theme.Background)),
	)
}
