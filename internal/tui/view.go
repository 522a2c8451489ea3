package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	selectedStyle = lipgloss.NewStyle().Bold(true)
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("35"))
	panelStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

func (m appModel) View() string {
	switch m.screen {
	case screenLoading:
		return fmt.Sprintf("\n  %s loading session...\n", m.spin.View())
	case screenLogin:
		return m.loginView()
	default:
		return m.notesView()
	}
}

func (m appModel) loginView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("jotter") + "\n\n")
	b.WriteString("  " + m.emailInput.View() + "\n")
	b.WriteString("  " + m.passwordInput.View() + "\n\n")
	if m.busy {
		b.WriteString("  " + m.spin.View() + " signing in...\n")
	}
	if m.errMsg != "" {
		b.WriteString("  " + errStyle.Render(m.errMsg) + "\n")
	}
	b.WriteString("\n" + dimStyle.Render("  enter sign in • tab switch field • ctrl+c quit") + "\n")
	return b.String()
}

func (m appModel) notesView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("my notes") + " " + dimStyle.Render(fmt.Sprintf("(%d)", len(m.notes))) + "\n\n")

	switch {
	case m.fetching && !m.loaded:
		b.WriteString("  " + m.spin.View() + " loading notes...\n")
	case len(m.notes) == 0:
		b.WriteString(dimStyle.Render("  no notes yet. press n to write the first one") + "\n")
	default:
		for i, n := range m.notes {
			prefix := "  "
			line := n.Title
			if line == "" {
				line = "(untitled)"
			}
			if m.selected != nil && *m.selected == n.ID {
				line = selectedStyle.Render(line)
			}
			if i == m.cursor {
				prefix = cursorStyle.Render("> ")
			}
			b.WriteString(prefix + line + dimStyle.Render("  "+n.CreatedAt.Format("2006-01-02 15:04")) + "\n")
		}
	}
	b.WriteString("\n")

	if m.mode == modeComposing || m.mode == modeEditing {
		b.WriteString(m.draftView())
	} else if m.selected != nil {
		if n := m.noteByID(*m.selected); n != nil {
			detail := titleStyle.Render(n.Title) + "\n\n" + n.Text
			if n.UpdatedAt != nil {
				detail += "\n\n" + dimStyle.Render("edited "+n.UpdatedAt.Format("2006-01-02 15:04"))
			}
			b.WriteString(panelStyle.Render(detail) + "\n")
		}
	}

	if m.busy && m.mode != modeComposing && m.mode != modeEditing {
		b.WriteString("  " + m.spin.View() + " working...\n")
	}
	if m.errMsg != "" {
		b.WriteString("  " + errStyle.Render(m.errMsg) + "\n")
	}
	if m.status != "" && m.errMsg == "" {
		b.WriteString("  " + statusStyle.Render(m.status) + "\n")
	}

	b.WriteString("\n" + dimStyle.Render("  "+m.helpLine()) + "\n")
	return b.String()
}

func (m appModel) draftView() string {
	var b strings.Builder
	header := "new note"
	if m.mode == modeEditing {
		header = "edit note"
	}
	b.WriteString(titleStyle.Render(header) + "\n")
	b.WriteString(m.titleInput.View() + "\n")
	b.WriteString(m.textArea.View() + "\n")
	if m.optimizing {
		b.WriteString(m.spin.View() + " optimizing...\n")
	}
	return panelStyle.Render(b.String()) + "\n"
}

func (m appModel) helpLine() string {
	if m.mode == modeComposing || m.mode == modeEditing {
		parts := []string{"ctrl+s save"}
		// Optimize controls are hidden entirely when the probe said the
		// feature is not configured.
		if m.aiAvailable && !m.busy {
			parts = append(parts, "ctrl+o optimize")
		}
		if m.undoText != nil {
			parts = append(parts, "ctrl+u undo optimize")
		}
		parts = append(parts, "tab field", "esc cancel")
		return strings.Join(parts, " • ")
	}
	return "n new • e edit • d delete • enter open • r reload • s sign out • q quit"
}
