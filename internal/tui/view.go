package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/roster/internal/model"
	"github.com/idilsaglam/roster/internal/ui"
)

const formHeight = 14

// resize fits the list into the window, leaving room for the frame, search
// box, status line and form.
func (m *modelTUI) resize() {
	h := m.height - 6
	if m.snap.Open {
		h -= formHeight
	}
	if h < 3 {
		h = 3
	}
	m.list.SetSize(m.width-4, h)
}

func (m modelTUI) View() string {
	m.resize()
	t := ui.Current()

	var b strings.Builder
	b.WriteString(m.search.View())
	b.WriteString("\n")
	b.WriteString(m.list.View())
	if m.snap.Open {
		b.WriteString("\n")
		b.WriteString(m.formView())
	}
	b.WriteString("\n")
	b.WriteString(m.statusView(t))
	return t.Frame().Render(b.String())
}

func (m modelTUI) formView() string {
	t := ui.Current()
	title := "Add New Student"
	if m.snap.Draft.Editing() {
		title = "Edit Student"
	}

	lines := []string{
		t.Title.Render(title),
		t.Muted.Render("Fill in the student details below"),
	}
	for i, name := range model.FieldOrder {
		lines = append(lines, m.inputs[i].View())
		if fe, ok := m.snap.Errors[name]; ok {
			lines = append(lines, t.Error.Render("  "+fe.Message))
		}
	}
	lines = append(lines, "", m.help.View(m.formKeys))

	return t.Frame().
		Width(max(m.width-8, 20)).
		Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m modelTUI) statusView(t ui.Theme) string {
	var parts []string
	if m.pending > 0 {
		parts = append(parts, m.spinner.View())
	}
	switch {
	case m.status == "":
	case m.statusErr:
		parts = append(parts, t.Error.Render(t.SymFail+" "+m.status))
	default:
		parts = append(parts, t.Success.Render(t.SymOK+" "+m.status))
	}
	return strings.Join(parts, " ")
}
