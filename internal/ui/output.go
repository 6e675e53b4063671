package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/idilsaglam/roster/internal/model"
)

// Out and Err are where OK/Fail/Panel write; tests swap them.
var (
	Out io.Writer = os.Stdout
	Err io.Writer = os.Stderr
)

func OK(msg string)   { fmt.Fprintln(Out, current.Success.Render(current.SymOK+" "+msg)) }
func Fail(msg string) { fmt.Fprintln(Err, current.Error.Render(current.SymFail+" "+msg)) }

// Notifier prints controller outcomes the same way OK and Fail do.
type Notifier struct{}

func (Notifier) Success(msg string) { OK(msg) }
func (Notifier) Failure(msg string) { Fail(msg) }

// Panel draws lines in a framed box using the current theme.
func Panel(lines []string) {
	fmt.Fprintln(Out, current.Frame().Render(strings.Join(lines, "\n")))
}

// StudentTable renders students as a bordered table.
func StudentTable(students []model.Student) string {
	t := table.New().
		Border(current.Border).
		BorderStyle(lipgloss.NewStyle().Foreground(current.BorderColor)).
		Headers("#", "NAME", "AGE", "CLASS", "PHONE", "ID").
		StyleFunc(func(row, col int) lipgloss.Style {
			s := lipgloss.NewStyle().Padding(0, 1)
			switch {
			case row == table.HeaderRow:
				return current.Title.Padding(0, 1)
			case col == 0 || col == 5:
				return current.Muted.Padding(0, 1)
			}
			return s
		})
	for i, s := range students {
		t.Row(fmt.Sprintf("%d", i+1), Truncate(s.Name, 40), s.Age, s.ClassName, s.PhoneNumber, s.ID)
	}
	return t.Render()
}

// StudentLine is the one-line summary used by the interactive list.
func StudentLine(s model.Student) string {
	return fmt.Sprintf("%s  %s",
		Truncate(s.Name, 40),
		current.Muted.Render(fmt.Sprintf("Age: %s  Class: %s  Phone: %s", s.Age, s.ClassName, s.PhoneNumber)),
	)
}

// Truncate shortens s to at most n runes, marking the cut with "...".
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n || n < 4 {
		return s
	}
	return string(r[:n-3]) + "..."
}
