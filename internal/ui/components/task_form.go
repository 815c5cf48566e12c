package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"tasktimer/internal/ui/theme"
)

// TaskForm collects the task name and optional notes before a start.
type TaskForm struct {
	name    textinput.Model
	notes   textinput.Model
	focused int
}

func NewTaskForm(namePlaceholder, notesPlaceholder string) TaskForm {
	name := textinput.New()
	name.Placeholder = namePlaceholder
	name.CharLimit = 120
	notes := textinput.New()
	notes.Placeholder = notesPlaceholder
	notes.CharLimit = 500
	return TaskForm{name: name, notes: notes}
}

// Focus puts the cursor on the name field.
func (f *TaskForm) Focus() tea.Cmd {
	f.focused = 0
	f.notes.Blur()
	return f.name.Focus()
}

func (f *TaskForm) Blur() {
	f.name.Blur()
	f.notes.Blur()
}

func (f TaskForm) Focused() bool {
	return f.name.Focused() || f.notes.Focused()
}

// NextField moves focus between name and notes.
func (f *TaskForm) NextField() tea.Cmd {
	if f.focused == 0 {
		f.focused = 1
		f.name.Blur()
		return f.notes.Focus()
	}
	f.focused = 0
	f.notes.Blur()
	return f.name.Focus()
}

func (f TaskForm) Values() (string, string) {
	return f.name.Value(), f.notes.Value()
}

func (f *TaskForm) Reset() {
	f.name.SetValue("")
	f.notes.SetValue("")
}

func (f *TaskForm) SetWidth(w int) {
	if w < 10 {
		w = 10
	}
	f.name.Width = w
	f.notes.Width = w
}

func (f TaskForm) Update(msg tea.Msg) (TaskForm, tea.Cmd) {
	var cmd tea.Cmd
	if f.focused == 0 {
		f.name, cmd = f.name.Update(msg)
	} else {
		f.notes, cmd = f.notes.Update(msg)
	}
	return f, cmd
}

func (f TaskForm) View(nameLabel, notesLabel string) string {
	var sb strings.Builder
	sb.WriteString(theme.Muted.Render(nameLabel) + "\n")
	sb.WriteString(f.name.View() + "\n\n")
	sb.WriteString(theme.Muted.Render(notesLabel) + "\n")
	sb.WriteString(f.notes.View())
	return sb.String()
}
