package components

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func typeInto(f TaskForm, text string) TaskForm {
	for _, r := range text {
		f, _ = f.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return f
}

func TestTaskFormRoutesInputToFocusedField(t *testing.T) {
	t.Parallel()
	form := NewTaskForm("name", "notes")
	form.Focus()
	form = typeInto(form, "Write")
	form.NextField()
	form = typeInto(form, "draft")

	name, notes := form.Values()
	if name != "Write" || notes != "draft" {
		t.Fatalf("unexpected values %q %q", name, notes)
	}
	form.Reset()
	if name, notes := form.Values(); name != "" || notes != "" {
		t.Fatalf("reset should clear both fields")
	}
	form.Blur()
	if form.Focused() {
		t.Fatalf("form should not be focused after blur")
	}
}

func TestPaletteSubmitAndCancel(t *testing.T) {
	t.Parallel()
	p := NewPalette()
	p.Open()
	for _, r := range "stats" {
		p, _ = p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	p, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if p.Visible() || cmd == nil {
		t.Fatalf("enter should close the palette and emit a command")
	}
	if msg, ok := cmd().(PaletteSubmitMsg); !ok || msg.Input != "stats" {
		t.Fatalf("unexpected submit message %#v", cmd())
	}

	p.Open()
	p, cmd = p.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if p.Visible() {
		t.Fatalf("esc should close the palette")
	}
	if _, ok := cmd().(PaletteCancelMsg); !ok {
		t.Fatalf("expected cancel message")
	}
}
