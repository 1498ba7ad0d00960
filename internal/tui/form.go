package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Makepad-fr/taskboard/internal/model"
	"github.com/Makepad-fr/taskboard/internal/store/taskstore"
	"github.com/Makepad-fr/taskboard/internal/ui"
)

const (
	fieldText = iota
	fieldCategory
)

// EntryForm holds the draft text and category for the next task.
// The drafts never reach the store until a successful submit.
type EntryForm struct {
	text, category textinput.Model
	field          int
}

func newInput(placeholder string, width int) textinput.Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = placeholder
	ti.CharLimit = 0
	ti.Width = width
	return ti
}

func NewEntryForm() EntryForm {
	return EntryForm{
		text:     newInput("Enter task", 40),
		category: newInput("Category", 20),
	}
}

func (f *EntryForm) Focus() tea.Cmd {
	if f.field == fieldCategory {
		f.text.Blur()
		return f.category.Focus()
	}
	f.category.Blur()
	return f.text.Focus()
}

// FocusFirst focuses the text draft.
func (f *EntryForm) FocusFirst() tea.Cmd {
	f.field = fieldText
	return f.Focus()
}

func (f *EntryForm) Blur() {
	f.text.Blur()
	f.category.Blur()
}

// NextField moves from text to category. It reports false when the
// cursor is already on the last field.
func (f *EntryForm) NextField() (tea.Cmd, bool) {
	if f.field == fieldCategory {
		return nil, false
	}
	f.field = fieldCategory
	return f.Focus(), true
}

func (f *EntryForm) PrevField() (tea.Cmd, bool) {
	if f.field == fieldText {
		return nil, false
	}
	f.field = fieldText
	return f.Focus(), true
}

// Submit adds the drafts as a task. Drafts clear only on success.
func (f *EntryForm) Submit(s *taskstore.Store) (model.Task, error) {
	t, err := s.Add(f.text.Value(), f.category.Value())
	if err != nil {
		return model.Task{}, err
	}
	f.text.Reset()
	f.category.Reset()
	f.field = fieldText
	f.Focus()
	return t, nil
}

func (f EntryForm) Drafts() (text, category string) {
	return f.text.Value(), f.category.Value()
}

func (f *EntryForm) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if f.field == fieldCategory {
		f.category, cmd = f.category.Update(msg)
	} else {
		f.text, cmd = f.text.Update(msg)
	}
	return cmd
}

func (f EntryForm) View(focused bool) string {
	th := ui.Current()
	label := th.Muted.Render("New task")
	if focused {
		label = th.Accent.Render("New task")
	}
	button := th.Muted.Render("[ Add Task ]")
	if focused {
		button = th.Selected.Render("[ Add Task ]")
	}
	return label + "\n" + f.text.View() + "\n" + f.category.View() + "\n" + button
}
