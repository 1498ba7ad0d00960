package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Makepad-fr/taskboard/internal/model"
	"github.com/Makepad-fr/taskboard/internal/store/taskstore"
	"github.com/Makepad-fr/taskboard/internal/ui"
)

// TaskRow is the view state of one task: display or inline edit.
// The edit drafts live here, never on the task.
type TaskRow struct {
	id             int64
	editing        bool
	text, category textinput.Model
	field          int
}

func newTaskRow(id int64) *TaskRow {
	return &TaskRow{
		id:       id,
		text:     newInput("", 30),
		category: newInput("Category", 14),
	}
}

func (r *TaskRow) Editing() bool { return r.editing }

// StartEdit seeds the drafts from the task's current fields.
func (r *TaskRow) StartEdit(t model.Task) tea.Cmd {
	r.editing = true
	r.field = fieldText
	r.text.SetValue(t.Text)
	r.text.CursorEnd()
	r.category.SetValue(t.Category)
	r.category.CursorEnd()
	r.category.Blur()
	return r.text.Focus()
}

func (r *TaskRow) Cancel() {
	r.editing = false
	r.text.Blur()
	r.category.Blur()
}

// Save pushes the drafts through the store. On rejection the row stays
// in edit mode with the drafts untouched.
func (r *TaskRow) Save(s *taskstore.Store) (model.Task, error) {
	text, category := r.text.Value(), r.category.Value()
	t, err := s.Edit(r.id, taskstore.Update{Text: &text, Category: &category})
	if err != nil {
		return model.Task{}, err
	}
	r.Cancel()
	return t, nil
}

func (r *TaskRow) SwitchField() tea.Cmd {
	if r.field == fieldText {
		r.field = fieldCategory
		r.text.Blur()
		return r.category.Focus()
	}
	r.field = fieldText
	r.category.Blur()
	return r.text.Focus()
}

func (r *TaskRow) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if r.field == fieldCategory {
		r.category, cmd = r.category.Update(msg)
	} else {
		r.text, cmd = r.text.Update(msg)
	}
	return cmd
}

func (r *TaskRow) View(t model.Task, selected bool) string {
	th := ui.Current()
	prefix := "  "
	if selected {
		prefix = th.Selected.Render("> ")
	}
	if r.editing {
		hint := th.Help.Render("enter save · tab switch · esc cancel")
		return fmt.Sprintf("%s✎ %s %s  %s", prefix, r.text.View(), r.category.View(), hint)
	}

	box := th.Muted.Render(th.BoxUnchecked)
	text := t.Text
	if t.Completed {
		box = th.Success.Render(th.BoxChecked)
		text = th.Done.Render(text)
	}
	line := prefix + box + " " + text
	if t.Category != "" {
		line += " " + th.Badge.Render(t.Category)
	}
	if selected {
		line += "  " + th.Help.Render("e Edit · d Delete · x "+t.ToggleLabel())
	}
	return line
}
