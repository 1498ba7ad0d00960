package tui

import (
	"strings"

	"github.com/Makepad-fr/taskboard/internal/model"
	"github.com/Makepad-fr/taskboard/internal/store/taskstore"
	"github.com/Makepad-fr/taskboard/internal/ui"
)

const emptyListMessage = "No tasks available."

// TaskList renders the filtered view, one TaskRow per task keyed by ID.
type TaskList struct {
	store  *taskstore.Store
	rows   map[int64]*TaskRow
	cursor int
}

func NewTaskList(s *taskstore.Store) TaskList {
	return TaskList{store: s, rows: make(map[int64]*TaskRow)}
}

// visible re-derives the filtered view, drops rows whose task is gone
// and clamps the cursor.
func (l *TaskList) visible() []model.Task {
	view := l.store.Filtered()
	for id := range l.rows {
		if _, ok := l.store.Get(id); !ok {
			delete(l.rows, id)
		}
	}
	if l.cursor >= len(view) {
		l.cursor = len(view) - 1
	}
	if l.cursor < 0 {
		l.cursor = 0
	}
	return view
}

func (l *TaskList) Row(id int64) *TaskRow {
	r, ok := l.rows[id]
	if !ok {
		r = newTaskRow(id)
		l.rows[id] = r
	}
	return r
}

// Selected returns the task under the cursor, if any.
func (l *TaskList) Selected() (model.Task, bool) {
	view := l.visible()
	if len(view) == 0 {
		return model.Task{}, false
	}
	return view[l.cursor], true
}

// EditingRow returns the selected row when it is in edit mode.
func (l *TaskList) EditingRow() *TaskRow {
	t, ok := l.Selected()
	if !ok {
		return nil
	}
	if r, ok := l.rows[t.ID]; ok && r.Editing() {
		return r
	}
	return nil
}

func (l *TaskList) Move(delta int) {
	n := len(l.visible())
	if n == 0 {
		return
	}
	l.cursor += delta
	if l.cursor < 0 {
		l.cursor = 0
	}
	if l.cursor >= n {
		l.cursor = n - 1
	}
}

func (l *TaskList) View(focused bool) string {
	view := l.visible()
	if len(view) == 0 {
		return ui.Current().Muted.Render(emptyListMessage)
	}
	lines := make([]string, 0, len(view))
	for i, t := range view {
		lines = append(lines, l.Row(t.ID).View(t, focused && i == l.cursor))
	}
	return strings.Join(lines, "\n")
}
