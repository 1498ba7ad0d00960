package tui

import (
	"bytes"
	"log"
	"math/rand/v2"
	"slices"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/taskboard/internal/model"
	"github.com/Makepad-fr/taskboard/internal/store/taskstore"
)

func keyRunes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

var (
	keyEnter    = tea.KeyMsg{Type: tea.KeyEnter}
	keyTab      = tea.KeyMsg{Type: tea.KeyTab}
	keyShiftTab = tea.KeyMsg{Type: tea.KeyShiftTab}
	keyEsc      = tea.KeyMsg{Type: tea.KeyEsc}
	keyDown     = tea.KeyMsg{Type: tea.KeyDown}
	keyRight    = tea.KeyMsg{Type: tea.KeyRight}
	keyLeft     = tea.KeyMsg{Type: tea.KeyLeft}
	keyCtrlC    = tea.KeyMsg{Type: tea.KeyCtrlC}
)

func newTestBoard(t *testing.T) (Board, *taskstore.Store) {
	t.Helper()
	s := taskstore.New()
	return NewBoard(s, Config{Rand: rand.New(rand.NewPCG(1, 2))}), s
}

func send(t *testing.T, b Board, msgs ...tea.Msg) Board {
	t.Helper()
	for _, msg := range msgs {
		m, _ := b.Update(msg)
		var ok bool
		b, ok = m.(Board)
		require.True(t, ok)
	}
	return b
}

// addTask types into the entry form and submits, leaving focus on the form.
func addTask(t *testing.T, b Board, text, category string) Board {
	t.Helper()
	msgs := []tea.Msg{}
	if text != "" {
		msgs = append(msgs, keyRunes(text))
	}
	msgs = append(msgs, keyTab)
	if category != "" {
		msgs = append(msgs, keyRunes(category))
	}
	msgs = append(msgs, keyEnter)
	return send(t, b, msgs...)
}

func texts(tasks []model.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.Text)
	}
	return out
}

func TestBoard_AddThroughForm(t *testing.T) {
	b, s := newTestBoard(t)

	b = addTask(t, b, "Buy milk", "Errand")
	b = addTask(t, b, "Write report", "Work")

	require.Equal(t, 2, s.Len())
	assert.Equal(t, []string{"Buy milk", "Write report"}, texts(s.Tasks()))
	assert.Equal(t, "Work", s.Tasks()[1].Category)

	text, category := b.form.Drafts()
	assert.Empty(t, text)
	assert.Empty(t, category)
	assert.Equal(t, focusForm, b.focus)
}

func TestBoard_EmptySubmitKeepsDrafts(t *testing.T) {
	b, s := newTestBoard(t)

	b = send(t, b, keyRunes("   "), keyTab, keyRunes("Work"), keyEnter)

	assert.Zero(t, s.Len())
	text, category := b.form.Drafts()
	assert.Equal(t, "   ", text)
	assert.Equal(t, "Work", category)
}

func TestBoard_LongDraftsAreNotCut(t *testing.T) {
	b, s := newTestBoard(t)
	long := strings.Repeat("a", 250)

	b = addTask(t, b, long, "")
	require.Equal(t, 1, s.Len())
	assert.Equal(t, long, s.Tasks()[0].Text)

	longer := strings.Repeat("b", 260)
	b = send(t, b, keyEsc, keyRunes("e"))
	for range 250 {
		b = send(t, b, tea.KeyMsg{Type: tea.KeyBackspace})
	}
	b = send(t, b, keyRunes(longer), keyEnter)
	assert.Equal(t, longer, s.Tasks()[0].Text)
}

func TestBoard_QIsTypedInForm(t *testing.T) {
	b, s := newTestBoard(t)

	b = send(t, b, keyRunes("q"), keyEnter)

	require.Equal(t, 1, s.Len())
	assert.Equal(t, "q", s.Tasks()[0].Text)
}

func TestBoard_CtrlCQuitsFromAnywhere(t *testing.T) {
	b, _ := newTestBoard(t)

	_, cmd := b.Update(keyCtrlC)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestBoard_FocusCycle(t *testing.T) {
	b, _ := newTestBoard(t)

	// text -> category -> filter -> list -> form
	b = send(t, b, keyTab)
	assert.Equal(t, focusForm, b.focus)
	b = send(t, b, keyTab)
	assert.Equal(t, focusFilter, b.focus)
	b = send(t, b, keyTab)
	assert.Equal(t, focusList, b.focus)
	b = send(t, b, keyTab)
	assert.Equal(t, focusForm, b.focus)

	// re-entering the form lands on the text field, so shift+tab leaves it
	assert.Equal(t, fieldText, b.form.field)
	b = send(t, b, keyShiftTab)
	assert.Equal(t, focusList, b.focus)
}

func TestBoard_ToggleAndUndo(t *testing.T) {
	b, s := newTestBoard(t)
	b = addTask(t, b, "A", "")
	b = send(t, b, keyEsc, keyRunes("x"))

	task := s.Tasks()[0]
	assert.True(t, task.Completed)
	assert.Contains(t, b.View(), "Undo")

	b = send(t, b, keyRunes("u"))
	assert.False(t, s.Tasks()[0].Completed)

	// single level: a second undo does nothing
	b = send(t, b, keyRunes("u"))
	assert.False(t, s.Tasks()[0].Completed)
	assert.Contains(t, b.View(), "Complete")
}

func TestBoard_DeleteSelected(t *testing.T) {
	b, s := newTestBoard(t)
	b = addTask(t, b, "A", "")
	b = addTask(t, b, "B", "")
	b = addTask(t, b, "C", "")

	b = send(t, b, keyEsc, keyDown, keyRunes("d"))
	assert.Equal(t, []string{"A", "C"}, texts(s.Tasks()))

	b = send(t, b, keyDown, keyRunes("d"), keyRunes("d"))
	assert.Zero(t, s.Len())
	assert.Contains(t, b.View(), emptyListMessage)
}

func TestBoard_InlineEdit(t *testing.T) {
	b, s := newTestBoard(t)
	b = addTask(t, b, "A", "Home")
	b = addTask(t, b, "B", "")

	b = send(t, b, keyEsc, keyRunes("e"))
	require.NotNil(t, b.list.EditingRow())

	// seeded from the task; append and switch to category
	b = send(t, b, keyRunes("2"), keyTab, keyRunes("!"), keyEnter)

	assert.Nil(t, b.list.EditingRow())
	got := s.Tasks()
	assert.Equal(t, "A2", got[0].Text)
	assert.Equal(t, "Home!", got[0].Category)
	assert.Equal(t, "B", got[1].Text, "position and other tasks unchanged")
}

func TestBoard_InlineEditRejectsEmptyText(t *testing.T) {
	b, s := newTestBoard(t)
	b = addTask(t, b, "A", "")
	b = send(t, b, keyEsc, keyRunes("e"))

	b = send(t, b,
		tea.KeyMsg{Type: tea.KeyBackspace},
		keyTab, keyRunes("B"),
		keyEnter,
	)

	assert.NotNil(t, b.list.EditingRow(), "stays in edit mode")
	assert.Equal(t, "A", s.Tasks()[0].Text)
	assert.Empty(t, s.Tasks()[0].Category)

	b = send(t, b, keyEsc)
	assert.Nil(t, b.list.EditingRow())
	assert.Equal(t, "A", s.Tasks()[0].Text)
}

func TestBoard_EditCancelDiscardsDrafts(t *testing.T) {
	b, s := newTestBoard(t)
	b = addTask(t, b, "A", "")
	b = send(t, b, keyEsc, keyRunes("e"), keyRunes("zzz"), keyEsc)

	assert.Equal(t, "A", s.Tasks()[0].Text)

	// re-entering edit seeds from the task again
	b = send(t, b, keyRunes("e"), keyEnter)
	assert.Equal(t, "A", s.Tasks()[0].Text)
	assert.Nil(t, b.list.EditingRow())
}

func TestBoard_FilterCycle(t *testing.T) {
	b, s := newTestBoard(t)
	b = addTask(t, b, "Buy milk", "Errand")
	b = addTask(t, b, "Write report", "Work")
	b = addTask(t, b, "Call mom", "")

	b = send(t, b, keyTab, keyTab) // category -> filter
	require.Equal(t, focusFilter, b.focus)

	b = send(t, b, keyRight, keyRight)
	assert.Equal(t, "Work", s.Filter())
	assert.Equal(t, []string{"Write report"}, texts(s.Filtered()))

	b = send(t, b, keyRight)
	assert.Equal(t, model.FilterAll, s.Filter())

	b = send(t, b, keyLeft)
	assert.Equal(t, "Work", s.Filter())

	view := b.View()
	assert.Contains(t, view, "Write report")
	assert.NotContains(t, view, "Buy milk")
}

func TestBoard_StaleFilterShowsPlaceholder(t *testing.T) {
	b, s := newTestBoard(t)
	b = addTask(t, b, "Write report", "Work")
	s.SetFilter("Work")

	b = send(t, b, keyEsc, keyRunes("d"))

	assert.Equal(t, "Work", s.Filter())
	assert.Empty(t, slices.Collect(s.Categories()))
	view := b.View()
	assert.Contains(t, view, emptyListMessage)
	assert.Contains(t, view, "no longer present")

	b = send(t, b, keyRunes("f"), keyRight)
	assert.Equal(t, model.FilterAll, s.Filter())
}

func TestBoard_LogsIntents(t *testing.T) {
	var buf bytes.Buffer
	s := taskstore.New()
	b := NewBoard(s, Config{Logger: log.New(&buf, "", 0)})

	b = addTask(t, b, "A", "")
	b = send(t, b, keyEnter)

	assert.Contains(t, buf.String(), `add id=1 text="A"`)
	assert.Contains(t, buf.String(), "add rejected: task text is empty")
}

func TestPickQuote(t *testing.T) {
	q := pickQuote(rand.New(rand.NewPCG(7, 7)))
	assert.Contains(t, quotes, q)
	assert.Contains(t, quotes, pickQuote(nil))
}
