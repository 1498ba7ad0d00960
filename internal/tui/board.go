// Package tui is the interactive task board: an entry form, a category
// filter and the task list, all reading from and writing through a
// taskstore.Store.
package tui

import (
	"errors"
	"fmt"
	"io"
	"log"
	"math/rand/v2"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Makepad-fr/taskboard/internal/store/taskstore"
	"github.com/Makepad-fr/taskboard/internal/ui"
)

type focus int

const (
	focusForm focus = iota
	focusFilter
	focusList
	focusCount
)

// Config tunes a Board. The zero value is usable.
type Config struct {
	Logger *log.Logger // intent log; nil discards
	Rand   *rand.Rand  // quote picker; nil uses the global source
}

// Board is the Bubble Tea model for the whole widget.
type Board struct {
	store  *taskstore.Store
	form   EntryForm
	filter FilterSelector
	list   TaskList

	keys  keyMap
	help  help.Model
	focus focus

	// single-level undo for the last completion toggle
	lastToggled int64

	status string
	quote  string
	log    *log.Logger
}

func NewBoard(s *taskstore.Store, cfg Config) Board {
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	h := help.New()
	h.Styles.ShortKey = ui.Current().Accent
	h.Styles.ShortDesc = ui.Current().Help
	h.Styles.FullKey = ui.Current().Accent
	h.Styles.FullDesc = ui.Current().Help

	b := Board{
		store:  s,
		form:   NewEntryForm(),
		filter: FilterSelector{store: s},
		list:   NewTaskList(s),
		keys:   defaultKeys(),
		help:   h,
		quote:  pickQuote(cfg.Rand),
		log:    logger,
	}
	b.form.Focus()
	return b
}

// Run starts the board on the alternate screen and blocks until quit.
func Run(s *taskstore.Store, cfg Config) error {
	p := tea.NewProgram(NewBoard(s, cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (b Board) Init() tea.Cmd { return textinput.Blink }

func (b Board) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.help.Width = msg.Width - 4
		return b, nil
	case tea.KeyMsg:
		if key.Matches(msg, b.keys.ForceQuit) {
			return b, tea.Quit
		}
		var cmd tea.Cmd
		switch b.focus {
		case focusForm:
			cmd = b.updateForm(msg)
		case focusFilter:
			cmd = b.updateFilter(msg)
		default:
			cmd = b.updateList(msg)
		}
		return b, cmd
	}

	// cursor blink and friends go to whichever input owns the cursor
	var cmd tea.Cmd
	if b.focus == focusForm {
		cmd = b.form.Update(msg)
	} else if r := b.list.EditingRow(); r != nil {
		cmd = r.Update(msg)
	}
	return b, cmd
}

func (b *Board) setFocus(f focus) tea.Cmd {
	b.focus = (f + focusCount) % focusCount
	if b.focus == focusForm {
		return b.form.FocusFirst()
	}
	b.form.Blur()
	return nil
}

func (b *Board) updateForm(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, b.keys.Submit):
		t, err := b.form.Submit(b.store)
		if err != nil {
			b.log.Printf("add rejected: %v", err)
			return nil
		}
		b.log.Printf("add id=%d text=%q category=%q", t.ID, t.Text, t.Category)
		b.status = "added " + t.Text
		return nil
	case key.Matches(msg, b.keys.Next):
		if cmd, ok := b.form.NextField(); ok {
			return cmd
		}
		return b.setFocus(b.focus + 1)
	case key.Matches(msg, b.keys.Prev):
		if cmd, ok := b.form.PrevField(); ok {
			return cmd
		}
		return b.setFocus(b.focus - 1)
	case key.Matches(msg, b.keys.Back):
		return b.setFocus(focusList)
	}
	return b.form.Update(msg)
}

func (b *Board) updateFilter(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, b.keys.Left):
		b.log.Printf("filter %q", b.filter.Cycle(-1))
	case key.Matches(msg, b.keys.Right):
		b.log.Printf("filter %q", b.filter.Cycle(1))
	case key.Matches(msg, b.keys.Next):
		return b.setFocus(b.focus + 1)
	case key.Matches(msg, b.keys.Prev):
		return b.setFocus(b.focus - 1)
	case key.Matches(msg, b.keys.Back):
		return b.setFocus(focusList)
	case key.Matches(msg, b.keys.Add):
		return b.setFocus(focusForm)
	case key.Matches(msg, b.keys.Help):
		b.help.ShowAll = !b.help.ShowAll
	case key.Matches(msg, b.keys.Quit):
		return tea.Quit
	}
	return nil
}

func (b *Board) updateList(msg tea.KeyMsg) tea.Cmd {
	if r := b.list.EditingRow(); r != nil {
		return b.updateEditingRow(r, msg)
	}

	switch {
	case key.Matches(msg, b.keys.Up):
		b.list.Move(-1)
	case key.Matches(msg, b.keys.Down):
		b.list.Move(1)
	case key.Matches(msg, b.keys.Edit):
		if t, ok := b.list.Selected(); ok {
			return b.list.Row(t.ID).StartEdit(t)
		}
	case key.Matches(msg, b.keys.Delete):
		if t, ok := b.list.Selected(); ok {
			b.apply("delete", t.ID, b.store.Delete(t.ID))
			if b.lastToggled == t.ID {
				b.lastToggled = 0
			}
			b.status = "deleted " + t.Text
		}
	case key.Matches(msg, b.keys.Toggle):
		if t, ok := b.list.Selected(); ok {
			_, err := b.store.ToggleCompletion(t.ID)
			b.apply("toggle", t.ID, err)
			if err == nil {
				b.lastToggled = t.ID
			}
		}
	case key.Matches(msg, b.keys.Undo):
		b.undoToggle()
	case key.Matches(msg, b.keys.Add):
		return b.setFocus(focusForm)
	case key.Matches(msg, b.keys.Filter):
		return b.setFocus(focusFilter)
	case key.Matches(msg, b.keys.Next):
		return b.setFocus(b.focus + 1)
	case key.Matches(msg, b.keys.Prev):
		return b.setFocus(b.focus - 1)
	case key.Matches(msg, b.keys.Help):
		b.help.ShowAll = !b.help.ShowAll
	case key.Matches(msg, b.keys.Quit):
		return tea.Quit
	}
	return nil
}

func (b *Board) updateEditingRow(r *TaskRow, msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, b.keys.Submit):
		t, err := r.Save(b.store)
		b.apply("edit", r.id, err)
		if err == nil {
			b.status = "saved " + t.Text
		}
		return nil
	case key.Matches(msg, b.keys.Back):
		r.Cancel()
		return nil
	case key.Matches(msg, b.keys.Next), key.Matches(msg, b.keys.Prev):
		return r.SwitchField()
	}
	return r.Update(msg)
}

func (b *Board) undoToggle() {
	if b.lastToggled == 0 {
		return
	}
	id := b.lastToggled
	b.lastToggled = 0
	t, err := b.store.ToggleCompletion(id)
	b.apply("undo toggle", id, err)
	if err == nil {
		b.status = "undid toggle on " + t.Text
	}
}

func (b *Board) apply(intent string, id int64, err error) {
	switch {
	case err == nil:
		b.log.Printf("%s id=%d", intent, id)
	case errors.Is(err, taskstore.ErrNotFound), errors.Is(err, taskstore.ErrEmptyText):
		b.log.Printf("%s id=%d rejected: %v", intent, id, err)
	default:
		b.log.Printf("%s id=%d failed: %v", intent, id, err)
	}
}

func (b Board) View() string {
	th := ui.Current()
	done, pending := b.store.Stats()
	header := fmt.Sprintf("%s   %s %d  %s %d  %s %d",
		th.Title.Render("Task Board"),
		th.Success.Render(th.SymDone), done,
		th.Pending.Render(th.SymPending), pending,
		th.Accent.Render("Total"), b.store.Len(),
	)

	sections := []string{
		header,
		th.Muted.Render(ui.ProgressBar(done, done+pending, 28)),
		"",
		b.form.View(b.focus == focusForm),
		"",
		b.filter.View(b.focus == focusFilter),
		"",
		b.list.View(b.focus == focusList),
	}
	if b.status != "" {
		sections = append(sections, "", th.Muted.Render(b.status))
	}
	if b.quote != "" {
		sections = append(sections, "", th.Accent.Render(b.quote))
	}
	sections = append(sections, "", b.help.View(b.keys))
	return ui.PanelString(sections...)
}
