package taskstore

import (
	"errors"
	"iter"
	"strings"

	"github.com/Makepad-fr/taskboard/internal/model"
)

// In-memory task storage. Nothing is written anywhere; the board lives
// as long as the process. Not safe for concurrent use: the TUI applies
// every intent from its single Update loop.

var (
	ErrEmptyText = errors.New("task text is empty")
	ErrNotFound  = errors.New("task not found")
)

// Update carries the fields an Edit replaces. Nil fields keep their value.
type Update struct {
	Text      *string
	Category  *string
	Completed *bool
}

// Store owns the ordered task collection and the active filter.
type Store struct {
	tasks  []model.Task
	filter string
	nextID int64
}

func New() *Store {
	return &Store{filter: model.FilterAll}
}

// Add appends a task. Text and category are trimmed first.
func (s *Store) Add(text, category string) (model.Task, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return model.Task{}, ErrEmptyText
	}
	s.nextID++
	t := model.Task{
		ID:       s.nextID,
		Text:     text,
		Category: strings.TrimSpace(category),
	}
	s.tasks = append(s.tasks, t)
	return t, nil
}

func (s *Store) Delete(id int64) error {
	i := s.index(id)
	if i < 0 {
		return ErrNotFound
	}
	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	return nil
}

// Edit replaces the mutable fields of the task in place.
// The result must still have non-empty text or nothing changes.
func (s *Store) Edit(id int64, u Update) (model.Task, error) {
	i := s.index(id)
	if i < 0 {
		return model.Task{}, ErrNotFound
	}
	t := s.tasks[i]
	if u.Text != nil {
		t.Text = strings.TrimSpace(*u.Text)
	}
	if u.Category != nil {
		t.Category = strings.TrimSpace(*u.Category)
	}
	if u.Completed != nil {
		t.Completed = *u.Completed
	}
	if t.Text == "" {
		return model.Task{}, ErrEmptyText
	}
	s.tasks[i] = t
	return t, nil
}

func (s *Store) ToggleCompletion(id int64) (model.Task, error) {
	i := s.index(id)
	if i < 0 {
		return model.Task{}, ErrNotFound
	}
	s.tasks[i].Completed = !s.tasks[i].Completed
	return s.tasks[i], nil
}

// SetFilter accepts any value; it is not checked against Categories.
// The empty string means FilterAll.
func (s *Store) SetFilter(v string) {
	if v == "" {
		v = model.FilterAll
	}
	s.filter = v
}

func (s *Store) Filter() string { return s.filter }

// Categories yields the distinct non-empty categories in first-seen order.
// Each range over the result walks the current collection again.
func (s *Store) Categories() iter.Seq[string] {
	return func(yield func(string) bool) {
		seen := make(map[string]struct{})
		for _, t := range s.tasks {
			if t.Category == "" {
				continue
			}
			if _, dup := seen[t.Category]; dup {
				continue
			}
			seen[t.Category] = struct{}{}
			if !yield(t.Category) {
				return
			}
		}
	}
}

// Filtered returns the tasks matching the active filter, in order.
func (s *Store) Filtered() []model.Task {
	out := make([]model.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if t.Matches(s.filter) {
			out = append(out, t)
		}
	}
	return out
}

// Tasks returns a copy of the whole collection.
func (s *Store) Tasks() []model.Task {
	out := make([]model.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

func (s *Store) Get(id int64) (model.Task, bool) {
	i := s.index(id)
	if i < 0 {
		return model.Task{}, false
	}
	return s.tasks[i], true
}

func (s *Store) Len() int { return len(s.tasks) }

// Stats counts done and pending tasks across the whole collection.
func (s *Store) Stats() (done, pending int) {
	for _, t := range s.tasks {
		if t.Completed {
			done++
		} else {
			pending++
		}
	}
	return
}

func (s *Store) index(id int64) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}
