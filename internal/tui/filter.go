package tui

import (
	"slices"
	"strings"

	"github.com/Makepad-fr/taskboard/internal/model"
	"github.com/Makepad-fr/taskboard/internal/store/taskstore"
	"github.com/Makepad-fr/taskboard/internal/ui"
)

// FilterSelector offers "All" plus the categories currently present.
// It keeps no options of its own; every call re-derives them.
type FilterSelector struct {
	store *taskstore.Store
}

func (f FilterSelector) Options() []string {
	return append([]string{model.FilterAll}, slices.Collect(f.store.Categories())...)
}

// Cycle moves the active filter by delta through Options, wrapping.
// A filter that no longer names a category restarts from "All".
func (f FilterSelector) Cycle(delta int) string {
	opts := f.Options()
	i := slices.Index(opts, f.store.Filter())
	if i < 0 {
		f.store.SetFilter(model.FilterAll)
		return model.FilterAll
	}
	n := len(opts)
	next := opts[((i+delta)%n+n)%n]
	f.store.SetFilter(next)
	return next
}

// Stale reports whether the active filter matches no derived category.
func (f FilterSelector) Stale() bool {
	return !slices.Contains(f.Options(), f.store.Filter())
}

func (f FilterSelector) View(focused bool) string {
	th := ui.Current()
	active := f.store.Filter()

	label := th.Muted.Render("Filter")
	if focused {
		label = th.Accent.Render("Filter")
	}
	parts := make([]string, 0, 4)
	for _, opt := range f.Options() {
		if opt == active {
			parts = append(parts, th.Selected.Render(" "+opt+" "))
			continue
		}
		parts = append(parts, " "+opt+" ")
	}
	if f.Stale() {
		parts = append(parts, th.Selected.Render(" "+active+" ")+th.Muted.Render(" (no longer present)"))
	}
	return label + "  " + strings.Join(parts, th.Muted.Render("│"))
}
