package cli

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"slices"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/Makepad-fr/taskboard/internal/model"
	"github.com/Makepad-fr/taskboard/internal/store/taskstore"
	"github.com/Makepad-fr/taskboard/internal/tui"
	"github.com/Makepad-fr/taskboard/internal/ui"
)

// Options tune output behavior from root flags.
type Options struct {
	Group    bool   // render grouped by pending/done
	Debug    bool   // log intents to DebugLog while the board runs
	DebugLog string // defaults to taskboard-debug.log

	Stdin          io.Reader // nil means os.Stdin
	Stdout, Stderr io.Writer // nil means os.Stdout / os.Stderr
}

func (o Options) stdin() io.Reader {
	if o.Stdin == nil {
		return os.Stdin
	}
	return o.Stdin
}

func (o Options) stdout() io.Writer {
	if o.Stdout == nil {
		return os.Stdout
	}
	return o.Stdout
}

func (o Options) stderr() io.Writer {
	if o.Stderr == nil {
		return os.Stderr
	}
	return o.Stderr
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func Run(args []string, opt Options) int {
	ui.SetOutput(opt.stdout(), opt.stderr())
	if len(args) == 0 {
		args = []string{"ui"}
	}
	cmd, a := args[0], args[1:]

	switch cmd {
	case "help", "-h", "--help":
		PrintHelp(opt.stdout())
		return 0
	case "ui":
		return doUI(a, opt)
	case "render":
		return doRender(a, opt)
	}

	ui.Fail("unknown subcommand: " + cmd)
	fmt.Fprintln(opt.stderr())
	PrintHelp(opt.stderr())
	return 2
}

func PrintHelp(w io.Writer) {
	fmt.Fprint(w, `taskboard - an in-memory task board

Usage:
  taskboard [flags] <subcommand> [args]

Subcommands:
  ui [--seed <file>]           Interactive board (default)
  render [--json] [<file>]     Apply an intent script (file or stdin) and print the view
  help                         Show this help

Flags:
  --group                      render: group by pending/done
  --theme classic|neon|mono    Color theme (env TASKBOARD_THEME)
  --no-color                   Disable colors (env NO_COLOR)
  --debug                      Log intents to taskboard-debug.log (env TASKBOARD_DEBUG)

Script lines:
  add <text> [| <category>]
  edit <id> <text> [| <category>]
  delete <id>
  toggle <id>
  filter <All|category>

Examples:
  taskboard
  printf 'add Buy milk | Errand\nadd Write report | Work\nfilter Work\n' | taskboard render
`)
}

// -------------- subcommand impls ----------------

func doUI(args []string, opt Options) int {
	fs := flag.NewFlagSet("ui", flag.ContinueOnError)
	fs.SetOutput(opt.stderr())
	seed := fs.String("seed", "", "intent script applied before the board opens")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	s := taskstore.New()
	if *seed != "" {
		if code := applyFile(s, *seed); code != 0 {
			return code
		}
	}

	cfg := tui.Config{}
	if opt.Debug {
		path := opt.DebugLog
		if path == "" {
			path = "taskboard-debug.log"
		}
		f, err := tea.LogToFile(path, "taskboard")
		if err != nil {
			ui.Fail("debug log: " + err.Error())
			return 1
		}
		defer f.Close()
		cfg.Logger = log.Default()
	}

	if err := tui.Run(s, cfg); err != nil {
		ui.Fail("tui: " + err.Error())
		return 1
	}
	done, pending := s.Stats()
	ui.OK(fmt.Sprintf("board closed: %d done, %d pending (nothing saved)", done, pending))
	return 0
}

func doRender(args []string, opt Options) int {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	fs.SetOutput(opt.stderr())
	asJSON := fs.Bool("json", false, "print the filtered view as JSON")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	s := taskstore.New()
	switch fs.NArg() {
	case 0:
		if code := applyScript(s, opt.stdin()); code != 0 {
			return code
		}
	case 1:
		if code := applyFile(s, fs.Arg(0)); code != 0 {
			return code
		}
	default:
		ui.Fail("usage: taskboard render [--json] [<file>]")
		return 2
	}

	if *asJSON {
		return printJSON(opt.stdout(), s)
	}

	done, pending := s.Stats()
	th := ui.Current()
	header := fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		th.Title.Render("Task Board"),
		th.Success.Render(th.SymDone), done,
		th.Pending.Render(th.SymPending), pending,
		th.Accent.Render("Total"), s.Len(),
	)

	var lines []string
	lines = append(lines, header)
	lines = append(lines, th.Muted.Render(ui.ProgressBar(done, done+pending, 28)))
	lines = append(lines, th.Muted.Render("Filter: ")+s.Filter())
	lines = append(lines, "")

	view := s.Filtered()
	if opt.Group {
		lines = append(lines, groupLines(view)...)
	} else {
		lines = append(lines, flatLines(view)...)
	}
	ui.Panel(lines)
	return 0
}

func applyFile(s *taskstore.Store, path string) int {
	f, err := os.Open(path)
	if err != nil {
		ui.Fail("open script: " + err.Error())
		return 1
	}
	defer f.Close()
	return applyScript(s, f)
}

func applyScript(s *taskstore.Store, r io.Reader) int {
	intents, err := ParseScript(r)
	if err != nil {
		ui.Fail(err.Error())
		return 2
	}
	for _, rej := range Apply(s, intents) {
		switch {
		case errors.Is(rej, taskstore.ErrNotFound), errors.Is(rej, taskstore.ErrEmptyText):
			ui.Warn("skipped " + rej.Error())
		default:
			ui.Fail(rej.Error())
			return 1
		}
	}
	return 0
}

type boardJSON struct {
	Filter     string       `json:"filter"`
	Categories []string     `json:"categories"`
	Tasks      []model.Task `json:"tasks"`
}

func printJSON(w io.Writer, s *taskstore.Store) int {
	out := boardJSON{
		Filter:     s.Filter(),
		Categories: slices.Collect(s.Categories()),
		Tasks:      s.Filtered(),
	}
	if out.Categories == nil {
		out.Categories = []string{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		ui.Fail("json encode: " + err.Error())
		return 1
	}
	return 0
}

// -------------- rendering helpers --------------

func flatLines(tasks []model.Task) []string {
	th := ui.Current()
	if len(tasks) == 0 {
		return []string{th.Muted.Render("No tasks available.")}
	}
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		idx := fmt.Sprintf("%3s", fmt.Sprintf("#%d", t.ID))
		box := th.Muted.Render(th.BoxUnchecked)
		text := ansi.Truncate(t.Text, 80, "...")
		if t.Completed {
			box = th.Success.Render(th.BoxChecked)
			text = th.Done.Render(text)
		}
		line := fmt.Sprintf("%s %s %s", th.Muted.Render(idx), box, text)
		if t.Category != "" {
			line += " " + th.Badge.Render(t.Category)
		}
		out = append(out, line)
	}
	return out
}

func groupLines(tasks []model.Task) []string {
	var pend, done []model.Task
	for _, t := range tasks {
		if t.Completed {
			done = append(done, t)
		} else {
			pend = append(pend, t)
		}
	}
	th := ui.Current()
	var lines []string
	lines = append(lines, th.Accent.Render("Pending"))
	if len(pend) == 0 {
		lines = append(lines, th.Muted.Render("(none)"))
	} else {
		lines = append(lines, flatLines(pend)...)
	}
	lines = append(lines, "")
	lines = append(lines, th.Accent.Render("Done"))
	if len(done) == 0 {
		lines = append(lines, th.Muted.Render("(none)"))
	} else {
		lines = append(lines, flatLines(done)...)
	}
	return lines
}
