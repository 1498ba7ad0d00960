package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/Makepad-fr/taskboard/internal/store/taskstore"
)

// Intent is one line of a board script.
//
//	add <text> [| <category>]
//	edit <id> <text> [| <category>]
//	delete <id>
//	toggle <id>
//	filter <value>
type Intent struct {
	Line     int
	Verb     string
	ID       int64
	Text     string
	Category *string // nil when the line has no "| category" part
}

// ParseScript reads intents, skipping blank lines and # comments.
func ParseScript(r io.Reader) ([]Intent, error) {
	var out []Intent
	sc := bufio.NewScanner(r)
	n := 0
	for sc.Scan() {
		n++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		in, err := parseIntent(n, line)
		if err != nil {
			return nil, err
		}
		out = append(out, in)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return out, nil
}

func parseIntent(n int, line string) (Intent, error) {
	verb, rest := cutWord(line)
	in := Intent{Line: n, Verb: strings.ToLower(verb)}

	switch in.Verb {
	case "add":
		in.Text, in.Category = splitCategory(rest)
	case "edit":
		idStr, body := cutWord(rest)
		id, err := parseID(n, idStr)
		if err != nil {
			return Intent{}, err
		}
		in.ID = id
		in.Text, in.Category = splitCategory(body)
	case "delete", "toggle":
		id, err := parseID(n, rest)
		if err != nil {
			return Intent{}, err
		}
		in.ID = id
	case "filter":
		in.Text = rest
	default:
		return Intent{}, fmt.Errorf("line %d: unknown intent %q", n, verb)
	}
	return in, nil
}

// cutWord splits off the first whitespace-delimited word.
func cutWord(s string) (word, rest string) {
	s = strings.TrimSpace(s)
	i := strings.IndexFunc(s, unicode.IsSpace)
	if i < 0 {
		return s, ""
	}
	return s[:i], strings.TrimSpace(s[i:])
}

func parseID(n int, s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("line %d: not an id: %q", n, s)
	}
	return id, nil
}

func splitCategory(s string) (string, *string) {
	text, cat, ok := strings.Cut(s, "|")
	if !ok {
		return strings.TrimSpace(s), nil
	}
	cat = strings.TrimSpace(cat)
	return strings.TrimSpace(text), &cat
}

// Apply runs the intents in order against s. Rejected intents are skipped
// and returned, each wrapping the store's sentinel error.
func Apply(s *taskstore.Store, intents []Intent) []error {
	var rejected []error
	for _, in := range intents {
		var err error
		switch in.Verb {
		case "add":
			cat := ""
			if in.Category != nil {
				cat = *in.Category
			}
			_, err = s.Add(in.Text, cat)
		case "edit":
			text := in.Text
			_, err = s.Edit(in.ID, taskstore.Update{Text: &text, Category: in.Category})
		case "delete":
			err = s.Delete(in.ID)
		case "toggle":
			_, err = s.ToggleCompletion(in.ID)
		case "filter":
			s.SetFilter(in.Text)
		}
		if err != nil {
			rejected = append(rejected, fmt.Errorf("line %d: %s: %w", in.Line, in.Verb, err))
		}
	}
	return rejected
}
