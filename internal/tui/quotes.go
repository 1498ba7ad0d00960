package tui

import "math/rand/v2"

var quotes = []string{
	"Keep going, you're doing great!",
	"One task at a time, one step closer.",
	"Success is the sum of small efforts repeated.",
	"Believe you can and you're halfway there.",
}

func pickQuote(r *rand.Rand) string {
	if r == nil {
		return quotes[rand.IntN(len(quotes))]
	}
	return quotes[r.IntN(len(quotes))]
}
