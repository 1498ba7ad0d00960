package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/Makepad-fr/taskboard/internal/cli"
	"github.com/Makepad-fr/taskboard/internal/ui"
)

func main() {
	// Root flags (apply to every subcommand)
	group := flag.Bool("group", false, "render: group output by pending/done")
	theme := flag.String("theme", envOr("TASKBOARD_THEME", "classic"), "color theme: classic, neon, mono")
	noColor := flag.Bool("no-color", os.Getenv("NO_COLOR") != "", "disable colors")
	forceColor := flag.Bool("color", false, "force colors even when stdout is not a terminal")
	debug := flag.Bool("debug", envBool("TASKBOARD_DEBUG"), "log intents to taskboard-debug.log")
	flag.Parse()

	ui.SetColorForcing(*forceColor, *noColor)
	ui.SetTheme(*theme)

	code := cli.Run(flag.Args(), cli.Options{
		Group: *group,
		Debug: *debug,
	})
	if code != 0 {
		fmt.Fprintln(os.Stderr)
	}
	os.Exit(code)
}

// envBool reads key with strconv.ParseBool; unset or unparsable is false.
func envBool(key string) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	return err == nil && v
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
