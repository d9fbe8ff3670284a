package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the reVISit banner and version to w.
func PrintBanner(w io.Writer, version string) {
	out := termenv.NewOutput(w)
	lines := []struct {
		text  string
		color string
	}{
		{"                __     _____ ____  _ _   ", "#5eead4"},
		{"  _ __ ___  \\ \\   / /_ _/ ___|(_) |_ ", "#2dd4bf"},
		{" | '__/ _ \\  \\ \\ / / | |\\___ \\| | __|", "#14b8a6"},
		{" | | |  __/   \\ V /  | | ___) | | |_ ", "#0d9488"},
		{" |_|  \\___|    \\_/  |___|____/|_|\\__|", "#0f766e"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, out.String(l.text).Foreground(out.Color(l.color)))
	}
	fmt.Fprintln(w, out.String("  study config builder "+version).Faint())
	fmt.Fprintln(w)
}
