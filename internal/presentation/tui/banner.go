package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"
)

// PrintBanner writes the tablefsm banner to w, coloured for the terminal behind it.
func PrintBanner(w io.Writer, version string) {
	out := termenv.NewOutput(w)
	lines := []struct {
		text  string
		color string
	}{
		{" _        _     _       __", "#818cf8"},
		{"| |_ __ _| |__ | | ___ / _|___ _ __ ___", "#a78bfa"},
		{"| __/ _` | '_ \\| |/ _ \\ |_/ __| '_ ` _ \\", "#c084fc"},
		{"| || (_| | |_) | |  __/  _\\__ \\ | | | | |", "#e879f9"},
		{" \\__\\__,_|_.__/|_|\\___|_| |___/_| |_| |_|", "#f472b6"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, out.String(l.text).Foreground(out.Color(l.color)))
	}
	if v := strings.TrimSpace(version); v != "" {
		fmt.Fprintln(w, out.String("  v"+v).Faint())
	}
	fmt.Fprintln(w)
}

// Prompt returns the input prompt, coloured when w is a terminal.
func Prompt(w io.Writer, label string) string {
	out := termenv.NewOutput(w)
	return out.String(label + "> ").Foreground(out.Color("#818cf8")).Bold().String()
}

// Failure colours an error line.
func Failure(w io.Writer, msg string) string {
	out := termenv.NewOutput(w)
	return out.String(msg).Foreground(out.Color("#fb7185")).String()
}
