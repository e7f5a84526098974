package main

import (
	"fmt"
	"io"

	"scan-qa/pkg/models"

	"github.com/fatih/color"
)

var (
	headingColor = color.New(color.FgCyan, color.Bold)
	labelColor   = color.New(color.FgYellow)
	okColor      = color.New(color.FgGreen)
	warnColor    = color.New(color.FgRed)
)

func printHeading(w io.Writer, format string, a ...any) {
	headingColor.Fprintf(w, format+"\n", a...)
}

func printField(w io.Writer, name string, value any) {
	labelColor.Fprintf(w, "%-10s ", name+":")
	fmt.Fprintln(w, value)
}

// printSections writes each non-empty section with its lines indented
func printSections(w io.Writer, s models.Sections) {
	if s.Empty() {
		warnColor.Fprintln(w, "No priced lines found.")
		return
	}
	for _, sec := range []struct {
		name  string
		lines []string
	}{
		{"Details", s.Header},
		{"Items", s.Items},
		{"Summary", s.Totals},
	} {
		if len(sec.lines) == 0 {
			continue
		}
		printHeading(w, "%s (%d)", sec.name, len(sec.lines))
		for _, l := range sec.lines {
			fmt.Fprintf(w, "  %s\n", l)
		}
	}
}
