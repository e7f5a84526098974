// Package markdown renders structured invoice sections as a Markdown document.
package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"scan-qa/pkg/models"

	"github.com/yuin/goldmark"
)

// DefaultTitle heads every rendered document unless overridden
const DefaultTitle = "Invoice"

// Render lays out the sections under a top-level title. Empty sections are omitted.
func Render(title string, s models.Sections) string {
	if title == "" {
		title = DefaultTitle
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", title)

	section := func(heading string, lines []string) {
		if len(lines) == 0 {
			return
		}
		fmt.Fprintf(&b, "## %s\n\n", heading)
		for _, l := range lines {
			fmt.Fprintf(&b, "- %s\n", l)
		}
		b.WriteString("\n")
	}
	section("Details", s.Header)
	section("Items", s.Items)
	section("Summary", s.Totals)

	return strings.TrimRight(b.String(), "\n") + "\n"
}

// ToHTML converts rendered Markdown into an HTML fragment
func ToHTML(md string) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(md), &buf); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}
	return buf.String(), nil
}
