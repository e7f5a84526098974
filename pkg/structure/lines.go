package structure

import (
	"slices"
	"strings"

	"scan-qa/pkg/models"
)

// Line is a group of tokens sharing roughly the same vertical position.
// AnchorY is the y of the first token placed on the line and never moves.
type Line struct {
	AnchorY int            `json:"anchor_y"`
	Tokens  []models.Token `json:"tokens"`
}

// Text joins the line's tokens with single spaces
func (l Line) Text() string {
	parts := make([]string, len(l.Tokens))
	for i, t := range l.Tokens {
		parts[i] = t.Text
	}
	return strings.Join(parts, " ")
}

// GroupIntoLines clusters tokens into lines in a single pass over emission
// order. A token joins the first line whose anchor is strictly closer than
// yThreshold; otherwise it starts a new line anchored at its own y.
func GroupIntoLines(tokens []models.Token, yThreshold int) []Line {
	if yThreshold <= 0 {
		yThreshold = DefaultYThreshold
	}

	var lines []Line
	for _, tok := range tokens {
		placed := false
		for i := range lines {
			if abs(tok.Y-lines[i].AnchorY) < yThreshold {
				lines[i].Tokens = append(lines[i].Tokens, tok)
				placed = true
				break
			}
		}
		if !placed {
			lines = append(lines, Line{AnchorY: tok.Y, Tokens: []models.Token{tok}})
		}
	}

	for i := range lines {
		slices.SortStableFunc(lines[i].Tokens, func(a, b models.Token) int { return a.X - b.X })
	}
	slices.SortStableFunc(lines, func(a, b Line) int { return a.AnchorY - b.AnchorY })

	return lines
}

// RenderKeptLines renders each line as text and keeps only those carrying at
// least one price token. Lines without a price are dropped before any
// classification happens.
func RenderKeptLines(lines []Line, prices *PriceDetector) []string {
	kept := make([]string, 0, len(lines))
	for _, l := range lines {
		if !slices.ContainsFunc(l.Tokens, func(t models.Token) bool { return prices.IsPrice(t.Text) }) {
			continue
		}
		kept = append(kept, l.Text())
	}
	return kept
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
