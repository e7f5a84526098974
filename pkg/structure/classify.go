package structure

import (
	"strings"
	"unicode"
)

// Label is the section a rendered line was assigned to
type Label int

const (
	LabelNone Label = iota
	LabelTotal
	LabelItem
	LabelHeader
)

func (l Label) String() string {
	switch l {
	case LabelTotal:
		return "total"
	case LabelItem:
		return "item"
	case LabelHeader:
		return "header"
	default:
		return "none"
	}
}

// Rule assigns Label to any line Match accepts
type Rule struct {
	Label Label
	Match func(line string) bool
}

// ClassifiedLine is a rendered line with its assigned label
type ClassifiedLine struct {
	Text  string `json:"text"`
	Label Label  `json:"label"`
}

// Classifier evaluates its rules in order; the first match wins
type Classifier struct {
	rules []Rule
}

// NewClassifier builds the invoice rule set: totals, then items, then header
func NewClassifier(cfg Config, prices *PriceDetector) *Classifier {
	total := lowered(cfg.TotalKeywords)
	header := lowered(cfg.HeaderKeywords)

	return &Classifier{rules: []Rule{
		{Label: LabelTotal, Match: func(line string) bool { return containsAny(line, total) }},
		{Label: LabelItem, Match: func(line string) bool {
			return strings.IndexFunc(line, unicode.IsLetter) >= 0 && prices.ContainsPrice(line)
		}},
		{Label: LabelHeader, Match: func(line string) bool { return containsAny(line, header) }},
	}}
}

// NewClassifierWithRules builds a classifier from an explicit ordered rule list
func NewClassifierWithRules(rules ...Rule) *Classifier {
	return &Classifier{rules: append([]Rule(nil), rules...)}
}

// Classify returns the label of the first rule matching line, or LabelNone
func (c *Classifier) Classify(line string) Label {
	for _, r := range c.rules {
		if r.Match(line) {
			return r.Label
		}
	}
	return LabelNone
}

// ClassifyAll labels every line, preserving order
func (c *Classifier) ClassifyAll(lines []string) []ClassifiedLine {
	out := make([]ClassifiedLine, len(lines))
	for i, l := range lines {
		out[i] = ClassifiedLine{Text: l, Label: c.Classify(l)}
	}
	return out
}

func containsAny(line string, keywords []string) bool {
	t := strings.ToLower(line)
	for _, k := range keywords {
		if strings.Contains(t, k) {
			return true
		}
	}
	return false
}

func lowered(words []string) []string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = strings.ToLower(w)
	}
	return out
}
