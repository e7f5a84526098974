package models

import (
	"sort"

	"gorm.io/gorm"
)

// Section names as stored on DocumentLine
const (
	SectionHeader = "header"
	SectionItems  = "items"
	SectionTotals = "totals"
)

// Sections holds the classified lines of a document in top-to-bottom order
type Sections struct {
	Header []string `json:"header"`
	Items  []string `json:"items"`
	Totals []string `json:"totals"`
}

// Empty reports whether no section has any line
func (s Sections) Empty() bool {
	return len(s.Header) == 0 && len(s.Items) == 0 && len(s.Totals) == 0
}

// Document represents a scanned invoice and its structured text
type Document struct {
	gorm.Model
	SourceName string         `json:"source_name"`
	ArtifactID string         `json:"artifact_id" gorm:"index"`
	OCREngine  string         `json:"ocr_engine"`
	Markdown   string         `json:"markdown" gorm:"type:text"`
	TokenCount int            `json:"token_count"`
	LineCount  int            `json:"line_count"`
	Lines      []DocumentLine `json:"lines,omitempty" gorm:"constraint:OnDelete:CASCADE"`
}

// DocumentLine is one classified line of a document
type DocumentLine struct {
	ID         uint   `json:"-" gorm:"primaryKey"`
	DocumentID uint   `json:"-" gorm:"index"`
	Section    string `json:"section"`
	Position   int    `json:"position"`
	Text       string `json:"text"`
}

// SetSections replaces the document lines with the given sections
func (d *Document) SetSections(s Sections) {
	d.Lines = d.Lines[:0]
	pos := 0
	add := func(section string, lines []string) {
		for _, text := range lines {
			d.Lines = append(d.Lines, DocumentLine{Section: section, Position: pos, Text: text})
			pos++
		}
	}
	add(SectionHeader, s.Header)
	add(SectionItems, s.Items)
	add(SectionTotals, s.Totals)
}

// Sections rebuilds the classified sections from the stored lines
func (d *Document) Sections() Sections {
	lines := make([]DocumentLine, len(d.Lines))
	copy(lines, d.Lines)
	sort.SliceStable(lines, func(i, j int) bool { return lines[i].Position < lines[j].Position })

	s := Sections{Header: []string{}, Items: []string{}, Totals: []string{}}
	for _, l := range lines {
		switch l.Section {
		case SectionHeader:
			s.Header = append(s.Header, l.Text)
		case SectionItems:
			s.Items = append(s.Items, l.Text)
		case SectionTotals:
			s.Totals = append(s.Totals, l.Text)
		}
	}
	return s
}
