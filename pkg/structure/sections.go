package structure

import "scan-qa/pkg/models"

// BuildSections appends each classified line to its section in input order.
// Lines labelled LabelNone are discarded.
func BuildSections(classified []ClassifiedLine) models.Sections {
	s := models.Sections{Header: []string{}, Items: []string{}, Totals: []string{}}
	for _, cl := range classified {
		switch cl.Label {
		case LabelHeader:
			s.Header = append(s.Header, cl.Text)
		case LabelItem:
			s.Items = append(s.Items, cl.Text)
		case LabelTotal:
			s.Totals = append(s.Totals, cl.Text)
		}
	}
	return s
}
