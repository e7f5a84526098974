package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentSectionsRoundTrip(t *testing.T) {
	in := Sections{
		Header: []string{"Invoice No 42 $0.00"},
		Items:  []string{"Widget $9.99", "Gadget $1.50"},
		Totals: []string{"TOTAL $11.49"},
	}

	var doc Document
	doc.SetSections(in)
	require.Len(t, doc.Lines, 4)
	assert.Equal(t, SectionHeader, doc.Lines[0].Section)
	assert.Equal(t, 3, doc.Lines[3].Position)

	// stored order is not guaranteed to come back sorted
	doc.Lines[1], doc.Lines[2] = doc.Lines[2], doc.Lines[1]
	assert.Equal(t, in, doc.Sections())
}

func TestDocumentSectionsEmpty(t *testing.T) {
	var doc Document
	s := doc.Sections()
	assert.True(t, s.Empty())
	assert.NotNil(t, s.Items)
}

func TestRecognizerOutputValidate(t *testing.T) {
	var out RecognizerOutput
	require.NoError(t, out.Validate())

	out.Append("Widget", 90, 10, 50, 40, 12)
	require.NoError(t, out.Validate())
	assert.Equal(t, 1, out.Len())

	out.Top = append(out.Top, 7)
	err := out.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedInput))
	assert.Equal(t, KindValidation, KindOf(err))
}
