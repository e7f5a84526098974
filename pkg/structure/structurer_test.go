package structure

import (
	"errors"
	"sync"
	"testing"

	"scan-qa/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSections(t *testing.T) {
	classified := []ClassifiedLine{
		{Text: "Invoice Date 2024-01-01", Label: LabelHeader},
		{Text: "Widget $9.99", Label: LabelItem},
		{Text: "12 $5.00", Label: LabelNone},
		{Text: "Gadget $1.50", Label: LabelItem},
		{Text: "TOTAL $11.49", Label: LabelTotal},
	}

	first := BuildSections(classified)
	assert.Equal(t, []string{"Invoice Date 2024-01-01"}, first.Header)
	assert.Equal(t, []string{"Widget $9.99", "Gadget $1.50"}, first.Items)
	assert.Equal(t, []string{"TOTAL $11.49"}, first.Totals)

	second := BuildSections(classified)
	assert.Equal(t, first, second)
}

func TestBuildSectionsEmpty(t *testing.T) {
	s := BuildSections(nil)
	assert.True(t, s.Empty())
	assert.NotNil(t, s.Header)
	assert.NotNil(t, s.Items)
	assert.NotNil(t, s.Totals)
}

func receiptOutput() models.RecognizerOutput {
	var out models.RecognizerOutput
	out.Append("Widget", 95, 10, 50, 60, 14)
	out.Append("$9.99", 93, 80, 52, 40, 14)
	out.Append("TOTAL", 96, 10, 100, 50, 14)
	out.Append("$9.99", 94, 80, 102, 40, 14)
	return out
}

func TestStructurerRunEndToEnd(t *testing.T) {
	s, err := NewStructurer(DefaultConfig())
	require.NoError(t, err)

	res, err := s.Run(receiptOutput())
	require.NoError(t, err)

	assert.Len(t, res.Tokens, 4)
	require.Len(t, res.Lines, 2)
	assert.Equal(t, []string{"Widget $9.99", "TOTAL $9.99"}, res.Kept)
	assert.Equal(t, []string{}, res.Sections.Header)
	assert.Equal(t, []string{"Widget $9.99"}, res.Sections.Items)
	assert.Equal(t, []string{"TOTAL $9.99"}, res.Sections.Totals)
}

func TestStructurerKeepsConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.YThreshold = 35
	cfg.MinConfidence = 60

	s, err := NewStructurer(cfg)
	require.NoError(t, err)
	assert.Equal(t, cfg, s.Config())
}

func TestStructurerDropsPricelessHeader(t *testing.T) {
	s, err := NewStructurer(DefaultConfig())
	require.NoError(t, err)

	out := receiptOutput()
	out.Append("Invoice", 90, 10, 10, 70, 14)
	out.Append("Date", 90, 90, 10, 40, 14)
	out.Append("2024-01-01", 90, 140, 10, 90, 14)

	res, err := s.Run(out)
	require.NoError(t, err)
	assert.Len(t, res.Lines, 3)
	assert.Equal(t, "Invoice Date 2024-01-01", res.Lines[0].Text())
	assert.Empty(t, res.Sections.Header)
	assert.NotContains(t, res.Kept, "Invoice Date 2024-01-01")
}

func TestStructurerEmptyInput(t *testing.T) {
	s, err := NewStructurer(DefaultConfig())
	require.NoError(t, err)

	res, err := s.Run(models.RecognizerOutput{})
	require.NoError(t, err)
	assert.True(t, res.Sections.Empty())
}

func TestStructurerMalformedInput(t *testing.T) {
	s, err := NewStructurer(DefaultConfig())
	require.NoError(t, err)

	out := receiptOutput()
	out.Conf = out.Conf[:2]

	_, err = s.Run(out)
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrMalformedInput))
}

func TestNewStructurerRejectsBadConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.YThreshold = 0
	_, err := NewStructurer(cfg)
	require.Error(t, err)
	assert.Equal(t, models.KindConfig, models.KindOf(err))

	cfg = DefaultConfig()
	cfg.CurrencySymbols = []string{"$", " "}
	_, err = NewStructurer(cfg)
	require.Error(t, err)

	cfg = DefaultConfig()
	cfg.HeaderKeywords = append(cfg.HeaderKeywords, "")
	_, err = NewStructurer(cfg)
	require.Error(t, err)
}

func TestStructurerConcurrentRuns(t *testing.T) {
	s, err := NewStructurer(DefaultConfig())
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]models.Sections, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res, err := s.Run(receiptOutput())
			if err == nil {
				results[i] = res.Sections
			}
		}(i)
	}
	wg.Wait()

	for _, r := range results {
		assert.Equal(t, []string{"Widget $9.99"}, r.Items)
	}
}
