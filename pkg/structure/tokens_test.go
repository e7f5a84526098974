package structure

import (
	"errors"
	"testing"

	"scan-qa/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidToken(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"!", false},
		{"|", false},
		{"_", false},
		{"A", true},
		{"7", true},
		{"é", true},
		{"½", true},
		{"m²", true},
		{"Ⅻ", true},
		{"a!!!b??", false},
		{"Subtotal:", true},
		{"$12.50", true},
		{"2024-01-01", true},
		{"₹1,000.00", false},
		{"snake_case_name", true},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidToken(tt.text))
		})
	}
}

func TestExtractTokens(t *testing.T) {
	var out models.RecognizerOutput
	out.Append("", -1, 0, 0, 0, 0)
	out.Append("  Widget ", 91, 10, 50, 60, 14)
	out.Append("~", 80, 75, 50, 4, 14)
	out.Append("$9.99", 88, 80, 52, 40, 14)
	out.Append("faint", 12, 130, 50, 30, 14)
	out.Append("a!!!b??", 70, 160, 50, 30, 14)

	tokens, err := ExtractTokens(out, 0)
	require.NoError(t, err)
	require.Len(t, tokens, 3)
	assert.Equal(t, models.Token{Text: "Widget", X: 10, Y: 50, W: 60, H: 14, Confidence: 91}, tokens[0])
	assert.Equal(t, "$9.99", tokens[1].Text)
	assert.Equal(t, "faint", tokens[2].Text)

	tokens, err = ExtractTokens(out, 50)
	require.NoError(t, err)
	require.Len(t, tokens, 2)
	assert.Equal(t, "$9.99", tokens[1].Text)
}

func TestExtractTokensEmpty(t *testing.T) {
	tokens, err := ExtractTokens(models.RecognizerOutput{}, 0)
	require.NoError(t, err)
	assert.Empty(t, tokens)
}

func TestExtractTokensRejectsUnequalArrays(t *testing.T) {
	out := models.RecognizerOutput{
		Text:   []string{"a", "b"},
		Conf:   []int{90, 90},
		Left:   []int{1, 2},
		Top:    []int{1},
		Width:  []int{1, 2},
		Height: []int{1, 2},
	}

	tokens, err := ExtractTokens(out, 0)
	require.Error(t, err)
	assert.Nil(t, tokens)
	assert.True(t, errors.Is(err, models.ErrMalformedInput))
}
