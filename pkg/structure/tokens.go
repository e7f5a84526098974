package structure

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"scan-qa/pkg/models"
)

// maxSpecialRunes is the most non-word runes a token may carry before it is
// treated as garbled recognizer output
const maxSpecialRunes = 2

// IsValidToken reports whether text looks like a real word rather than OCR noise
func IsValidToken(text string) bool {
	if utf8.RuneCountInString(text) == 1 {
		r, _ := utf8.DecodeRuneInString(text)
		if !isAlnum(r) {
			return false
		}
	}

	special := 0
	for _, r := range text {
		if !isAlnum(r) && r != '_' {
			special++
		}
	}
	return special <= maxSpecialRunes
}

func isAlnum(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r)
}

// ExtractTokens converts recognizer output into tokens, in emission order,
// dropping empty, low-confidence and noisy entries
func ExtractTokens(out models.RecognizerOutput, minConfidence int) ([]models.Token, error) {
	if err := out.Validate(); err != nil {
		return nil, err
	}

	tokens := make([]models.Token, 0, out.Len())
	for i := 0; i < out.Len(); i++ {
		text := strings.TrimSpace(out.Text[i])
		if text == "" || out.Conf[i] < minConfidence {
			continue
		}
		if !IsValidToken(text) {
			continue
		}
		tokens = append(tokens, models.Token{
			Text:       text,
			X:          out.Left[i],
			Y:          out.Top[i],
			W:          out.Width[i],
			H:          out.Height[i],
			Confidence: out.Conf[i],
		})
	}
	return tokens, nil
}
