//go:build cgo

package tesseract

import (
	"image"
	"testing"

	"scan-qa/pkg/models"

	"github.com/otiai10/gosseract/v2"
	"github.com/stretchr/testify/assert"
)

func TestOutputFromBoxes(t *testing.T) {
	tests := []struct {
		name  string
		boxes []gosseract.BoundingBox
		want  models.RecognizerOutput
	}{
		{
			name: "empty",
			want: models.RecognizerOutput{},
		},
		{
			name: "words keep order and box geometry",
			boxes: []gosseract.BoundingBox{
				{Box: image.Rect(10, 50, 70, 64), Word: "Widget", Confidence: 95.4},
				{Box: image.Rect(80, 52, 120, 66), Word: "$9.99", Confidence: 92.5},
			},
			want: models.RecognizerOutput{
				Text:   []string{"Widget", "$9.99"},
				Conf:   []int{95, 93},
				Left:   []int{10, 80},
				Top:    []int{50, 52},
				Width:  []int{60, 40},
				Height: []int{14, 14},
			},
		},
		{
			name: "non-word rows keep negative confidence",
			boxes: []gosseract.BoundingBox{
				{Box: image.Rect(0, 0, 5, 5), Word: "", Confidence: -1},
			},
			want: models.RecognizerOutput{
				Text:   []string{""},
				Conf:   []int{-1},
				Left:   []int{0},
				Top:    []int{0},
				Width:  []int{5},
				Height: []int{5},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := outputFromBoxes(tt.boxes)
			assert.Equal(t, tt.want, got)
			assert.NoError(t, got.Validate())
		})
	}
}
