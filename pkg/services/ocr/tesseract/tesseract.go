// Package tesseract implements ocr.Recognizer with a local Tesseract install.
package tesseract

import (
	"context"
	"image"
	"math"

	"scan-qa/pkg/models"
	"scan-qa/pkg/services/ocr"

	"github.com/otiai10/gosseract/v2"
)

// Recognizer reads word boxes with gosseract
type Recognizer struct {
	languages     []string
	pageSegMode   gosseract.PageSegMode
	clientFactory func() *gosseract.Client
}

// New constructs a Tesseract-backed recognizer
func New(languages []string, pageSegMode int) *Recognizer {
	if len(languages) == 0 {
		languages = []string{"eng"}
	}
	return &Recognizer{
		languages:     append([]string(nil), languages...),
		pageSegMode:   gosseract.PageSegMode(pageSegMode),
		clientFactory: gosseract.NewClient,
	}
}

var _ ocr.Recognizer = (*Recognizer)(nil)

func (r *Recognizer) Name() string { return "tesseract" }

// Recognize runs word-level recognition on img
func (r *Recognizer) Recognize(ctx context.Context, img image.Image) (models.RecognizerOutput, error) {
	if err := ctx.Err(); err != nil {
		return models.RecognizerOutput{}, err
	}

	data, err := ocr.EncodePNG(img)
	if err != nil {
		return models.RecognizerOutput{}, err
	}

	c := r.clientFactory()
	defer c.Close()

	if err := c.SetLanguage(r.languages...); err != nil {
		return models.RecognizerOutput{}, ocr.RecognitionError(r.Name(), err)
	}
	if err := c.SetPageSegMode(r.pageSegMode); err != nil {
		return models.RecognizerOutput{}, ocr.RecognitionError(r.Name(), err)
	}
	if err := c.SetImageFromBytes(data); err != nil {
		return models.RecognizerOutput{}, ocr.RecognitionError(r.Name(), err)
	}

	boxes, err := c.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return models.RecognizerOutput{}, ocr.RecognitionError(r.Name(), err)
	}

	return outputFromBoxes(boxes), nil
}

// outputFromBoxes converts word boxes to recognizer output in reading order
func outputFromBoxes(boxes []gosseract.BoundingBox) models.RecognizerOutput {
	var out models.RecognizerOutput
	for _, b := range boxes {
		out.Append(
			b.Word,
			int(math.Round(b.Confidence)),
			b.Box.Min.X,
			b.Box.Min.Y,
			b.Box.Dx(),
			b.Box.Dy(),
		)
	}
	return out
}
