package ocr

import (
	"bytes"
	"context"
	"fmt"
	"image"

	"scan-qa/pkg/config"
	"scan-qa/pkg/models"

	"github.com/disintegration/imaging"
)

// Recognizer extracts word-level tokens from a preprocessed image
type Recognizer interface {
	Name() string
	Recognize(ctx context.Context, img image.Image) (models.RecognizerOutput, error)
}

// New creates the network-backed recognizer named in cfg. The tesseract
// engine lives in its own package since it needs cgo.
func New(cfg config.OCRConfig) (Recognizer, error) {
	switch cfg.Engine {
	case "azure":
		return NewAzureRecognizer(cfg.AzureEndpoint, cfg.AzureKey), nil
	default:
		return nil, fmt.Errorf("unsupported ocr engine: %s", cfg.Engine)
	}
}

// EncodePNG serializes img for engines that take raw bytes
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("encode image: %w", err)
	}
	return buf.Bytes(), nil
}

// RecognitionError marks err as an OCR engine failure
func RecognitionError(engine string, err error) error {
	return models.NewError(models.KindOCR, engine, fmt.Errorf("%w: %v", models.ErrRecognition, err))
}
