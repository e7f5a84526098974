package ocr

import (
	"bytes"
	"context"
	"image"
	"io"
	"strconv"
	"strings"

	"scan-qa/pkg/models"

	"github.com/Azure/azure-sdk-for-go/services/cognitiveservices/v3.0/computervision"
	"github.com/Azure/go-autorest/autorest"
)

// azureConfidence is reported for every word; the printed-text API has no per-word score
const azureConfidence = 100

// AzureRecognizer runs printed-text OCR on Azure Computer Vision
type AzureRecognizer struct {
	client   *computervision.BaseClient
	endpoint string
}

// NewAzureRecognizer creates a recognizer authenticated with a Cognitive Services key
func NewAzureRecognizer(endpoint, apiKey string) *AzureRecognizer {
	client := computervision.New(endpoint)
	client.Authorizer = autorest.NewCognitiveServicesAuthorizer(apiKey)

	return &AzureRecognizer{
		client:   &client,
		endpoint: endpoint,
	}
}

func (r *AzureRecognizer) Name() string { return "azure" }

// Recognize uploads img and converts the returned words into tokens
func (r *AzureRecognizer) Recognize(ctx context.Context, img image.Image) (models.RecognizerOutput, error) {
	data, err := EncodePNG(img)
	if err != nil {
		return models.RecognizerOutput{}, RecognitionError(r.Name(), err)
	}

	result, err := r.client.RecognizePrintedTextInStream(
		ctx,
		true,
		io.NopCloser(bytes.NewReader(data)),
		computervision.OcrLanguages(computervision.En),
	)
	if err != nil {
		return models.RecognizerOutput{}, RecognitionError(r.Name(), err)
	}

	return outputFromOCRResult(result), nil
}

// outputFromOCRResult flattens regions/lines/words into recognizer order
func outputFromOCRResult(result computervision.OcrResult) models.RecognizerOutput {
	var out models.RecognizerOutput
	if result.Regions == nil {
		return out
	}
	for _, region := range *result.Regions {
		if region.Lines == nil {
			continue
		}
		for _, line := range *region.Lines {
			if line.Words == nil {
				continue
			}
			for _, word := range *line.Words {
				if word.Text == nil {
					continue
				}
				box, ok := parseBoundingBox(word.BoundingBox)
				if !ok {
					continue
				}
				out.Append(*word.Text, azureConfidence, box[0], box[1], box[2], box[3])
			}
		}
	}
	return out
}

// parseBoundingBox reads Azure's "left,top,width,height" string
func parseBoundingBox(s *string) ([4]int, bool) {
	var box [4]int
	if s == nil {
		return box, false
	}
	parts := strings.Split(*s, ",")
	if len(parts) < 4 {
		return box, false
	}
	for i := 0; i < 4; i++ {
		v, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err != nil {
			return box, false
		}
		box[i] = v
	}
	return box, true
}
