package structure

import (
	"fmt"

	"scan-qa/pkg/models"
)

// Result carries the output of every pipeline stage
type Result struct {
	Tokens     []models.Token
	Lines      []Line
	Kept       []string
	Classified []ClassifiedLine
	Sections   models.Sections
}

// Structurer runs the full token-to-sections pipeline. It is immutable once
// built and safe for concurrent use.
type Structurer struct {
	cfg        Config
	prices     *PriceDetector
	classifier *Classifier
}

// NewStructurer validates cfg and prepares the pipeline stages
func NewStructurer(cfg Config) (*Structurer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, models.NewError(models.KindConfig, "structure config", err)
	}
	prices := NewPriceDetector(cfg.CurrencySymbols)
	return &Structurer{
		cfg:        cfg,
		prices:     prices,
		classifier: NewClassifier(cfg, prices),
	}, nil
}

// Config returns the configuration the structurer was built with
func (s *Structurer) Config() Config {
	return s.cfg
}

// Run structures raw recognizer output. Empty output yields empty sections.
func (s *Structurer) Run(out models.RecognizerOutput) (*Result, error) {
	tokens, err := ExtractTokens(out, s.cfg.MinConfidence)
	if err != nil {
		return nil, fmt.Errorf("extract tokens: %w", err)
	}

	lines := GroupIntoLines(tokens, s.cfg.YThreshold)
	kept := RenderKeptLines(lines, s.prices)
	classified := s.classifier.ClassifyAll(kept)

	return &Result{
		Tokens:     tokens,
		Lines:      lines,
		Kept:       kept,
		Classified: classified,
		Sections:   BuildSections(classified),
	}, nil
}
