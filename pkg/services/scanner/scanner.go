// Package scanner turns invoice photos into stored, structured documents.
package scanner

import (
	"context"
	"fmt"
	"image"
	"time"

	"scan-qa/pkg/models"
	"scan-qa/pkg/services/artifacts"
	"scan-qa/pkg/services/markdown"
	"scan-qa/pkg/services/ocr"
	"scan-qa/pkg/services/preprocess"
	"scan-qa/pkg/structure"

	"github.com/rs/zerolog"
)

// Repository persists scanned documents
type Repository interface {
	Create(ctx context.Context, doc *models.Document) error
}

// ArtifactStore keeps the intermediate files of a scan
type ArtifactStore interface {
	Save(id string, b artifacts.Bundle) error
}

// Options wires the optional parts of a Scanner
type Options struct {
	Repository Repository    // nil skips persistence
	Artifacts  ArtifactStore // nil skips artifact files
	Title      string
}

// Scanner runs preprocess, recognition, structuring and rendering in order
type Scanner struct {
	pre        *preprocess.Preprocessor
	recognizer ocr.Recognizer
	structurer *structure.Structurer
	opts       Options
	logger     zerolog.Logger
}

// New creates a scanner
func New(pre *preprocess.Preprocessor, rec ocr.Recognizer, st *structure.Structurer, opts Options, logger zerolog.Logger) *Scanner {
	if opts.Title == "" {
		opts.Title = markdown.DefaultTitle
	}
	return &Scanner{
		pre:        pre,
		recognizer: rec,
		structurer: st,
		opts:       opts,
		logger:     logger.With().Str("component", "scanner").Logger(),
	}
}

// Scan processes one image and returns the resulting document. When a
// repository is configured the document is stored and carries its ID.
func (s *Scanner) Scan(ctx context.Context, sourceName string, img image.Image) (*models.Document, error) {
	start := time.Now()
	log := s.logger.With().Str("source", sourceName).Logger()

	processed := s.pre.Process(img)
	log.Debug().
		Int("width", processed.Bounds().Dx()).
		Int("height", processed.Bounds().Dy()).
		Msg("image preprocessed")

	out, err := s.recognizer.Recognize(ctx, processed)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("engine", s.recognizer.Name()).Int("words", out.Len()).Msg("recognition complete")

	res, err := s.structurer.Run(out)
	if err != nil {
		return nil, err
	}

	doc := s.newDocument(sourceName, res)
	doc.OCREngine = s.recognizer.Name()

	if s.opts.Artifacts != nil {
		doc.ArtifactID = artifacts.NewID()
		bundle := artifacts.Bundle{
			Processed: processed,
			Display:   s.pre.Thumbnail(img),
			OCR:       out,
			Markdown:  doc.Markdown,
		}
		if err := s.opts.Artifacts.Save(doc.ArtifactID, bundle); err != nil {
			return nil, err
		}
	}

	if s.opts.Repository != nil {
		if err := s.opts.Repository.Create(ctx, doc); err != nil {
			return nil, err
		}
	}

	log.Info().
		Uint("document_id", doc.ID).
		Int("tokens", len(res.Tokens)).
		Int("lines", len(res.Lines)).
		Int("kept", len(res.Kept)).
		Int("items", len(res.Sections.Items)).
		Int("totals", len(res.Sections.Totals)).
		Dur("duration", time.Since(start)).
		Msg("document scanned")

	return doc, nil
}

// StructureOutput replays saved recognizer output through the structuring
// stages. Nothing is persisted.
func (s *Scanner) StructureOutput(out models.RecognizerOutput) (*models.Document, error) {
	res, err := s.structurer.Run(out)
	if err != nil {
		return nil, fmt.Errorf("structure output: %w", err)
	}
	return s.newDocument("", res), nil
}

func (s *Scanner) newDocument(sourceName string, res *structure.Result) *models.Document {
	doc := &models.Document{
		SourceName: sourceName,
		Markdown:   markdown.Render(s.opts.Title, res.Sections),
		TokenCount: len(res.Tokens),
		LineCount:  len(res.Lines),
	}
	doc.SetSections(res.Sections)
	return doc
}
