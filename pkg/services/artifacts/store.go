// Package artifacts persists the intermediate files of a scan on disk.
package artifacts

import (
	"encoding/json"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"scan-qa/pkg/models"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

const (
	ProcessedFile = "processed.png"
	DisplayFile   = "display.jpg"
	OCRFile       = "ocr.json"
	MarkdownFile  = "document.md"
)

// Bundle is everything written for one scan. Nil images are skipped.
type Bundle struct {
	Processed image.Image
	Display   image.Image
	OCR       models.RecognizerOutput
	Markdown  string
}

// Store writes bundles under a root directory, one subdirectory per scan
type Store struct {
	root string
}

// NewStore creates a store rooted at dir
func NewStore(dir string) *Store {
	return &Store{root: dir}
}

// NewID returns a fresh artifact identifier
func NewID() string {
	return uuid.NewString()
}

// Dir returns the directory holding artifacts for id
func (s *Store) Dir(id string) string {
	return filepath.Join(s.root, id)
}

// Save writes every part of b under id
func (s *Store) Save(id string, b Bundle) error {
	if _, err := uuid.Parse(id); err != nil {
		return models.NewError(models.KindValidation, "save artifacts", fmt.Errorf("invalid artifact id %q", id))
	}
	dir := s.Dir(id)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return models.NewError(models.KindStorage, "create artifact dir", err)
	}

	if b.Processed != nil {
		if err := imaging.Save(b.Processed, filepath.Join(dir, ProcessedFile)); err != nil {
			return models.NewError(models.KindStorage, "save processed image", err)
		}
	}
	if b.Display != nil {
		if err := imaging.Save(b.Display, filepath.Join(dir, DisplayFile), imaging.JPEGQuality(85)); err != nil {
			return models.NewError(models.KindStorage, "save display image", err)
		}
	}

	raw, err := json.MarshalIndent(b.OCR, "", "  ")
	if err != nil {
		return models.NewError(models.KindStorage, "encode ocr output", err)
	}
	if err := os.WriteFile(filepath.Join(dir, OCRFile), raw, 0o644); err != nil {
		return models.NewError(models.KindStorage, "save ocr output", err)
	}

	if err := os.WriteFile(filepath.Join(dir, MarkdownFile), []byte(b.Markdown), 0o644); err != nil {
		return models.NewError(models.KindStorage, "save markdown", err)
	}
	return nil
}

// Markdown reads back the rendered document for id
func (s *Store) Markdown(id string) (string, error) {
	data, err := os.ReadFile(filepath.Join(s.Dir(id), MarkdownFile))
	if err != nil {
		return "", models.NewError(models.KindStorage, "read markdown", err)
	}
	return string(data), nil
}

// LoadOCR reads a recognizer output JSON file, as written by Save
func LoadOCR(path string) (models.RecognizerOutput, error) {
	var out models.RecognizerOutput
	data, err := os.ReadFile(path)
	if err != nil {
		return out, models.NewError(models.KindStorage, "read ocr output", err)
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, models.NewError(models.KindValidation, "decode ocr output", err)
	}
	return out, nil
}
