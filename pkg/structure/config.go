// Package structure turns raw OCR tokens into classified invoice sections.
//
// Every stage is a pure function of its inputs and the Config passed in;
// nothing here performs I/O or keeps state between calls.
package structure

import (
	"errors"
	"strings"
)

// DefaultYThreshold is calibrated for documents resized to ~1800px wide
const DefaultYThreshold = 20

// Config tunes every stage of the structuring pipeline
type Config struct {
	// MinConfidence drops tokens whose recognizer confidence is below it
	MinConfidence int `yaml:"min_confidence"`
	// YThreshold is the exclusive vertical distance for joining a line
	YThreshold      int      `yaml:"y_threshold"`
	CurrencySymbols []string `yaml:"currency_symbols"`
	TotalKeywords   []string `yaml:"total_keywords"`
	HeaderKeywords  []string `yaml:"header_keywords"`
}

// DefaultConfig returns the stock invoice configuration
func DefaultConfig() Config {
	return Config{
		MinConfidence:   0,
		YThreshold:      DefaultYThreshold,
		CurrencySymbols: []string{"₹", "$"},
		TotalKeywords:   []string{"total", "subtotal", "tax", "amount"},
		HeaderKeywords:  []string{"invoice", "issued", "account", "date", "pay to", "invoice no"},
	}
}

// Validate rejects configurations the pipeline cannot run with
func (c Config) Validate() error {
	if c.YThreshold <= 0 {
		return errors.New("y_threshold must be positive")
	}
	for _, s := range c.CurrencySymbols {
		if strings.TrimSpace(s) == "" {
			return errors.New("currency_symbols must not contain empty entries")
		}
	}
	for _, set := range [][]string{c.TotalKeywords, c.HeaderKeywords} {
		for _, k := range set {
			if strings.TrimSpace(k) == "" {
				return errors.New("keywords must not be empty")
			}
		}
	}
	return nil
}
