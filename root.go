package main

import (
	"fmt"
	"os"

	"scan-qa/pkg/cache"
	"scan-qa/pkg/config"
	"scan-qa/pkg/observability"
	"scan-qa/pkg/services/ocr"
	"scan-qa/pkg/services/ocr/tesseract"
	"scan-qa/pkg/services/qa"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
	noColor bool
)

var rootCmd = &cobra.Command{
	Use:   "scan-qa",
	Short: "Structure scanned invoices and ask questions about them",
	Long: `scan-qa turns photographed invoices into structured Markdown documents.
It cleans up the image, runs OCR, groups words into lines, keeps the lines
that carry prices and sorts them into details, items and totals. Stored
documents can then be queried in natural language through an LLM.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if noColor {
			color.NoColor = true
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (default $CONFIG_PATH)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
}

// loadConfig reads configuration from --config or CONFIG_PATH
func loadConfig() (*config.Config, error) {
	path := cfgFile
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if verbose {
		cfg.Log.Level = "debug"
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) zerolog.Logger {
	return observability.NewLogger(observability.LogConfig{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})
}

// newRecognizer picks the OCR engine. Tesseract is built here since it is
// linked through cgo and kept out of the ocr package.
func newRecognizer(cfg config.OCRConfig) (ocr.Recognizer, error) {
	if cfg.Engine == "tesseract" {
		return tesseract.New(cfg.Languages, cfg.PageSegMode), nil
	}
	return ocr.New(cfg)
}

// newAnswerer builds the question answering service and the cache backing it.
// The returned cache must be closed by the caller.
func newAnswerer(cfg *config.Config, logger zerolog.Logger) (*qa.Answerer, cache.Client, error) {
	gen, err := qa.NewLangChainGenerator(cfg.LLM)
	if err != nil {
		return nil, nil, fmt.Errorf("create llm: %w", err)
	}
	c, err := cache.New(cfg.Cache)
	if err != nil {
		return nil, nil, fmt.Errorf("create cache: %w", err)
	}
	answerer := qa.NewAnswerer(gen, c, qa.Options{
		MaxRetries: cfg.LLM.MaxRetries,
		Timeout:    cfg.LLM.Timeout,
		CacheTTL:   cfg.Cache.TTL,
	}, logger)
	return answerer, c, nil
}
