package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"scan-qa/pkg/services/artifacts"
	"scan-qa/pkg/services/preprocess"
	"scan-qa/pkg/services/scanner"
	"scan-qa/pkg/storage"
	"scan-qa/pkg/structure"

	"github.com/spf13/cobra"
)

var (
	scanOutput string
	scanStore  bool
)

var scanCmd = &cobra.Command{
	Use:   "scan <image>",
	Short: "Scan an invoice image into a Markdown document",
	Long: `Scan preprocesses the image, runs OCR and writes the structured Markdown
document to stdout or to the file given with --output. With --store the
document is saved to the database and its artifacts to the artifacts directory.`,
	Args: cobra.ExactArgs(1),
	RunE: runScan,
}

func init() {
	scanCmd.Flags().StringVarP(&scanOutput, "output", "o", "", "write Markdown to this file")
	scanCmd.Flags().BoolVar(&scanStore, "store", false, "persist the document and its artifacts")
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	img, err := preprocess.Load(args[0])
	if err != nil {
		return err
	}

	rec, err := newRecognizer(cfg.OCR)
	if err != nil {
		return err
	}
	st, err := structure.NewStructurer(cfg.Structure)
	if err != nil {
		return err
	}

	var opts scanner.Options
	if scanStore {
		repo, err := storage.Open(cfg.Database)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer repo.Close()
		opts.Repository = repo
		opts.Artifacts = artifacts.NewStore(cfg.Artifacts.Dir)
	}

	s := scanner.New(preprocess.New(cfg.Preprocess), rec, st, opts, logger)
	doc, err := s.Scan(context.Background(), filepath.Base(args[0]), img)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if scanOutput == "" {
		fmt.Fprint(out, doc.Markdown)
	} else {
		if err := os.WriteFile(scanOutput, []byte(doc.Markdown), 0o644); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		okColor.Fprintf(out, "Markdown written to %s\n", scanOutput)
	}

	if scanStore {
		printField(out, "Document", doc.ID)
		printField(out, "Artifacts", filepath.Join(cfg.Artifacts.Dir, doc.ArtifactID))
	}
	return nil
}
