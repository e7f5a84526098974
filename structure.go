package main

import (
	"encoding/json"
	"fmt"

	"scan-qa/pkg/services/artifacts"
	"scan-qa/pkg/services/scanner"
	"scan-qa/pkg/structure"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var structureJSON bool

var structureCmd = &cobra.Command{
	Use:   "structure <ocr.json>",
	Short: "Structure saved OCR output without running OCR",
	Long: `Structure replays a recognizer output file, such as the ocr.json written
by "scan --store", through line grouping, price filtering and classification.`,
	Args: cobra.ExactArgs(1),
	RunE: runStructure,
}

func init() {
	structureCmd.Flags().BoolVar(&structureJSON, "json", false, "print sections as JSON")
	rootCmd.AddCommand(structureCmd)
}

func runStructure(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	out, err := artifacts.LoadOCR(args[0])
	if err != nil {
		return err
	}

	st, err := structure.NewStructurer(cfg.Structure)
	if err != nil {
		return err
	}
	doc, err := scanner.New(nil, nil, st, scanner.Options{}, zerolog.Nop()).StructureOutput(out)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if structureJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc.Sections())
	}

	active := st.Config()
	printField(w, "Threshold", fmt.Sprintf("y<%d conf>=%d", active.YThreshold, active.MinConfidence))
	printField(w, "Tokens", doc.TokenCount)
	printField(w, "Lines", doc.LineCount)
	fmt.Fprintln(w)
	printSections(w, doc.Sections())
	return nil
}
