package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var askCmd = &cobra.Command{
	Use:   "ask <markdown-file> <question>",
	Short: "Ask a question about a structured Markdown document",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	document, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read document: %w", err)
	}
	question := strings.Join(args[1:], " ")

	answerer, c, err := newAnswerer(cfg, logger)
	if err != nil {
		return err
	}
	defer c.Close()

	ans, err := answerer.Ask(context.Background(), string(document), question)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	printField(w, "Question", ans.Question)
	labelColor.Fprintf(w, "%-10s ", "Answer:")
	okColor.Fprintln(w, ans.Text)
	if verbose {
		printField(w, "Cached", ans.Cached)
		printField(w, "Took", ans.Duration.Round(time.Millisecond))
	}
	return nil
}
