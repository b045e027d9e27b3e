package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/fkguo/inspirecite/internal/config"
	"github.com/fkguo/inspirecite/internal/recognize"
)

var (
	recognizeFuzzy      bool
	recognizeAuthorYear bool
	recognizeMaxLabel   int
	recognizeStrict     bool
)

func init() {
	rootCmd.AddCommand(recognizeCmd)
	recognizeCmd.Flags().BoolVar(&recognizeFuzzy, "fuzzy", false, "Enable aggressive last-resort heuristics")
	recognizeCmd.Flags().BoolVar(&recognizeAuthorYear, "author-year", false, "Prefer author-year extraction")
	recognizeCmd.Flags().IntVar(&recognizeMaxLabel, "max-label", 0, "Highest label known to exist in the reference list")
	recognizeCmd.Flags().BoolVar(&recognizeStrict, "strict", false, "Use the strict single-marker grammar only")
}

var recognizeCmd = &cobra.Command{
	Use:   "recognize <text>",
	Short: "Extract citation labels from selected text",
	Long: `Recognize citation markers in a piece of selected text.

Handles bracketed numbers and ranges ("[25,26,38-41]"), superscript digit
runs, author-year phrases ("Weinstein and Isgur (1982)"), arXiv ids, OCR
bracket corruption ("f5g"), and concatenated ranges ("6264" for "[62-64]").

Examples:
  inspirecite recognize "[25,26,38-41]"
  inspirecite recognize --author-year "see Guo et al. (2015, 2016)"
  inspirecite recognize --fuzzy "Refs. 12-14"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRecognize,
}

func runRecognize(cmd *cobra.Command, args []string) error {
	text := strings.Join(args, " ")

	cfg, err := config.Load(config.Dir())
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}

	opts := recognize.Options{
		Fuzzy:         recognizeFuzzy || cfg.FuzzyDefault,
		AuthorYear:    recognizeAuthorYear,
		MaxKnownLabel: recognizeMaxLabel,
		YearMin:       cfg.YearMin,
		YearMax:       cfg.YearMax,
	}

	pc := recognize.Selection(text, opts)
	if recognizeStrict {
		pc = recognize.Strict(text)
	}
	if pc == nil {
		if humanOutput {
			outputHuman("No citation recognized.\n")
		}
		exitWithError(ExitNoMatch, "no citation recognized in %q", text)
	}

	if humanOutput {
		outputHuman("format: %s\nlabels: %s\n", pc.Format, strings.Join(pc.Labels, ", "))
		for _, sub := range pc.Subs {
			outputHuman("  %s -> %s\n", sub.Text, strings.Join(sub.Labels, ", "))
		}
		return nil
	}
	return outputJSON(pc)
}
