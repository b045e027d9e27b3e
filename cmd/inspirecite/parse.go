package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fkguo/inspirecite/internal/pdf"
	"github.com/fkguo/inspirecite/internal/refparse"
)

var parseAuthorYearStyle bool

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().BoolVar(&parseAuthorYearStyle, "author-year", false, "Parse an alphabetically ordered bibliography")
}

var parseCmd = &cobra.Command{
	Use:   "parse <pdf-or-text-file>",
	Short: "Parse the document's own reference list",
	Long: `Extract the document text and reconstruct its reference list: one entry
per label with author, year, journal, volume, page, arXiv id, and DOI
evidence. PDF input is extracted with page delimiters; plain-text input is
parsed as-is.

Examples:
  inspirecite parse paper.pdf
  inspirecite parse --author-year thesis.txt`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func runParse(cmd *cobra.Command, args []string) error {
	text, err := documentText(args[0])
	if err != nil {
		exitWithError(ExitDataError, "reading document: %v", err)
	}

	var result *refparse.Result
	if parseAuthorYearStyle {
		result = refparse.ParseAuthorYear(text)
	} else {
		result = refparse.Parse(text)
	}

	log := logger()
	log.Debug().
		Int("labels", len(result.Order)).
		Str("confidence", string(result.Confidence)).
		Msg("parsed reference list")

	if humanOutput {
		outputHuman("labels: %d  papers: %d  confidence: %s\n",
			len(result.Order), result.PaperCount(), result.Confidence)
		for _, label := range result.Order {
			for _, e := range result.Entries[label] {
				outputHuman("  [%s] %s %s %s %s %s\n",
					label, e.FirstAuthor, e.Year, e.Journal, e.Volume, e.ArxivID)
			}
		}
		return nil
	}
	return outputJSON(result)
}

// documentText loads the document: PDFs via the extractor, anything else as
// plain text.
func documentText(path string) (string, error) {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return pdf.ExtractText(path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
