package main

import (
	"github.com/spf13/cobra"

	"github.com/fkguo/inspirecite/internal/resolve"
)

var (
	alignCanonicalFile string
	alignDocID         string
)

func init() {
	rootCmd.AddCommand(alignCmd)
	alignCmd.Flags().StringVar(&alignCanonicalFile, "canonical", "", "Canonical entry list (JSON file)")
	alignCmd.Flags().StringVar(&alignDocID, "doc", "", "Cached document id")
}

var alignCmd = &cobra.Command{
	Use:   "align",
	Short: "Diagnose canonical-label vs position alignment",
	Long: `Report how well a canonical list's own labels agree with 1-based
position, and whether the resolver should trust labels, positions with a
label fallback, or positions only.

Examples:
  inspirecite align --doc 1812.10731
  inspirecite align --canonical refs.json --human`,
	Args: cobra.NoArgs,
	RunE: runAlign,
}

func runAlign(cmd *cobra.Command, args []string) error {
	entries, err := loadCanonical(alignCanonicalFile, alignDocID)
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}

	report := resolve.Align(entries)
	if humanOutput {
		outputHuman("entries:  %d\nlabelled: %d\naligned:  %d\nrecommendation: %s\n",
			report.Total, report.Labelled, report.Aligned, report.Recommendation)
		return nil
	}
	return outputJSON(report)
}
