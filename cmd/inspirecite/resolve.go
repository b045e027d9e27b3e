package main

import (
	"github.com/spf13/cobra"

	"github.com/fkguo/inspirecite/internal/config"
	"github.com/fkguo/inspirecite/internal/refparse"
	"github.com/fkguo/inspirecite/internal/resolve"
)

var (
	resolveCanonicalFile string
	resolveDocID         string
	resolveDocument      string
	resolveAuthorYear    bool
)

func init() {
	rootCmd.AddCommand(resolveCmd)
	resolveCmd.Flags().StringVar(&resolveCanonicalFile, "canonical", "", "Canonical entry list (JSON file)")
	resolveCmd.Flags().StringVar(&resolveDocID, "doc", "", "Cached document id (see `inspirecite fetch`)")
	resolveCmd.Flags().StringVar(&resolveDocument, "document", "", "Document file whose own reference list informs resolution")
	resolveCmd.Flags().BoolVar(&resolveAuthorYear, "author-year", false, "Parse the document's bibliography as alphabetically ordered")
}

var resolveCmd = &cobra.Command{
	Use:   "resolve <label...>",
	Short: "Resolve citation labels against a canonical reference list",
	Long: `Resolve one or more citation labels to canonical bibliographic entries.

The canonical list comes from a JSON file (--canonical) or the local cache
(--doc). When --document is given, the document's own reference list is
parsed first and its per-label metadata drives identifier and score matching;
without it, resolution falls back to label and position strategies.

Ambiguous resolutions and version mismatches are reported, not suppressed.

Examples:
  inspirecite resolve 17 --doc 1812.10731
  inspirecite resolve 25 26 38 --canonical refs.json --document paper.pdf
  inspirecite resolve "Guo 2015" --canonical refs.json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runResolve,
}

func runResolve(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(config.Dir())
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}

	entries, err := loadCanonical(resolveCanonicalFile, resolveDocID)
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}

	var doc *refparse.Result
	if resolveDocument != "" {
		text, err := documentText(resolveDocument)
		if err != nil {
			exitWithError(ExitDataError, "reading document: %v", err)
		}
		if resolveAuthorYear {
			doc = refparse.ParseAuthorYear(text)
		} else {
			doc = refparse.Parse(text)
		}
		log := logger()
		log.Debug().
			Int("labels", len(doc.Order)).
			Str("confidence", string(doc.Confidence)).
			Msg("parsed document reference list")
	}

	r := resolve.New(entries, doc, journalTable(cfg), resolve.DefaultThresholds())
	results := r.MatchAll(args)
	if len(results) == 0 {
		exitWithError(ExitNoMatch, "no canonical entry resolved for %v", args)
	}

	if humanOutput {
		for _, m := range results {
			e := entries[m.Index]
			outputHuman("[%s] -> #%d %s (%s %s) %s %s  [%s/%s]\n",
				m.Label, m.Index+1, e.ID, e.Journal, e.Volume, e.Year, e.ArxivID,
				m.Method, m.Confidence)
			if m.VersionMismatchWarning != "" {
				outputHuman("  warning: %s\n", m.VersionMismatchWarning)
			}
			if m.IsAmbiguous {
				outputHuman("  ambiguous candidates: %v\n", m.AmbiguousCandidates)
			}
		}
		return nil
	}
	return outputJSON(results)
}
