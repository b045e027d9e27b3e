package main

import (
	"context"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/fkguo/inspirecite/internal/config"
	"github.com/fkguo/inspirecite/internal/inspire"
	"github.com/fkguo/inspirecite/internal/storage"
)

var fetchTimeout time.Duration

func init() {
	rootCmd.AddCommand(fetchCmd)
	fetchCmd.Flags().DurationVar(&fetchTimeout, "timeout", inspire.DefaultTimeout, "Request timeout")
}

var fetchCmd = &cobra.Command{
	Use:   "fetch <doc-id>",
	Short: "Fetch a document's canonical reference list into the cache",
	Long: `Fetch the canonical reference list for a document from the
bibliographic service and store it in the local cache, so subsequent resolve
and align calls work offline.

The document id is an INSPIRE record id or an arXiv id ("arxiv:2106.15928").

Examples:
  inspirecite fetch 1812.10731
  inspirecite fetch arxiv:2106.15928`,
	Args: cobra.ExactArgs(1),
	RunE: runFetch,
}

func runFetch(cmd *cobra.Command, args []string) error {
	// Pick up INSPIRE_API_URL and friends from a local .env.
	_ = godotenv.Load()

	docID := args[0]

	cfg, err := config.Load(config.Dir())
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}

	var opts []inspire.ClientOption
	opts = append(opts, inspire.WithLogger(logger()))
	if cfg.APIBaseURL != "" {
		opts = append(opts, inspire.WithBaseURL(cfg.APIBaseURL))
	}
	client := inspire.NewClient(opts...)

	ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
	defer cancel()

	entries, err := client.FetchReferences(ctx, docID)
	if err != nil {
		if inspire.IsNotFound(err) {
			exitWithError(ExitDataError, "document %s: %v", docID, err)
		}
		exitWithError(ExitNetwork, "fetching %s: %v", docID, err)
	}

	db, err := storage.OpenDB(config.CacheDBPath(config.Dir()))
	if err != nil {
		exitWithError(ExitError, "opening cache: %v", err)
	}
	defer db.Close()

	if err := db.PutEntries(docID, entries); err != nil {
		exitWithError(ExitError, "caching %s: %v", docID, err)
	}

	if humanOutput {
		outputHuman("cached %d canonical entries for %s\n", len(entries), docID)
		return nil
	}
	return outputJSON(map[string]interface{}{
		"doc_id":  docID,
		"entries": len(entries),
	})
}
