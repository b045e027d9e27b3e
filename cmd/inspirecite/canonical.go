package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fkguo/inspirecite/internal/config"
	"github.com/fkguo/inspirecite/internal/journal"
	"github.com/fkguo/inspirecite/internal/reference"
	"github.com/fkguo/inspirecite/internal/storage"
)

// loadCanonical loads a canonical entry list either from a JSON file or from
// the local cache by document id. Exactly one of file/docID must be set.
func loadCanonical(file, docID string) ([]reference.CanonicalEntry, error) {
	switch {
	case file != "" && docID != "":
		return nil, fmt.Errorf("use either --canonical or --doc, not both")
	case file != "":
		return readCanonicalFile(file)
	case docID != "":
		return readCachedCanonical(docID)
	}
	return nil, fmt.Errorf("a canonical list is required: pass --canonical <file.json> or --doc <id>")
}

func readCanonicalFile(path string) ([]reference.CanonicalEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading canonical list: %w", err)
	}
	var entries []reference.CanonicalEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parsing canonical list: %w", err)
	}
	return entries, nil
}

func readCachedCanonical(docID string) ([]reference.CanonicalEntry, error) {
	db, err := storage.OpenDB(config.CacheDBPath(config.Dir()))
	if err != nil {
		return nil, fmt.Errorf("opening cache: %w", err)
	}
	defer db.Close()

	entries, err := db.GetEntries(docID)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("document %s is not cached; run `inspirecite fetch %s` first", docID, docID)
	}
	return entries, nil
}

// journalTable loads the configured journal abbreviation table, falling back
// to the built-in seed.
func journalTable(cfg *config.Config) *journal.Table {
	if cfg.JournalTable == "" {
		return journal.Default()
	}
	t, err := journal.Load(cfg.JournalTable)
	if err != nil {
		log := logger()
		log.Warn().Err(err).Str("path", cfg.JournalTable).Msg("falling back to built-in journal table")
		return journal.Default()
	}
	return t
}
