// Package journal provides the journal name/abbreviation lookup consumed by
// journal-similarity comparison. The table is two-way: a full title maps to
// its known abbreviations and an abbreviation to its known full titles. A
// built-in seed table covers the common physics journals; a yaml file can
// extend or replace it.
package journal

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Table is the two-way abbreviation lookup.
type Table struct {
	fullToAbbrev map[string][]string
	abbrevToFull map[string][]string
}

// tableFile is the yaml on-disk shape: full title → abbreviations.
type tableFile struct {
	Journals map[string][]string `yaml:"journals"`
}

// seedJournals is the built-in table. Keys are full titles; values are the
// abbreviations encountered in reference lists.
var seedJournals = map[string][]string{
	"Physical Review Letters":            {"Phys. Rev. Lett.", "PRL"},
	"Physical Review D":                  {"Phys. Rev. D", "PRD"},
	"Physical Review C":                  {"Phys. Rev. C", "PRC"},
	"Physics Letters B":                  {"Phys. Lett. B", "PLB"},
	"Nuclear Physics A":                  {"Nucl. Phys. A", "NPA"},
	"Nuclear Physics B":                  {"Nucl. Phys. B", "NPB"},
	"Journal of High Energy Physics":     {"JHEP", "J. High Energy Phys."},
	"European Physical Journal A":        {"Eur. Phys. J. A", "EPJA"},
	"European Physical Journal C":        {"Eur. Phys. J. C", "EPJC"},
	"Progress of Theoretical Physics":    {"Prog. Theor. Phys."},
	"Reviews of Modern Physics":          {"Rev. Mod. Phys."},
	"Physics Reports":                    {"Phys. Rept.", "Phys. Rep."},
	"Chinese Physics C":                  {"Chin. Phys. C"},
	"International Journal of Modern Physics A": {"Int. J. Mod. Phys. A", "IJMPA"},
	"Modern Physics Letters A":           {"Mod. Phys. Lett. A"},
	"Annals of Physics":                  {"Annals Phys.", "Ann. Phys."},
	"Journal of Physics G":               {"J. Phys. G"},
	"Nature":                             {"Nature"},
	"Science":                            {"Science"},
}

// Default returns a table populated with the built-in seed.
func Default() *Table {
	t := newTable()
	for full, abbrevs := range seedJournals {
		t.add(full, abbrevs)
	}
	return t
}

// Load reads a yaml table from path and merges it over the built-in seed.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading journal table: %w", err)
	}
	var f tableFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing journal table: %w", err)
	}
	t := Default()
	for full, abbrevs := range f.Journals {
		t.add(full, abbrevs)
	}
	return t, nil
}

func newTable() *Table {
	return &Table{
		fullToAbbrev: make(map[string][]string),
		abbrevToFull: make(map[string][]string),
	}
}

func (t *Table) add(full string, abbrevs []string) {
	key := tableKey(full)
	t.fullToAbbrev[key] = append(t.fullToAbbrev[key], abbrevs...)
	for _, a := range abbrevs {
		t.abbrevToFull[tableKey(a)] = append(t.abbrevToFull[tableKey(a)], full)
	}
}

// Abbreviations returns the known abbreviations of a full journal title.
func (t *Table) Abbreviations(full string) []string {
	return t.fullToAbbrev[tableKey(full)]
}

// FullNames returns the known full titles of an abbreviation.
func (t *Table) FullNames(abbrev string) []string {
	return t.abbrevToFull[tableKey(abbrev)]
}

func tableKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
