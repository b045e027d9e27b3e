// Package score measures how well a document-parsed reference matches a
// canonical bibliographic entry. Scoring is a pure function over its two
// inputs plus a journal-abbreviation lookup; identifier matches short-circuit
// to fixed bands so downstream ranking is deterministic and explainable.
package score

import (
	"strconv"
	"strings"

	"github.com/fkguo/inspirecite/internal/author"
	"github.com/fkguo/inspirecite/internal/reference"
)

// JournalLookup is the abbreviation-table collaborator: given a full journal
// name it returns known abbreviations, and given an abbreviation its known
// full names.
type JournalLookup interface {
	Abbreviations(full string) []string
	FullNames(abbrev string) []string
}

// Fixed score bands. An arXiv id match beats everything; a DOI match beats
// any accumulated evidence; a journal strong match outranks ordinary
// score-based candidates.
const (
	ScoreArxivMatch    = 100
	ScoreDOIMatch      = 95
	ScoreJournalStrong = 90

	scoreAuthorExact     = 30
	scoreAuthorPartial   = 20
	scoreAuthorText      = 15
	scoreAuthorDataGroup = 10

	scoreYearExact   = 20
	scoreYearWithin1 = 15
	scoreYearWithin2 = 10
	scoreYearWithin3 = 5

	scorePageExact = 15

	scoreJournalVolume     = 25
	scoreJournalPageBonus  = 5
	journalSimilarityFloor = 0.6
)

// Breakdown itemizes the accumulated evidence for a non-identifier match.
type Breakdown struct {
	Author  float64 `json:"author"`
	Year    float64 `json:"year"`
	Page    float64 `json:"page"`
	Journal float64 `json:"journal"`
}

// Composite is the result of scoring one (document entry, canonical entry)
// pair.
type Composite struct {
	Total        float64   `json:"total"`
	ArxivMatched bool      `json:"arxiv_matched,omitempty"`
	DOIMatched   bool      `json:"doi_matched,omitempty"`
	Breakdown    Breakdown `json:"breakdown"`
}

// Kind classifies a strong match.
type Kind string

const (
	KindNone    Kind = ""
	KindArxiv   Kind = "arxiv"
	KindDOI     Kind = "doi"
	KindJournal Kind = "journal"
)

// Compute scores one pair. An exact arXiv id match short-circuits to
// ScoreArxivMatch; failing that, an exact DOI match short-circuits to
// ScoreDOIMatch; otherwise author, year, page, and journal evidence
// accumulate independently.
func Compute(doc reference.DocEntry, canon reference.CanonicalEntry, journals JournalLookup) Composite {
	if arxivEqual(doc.ArxivID, canon.ArxivID) {
		return Composite{Total: ScoreArxivMatch, ArxivMatched: true}
	}
	if doiEqual(doc.DOI, canon.DOI) {
		return Composite{Total: ScoreDOIMatch, DOIMatched: true}
	}

	b := Breakdown{
		Author:  authorScore(doc, canon),
		Year:    yearScore(doc.Year, canon.Year),
		Page:    pageScore(doc.PageStart, canon.Page),
		Journal: journalScore(doc, canon, journals),
	}
	return Composite{
		Total:     b.Author + b.Year + b.Page + b.Journal,
		Breakdown: b,
	}
}

// StrongMatchKind reports whether the pair matches on a strong signal. The
// journal kind is distinct from raw scoring: exact volume plus either an
// exact page or a year within maxYearDelta, with author evidence present,
// yields the fixed ScoreJournalStrong band.
func StrongMatchKind(doc reference.DocEntry, canon reference.CanonicalEntry, journals JournalLookup, maxYearDelta int) (Kind, float64) {
	if arxivEqual(doc.ArxivID, canon.ArxivID) {
		return KindArxiv, ScoreArxivMatch
	}
	if doiEqual(doc.DOI, canon.DOI) {
		return KindDOI, ScoreDOIMatch
	}
	if doc.Volume != "" && doc.Volume == canon.Volume {
		pageOK := pageScore(doc.PageStart, canon.Page) > 0
		yearOK := false
		if dy, cy, ok := yearInts(doc.Year, canon.Year); ok {
			delta := dy - cy
			if delta < 0 {
				delta = -delta
			}
			yearOK = delta <= maxYearDelta
		}
		if (pageOK || yearOK) && authorScore(doc, canon) > 0 {
			return KindJournal, ScoreJournalStrong
		}
	}
	return KindNone, 0
}

func arxivEqual(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return NormalizeArxiv(a) == NormalizeArxiv(b)
}

func doiEqual(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return NormalizeDOI(a) == NormalizeDOI(b)
}

// authorScore grades author evidence: exact normalized last-name match,
// partial containment, presence in the free-text author fallback, then a
// "data group" phrase match for collaboration-authored entries.
func authorScore(doc reference.DocEntry, canon reference.CanonicalEntry) float64 {
	if doc.FirstAuthor == "" {
		return 0
	}
	docLast := author.Normalize(author.ExtractLastName(doc.FirstAuthor))
	if docLast == "" {
		return 0
	}

	for _, a := range canon.Authors {
		if author.Match(docLast, a.Last) {
			return scoreAuthorExact
		}
	}
	for _, a := range canon.Authors {
		canonLast := author.Normalize(a.Last)
		if canonLast == "" {
			continue
		}
		if strings.Contains(canonLast, docLast) || strings.Contains(docLast, canonLast) {
			return scoreAuthorPartial
		}
	}
	if canon.AuthorText != "" && strings.Contains(author.Normalize(canon.AuthorText), docLast) {
		return scoreAuthorText
	}
	if strings.Contains(strings.ToLower(doc.Raw), "data group") &&
		strings.Contains(author.Normalize(canon.AuthorText), "data group") {
		return scoreAuthorDataGroup
	}
	return 0
}

// yearScore is graduated: exact, then within 1, 2, or 3 years; zero beyond.
func yearScore(docYear, canonYear string) float64 {
	dy, cy, ok := yearInts(docYear, canonYear)
	if !ok {
		return 0
	}
	delta := dy - cy
	if delta < 0 {
		delta = -delta
	}
	switch delta {
	case 0:
		return scoreYearExact
	case 1:
		return scoreYearWithin1
	case 2:
		return scoreYearWithin2
	case 3:
		return scoreYearWithin3
	}
	return 0
}

func yearInts(a, b string) (int, int, bool) {
	ai, aok := yearInt(a)
	bi, bok := yearInt(b)
	return ai, bi, aok && bok
}

// yearInt parses a year, tolerating a letter suffix ("2011a").
func yearInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if len(s) > 4 {
		s = s[:4]
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1000 {
		return 0, false
	}
	return n, true
}

func pageScore(docPage, canonPage string) float64 {
	if docPage == "" || canonPage == "" {
		return 0
	}
	if normalizePage(docPage) == normalizePage(canonPage) {
		return scorePageExact
	}
	return 0
}

// normalizePage strips leading zeros and case so "034503" matches "34503"
// and "L012001" matches "l012001".
func normalizePage(p string) string {
	p = strings.ToLower(strings.TrimSpace(p))
	trimmed := strings.TrimLeft(p, "0")
	if trimmed == "" {
		return "0"
	}
	return trimmed
}

// journalScore awards points when the journal names are similar and the
// volume matches exactly, with a small bonus for an exact page.
func journalScore(doc reference.DocEntry, canon reference.CanonicalEntry, journals JournalLookup) float64 {
	if doc.Journal == "" || canon.Journal == "" || doc.Volume == "" {
		return 0
	}
	if doc.Volume != canon.Volume {
		return 0
	}
	if JournalSimilarity(doc.Journal, canon.Journal, journals) < journalSimilarityFloor {
		return 0
	}
	s := float64(scoreJournalVolume)
	if pageScore(doc.PageStart, canon.Page) > 0 {
		s += scoreJournalPageBonus
	}
	return s
}

// JournalSimilarity compares two journal names in [0,1]. The abbreviation
// table is consulted first: when the expansion sets of both names intersect,
// they are the same journal. Otherwise a substring-level prefix closeness is
// used as a fallback.
func JournalSimilarity(a, b string, journals JournalLookup) float64 {
	ca, cb := canonicalJournal(a), canonicalJournal(b)
	if ca == "" || cb == "" {
		return 0
	}
	if ca == cb {
		return 1
	}
	if journals != nil && expansionsIntersect(a, b, journals) {
		return 1
	}
	return prefixCloseness(ca, cb)
}

func expansionsIntersect(a, b string, journals JournalLookup) bool {
	set := make(map[string]struct{})
	for _, name := range expandJournal(a, journals) {
		set[canonicalJournal(name)] = struct{}{}
	}
	for _, name := range expandJournal(b, journals) {
		if _, ok := set[canonicalJournal(name)]; ok {
			return true
		}
	}
	return false
}

func expandJournal(name string, journals JournalLookup) []string {
	out := []string{name}
	out = append(out, journals.Abbreviations(name)...)
	out = append(out, journals.FullNames(name)...)
	return out
}

// canonicalJournal lowercases and strips dots and spaces so "Phys. Rev. D"
// and "Phys Rev D" compare equal.
func canonicalJournal(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch r {
		case '.', ' ', ',', '-':
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// prefixCloseness returns the shared-prefix fraction of the longer string:
// "physrev" vs "physrevd" is close; "physrev" vs "nuclphys" is not.
func prefixCloseness(a, b string) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	shared := 0
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			break
		}
		shared++
	}
	longer := len(a)
	if len(b) > longer {
		longer = len(b)
	}
	if longer == 0 {
		return 0
	}
	return float64(shared) / float64(longer)
}
