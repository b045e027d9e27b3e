package score

import (
	"testing"

	"github.com/fkguo/inspirecite/internal/journal"
	"github.com/fkguo/inspirecite/internal/reference"
)

func TestComputeArxivShortCircuit(t *testing.T) {
	doc := reference.DocEntry{ArxivID: "arXiv:1507.03414v2", FirstAuthor: "Nobody", Year: "1900"}
	canon := reference.CanonicalEntry{ArxivID: "1507.03414"}

	c := Compute(doc, canon, nil)
	if !c.ArxivMatched {
		t.Error("ArxivMatched = false, want true")
	}
	if c.Total != ScoreArxivMatch {
		t.Errorf("Total = %v, want %v", c.Total, ScoreArxivMatch)
	}
}

func TestComputeDOIShortCircuit(t *testing.T) {
	doc := reference.DocEntry{DOI: "https://doi.org/10.1103/PhysRevD.92.034503"}
	canon := reference.CanonicalEntry{DOI: "10.1103/physrevd.92.034503"}

	c := Compute(doc, canon, nil)
	if !c.DOIMatched {
		t.Error("DOIMatched = false, want true")
	}
	if c.Total != ScoreDOIMatch {
		t.Errorf("Total = %v, want %v", c.Total, ScoreDOIMatch)
	}
}

func TestComputeArxivBeatsDOI(t *testing.T) {
	doc := reference.DocEntry{ArxivID: "1507.03414", DOI: "10.1/a"}
	canon := reference.CanonicalEntry{ArxivID: "1507.03414", DOI: "10.1/a"}

	c := Compute(doc, canon, nil)
	if !c.ArxivMatched || c.DOIMatched {
		t.Errorf("arXiv must win over DOI: %+v", c)
	}
}

func TestComputeAccumulatesEvidence(t *testing.T) {
	doc := reference.DocEntry{
		FirstAuthor: "Guo",
		Year:        "2015",
		PageStart:   "034503",
		Journal:     "Phys. Rev. D",
		Volume:      "92",
	}
	canon := reference.CanonicalEntry{
		Authors: []reference.Author{{Last: "Guo", First: "F.-K."}},
		Year:    "2015",
		Page:    "034503",
		Journal: "Physical Review D",
		Volume:  "92",
	}

	c := Compute(doc, canon, journal.Default())
	if c.Breakdown.Author == 0 {
		t.Error("author evidence missing")
	}
	if c.Breakdown.Year == 0 {
		t.Error("year evidence missing")
	}
	if c.Breakdown.Page == 0 {
		t.Error("page evidence missing")
	}
	if c.Breakdown.Journal == 0 {
		t.Error("journal evidence missing")
	}
	wantTotal := c.Breakdown.Author + c.Breakdown.Year + c.Breakdown.Page + c.Breakdown.Journal
	if c.Total != wantTotal {
		t.Errorf("Total = %v, want sum of breakdown %v", c.Total, wantTotal)
	}
}

func TestYearScoreGraduated(t *testing.T) {
	tests := []struct {
		doc, canon string
		want       float64
	}{
		{"2015", "2015", scoreYearExact},
		{"2015", "2016", scoreYearWithin1},
		{"2015", "2013", scoreYearWithin2},
		{"2015", "2018", scoreYearWithin3},
		{"2015", "2019", 0},
		{"2011a", "2011", scoreYearExact},
		{"", "2015", 0},
	}
	for _, tt := range tests {
		if got := yearScore(tt.doc, tt.canon); got != tt.want {
			t.Errorf("yearScore(%q, %q) = %v, want %v", tt.doc, tt.canon, got, tt.want)
		}
	}
}

func TestAuthorScoreTiers(t *testing.T) {
	canon := reference.CanonicalEntry{
		Authors: []reference.Author{{Last: "Hanhart"}, {Last: "Meissner"}},
	}
	if got := authorScore(reference.DocEntry{FirstAuthor: "Hanhart"}, canon); got != scoreAuthorExact {
		t.Errorf("exact tier = %v, want %v", got, scoreAuthorExact)
	}
	if got := authorScore(reference.DocEntry{FirstAuthor: "Meissner-Koch"}, canon); got != scoreAuthorPartial {
		t.Errorf("partial tier = %v, want %v", got, scoreAuthorPartial)
	}

	textOnly := reference.CanonicalEntry{AuthorText: "C. Hanhart and others"}
	if got := authorScore(reference.DocEntry{FirstAuthor: "Hanhart"}, textOnly); got != scoreAuthorText {
		t.Errorf("author-text tier = %v, want %v", got, scoreAuthorText)
	}

	pdg := reference.CanonicalEntry{AuthorText: "Particle Data Group"}
	doc := reference.DocEntry{FirstAuthor: "Workman", Raw: "Particle Data Group, PTEP 2022"}
	if got := authorScore(doc, pdg); got != scoreAuthorDataGroup {
		t.Errorf("data-group tier = %v, want %v", got, scoreAuthorDataGroup)
	}

	if got := authorScore(reference.DocEntry{}, canon); got != 0 {
		t.Errorf("no author = %v, want 0", got)
	}
}

func TestPageScoreNormalizes(t *testing.T) {
	if pageScore("034503", "34503") == 0 {
		t.Error("leading zeros must not break page equality")
	}
	if pageScore("L012001", "l012001") == 0 {
		t.Error("case must not break page equality")
	}
	if pageScore("100", "200") != 0 {
		t.Error("different pages must not match")
	}
}

func TestStrongMatchKindJournal(t *testing.T) {
	doc := reference.DocEntry{
		FirstAuthor: "Guo",
		Journal:     "Phys. Rev. D",
		Volume:      "92",
		PageStart:   "034503",
	}
	canon := reference.CanonicalEntry{
		Authors: []reference.Author{{Last: "Guo"}},
		Journal: "Physical Review D",
		Volume:  "92",
		Page:    "034503",
	}

	kind, s := StrongMatchKind(doc, canon, journal.Default(), 3)
	if kind != KindJournal {
		t.Errorf("kind = %s, want journal", kind)
	}
	if s != ScoreJournalStrong {
		t.Errorf("score = %v, want %v", s, ScoreJournalStrong)
	}

	// Without author evidence the journal strong match must not fire.
	noAuthor := doc
	noAuthor.FirstAuthor = ""
	if kind, _ := StrongMatchKind(noAuthor, canon, journal.Default(), 3); kind != KindNone {
		t.Errorf("kind = %s, want none without author evidence", kind)
	}
}

func TestStrongMatchKindIdentifierPriority(t *testing.T) {
	doc := reference.DocEntry{ArxivID: "1507.03414", DOI: "10.1/a", FirstAuthor: "Guo", Volume: "92"}
	canon := reference.CanonicalEntry{ArxivID: "1507.03414", DOI: "10.1/a", Volume: "92"}
	if kind, _ := StrongMatchKind(doc, canon, nil, 3); kind != KindArxiv {
		t.Errorf("kind = %s, want arxiv", kind)
	}
}

func TestJournalSimilarity(t *testing.T) {
	jt := journal.Default()
	tests := []struct {
		a, b string
		min  float64
	}{
		{"Phys. Rev. D", "Phys. Rev. D", 1},
		{"Phys Rev D", "Phys. Rev. D", 1},         // punctuation-insensitive
		{"Physical Review D", "Phys. Rev. D", 1},  // via abbreviation table
		{"Phys. Rev.", "Phys. Rev. D", 0.6},       // prefix closeness
	}
	for _, tt := range tests {
		if got := JournalSimilarity(tt.a, tt.b, jt); got < tt.min {
			t.Errorf("JournalSimilarity(%q, %q) = %v, want >= %v", tt.a, tt.b, got, tt.min)
		}
	}

	if got := JournalSimilarity("Phys. Rev. D", "Nucl. Phys. B", jt); got > 0.3 {
		t.Errorf("unrelated journals score %v, want low", got)
	}
}
