package refparse

import (
	"strings"
	"testing"

	"github.com/fkguo/inspirecite/internal/reference"
)

const sampleDoc = `Introduction text discussing hidden-charm pentaquarks [1,2] and
related exotic states. More prose follows for several paragraphs.

Body text continues with equations and discussion of production
mechanisms, citing earlier work [3] throughout.
` + "\f" + `
More body text on another page. Nothing reference-like here.
` + "\f" + `
References

[1] R. Aaij et al., Phys. Rev. Lett. 115, 072001 (2015), arXiv:1507.03414.
[2] F.-K. Guo, C. Hanhart, U.-G. Meissner, Rev. Mod. Phys. 90, 015004 (2018),
arXiv:1705.00141.
[3] X. Liu, Phys. Rev. D 92, 034503 (2015); Y. Chen, Nucl. Phys. B 871, 014031 (2013).
[4] S. Weinberg, Physica A 96, 327 (1979), doi:10.1016/0378-4371(79)90223-1.
[5] Particle Data Group Collaboration, Prog. Theor. Exp. Phys. 2022, 083C01 (2022) (E).
`

func TestParseLocatesSection(t *testing.T) {
	res := Parse(sampleDoc)
	if len(res.Order) != 5 {
		t.Fatalf("expected 5 labels, got %d: %v", len(res.Order), res.Order)
	}
	for i, want := range []string{"1", "2", "3", "4", "5"} {
		if res.Order[i] != want {
			t.Errorf("Order[%d] = %s, want %s", i, res.Order[i], want)
		}
	}
	if res.MaxLabel != 5 {
		t.Errorf("MaxLabel = %d, want 5", res.MaxLabel)
	}
}

func TestParseIgnoresInlineCitations(t *testing.T) {
	// "[1,2]" and "[3]" in the body are citations, not entries; the parsed
	// entry text must come from the reference section.
	res := Parse(sampleDoc)
	papers := res.Entries["1"]
	if len(papers) != 1 {
		t.Fatalf("expected 1 paper under [1], got %d", len(papers))
	}
	if !strings.Contains(papers[0].Raw, "Aaij") {
		t.Errorf("entry [1] text = %q, want the reference-section entry", papers[0].Raw)
	}
}

func TestParseExtractsMetadata(t *testing.T) {
	res := Parse(sampleDoc)

	p1 := res.Entries["1"][0]
	if p1.FirstAuthor != "Aaij" {
		t.Errorf("[1] FirstAuthor = %s, want Aaij", p1.FirstAuthor)
	}
	if p1.ArxivID != "1507.03414" {
		t.Errorf("[1] ArxivID = %s, want 1507.03414", p1.ArxivID)
	}
	if p1.Volume != "115" {
		t.Errorf("[1] Volume = %s, want 115", p1.Volume)
	}

	p4 := res.Entries["4"][0]
	if p4.DOI != "10.1016/0378-4371(79)90223-1" {
		t.Errorf("[4] DOI = %s", p4.DOI)
	}
	if p4.Year != "1979" {
		t.Errorf("[4] Year = %s, want 1979", p4.Year)
	}
}

func TestParseMultiPaperLabel(t *testing.T) {
	res := Parse(sampleDoc)
	papers := res.Entries["3"]
	if len(papers) != 2 {
		t.Fatalf("expected 2 papers under [3], got %d: %+v", len(papers), papers)
	}
	if papers[0].FirstAuthor != "Liu" {
		t.Errorf("first paper author = %s, want Liu", papers[0].FirstAuthor)
	}
	if papers[1].FirstAuthor != "Chen" {
		t.Errorf("second paper author = %s, want Chen", papers[1].FirstAuthor)
	}
}

func TestParseErratumFlag(t *testing.T) {
	res := Parse(sampleDoc)
	if !res.Entries["5"][0].Erratum {
		t.Error("entry [5] should carry the erratum flag")
	}
	if res.Entries["1"][0].Erratum {
		t.Error("entry [1] should not carry the erratum flag")
	}
}

func TestParseConfidence(t *testing.T) {
	res := Parse(sampleDoc)
	if res.Confidence != reference.ConfidenceHigh {
		t.Errorf("Confidence = %s, want high for a sequential parse", res.Confidence)
	}
}

func TestParseEmptyDocument(t *testing.T) {
	res := Parse("")
	if res.Confidence != reference.ConfidenceLow {
		t.Errorf("Confidence = %s, want low", res.Confidence)
	}
	if len(res.Order) != 0 {
		t.Errorf("Order = %v, want empty", res.Order)
	}
}

func TestParseProseOnly(t *testing.T) {
	res := Parse("No bibliography anywhere in this text. Just prose sentences.")
	if len(res.Order) != 0 {
		t.Errorf("Order = %v, want empty", res.Order)
	}
}

func TestParseWithoutPageBreaks(t *testing.T) {
	// Same document, page breaks removed: fixed-size chunking still finds
	// the tail section.
	res := Parse(strings.ReplaceAll(sampleDoc, "\f", "\n"))
	if len(res.Order) != 5 {
		t.Fatalf("expected 5 labels, got %d: %v", len(res.Order), res.Order)
	}
}

func TestLookupFollowsAliases(t *testing.T) {
	res := &Result{
		Entries: map[string][]reference.DocEntry{
			"müller 2016": {{Label: "müller 2016", FirstAuthor: "Müller"}},
		},
		Aliases: map[string]string{"muller 2016": "müller 2016"},
	}
	if got := res.Lookup("muller 2016"); len(got) != 1 {
		t.Errorf("Lookup via alias failed: %v", got)
	}
	if got := res.Lookup("absent"); got != nil {
		t.Errorf("Lookup(absent) = %v, want nil", got)
	}
}

func TestYearVolumeJournalStaysOnePaper(t *testing.T) {
	// PTEP-style journals carry a year as the volume; the second year token
	// must not cut the entry in two (which would also strand the erratum
	// marker on a bogus trailing paper).
	papers := parseEntry("5", "Particle Data Group Collaboration, Prog. Theor. Exp. Phys. 2022, 083C01 (2022) (E).")
	if len(papers) != 1 {
		t.Fatalf("expected 1 paper, got %d: %+v", len(papers), papers)
	}
	if !papers[0].Erratum {
		t.Error("erratum flag lost")
	}
}

func TestYearBoundarySplitsBundledPapers(t *testing.T) {
	// No semicolon, but a year followed by a fresh author initial is a
	// paper boundary.
	papers := parseEntry("7", "X. Liu, Phys. Rev. D 92, 034503 (2015). Y. Chen, Nucl. Phys. B 871, 014031 (2013).")
	if len(papers) != 2 {
		t.Fatalf("expected 2 papers, got %d: %+v", len(papers), papers)
	}
	if papers[0].FirstAuthor != "Liu" || papers[1].FirstAuthor != "Chen" {
		t.Errorf("authors = %s, %s; want Liu, Chen", papers[0].FirstAuthor, papers[1].FirstAuthor)
	}
}

func TestPaperCount(t *testing.T) {
	res := Parse(sampleDoc)
	if n := res.PaperCount(); n != 6 {
		t.Errorf("PaperCount = %d, want 6 (label 3 bundles two papers)", n)
	}
}
