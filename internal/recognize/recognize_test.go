package recognize

import (
	"reflect"
	"testing"

	"github.com/fkguo/inspirecite/internal/reference"
)

func TestStrictSingleBracket(t *testing.T) {
	tests := []struct {
		in    string
		label string
	}{
		{"[5]", "5"},
		{"[17]", "17"},
		{"[123]", "123"},
		{" [42] ", "42"},
	}
	for _, tt := range tests {
		pc := Strict(tt.in)
		if pc == nil {
			t.Fatalf("Strict(%q) = nil", tt.in)
		}
		if pc.Format != reference.FormatNumeric {
			t.Errorf("Strict(%q).Format = %s, want numeric", tt.in, pc.Format)
		}
		if !reflect.DeepEqual(pc.Labels, []string{tt.label}) {
			t.Errorf("Strict(%q).Labels = %v, want [%s]", tt.in, pc.Labels, tt.label)
		}
	}
}

func TestStrictListWithRanges(t *testing.T) {
	pc := Strict("[25,26,29,30,32,33,38–41]")
	if pc == nil {
		t.Fatal("Strict returned nil")
	}
	want := []string{"25", "26", "29", "30", "32", "33", "38", "39", "40", "41"}
	if !reflect.DeepEqual(pc.Labels, want) {
		t.Errorf("Labels = %v, want %v", pc.Labels, want)
	}
	if pc.Format != reference.FormatNumeric {
		t.Errorf("Format = %s, want numeric", pc.Format)
	}
}

func TestStrictSimpleRange(t *testing.T) {
	pc := Strict("[3-6]")
	if pc == nil {
		t.Fatal("Strict returned nil")
	}
	want := []string{"3", "4", "5", "6"}
	if !reflect.DeepEqual(pc.Labels, want) {
		t.Errorf("Labels = %v, want %v", pc.Labels, want)
	}
}

func TestStrictAuthorYearBracket(t *testing.T) {
	pc := Strict("[Weinberg 1979]")
	if pc == nil {
		t.Fatal("Strict returned nil")
	}
	if pc.Format != reference.FormatAuthorYear {
		t.Errorf("Format = %s, want author-year", pc.Format)
	}
	if !reflect.DeepEqual(pc.Labels, []string{"weinberg 1979"}) {
		t.Errorf("Labels = %v", pc.Labels)
	}
}

func TestStrictAbbrevKey(t *testing.T) {
	pc := Strict("[GHM99]")
	if pc == nil {
		t.Fatal("Strict returned nil")
	}
	if pc.Format != reference.FormatAuthorYear {
		t.Errorf("Format = %s, want author-year", pc.Format)
	}
	if !reflect.DeepEqual(pc.Labels, []string{"GHM99"}) {
		t.Errorf("Labels = %v, want [GHM99]", pc.Labels)
	}
}

func TestStrictArxiv(t *testing.T) {
	tests := []struct {
		in    string
		label string
	}{
		{"[arXiv:2106.15928]", "2106.15928"},
		{"[arXiv:1812.10731v2]", "1812.10731"},
		{"[hep-ph/9702314]", "hep-ph/9702314"},
	}
	for _, tt := range tests {
		pc := Strict(tt.in)
		if pc == nil {
			t.Fatalf("Strict(%q) = nil", tt.in)
		}
		if pc.Format != reference.FormatArxiv {
			t.Errorf("Strict(%q).Format = %s, want arxiv", tt.in, pc.Format)
		}
		if !reflect.DeepEqual(pc.Labels, []string{tt.label}) {
			t.Errorf("Strict(%q).Labels = %v, want [%s]", tt.in, pc.Labels, tt.label)
		}
	}
}

func TestStrictRejectsProse(t *testing.T) {
	for _, in := range []string{"", "see above", "[not a citation]", "12abc"} {
		if pc := Strict(in); pc != nil {
			t.Errorf("Strict(%q) = %+v, want nil", in, pc)
		}
	}
}

func TestSelectionOCRBracketRepair(t *testing.T) {
	pc := Selection("f5g", Options{})
	if pc == nil {
		t.Fatal("Selection returned nil")
	}
	if !reflect.DeepEqual(pc.Labels, []string{"5"}) {
		t.Errorf("Labels = %v, want [5]", pc.Labels)
	}
	if pc.Format != reference.FormatNumeric {
		t.Errorf("Format = %s, want numeric", pc.Format)
	}
}

func TestSelectionOCRBracketRepairList(t *testing.T) {
	pc := Selection("f12,14g", Options{})
	if pc == nil {
		t.Fatal("Selection returned nil")
	}
	if !reflect.DeepEqual(pc.Labels, []string{"12", "14"}) {
		t.Errorf("Labels = %v, want [12 14]", pc.Labels)
	}
}

func TestSelectionBracketUnion(t *testing.T) {
	pc := Selection("as shown in [3] and [7-9]", Options{})
	if pc == nil {
		t.Fatal("Selection returned nil")
	}
	want := []string{"3", "7", "8", "9"}
	if !reflect.DeepEqual(pc.Labels, want) {
		t.Errorf("Labels = %v, want %v", pc.Labels, want)
	}
}

func TestSelectionNonNumericBracketFallsThrough(t *testing.T) {
	// A non-numeric bracket group blocks the union; nothing else matches.
	if pc := Selection("[see text]", Options{}); pc != nil {
		t.Errorf("Selection = %+v, want nil", pc)
	}
}

func TestSelectionAuthorYear(t *testing.T) {
	pc := Selection("Weinstein and Isgur (1982)", Options{})
	if pc == nil {
		t.Fatal("Selection returned nil")
	}
	if pc.Format != reference.FormatAuthorYear {
		t.Errorf("Format = %s, want author-year", pc.Format)
	}
	if !reflect.DeepEqual(pc.Labels, []string{"weinstein 1982"}) {
		t.Errorf("Labels = %v, want [weinstein 1982]", pc.Labels)
	}
}

func TestSelectionStrayPunctuation(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"12].", []string{"12"}},
		{"(14)", []string{"14"}},
		{"'23,24'", []string{"23", "24"}},
	}
	for _, tt := range tests {
		pc := Selection(tt.in, Options{})
		if pc == nil {
			t.Fatalf("Selection(%q) = nil", tt.in)
		}
		if !reflect.DeepEqual(pc.Labels, tt.want) {
			t.Errorf("Selection(%q).Labels = %v, want %v", tt.in, pc.Labels, tt.want)
		}
	}
}

func TestSelectionGluedDigits(t *testing.T) {
	pc := Selection("transcription factors72", Options{})
	if pc == nil {
		t.Fatal("Selection returned nil")
	}
	if !reflect.DeepEqual(pc.Labels, []string{"72"}) {
		t.Errorf("Labels = %v, want [72]", pc.Labels)
	}
}

func TestSelectionGluedDigitsExcludesYears(t *testing.T) {
	if pc := Selection("since2019", Options{}); pc != nil {
		t.Errorf("Selection = %+v, want nil for a glued year", pc)
	}
}

func TestSelectionFuzzyRefMarker(t *testing.T) {
	pc := Selection("see Refs. 12-14 for details", Options{Fuzzy: true})
	if pc == nil {
		t.Fatal("Selection returned nil")
	}
	want := []string{"12", "13", "14"}
	if !reflect.DeepEqual(pc.Labels, want) {
		t.Errorf("Labels = %v, want %v", pc.Labels, want)
	}
}

func TestSelectionFuzzyExclusions(t *testing.T) {
	// Math context: operators and multiple standalone numbers.
	if pc := Selection("x = 3 + 4", Options{Fuzzy: true}); pc != nil {
		t.Errorf("Selection = %+v, want nil for math text", pc)
	}
	// Structural noun prefix is not a citation.
	if pc := Selection("Figure 3", Options{Fuzzy: true}); pc != nil {
		t.Errorf("Selection = %+v, want nil for a figure reference", pc)
	}
}

func TestSelectionFuzzyOffByDefault(t *testing.T) {
	if pc := Selection("a bare 12 here", Options{}); pc != nil {
		t.Errorf("Selection = %+v, want nil without the fuzzy flag", pc)
	}
}

func TestSelectionIdempotent(t *testing.T) {
	inputs := []string{
		"[25,26,38–41]",
		"f5g",
		"Weinstein and Isgur (1982)",
		"see [3] and [7]",
	}
	for _, in := range inputs {
		a := Selection(in, Options{})
		b := Selection(in, Options{})
		if !reflect.DeepEqual(a, b) {
			t.Errorf("Selection(%q) not idempotent: %+v vs %+v", in, a, b)
		}
	}
}

func TestSelectionAuthorYearPreference(t *testing.T) {
	// With the author-year hint, the author-year grammar runs before the
	// numeric bracket scan.
	pc := Selection("Guo et al. (2015) [7]", Options{AuthorYear: true})
	if pc == nil {
		t.Fatal("Selection returned nil")
	}
	if pc.Format != reference.FormatAuthorYear {
		t.Errorf("Format = %s, want author-year", pc.Format)
	}
	if !reflect.DeepEqual(pc.Labels, []string{"guo 2015"}) {
		t.Errorf("Labels = %v", pc.Labels)
	}
}
