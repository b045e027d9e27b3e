package resolve

import (
	"strconv"
	"testing"

	"github.com/fkguo/inspirecite/internal/reference"
)

func entriesWithLabels(labels ...string) []reference.CanonicalEntry {
	out := make([]reference.CanonicalEntry, len(labels))
	for i, l := range labels {
		out[i] = reference.CanonicalEntry{ID: "e" + strconv.Itoa(i+1), Label: l}
	}
	return out
}

func TestAlignNoLabels(t *testing.T) {
	report := Align(entriesWithLabels("", "", ""))
	if report.Recommendation != UseIndexOnly {
		t.Errorf("Recommendation = %s, want %s", report.Recommendation, UseIndexOnly)
	}
	if report.Labelled != 0 || report.Aligned != 0 || report.Total != 3 {
		t.Errorf("counts = %+v", report)
	}
}

func TestAlignEmptyList(t *testing.T) {
	report := Align(nil)
	if report.Recommendation != UseIndexOnly {
		t.Errorf("Recommendation = %s, want %s", report.Recommendation, UseIndexOnly)
	}
}

func TestAlignWellAligned(t *testing.T) {
	report := Align(entriesWithLabels("1", "2", "3", "4", "5"))
	if report.Recommendation != UseCanonicalLabel {
		t.Errorf("Recommendation = %s, want %s", report.Recommendation, UseCanonicalLabel)
	}
	if report.Aligned != 5 || report.Labelled != 5 {
		t.Errorf("counts = %+v", report)
	}
	if !report.WellAligned() {
		t.Error("WellAligned() = false")
	}
}

func TestAlignShifted(t *testing.T) {
	// Labels present but offset by one: labelled, not aligned.
	report := Align(entriesWithLabels("2", "3", "4", "5", "6"))
	if report.Recommendation != UseIndexWithFallback {
		t.Errorf("Recommendation = %s, want %s", report.Recommendation, UseIndexWithFallback)
	}
	if report.Aligned != 0 {
		t.Errorf("Aligned = %d, want 0", report.Aligned)
	}
}

func TestAlignSparseLabels(t *testing.T) {
	report := Align(entriesWithLabels("1", "", "", "", ""))
	if report.Recommendation != UseIndexWithFallback {
		t.Errorf("Recommendation = %s, want %s", report.Recommendation, UseIndexWithFallback)
	}
}

// The recommendation depends only on the three counts.
func TestRecommendPure(t *testing.T) {
	tests := []struct {
		aligned, labelled, total int
		want                     Recommendation
	}{
		{0, 0, 0, UseIndexOnly},
		{0, 0, 10, UseIndexOnly},
		{10, 10, 10, UseCanonicalLabel},
		{9, 10, 10, UseCanonicalLabel},
		{5, 10, 10, UseIndexWithFallback},
		{10, 10, 20, UseIndexWithFallback},
	}
	for _, tt := range tests {
		if got := recommend(tt.aligned, tt.labelled, tt.total); got != tt.want {
			t.Errorf("recommend(%d, %d, %d) = %s, want %s",
				tt.aligned, tt.labelled, tt.total, got, tt.want)
		}
	}
}
