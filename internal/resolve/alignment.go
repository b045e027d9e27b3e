package resolve

import (
	"strconv"

	"github.com/fkguo/inspirecite/internal/reference"
)

// Recommendation says how much to trust the canonical list's own labels
// versus 1-based position.
type Recommendation string

const (
	UseCanonicalLabel    Recommendation = "USE_CANONICAL_LABEL"
	UseIndexWithFallback Recommendation = "USE_INDEX_WITH_FALLBACK"
	UseIndexOnly         Recommendation = "USE_INDEX_ONLY"
)

// AlignmentReport diagnoses how well canonical labels agree with list
// position. The recommendation is a pure function of the three counts.
type AlignmentReport struct {
	Aligned        int            `json:"aligned"`  // entries whose label equals their 1-based position
	Labelled       int            `json:"labelled"` // entries with any label at all
	Total          int            `json:"total"`
	Recommendation Recommendation `json:"recommendation"`
}

const (
	wellAlignedRatio  = 0.9
	wellLabelledRatio = 0.9
)

// Align computes the alignment report for a canonical entry list.
func Align(entries []reference.CanonicalEntry) AlignmentReport {
	r := AlignmentReport{Total: len(entries)}
	for i, e := range entries {
		if e.Label == "" {
			continue
		}
		r.Labelled++
		if n, err := strconv.Atoi(e.Label); err == nil && n == i+1 {
			r.Aligned++
		}
	}
	r.Recommendation = recommend(r.Aligned, r.Labelled, r.Total)
	return r
}

func recommend(aligned, labelled, total int) Recommendation {
	if labelled == 0 || total == 0 {
		return UseIndexOnly
	}
	if float64(labelled) >= wellLabelledRatio*float64(total) &&
		float64(aligned) >= wellAlignedRatio*float64(labelled) {
		return UseCanonicalLabel
	}
	return UseIndexWithFallback
}

// WellAligned reports whether canonical labels can be trusted outright.
func (r AlignmentReport) WellAligned() bool {
	return r.Recommendation == UseCanonicalLabel
}
