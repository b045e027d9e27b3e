package resolve

// Thresholds are the empirically tuned cutoffs governing strict mode and
// score acceptance. They are configuration, not law: callers tune them per
// corpus.
type Thresholds struct {
	// OverParseRatio and OverParseAbs decide when the document parser found
	// materially more papers than the canonical list has entries, in which
	// case position-derived mappings are distrusted.
	OverParseRatio float64
	OverParseAbs   int

	// StrictRatio and StrictAbs decide when the document and canonical
	// counts diverge enough to enter strict mode (strategies 5-7 disabled).
	StrictRatio float64
	StrictAbs   int

	// MinScore accepts a year-consistent global-score candidate;
	// NoYearMinScore is the higher bar when year evidence is absent.
	MinScore       float64
	NoYearMinScore float64

	// WindowSize is the half-width of the canonical-index window searched
	// around a sequence-position guess before falling back to a full scan.
	WindowSize int

	// MaxYearDelta is the year tolerance of the strong journal match.
	MaxYearDelta int
}

// DefaultThresholds returns the tuned defaults.
func DefaultThresholds() Thresholds {
	return Thresholds{
		OverParseRatio: 1.5,
		OverParseAbs:   10,
		StrictRatio:    1.5,
		StrictAbs:      20,
		MinScore:       45,
		NoYearMinScore: 60,
		WindowSize:     3,
		MaxYearDelta:   3,
	}
}

// matchContext is the immutable per-resolution view of the alignment
// diagnosis. It is computed once when the resolver is built and threaded by
// value through each strategy.
type matchContext struct {
	report     AlignmentReport
	strict     bool // counts diverge and canonical labels are not well aligned
	overParsed bool // document parsed materially more papers than canonical entries
	maxLabel   int  // highest numeric label in the canonical list, 0 if none
	dupLabels  bool // canonical labels contain duplicates
}
