// Package resolve picks, for a citation label, the most trustworthy entry of
// a canonical reference list. Strategies run in a fixed priority order:
// strong identifiers first, then version-mismatch recovery, the document's
// position-derived mapping, global scoring, the canonical list's own labels,
// a 1-based index guess, and finally a case-insensitive label match. A
// strict mode replaces the last three with one more score sweep when the
// document and canonical list appear to enumerate different reference sets.
package resolve

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/fkguo/inspirecite/internal/refparse"
	"github.com/fkguo/inspirecite/internal/reference"
	"github.com/fkguo/inspirecite/internal/score"
)

// Resolver resolves labels against one canonical entry list, optionally
// informed by the document's own parsed reference list. It is immutable
// after construction; derived maps are built once.
type Resolver struct {
	entries  []reference.CanonicalEntry
	doc      *refparse.Result
	journals score.JournalLookup
	thr      Thresholds

	report       AlignmentReport
	labelToIndex map[string][]int
	ctx          matchContext
}

// New builds a resolver. doc may be nil when the document's reference list
// was not (or could not be) parsed; journals may be nil to disable
// abbreviation-aware journal comparison.
func New(entries []reference.CanonicalEntry, doc *refparse.Result, journals score.JournalLookup, thr Thresholds) *Resolver {
	r := &Resolver{
		entries:      entries,
		doc:          doc,
		journals:     journals,
		thr:          thr,
		report:       Align(entries),
		labelToIndex: make(map[string][]int),
	}

	maxLabel := 0
	dup := false
	for i, e := range entries {
		if e.Label == "" {
			continue
		}
		if len(r.labelToIndex[e.Label]) > 0 {
			dup = true
		}
		r.labelToIndex[e.Label] = append(r.labelToIndex[e.Label], i)
		if n, err := strconv.Atoi(e.Label); err == nil && n > maxLabel {
			maxLabel = n
		}
	}

	r.ctx = matchContext{
		report:     r.report,
		maxLabel:   maxLabel,
		dupLabels:  dup,
		overParsed: r.isOverParsed(),
		strict:     false,
	}
	r.ctx.strict = r.isStrict()
	return r
}

// Report returns the alignment diagnosis for the canonical list.
func (r *Resolver) Report() AlignmentReport { return r.report }

func (r *Resolver) isOverParsed() bool {
	if r.doc == nil || len(r.entries) == 0 {
		return false
	}
	parsed := r.doc.PaperCount()
	excess := parsed - len(r.entries)
	return excess > r.thr.OverParseAbs ||
		float64(parsed) > r.thr.OverParseRatio*float64(len(r.entries))
}

func (r *Resolver) isStrict() bool {
	if r.doc == nil || len(r.entries) == 0 || r.report.WellAligned() {
		return false
	}
	parsed := len(r.doc.Order)
	if parsed == 0 {
		return false
	}
	diff := parsed - len(r.entries)
	if diff < 0 {
		diff = -diff
	}
	ratio := float64(parsed) / float64(len(r.entries))
	return diff > r.thr.StrictAbs || ratio > r.thr.StrictRatio || ratio < 1/r.thr.StrictRatio
}

// Resolve resolves one label. The result slice is empty when nothing could
// be resolved; multi-paper labels may yield several results.
func (r *Resolver) Resolve(label string) []reference.MatchResult {
	label = strings.TrimSpace(label)
	if label == "" || len(r.entries) == 0 {
		return nil
	}

	type strategy func(string) []reference.MatchResult
	strategies := []strategy{
		r.strongIdentifier,
		r.versionMismatch,
		r.sequenceMapping,
		r.globalBestScore,
	}
	if r.ctx.strict {
		strategies = append(strategies, r.strictFallback)
	} else {
		strategies = append(strategies,
			r.canonicalLabelDirect,
			r.indexFallback,
			r.fuzzyLabel,
		)
	}

	for _, s := range strategies {
		if results := s(label); len(results) > 0 {
			return results
		}
	}
	return nil
}

// MatchAll resolves several labels, de-duplicating by resolved canonical
// index and sorting by index for stable display.
func (r *Resolver) MatchAll(labels []string) []reference.MatchResult {
	seen := make(map[int]struct{})
	var out []reference.MatchResult
	for _, label := range labels {
		for _, m := range r.Resolve(label) {
			if _, ok := seen[m.Index]; ok {
				continue
			}
			seen[m.Index] = struct{}{}
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out
}

// docPapers returns the document-parsed papers behind a label, or a
// synthesized entry when the label itself carries author-year evidence.
func (r *Resolver) docPapers(label string) []reference.DocEntry {
	if r.doc != nil {
		if papers := r.doc.Lookup(label); len(papers) > 0 {
			return papers
		}
	}
	if m := authorYearLabel.FindStringSubmatch(label); m != nil {
		return []reference.DocEntry{{Label: label, FirstAuthor: m[1], Year: m[2]}}
	}
	return nil
}

var authorYearLabel = regexp.MustCompile(`^(\p{L}[\p{L}'’ \-]*?)\s+((?:1[89]|20)\d{2}[a-z]?)$`)

// candidateOrder yields canonical indices to probe: a window around the
// sequence-position guess first, then the rest of the list.
func (r *Resolver) candidateOrder(label string) []int {
	order := make([]int, 0, len(r.entries))
	seen := make(map[int]struct{})
	push := func(i int) {
		if i < 0 || i >= len(r.entries) {
			return
		}
		if _, ok := seen[i]; ok {
			return
		}
		seen[i] = struct{}{}
		order = append(order, i)
	}

	if n, err := strconv.Atoi(label); err == nil {
		guess := n - 1
		for d := 0; d <= r.thr.WindowSize; d++ {
			push(guess + d)
			push(guess - d)
		}
	}
	for i := range r.entries {
		push(i)
	}
	return order
}

// strongIdentifier searches for an arXiv, DOI, or strong journal match
// between the label's document-parsed papers and the canonical entries.
func (r *Resolver) strongIdentifier(label string) []reference.MatchResult {
	if n, err := strconv.Atoi(label); err == nil && r.ctx.maxLabel > 0 && n > r.ctx.maxLabel {
		// Out-of-range labels belong to the version-mismatch strategy,
		// which attaches the warning the caller needs to see.
		return nil
	}
	papers := r.docPapers(label)
	if len(papers) == 0 {
		return nil
	}

	var out []reference.MatchResult
	for _, paper := range papers {
		for _, i := range r.candidateOrder(label) {
			kind, s := score.StrongMatchKind(paper, r.entries[i], r.journals, r.thr.MaxYearDelta)
			if kind == score.KindNone {
				continue
			}
			m := reference.MatchResult{
				Label:      label,
				Index:      i,
				Confidence: reference.ConfidenceHigh,
				Method:     reference.MethodExact,
				Score:      s,
			}
			switch kind {
			case score.KindArxiv:
				m.MatchedIDType, m.MatchedIDValue = "arxiv", score.NormalizeArxiv(paper.ArxivID)
			case score.KindDOI:
				m.MatchedIDType, m.MatchedIDValue = "doi", score.NormalizeDOI(paper.DOI)
			case score.KindJournal:
				m.Confidence = reference.ConfidenceMedium
			}
			out = append(out, m)
			break
		}
	}
	return dedupByIndex(out)
}

// versionMismatch fires only when the label's numeric value exceeds the
// canonical list's maximum known label: the document likely cites a
// different version of the reference set. Identifier-only matching prevents
// false positives; the mismatch is surfaced as a warning, not suppressed.
func (r *Resolver) versionMismatch(label string) []reference.MatchResult {
	n, err := strconv.Atoi(label)
	if err != nil || r.ctx.maxLabel == 0 || n <= r.ctx.maxLabel {
		return nil
	}
	papers := r.docPapers(label)
	if len(papers) == 0 {
		return nil
	}

	warning := fmt.Sprintf("label %d exceeds the canonical list's maximum label %d; matched by identifier", n, r.ctx.maxLabel)

	var out []reference.MatchResult
	for _, paper := range papers {
		for i, e := range r.entries {
			kind, s := score.StrongMatchKind(paper, e, nil, 0)
			if kind != score.KindArxiv && kind != score.KindDOI {
				continue
			}
			m := reference.MatchResult{
				Label:                  label,
				Index:                  i,
				Confidence:             reference.ConfidenceHigh,
				Method:                 reference.MethodExact,
				Score:                  s,
				VersionMismatchWarning: warning,
			}
			if kind == score.KindArxiv {
				m.MatchedIDType, m.MatchedIDValue = "arxiv", score.NormalizeArxiv(paper.ArxivID)
			} else {
				m.MatchedIDType, m.MatchedIDValue = "doi", score.NormalizeDOI(paper.DOI)
			}
			out = append(out, m)
			break
		}
	}
	return dedupByIndex(out)
}

// sequenceMapping trusts the document parser's position-derived mapping:
// the i-th label the document lists maps to the i-th canonical entry. Used
// only when the parse is not over-parsed and the alignment diagnosis says
// the canonical labels themselves are not trustworthy.
func (r *Resolver) sequenceMapping(label string) []reference.MatchResult {
	if r.doc == nil || r.ctx.overParsed || r.ctx.report.WellAligned() {
		return nil
	}
	pos := -1
	for i, l := range r.doc.Order {
		if l == label {
			pos = i
			break
		}
	}
	if pos < 0 || pos >= len(r.entries) {
		return nil
	}

	method := reference.MethodInferred
	if e := r.entries[pos]; e.Label != "" && e.Label != label {
		// The document's numbering overlays a differently labelled
		// canonical entry.
		method = reference.MethodOverlay
	}
	conf := reference.ConfidenceMedium
	if r.doc.Confidence == reference.ConfidenceHigh {
		conf = reference.ConfidenceHigh
	}
	return []reference.MatchResult{{
		Label:      label,
		Index:      pos,
		Confidence: conf,
		Method:     method,
	}}
}

// globalBestScore ranks every canonical entry by composite score. An arXiv
// match wins outright; else the best year-consistent candidate above
// MinScore; else the single best above NoYearMinScore. Tied top candidates
// are surfaced as ambiguous rather than silently picked.
func (r *Resolver) globalBestScore(label string) []reference.MatchResult {
	papers := r.docPapers(label)
	if len(papers) == 0 {
		return nil
	}

	var out []reference.MatchResult
	for _, paper := range papers {
		if m, ok := r.bestScored(label, paper); ok {
			out = append(out, m)
		}
	}
	return dedupByIndex(out)
}

func (r *Resolver) bestScored(label string, paper reference.DocEntry) (reference.MatchResult, bool) {
	type scored struct {
		idx  int
		comp score.Composite
	}
	results := make([]scored, 0, len(r.entries))
	for i, e := range r.entries {
		results = append(results, scored{i, score.Compute(paper, e, r.journals)})
	}
	sort.SliceStable(results, func(i, j int) bool { return results[i].comp.Total > results[j].comp.Total })

	best := results[0]
	if best.comp.Total <= 0 {
		return reference.MatchResult{}, false
	}

	m := reference.MatchResult{
		Label: label,
		Index: best.idx,
		Score: best.comp.Total,
	}

	switch {
	case best.comp.ArxivMatched:
		m.Confidence = reference.ConfidenceHigh
		m.Method = reference.MethodExact
		m.MatchedIDType, m.MatchedIDValue = "arxiv", score.NormalizeArxiv(paper.ArxivID)
	case best.comp.DOIMatched:
		m.Confidence = reference.ConfidenceHigh
		m.Method = reference.MethodExact
		m.MatchedIDType, m.MatchedIDValue = "doi", score.NormalizeDOI(paper.DOI)
	case best.comp.Breakdown.Year > 0 && best.comp.Total >= r.thr.MinScore:
		m.Confidence = reference.ConfidenceMedium
		m.Method = reference.MethodInferred
	case best.comp.Total >= r.thr.NoYearMinScore:
		m.Confidence = reference.ConfidenceLow
		m.Method = reference.MethodInferred
	default:
		return reference.MatchResult{}, false
	}

	// Ties between distinct canonical entries are ambiguous.
	for _, s := range results[1:] {
		if s.comp.Total != best.comp.Total {
			break
		}
		if !m.IsAmbiguous {
			m.IsAmbiguous = true
			m.AmbiguousCandidates = []int{best.idx}
		}
		m.AmbiguousCandidates = append(m.AmbiguousCandidates, s.idx)
	}
	if m.IsAmbiguous {
		sort.Ints(m.AmbiguousCandidates)
		m.Confidence = reference.ConfidenceLow
	}
	return m, true
}

// canonicalLabelDirect matches the label exactly against each canonical
// entry's own label. Skipped when canonical labels are known to contain
// duplicates and sequence mapping is preferred.
func (r *Resolver) canonicalLabelDirect(label string) []reference.MatchResult {
	if r.ctx.dupLabels && !r.ctx.report.WellAligned() {
		return nil
	}
	indices := r.labelToIndex[label]
	if len(indices) == 0 {
		return nil
	}
	conf := reference.ConfidenceMedium
	if r.ctx.report.WellAligned() {
		conf = reference.ConfidenceHigh
	}
	m := reference.MatchResult{
		Label:      label,
		Index:      indices[0],
		Confidence: conf,
		Method:     reference.MethodLabel,
	}
	if len(indices) > 1 {
		m.IsAmbiguous = true
		m.AmbiguousCandidates = append([]int(nil), indices...)
		m.Confidence = reference.ConfidenceLow
	}
	return []reference.MatchResult{m}
}

// indexFallback treats the label as a 1-based position into the canonical
// list. Refused when the position exceeds the canonical list's own maximum
// label, which indicates a version-mismatched document. Confidence scales
// with how well canonical labels agree with position overall.
func (r *Resolver) indexFallback(label string) []reference.MatchResult {
	n, err := strconv.Atoi(label)
	if err != nil || n < 1 || n > len(r.entries) {
		return nil
	}
	if r.ctx.maxLabel > 0 && n > r.ctx.maxLabel {
		return nil
	}

	conf := reference.ConfidenceLow
	if r.report.Total > 0 {
		ratio := float64(r.report.Aligned) / float64(r.report.Total)
		switch {
		case ratio >= 0.9:
			conf = reference.ConfidenceHigh
		case ratio >= 0.5:
			conf = reference.ConfidenceMedium
		}
	}
	return []reference.MatchResult{{
		Label:      label,
		Index:      n - 1,
		Confidence: conf,
		Method:     reference.MethodIndex,
	}}
}

// fuzzyLabel is the last resort: case-insensitive canonical-label match.
func (r *Resolver) fuzzyLabel(label string) []reference.MatchResult {
	for i, e := range r.entries {
		if e.Label != "" && strings.EqualFold(e.Label, label) {
			return []reference.MatchResult{{
				Label:      label,
				Index:      i,
				Confidence: reference.ConfidenceLow,
				Method:     reference.MethodFuzzy,
			}}
		}
	}
	return nil
}

// strictFallback replaces strategies 5-7 in strict mode: one more global
// score sweep, accepting the best candidate above MinScore regardless of
// year consistency, rather than risking a wrong index-based guess.
func (r *Resolver) strictFallback(label string) []reference.MatchResult {
	papers := r.docPapers(label)
	if len(papers) == 0 {
		return nil
	}
	var out []reference.MatchResult
	for _, paper := range papers {
		bestIdx, bestTotal := -1, 0.0
		for i, e := range r.entries {
			if c := score.Compute(paper, e, r.journals); c.Total > bestTotal {
				bestIdx, bestTotal = i, c.Total
			}
		}
		if bestIdx >= 0 && bestTotal >= r.thr.MinScore {
			out = append(out, reference.MatchResult{
				Label:      label,
				Index:      bestIdx,
				Confidence: reference.ConfidenceLow,
				Method:     reference.MethodStrictFallback,
				Score:      bestTotal,
			})
		}
	}
	return dedupByIndex(out)
}

func dedupByIndex(results []reference.MatchResult) []reference.MatchResult {
	seen := make(map[int]struct{}, len(results))
	out := results[:0]
	for _, m := range results {
		if _, ok := seen[m.Index]; ok {
			continue
		}
		seen[m.Index] = struct{}{}
		out = append(out, m)
	}
	return out
}
