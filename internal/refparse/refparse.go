// Package refparse reconstructs per-label bibliographic metadata from a
// document's own reference list. It locates the bibliography section in the
// extracted full text, segments it into labelled entries (including labels
// that bundle several papers), and extracts author, year, journal, and
// identifier evidence for each paper.
package refparse

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/fkguo/inspirecite/internal/reference"
)

// Result is the parsed reference list. Entries maps each label to the papers
// the document lists under it; Order preserves label discovery order.
type Result struct {
	Entries    map[string][]reference.DocEntry `json:"entries"`
	Order      []string                        `json:"order"`
	Confidence reference.Confidence            `json:"confidence"`
	MaxLabel   int                             `json:"max_label"`
	AuthorYear bool                            `json:"author_year,omitempty"`

	// Aliases maps diacritic-stripped author-year keys to the primary key,
	// populated only by the author-year path.
	Aliases map[string]string `json:"aliases,omitempty"`
}

// PaperCount returns the total number of individual papers across all labels.
func (r *Result) PaperCount() int {
	n := 0
	for _, papers := range r.Entries {
		n += len(papers)
	}
	return n
}

// Lookup returns the papers for a label, following author-year aliases.
func (r *Result) Lookup(label string) []reference.DocEntry {
	if papers, ok := r.Entries[label]; ok {
		return papers
	}
	if primary, ok := r.Aliases[label]; ok {
		return r.Entries[primary]
	}
	return nil
}

const (
	// pageBreak is the delimiter the text source emits between pages.
	pageBreak = "\f"

	// chunkSize is the fallback chunk length when the text has no page breaks.
	chunkSize = 3000

	// maxEntryLen bounds one entry's span when the next label is far away or
	// missing (running heads, trailing acknowledgements).
	maxEntryLen = 1200

	// minLabelsBeforeRelaxing is the label count below which progressively
	// looser extraction passes run.
	minLabelsBeforeRelaxing = 5
)

var (
	sectionHeaderPattern = regexp.MustCompile(`(?i)\b(references|bibliography|literature\s+cited)\b`)

	lineStartBracket = regexp.MustCompile(`(?m)^[ \t]*\[(\d{1,4})\]`)
	lineStartRange   = regexp.MustCompile(`(?m)^[ \t]*\[(\d{1,4})\s*[–—−-]\s*(\d{1,4})\]`)
	anyBracketLabel  = regexp.MustCompile(`\[(\d{1,4})\]`)

	// "12. Author" at a line start or after a period.
	bareNumberEntry = regexp.MustCompile(`(?m)(?:^[ \t]*|\.\s+)(\d{1,3})\.?\s+\p{Lu}`)

	errataPattern = regexp.MustCompile(`(?i)\(E\)|erratum`)
)

// labelPos is one label occurrence with its byte offset in the section.
type labelPos struct {
	label string
	num   int
	pos   int // offset of the entry text (just past the label marker)
}

// Parse parses a numerically labelled reference list out of the full
// document text. It never fails: an unrecognizable document yields an empty
// low-confidence result.
func Parse(fullText string) *Result {
	section := locateSection(fullText)
	positions := extractLabelPositions(section)

	res := &Result{Entries: make(map[string][]reference.DocEntry)}
	if len(positions) == 0 {
		res.Confidence = reference.ConfidenceLow
		return res
	}

	multiPaper := 0
	for i, lp := range positions {
		end := lp.pos + maxEntryLen
		if i+1 < len(positions) && positions[i+1].pos < end {
			end = positions[i+1].pos
		}
		if end > len(section) {
			end = len(section)
		}
		span := section[lp.pos:end]

		papers := parseEntry(lp.label, span)
		if len(papers) > 1 {
			multiPaper++
		}
		if _, seen := res.Entries[lp.label]; !seen {
			res.Order = append(res.Order, lp.label)
		}
		res.Entries[lp.label] = append(res.Entries[lp.label], papers...)
		if lp.num > res.MaxLabel {
			res.MaxLabel = lp.num
		}
	}

	res.Confidence = assessConfidence(positions, multiPaper)
	return res
}

// locateSection finds the reference section. Chunks are scored from the tail
// backward; the winner is trimmed forward to its header and then to the
// lowest-numbered label.
func locateSection(fullText string) string {
	chunks, offsets := splitChunks(fullText)
	if len(chunks) == 0 {
		return ""
	}

	best, bestScore := len(chunks)-1, -1
	for i := len(chunks) - 1; i >= 0; i-- {
		score := scoreChunk(chunks[i], i, len(chunks))
		if score > bestScore {
			best, bestScore = i, score
		}
	}

	section := fullText[offsets[best]:]

	// Trim to the header when one is present.
	if loc := sectionHeaderPattern.FindStringIndex(section); loc != nil {
		section = section[loc[0]:]
	}

	// Trim to the lowest-numbered line-start label so prose between the
	// header and the list does not pollute the first entry.
	lowestOff, lowestN := -1, 0
	for _, m := range lineStartBracket.FindAllStringSubmatchIndex(section, -1) {
		n, _ := strconv.Atoi(section[m[2]:m[3]])
		if lowestOff == -1 || n < lowestN {
			lowestOff, lowestN = m[0], n
		}
	}
	if lowestOff > 0 {
		section = section[lowestOff:]
	}
	return section
}

func splitChunks(fullText string) ([]string, []int) {
	if strings.Contains(fullText, pageBreak) {
		var chunks []string
		var offsets []int
		pos := 0
		for _, c := range strings.Split(fullText, pageBreak) {
			chunks = append(chunks, c)
			offsets = append(offsets, pos)
			pos += len(c) + len(pageBreak)
		}
		return chunks, offsets
	}
	var chunks []string
	var offsets []int
	for pos := 0; pos < len(fullText); pos += chunkSize {
		end := pos + chunkSize
		if end > len(fullText) {
			end = len(fullText)
		}
		chunks = append(chunks, fullText[pos:end])
		offsets = append(offsets, pos)
	}
	return chunks, offsets
}

// scoreChunk rates how much a chunk looks like the start of the reference
// section: header keyword, density of numeric entry starts, and a bias
// toward the last few pages.
func scoreChunk(chunk string, idx, total int) int {
	score := 0
	if sectionHeaderPattern.MatchString(chunk) {
		score += 50
	}
	score += 2 * len(lineStartBracket.FindAllString(chunk, -1))
	score += len(bareNumberEntry.FindAllString(chunk, -1))

	// Reference lists live at the back of the document.
	if total-idx <= 3 {
		score += 5
	}
	if total-idx <= 1 {
		score += 3
	}
	return score
}

// extractLabelPositions finds label markers via layered fallbacks: strict
// line-start brackets, expanded ranges, inline supplements, a relaxed
// bracket scan, and finally bare "12. Author" numbering.
func extractLabelPositions(section string) []labelPos {
	positions := lineStartLabels(section)
	positions = append(positions, rangeLabels(section)...)

	if len(positions) > 0 {
		positions = supplementInline(section, positions)
	}
	if len(positions) < minLabelsBeforeRelaxing {
		positions = mergePositions(positions, relaxedBracketLabels(section))
	}
	if len(positions) < minLabelsBeforeRelaxing {
		positions = mergePositions(positions, bareNumberLabels(section))
	}

	sort.SliceStable(positions, func(i, j int) bool { return positions[i].pos < positions[j].pos })
	return dedupPositions(positions)
}

func lineStartLabels(section string) []labelPos {
	var out []labelPos
	for _, m := range lineStartBracket.FindAllStringSubmatchIndex(section, -1) {
		if inlineCitation(section, m[1]) {
			continue
		}
		label := section[m[2]:m[3]]
		n, _ := strconv.Atoi(label)
		out = append(out, labelPos{label: label, num: n, pos: m[1]})
	}
	return out
}

func rangeLabels(section string) []labelPos {
	var out []labelPos
	for _, m := range lineStartRange.FindAllStringSubmatchIndex(section, -1) {
		lo, _ := strconv.Atoi(section[m[2]:m[3]])
		hi, _ := strconv.Atoi(section[m[4]:m[5]])
		if hi < lo || hi-lo > 20 {
			continue
		}
		// All labels in the range share the span: the document bundled them.
		for n := lo; n <= hi; n++ {
			out = append(out, labelPos{label: strconv.Itoa(n), num: n, pos: m[1]})
		}
	}
	return out
}

// supplementInline adds bracket labels that are not at line starts but occur
// after the first confirmed label, for documents whose entries wrap without
// newlines.
func supplementInline(section string, positions []labelPos) []labelPos {
	first := positions[0].pos
	known := make(map[string]struct{}, len(positions))
	for _, p := range positions {
		known[p.label] = struct{}{}
	}
	for _, m := range anyBracketLabel.FindAllStringSubmatchIndex(section, -1) {
		if m[0] < first || inlineCitation(section, m[1]) {
			continue
		}
		label := section[m[2]:m[3]]
		if _, ok := known[label]; ok {
			continue
		}
		known[label] = struct{}{}
		n, _ := strconv.Atoi(label)
		positions = append(positions, labelPos{label: label, num: n, pos: m[1]})
	}
	return positions
}

func relaxedBracketLabels(section string) []labelPos {
	var out []labelPos
	for _, m := range anyBracketLabel.FindAllStringSubmatchIndex(section, -1) {
		label := section[m[2]:m[3]]
		n, _ := strconv.Atoi(label)
		out = append(out, labelPos{label: label, num: n, pos: m[1]})
	}
	return out
}

// bareNumberLabels finds "12. Author" style numbering, tolerating small
// sequential gaps but stopping on wild jumps (page numbers, years).
func bareNumberLabels(section string) []labelPos {
	var out []labelPos
	prev := 0
	for _, m := range bareNumberEntry.FindAllStringSubmatchIndex(section, -1) {
		label := section[m[2]:m[3]]
		n, _ := strconv.Atoi(label)
		if prev > 0 && (n <= prev || n > prev+5) {
			continue
		}
		out = append(out, labelPos{label: label, num: n, pos: m[3]})
		prev = n
	}
	return out
}

// inlineCitation reports whether the bracket at end offset `end` is an
// in-text citation rather than a list entry: sentence punctuation follows
// immediately.
func inlineCitation(section string, end int) bool {
	if end >= len(section) {
		return false
	}
	switch section[end] {
	case '.', ',', ';', ':':
		return true
	}
	return false
}

func mergePositions(a, b []labelPos) []labelPos {
	seen := make(map[string]struct{}, len(a))
	for _, p := range a {
		seen[p.label] = struct{}{}
	}
	for _, p := range b {
		if _, ok := seen[p.label]; ok {
			continue
		}
		seen[p.label] = struct{}{}
		a = append(a, p)
	}
	return a
}

func dedupPositions(positions []labelPos) []labelPos {
	seen := make(map[string]struct{}, len(positions))
	out := positions[:0]
	for _, p := range positions {
		if _, ok := seen[p.label]; ok {
			continue
		}
		seen[p.label] = struct{}{}
		out = append(out, p)
	}
	return out
}

// assessConfidence grades the parse: high when labels are strictly
// sequential and few labels bundle multiple papers, medium when at least 10
// labels were found, else low.
func assessConfidence(positions []labelPos, multiPaper int) reference.Confidence {
	sequential := true
	for i := 1; i < len(positions); i++ {
		if positions[i].num != positions[i-1].num+1 {
			sequential = false
			break
		}
	}
	if sequential && len(positions) > 0 && multiPaper*10 <= len(positions)*3 {
		return reference.ConfidenceHigh
	}
	if len(positions) >= 10 {
		return reference.ConfidenceMedium
	}
	return reference.ConfidenceLow
}

// parseEntry splits one label's text span into individual papers and
// extracts metadata for each. Semicolons separate bundled papers; failing
// that, year-token boundaries are tried.
func parseEntry(label, span string) []reference.DocEntry {
	span = strings.TrimSpace(span)
	if span == "" {
		return nil
	}

	parts := splitPapers(span)
	papers := make([]reference.DocEntry, 0, len(parts))
	for _, part := range parts {
		papers = append(papers, extractPaper(label, part))
	}
	return papers
}

func splitPapers(span string) []string {
	var parts []string
	for _, p := range strings.Split(span, ";") {
		p = strings.TrimSpace(p)
		if len(p) >= 10 { // fragments shorter than this are connective noise
			parts = append(parts, p)
		}
	}
	if len(parts) >= 2 {
		return parts
	}
	if byYear := splitByYearBoundary(span); len(byYear) >= 2 {
		return byYear
	}
	return []string{span}
}

// yearBoundary matches a year token followed by the start of a new paper
// (capitalized author or initial), the typical boundary when a label bundles
// papers without semicolons.
var (
	yearBoundary = regexp.MustCompile(`\b(?:1[89]|20)\d{2}\b[).\s]*`)
	paperStart   = regexp.MustCompile(`^\p{Lu}(?:\.|[\p{L}'’-])`)
)

func splitByYearBoundary(span string) []string {
	locs := yearBoundary.FindAllStringIndex(span, -1)
	if len(locs) < 2 {
		return nil
	}
	var parts []string
	start := 0
	for _, loc := range locs[:len(locs)-1] {
		cut := loc[1]
		rest := strings.TrimSpace(span[cut:])
		// Only split when a plausible new paper follows: enough text and a
		// leading author initial or capitalized name. A volume that is
		// itself a year ("Prog. Theor. Exp. Phys. 2022, 083C01") must not
		// cut the entry.
		if len(rest) < 15 || !paperStart.MatchString(rest) {
			continue
		}
		parts = append(parts, strings.TrimSpace(span[start:cut]))
		start = cut
	}
	if len(parts) == 0 {
		return nil
	}
	parts = append(parts, strings.TrimSpace(span[start:]))
	return parts
}
