// Package recognize extracts citation labels from selected text. It accepts
// the many surface forms citations take in scholarly PDFs: bracketed numbers
// and ranges, superscript digit runs, author-year phrases, arXiv identifiers,
// and OCR-corrupted variants of all of these.
package recognize

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/fkguo/inspirecite/internal/reference"
)

// Options controls the lenient selection parse.
type Options struct {
	// Fuzzy enables the aggressive last-resort heuristics (bare numbers,
	// "Word 12" pairs). Off by default; too eager for arbitrary text.
	Fuzzy bool

	// AuthorYear indicates the document's citation style is author-year, so
	// author-year extraction is attempted before numeric forms.
	AuthorYear bool

	// MaxKnownLabel is the highest label known to exist in the document's
	// reference list. Used to bound concatenated-range repair and fuzzy
	// number acceptance. Zero means unknown.
	MaxKnownLabel int

	// YearMin and YearMax bound the publication-year range used to exclude
	// 4-digit years from numeric label candidates. Zero values use defaults.
	YearMin, YearMax int
}

const (
	defaultYearMin = 1900
	defaultYearMax = 2035
)

func (o Options) yearRange() (int, int) {
	lo, hi := o.YearMin, o.YearMax
	if lo == 0 {
		lo = defaultYearMin
	}
	if hi == 0 {
		hi = defaultYearMax
	}
	return lo, hi
}

// strictRule is one (pattern, extractor) pair of the strict grammar. Rules
// are evaluated in order; the first full match wins.
type strictRule struct {
	re    *regexp.Regexp
	apply func(m []string) *reference.ParsedCitation
}

var strictRules = []strictRule{
	{
		re: regexp.MustCompile(`^\[(\d{1,4})\]$`),
		apply: func(m []string) *reference.ParsedCitation {
			return newNumeric(m[0], []string{m[1]})
		},
	},
	{
		re: regexp.MustCompile(`^\[(\d{1,4}(?:\s*[,;]\s*\d{1,4}|\s*[–—−-]\s*\d{1,4})+)\]$`),
		apply: func(m []string) *reference.ParsedCitation {
			return newNumeric(m[0], expandNumericList(m[1]))
		},
	},
	{
		re: regexp.MustCompile(`^\[(\d{1,4})\s*[–—−-]\s*(\d{1,4})\]$`),
		apply: func(m []string) *reference.ParsedCitation {
			return newNumeric(m[0], expandNumericList(m[1]+"-"+m[2]))
		},
	},
	{
		re: regexp.MustCompile(`^\[(\p{Lu}[\p{L}.\-'’ ]*?)\s+(\d{4}[a-z]?)\]$`),
		apply: func(m []string) *reference.ParsedCitation {
			return &reference.ParsedCitation{
				Raw:    m[0],
				Format: reference.FormatAuthorYear,
				Labels: []string{AuthorYearKey(m[1], m[2])},
			}
		},
	},
	{
		re: regexp.MustCompile(`^\[(\p{Lu}[\p{Lu}\d]{0,6}\d{2})\]$`),
		apply: func(m []string) *reference.ParsedCitation {
			return &reference.ParsedCitation{
				Raw:    m[0],
				Format: reference.FormatAuthorYear,
				Labels: []string{m[1]},
			}
		},
	},
	{
		re: regexp.MustCompile(`^\[[aA][rR][xX][iI][vV]:(\d{4}\.\d{4,5})(?:v\d+)?\]$`),
		apply: func(m []string) *reference.ParsedCitation {
			return &reference.ParsedCitation{
				Raw:    m[0],
				Format: reference.FormatArxiv,
				Labels: []string{m[1]},
			}
		},
	},
	{
		re: regexp.MustCompile(`^\[([a-z][a-z-]+(?:\.[A-Z]{2})?/\d{7})(?:v\d+)?\]$`),
		apply: func(m []string) *reference.ParsedCitation {
			return &reference.ParsedCitation{
				Raw:    m[0],
				Format: reference.FormatArxiv,
				Labels: []string{m[1]},
			}
		},
	},
}

var (
	// OCR frequently reads "[" as "f" and "]" as "g" in cmr-family fonts.
	ocrBracketPattern = regexp.MustCompile(`\bf(\d[\d,;\s–—−-]*)g\b`)

	bracketGroupPattern = regexp.MustCompile(`\[([^\[\]]+)\]`)
	numericContent      = regexp.MustCompile(`^[\d\s,;.–—−-]+$`)

	bareNumberPattern = regexp.MustCompile(`^\d{1,4}$`)
	bareListPattern   = regexp.MustCompile(`^\d{1,4}(?:\s*[,;–—−-]\s*\d{1,4})+$`)

	gluedDigitsPattern = regexp.MustCompile(`\p{L}{2,}(\d{1,4})(?:\b|$)`)

	refMarkerPattern    = regexp.MustCompile(`(?i)\brefs?\.?\s*(\d{1,4}(?:\s*[,–—−-]\s*\d{1,4})*)`)
	capitalPairPattern  = regexp.MustCompile(`(\p{Lu}\p{Ll}+)\s+(\d{1,3})(?:\b|$)`)
	numberTokenPattern  = regexp.MustCompile(`\d{1,4}`)
	mathOperatorPattern = regexp.MustCompile(`[+=<>^~/×÷∗∼≈≤≥±]`)
	mathHyphenPattern   = regexp.MustCompile(`\p{L}\s*[-−]\s*[\p{L}\d]|\d\s*[-−]\s*\p{L}`)
)

// Strict parses text that is expected to be exactly one citation marker.
// Returns nil when no strict pattern matches the whole input.
func Strict(text string) *reference.ParsedCitation {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	for _, rule := range strictRules {
		if m := rule.re.FindStringSubmatch(text); m != nil {
			return rule.apply(m)
		}
	}
	if labels := decodeSuperscripts(text); labels != nil {
		return newNumeric(text, labels)
	}
	return nil
}

// Selection parses arbitrary user-selected text leniently. It repairs OCR
// bracket corruption, prefers author-year extraction when the caller says
// the document is author-year styled, unions all numeric bracket groups,
// falls back through punctuation stripping, superscript runs, and glued
// plain-digit citations, and applies the aggressive heuristics only when
// opts.Fuzzy is set. Returns nil when nothing is recognized.
func Selection(text string, opts Options) *reference.ParsedCitation {
	raw := text
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	text = ocrBracketPattern.ReplaceAllString(text, "[$1]")

	if pc := Strict(text); pc != nil {
		pc.Raw = raw
		return pc
	}

	if opts.AuthorYear {
		if pc := authorYearCitation(raw, text); pc != nil {
			return pc
		}
	}

	if pc := bracketUnion(raw, text, opts); pc != nil {
		return pc
	}

	if pc := authorYearCitation(raw, text); pc != nil {
		return pc
	}

	if pc := strippedNumeric(raw, text, opts); pc != nil {
		return pc
	}

	if labels := findSuperscriptRuns(text); len(labels) > 0 {
		return newNumeric(raw, labels)
	}

	if pc := gluedDigits(raw, text, opts); pc != nil {
		return pc
	}

	if opts.Fuzzy {
		return fuzzyNumeric(raw, text, opts)
	}
	return nil
}

func newNumeric(raw string, labels []string) *reference.ParsedCitation {
	if len(labels) == 0 {
		return nil
	}
	return &reference.ParsedCitation{
		Raw:    raw,
		Format: reference.FormatNumeric,
		Labels: dedupLabels(labels),
	}
}

// authorYearCitation wraps ExtractAuthorYear output as a ParsedCitation with
// one sub-citation per distinct work.
func authorYearCitation(raw, text string) *reference.ParsedCitation {
	matches := ExtractAuthorYear(text)
	if len(matches) == 0 {
		return nil
	}
	pc := &reference.ParsedCitation{Raw: raw, Format: reference.FormatAuthorYear}
	for _, m := range matches {
		pc.Labels = append(pc.Labels, m.Label)
		pc.Subs = append(pc.Subs, reference.SubCitation{Text: m.Text, Labels: []string{m.Label}})
	}
	pc.Labels = dedupLabels(pc.Labels)
	if len(pc.Subs) == 1 {
		pc.Subs = nil
	}
	return pc
}

// bracketUnion scans for every bracket group in the selection. When all
// groups are numeric, their expanded labels are unioned in order; a text
// that mixes numeric groups with author-year phrases is tagged mixed.
func bracketUnion(raw, text string, opts Options) *reference.ParsedCitation {
	groups := bracketGroupPattern.FindAllStringSubmatch(text, -1)
	if len(groups) == 0 {
		return nil
	}
	var labels []string
	for _, g := range groups {
		content := g[1]
		if !numericContent.MatchString(content) || !strings.ContainsAny(content, "0123456789") {
			return nil
		}
		labels = append(labels, expandNumericList(content)...)
	}
	labels = PostProcessLabels(labels, opts.MaxKnownLabel)
	if len(labels) == 0 {
		return nil
	}

	if ay := ExtractAuthorYear(bracketGroupPattern.ReplaceAllString(text, "")); len(ay) > 0 {
		pc := newNumeric(raw, labels)
		pc.Format = reference.FormatMixed
		for _, m := range ay {
			pc.Labels = append(pc.Labels, m.Label)
			pc.Subs = append(pc.Subs, reference.SubCitation{Text: m.Text, Labels: []string{m.Label}})
		}
		pc.Labels = dedupLabels(pc.Labels)
		return pc
	}
	return newNumeric(raw, labels)
}

// strippedNumeric strips stray punctuation from the selection edges and
// retries the bare numeric forms. A trailing "]" that closes an unbalanced
// "[" is kept so "[12" / "12]" pairs still parse.
func strippedNumeric(raw, text string, opts Options) *reference.ParsedCitation {
	stripped := stripStrayPunct(text)
	var labels []string
	switch {
	case bareNumberPattern.MatchString(stripped):
		labels = []string{stripped}
	case bareListPattern.MatchString(stripped):
		labels = expandNumericList(stripped)
	default:
		return nil
	}
	return newNumeric(raw, PostProcessLabels(labels, opts.MaxKnownLabel))
}

// stripStrayPunct trims leading/trailing punctuation left over from sloppy
// selections, preserving brackets that pair with an unbalanced partner.
func stripStrayPunct(text string) string {
	const stray = ".,;:'\"()“”‘’ \t\n"
	text = strings.Trim(text, stray)
	for {
		trimmed := text
		if strings.HasPrefix(trimmed, "[") && !strings.Contains(trimmed, "]") {
			trimmed = strings.TrimPrefix(trimmed, "[")
		}
		if strings.HasSuffix(trimmed, "]") && !strings.Contains(trimmed[:len(trimmed)-1], "[") {
			trimmed = strings.TrimSuffix(trimmed, "]")
		}
		trimmed = strings.Trim(trimmed, stray)
		if trimmed == text {
			return text
		}
		text = trimmed
	}
}

// gluedDigits detects Nature/Science-style citations where the superscript
// was flattened into the preceding word ("factors72"). 4-digit numbers in
// the configured year range are excluded.
func gluedDigits(raw, text string, opts Options) *reference.ParsedCitation {
	yearLo, yearHi := opts.yearRange()
	var labels []string
	for _, m := range gluedDigitsPattern.FindAllStringSubmatch(text, -1) {
		if len(m[1]) == 4 {
			if n := atoi(m[1]); n >= yearLo && n <= yearHi {
				continue
			}
		}
		labels = append(labels, m[1])
	}
	if len(labels) == 0 {
		return nil
	}
	return newNumeric(raw, PostProcessLabels(labels, opts.MaxKnownLabel))
}

// fuzzyNumeric is the aggressive last resort: explicit "Ref." markers,
// "Word 12" pairs excluding structural nouns, then bare standalone numbers
// gated by exclusion rules. When an explicit pattern fired, the exclusions
// relax and all standalone numbers in range are kept.
func fuzzyNumeric(raw, text string, opts Options) *reference.ParsedCitation {
	var labels []string
	explicitFired := false

	for _, m := range refMarkerPattern.FindAllStringSubmatch(text, -1) {
		labels = append(labels, expandNumericList(m[1])...)
		explicitFired = true
	}

	// Numbers owned by a structural pair ("Figure 3") are not citations and
	// must not resurface as standalone candidates either.
	structural := make(map[int]struct{})
	for _, loc := range capitalPairPattern.FindAllStringSubmatchIndex(text, -1) {
		word := text[loc[2]:loc[3]]
		if isStructuralName(word) {
			structural[loc[4]] = struct{}{}
			continue
		}
		labels = append(labels, text[loc[4]:loc[5]])
		explicitFired = true
	}

	yearLo, yearHi := opts.yearRange()
	var standalone []string
	for _, loc := range standaloneNumberIndex(text) {
		if _, ok := structural[loc[0]]; ok {
			continue
		}
		tok := text[loc[0]:loc[1]]
		n := atoi(tok)
		if len(tok) == 4 && n >= yearLo && n <= yearHi {
			continue
		}
		if opts.MaxKnownLabel > 0 && n > opts.MaxKnownLabel {
			continue
		}
		standalone = append(standalone, tok)
	}

	if explicitFired {
		labels = append(labels, standalone...)
	} else if len(standalone) > 0 && !fuzzyExcluded(text, len(standalone)) {
		labels = append(labels, standalone...)
	}

	return newNumeric(raw, PostProcessLabels(labels, opts.MaxKnownLabel))
}

// fuzzyExcluded reports whether the selection looks like prose or math
// rather than a citation: parentheses, math operators, a math-context
// hyphen, Greek letters, or two or more non-year standalone numbers.
func fuzzyExcluded(text string, standaloneCount int) bool {
	if strings.ContainsAny(text, "()") {
		return true
	}
	if mathOperatorPattern.MatchString(text) {
		return true
	}
	if mathHyphenPattern.MatchString(text) {
		return true
	}
	for _, r := range text {
		if unicode.Is(unicode.Greek, r) {
			return true
		}
	}
	return standaloneCount >= 2
}

// standaloneNumberIndex finds digit tokens not glued to letters, decimals, or
// dashes. Regexp word boundaries treat "factors72" as one word, so the
// neighborhood check is explicit.
func standaloneNumberIndex(text string) [][]int {
	var out [][]int
	for _, loc := range numberTokenPattern.FindAllStringIndex(text, -1) {
		if joinedToNeighbor(text, loc[0], loc[1]) {
			continue
		}
		out = append(out, loc)
	}
	return out
}

func joinedToNeighbor(text string, start, end int) bool {
	isJoiner := func(r rune) bool {
		return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '.' || r == '-' || r == '−' || r == '–'
	}
	if start > 0 {
		if r, _ := utf8.DecodeLastRuneInString(text[:start]); isJoiner(r) {
			return true
		}
	}
	if end < len(text) {
		if r, _ := utf8.DecodeRuneInString(text[end:]); isJoiner(r) {
			return true
		}
	}
	return false
}

func atoi(s string) int {
	n := 0
	for _, r := range s {
		n = n*10 + int(r-'0')
	}
	return n
}
