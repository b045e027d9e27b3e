package recognize

import "strings"

// superscriptDigits maps Unicode superscript digits to their ASCII values.
// U+00B9, U+00B2, U+00B3 predate the U+2070 block, so the table is explicit.
var superscriptDigits = map[rune]rune{
	'⁰': '0', '¹': '1', '²': '2', '³': '3', '⁴': '4',
	'⁵': '5', '⁶': '6', '⁷': '7', '⁸': '8', '⁹': '9',
}

// superscriptSeparators split a superscript citation into multiple labels.
// A contiguous run with no separator is a single multi-digit label.
var superscriptSeparators = map[rune]struct{}{
	'·': {}, '⋅': {}, ',': {}, ' ': {},
}

func isSuperscriptDigit(r rune) bool {
	_, ok := superscriptDigits[r]
	return ok
}

// decodeSuperscripts extracts labels from a run of superscript digits.
// "⁷²" decodes to ["72"]; "⁷·⁸" decodes to ["7","8"]. Returns nil when the
// input contains anything other than superscript digits and separators.
func decodeSuperscripts(s string) []string {
	var labels []string
	var current strings.Builder
	sawDigit := false

	flush := func() {
		if current.Len() > 0 {
			labels = append(labels, current.String())
			current.Reset()
		}
	}

	for _, r := range s {
		if d, ok := superscriptDigits[r]; ok {
			current.WriteRune(d)
			sawDigit = true
			continue
		}
		if _, ok := superscriptSeparators[r]; ok {
			flush()
			continue
		}
		return nil
	}
	flush()

	if !sawDigit {
		return nil
	}
	return dedupLabels(labels)
}

// findSuperscriptRuns scans arbitrary text for superscript digit runs,
// decoding each run (with its separators) in document order.
func findSuperscriptRuns(text string) []string {
	var labels []string
	runes := []rune(text)
	for i := 0; i < len(runes); {
		if !isSuperscriptDigit(runes[i]) {
			i++
			continue
		}
		j := i
		for j < len(runes) {
			r := runes[j]
			if isSuperscriptDigit(r) {
				j++
				continue
			}
			// A separator continues the run only if another superscript
			// digit follows it.
			if _, ok := superscriptSeparators[r]; ok && j+1 < len(runes) && isSuperscriptDigit(runes[j+1]) {
				j++
				continue
			}
			break
		}
		labels = append(labels, decodeSuperscripts(string(runes[i:j]))...)
		i = j
	}
	return dedupLabels(labels)
}
