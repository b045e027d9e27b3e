package recognize

import (
	"strconv"
	"strings"
)

// Maximum span accepted when repairing a concatenated range. "6264" can be
// [62..64]; "1299" cannot be [1..299].
const maxRepairedRangeSpan = 50

// heuristicRangeCeiling bounds the end label when no maximum known label is
// available.
const heuristicRangeCeiling = 100

var rangeSeparators = []string{"–", "—", "−", "-"}

// expandNumericList expands bracket content like "25,26,38–41" into
// individual labels, in order.
func expandNumericList(content string) []string {
	var labels []string
	for _, part := range strings.FieldsFunc(content, func(r rune) bool {
		return r == ',' || r == ';'
	}) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if lo, hi, ok := splitRange(part); ok {
			labels = append(labels, expandRange(lo, hi)...)
			continue
		}
		if isDigits(part) {
			labels = append(labels, part)
		}
	}
	return dedupLabels(labels)
}

// splitRange parses "38–41" (any dash variant) into its endpoints.
func splitRange(s string) (lo, hi int, ok bool) {
	for _, sep := range rangeSeparators {
		idx := strings.Index(s, sep)
		if idx <= 0 {
			continue
		}
		a := strings.TrimSpace(s[:idx])
		b := strings.TrimSpace(s[idx+len(sep):])
		if !isDigits(a) || !isDigits(b) {
			continue
		}
		lo, _ = strconv.Atoi(a)
		hi, _ = strconv.Atoi(b)
		if lo > 0 && hi >= lo {
			return lo, hi, true
		}
	}
	return 0, 0, false
}

func expandRange(lo, hi int) []string {
	if hi-lo > maxRepairedRangeSpan {
		// Implausible span; keep the endpoints only.
		return []string{strconv.Itoa(lo), strconv.Itoa(hi)}
	}
	labels := make([]string, 0, hi-lo+1)
	for n := lo; n <= hi; n++ {
		labels = append(labels, strconv.Itoa(n))
	}
	return labels
}

// dedupLabels removes duplicates while preserving insertion order.
func dedupLabels(labels []string) []string {
	seen := make(map[string]struct{}, len(labels))
	out := labels[:0]
	for _, l := range labels {
		if _, ok := seen[l]; ok {
			continue
		}
		seen[l] = struct{}{}
		out = append(out, l)
	}
	return out
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// PostProcessLabels repairs concatenated ranges. PDF text extraction often
// drops the dash from "[62-64]", leaving the single label "6264". A digit
// string of length >= 3 is tried at every split point; the first split with
// start < end, a span of at most maxRepairedRangeSpan, and an end that does
// not exceed maxKnownLabel is expanded in place.
//
// With maxKnownLabel == 0 a conservative heuristic applies instead: only
// 4-digit strings whose halves are each below 100 are considered, bounded by
// heuristicRangeCeiling. Strings shorter than 3 digits are never touched, so
// "15" stays "15".
func PostProcessLabels(labels []string, maxKnownLabel int) []string {
	var out []string
	for _, label := range labels {
		if expanded := repairConcatenatedRange(label, maxKnownLabel); expanded != nil {
			out = append(out, expanded...)
			continue
		}
		out = append(out, label)
	}
	return dedupLabels(out)
}

func repairConcatenatedRange(label string, maxKnownLabel int) []string {
	if len(label) < 3 || !isDigits(label) {
		return nil
	}
	if n, err := strconv.Atoi(label); err == nil && maxKnownLabel > 0 && n <= maxKnownLabel {
		// Already a plausible label on its own.
		return nil
	}
	if maxKnownLabel == 0 && len(label) != 4 {
		return nil
	}

	ceiling := maxKnownLabel
	if ceiling == 0 {
		ceiling = heuristicRangeCeiling
	}

	for i := 1; i < len(label); i++ {
		if label[0] == '0' || label[i] == '0' {
			// A half with a leading zero is not a plausible label
			// ("2015" must not become [2..15] via "2"/"015").
			continue
		}
		start, err1 := strconv.Atoi(label[:i])
		end, err2 := strconv.Atoi(label[i:])
		if err1 != nil || err2 != nil {
			continue
		}
		if maxKnownLabel == 0 && (start >= 100 || end >= 100) {
			continue
		}
		if start >= end || end-start > maxRepairedRangeSpan || end > ceiling {
			continue
		}
		return expandRange(start, end)
	}
	return nil
}
