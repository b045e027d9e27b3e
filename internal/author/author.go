// Package author canonicalizes author name strings so the recognizer and the
// match scorer compare names the same way. It handles Western names in both
// "First Last" and "Last, First" order, CJK names, and collaboration names
// ("BESIII Collaboration", "Particle Data Group").
package author

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldDiacritics decomposes to NFD, drops combining marks, and recomposes,
// so "Müller" and "Muller" normalize to the same string.
var foldDiacritics = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

var (
	collaborationPattern = regexp.MustCompile(`(?i)\b(collaboration|group|team|consortium|experiment)\b`)
	initialPattern       = regexp.MustCompile(`^(?:[A-Z]\.?[-']?)+$`)
	compactStripPattern  = regexp.MustCompile(`[.\s\-]+`)
)

// germanDigraphs maps umlauts and eszett to their ASCII digraph spellings.
// The substitution is a loose transliteration, not a principled one: it will
// equate "Bär" with "Baer" but also any name that legitimately contains the
// digraph.
var germanDigraphs = strings.NewReplacer(
	"ß", "ss",
	"ä", "ae", "Ä", "Ae",
	"ö", "oe", "Ö", "Oe",
	"ü", "ue", "Ü", "Ue",
)

// Normalize strips diacritics and case for loose comparison.
func Normalize(name string) string {
	folded, _, err := transform.String(foldDiacritics, name)
	if err != nil {
		folded = name
	}
	return strings.ToLower(strings.TrimSpace(folded))
}

// Compact normalizes and additionally strips dots, spaces, and hyphens,
// producing an identifier-style form: "J.-P. Blaizot" → "jpblaizot".
func Compact(name string) string {
	return compactStripPattern.ReplaceAllString(Normalize(name), "")
}

// ExtractLastName returns the family-name token used for matching.
//
// Rules, in order: collaboration names yield the organization token;
// CJK names yield the leading one or two ideographs; "Last, First" yields
// the part before the comma; otherwise the last non-initial token of a
// whitespace split; a single-word name is returned whole.
func ExtractLastName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}

	if loc := collaborationPattern.FindStringIndex(name); loc != nil {
		if org := organizationToken(name[:loc[0]]); org != "" {
			return org
		}
		return strings.TrimSpace(name)
	}

	if surname := cjkSurname(name); surname != "" {
		return surname
	}

	if idx := strings.Index(name, ","); idx > 0 {
		return strings.TrimSpace(name[:idx])
	}

	parts := strings.Fields(name)
	if len(parts) == 1 {
		return parts[0]
	}

	// Last token that is not an initial; "M.-T. Li" → "Li",
	// "J. Smith Jr." still prefers "Smith" over the suffix-free scan.
	for i := len(parts) - 1; i >= 0; i-- {
		if !initialPattern.MatchString(parts[i]) {
			return strings.Trim(parts[i], ",")
		}
	}
	return parts[len(parts)-1]
}

// organizationToken picks the token naming the organization, e.g.
// "BESIII Collaboration" → "BESIII", "The LHCb Collaboration" → "LHCb".
func organizationToken(prefix string) string {
	parts := strings.Fields(strings.Trim(prefix, " ,("))
	for i := len(parts) - 1; i >= 0; i-- {
		tok := strings.Trim(parts[i], ",()")
		if strings.EqualFold(tok, "the") || tok == "" {
			continue
		}
		return tok
	}
	return ""
}

// cjkSurname returns the leading one or two ideographs when the name is
// written in a CJK script, else "".
func cjkSurname(name string) string {
	rs := []rune(name)
	if len(rs) == 0 || !isCJK(rs[0]) {
		return ""
	}
	count := 0
	for _, r := range rs {
		if !isCJK(r) {
			break
		}
		count++
	}
	// Two-character surnames are common only in longer names
	// (e.g. 欧阳修: compound surname 欧阳).
	if count >= 4 {
		return string(rs[:2])
	}
	return string(rs[:1])
}

func isCJK(r rune) bool {
	return unicode.In(r, unicode.Han, unicode.Hiragana, unicode.Katakana, unicode.Hangul)
}

// Match reports whether two author name strings refer to the same person.
// It accepts exact equality, equality after diacritic/case folding, and
// equality after the German digraph substitution applied to either side.
func Match(a, b string) bool {
	if a == b {
		return true
	}
	na, nb := Normalize(a), Normalize(b)
	if na == nb {
		return true
	}
	// Try the substitution on either side: "Bär" matches "Baer"
	// whichever input carries the umlaut.
	if Normalize(germanDigraphs.Replace(a)) == nb {
		return true
	}
	if Normalize(germanDigraphs.Replace(b)) == na {
		return true
	}
	return false
}
