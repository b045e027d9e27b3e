package recognize

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/fkguo/inspirecite/internal/author"
)

// AuthorYearMatch is one distinct work extracted from author-year styled
// text. Authors keep their initials so that same-surname, different-initial
// authors ("M.-T. Li" vs "G. Li") stay distinct during deduplication.
type AuthorYearMatch struct {
	Text    string   `json:"text"`
	Authors []string `json:"authors"`
	Year    string   `json:"year"`
	Label   string   `json:"label"` // "lastname year" lookup key
}

const (
	// nameAtom matches one author name with optional leading initials and an
	// optional second capitalized word for compound surnames ("Hiller Blin").
	nameAtom = `(?:(?:\p{Lu}\.[-\s]?)*\p{Lu}[\p{L}'’\-]+(?:\s\p{Lu}[\p{L}'’\-]+)?)`
	yearAtom = `(?:1[89]\d{2}|20\d{2})[a-z]?`
	yearList = yearAtom + `(?:\s*,\s*` + yearAtom + `)*`
)

var (
	etAlParenPattern    = regexp.MustCompile(`(` + nameAtom + `)\s+et\s+al\.?,?\s*\((` + yearList + `)\)`)
	etAlNoParenPattern  = regexp.MustCompile(`(` + nameAtom + `)\s+et\s+al\.?,?\s*(` + yearList + `)\)`)
	threeAuthorPattern  = regexp.MustCompile(`(` + nameAtom + `)\s*,\s*(` + nameAtom + `)\s*,?\s+and\s+(` + nameAtom + `)\s*\((` + yearList + `)\)`)
	twoAuthorParen      = regexp.MustCompile(`(` + nameAtom + `)\s+and\s+(` + nameAtom + `)\s*\((` + yearList + `)\)`)
	twoAuthorComma      = regexp.MustCompile(`(` + nameAtom + `)\s+and\s+(` + nameAtom + `)\s*,\s*(` + yearAtom + `)`)
	singleAuthorParen   = regexp.MustCompile(`(` + nameAtom + `)\s*\((` + yearList + `)\)`)
	bareAuthorYearPair  = regexp.MustCompile(`(` + nameAtom + `(?:\s+et\s+al\.?)?(?:,?\s+and\s+` + nameAtom + `)?),?\s+(` + yearAtom + `)`)
	parenthesizedGroups = regexp.MustCompile(`\(([^()]*(?:1[89]|20)\d{2}[^()]*)\)`)
	yearTokenPattern    = regexp.MustCompile(yearAtom)
)

// structuralNouns are capitalized words that precede numbers or years without
// being author names.
var structuralNouns = map[string]struct{}{
	"figure": {}, "fig": {}, "figs": {}, "table": {}, "tab": {},
	"equation": {}, "eq": {}, "eqs": {}, "section": {}, "sec": {},
	"chapter": {}, "appendix": {}, "ref": {}, "refs": {}, "reference": {},
	"references": {}, "page": {}, "vol": {}, "volume": {}, "no": {},
	"see": {}, "in": {}, "the": {}, "since": {}, "from": {}, "until": {},
	"during": {}, "before": {}, "after": {}, "year": {}, "run": {},
}

// structuralContext matches a reference to a document element immediately
// before a candidate author match ("Section 2 (2010)" is not a citation).
// Go regexps have no lookbehind, so preceding text is checked explicitly.
var structuralContext = regexp.MustCompile(`(?i)(?:section|figure|table|equation|ref|refs|eq|fig|tab)\.?\s*$`)

// aySite is one location in the text where a sub-pattern matched: an author
// group plus one or more years. Sites from higher-priority patterns suppress
// overlapping sites from lower-priority ones.
type aySite struct {
	start, end int
	text       string
	authors    []string
	years      []string
}

// ExtractAuthorYear extracts author-year citations from arbitrary text.
// It handles parenthesized groups with semicolon-separated sub-citations,
// "et al." forms with and without the opening parenthesis, two- and
// three-author lists, bare "Author, YYYY" pairs, and single-author
// parentheticals guarded against structural false positives. One match is
// produced per distinct (author group, year) pair, in document order.
func ExtractAuthorYear(text string) []AuthorYearMatch {
	var sites []aySite
	sites = appendSites(sites, parenGroupSites(text))
	sites = appendSites(sites, patternSites(text, etAlParenPattern, 1, 0, 0, 2))
	sites = appendSites(sites, patternSites(text, etAlNoParenPattern, 1, 0, 0, 2))
	sites = appendSites(sites, patternSites(text, threeAuthorPattern, 1, 2, 3, 4))
	sites = appendSites(sites, patternSites(text, twoAuthorParen, 1, 2, 0, 3))
	sites = appendSites(sites, patternSites(text, twoAuthorComma, 1, 2, 0, 3))
	sites = appendSites(sites, singleAuthorSites(text))
	sites = appendSites(sites, semicolonSites(text))

	sort.SliceStable(sites, func(i, j int) bool { return sites[i].start < sites[j].start })

	var matches []AuthorYearMatch
	for _, s := range sites {
		for _, year := range s.years {
			matches = append(matches, AuthorYearMatch{
				Text:    strings.TrimSpace(s.text),
				Authors: s.authors,
				Year:    year,
				Label:   AuthorYearKey(s.authors[0], year),
			})
		}
	}
	matches = dedupAuthorYear(matches)
	return suppressPartialSurnames(matches)
}

// appendSites adds candidate sites that do not overlap an already-accepted
// (higher priority) site.
func appendSites(accepted, candidates []aySite) []aySite {
	for _, c := range candidates {
		overlaps := false
		for _, a := range accepted {
			if c.start < a.end && a.start < c.end {
				overlaps = true
				break
			}
		}
		if !overlaps {
			accepted = append(accepted, c)
		}
	}
	return accepted
}

// patternSites runs one sub-grammar pattern. a1..a3 are submatch indexes of
// up to three author names (0 = unused); yi is the year-list submatch.
func patternSites(text string, re *regexp.Regexp, a1, a2, a3, yi int) []aySite {
	var out []aySite
	for _, loc := range re.FindAllStringSubmatchIndex(text, -1) {
		var authors []string
		for _, idx := range []int{a1, a2, a3} {
			if idx > 0 && loc[2*idx] >= 0 {
				authors = append(authors, strings.TrimSpace(text[loc[2*idx]:loc[2*idx+1]]))
			}
		}
		if len(authors) == 0 || isStructuralName(authors[0]) {
			continue
		}
		out = append(out, aySite{
			start:   loc[0],
			end:     loc[1],
			text:    text[loc[0]:loc[1]],
			authors: authors,
			years:   splitYears(text[loc[2*yi]:loc[2*yi+1]]),
		})
	}
	return out
}

// singleAuthorSites handles "Author (YYYY)", rejecting structural nouns and
// matches preceded by a document-element word.
func singleAuthorSites(text string) []aySite {
	var out []aySite
	for _, loc := range singleAuthorParen.FindAllStringSubmatchIndex(text, -1) {
		name := strings.TrimSpace(text[loc[2]:loc[3]])
		if isStructuralName(name) || structuralContext.MatchString(text[:loc[0]]) {
			continue
		}
		out = append(out, aySite{
			start:   loc[0],
			end:     loc[1],
			text:    text[loc[0]:loc[1]],
			authors: []string{name},
			years:   splitYears(text[loc[4]:loc[5]]),
		})
	}
	return out
}

// parenGroupSites handles "(Smith et al. 2009, 2010; Jones 2011)": each
// semicolon-separated piece contributes one author group with its years.
func parenGroupSites(text string) []aySite {
	var out []aySite
	for _, loc := range parenthesizedGroups.FindAllStringSubmatchIndex(text, -1) {
		content := text[loc[2]:loc[3]]
		pos := loc[2]
		for _, piece := range strings.Split(content, ";") {
			pieceStart := pos
			pos += len(piece) + 1

			trimmed := strings.TrimSpace(piece)
			years := yearTokenPattern.FindAllString(trimmed, -1)
			if len(years) == 0 {
				continue
			}
			yearStart := yearTokenPattern.FindStringIndex(trimmed)[0]
			authors := parseAuthorGroup(trimmed[:yearStart])
			if len(authors) == 0 || isStructuralName(authors[0]) {
				continue
			}
			out = append(out, aySite{
				start:   pieceStart,
				end:     pieceStart + len(piece),
				text:    trimmed,
				authors: authors,
				years:   years,
			})
		}
	}
	return out
}

// semicolonSites handles citation runs without enclosing parentheses:
// "Smith 2009; Jones and Wu 2011".
func semicolonSites(text string) []aySite {
	if !strings.Contains(text, ";") {
		return nil
	}
	var out []aySite
	pos := 0
	for _, piece := range strings.Split(text, ";") {
		pieceStart := pos
		pos += len(piece) + 1

		if strings.ContainsAny(piece, "()") {
			continue // parenthesized pieces belong to the group patterns
		}
		loc := bareAuthorYearPair.FindStringSubmatchIndex(piece)
		if loc == nil {
			continue
		}
		authors := parseAuthorGroup(piece[loc[2]:loc[3]])
		if len(authors) == 0 || isStructuralName(authors[0]) {
			continue
		}
		out = append(out, aySite{
			start:   pieceStart + loc[0],
			end:     pieceStart + loc[1],
			text:    strings.TrimSpace(piece),
			authors: authors,
			years:   []string{piece[loc[4]:loc[5]]},
		})
	}
	return out
}

// parseAuthorGroup splits "A, B, and C" or "A and B" or "A et al." into
// individual author names.
func parseAuthorGroup(s string) []string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, ",")
	if s == "" {
		return nil
	}
	if idx := strings.Index(s, " et al"); idx > 0 {
		s = s[:idx]
	}
	s = strings.ReplaceAll(s, " and ", ", ")
	var authors []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" || !startsUpper(part) {
			continue // "e.g.," and similar connectives are not names
		}
		authors = append(authors, part)
	}
	return authors
}

func startsUpper(s string) bool {
	for _, r := range s {
		return unicode.IsUpper(r)
	}
	return false
}

// AuthorYearKey builds the "lastname year" key used to join recognizer
// output with the document parser's author-year index.
func AuthorYearKey(name, year string) string {
	return strings.ToLower(author.ExtractLastName(name)) + " " + year
}

func splitYears(s string) []string {
	var years []string
	for _, y := range strings.Split(s, ",") {
		y = strings.TrimSpace(y)
		if y != "" {
			years = append(years, y)
		}
	}
	return years
}

func isStructuralName(name string) bool {
	_, ok := structuralNouns[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

// dedupAuthorYear removes repeated (author group, year) pairs while keeping
// first-seen order. Initials participate in the key, so "M.-T. Li (2016)"
// and "G. Li (2016)" survive as distinct matches.
func dedupAuthorYear(matches []AuthorYearMatch) []AuthorYearMatch {
	seen := make(map[string]struct{}, len(matches))
	out := matches[:0]
	for _, m := range matches {
		key := strings.Join(m.Authors, "|") + "|" + m.Year
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, m)
	}
	return out
}

// suppressPartialSurnames drops a match whose sole author is the trailing
// word of another match's compound surname in the same year, so
// "Blin (2016)" is dropped when "Hiller Blin (2016)" is also present.
func suppressPartialSurnames(matches []AuthorYearMatch) []AuthorYearMatch {
	out := matches[:0]
	for _, m := range matches {
		partial := false
		for _, other := range matches {
			if other.Year != m.Year || len(m.Authors) == 0 || len(other.Authors) == 0 {
				continue
			}
			a, b := m.Authors[0], other.Authors[0]
			if a != b && strings.HasSuffix(b, " "+a) {
				partial = true
				break
			}
		}
		if !partial {
			out = append(out, m)
		}
	}
	return out
}
