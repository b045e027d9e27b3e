package refparse

import (
	"regexp"
	"strings"

	"github.com/fkguo/inspirecite/internal/author"
	"github.com/fkguo/inspirecite/internal/reference"
)

var (
	doiPrefixed = regexp.MustCompile(`(?i)\bdoi:\s*(10\.\d{4,9}/[^\s<>"{}|\\^~\[\]]+)`)
	doiURL      = regexp.MustCompile(`(?i)https?://(?:dx\.)?doi\.org/(10\.\d{4,9}/[^\s<>"{}|\\^~\[\]]+)`)
	doiBare     = regexp.MustCompile(`\b(10\.\d{4,9}/[^\s<>"{}|\\^~\[\]]+)`)

	arxivModern = regexp.MustCompile(`(?i)\barxiv:\s*(\d{4}\.\d{4,5})(?:v\d+)?`)
	arxivBareID = regexp.MustCompile(`\b(\d{4}\.\d{4,5})(?:v\d+)?\b`)
	arxivLegacy = regexp.MustCompile(`\b((?:hep-ph|hep-th|hep-ex|hep-lat|nucl-th|nucl-ex|astro-ph|cond-mat|gr-qc|quant-ph|math-ph|math|physics|nlin|cs)(?:\.[A-Z]{2})?/\d{7})(?:v\d+)?\b`)

	// "Phys. Rev. D 92, 034503": capitalized abbreviated words, volume, page
	// or article id ("L012001", "083C01").
	journalVolPage = regexp.MustCompile(`\b(\p{Lu}[\p{L}.]*(?:\s\p{Lu}[\p{L}.]*)*)\s+(\d{1,4})\s*[,:]\s*([A-Z]?\d{1,7}(?:[A-Z]\d{1,4})?)`)

	parenthetical = regexp.MustCompile(`\([^)]*\)`)

	initialsLast = regexp.MustCompile(`(?:\p{Lu}\.[-\s]?)+\s*(\p{Lu}[\p{L}'’-]+)`)
	lastInitials = regexp.MustCompile(`^(\p{Lu}[\p{L}'’-]+)\s*,\s*\p{Lu}\.`)
	nameEtAl     = regexp.MustCompile(`(\p{Lu}[\p{L}'’-]+)\s+et\s+al`)
	capitalWord  = regexp.MustCompile(`\b(\p{Lu}[\p{L}'’-]{2,})\b`)

	yearToken = regexp.MustCompile(`\b((?:1[89]|20)\d{2})([a-z])?\b`)

	pageBeforeYear = regexp.MustCompile(`\b([A-Z]?\d{1,6})\s*\((?:1[89]|20)\d{2}\)`)
	pageAfterYear  = regexp.MustCompile(`\((?:1[89]|20)\d{2}\)\s*,?\s*([A-Z]?\d{1,6})\b`)
)

// firstAuthorStoplist filters the last-resort capitalized-word scan: words
// that start reference entries without being author names.
var firstAuthorStoplist = map[string]struct{}{
	"the": {}, "see": {}, "ibid": {}, "proc": {}, "proceedings": {},
	"phys": {}, "rev": {}, "lett": {}, "nucl": {}, "eur": {}, "int": {},
	"mod": {}, "jhep": {}, "journal": {}, "ann": {}, "and": {}, "for": {},
	"edited": {}, "in": {}, "talk": {}, "report": {}, "preprint": {},
}

// extractPaper extracts all per-paper metadata from one candidate paper span.
func extractPaper(label, span string) reference.DocEntry {
	entry := reference.DocEntry{
		Label:   label,
		Raw:     span,
		DOI:     extractDOI(span),
		ArxivID: extractArxiv(span),
		Erratum: errataPattern.MatchString(span),
	}

	entry.Journal, entry.Volume, entry.Issue = extractJournal(span)
	entry.Year = extractYear(span)
	entry.PageStart = extractPageStart(span)
	if entry.PageStart == "" {
		// The journal line's page column is the next-best page evidence
		// when no year-adjacent page pattern matched.
		entry.PageStart = entry.Issue
	}
	entry.FirstAuthor, entry.CoAuthors = extractAuthors(span)
	return entry
}

func extractDOI(span string) string {
	for _, re := range []*regexp.Regexp{doiPrefixed, doiURL, doiBare} {
		if m := re.FindStringSubmatch(span); m != nil {
			return strings.TrimRight(m[1], ".,;:)")
		}
	}
	return ""
}

// extractArxiv finds modern and legacy arXiv ids, stripping version
// suffixes. Bare new-style ids are accepted only when an arXiv context word
// appears in the span, to avoid matching stray number pairs.
func extractArxiv(span string) string {
	if m := arxivModern.FindStringSubmatch(span); m != nil {
		return m[1]
	}
	if m := arxivLegacy.FindStringSubmatch(span); m != nil {
		return m[1]
	}
	if strings.Contains(strings.ToLower(span), "arxiv") {
		if m := arxivBareID.FindStringSubmatch(span); m != nil {
			return m[1]
		}
	}
	return ""
}

// extractJournal extracts journal abbreviation, volume, and page-ish token
// from the span with parentheticals stripped (years and erratum markers
// otherwise confuse the volume/page columns).
func extractJournal(span string) (journal, volume, issue string) {
	stripped := parenthetical.ReplaceAllString(span, " ")
	m := journalVolPage.FindStringSubmatch(stripped)
	if m == nil {
		return "", "", ""
	}
	journal = strings.TrimSpace(m[1])
	// An all-initials prefix ("M.-T. Li Phys. Rev.") can leak author tokens
	// into the journal name; trim leading single-letter words with dots.
	journal = trimLeadingInitials(journal)
	return journal, m[2], m[3]
}

func trimLeadingInitials(s string) string {
	parts := strings.Fields(s)
	for len(parts) > 1 && len(strings.TrimSuffix(parts[0], ".")) == 1 {
		parts = parts[1:]
	}
	return strings.Join(parts, " ")
}

// extractYear returns the last 4-digit year token, keeping a letter suffix
// ("2011a") when present.
func extractYear(span string) string {
	ms := yearToken.FindAllStringSubmatch(span, -1)
	if len(ms) == 0 {
		return ""
	}
	last := ms[len(ms)-1]
	return last[1] + last[2]
}

func extractPageStart(span string) string {
	if m := pageBeforeYear.FindStringSubmatch(span); m != nil {
		return m[1]
	}
	if m := pageAfterYear.FindStringSubmatch(span); m != nil {
		return m[1]
	}
	return ""
}

// extractAuthors reconstructs the first author's last name and the co-author
// last names, applying CJK detection, "Initials LastName", "LastName,
// Initials", collaboration names, "Name et al.", then a stoplist-filtered
// capitalized-word scan.
func extractAuthors(span string) (first string, coAuthors []string) {
	head := span
	if loc := yearToken.FindStringIndex(span); loc != nil {
		head = span[:loc[0]]
	}
	head = strings.TrimSpace(head)

	if first = cjkFirstAuthor(head); first != "" {
		return first, nil
	}

	// "Initials LastName" repeats per co-author; collect all in order.
	if ms := initialsLast.FindAllStringSubmatch(head, -1); len(ms) > 0 {
		first = ms[0][1]
		for _, m := range ms[1:] {
			coAuthors = append(coAuthors, m[1])
		}
		return first, coAuthors
	}

	if m := lastInitials.FindStringSubmatch(head); m != nil {
		return m[1], nil
	}

	if name := author.ExtractLastName(head); name != "" && looksLikeCollaboration(head) {
		return name, nil
	}

	if m := nameEtAl.FindStringSubmatch(head); m != nil {
		return m[1], nil
	}

	for _, m := range capitalWord.FindAllStringSubmatch(head, -1) {
		if _, stop := firstAuthorStoplist[strings.ToLower(m[1])]; stop {
			continue
		}
		return m[1], nil
	}
	return "", nil
}

var collaborationWord = regexp.MustCompile(`(?i)\b(collaboration|group|team|consortium|experiment)\b`)

func looksLikeCollaboration(head string) bool {
	return collaborationWord.MatchString(head)
}

func cjkFirstAuthor(head string) string {
	fields := strings.Fields(head)
	if len(fields) == 0 {
		return ""
	}
	for _, r := range fields[0] {
		if isCJKRune(r) {
			return author.ExtractLastName(fields[0])
		}
		break
	}
	return ""
}

func isCJKRune(r rune) bool {
	return (r >= 0x4E00 && r <= 0x9FFF) || // Han
		(r >= 0x3040 && r <= 0x30FF) || // kana
		(r >= 0xAC00 && r <= 0xD7AF) // Hangul
}
