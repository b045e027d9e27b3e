package refparse

import (
	"regexp"
	"strings"

	"github.com/fkguo/inspirecite/internal/author"
	"github.com/fkguo/inspirecite/internal/reference"
)

var (
	// ", 2016, Phys. Rev. D 93, 074509." — the year-then-journal boundary
	// that closes one alphabetical bibliography entry. The journal text runs
	// to the period ending the line; abbreviation periods inside it are fine.
	ayEntryBoundary = regexp.MustCompile(`,\s*((?:1[89]|20)\d{2}[a-z]?)\s*,\s*([^\n]{3,100}\.)\s*(?:\n|$)`)

	// Start of an alphabetical entry: optional numbering, then
	// "LastName, I." (or "LastName, Firstname").
	ayEntryStart = regexp.MustCompile(`(?:\d{1,3}\.\s+)?\p{Lu}[\p{L}'’-]+,\s*\p{Lu}`)

	// Running page headers that a backward walk must skip over.
	pageHeaderLine = regexp.MustCompile(`^\s*(?:\d{1,4}|\p{Lu}[\p{Lu}\s.]{2,40})\s*$`)
)

// ParseAuthorYear parses an alphabetically ordered bibliography. Entries are
// keyed by "lowercased(firstAuthor) year"; a diacritic-stripped alias of
// each key supports bidirectional lookup from either spelling.
func ParseAuthorYear(fullText string) *Result {
	section := locateAuthorYearSection(fullText)

	res := &Result{
		Entries:    make(map[string][]reference.DocEntry),
		Aliases:    make(map[string]string),
		AuthorYear: true,
	}
	if section == "" {
		res.Confidence = reference.ConfidenceLow
		return res
	}

	prevEnd := 0
	for _, m := range ayEntryBoundary.FindAllStringSubmatchIndex(section, -1) {
		year := section[m[2]:m[3]]
		journal := strings.TrimSuffix(strings.TrimSpace(section[m[4]:m[5]]), ".")

		start := entryStartBefore(section, m[0], prevEnd)
		raw := strings.TrimSpace(section[start:m[1]])
		prevEnd = m[1]

		first, coAuthors := authorYearEntryAuthors(raw)
		if first == "" {
			continue
		}

		key := strings.ToLower(first) + " " + year
		entry := reference.DocEntry{
			Label:       key,
			Raw:         raw,
			FirstAuthor: first,
			CoAuthors:   coAuthors,
			Year:        year,
			Journal:     journal,
			DOI:         extractDOI(raw),
			ArxivID:     extractArxiv(raw),
			Erratum:     errataPattern.MatchString(raw),
		}

		if _, seen := res.Entries[key]; !seen {
			res.Order = append(res.Order, key)
		}
		res.Entries[key] = append(res.Entries[key], entry)

		if alias := author.Normalize(first) + " " + year; alias != key {
			res.Aliases[alias] = key
		}
	}

	switch {
	case len(res.Order) >= 10:
		res.Confidence = reference.ConfidenceHigh
	case len(res.Order) >= 3:
		res.Confidence = reference.ConfidenceMedium
	default:
		res.Confidence = reference.ConfidenceLow
	}
	return res
}

// locateAuthorYearSection trims to the references header without the numeric
// label trimming the bracketed path applies.
func locateAuthorYearSection(fullText string) string {
	locs := sectionHeaderPattern.FindAllStringIndex(fullText, -1)
	if len(locs) == 0 {
		return ""
	}
	// The in-text word "references" can occur anywhere; the section header
	// is the last occurrence.
	return fullText[locs[len(locs)-1][0]:]
}

// entryStartBefore walks backward from a boundary to the start of the entry:
// the nearest "LastName, Initial" marker, else the previous newline with
// running page headers skipped.
func entryStartBefore(section string, boundary, floor int) int {
	prefix := section[floor:boundary]

	if locs := ayEntryStart.FindAllStringIndex(prefix, -1); len(locs) > 0 {
		return floor + locs[len(locs)-1][0]
	}

	// Fall back to the previous line break, skipping page-header lines.
	idx := strings.LastIndexByte(prefix, '\n')
	for idx > 0 {
		lineStart := strings.LastIndexByte(prefix[:idx], '\n') + 1
		line := prefix[lineStart:idx]
		if !pageHeaderLine.MatchString(line) {
			break
		}
		idx = lineStart - 1
	}
	if idx < 0 {
		return floor
	}
	return floor + idx + 1
}

// authorYearEntryAuthors extracts the first author's last name and all
// co-author last names from one alphabetical entry.
func authorYearEntryAuthors(raw string) (first string, coAuthors []string) {
	head := raw
	if loc := yearToken.FindStringIndex(raw); loc != nil {
		head = raw[:loc[0]]
	}

	// Alphabetical entries lead with "LastName, I[.,] ...".
	if m := lastInitials.FindStringSubmatch(strings.TrimSpace(head)); m != nil {
		first = m[1]
	} else if m := initialsLast.FindStringSubmatch(head); m != nil {
		first = m[1]
	} else {
		first = author.ExtractLastName(strings.TrimSpace(head))
	}
	if first == "" {
		return "", nil
	}

	for _, m := range initialsLast.FindAllStringSubmatch(head, -1) {
		if m[1] != first {
			coAuthors = append(coAuthors, m[1])
		}
	}
	return first, coAuthors
}
