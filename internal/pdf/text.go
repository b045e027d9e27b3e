// Package pdf is the full-document text source: it extracts the raw text
// the reference-list parser consumes, with form-feed page delimiters so the
// parser can prefer page-break chunking.
package pdf

import (
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
)

// PageDelimiter separates pages in extracted text.
const PageDelimiter = "\f"

// doiPattern: 10.XXXX/... with 4+ registrant digits.
var doiPattern = regexp.MustCompile(`10\.\d{4,9}/[^\s<>"{}|\\^~\[\]` + "`" + `]+`)

var arxivPattern = regexp.MustCompile(`(?i)arxiv:\s*(\d{4}\.\d{4,5}|[a-z-]+(?:\.[A-Z]{2})?/\d{7})`)

// ExtractText extracts the text of every page, joined by PageDelimiter.
// Pages that fail to decode are skipped; a document with no extractable
// text yields an empty string, not an error.
func ExtractText(filePath string) (string, error) {
	f, r, err := pdf.Open(filePath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var builder strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		if i > 1 {
			builder.WriteString(PageDelimiter)
		}
		builder.WriteString(text)
	}
	return builder.String(), nil
}

// ExtractDOI finds the document's own DOI on the first few pages, used to
// identify the document to the bibliographic service.
func ExtractDOI(filePath string) (string, error) {
	text, err := extractHead(filePath, 3)
	if err != nil {
		return "", err
	}
	for _, match := range doiPattern.FindAllString(text, -1) {
		match = strings.TrimRight(match, ".,;:)")
		if isValidDOI(match) {
			return match, nil
		}
	}
	return "", nil // no DOI found (not an error)
}

// ExtractArxivID finds the document's own arXiv id on the first few pages.
func ExtractArxivID(filePath string) (string, error) {
	text, err := extractHead(filePath, 2)
	if err != nil {
		return "", err
	}
	if m := arxivPattern.FindStringSubmatch(text); m != nil {
		return m[1], nil
	}
	return "", nil
}

func extractHead(filePath string, maxPages int) (string, error) {
	f, r, err := pdf.Open(filePath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if r.NumPage() < maxPages {
		maxPages = r.NumPage()
	}

	var builder strings.Builder
	for i := 1; i <= maxPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		builder.WriteString(text)
		builder.WriteString("\n")
	}
	return builder.String(), nil
}

func isValidDOI(doi string) bool {
	if len(doi) < 10 || !strings.HasPrefix(doi, "10.") {
		return false
	}
	slashIdx := strings.Index(doi, "/")
	return slashIdx != -1 && slashIdx < len(doi)-1
}
