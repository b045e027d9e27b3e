package score

import (
	"regexp"
	"strings"
)

var arxivVersionSuffix = regexp.MustCompile(`v\d+$`)

// NormalizeArxiv normalizes an arXiv id for comparison: URL and "arXiv:"
// prefixes removed, trailing ".pdf" and version suffix stripped, lowercased
// (legacy category names are case-insensitive in practice).
func NormalizeArxiv(id string) string {
	id = strings.TrimSpace(id)
	for _, prefix := range []string{
		"https://arxiv.org/abs/", "http://arxiv.org/abs/",
		"https://arxiv.org/pdf/", "http://arxiv.org/pdf/",
		"arxiv.org/abs/", "arxiv.org/pdf/",
	} {
		if strings.HasPrefix(strings.ToLower(id), prefix) {
			id = id[len(prefix):]
			break
		}
	}
	lower := strings.ToLower(id)
	if strings.HasPrefix(lower, "arxiv:") {
		id = id[len("arxiv:"):]
	}
	id = strings.TrimSuffix(id, ".pdf")
	id = arxivVersionSuffix.ReplaceAllString(id, "")
	return strings.ToLower(strings.TrimSpace(id))
}

// NormalizeDOI normalizes a DOI to a consistent format for comparison:
// common URL and "doi:" prefixes removed, trailing punctuation trimmed,
// lowercased.
func NormalizeDOI(doi string) string {
	doi = strings.TrimSpace(doi)
	for _, prefix := range []string{
		"https://doi.org/", "http://doi.org/", "https://dx.doi.org/",
		"http://dx.doi.org/", "doi.org/", "doi:", "DOI:",
	} {
		if strings.HasPrefix(strings.ToLower(doi), strings.ToLower(prefix)) {
			doi = doi[len(prefix):]
			break
		}
	}
	doi = strings.TrimRight(doi, ".,;:)")
	return strings.ToLower(doi)
}
