// Package reference defines the core domain types shared by the citation
// recognizer, the document reference-list parser, and the resolver.
package reference

// LabelFormat classifies the surface form of a recognized citation.
type LabelFormat string

const (
	FormatNumeric    LabelFormat = "numeric"
	FormatAuthorYear LabelFormat = "author-year"
	FormatArxiv      LabelFormat = "arxiv"
	FormatMixed      LabelFormat = "mixed"
	FormatUnknown    LabelFormat = "unknown"
)

// ParsedCitation is the output of the citation marker recognizer for one
// piece of selected text. Labels preserve insertion order with duplicates
// removed. When a single selection spans several distinct works, each work
// appears as its own SubCitation.
type ParsedCitation struct {
	Raw    string        `json:"raw"`
	Format LabelFormat   `json:"format"`
	Labels []string      `json:"labels"`
	Subs   []SubCitation `json:"subs,omitempty"`
}

// SubCitation is one distinct work inside a multi-work selection,
// e.g. "A et al. (2009, 2010)" yields two sub-citations.
type SubCitation struct {
	Text   string   `json:"text"`
	Labels []string `json:"labels"`
}

// DocEntry is one bibliographic entry reconstructed from the document's own
// reference list. A single label may own several DocEntry values when the
// document bundles multiple papers under one marker.
type DocEntry struct {
	Label       string   `json:"label"`
	Raw         string   `json:"raw"`
	FirstAuthor string   `json:"first_author,omitempty"`
	CoAuthors   []string `json:"co_authors,omitempty"` // order preserved for disambiguation
	Year        string   `json:"year,omitempty"`       // may carry a letter suffix, e.g. "2011a"
	PageStart   string   `json:"page_start,omitempty"`
	ArxivID     string   `json:"arxiv_id,omitempty"`
	DOI         string   `json:"doi,omitempty"`
	Journal     string   `json:"journal,omitempty"`
	Volume      string   `json:"volume,omitempty"`
	Issue       string   `json:"issue,omitempty"`
	Erratum     bool     `json:"erratum,omitempty"`
}

// Author is one parsed author name.
type Author struct {
	First string `json:"first,omitempty"` // given name(s) or initials
	Last  string `json:"last"`            // family name
}

// CanonicalEntry is an externally supplied, already-resolved bibliographic
// record. The resolver reads it and never mutates it. Label carries the
// canonical source's own numbering, which may be missing or misaligned with
// the document's.
type CanonicalEntry struct {
	ID         string   `json:"id"`
	Label      string   `json:"label,omitempty"`
	Authors    []Author `json:"authors,omitempty"`
	AuthorText string   `json:"author_text,omitempty"` // fallback when Authors is unparsed
	Year       string   `json:"year,omitempty"`
	ArxivID    string   `json:"arxiv_id,omitempty"`
	DOI        string   `json:"doi,omitempty"`
	Journal    string   `json:"journal,omitempty"`
	Volume     string   `json:"volume,omitempty"`
	Page       string   `json:"page,omitempty"` // page or article id
}

// Confidence grades how trustworthy a resolution or parse is.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// Method names the resolution strategy that produced a MatchResult.
type Method string

const (
	MethodExact          Method = "exact"
	MethodInferred       Method = "inferred"
	MethodFuzzy          Method = "fuzzy"
	MethodStrictFallback Method = "strict-fallback"
	MethodLabel          Method = "label"
	MethodIndex          Method = "index"
	MethodOverlay        Method = "overlay"
)

// MatchResult is one resolved citation label.
type MatchResult struct {
	Label      string     `json:"label"`
	Index      int        `json:"index"` // 0-based index into the canonical list
	Confidence Confidence `json:"confidence"`
	Method     Method     `json:"method"`

	// Identifier evidence, when the match was made on an identifier.
	MatchedIDType  string `json:"matched_id_type,omitempty"` // "arxiv" or "doi"
	MatchedIDValue string `json:"matched_id_value,omitempty"`

	// Set when the document and the canonical list appear to enumerate
	// different versions of the reference set.
	VersionMismatchWarning string `json:"version_mismatch_warning,omitempty"`

	Score float64 `json:"score,omitempty"`

	// Set when several canonical entries tie; the caller decides.
	IsAmbiguous         bool  `json:"is_ambiguous,omitempty"`
	AmbiguousCandidates []int `json:"ambiguous_candidates,omitempty"`
}
