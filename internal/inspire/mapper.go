package inspire

import (
	"strconv"
	"strings"

	"github.com/fkguo/inspirecite/internal/reference"
)

// literatureRecord is the subset of the INSPIRE literature payload this
// client consumes.
type literatureRecord struct {
	Metadata struct {
		References []literatureReference `json:"references"`
	} `json:"metadata"`
}

type literatureReference struct {
	Record struct {
		Ref string `json:"$ref"`
	} `json:"record"`
	Reference struct {
		Label       string `json:"label"`
		ArxivEprint string `json:"arxiv_eprint"`
		DOIs        []string `json:"dois"`
		Authors     []struct {
			FullName string `json:"full_name"`
		} `json:"authors"`
		Misc            []string `json:"misc"`
		PublicationInfo struct {
			JournalTitle  string `json:"journal_title"`
			JournalVolume string `json:"journal_volume"`
			PageStart     string `json:"page_start"`
			Artid         string `json:"artid"`
			Year          int    `json:"year"`
		} `json:"publication_info"`
	} `json:"reference"`
}

// mapReferences converts the API payload into canonical entries, preserving
// list order. Entries without any usable metadata are kept (they still
// occupy a position) with only their id and label.
func mapReferences(rec *literatureRecord) []reference.CanonicalEntry {
	entries := make([]reference.CanonicalEntry, 0, len(rec.Metadata.References))
	for i, r := range rec.Metadata.References {
		e := reference.CanonicalEntry{
			ID:      recordID(r.Record.Ref, i),
			Label:   r.Reference.Label,
			ArxivID: r.Reference.ArxivEprint,
			Journal: r.Reference.PublicationInfo.JournalTitle,
			Volume:  r.Reference.PublicationInfo.JournalVolume,
		}
		if len(r.Reference.DOIs) > 0 {
			e.DOI = r.Reference.DOIs[0]
		}
		if y := r.Reference.PublicationInfo.Year; y > 0 {
			e.Year = strconv.Itoa(y)
		}
		if p := r.Reference.PublicationInfo.PageStart; p != "" {
			e.Page = p
		} else {
			e.Page = r.Reference.PublicationInfo.Artid
		}
		for _, a := range r.Reference.Authors {
			e.Authors = append(e.Authors, parseFullName(a.FullName))
		}
		if len(e.Authors) == 0 && len(r.Reference.Misc) > 0 {
			e.AuthorText = strings.Join(r.Reference.Misc, "; ")
		}
		entries = append(entries, e)
	}
	return entries
}

// recordID derives a stable id from the linked record URL, falling back to
// the list position for unlinked references.
func recordID(ref string, idx int) string {
	if ref == "" {
		return "pos:" + strconv.Itoa(idx+1)
	}
	if i := strings.LastIndexByte(ref, '/'); i >= 0 && i+1 < len(ref) {
		return ref[i+1:]
	}
	return ref
}

// parseFullName splits INSPIRE's "Last, First" author strings.
func parseFullName(full string) reference.Author {
	if idx := strings.Index(full, ","); idx > 0 {
		return reference.Author{
			Last:  strings.TrimSpace(full[:idx]),
			First: strings.TrimSpace(full[idx+1:]),
		}
	}
	return reference.Author{Last: strings.TrimSpace(full)}
}

func isArxivID(id string) bool {
	return strings.HasPrefix(strings.ToLower(id), "arxiv:")
}

func trimArxivPrefix(id string) string {
	return id[len("arxiv:"):]
}
