package resolve

import (
	"fmt"
	"hash/fnv"

	"github.com/fkguo/inspirecite/internal/refparse"
	"github.com/fkguo/inspirecite/internal/reference"
	"github.com/fkguo/inspirecite/internal/score"
)

// Cache holds per-document resolvers so alignment reports and label/index
// maps are rebuilt only when a document's inputs change. The cache is an
// explicit value with caller-controlled lifetime; the resolver itself holds
// no process-wide state. Callers using one cache from several goroutines
// must synchronize externally.
type Cache struct {
	resolvers    map[string]*Resolver
	fingerprints map[string]string
}

// NewCache creates an empty resolver cache.
func NewCache() *Cache {
	return &Cache{
		resolvers:    make(map[string]*Resolver),
		fingerprints: make(map[string]string),
	}
}

// Resolver returns the cached resolver for docID, rebuilding it when the
// canonical list or the document mapping changed since the last call.
func (c *Cache) Resolver(docID string, entries []reference.CanonicalEntry, doc *refparse.Result, journals score.JournalLookup, thr Thresholds) *Resolver {
	fp := fingerprint(entries, doc)
	if r, ok := c.resolvers[docID]; ok && c.fingerprints[docID] == fp {
		return r
	}
	r := New(entries, doc, journals, thr)
	c.resolvers[docID] = r
	c.fingerprints[docID] = fp
	return r
}

// Invalidate drops the cached resolver for docID.
func (c *Cache) Invalidate(docID string) {
	delete(c.resolvers, docID)
	delete(c.fingerprints, docID)
}

// fingerprint hashes every entry's id and label so any re-supplied list
// change, including one in the middle, rebuilds the resolver.
func fingerprint(entries []reference.CanonicalEntry, doc *refparse.Result) string {
	h := fnv.New64a()
	for _, e := range entries {
		h.Write([]byte(e.ID))
		h.Write([]byte{0})
		h.Write([]byte(e.Label))
		h.Write([]byte{1})
	}
	docPart := "nil"
	if doc != nil {
		docPart = fmt.Sprintf("%d:%d:%s", len(doc.Order), doc.MaxLabel, doc.Confidence)
	}
	return fmt.Sprintf("%d:%x|%s", len(entries), h.Sum64(), docPart)
}
