package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash/fnv"
	"sort"
	"strings"
	"time"

	"github.com/ziadkadry99/doc-forensics/internal/docval"
)

// Options configures an Engine. The zero value selects the defaults.
type Options struct {
	// CacheSize caps the fingerprint cache. Defaults to 1024 entries.
	CacheSize int
	// Cache overrides the default LRU cache entirely.
	Cache Cache
	// Stopwords, FinancialTerms and IdentityTerms override the built-in
	// keyword vocabularies when non-empty.
	Stopwords      []string
	FinancialTerms []string
	IdentityTerms  []string
	// Now supplies fingerprint timestamps; defaults to time.Now.
	Now func() time.Time
}

// Engine computes document fingerprints. The cache is the only shared
// mutable state; everything else is function-local, so one Engine can
// serve concurrent callers.
type Engine struct {
	cache   Cache
	extract *keywordExtractor
	now     func() time.Time
}

// NewEngine builds an Engine from the given options.
func NewEngine(opts Options) *Engine {
	cache := opts.Cache
	if cache == nil {
		size := opts.CacheSize
		if size <= 0 {
			size = 1024
		}
		cache = NewLRUCache(size)
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Engine{
		cache:   cache,
		extract: newKeywordExtractor(opts.Stopwords, opts.FinancialTerms, opts.IdentityTerms),
		now:     now,
	}
}

// Cache exposes the engine's fingerprint cache for eviction control.
func (e *Engine) Cache() Cache { return e.cache }

// Fingerprint computes the four-layer signature of a document. The cache
// key is the document ID, not the content: callers must treat the ID as an
// immutable per-version key, or a stale fingerprint is returned.
func (e *Engine) Fingerprint(doc docval.Value, documentID string) *Fingerprint {
	if cached, ok := e.cache.Get(documentID); ok {
		return cached
	}

	signature := structuralSignature(doc)
	text := flattenText(doc)
	keywords := e.extract.keywords(text)
	entities := e.extract.entities(keywords, text)

	structural := fnvHex(signature)[:8]
	content := sha256Hex(string(docval.Canonical(doc)))
	style := sha256Hex(styleSignature(doc))[:16]
	semantic := sha256Hex(semanticSignature(keywords))[:16]

	fp := &Fingerprint{
		DocumentID:          documentID,
		StructuralHash:      structural,
		ContentHash:         content,
		StyleHash:           style,
		SemanticHash:        semantic,
		CombinedHash:        fnvHex(structural + content + style + semantic),
		FieldCount:          docval.FieldCount(doc),
		NestedDepth:         docval.MaxDepth(doc),
		Keywords:            keywords,
		Entities:            entities,
		StructuralSignature: signature,
		CreatedAt:           e.now().UTC(),
	}
	e.cache.Put(documentID, fp)
	return fp
}

// structuralSignature renders the shape of the tree: sorted keys with the
// type name of each value for maps, the first element's signature for
// lists. Heterogeneous lists beyond index 0 are invisible to this layer.
func structuralSignature(v docval.Value) string {
	switch v.Kind() {
	case docval.KindList:
		items := v.ListValue()
		if len(items) == 0 {
			return "list[]"
		}
		return "list[" + structuralSignature(items[0]) + "]"
	case docval.KindMap:
		fields := v.MapValue()
		parts := make([]string, 0, len(fields))
		for _, k := range v.SortedKeys() {
			parts = append(parts, k+":"+structuralSignature(fields[k]))
		}
		return "map{" + strings.Join(parts, ",") + "}"
	default:
		return v.Kind().TypeName()
	}
}

// styleMetadataKeys are the bookkeeping field names whose presence feeds
// the style layer.
var styleMetadataKeys = []string{
	"created", "updated", "modified", "version", "author", "source",
	"timestamp", "date", "origin", "revision",
}

// styleSignature captures formatting convention rather than content:
// which well-known metadata keys exist anywhere in the tree, and how key
// names are cased. Two unrelated documents sharing a naming convention and
// metadata shape produce the same style hash.
func styleSignature(v docval.Value) string {
	present := make(map[string]bool)
	var snake, camel, pascal int
	docval.WalkKeys(v, func(key string) {
		lower := strings.ToLower(key)
		for _, meta := range styleMetadataKeys {
			if lower == meta {
				present[meta] = true
			}
		}
		switch {
		case strings.Contains(key, "_"):
			snake++
		case key != "" && key[0] >= 'A' && key[0] <= 'Z':
			pascal++
		case key != strings.ToLower(key):
			camel++
		}
	})
	found := make([]string, 0, len(present))
	for k := range present {
		found = append(found, k)
	}
	sort.Strings(found)
	return fmt.Sprintf("meta:%s|snake:%d|camel:%d|pascal:%d",
		strings.Join(found, ","), snake, camel, pascal)
}

// semanticSignature hashes the keyword set rather than the raw text, so
// edits that keep the dominant vocabulary leave the semantic layer
// untouched.
func semanticSignature(keywords []string) string {
	sorted := make([]string, len(keywords))
	copy(sorted, keywords)
	sort.Strings(sorted)
	return strings.Join(sorted, "|")
}

// flattenText concatenates every string leaf in deterministic order.
func flattenText(v docval.Value) string {
	var b strings.Builder
	docval.WalkStrings(v, func(s string) {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(s)
	})
	return b.String()
}

// fnvHex returns the full 16-hex-char FNV-1a digest. Fast and
// non-cryptographic: fingerprint hashes are identifiers, not a security
// property, and collisions are an accepted risk.
func fnvHex(s string) string {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return fmt.Sprintf("%016x", h.Sum64())
}

func sha256Hex(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
