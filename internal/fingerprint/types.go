// Package fingerprint computes multi-layer document signatures for
// corpus-wide similarity search, duplicate detection, and coarse tamper
// classification between versions of a document.
package fingerprint

import "time"

// Fingerprint is the immutable four-layer signature of one document
// version. Equal trees always produce equal fingerprints.
type Fingerprint struct {
	DocumentID          string    `json:"document_id"`
	StructuralHash      string    `json:"structural_hash"`
	ContentHash         string    `json:"content_hash"`
	StyleHash           string    `json:"style_hash"`
	SemanticHash        string    `json:"semantic_hash"`
	CombinedHash        string    `json:"combined_hash"`
	FieldCount          int       `json:"field_count"`
	NestedDepth         int       `json:"nested_depth"`
	Keywords            []string  `json:"keywords"`
	Entities            Entities  `json:"entities"`
	StructuralSignature string    `json:"structural_signature"`
	CreatedAt           time.Time `json:"created_at"`
}

// Entities groups the keyword subsets that match the domain vocabularies,
// plus numeric substrings pulled straight from the document text.
type Entities struct {
	FinancialTerms []string `json:"financial_terms"`
	IdentityTerms  []string `json:"identity_terms"`
	Numbers        []string `json:"numbers"`
}

// SimilarityResult compares two fingerprints layer by layer. It is
// caller-owned and never cached.
type SimilarityResult struct {
	DocumentID1          string   `json:"document_id_1"`
	DocumentID2          string   `json:"document_id_2"`
	StructuralSimilarity float64  `json:"structural_similarity"`
	ContentSimilarity    float64  `json:"content_similarity"`
	StyleSimilarity      float64  `json:"style_similarity"`
	SemanticSimilarity   float64  `json:"semantic_similarity"`
	OverallSimilarity    float64  `json:"overall_similarity"`
	MatchingPatterns     []string `json:"matching_patterns"`
	DivergingPatterns    []string `json:"diverging_patterns"`
	IsDerivative         bool     `json:"is_derivative"`
	IsDuplicate          bool     `json:"is_duplicate"`
	Confidence           float64  `json:"confidence"`
}

// TamperCategory names the first fingerprint layer found to differ between
// two versions of a document.
type TamperCategory string

const (
	TamperNone             TamperCategory = "none"
	TamperStructural       TamperCategory = "structural"
	TamperContent          TamperCategory = "content"
	TamperContentSameTopic TamperCategory = "content_meaning_preserved"
	TamperStyle            TamperCategory = "style"
)

// TamperReport is the outcome of comparing an original fingerprint against
// a later fingerprint of the same document. Only the highest-priority
// differing layer is reported; a simultaneous lower-priority change is
// masked by the single-pass check.
type TamperReport struct {
	OriginalID  string         `json:"original_id"`
	CurrentID   string         `json:"current_id"`
	Tampered    bool           `json:"tampered"`
	Category    TamperCategory `json:"category"`
	Confidence  float64        `json:"confidence"`
	Description string         `json:"description"`
	CheckedAt   time.Time      `json:"checked_at"`
}
