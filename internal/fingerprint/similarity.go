package fingerprint

import (
	"fmt"
	"sort"
)

// Layer blend weights for the overall similarity score.
const (
	weightStructural = 0.30
	weightContent    = 0.30
	weightStyle      = 0.10
	weightSemantic   = 0.30
)

// duplicateThreshold is the overall similarity at or above which two
// fingerprints are considered the same document.
const duplicateThreshold = 0.95

// SimilarityScore blends per-layer similarity into a single score and
// classifies the relationship between two fingerprints. Content similarity
// deliberately uses keyword overlap rather than content-hash equality so
// near-identical documents still score continuously.
func (e *Engine) SimilarityScore(fp1, fp2 *Fingerprint) *SimilarityResult {
	res := &SimilarityResult{
		DocumentID1: fp1.DocumentID,
		DocumentID2: fp2.DocumentID,
	}

	if fp1.StructuralHash == fp2.StructuralHash {
		res.StructuralSimilarity = 1.0
		res.MatchingPatterns = append(res.MatchingPatterns, "identical document structure")
	} else {
		res.DivergingPatterns = append(res.DivergingPatterns, "different document structure")
	}

	res.ContentSimilarity = jaccard(fp1.Keywords, fp2.Keywords)
	switch {
	case res.ContentSimilarity > 0.9:
		res.MatchingPatterns = append(res.MatchingPatterns, "nearly identical content vocabulary")
	case res.ContentSimilarity < 0.1:
		res.DivergingPatterns = append(res.DivergingPatterns, "disjoint content vocabulary")
	}

	// Style similarity never reaches zero: a mismatched convention is weak
	// evidence, not proof of unrelated documents.
	if fp1.StyleHash == fp2.StyleHash {
		res.StyleSimilarity = 1.0
		res.MatchingPatterns = append(res.MatchingPatterns, "matching naming and metadata conventions")
	} else {
		res.StyleSimilarity = 0.5
	}

	entitySim := (jaccard(fp1.Entities.FinancialTerms, fp2.Entities.FinancialTerms) +
		jaccard(fp1.Entities.IdentityTerms, fp2.Entities.IdentityTerms)) / 2
	res.SemanticSimilarity = 0.6*res.ContentSimilarity + 0.4*entitySim
	if res.SemanticSimilarity > 0.5 && res.StructuralSimilarity == 0 {
		res.MatchingPatterns = append(res.MatchingPatterns, "shared topic across differing structures")
	}

	res.OverallSimilarity = weightStructural*res.StructuralSimilarity +
		weightContent*res.ContentSimilarity +
		weightStyle*res.StyleSimilarity +
		weightSemantic*res.SemanticSimilarity

	// Same skeleton, materially changed values, same topic: the mark of a
	// derived document (template reuse, altered copy).
	res.IsDerivative = res.StructuralSimilarity == 1.0 &&
		res.ContentSimilarity < 0.8 &&
		res.SemanticSimilarity > 0.5
	res.IsDuplicate = res.OverallSimilarity >= duplicateThreshold

	res.Confidence = similarityConfidence(res)
	return res
}

func similarityConfidence(res *SimilarityResult) float64 {
	conf := 0.5
	switch {
	case res.StructuralSimilarity == 1.0:
		conf = 0.9
	case res.OverallSimilarity > 0.5:
		conf = 0.7
	}
	// Extreme content similarity in either direction is itself a strong
	// signal.
	if res.ContentSimilarity > 0.9 || res.ContentSimilarity < 0.1 {
		conf += 0.1
	}
	if conf > 1.0 {
		conf = 1.0
	}
	return conf
}

// FindSimilarDocuments scores the target against every candidate and
// returns those at or above the threshold, sorted by descending overall
// similarity. The target's own document ID is always excluded. The scan is
// linear over the candidate set.
func (e *Engine) FindSimilarDocuments(target *Fingerprint, candidates []*Fingerprint, threshold float64) []*SimilarityResult {
	var results []*SimilarityResult
	for _, cand := range candidates {
		if cand.DocumentID == target.DocumentID {
			continue
		}
		res := e.SimilarityScore(target, cand)
		if res.OverallSimilarity >= threshold {
			results = append(results, res)
		}
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].OverallSimilarity > results[j].OverallSimilarity
	})
	return results
}

// DetectPartialTampering classifies how a document drifted between two
// fingerprints of "the same" document. Layers are checked in fixed
// priority order (structural, content, style) and only the first differing
// layer is reported; co-occurring lower-priority changes are masked by
// this single pass.
func (e *Engine) DetectPartialTampering(original, current *Fingerprint) *TamperReport {
	report := &TamperReport{
		OriginalID: original.DocumentID,
		CurrentID:  current.DocumentID,
		Category:   TamperNone,
		CheckedAt:  e.now().UTC(),
	}

	switch {
	case original.StructuralHash != current.StructuralHash:
		report.Tampered = true
		report.Category = TamperStructural
		report.Confidence = 0.95
		report.Description = "document structure was altered: fields were added, removed, or retyped"
	case original.ContentHash != current.ContentHash:
		report.Tampered = true
		if original.SemanticHash != current.SemanticHash {
			report.Category = TamperContent
			report.Confidence = 0.9
			report.Description = "field values changed and the document's dominant vocabulary shifted"
		} else {
			report.Category = TamperContentSameTopic
			report.Confidence = 0.6
			report.Description = "field values changed while the document's meaning appears preserved"
		}
	case original.StyleHash != current.StyleHash:
		report.Tampered = true
		report.Category = TamperStyle
		report.Confidence = 0.4
		report.Description = "formatting conventions changed without content changes"
	default:
		report.Description = fmt.Sprintf("no layer differences between %s and %s", original.DocumentID, current.DocumentID)
	}
	return report
}
