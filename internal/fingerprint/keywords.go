package fingerprint

import (
	"regexp"
	"sort"
	"strings"
)

// maxKeywords bounds how many frequency-ranked tokens a fingerprint keeps.
const maxKeywords = 20

// maxNumbers bounds how many numeric substrings the entity extractor keeps.
const maxNumbers = 10

var (
	wordPattern   = regexp.MustCompile(`[a-z][a-z0-9]*`)
	numberPattern = regexp.MustCompile(`\d+(?:[.,]\d+)*`)
)

// defaultStopwords are tokens too common to distinguish documents. Tokens
// of three characters or fewer are dropped before this list is consulted.
var defaultStopwords = map[string]bool{
	"this": true, "that": true, "with": true, "from": true, "have": true,
	"been": true, "were": true, "will": true, "shall": true, "would": true,
	"could": true, "should": true, "their": true, "there": true, "which": true,
	"about": true, "when": true, "where": true, "other": true, "into": true,
	"than": true, "then": true, "them": true, "these": true, "those": true,
	"over": true, "under": true, "such": true, "only": true, "also": true,
}

// DefaultFinancialTerms is the vocabulary used to pull financial entities
// out of the keyword list.
var DefaultFinancialTerms = []string{
	"loan", "amount", "payment", "interest", "principal", "balance",
	"income", "salary", "wage", "credit", "debit", "mortgage", "account",
	"bank", "rate", "fee", "total", "currency", "dollar", "escrow",
	"asset", "liability", "equity", "collateral", "deposit", "refinance",
	"installment", "appraisal",
}

// DefaultIdentityTerms is the vocabulary used to pull identity entities
// out of the keyword list.
var DefaultIdentityTerms = []string{
	"name", "ssn", "social", "security", "passport", "license", "birth",
	"address", "phone", "email", "applicant", "borrower", "cosigner",
	"identity", "national", "taxpayer", "driver", "employer", "residence",
}

// keywordExtractor turns the flattened string content of a document into
// frequency-ranked keywords and grouped entities.
type keywordExtractor struct {
	stopwords map[string]bool
	financial map[string]bool
	identity  map[string]bool
}

func newKeywordExtractor(stopwords, financial, identity []string) *keywordExtractor {
	ex := &keywordExtractor{
		stopwords: defaultStopwords,
		financial: toSet(DefaultFinancialTerms),
		identity:  toSet(DefaultIdentityTerms),
	}
	if len(stopwords) > 0 {
		ex.stopwords = toSet(stopwords)
	}
	if len(financial) > 0 {
		ex.financial = toSet(financial)
	}
	if len(identity) > 0 {
		ex.identity = toSet(identity)
	}
	return ex
}

func toSet(terms []string) map[string]bool {
	set := make(map[string]bool, len(terms))
	for _, t := range terms {
		set[strings.ToLower(t)] = true
	}
	return set
}

// keywords tokenizes the flattened text, drops stopwords and short tokens,
// and returns the top tokens ranked by frequency. Ties break
// alphabetically so the ranking is deterministic.
func (ex *keywordExtractor) keywords(text string) []string {
	counts := make(map[string]int)
	for _, tok := range wordPattern.FindAllString(strings.ToLower(text), -1) {
		if len(tok) <= 3 || ex.stopwords[tok] {
			continue
		}
		counts[tok]++
	}
	ranked := make([]string, 0, len(counts))
	for tok := range counts {
		ranked = append(ranked, tok)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if counts[ranked[i]] != counts[ranked[j]] {
			return counts[ranked[i]] > counts[ranked[j]]
		}
		return ranked[i] < ranked[j]
	})
	if len(ranked) > maxKeywords {
		ranked = ranked[:maxKeywords]
	}
	return ranked
}

// entities groups the keywords matching each vocabulary and extracts
// numeric substrings directly from the text, independent of the keyword
// ranking.
func (ex *keywordExtractor) entities(keywords []string, text string) Entities {
	var ents Entities
	for _, kw := range keywords {
		if ex.financial[kw] {
			ents.FinancialTerms = append(ents.FinancialTerms, kw)
		}
		if ex.identity[kw] {
			ents.IdentityTerms = append(ents.IdentityTerms, kw)
		}
	}
	seen := make(map[string]bool)
	for _, num := range numberPattern.FindAllString(text, -1) {
		if seen[num] {
			continue
		}
		seen[num] = true
		ents.Numbers = append(ents.Numbers, num)
		if len(ents.Numbers) >= maxNumbers {
			break
		}
	}
	return ents
}

// jaccard computes set similarity. Two empty sets are identical, not
// dissimilar; self-comparison must score 1.0.
func jaccard(a, b []string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1.0
	}
	setA := toSet(a)
	setB := toSet(b)
	inter := 0
	for t := range setA {
		if setB[t] {
			inter++
		}
	}
	union := len(setA) + len(setB) - inter
	if union == 0 {
		return 1.0
	}
	return float64(inter) / float64(union)
}
