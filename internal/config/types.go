package config

import "github.com/ziadkadry99/doc-forensics/internal/forensic"

// Config is the top-level doc-forensics configuration, corresponding to
// .docforensics.yml.
type Config struct {
	// SimilarityThreshold is the minimum overall similarity for a corpus
	// match to be reported.
	SimilarityThreshold float64 `yaml:"similarity_threshold" koanf:"similarity_threshold"`
	// CacheSize caps the in-process fingerprint cache.
	CacheSize int `yaml:"cache_size" koanf:"cache_size"`
	// MaxDepth and MaxFields guard against pathologically deep or large
	// documents. Zero disables the respective guard.
	MaxDepth  int `yaml:"max_depth" koanf:"max_depth"`
	MaxFields int `yaml:"max_fields" koanf:"max_fields"`
	// Rules overrides the built-in classification table when non-empty.
	Rules []forensic.Rule `yaml:"rules" koanf:"rules"`
	// Vocabulary overrides for the semantic layer.
	Stopwords      []string `yaml:"stopwords" koanf:"stopwords"`
	FinancialTerms []string `yaml:"financial_terms" koanf:"financial_terms"`
	IdentityTerms  []string `yaml:"identity_terms" koanf:"identity_terms"`
	// Corpus file selection for the similar command.
	Include []string `yaml:"include" koanf:"include"`
	Exclude []string `yaml:"exclude" koanf:"exclude"`
}
