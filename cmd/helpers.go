package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ziadkadry99/doc-forensics/internal/config"
	"github.com/ziadkadry99/doc-forensics/internal/docval"
	"github.com/ziadkadry99/doc-forensics/internal/fingerprint"
	"github.com/ziadkadry99/doc-forensics/internal/forensic"
)

// loadConfig reads and validates the configuration for the current run.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// loadDocument reads a JSON file and decodes it into the value model,
// applying the configured size guards.
func loadDocument(path string, cfg *config.Config) (docval.Value, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return docval.Value{}, fmt.Errorf("reading %s: %w", path, err)
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return docval.Value{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	value, err := docval.Decode(doc, limitsFromConfig(cfg))
	if err != nil {
		return docval.Value{}, fmt.Errorf("decoding %s: %w", path, err)
	}
	return value, nil
}

func limitsFromConfig(cfg *config.Config) docval.Limits {
	return docval.Limits{MaxDepth: cfg.MaxDepth, MaxFields: cfg.MaxFields}
}

// newEngine builds a fingerprint engine from the configuration.
func newEngine(cfg *config.Config) *fingerprint.Engine {
	return fingerprint.NewEngine(fingerprint.Options{
		CacheSize:      cfg.CacheSize,
		Stopwords:      cfg.Stopwords,
		FinancialTerms: cfg.FinancialTerms,
		IdentityTerms:  cfg.IdentityTerms,
	})
}

// newComparator builds a forensic comparator from the configuration.
func newComparator(cfg *config.Config) (*forensic.Comparator, error) {
	return forensic.NewComparator(forensic.Options{Rules: cfg.Rules})
}

// writeJSON prints v as indented JSON to stdout, or to outPath when set.
func writeJSON(v any, outPath string) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	data = append(data, '\n')
	if outPath == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(outPath, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", outPath, err)
	}
	return nil
}
