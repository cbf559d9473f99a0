package config

import (
	"fmt"
	"strconv"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to .docforensics.yml.
func RunWizard() (*Config, error) {
	fmt.Println("Welcome to doc-forensics! Let's configure your workspace.")
	fmt.Println()

	cfg := DefaultConfig()

	thresholdPrompt := promptui.Prompt{
		Label:   "Similarity threshold for corpus matches (0-1)",
		Default: fmt.Sprintf("%.2f", cfg.SimilarityThreshold),
		Validate: func(input string) error {
			v, err := strconv.ParseFloat(input, 64)
			if err != nil || v < 0 || v > 1 {
				return fmt.Errorf("enter a number between 0 and 1")
			}
			return nil
		},
	}
	thresholdStr, err := thresholdPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("prompting for threshold: %w", err)
	}
	cfg.SimilarityThreshold, _ = strconv.ParseFloat(thresholdStr, 64)

	cachePrompt := promptui.Prompt{
		Label:   "Fingerprint cache size",
		Default: strconv.Itoa(cfg.CacheSize),
		Validate: func(input string) error {
			n, err := strconv.Atoi(input)
			if err != nil || n < 1 {
				return fmt.Errorf("enter a positive integer")
			}
			return nil
		},
	}
	cacheStr, err := cachePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("prompting for cache size: %w", err)
	}
	cfg.CacheSize, _ = strconv.Atoi(cacheStr)

	includePrompt := promptui.Prompt{
		Label:   "Corpus include pattern",
		Default: "**/*.json",
	}
	includeStr, err := includePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("prompting for include pattern: %w", err)
	}
	cfg.Include = []string{includeStr}

	if err := cfg.Save(".docforensics.yml"); err != nil {
		return nil, err
	}
	fmt.Println("\nConfiguration saved to .docforensics.yml")
	return cfg, nil
}
