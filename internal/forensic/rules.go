package forensic

import (
	"fmt"
	"regexp"
	"sort"
)

// Rule reclassifies a change by matching its field path. Lower priority
// values win; the first matching rule in priority order decides the
// category.
type Rule struct {
	Pattern  string     `json:"pattern" yaml:"pattern" koanf:"pattern"`
	Category ChangeType `json:"category" yaml:"category" koanf:"category"`
	Priority int        `json:"priority" yaml:"priority" koanf:"priority"`
}

// DefaultRules is the built-in classification table: financial beats
// identity beats signature beats metadata. Patterns are matched
// case-insensitively against the full field path.
func DefaultRules() []Rule {
	return []Rule{
		{Pattern: `amount|balance|payment|income|salary|wage|loan|principal|interest|rate|price|cost|fee|total|currency|escrow|asset|debt`, Category: ChangeFinancial, Priority: 1},
		{Pattern: `name|ssn|social|passport|license|birth|dob|address|phone|email|applicant|borrower|employer|taxpayer`, Category: ChangeIdentity, Priority: 2},
		{Pattern: `signature|signed|authoriz|approv|witness|notar|consent|certif`, Category: ChangeSignature, Priority: 3},
		{Pattern: `created|updated|modified|timestamp|version|date|author|source|origin|revision`, Category: ChangeMetadata, Priority: 4},
	}
}

type compiledRule struct {
	re       *regexp.Regexp
	category ChangeType
	priority int
}

// compileRules validates and orders the rule table. An invalid pattern is
// a configuration error, not something to degrade past silently.
func compileRules(rules []Rule) ([]compiledRule, error) {
	compiled := make([]compiledRule, 0, len(rules))
	for _, r := range rules {
		re, err := regexp.Compile(`(?i)` + r.Pattern)
		if err != nil {
			return nil, fmt.Errorf("compiling classification rule %q: %w", r.Pattern, err)
		}
		compiled = append(compiled, compiledRule{re: re, category: r.Category, priority: r.Priority})
	}
	sort.SliceStable(compiled, func(i, j int) bool {
		return compiled[i].priority < compiled[j].priority
	})
	return compiled, nil
}

// classify returns the category of the first matching rule, or the change's
// structural base type when nothing matches.
func classify(rules []compiledRule, fieldPath string, base ChangeType) ChangeType {
	for _, r := range rules {
		if r.re.MatchString(fieldPath) {
			return r.category
		}
	}
	return base
}
