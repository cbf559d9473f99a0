package forensic

import (
	"time"

	"github.com/google/uuid"

	"github.com/ziadkadry99/doc-forensics/internal/docval"
)

// Options configures a Comparator. The zero value selects the built-in
// rule table.
type Options struct {
	// Rules overrides the classification table when non-empty.
	Rules []Rule
	// Now supplies analysis timestamps; defaults to time.Now.
	Now func() time.Time
	// NewID supplies analysis IDs; defaults to uuid.NewString.
	NewID func() string
}

// Comparator performs pairwise forensic document comparison. It holds no
// mutable state, so one instance can serve concurrent callers.
type Comparator struct {
	rules []compiledRule
	now   func() time.Time
	newID func() string
}

// NewComparator builds a Comparator, compiling the classification rules.
func NewComparator(opts Options) (*Comparator, error) {
	rules := opts.Rules
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	compiled, err := compileRules(rules)
	if err != nil {
		return nil, err
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	newID := opts.NewID
	if newID == nil {
		newID = uuid.NewString
	}
	return &Comparator{rules: compiled, now: now, newID: newID}, nil
}

// CompareDocuments diffs two snapshots field by field, classifies and
// scores every change, and aggregates the result. Direction matters:
// doc1 is the original, doc2 the current version.
func (c *Comparator) CompareDocuments(doc1, doc2 docval.Value, id1, id2 string, meta1, meta2 map[string]string) *DiffResult {
	raw := deepCompare(doc1, doc2)
	scored := c.scoreChanges(raw)

	result := &DiffResult{
		AnalysisID:         c.newID(),
		DocumentID1:        id1,
		DocumentID2:        id2,
		Changes:            scored,
		OverallSimilarity:  lcsRatio(docval.Canonical(doc1), docval.Canonical(doc2)),
		RiskScore:          aggregateRisk(scored),
		SuspiciousPatterns: detectSuspiciousPatterns(raw, scored),
		AnalyzedAt:         c.now().UTC(),
		Metadata1:          meta1,
		Metadata2:          meta2,
	}
	result.RiskLevel = LevelForScore(result.RiskScore)
	result.ChangeSummary = buildSummary(scored)
	result.Recommendation = recommendations[result.RiskLevel]
	return result
}

// scoreChanges classifies each raw change against the rule table and
// assigns its risk score and band.
func (c *Comparator) scoreChanges(raw []rawChange) []Change {
	now := c.now().UTC()
	changes := make([]Change, 0, len(raw))
	for _, rc := range raw {
		category := classify(c.rules, rc.path, rc.base)
		score := scoreChange(category, rc.old, rc.new)
		changes = append(changes, Change{
			FieldPath: rc.path,
			Type:      category,
			OldValue:  valueInterface(rc.old),
			NewValue:  valueInterface(rc.new),
			RiskScore: score,
			RiskLevel: LevelForScore(score),
			Reason:    changeReason(category, rc.base),
			Timestamp: now,
		})
	}
	return changes
}

func valueInterface(v *docval.Value) any {
	if v == nil {
		return nil
	}
	return v.Interface()
}

func changeReason(category, base ChangeType) string {
	switch category {
	case ChangeFinancial:
		return "financial field " + string(base)
	case ChangeIdentity:
		return "identity field " + string(base)
	case ChangeSignature:
		return "signature or authorization field " + string(base)
	case ChangeMetadata:
		return "metadata field " + string(base)
	case ChangeStructural:
		return "container type changed"
	default:
		return "field " + string(base)
	}
}

func buildSummary(changes []Change) Summary {
	summary := Summary{
		TotalChanges: len(changes),
		ByCategory:   make(map[ChangeType]int),
		ByRiskLevel:  make(map[RiskLevel]int),
	}
	for _, ch := range changes {
		summary.ByCategory[ch.Type]++
		summary.ByRiskLevel[ch.RiskLevel]++
		if ch.RiskLevel == RiskHigh || ch.RiskLevel == RiskCritical {
			summary.HighRiskPaths = append(summary.HighRiskPaths, ch.FieldPath)
		}
	}
	return summary
}
