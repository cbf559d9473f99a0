package forensic

import (
	"fmt"
	"math"

	"github.com/ziadkadry99/doc-forensics/internal/docval"
)

// detectSuspiciousPatterns runs the independent fraud-pattern heuristics
// over a scored change list. Any subset may fire.
func detectSuspiciousPatterns(changes []rawChange, scored []Change) []string {
	var patterns []string

	financial := 0
	highScoring := 0
	for i, ch := range scored {
		switch ch.Type {
		case ChangeFinancial:
			financial++
			if raw := changes[i]; raw.new != nil && raw.new.Kind() == docval.KindNumber {
				if amount := raw.new.NumberValue(); isRoundNumber(amount) {
					patterns = append(patterns, fmt.Sprintf("round-number financial value %v at %s", amount, ch.FieldPath))
				}
			}
		case ChangeIdentity:
			patterns = append(patterns, fmt.Sprintf("identity field changed: %s", ch.FieldPath))
		case ChangeSignature:
			// Signature and authorization edits are always flagged,
			// regardless of their own score.
			patterns = append(patterns, fmt.Sprintf("signature or authorization field changed: %s", ch.FieldPath))
		}
		if ch.RiskScore > 0.8 {
			highScoring++
		}
		if changes[i].base == ChangeDeletion && (ch.RiskLevel == RiskHigh || ch.RiskLevel == RiskCritical) {
			patterns = append(patterns, fmt.Sprintf("high-risk field deleted: %s", ch.FieldPath))
		}
	}

	if financial > 3 {
		patterns = append(patterns, fmt.Sprintf("multiple financial fields changed (%d)", financial))
	}
	if highScoring > 5 {
		patterns = append(patterns, fmt.Sprintf("%d changes individually score above 0.8", highScoring))
	}
	return patterns
}

// isRoundNumber reports whether a value is an exact multiple of 1,000.
// Fabricated figures cluster on round numbers far more than organic ones.
func isRoundNumber(v float64) bool {
	if v == 0 {
		return false
	}
	return math.Mod(v, 1000) == 0
}
