// Package forensic performs exhaustive pairwise document comparison with
// per-change fraud-risk scoring, suspicious-pattern detection, and review
// recommendations.
package forensic

import "time"

// ChangeType categorizes one field-level delta. The first four are the
// structural base types produced by the diff walk; the rest are assigned by
// the classification rule table based on the field path.
type ChangeType string

const (
	ChangeAddition     ChangeType = "addition"
	ChangeDeletion     ChangeType = "deletion"
	ChangeModification ChangeType = "modification"
	ChangeStructural   ChangeType = "structural"
	ChangeFinancial    ChangeType = "financial"
	ChangeIdentity     ChangeType = "identity"
	ChangeSignature    ChangeType = "signature"
	ChangeMetadata     ChangeType = "metadata"
)

// RiskLevel is one of five fixed bands partitioning the [0,1] risk score.
type RiskLevel string

const (
	RiskCritical RiskLevel = "critical"
	RiskHigh     RiskLevel = "high"
	RiskMedium   RiskLevel = "medium"
	RiskLow      RiskLevel = "low"
	RiskMinimal  RiskLevel = "minimal"
)

// LevelForScore maps a [0,1] risk score into its band. The partition is
// fixed and monotonic; per-change and aggregate scores use it identically.
func LevelForScore(score float64) RiskLevel {
	switch {
	case score >= 0.9:
		return RiskCritical
	case score >= 0.7:
		return RiskHigh
	case score >= 0.4:
		return RiskMedium
	case score >= 0.1:
		return RiskLow
	default:
		return RiskMinimal
	}
}

// Change is one field-level delta between two document versions.
type Change struct {
	FieldPath string     `json:"field_path"`
	Type      ChangeType `json:"change_type"`
	OldValue  any        `json:"old_value"`
	NewValue  any        `json:"new_value"`
	RiskScore float64    `json:"risk_score"`
	RiskLevel RiskLevel  `json:"risk_level"`
	Reason    string     `json:"reason"`
	Timestamp time.Time  `json:"timestamp"`
}

// Summary counts changes by category and by risk band.
type Summary struct {
	TotalChanges  int                `json:"total_changes"`
	ByCategory    map[ChangeType]int `json:"by_category"`
	ByRiskLevel   map[RiskLevel]int  `json:"by_risk_level"`
	HighRiskPaths []string           `json:"high_risk_paths"`
}

// DiffResult is the full outcome of comparing two document snapshots.
// Direction matters: swapping the documents swaps addition and deletion
// labeling.
type DiffResult struct {
	AnalysisID         string            `json:"analysis_id"`
	DocumentID1        string            `json:"document_id_1"`
	DocumentID2        string            `json:"document_id_2"`
	Changes            []Change          `json:"changes"`
	OverallSimilarity  float64           `json:"overall_similarity"`
	RiskScore          float64           `json:"risk_score"`
	RiskLevel          RiskLevel         `json:"risk_level"`
	ChangeSummary      Summary           `json:"change_summary"`
	SuspiciousPatterns []string          `json:"suspicious_patterns"`
	Recommendation     string            `json:"recommendation"`
	AnalyzedAt         time.Time         `json:"analyzed_at"`
	Metadata1          map[string]string `json:"metadata_1,omitempty"`
	Metadata2          map[string]string `json:"metadata_2,omitempty"`
}

// Overlay reshapes a diff for rendering: changes grouped by kind, a color
// per risk band, and a lookup from field path to change.
type Overlay struct {
	Additions     []Change             `json:"additions"`
	Deletions     []Change             `json:"deletions"`
	Modifications []Change             `json:"modifications"`
	Colors        map[RiskLevel]string `json:"colors"`
	ByPath        map[string]Change    `json:"by_path"`
}

// ModificationMetadata is the reporting projection of a DiffResult.
type ModificationMetadata struct {
	AnalysisID        string             `json:"analysis_id"`
	TotalChanges      int                `json:"total_changes"`
	RiskScore         float64            `json:"risk_score"`
	RiskLevel         RiskLevel          `json:"risk_level"`
	OverallSimilarity float64            `json:"overall_similarity"`
	AnalyzedAt        time.Time          `json:"analyzed_at"`
	ChangedPaths      []string           `json:"changed_paths"`
	HighRiskChanges   []Change           `json:"high_risk_changes"`
	CategoryHistogram map[ChangeType]int `json:"category_histogram"`
	RiskHistogram     map[RiskLevel]int  `json:"risk_histogram"`
	AffectedSections  []string           `json:"affected_sections"`
	RequiresReview    bool               `json:"requires_review"`
	RequiresApproval  bool               `json:"requires_approval"`
	BlockDocument     bool               `json:"block_document"`
}
