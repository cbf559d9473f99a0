package forensic

import "github.com/ziadkadry99/doc-forensics/internal/docval"

// riskColors is the fixed band-to-color mapping used by renderers.
var riskColors = map[RiskLevel]string{
	RiskCritical: "#d32f2f",
	RiskHigh:     "#f57c00",
	RiskMedium:   "#fbc02d",
	RiskLow:      "#1976d2",
	RiskMinimal:  "#9e9e9e",
}

// GenerateDiffOverlay reshapes the comparison of two documents into the
// structure a presentation layer renders: changes grouped by kind, a color
// per band, and a path lookup. It adds no analysis beyond the diff itself.
func (c *Comparator) GenerateDiffOverlay(doc1, doc2 docval.Value) *Overlay {
	raw := deepCompare(doc1, doc2)
	scored := c.scoreChanges(raw)

	overlay := &Overlay{
		Colors: riskColors,
		ByPath: make(map[string]Change, len(scored)),
	}
	for i, ch := range scored {
		// Grouping follows which side of the pair holds the value, not
		// the classified category: a reclassified financial addition
		// still renders as an addition.
		switch raw[i].base {
		case ChangeAddition:
			overlay.Additions = append(overlay.Additions, ch)
		case ChangeDeletion:
			overlay.Deletions = append(overlay.Deletions, ch)
		default:
			overlay.Modifications = append(overlay.Modifications, ch)
		}
		overlay.ByPath[ch.FieldPath] = ch
	}
	return overlay
}

// ExtractModificationMetadata projects a DiffResult into the summary form
// consumed by reporting and workflow gates.
func (c *Comparator) ExtractModificationMetadata(diff *DiffResult) *ModificationMetadata {
	meta := &ModificationMetadata{
		AnalysisID:        diff.AnalysisID,
		TotalChanges:      len(diff.Changes),
		RiskScore:         diff.RiskScore,
		RiskLevel:         diff.RiskLevel,
		OverallSimilarity: diff.OverallSimilarity,
		AnalyzedAt:        diff.AnalyzedAt,
		CategoryHistogram: make(map[ChangeType]int),
		RiskHistogram:     make(map[RiskLevel]int),
		RequiresReview:    diff.RiskScore >= 0.4,
		RequiresApproval:  diff.RiskScore >= 0.7,
		BlockDocument:     diff.RiskScore >= 0.9,
	}

	sections := make(map[string]bool)
	for _, ch := range diff.Changes {
		meta.ChangedPaths = append(meta.ChangedPaths, ch.FieldPath)
		meta.CategoryHistogram[ch.Type]++
		meta.RiskHistogram[ch.RiskLevel]++
		if ch.RiskLevel == RiskHigh || ch.RiskLevel == RiskCritical {
			meta.HighRiskChanges = append(meta.HighRiskChanges, ch)
		}
		if section := topLevelSection(ch.FieldPath); section != "" && !sections[section] {
			sections[section] = true
			meta.AffectedSections = append(meta.AffectedSections, section)
		}
	}
	return meta
}

// topLevelSection extracts the first path segment: "borrower.address[2].zip"
// belongs to the "borrower" section.
func topLevelSection(path string) string {
	for i := 0; i < len(path); i++ {
		if path[i] == '.' || path[i] == '[' {
			return path[:i]
		}
	}
	return path
}
