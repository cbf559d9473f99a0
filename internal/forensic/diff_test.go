package forensic

import (
	"testing"
)

func TestTypeMismatchIsSingleChange(t *testing.T) {
	c := newComparator(t)
	doc1 := decodeDoc(t, `{"remarks": {"inner": 1, "other": 2}}`)
	doc2 := decodeDoc(t, `{"remarks": "now a string"}`)

	result := c.CompareDocuments(doc1, doc2, "a", "b", nil, nil)
	if len(result.Changes) != 1 {
		t.Fatalf("type mismatch must not recurse, got %d changes", len(result.Changes))
	}
	if result.Changes[0].Type != ChangeModification {
		t.Errorf("Type = %s, want %s", result.Changes[0].Type, ChangeModification)
	}
}

func TestContainerKindSwapIsStructural(t *testing.T) {
	c := newComparator(t)
	doc1 := decodeDoc(t, `{"items": [1, 2]}`)
	doc2 := decodeDoc(t, `{"items": {"first": 1}}`)

	result := c.CompareDocuments(doc1, doc2, "a", "b", nil, nil)
	if len(result.Changes) != 1 {
		t.Fatalf("got %d changes, want 1", len(result.Changes))
	}
	if result.Changes[0].Type != ChangeStructural {
		t.Errorf("Type = %s, want %s", result.Changes[0].Type, ChangeStructural)
	}
}

func TestListDiffIsPositional(t *testing.T) {
	c := newComparator(t)
	doc1 := decodeDoc(t, `{"entries": ["a", "b", "c"]}`)
	doc2 := decodeDoc(t, `{"entries": ["x", "a", "b", "c"]}`)

	// A head insertion shifts every index: the positional walk reports a
	// cascade, not one addition.
	result := c.CompareDocuments(doc1, doc2, "a", "b", nil, nil)
	if len(result.Changes) != 4 {
		t.Fatalf("expected 4 positional changes, got %d", len(result.Changes))
	}
	last := result.Changes[3]
	if last.FieldPath != "entries[3]" || last.Type != ChangeAddition {
		t.Errorf("trailing index should be an addition at entries[3], got %+v", last)
	}
}

func TestNestedPathsUseDotsAndBrackets(t *testing.T) {
	c := newComparator(t)
	doc1 := decodeDoc(t, `{"borrower": {"contacts": [{"zip": "10001"}]}}`)
	doc2 := decodeDoc(t, `{"borrower": {"contacts": [{"zip": "94105"}]}}`)

	result := c.CompareDocuments(doc1, doc2, "a", "b", nil, nil)
	if len(result.Changes) != 1 {
		t.Fatalf("got %d changes, want 1", len(result.Changes))
	}
	if got := result.Changes[0].FieldPath; got != "borrower.contacts[0].zip" {
		t.Errorf("FieldPath = %q, want borrower.contacts[0].zip", got)
	}
}

func TestLCSRatio(t *testing.T) {
	if got := lcsRatio([]byte("abcdef"), []byte("abcdef")); got != 1.0 {
		t.Errorf("identical inputs = %v, want 1.0", got)
	}
	if got := lcsRatio([]byte("abc"), []byte("xyz")); got != 0.0 {
		t.Errorf("disjoint inputs = %v, want 0.0", got)
	}
	if got := lcsRatio(nil, nil); got != 1.0 {
		t.Errorf("empty inputs = %v, want 1.0", got)
	}
	mid := lcsRatio([]byte("abcd"), []byte("abxd"))
	if mid <= 0.0 || mid >= 1.0 {
		t.Errorf("partial overlap should be strictly between 0 and 1, got %v", mid)
	}
}

func TestDeletionToNullAmplifier(t *testing.T) {
	c := newComparator(t)
	doc1 := decodeDoc(t, `{"witness": "present"}`)
	doc2 := decodeDoc(t, `{}`)

	result := c.CompareDocuments(doc1, doc2, "a", "b", nil, nil)
	ch := result.Changes[0]
	if ch.Type != ChangeSignature {
		t.Fatalf("Type = %s, want %s", ch.Type, ChangeSignature)
	}
	// Base 0.85 amplified by the vanished-value multiplier 1.2, capped.
	if ch.RiskScore != 1.0 {
		t.Errorf("RiskScore = %v, want 1.0", ch.RiskScore)
	}
}

func TestGenerateDiffOverlay(t *testing.T) {
	c := newComparator(t)
	doc1 := decodeDoc(t, `{"remark": "old", "gone": 1}`)
	doc2 := decodeDoc(t, `{"remark": "new", "fresh": 2}`)

	overlay := c.GenerateDiffOverlay(doc1, doc2)
	if len(overlay.Additions) != 1 || len(overlay.Deletions) != 1 || len(overlay.Modifications) != 1 {
		t.Fatalf("grouping wrong: +%d -%d ~%d", len(overlay.Additions), len(overlay.Deletions), len(overlay.Modifications))
	}
	if _, ok := overlay.ByPath["remark"]; !ok {
		t.Error("ByPath should index the modification at 'remark'")
	}
	for _, level := range []RiskLevel{RiskCritical, RiskHigh, RiskMedium, RiskLow, RiskMinimal} {
		if overlay.Colors[level] == "" {
			t.Errorf("missing color for %s", level)
		}
	}
}

func TestExtractModificationMetadata(t *testing.T) {
	c := newComparator(t)
	doc1 := decodeDoc(t, `{"loan_amount": 100000, "ssn": "1234"}`)
	doc2 := decodeDoc(t, `{"loan_amount": 250000, "ssn": "5678"}`)

	diff := c.CompareDocuments(doc1, doc2, "v1", "v2", nil, nil)
	meta := c.ExtractModificationMetadata(diff)

	if meta.TotalChanges != 2 {
		t.Errorf("TotalChanges = %d, want 2", meta.TotalChanges)
	}
	if len(meta.ChangedPaths) != 2 {
		t.Errorf("ChangedPaths = %v", meta.ChangedPaths)
	}
	if len(meta.HighRiskChanges) != 2 {
		t.Errorf("both changes are high risk, got %d", len(meta.HighRiskChanges))
	}
	// Aggregate risk for this pair is >= 0.9, so all three gates open.
	if !meta.RequiresReview || !meta.RequiresApproval || !meta.BlockDocument {
		t.Errorf("gates = review:%v approval:%v block:%v, want all true",
			meta.RequiresReview, meta.RequiresApproval, meta.BlockDocument)
	}
	sections := map[string]bool{}
	for _, s := range meta.AffectedSections {
		sections[s] = true
	}
	if !sections["loan_amount"] || !sections["ssn"] {
		t.Errorf("AffectedSections = %v", meta.AffectedSections)
	}
}

func TestMetadataGateThresholds(t *testing.T) {
	c := newComparator(t)
	cases := []struct {
		score                   float64
		review, approval, block bool
	}{
		{0.39, false, false, false},
		{0.4, true, false, false},
		{0.7, true, true, false},
		{0.9, true, true, true},
	}
	for _, tc := range cases {
		meta := c.ExtractModificationMetadata(&DiffResult{RiskScore: tc.score, RiskLevel: LevelForScore(tc.score)})
		if meta.RequiresReview != tc.review || meta.RequiresApproval != tc.approval || meta.BlockDocument != tc.block {
			t.Errorf("score %v: gates = %v/%v/%v, want %v/%v/%v", tc.score,
				meta.RequiresReview, meta.RequiresApproval, meta.BlockDocument,
				tc.review, tc.approval, tc.block)
		}
	}
}

func TestRoundNumberPattern(t *testing.T) {
	c := newComparator(t)
	doc1 := decodeDoc(t, `{"loan_amount": 123457}`)
	doc2 := decodeDoc(t, `{"loan_amount": 250000}`)

	result := c.CompareDocuments(doc1, doc2, "a", "b", nil, nil)
	found := false
	for _, p := range result.SuspiciousPatterns {
		if p == "round-number financial value 250000 at loan_amount" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected round-number pattern, got %v", result.SuspiciousPatterns)
	}
}
