package forensic

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/ziadkadry99/doc-forensics/internal/docval"
)

func decodeDoc(t *testing.T, raw string) docval.Value {
	t.Helper()
	var doc any
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	v, err := docval.Decode(doc, docval.Limits{})
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	return v
}

func newComparator(t *testing.T) *Comparator {
	t.Helper()
	c, err := NewComparator(Options{})
	if err != nil {
		t.Fatalf("NewComparator: %v", err)
	}
	return c
}

func TestRiskBandPartition(t *testing.T) {
	cases := []struct {
		score float64
		want  RiskLevel
	}{
		{0.0, RiskMinimal},
		{0.09, RiskMinimal},
		{0.1, RiskLow},
		{0.39, RiskLow},
		{0.4, RiskMedium},
		{0.69, RiskMedium},
		{0.7, RiskHigh},
		{0.89, RiskHigh},
		{0.9, RiskCritical},
		{1.0, RiskCritical},
	}
	for _, tc := range cases {
		if got := LevelForScore(tc.score); got != tc.want {
			t.Errorf("LevelForScore(%v) = %s, want %s", tc.score, got, tc.want)
		}
	}
}

func TestSelfComparison(t *testing.T) {
	c := newComparator(t)
	doc := decodeDoc(t, `{"loan": {"amount": 100000}, "borrower": {"name": "Jane"}}`)

	result := c.CompareDocuments(doc, doc, "v1", "v1-copy", nil, nil)
	if len(result.Changes) != 0 {
		t.Fatalf("expected zero changes, got %d", len(result.Changes))
	}
	if result.RiskScore != 0.0 {
		t.Errorf("RiskScore = %v, want exactly 0.0", result.RiskScore)
	}
	if result.RiskLevel != RiskMinimal {
		t.Errorf("RiskLevel = %s, want %s", result.RiskLevel, RiskMinimal)
	}
	if result.OverallSimilarity != 1.0 {
		t.Errorf("OverallSimilarity = %v, want 1.0", result.OverallSimilarity)
	}
	if result.AnalysisID == "" {
		t.Error("AnalysisID should be assigned")
	}
}

func TestSingleAddition(t *testing.T) {
	c := newComparator(t)
	doc1 := decodeDoc(t, `{"remarks": "original"}`)
	doc2 := decodeDoc(t, `{"remarks": "original", "quarter": "Q3"}`)

	result := c.CompareDocuments(doc1, doc2, "a", "b", nil, nil)
	if len(result.Changes) != 1 {
		t.Fatalf("expected exactly 1 change, got %d: %+v", len(result.Changes), result.Changes)
	}
	ch := result.Changes[0]
	if ch.FieldPath != "quarter" {
		t.Errorf("FieldPath = %q, want %q", ch.FieldPath, "quarter")
	}
	if ch.Type != ChangeAddition {
		t.Errorf("Type = %s, want %s", ch.Type, ChangeAddition)
	}
	if ch.OldValue != nil {
		t.Errorf("OldValue = %v, want nil", ch.OldValue)
	}
	if ch.NewValue != "Q3" {
		t.Errorf("NewValue = %v, want Q3", ch.NewValue)
	}
}

func TestDirectionSwapsAdditionAndDeletion(t *testing.T) {
	c := newComparator(t)
	doc1 := decodeDoc(t, `{"remarks": "original"}`)
	doc2 := decodeDoc(t, `{"remarks": "original", "quarter": "Q3"}`)

	forward := c.CompareDocuments(doc1, doc2, "a", "b", nil, nil)
	backward := c.CompareDocuments(doc2, doc1, "b", "a", nil, nil)
	if forward.Changes[0].Type != ChangeAddition {
		t.Errorf("forward type = %s, want addition", forward.Changes[0].Type)
	}
	if backward.Changes[0].Type != ChangeDeletion {
		t.Errorf("backward type = %s, want deletion", backward.Changes[0].Type)
	}
}

func TestFinancialEscalation(t *testing.T) {
	c := newComparator(t)
	doc1 := decodeDoc(t, `{"loan": {"amount": 100000}}`)
	doc2 := decodeDoc(t, `{"loan": {"amount": 200000}}`)

	result := c.CompareDocuments(doc1, doc2, "v1", "v2", nil, nil)
	if len(result.Changes) != 1 {
		t.Fatalf("expected 1 change, got %d", len(result.Changes))
	}
	ch := result.Changes[0]
	if ch.Type != ChangeFinancial {
		t.Errorf("Type = %s, want %s", ch.Type, ChangeFinancial)
	}
	// Base 0.95 amplified by the 100%-increase multiplier 1.5, capped.
	if ch.RiskScore != 1.0 {
		t.Errorf("RiskScore = %v, want 1.0", ch.RiskScore)
	}
	if ch.RiskLevel != RiskCritical {
		t.Errorf("RiskLevel = %s, want %s", ch.RiskLevel, RiskCritical)
	}
}

func TestKeyRenameIsDeletePlusAdd(t *testing.T) {
	c := newComparator(t)
	doc1 := decodeDoc(t, `{"remark": "hello"}`)
	doc2 := decodeDoc(t, `{"comment": "hello"}`)

	result := c.CompareDocuments(doc1, doc2, "a", "b", nil, nil)
	if len(result.Changes) != 2 {
		t.Fatalf("expected 2 changes, got %d", len(result.Changes))
	}
	types := map[ChangeType]string{}
	for _, ch := range result.Changes {
		types[ch.Type] = ch.FieldPath
	}
	if types[ChangeDeletion] != "remark" {
		t.Errorf("expected deletion of 'remark', got %v", types)
	}
	if types[ChangeAddition] != "comment" {
		t.Errorf("expected addition of 'comment', got %v", types)
	}
}

func TestTamperedLoanApplication(t *testing.T) {
	c := newComparator(t)
	doc1 := decodeDoc(t, `{"loan_amount": 100000, "ssn": "1234"}`)
	doc2 := decodeDoc(t, `{"loan_amount": 250000, "ssn": "5678"}`)

	result := c.CompareDocuments(doc1, doc2, "v1", "v2", nil, nil)
	if len(result.Changes) != 2 {
		t.Fatalf("expected 2 changes, got %d", len(result.Changes))
	}
	counts := map[ChangeType]int{}
	for _, ch := range result.Changes {
		counts[ch.Type]++
	}
	if counts[ChangeFinancial] != 1 || counts[ChangeIdentity] != 1 {
		t.Errorf("expected one financial and one identity change, got %v", counts)
	}
	if result.RiskScore < 0.9 {
		t.Errorf("RiskScore = %v, want >= 0.9", result.RiskScore)
	}
	if result.RiskLevel != RiskHigh && result.RiskLevel != RiskCritical {
		t.Errorf("RiskLevel = %s, want high or critical", result.RiskLevel)
	}
	foundIdentity := false
	for _, p := range result.SuspiciousPatterns {
		if strings.Contains(p, "identity") {
			foundIdentity = true
		}
	}
	if !foundIdentity {
		t.Errorf("suspicious patterns should include an identity entry, got %v", result.SuspiciousPatterns)
	}
	if result.Recommendation != recommendations[result.RiskLevel] {
		t.Errorf("Recommendation = %q, want the %s tier text", result.Recommendation, result.RiskLevel)
	}
}

func TestRulePriorityOrdering(t *testing.T) {
	// "borrower_income" matches both the identity ("borrower") and the
	// financial ("income") vocabularies; financial has priority.
	c := newComparator(t)
	doc1 := decodeDoc(t, `{"borrower_income": 50000}`)
	doc2 := decodeDoc(t, `{"borrower_income": 52000}`)

	result := c.CompareDocuments(doc1, doc2, "a", "b", nil, nil)
	if result.Changes[0].Type != ChangeFinancial {
		t.Errorf("Type = %s, want %s", result.Changes[0].Type, ChangeFinancial)
	}
}

func TestCustomRules(t *testing.T) {
	c, err := NewComparator(Options{Rules: []Rule{
		{Pattern: `secret`, Category: ChangeSignature, Priority: 1},
	}})
	if err != nil {
		t.Fatalf("NewComparator: %v", err)
	}
	doc1 := decodeDoc(t, `{"secret_field": 1}`)
	doc2 := decodeDoc(t, `{"secret_field": 2}`)
	result := c.CompareDocuments(doc1, doc2, "a", "b", nil, nil)
	if result.Changes[0].Type != ChangeSignature {
		t.Errorf("Type = %s, want %s", result.Changes[0].Type, ChangeSignature)
	}
}

func TestInvalidRulePattern(t *testing.T) {
	_, err := NewComparator(Options{Rules: []Rule{{Pattern: `([`, Category: ChangeFinancial, Priority: 1}}})
	if err == nil {
		t.Fatal("expected an error for an invalid rule pattern")
	}
}

func TestChangeSummary(t *testing.T) {
	c := newComparator(t)
	doc1 := decodeDoc(t, `{"loan_amount": 100000, "remarks": "a", "version": "1"}`)
	doc2 := decodeDoc(t, `{"loan_amount": 200000, "remarks": "b", "version": "2"}`)

	result := c.CompareDocuments(doc1, doc2, "a", "b", nil, nil)
	s := result.ChangeSummary
	if s.TotalChanges != 3 {
		t.Fatalf("TotalChanges = %d, want 3", s.TotalChanges)
	}
	if s.ByCategory[ChangeFinancial] != 1 || s.ByCategory[ChangeMetadata] != 1 || s.ByCategory[ChangeModification] != 1 {
		t.Errorf("ByCategory = %v", s.ByCategory)
	}
	found := false
	for _, p := range s.HighRiskPaths {
		if p == "loan_amount" {
			found = true
		}
	}
	if !found {
		t.Errorf("HighRiskPaths should contain loan_amount, got %v", s.HighRiskPaths)
	}
}
