package report

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/ziadkadry99/doc-forensics/internal/docval"
	"github.com/ziadkadry99/doc-forensics/internal/forensic"
)

func buildDiff(t *testing.T) (*forensic.DiffResult, *forensic.ModificationMetadata) {
	t.Helper()
	c, err := forensic.NewComparator(forensic.Options{})
	if err != nil {
		t.Fatalf("NewComparator: %v", err)
	}
	decode := func(raw string) docval.Value {
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
	diff := c.CompareDocuments(
		decode(`{"loan_amount": 100000, "ssn": "1234"}`),
		decode(`{"loan_amount": 250000, "ssn": "5678"}`),
		"v1", "v2", nil, nil)
	return diff, c.ExtractModificationMetadata(diff)
}

func TestMarkdownReport(t *testing.T) {
	diff, meta := buildDiff(t)
	md := Markdown(diff, meta)

	for _, want := range []string{
		"# Forensic comparison: v1 vs v2",
		"| Total changes | 2 |",
		"**Recommendation:**",
		"## Suspicious patterns",
		"## High-risk changes",
		"`loan_amount`",
		"```json",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown report missing %q", want)
		}
	}
}

func TestHTMLReport(t *testing.T) {
	diff, meta := buildDiff(t)
	html, err := HTML(diff, meta)
	if err != nil {
		t.Fatalf("HTML: %v", err)
	}
	if !strings.Contains(html, "<!DOCTYPE html>") {
		t.Error("missing doctype")
	}
	if !strings.Contains(html, "Risk level: CRITICAL") {
		t.Errorf("missing risk banner, got %.200s", html)
	}
	if !strings.Contains(html, "Forensic comparison") {
		t.Error("missing rendered heading")
	}
}
