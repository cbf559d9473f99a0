// Package report renders forensic comparison results as markdown and
// standalone HTML pages. It is pure presentation over the comparator's
// output; no new analysis happens here.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	htmlrenderer "github.com/yuin/goldmark/renderer/html"

	"github.com/ziadkadry99/doc-forensics/internal/forensic"
)

// Markdown renders a DiffResult and its reporting projection as a
// markdown forensic report.
func Markdown(diff *forensic.DiffResult, meta *forensic.ModificationMetadata) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Forensic comparison: %s vs %s\n\n", diff.DocumentID1, diff.DocumentID2)
	fmt.Fprintf(&b, "Analysis `%s`, run at %s.\n\n", diff.AnalysisID, diff.AnalyzedAt.Format("2006-01-02T15:04:05Z07:00"))

	b.WriteString("## Summary\n\n")
	fmt.Fprintf(&b, "| Metric | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Total changes | %d |\n", meta.TotalChanges)
	fmt.Fprintf(&b, "| Risk score | %.3f |\n", diff.RiskScore)
	fmt.Fprintf(&b, "| Risk level | %s |\n", strings.ToUpper(string(diff.RiskLevel)))
	fmt.Fprintf(&b, "| Overall similarity | %.3f |\n", diff.OverallSimilarity)
	fmt.Fprintf(&b, "| Requires review | %t |\n", meta.RequiresReview)
	fmt.Fprintf(&b, "| Requires approval | %t |\n", meta.RequiresApproval)
	fmt.Fprintf(&b, "| Block document | %t |\n\n", meta.BlockDocument)

	fmt.Fprintf(&b, "**Recommendation:** %s\n\n", diff.Recommendation)

	if len(diff.SuspiciousPatterns) > 0 {
		b.WriteString("## Suspicious patterns\n\n")
		for _, p := range diff.SuspiciousPatterns {
			fmt.Fprintf(&b, "- %s\n", p)
		}
		b.WriteString("\n")
	}

	if len(meta.HighRiskChanges) > 0 {
		b.WriteString("## High-risk changes\n\n")
		for _, ch := range meta.HighRiskChanges {
			fmt.Fprintf(&b, "### `%s` (%s, %s)\n\n", ch.FieldPath, ch.Type, ch.RiskLevel)
			fmt.Fprintf(&b, "%s — risk %.2f\n\n", ch.Reason, ch.RiskScore)
			b.WriteString("```json\n")
			b.WriteString(changeJSON(ch))
			b.WriteString("\n```\n\n")
		}
	}

	if len(meta.CategoryHistogram) > 0 {
		b.WriteString("## Changes by category\n\n")
		for _, cat := range sortedCategories(meta.CategoryHistogram) {
			fmt.Fprintf(&b, "- %s: %d\n", cat, meta.CategoryHistogram[cat])
		}
		b.WriteString("\n")
	}

	if len(meta.AffectedSections) > 0 {
		fmt.Fprintf(&b, "Affected sections: %s\n\n", strings.Join(meta.AffectedSections, ", "))
	}

	if len(meta.ChangedPaths) > 0 {
		b.WriteString("## All changed paths\n\n")
		for _, p := range meta.ChangedPaths {
			fmt.Fprintf(&b, "- `%s`\n", p)
		}
	}
	return b.String()
}

func changeJSON(ch forensic.Change) string {
	payload := map[string]any{
		"old_value": ch.OldValue,
		"new_value": ch.NewValue,
	}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(data)
}

func sortedCategories(hist map[forensic.ChangeType]int) []forensic.ChangeType {
	cats := make([]forensic.ChangeType, 0, len(hist))
	for c := range hist {
		cats = append(cats, c)
	}
	sort.Slice(cats, func(i, j int) bool { return cats[i] < cats[j] })
	return cats
}

// HTML renders the markdown report as a standalone HTML page with
// syntax-highlighted JSON snippets.
func HTML(diff *forensic.DiffResult, meta *forensic.ModificationMetadata) (string, error) {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle("github"),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			htmlrenderer.WithUnsafe(),
		),
	)

	var body bytes.Buffer
	if err := md.Convert([]byte(Markdown(diff, meta)), &body); err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}

	tmpl, err := template.New("report").Parse(pageTemplate)
	if err != nil {
		return "", fmt.Errorf("parsing report template: %w", err)
	}
	var page bytes.Buffer
	err = tmpl.Execute(&page, pageData{
		Title:     fmt.Sprintf("%s vs %s", diff.DocumentID1, diff.DocumentID2),
		RiskLevel: strings.ToUpper(string(diff.RiskLevel)),
		Content:   template.HTML(body.String()),
	})
	if err != nil {
		return "", fmt.Errorf("executing report template: %w", err)
	}
	return page.String(), nil
}

// pageData holds the data passed to the HTML page template.
type pageData struct {
	Title     string
	RiskLevel string
	Content   template.HTML
}
