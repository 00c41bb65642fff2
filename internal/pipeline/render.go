package pipeline

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/ppiankov/truthlens/internal/model"
)

var findingIcons = map[model.FindingType]string{
	model.FindingError:   "❌",
	model.FindingWarning: "⚠️",
	model.FindingInfo:    "ℹ️",
	model.FindingSuccess: "✅",
}

// Renderer writes analysis results as JSON, Markdown and HTML
type Renderer struct {
	includeFooter bool
	md            goldmark.Markdown
}

// NewRenderer creates a new renderer
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{
		includeFooter: includeFooter,
		md: goldmark.New(
			// GFM minus Linkify: bare URLs in submitted content stay text
			goldmark.WithExtensions(extension.Table, extension.Strikethrough),
			goldmark.WithRendererOptions(html.WithXHTML()),
		),
	}
}

// RenderJSON writes the result as indented JSON to path
func (r *Renderer) RenderJSON(result *model.AnalysisResult, path string) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// RenderMarkdown writes the Markdown report to path
func (r *Renderer) RenderMarkdown(result *model.AnalysisResult, path string) error {
	if err := os.WriteFile(path, []byte(r.Markdown(result)), 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Markdown builds the Markdown report
func (r *Renderer) Markdown(result *model.AnalysisResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Credibility Analysis `%s`\n\n", result.ID)
	fmt.Fprintf(&b, "- **Type:** %s\n", result.Type)
	fmt.Fprintf(&b, "- **Analyzed:** %s\n", result.AnalyzedAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(&b, "- **Processing time:** %.1fs\n\n", float64(result.ProcessingTime)/1000)

	b.WriteString("## Content\n\n")
	for _, line := range strings.Split(result.Content, "\n") {
		fmt.Fprintf(&b, "> %s\n", markdownEscaper.Replace(line))
	}
	b.WriteString("\n")

	s := result.CredibilityScore
	b.WriteString("## Credibility Score\n\n")
	b.WriteString("| Component | Score |\n|---|---|\n")
	fmt.Fprintf(&b, "| **Overall** | **%d/100** (%s) |\n", s.Overall, RiskLabel(s.Overall))
	fmt.Fprintf(&b, "| Source authority | %d |\n", s.SourceAuthority)
	fmt.Fprintf(&b, "| Fact verification | %d |\n", s.FactVerification)
	fmt.Fprintf(&b, "| Language analysis | %d |\n\n", s.LanguageAnalysis)

	b.WriteString("## Key Findings\n\n")
	if len(result.KeyFindings) == 0 {
		b.WriteString("_No findings._\n\n")
	}
	for _, f := range result.KeyFindings {
		fmt.Fprintf(&b, "- %s **%s**: %s\n", findingIcons[f.Type], f.Title, f.Description)
	}
	if len(result.KeyFindings) > 0 {
		b.WriteString("\n")
	}

	b.WriteString("## Fact Checks\n\n")
	if len(result.FactChecks) == 0 {
		b.WriteString("_No checkable claims found._\n\n")
	} else {
		b.WriteString("| Claim | Verdict | Explanation |\n|---|---|---|\n")
		for _, fc := range result.FactChecks {
			fmt.Fprintf(&b, "| %s | %s | %s |\n", escapeCell(fc.Claim), fc.Status, escapeCell(fc.Explanation))
		}
		b.WriteString("\n")
	}

	b.WriteString("## Sources\n\n")
	for _, src := range result.Sources {
		fmt.Fprintf(&b, "- [%s](<%s>) (credibility %.1f/10)\n", linkTextEscaper.Replace(src.Title), linkDestEscaper.Replace(src.URL), src.Credibility)
	}

	if r.includeFooter {
		b.WriteString("\n---\n\n")
		b.WriteString("_Scores are produced by fixed heuristics with random noise. They do not reflect real source verification._\n")
	}

	return b.String()
}

// HTML renders the Markdown report to HTML
func (r *Renderer) HTML(result *model.AnalysisResult) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("<!DOCTYPE html>\n<html><head><meta charset=\"utf-8\"><title>TruthLens analysis</title></head><body>\n")
	if err := r.md.Convert([]byte(r.Markdown(result)), &buf); err != nil {
		return nil, fmt.Errorf("render html: %w", err)
	}
	buf.WriteString("</body></html>\n")
	return buf.Bytes(), nil
}

// RenderSummary prints a short summary to w
func (r *Renderer) RenderSummary(w io.Writer, result *model.AnalysisResult) {
	s := result.CredibilityScore
	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(w, "  TruthLens Analysis %s\n", result.ID)
	fmt.Fprintf(w, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "  Overall:            %d/100 (%s)\n", s.Overall, RiskLabel(s.Overall))
	fmt.Fprintf(w, "  Source authority:   %d\n", s.SourceAuthority)
	fmt.Fprintf(w, "  Fact verification:  %d\n", s.FactVerification)
	fmt.Fprintf(w, "  Language analysis:  %d\n", s.LanguageAnalysis)
	fmt.Fprintf(w, "  Findings:           %d\n", len(result.KeyFindings))
	fmt.Fprintf(w, "  Fact checks:        %d\n", len(result.FactChecks))
	fmt.Fprintf(w, "  Sources:            %d\n", len(result.Sources))
	fmt.Fprintf(w, "\n")
}

// RiskLabel buckets an overall score into the gauge labels
func RiskLabel(overall int) string {
	switch {
	case overall >= 70:
		return "High Credibility"
	case overall >= 50:
		return "Moderate Credibility"
	default:
		return "Low Credibility"
	}
}

// Submitted content and URLs are raw user input and must render as plain text
var (
	markdownEscaper = strings.NewReplacer(
		`\`, `\\`, "`", "\\`", "*", `\*`, "_", `\_`, "[", `\[`, "]", `\]`,
		"(", `\(`, ")", `\)`, "<", `\<`, ">", `\>`, "!", `\!`, "|", `\|`, "~", `\~`, "&", `\&`, "#", `\#`,
	)
	linkDestEscaper = strings.NewReplacer(
		"<", "%3C", ">", "%3E", "(", "%28", ")", "%29",
		" ", "%20", "\t", "%09", "\n", "%0A", "\r", "%0D", `\`, "%5C",
	)
	linkTextEscaper = strings.NewReplacer(`\`, `\\`, "[", `\[`, "]", `\]`, "\n", " ", "\r", " ")
)

func escapeCell(s string) string {
	return strings.ReplaceAll(markdownEscaper.Replace(s), "\n", " ")
}
