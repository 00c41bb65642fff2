package score

import (
	"strings"

	"github.com/ppiankov/truthlens/internal/model"
)

const missingLinksMinLen = 200

// Findings generates key findings for content scored at overall.
// Rules are independent; the order below is the display order.
func Findings(content string, overall float64) []model.KeyFinding {
	findings := []model.KeyFinding{}
	lower := strings.ToLower(content)

	if overall < 50 {
		findings = append(findings, model.KeyFinding{
			Type:        model.FindingError,
			Title:       "Low Credibility Score",
			Description: "Content shows multiple indicators of potential misinformation",
		})
	}

	if containsAny(lower, "breaking", "urgent") {
		findings = append(findings, model.KeyFinding{
			Type:        model.FindingWarning,
			Title:       "Sensational Language",
			Description: "Use of urgent or breaking news language without verification",
		})
	}

	if !strings.Contains(content, "http") && ContentLength(content) > missingLinksMinLen {
		findings = append(findings, model.KeyFinding{
			Type:        model.FindingInfo,
			Title:       "Missing Source Links",
			Description: "No external sources or references provided",
		})
	}

	if overall > 70 {
		findings = append(findings, model.KeyFinding{
			Type:        model.FindingSuccess,
			Title:       "Good Language Patterns",
			Description: "Content shows neutral, factual language patterns",
		})
	}

	return findings
}
