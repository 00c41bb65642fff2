package extract

import (
	"strings"
	"unicode/utf8"

	"github.com/ppiankov/truthlens/internal/model"
)

const (
	// MaxFactChecks caps how many claims are checked per submission
	MaxFactChecks = 3

	minClaimLen = 21
)

// verdictRule maps claim keywords to a fixed verdict
type verdictRule struct {
	keywords    []string
	status      model.Verdict
	explanation string
}

// ClaimExtractor pulls candidate claims out of content and classifies them
type ClaimExtractor struct {
	rules    []verdictRule
	fallback verdictRule
}

// NewClaimExtractor creates a new claim extractor with the default rules.
// Rules are tried in order; the first match wins.
func NewClaimExtractor() *ClaimExtractor {
	return &ClaimExtractor{
		rules: []verdictRule{
			{
				keywords:    []string{"overnight", "instantly"},
				status:      model.VerdictFalse,
				explanation: "Claims of instant or overnight solutions are typically unfounded.",
			},
			{
				keywords:    []string{"research", "study"},
				status:      model.VerdictPartial,
				explanation: "Some research exists but may not support all claims made.",
			},
			{
				keywords:    []string{"company", "founded"},
				status:      model.VerdictTrue,
				explanation: "Basic factual information verified through public records.",
			},
		},
		fallback: verdictRule{
			status:      model.VerdictUnverified,
			explanation: "Unable to verify this claim with available sources.",
		},
	}
}

// Extract returns up to MaxFactChecks fact-checks in document order
func (e *ClaimExtractor) Extract(content string) []model.FactCheck {
	checks := []model.FactCheck{}
	for _, claim := range SplitClaims(content) {
		if len(checks) == MaxFactChecks {
			break
		}
		rule := e.classify(claim)
		checks = append(checks, model.FactCheck{
			Claim:       claim,
			Status:      rule.status,
			Explanation: rule.explanation,
		})
	}
	return checks
}

func (e *ClaimExtractor) classify(claim string) verdictRule {
	lower := strings.ToLower(claim)
	for _, rule := range e.rules {
		for _, keyword := range rule.keywords {
			if strings.Contains(lower, keyword) {
				return rule
			}
		}
	}
	return e.fallback
}

// SplitClaims splits content on periods and keeps trimmed segments longer
// than 20 characters
func SplitClaims(content string) []string {
	var claims []string
	for _, segment := range strings.Split(content, ".") {
		claim := strings.TrimSpace(segment)
		if utf8.RuneCountInString(claim) >= minClaimLen {
			claims = append(claims, claim)
		}
	}
	return claims
}
