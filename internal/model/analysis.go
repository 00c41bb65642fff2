package model

import (
	"slices"
	"time"
)

// ContentType tags what a submission holds
type ContentType string

const (
	ContentTypeURL  ContentType = "url"
	ContentTypeText ContentType = "text"
)

// Valid reports whether t is one of the accepted content types
func (t ContentType) Valid() bool {
	return t == ContentTypeURL || t == ContentTypeText
}

// AnalysisInput is a single content submission
type AnalysisInput struct {
	Content string      `json:"content"`
	Type    ContentType `json:"type"`
}

// AnalysisResult is the complete, immutable analysis record
type AnalysisResult struct {
	ID               string           `json:"id"`
	Content          string           `json:"content"`
	Type             ContentType      `json:"type"`
	CredibilityScore CredibilityScore `json:"credibilityScore"`
	KeyFindings      []KeyFinding     `json:"keyFindings"`
	FactChecks       []FactCheck      `json:"factChecks"`
	Sources          []Source         `json:"sources"`
	AnalyzedAt       time.Time        `json:"analyzedAt"`
	ProcessingTime   int64            `json:"processingTime"` // Simulated, milliseconds
}

// Clone returns a deep copy so holders of one copy cannot mutate another
func (r *AnalysisResult) Clone() *AnalysisResult {
	if r == nil {
		return nil
	}
	c := *r
	c.KeyFindings = slices.Clone(r.KeyFindings)
	c.FactChecks = slices.Clone(r.FactChecks)
	c.Sources = slices.Clone(r.Sources)
	return &c
}

// CredibilityScore is the four-part score breakdown.
// The parts are derived independently; none is an average of the others.
type CredibilityScore struct {
	Overall          int `json:"overall"`
	SourceAuthority  int `json:"sourceAuthority"`
	FactVerification int `json:"factVerification"`
	LanguageAnalysis int `json:"languageAnalysis"`
}

// FindingType classifies a key finding
type FindingType string

const (
	FindingWarning FindingType = "warning"
	FindingError   FindingType = "error"
	FindingInfo    FindingType = "info"
	FindingSuccess FindingType = "success"
)

// KeyFinding is a short flagged observation about the content
type KeyFinding struct {
	Type        FindingType `json:"type"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
}

// Verdict is the outcome of a single fact-check
type Verdict string

const (
	VerdictTrue       Verdict = "TRUE"
	VerdictFalse      Verdict = "FALSE"
	VerdictPartial    Verdict = "PARTIAL"
	VerdictUnverified Verdict = "UNVERIFIED"
)

// FactCheck is a claim taken from the content with its verdict
type FactCheck struct {
	Claim       string  `json:"claim"`
	Status      Verdict `json:"status"`
	Explanation string  `json:"explanation"`
}

// Source is an external reference with its own credibility rating (0-10)
type Source struct {
	URL         string  `json:"url"`
	Title       string  `json:"title"`
	Credibility float64 `json:"credibility"`
}
