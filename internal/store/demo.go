package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ppiankov/truthlens/internal/model"
)

// DemoID always resolves to the canned demonstration result
const DemoID = "demo"

// DemoResult returns the canned demonstration result analyzed at at
func DemoResult(at time.Time) *model.AnalysisResult {
	return &model.AnalysisResult{
		ID:      DemoID,
		Content: "Breaking: Revolutionary new technology promises to solve climate change overnight, according to undisclosed sources from CleanTech Corp. The company claims their breakthrough carbon capture method can reverse decades of environmental damage in a matter of hours.",
		Type:    model.ContentTypeText,
		CredibilityScore: model.CredibilityScore{
			Overall:          35,
			SourceAuthority:  25,
			FactVerification: 40,
			LanguageAnalysis: 67,
		},
		KeyFindings: []model.KeyFinding{
			{
				Type:        model.FindingError,
				Title:       "Unverified Claims",
				Description: `No credible sources found for "overnight climate solution"`,
			},
			{
				Type:        model.FindingWarning,
				Title:       "Missing Context",
				Description: "Article lacks specific details and expert quotes",
			},
			{
				Type:        model.FindingError,
				Title:       "Anonymous Sources",
				Description: "Claims based on undisclosed sources",
			},
		},
		FactChecks: []model.FactCheck{
			{
				Claim:       "Technology can reverse climate change overnight",
				Status:      model.VerdictFalse,
				Explanation: "No scientific evidence supports instantaneous climate reversal claims.",
			},
			{
				Claim:       "New carbon capture methods show promise",
				Status:      model.VerdictPartial,
				Explanation: "Some research exists, but timeline claims are exaggerated.",
			},
			{
				Claim:       "CleanTech Corp founded in 2018",
				Status:      model.VerdictTrue,
				Explanation: "Company registration and basic facts verified.",
			},
		},
		Sources: []model.Source{
			{
				URL:         "https://climate.gov/news-features/understanding-climate/climate-change-carbon-capture",
				Title:       "Climate.gov - Carbon Capture Technologies",
				Credibility: 9.2,
			},
			{
				URL:         "https://ipcc.ch/reports/",
				Title:       "IPCC Climate Change Reports",
				Credibility: 9.8,
			},
			{
				URL:         "https://example-news.com/breaking-news",
				Title:       "Original Article Source",
				Credibility: 3.1,
			},
		},
		AnalyzedAt:     at.UTC(),
		ProcessingTime: 2340,
	}
}

// SeedDemo stores the demo result unless one is already present
func SeedDemo(ctx context.Context, s Store, at time.Time) error {
	if err := s.Put(ctx, DemoResult(at)); err != nil && !errors.Is(err, ErrAlreadyExists) {
		return fmt.Errorf("seed demo result: %w", err)
	}
	return nil
}
