package score

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/ppiankov/truthlens/internal/model"
)

const (
	baseScore       = 70
	shortContentLen = 100

	overallFloor          = 15
	overallCeiling        = 95
	sourceAuthorityFloor  = 10
	factVerificationFloor = 15
	languageAnalysisFloor = 20
)

// Penalty records a rule that lowered the base score
type Penalty struct {
	Rule   string `json:"rule"`
	Points int    `json:"points"`
}

// penaltyRule is a single independent check against the submission
type penaltyRule struct {
	name    string
	points  int
	applies func(in model.AnalysisInput, lower string) bool
}

var penaltyRules = []penaltyRule{
	{
		name:   "sensational_language",
		points: 15,
		applies: func(in model.AnalysisInput, _ string) bool {
			return strings.Contains(in.Content, "!")
		},
	},
	{
		name:   "no_source_links",
		points: 10,
		applies: func(in model.AnalysisInput, _ string) bool {
			return in.Type == model.ContentTypeText && !HasLink(in.Content)
		},
	},
	{
		name:   "too_short",
		points: 20,
		applies: func(in model.AnalysisInput, _ string) bool {
			return ContentLength(in.Content) < shortContentLen
		},
	},
	{
		name:   "sensational_claims",
		points: 25,
		applies: func(_ model.AnalysisInput, lower string) bool {
			return containsAny(lower, "breaking", "overnight", "revolutionary")
		},
	},
}

// Breakdown is the scorer output. Overall keeps the unrounded value that
// the finding rules compare against.
type Breakdown struct {
	Score     model.CredibilityScore
	Base      int
	Penalties []Penalty
	Overall   float64
}

// Scorer derives credibility scores from a submission
type Scorer struct {
	rng Rand
}

// NewScorer creates a new scorer drawing noise from rng
func NewScorer(rng Rand) *Scorer {
	return &Scorer{rng: rng}
}

// Calculate scores the submission. Draw order is fixed: overall, source
// authority, fact verification, language analysis.
func (s *Scorer) Calculate(in model.AnalysisInput) Breakdown {
	lower := strings.ToLower(in.Content)

	base := baseScore
	var penalties []Penalty
	for _, rule := range penaltyRules {
		if rule.applies(in, lower) {
			base -= rule.points
			penalties = append(penalties, Penalty{Rule: rule.name, Points: rule.points})
		}
	}

	overall := clamp(float64(base)+Uniform(s.rng, -10, 10), overallFloor, overallCeiling)

	// Derived parts only have floors; values above 100 are kept as-is.
	sourceAuthority := math.Max(sourceAuthorityFloor, overall-20+Uniform(s.rng, 0, 15))
	factVerification := math.Max(factVerificationFloor, overall-10+Uniform(s.rng, 0, 20))
	languageAnalysis := math.Max(languageAnalysisFloor, overall+10+Uniform(s.rng, 0, 15))

	return Breakdown{
		Score: model.CredibilityScore{
			Overall:          Round(overall),
			SourceAuthority:  Round(sourceAuthority),
			FactVerification: Round(factVerification),
			LanguageAnalysis: Round(languageAnalysis),
		},
		Base:      base,
		Penalties: penalties,
		Overall:   overall,
	}
}

// HasLink reports whether content carries an http:// or https:// link
func HasLink(content string) bool {
	return strings.Contains(content, "http://") || strings.Contains(content, "https://")
}

// ContentLength counts characters, not bytes
func ContentLength(content string) int {
	return utf8.RuneCountInString(content)
}

// Round rounds to the nearest integer, halves going up
func Round(v float64) int {
	return int(math.Floor(v + 0.5))
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func containsAny(s string, needles ...string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
