package validate

import (
	"strings"

	"github.com/ppiankov/truthlens/internal/model"
	"github.com/ppiankov/truthlens/internal/score"
)

// OriginalSourceTitle is the title given to the submitted URL in the source list
const OriginalSourceTitle = "Original Source"

// topicalSource is appended when the content mentions its keyword
type topicalSource struct {
	keyword string
	source  model.Source
}

// SourceCatalog builds the reference source list for a submission
type SourceCatalog struct {
	base    []model.Source
	topical []topicalSource
	rng     score.Rand
}

// NewSourceCatalog creates a catalog with the default reference sources.
// rng rates the submitted URL for url submissions.
func NewSourceCatalog(rng score.Rand) *SourceCatalog {
	return &SourceCatalog{
		base: []model.Source{
			{URL: "https://www.reuters.com/fact-check/", Title: "Reuters Fact Check Database", Credibility: 9.1},
			{URL: "https://www.snopes.com/", Title: "Snopes Fact-Checking", Credibility: 8.7},
		},
		topical: []topicalSource{
			{keyword: "climate", source: model.Source{URL: "https://climate.gov/", Title: "Climate.gov Official Resource", Credibility: 9.5}},
			{keyword: "health", source: model.Source{URL: "https://www.who.int/", Title: "World Health Organization", Credibility: 9.3}},
		},
		rng: rng,
	}
}

// Sources returns [submitted URL] + base sources + matching topical sources
func (c *SourceCatalog) Sources(in model.AnalysisInput) []model.Source {
	sources := make([]model.Source, 0, len(c.base)+len(c.topical)+1)

	if in.Type == model.ContentTypeURL {
		sources = append(sources, model.Source{
			URL:         in.Content,
			Title:       OriginalSourceTitle,
			Credibility: score.Uniform(c.rng, 3, 8),
		})
	}

	sources = append(sources, c.base...)

	lower := strings.ToLower(in.Content)
	for _, t := range c.topical {
		if strings.Contains(lower, t.keyword) {
			sources = append(sources, t.source)
		}
	}

	return sources
}
