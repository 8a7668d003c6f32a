package model

import "strings"

type BiasCategory string

const (
	BiasLeft    BiasCategory = "left-leaning"
	BiasNeutral BiasCategory = "neutral"
	BiasRight   BiasCategory = "right-leaning"
)

// SupportedCategories are the news categories the upstream API accepts.
// "all" means no category filter.
var SupportedCategories = []string{
	"business", "entertainment", "health", "science", "sports", "technology",
}

// NormalizeCategory lowercases the input and maps anything outside the
// supported set to "all".
func NormalizeCategory(category string) string {
	category = strings.ToLower(strings.TrimSpace(category))
	for _, c := range SupportedCategories {
		if category == c {
			return c
		}
	}
	return "all"
}

type BiasResult struct {
	BiasScore    float64            `json:"bias_score"`
	BiasCategory BiasCategory       `json:"bias_category"`
	Confidence   float64            `json:"confidence"`
	Details      map[string]float64 `json:"details"`
}

type Article struct {
	Title        string      `json:"title"`
	Source       string      `json:"source"`
	URL          string      `json:"url"`
	Summary      string      `json:"summary"`
	BiasAnalysis *BiasResult `json:"bias_analysis,omitempty"`
}

// TopicCluster groups same-category articles about one underlying story.
// Clusters live for a single request.
type TopicCluster struct {
	ID          int
	Articles    []Article
	KeyEntities []string
}
