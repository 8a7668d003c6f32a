package bias

import (
	"math"

	"github.com/jessicayin66/newslens/internal/model"
)

// DefaultTargetBalance is the selection used when a balanced-articles
// request does not specify one.
func DefaultTargetBalance() map[model.BiasCategory]int {
	return map[model.BiasCategory]int{
		model.BiasLeft:    3,
		model.BiasNeutral: 4,
		model.BiasRight:   3,
	}
}

// categoryOf treats articles without a bias analysis as neutral.
func categoryOf(a model.Article) model.BiasCategory {
	if a.BiasAnalysis == nil {
		return model.BiasNeutral
	}
	return a.BiasAnalysis.BiasCategory
}

// BalanceArticles selects up to target[category] articles per bias category,
// preserving input order within each category.
func BalanceArticles(articles []model.Article, target map[model.BiasCategory]int) []model.Article {
	if len(target) == 0 {
		target = DefaultTargetBalance()
	}

	groups := map[model.BiasCategory][]model.Article{}
	for _, a := range articles {
		cat := categoryOf(a)
		groups[cat] = append(groups[cat], a)
	}

	var balanced []model.Article
	for _, cat := range []model.BiasCategory{model.BiasLeft, model.BiasNeutral, model.BiasRight} {
		count := target[cat]
		available := groups[cat]
		if count > len(available) {
			count = len(available)
		}
		balanced = append(balanced, available[:count]...)
	}

	return balanced
}

// Distribution counts articles per bias category. Articles with no bias
// analysis count as neutral.
func Distribution(articles []model.Article) map[model.BiasCategory]int {
	dist := map[model.BiasCategory]int{
		model.BiasLeft:    0,
		model.BiasNeutral: 0,
		model.BiasRight:   0,
	}
	for _, a := range articles {
		dist[categoryOf(a)]++
	}
	return dist
}

// Percentages converts a distribution to whole percentages, each rounded
// independently; the values may not sum to exactly 100.
func Percentages(dist map[model.BiasCategory]int) map[model.BiasCategory]float64 {
	total := 0
	for _, n := range dist {
		total += n
	}

	pct := make(map[model.BiasCategory]float64, len(dist))
	for cat, n := range dist {
		if total == 0 {
			pct[cat] = 0
			continue
		}
		pct[cat] = math.Round(float64(n) / float64(total) * 100)
	}
	return pct
}
