package cluster

import (
	"regexp"
	"sort"
	"strings"

	prose "github.com/jdkato/prose/v2"
)

const maxEntities = 5

var (
	properNounPattern = regexp.MustCompile(`\b[A-Z][a-z]+(?:\s+[A-Z][a-z]+)*\b`)
	wordPattern       = regexp.MustCompile(`\b[a-zA-Z]{4,}\b`)
)

var stopWords = map[string]bool{
	"this": true, "that": true, "with": true, "from": true, "they": true,
	"have": true, "been": true, "will": true, "said": true, "more": true,
	"than": true, "also": true, "each": true, "which": true, "their": true,
	"time": true, "very": true, "when": true, "much": true, "some": true,
	"these": true, "other": true, "after": true, "first": true, "well": true,
	"year": true, "work": true, "such": true, "make": true, "over": true,
	"think": true, "back": true, "where": true, "before": true, "right": true,
	"same": true, "there": true, "about": true, "many": true, "then": true,
	"them": true, "only": true, "what": true, "through": true, "good": true,
	"want": true, "because": true, "give": true, "most": true, "into": true,
	"would": true, "could": true, "says": true, "news": true,
}

// extractEntities pulls named entities from the cluster's texts and returns
// the most frequent ones. Falls back to capitalized phrases when NER yields
// nothing.
func extractEntities(texts []string) []string {
	joined := strings.Join(texts, " ")

	var names []string
	if doc, err := prose.NewDocument(joined); err == nil {
		for _, ent := range doc.Entities() {
			names = append(names, ent.Text)
		}
	}

	if len(names) == 0 {
		names = properNounPattern.FindAllString(joined, -1)
	}

	return topByFrequency(names, maxEntities)
}

// topKeywords returns up to n of the most frequent meaningful words in text.
func topKeywords(text string, n int) []string {
	words := wordPattern.FindAllString(strings.ToLower(text), -1)

	filtered := make([]string, 0, len(words))
	for _, w := range words {
		if !stopWords[w] {
			filtered = append(filtered, w)
		}
	}

	return topByFrequency(filtered, n)
}

func topByFrequency(items []string, n int) []string {
	counts := map[string]int{}
	firstSeen := map[string]int{}
	for i, item := range items {
		if len(item) <= 2 {
			continue
		}
		if _, ok := counts[item]; !ok {
			firstSeen[item] = i
		}
		counts[item]++
	}

	unique := make([]string, 0, len(counts))
	for item := range counts {
		unique = append(unique, item)
	}

	sort.Slice(unique, func(i, j int) bool {
		if counts[unique[i]] != counts[unique[j]] {
			return counts[unique[i]] > counts[unique[j]]
		}
		return firstSeen[unique[i]] < firstSeen[unique[j]]
	})

	if len(unique) > n {
		unique = unique[:n]
	}
	return unique
}
