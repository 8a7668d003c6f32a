package summarize

import (
	"context"
	"log/slog"
	"regexp"
	"sort"
	"strings"

	textrank "github.com/DavidBelicza/TextRank/v2"

	"github.com/jessicayin66/newslens/pkg/llm"
)

const (
	// Inputs shorter than this are returned as-is instead of being ranked.
	shortInputWords = 40
	// Extractive results shorter than this trigger the abstractive fallback.
	minSummaryChars = 30

	defaultSentenceCount = 3
)

var (
	urlPattern        = regexp.MustCompile(`https?://\S+|www\.\S+`)
	emailPattern      = regexp.MustCompile(`\S+@\S+`)
	rankingArtifact   = regexp.MustCompile(`No\.\s*\d+\s*`)
	articlePrefix     = regexp.MustCompile(`^(The|A|An):\s*`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// Summarizer ranks sentences extractively and falls back to an abstractive
// model when the extractive result is too thin. digester may be nil.
type Summarizer struct {
	digester llm.Digester
}

func New(digester llm.Digester) *Summarizer {
	return &Summarizer{digester: digester}
}

// Summarize returns a summary of at most sentenceCount sentences. The
// extractive path is deterministic for identical input. Empty input yields
// an empty string; no error is ever surfaced to the caller.
func (s *Summarizer) Summarize(ctx context.Context, text string, sentenceCount int) string {
	if sentenceCount <= 0 {
		sentenceCount = defaultSentenceCount
	}

	text = cleanText(text)
	if text == "" {
		return ""
	}

	if len(strings.Fields(text)) < shortInputWords {
		return cleanSummaryText(text)
	}

	summary := extractive(text, sentenceCount)

	if len(summary) < minSummaryChars && s.digester != nil {
		digest, err := s.digester.Digest(ctx, text, sentenceCount)
		if err != nil {
			slog.Warn("abstractive summary failed, keeping extractive result", "error", err)
		} else if strings.TrimSpace(digest) != "" {
			return cleanSummaryText(digest)
		}
	}

	if summary == "" {
		summary = firstSentences(text, sentenceCount)
	}

	return cleanSummaryText(summary)
}

// extractive runs TextRank and rebuilds the top sentences in document order.
func extractive(text string, sentenceCount int) (summary string) {
	defer func() {
		// The ranker chokes on some malformed inputs; treat that the same
		// as an empty extractive result.
		if r := recover(); r != nil {
			slog.Warn("sentence ranking failed", "panic", r)
			summary = ""
		}
	}()

	tr := textrank.NewTextRank()
	rule := textrank.NewDefaultRule()
	language := textrank.NewDefaultLanguage()
	algorithm := textrank.NewDefaultAlgorithm()

	tr.Populate(text, language, rule)
	tr.Ranking(algorithm)

	sentences := textrank.FindSentencesByRelationWeight(tr, sentenceCount)
	if len(sentences) == 0 {
		return ""
	}

	sort.Slice(sentences, func(i, j int) bool { return sentences[i].ID < sentences[j].ID })

	parts := make([]string, 0, len(sentences))
	for _, sentence := range sentences {
		parts = append(parts, strings.TrimSpace(sentence.Value))
	}

	return strings.Join(parts, " ")
}

func firstSentences(text string, n int) string {
	sentences := strings.SplitAfter(text, ". ")
	if len(sentences) > n {
		sentences = sentences[:n]
	}
	return strings.TrimSpace(strings.Join(sentences, ""))
}

func cleanText(text string) string {
	text = urlPattern.ReplaceAllString(text, "")
	text = emailPattern.ReplaceAllString(text, "")
	text = whitespacePattern.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// cleanSummaryText strips formatting artifacts the rankers and upstream feeds
// leave behind and capitalizes the first letter.
func cleanSummaryText(text string) string {
	text = rankingArtifact.ReplaceAllString(text, "")
	text = articlePrefix.ReplaceAllString(text, "")
	text = whitespacePattern.ReplaceAllString(text, " ")
	text = strings.TrimSpace(text)

	if text != "" && text[0] >= 'a' && text[0] <= 'z' {
		text = strings.ToUpper(text[:1]) + text[1:]
	}

	return text
}
