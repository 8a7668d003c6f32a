package bias

import (
	"context"
	"log/slog"
	"math"
	"regexp"
	"strings"

	ahocorasick "github.com/cloudflare/ahocorasick"
	govader "github.com/jonreiter/govader"

	"github.com/jessicayin66/newslens/internal/model"
	"github.com/jessicayin66/newslens/pkg/llm"
)

// Fixed combination weights for the three signals.
const (
	keywordWeight   = 0.4
	sentimentWeight = 0.3
	modelWeight     = 0.3

	categoryThreshold = 0.2
)

var (
	urlPattern        = regexp.MustCompile(`https?://\S+|www\.\S+`)
	nonWordPattern    = regexp.MustCompile(`[^\w\s]`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// Analyzer combines a keyword signal, a sentiment polarity signal and an
// optional model classification signal into one bias result. Safe for
// concurrent use.
type Analyzer struct {
	leftMatcher  *ahocorasick.Matcher
	rightMatcher *ahocorasick.Matcher
	sentiment    *govader.SentimentIntensityAnalyzer
	classifier   llm.Classifier
}

// NewAnalyzer builds the keyword matchers and sentiment analyzer. classifier
// may be nil; the model signal is then skipped.
func NewAnalyzer(classifier llm.Classifier) *Analyzer {
	return &Analyzer{
		leftMatcher:  ahocorasick.NewStringMatcher(leftKeywords),
		rightMatcher: ahocorasick.NewStringMatcher(rightKeywords),
		sentiment:    govader.NewSentimentIntensityAnalyzer(),
		classifier:   classifier,
	}
}

// Analyze never fails: a degraded sub-signal contributes zero and lowers
// confidence instead of propagating an error.
func (a *Analyzer) Analyze(ctx context.Context, title, content string) model.BiasResult {
	text := cleanText(title + ". " + content)
	if text == "" {
		return neutralResult()
	}

	leftHits := len(a.leftMatcher.MatchThreadSafe([]byte(text)))
	rightHits := len(a.rightMatcher.MatchThreadSafe([]byte(text)))

	var keywordScore, keywordStrength float64
	if total := leftHits + rightHits; total > 0 {
		keywordScore = float64(rightHits-leftHits) / float64(total)
		keywordStrength = math.Abs(keywordScore)
	}

	compound := a.sentiment.PolarityScores(text).Compound
	sentimentScore := compound * 0.5

	var modelScore, modelConfidence float64
	if a.classifier != nil {
		cls, err := a.classifier.Classify(ctx, title, content)
		if err != nil {
			slog.Warn("bias model classification failed, degrading to neutral signal", "error", err)
		} else {
			switch cls.Leaning {
			case "left":
				modelScore = -0.5
			case "right":
				modelScore = 0.5
			}
			modelConfidence = cls.Confidence
		}
	}

	score := keywordWeight*keywordScore + sentimentWeight*sentimentScore + modelWeight*modelScore
	score = clamp(score, -1, 1)

	confidence := clamp((keywordStrength+math.Abs(compound)+modelConfidence)/3, 0, 1)

	return model.BiasResult{
		BiasScore:    score,
		BiasCategory: categorize(score),
		Confidence:   confidence,
		Details: map[string]float64{
			"keyword_score":    keywordScore,
			"keywords_matched": float64(leftHits + rightHits),
			"sentiment_score":  sentimentScore,
			"model_score":      modelScore,
			"model_confidence": modelConfidence,
		},
	}
}

func neutralResult() model.BiasResult {
	return model.BiasResult{
		BiasScore:    0,
		BiasCategory: model.BiasNeutral,
		Confidence:   0,
		Details: map[string]float64{
			"keyword_score":    0,
			"keywords_matched": 0,
			"sentiment_score":  0,
			"model_score":      0,
			"model_confidence": 0,
		},
	}
}

func categorize(score float64) model.BiasCategory {
	switch {
	case score < -categoryThreshold:
		return model.BiasLeft
	case score > categoryThreshold:
		return model.BiasRight
	default:
		return model.BiasNeutral
	}
}

func cleanText(text string) string {
	text = urlPattern.ReplaceAllString(text, "")
	text = nonWordPattern.ReplaceAllString(text, " ")
	text = whitespacePattern.ReplaceAllString(text, " ")
	return strings.ToLower(strings.TrimSpace(text))
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
