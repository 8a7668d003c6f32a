package tldr

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/jessicayin66/newslens/db"
	"github.com/jessicayin66/newslens/internal/model"
	"github.com/jessicayin66/newslens/internal/pipeline"
	"github.com/jessicayin66/newslens/pkg/cluster"
	"github.com/jessicayin66/newslens/pkg/summarize"
)

const (
	cacheTTL              = time.Hour
	digestSentences       = 2
	maxMemberSummaryChars = 200
	defaultMinClusterSize = 3
)

// Service produces per-category TL;DR digests and trending topics from
// clustered article batches. Results are cached by (category, date) with a
// short TTL; force-refresh recomputes and overwrites.
type Service struct {
	pipe       *pipeline.Pipeline
	clusterer  *cluster.Clusterer
	summarizer *summarize.Summarizer
	now        func() time.Time
}

func NewService(pipe *pipeline.Pipeline, clusterer *cluster.Clusterer, summarizer *summarize.Summarizer) *Service {
	return &Service{
		pipe:       pipe,
		clusterer:  clusterer,
		summarizer: summarizer,
		now:        time.Now,
	}
}

func (s *Service) CategoryTLDR(ctx context.Context, category string, forceRefresh bool) model.TLDRResponse {
	category = model.NormalizeCategory(category)
	now := s.now()
	key := db.TLDRCacheKey + category + ":" + now.Format("2006-01-02")

	if !forceRefresh {
		cached, ok, err := db.CacheGet(ctx, key)
		if err != nil {
			slog.Warn("tldr cache read failed", "category", category, "error", err)
		} else if ok {
			var res model.TLDRResponse
			if err := json.Unmarshal([]byte(cached), &res); err == nil {
				slog.Info("serving cached tldr", "category", category)
				return res
			}
			slog.Warn("discarding malformed tldr cache entry", "category", category)
		}
	}

	res := s.compute(ctx, category, now)

	if res.Error == "" {
		if data, err := json.Marshal(res); err == nil {
			if err := db.CacheSet(ctx, key, string(data), cacheTTL); err != nil {
				slog.Warn("tldr cache write failed", "category", category, "error", err)
			}
		}
	}

	return res
}

func (s *Service) compute(ctx context.Context, category string, now time.Time) model.TLDRResponse {
	res := model.TLDRResponse{
		Category:  category,
		Date:      now.Format("2006-01-02"),
		Summaries: []model.TLDRSummary{},
	}

	raws, err := s.pipe.Fetch(ctx, category)
	if err != nil {
		slog.Error("tldr fetch failed", "category", category, "error", err)
		res.Error = err.Error()
		return res
	}

	if len(raws) == 0 {
		res.Error = "No articles found"
		return res
	}

	articles := s.pipe.Annotate(ctx, raws, false)
	clusters := s.clusterer.Cluster(ctx, articles)

	totalArticles := 0
	for _, c := range clusters {
		summary := model.TLDRSummary{
			Rank:         c.ID + 1,
			Summary:      s.digest(ctx, c),
			ArticleCount: len(c.Articles),
			KeyEntities:  c.KeyEntities,
		}
		res.Summaries = append(res.Summaries, summary)
		totalArticles += summary.ArticleCount
	}

	res.TotalClusters = len(clusters)
	res.TotalArticles = totalArticles
	res.GeneratedAt = now.Format(time.RFC3339Nano)

	slog.Info("generated tldr", "category", category, "clusters", res.TotalClusters, "articles", res.TotalArticles)
	return res
}

// digest builds one short multi-sentence summary for a cluster. A cluster
// whose combined text defeats the summarizer falls back to its most
// descriptive title.
func (s *Service) digest(ctx context.Context, c model.TopicCluster) string {
	if len(c.Articles) == 1 {
		a := c.Articles[0]
		if a.Summary != "" {
			return a.Summary
		}
		return a.Title
	}

	var sb strings.Builder
	for _, a := range c.Articles {
		sb.WriteString(a.Title)
		sb.WriteString(". ")
		if a.Summary != "" {
			summary := a.Summary
			if len(summary) > maxMemberSummaryChars {
				summary = summary[:maxMemberSummaryChars]
			}
			sb.WriteString(summary)
			sb.WriteString(" ")
		}
	}

	if digest := s.summarizer.Summarize(ctx, sb.String(), digestSentences); digest != "" {
		return digest
	}

	return longestTitle(c.Articles)
}

func longestTitle(articles []model.Article) string {
	best := ""
	for _, a := range articles {
		if len(a.Title) > len(best) {
			best = a.Title
		}
	}
	return best
}

// AllTLDR aggregates per-category digests across every supported category.
func (s *Service) AllTLDR(ctx context.Context, forceRefresh bool) model.AllTLDRResponse {
	categories := append([]string{"all"}, model.SupportedCategories...)
	now := s.now()

	res := model.AllTLDRResponse{
		Date:            now.Format("2006-01-02"),
		GeneratedAt:     now.Format(time.RFC3339Nano),
		TotalCategories: len(categories),
		Categories:      make(map[string]model.TLDRResponse, len(categories)),
	}

	for _, category := range categories {
		categoryRes := s.CategoryTLDR(ctx, category, forceRefresh)
		res.Categories[category] = categoryRes
		res.TotalArticles += categoryRes.TotalArticles
		res.TotalClusters += categoryRes.TotalClusters
	}

	return res
}

// Trending surfaces clusters large enough to count as trending topics.
// Trending always looks at fresh data.
func (s *Service) Trending(ctx context.Context, category string, minClusterSize int) model.TrendingResponse {
	category = model.NormalizeCategory(category)
	if minClusterSize <= 0 {
		minClusterSize = defaultMinClusterSize
	}

	res := model.TrendingResponse{
		Category:       category,
		TrendingTopics: []model.TrendingTopic{},
	}

	tldrRes := s.CategoryTLDR(ctx, category, true)
	if tldrRes.Error != "" {
		res.Error = tldrRes.Error
		return res
	}

	for _, summary := range tldrRes.Summaries {
		if summary.ArticleCount < minClusterSize {
			continue
		}
		res.TrendingTopics = append(res.TrendingTopics, model.TrendingTopic{
			Topic:        summary.Summary,
			ArticleCount: summary.ArticleCount,
			KeyEntities:  summary.KeyEntities,
			Rank:         summary.Rank,
		})
	}

	res.Count = len(res.TrendingTopics)
	return res
}

func (s *Service) ClearCache(ctx context.Context) (int, error) {
	return db.CacheDeleteByPrefix(ctx, db.TLDRCacheKey)
}

func (s *Service) CacheStats(ctx context.Context) (model.CacheStats, error) {
	count, err := db.CacheCount(ctx, db.TLDRCacheKey)
	if err != nil {
		return model.CacheStats{}, err
	}

	return model.CacheStats{
		TotalEntries:  count,
		CacheTTLHours: cacheTTL.Hours(),
		Enabled:       db.CacheEnabled(),
	}, nil
}
