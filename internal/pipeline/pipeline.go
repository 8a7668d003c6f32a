package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jessicayin66/newslens/db"
	"github.com/jessicayin66/newslens/internal/model"
	"github.com/jessicayin66/newslens/pkg/bias"
	"github.com/jessicayin66/newslens/pkg/news"
	"github.com/jessicayin66/newslens/pkg/summarize"
)

const (
	defaultConcurrency = 8
	defaultFetchLimit  = 50
	fetchCacheTTL      = 15 * time.Minute
	summarySentences   = 3
)

// Pipeline runs the per-request fetch and annotation flow: upstream fetch
// (optionally cached), then concurrent per-article summarization and bias
// analysis.
type Pipeline struct {
	source      news.Source
	summarizer  *summarize.Summarizer
	analyzer    *bias.Analyzer
	concurrency int
	fetchLimit  int
}

func New(source news.Source, summarizer *summarize.Summarizer, analyzer *bias.Analyzer) *Pipeline {
	return &Pipeline{
		source:      source,
		summarizer:  summarizer,
		analyzer:    analyzer,
		concurrency: defaultConcurrency,
		fetchLimit:  defaultFetchLimit,
	}
}

// Articles fetches and annotates one category batch.
func (p *Pipeline) Articles(ctx context.Context, category string, includeBias bool) ([]model.Article, error) {
	raws, err := p.Fetch(ctx, category)
	if err != nil {
		return nil, err
	}
	return p.Annotate(ctx, raws, includeBias), nil
}

// Fetch pulls raw articles for a category, serving from the short-TTL cache
// when possible. Cache problems degrade to a direct upstream fetch.
func (p *Pipeline) Fetch(ctx context.Context, category string) ([]news.RawArticle, error) {
	key := db.ArticleCacheKey + category

	cached, ok, err := db.CacheGet(ctx, key)
	if err != nil {
		slog.Warn("article cache read failed", "category", category, "error", err)
	} else if ok {
		var raws []news.RawArticle
		if err := json.Unmarshal([]byte(cached), &raws); err == nil {
			return raws, nil
		}
		slog.Warn("discarding malformed article cache entry", "category", category)
	}

	raws, err := p.source.Fetch(ctx, category, p.fetchLimit)
	if err != nil {
		return nil, fmt.Errorf("fetching %s articles: %w", category, err)
	}

	if data, err := json.Marshal(raws); err == nil {
		if err := db.CacheSet(ctx, key, string(data), fetchCacheTTL); err != nil {
			slog.Warn("article cache write failed", "category", category, "error", err)
		}
	}

	return raws, nil
}

// Annotate summarizes and bias-scores each article. Articles are independent,
// so annotation runs on a bounded worker pool; output order matches input
// order. A failed annotation degrades that article's fields, never the batch.
func (p *Pipeline) Annotate(ctx context.Context, raws []news.RawArticle, includeBias bool) []model.Article {
	if len(raws) == 0 {
		return []model.Article{}
	}

	articles := make([]model.Article, len(raws))
	jobs := make(chan int, len(raws))

	var wg sync.WaitGroup
	for w := 0; w < p.concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				articles[i] = p.annotateOne(ctx, raws[i], includeBias)
			}
		}()
	}

	for i := range raws {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return articles
}

func (p *Pipeline) annotateOne(ctx context.Context, raw news.RawArticle, includeBias bool) model.Article {
	text := raw.Content
	if text == "" {
		text = raw.Description
	}

	summary := p.summarizer.Summarize(ctx, text, summarySentences)
	if summary == "" {
		summary = raw.Description
	}

	source := raw.Source
	if source == "" {
		source = p.source.Name()
	}

	article := model.Article{
		Title:   raw.Title,
		Source:  source,
		URL:     raw.URL,
		Summary: summary,
	}

	if includeBias {
		result := p.analyzer.Analyze(ctx, raw.Title, text)
		article.BiasAnalysis = &result
	}

	return article
}
