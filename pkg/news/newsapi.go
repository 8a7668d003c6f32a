package news

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const newsAPIPageSize = 50

type NewsAPIClient struct {
	apiKey     string
	httpClient *http.Client
}

func NewNewsAPIClient(apiKey string) *NewsAPIClient {
	return &NewsAPIClient{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *NewsAPIClient) Name() string {
	return "NewsAPI"
}

// Fetch pulls top headlines for a category, paging until limit articles are
// collected or the upstream runs out. category "all" means no category filter.
func (c *NewsAPIClient) Fetch(ctx context.Context, category string, limit int) ([]RawArticle, error) {
	var articles []RawArticle

	for page := 1; len(articles) < limit; page++ {
		batch, total, err := c.fetchPage(ctx, category, page)
		if err != nil {
			return nil, err
		}

		articles = append(articles, batch...)

		if len(batch) == 0 || page*newsAPIPageSize >= total {
			break
		}
	}

	if len(articles) > limit {
		articles = articles[:limit]
	}

	return articles, nil
}

func (c *NewsAPIClient) fetchPage(ctx context.Context, category string, page int) ([]RawArticle, int, error) {
	params := url.Values{}
	params.Set("country", "us")
	params.Set("pageSize", strconv.Itoa(newsAPIPageSize))
	params.Set("page", strconv.Itoa(page))
	params.Set("apiKey", c.apiKey)
	if category != "" && category != "all" {
		params.Set("category", category)
	}

	endpoint := "https://newsapi.org/v2/top-headlines?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("newsapi request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("newsapi fetch: %w", err)
	}
	defer resp.Body.Close()

	var raw newsAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, 0, fmt.Errorf("newsapi decode: %w", err)
	}

	if raw.Status != "ok" {
		return nil, 0, fmt.Errorf("newsapi error: %s (%s)", raw.Message, raw.Code)
	}

	articles := make([]RawArticle, 0, len(raw.Articles))
	for _, item := range raw.Articles {
		if item.Title == "" || item.URL == "" {
			continue
		}

		publishedAt, err := time.Parse(time.RFC3339, item.PublishedAt)
		if err != nil {
			publishedAt = time.Time{}
		}

		content := item.Content
		if content == "" {
			content = item.Description
		}

		articles = append(articles, RawArticle{
			Title:       item.Title,
			Source:      item.Source.Name,
			URL:         item.URL,
			Description: item.Description,
			Content:     content,
			PublishedAt: publishedAt,
		})
	}

	return articles, raw.TotalResults, nil
}

type newsAPIResponse struct {
	Status       string           `json:"status"`
	Code         string           `json:"code"`
	Message      string           `json:"message"`
	TotalResults int              `json:"totalResults"`
	Articles     []newsAPIArticle `json:"articles"`
}

type newsAPIArticle struct {
	Source      newsAPISource `json:"source"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Content     string        `json:"content"`
	URL         string        `json:"url"`
	PublishedAt string        `json:"publishedAt"`
}

type newsAPISource struct {
	Name string `json:"name"`
}
