package model

type TLDRSummary struct {
	Rank         int      `json:"rank"`
	Summary      string   `json:"summary"`
	ArticleCount int      `json:"article_count"`
	KeyEntities  []string `json:"key_entities"`
}

type TLDRResponse struct {
	Category      string        `json:"category"`
	Date          string        `json:"date"`
	TotalClusters int           `json:"total_clusters"`
	TotalArticles int           `json:"total_articles"`
	Summaries     []TLDRSummary `json:"summaries"`
	GeneratedAt   string        `json:"generated_at,omitempty"`
	Error         string        `json:"error,omitempty"`
}

type AllTLDRResponse struct {
	Date            string                  `json:"date"`
	GeneratedAt     string                  `json:"generated_at"`
	TotalCategories int                     `json:"total_categories"`
	TotalArticles   int                     `json:"total_articles"`
	TotalClusters   int                     `json:"total_clusters"`
	Categories      map[string]TLDRResponse `json:"categories"`
}

type TrendingTopic struct {
	Topic        string   `json:"topic"`
	ArticleCount int      `json:"article_count"`
	KeyEntities  []string `json:"key_entities"`
	Rank         int      `json:"rank"`
}

type TrendingResponse struct {
	Category       string          `json:"category"`
	TrendingTopics []TrendingTopic `json:"trending_topics"`
	Count          int             `json:"count"`
	Error          string          `json:"error,omitempty"`
}

type CacheStats struct {
	TotalEntries  int     `json:"total_entries"`
	CacheTTLHours float64 `json:"cache_ttl_hours"`
	Enabled       bool    `json:"enabled"`
}
