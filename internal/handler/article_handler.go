package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jessicayin66/newslens/internal/model"
	"github.com/jessicayin66/newslens/pkg/bias"
)

type ArticleProvider interface {
	Articles(ctx context.Context, category string, includeBias bool) ([]model.Article, error)
}

type ArticleHandler struct {
	provider ArticleProvider
}

func NewArticleHandler(provider ArticleProvider) *ArticleHandler {
	return &ArticleHandler{provider: provider}
}

func (h *ArticleHandler) GetArticles(c *gin.Context) {
	category := model.NormalizeCategory(c.DefaultQuery("category", "all"))
	includeBias := getQueryBool("include_bias", true, c)

	articles, err := h.provider.Articles(c.Request.Context(), category, includeBias)
	if err != nil {
		slog.Error("error fetching articles", "category", category, "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch articles from upstream"})
		return
	}

	if articles == nil {
		articles = []model.Article{}
	}

	c.JSON(http.StatusOK, articles)
}

func (h *ArticleHandler) GetBalancedArticles(c *gin.Context) {
	var req BalancedArticlesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("invalid balanced articles request", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	category := model.NormalizeCategory(req.Category)

	articles, err := h.provider.Articles(c.Request.Context(), category, true)
	if err != nil {
		slog.Error("error fetching articles for balance", "category", category, "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch articles from upstream"})
		return
	}

	target := map[model.BiasCategory]int{}
	for name, count := range req.TargetBalance {
		target[model.BiasCategory(name)] = count
	}
	if len(target) == 0 {
		target = bias.DefaultTargetBalance()
	}

	balanced := bias.BalanceArticles(articles, target)
	if balanced == nil {
		balanced = []model.Article{}
	}

	targetOut := make(map[string]int, len(target))
	for cat, count := range target {
		targetOut[string(cat)] = count
	}

	c.JSON(http.StatusOK, BalancedArticlesResponse{
		Articles: balanced,
		BalanceInfo: BalanceInfo{
			TotalAnalyzed: len(articles),
			Selected:      len(balanced),
			TargetBalance: targetOut,
		},
	})
}

func (h *ArticleHandler) GetBiasStats(c *gin.Context) {
	category := model.NormalizeCategory(c.DefaultQuery("category", "all"))

	articles, err := h.provider.Articles(c.Request.Context(), category, true)
	if err != nil {
		slog.Error("error fetching articles for bias stats", "category", category, "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch articles from upstream"})
		return
	}

	dist := bias.Distribution(articles)
	pct := bias.Percentages(dist)

	distOut := make(map[string]int, len(dist))
	pctOut := make(map[string]float64, len(pct))
	total := 0
	for cat, count := range dist {
		distOut[string(cat)] = count
		pctOut[string(cat)] = pct[cat]
		total += count
	}

	c.JSON(http.StatusOK, BiasStatsResponse{
		Category:         category,
		BiasDistribution: distOut,
		Percentages:      pctOut,
		TotalAnalyzed:    total,
	})
}

func (h *ArticleHandler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   "newslens-api",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func getQueryBool(name string, defaultValue bool, c *gin.Context) bool {
	raw := c.Query(name)
	if raw == "" {
		return defaultValue
	}

	parsed, err := strconv.ParseBool(raw)
	if err != nil {
		slog.Warn("invalid query parameter, using default", "param", name, "value", raw, "error", err)
		return defaultValue
	}
	return parsed
}

func getQueryInt(name string, defaultValue int, c *gin.Context) int {
	raw := c.Query(name)
	if raw == "" {
		return defaultValue
	}

	parsed, err := strconv.Atoi(raw)
	if err != nil {
		slog.Warn("invalid query parameter, using default", "param", name, "value", raw, "error", err)
		return defaultValue
	}
	return parsed
}
