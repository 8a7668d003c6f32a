package handler

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jessicayin66/newslens/internal/model"
)

type DigestProvider interface {
	CategoryTLDR(ctx context.Context, category string, forceRefresh bool) model.TLDRResponse
	AllTLDR(ctx context.Context, forceRefresh bool) model.AllTLDRResponse
	Trending(ctx context.Context, category string, minClusterSize int) model.TrendingResponse
	ClearCache(ctx context.Context) (int, error)
	CacheStats(ctx context.Context) (model.CacheStats, error)
}

type TLDRHandler struct {
	provider DigestProvider
}

func NewTLDRHandler(provider DigestProvider) *TLDRHandler {
	return &TLDRHandler{provider: provider}
}

// Component failures inside the digest pipeline surface as an error field in
// a 200 response so clients always get the envelope they expect.
func (h *TLDRHandler) GetCategoryTLDR(c *gin.Context) {
	category := c.Param("category")
	forceRefresh := getQueryBool("force_refresh", false, c)

	res := h.provider.CategoryTLDR(c.Request.Context(), category, forceRefresh)
	c.JSON(http.StatusOK, res)
}

func (h *TLDRHandler) GetAllTLDR(c *gin.Context) {
	forceRefresh := getQueryBool("force_refresh", false, c)

	res := h.provider.AllTLDR(c.Request.Context(), forceRefresh)
	c.JSON(http.StatusOK, res)
}

func (h *TLDRHandler) GetTrending(c *gin.Context) {
	category := c.Param("category")
	minClusterSize := getQueryInt("min_cluster_size", 3, c)

	res := h.provider.Trending(c.Request.Context(), category, minClusterSize)
	c.JSON(http.StatusOK, res)
}

func (h *TLDRHandler) ClearCache(c *gin.Context) {
	deleted, err := h.provider.ClearCache(c.Request.Context())
	if err != nil {
		slog.Error("error clearing tldr cache", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Cache error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Cleared %d cached digests", deleted)})
}

func (h *TLDRHandler) GetCacheStats(c *gin.Context) {
	stats, err := h.provider.CacheStats(c.Request.Context())
	if err != nil {
		slog.Error("error reading tldr cache stats", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Cache error"})
		return
	}

	c.JSON(http.StatusOK, stats)
}
