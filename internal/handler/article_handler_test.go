package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/assert/v2"

	"github.com/jessicayin66/newslens/internal/model"
)

type fakeArticleProvider struct {
	articles    []model.Article
	err         error
	gotCategory string
	gotBias     bool
}

func (f *fakeArticleProvider) Articles(ctx context.Context, category string, includeBias bool) ([]model.Article, error) {
	f.gotCategory = category
	f.gotBias = includeBias
	return f.articles, f.err
}

func biasedArticle(title string, cat model.BiasCategory) model.Article {
	return model.Article{
		Title:   title,
		Source:  "AP",
		URL:     "https://example.com/" + title,
		Summary: "summary",
		BiasAnalysis: &model.BiasResult{
			BiasCategory: cat,
			Confidence:   0.5,
			Details:      map[string]float64{"keyword_score": 0},
		},
	}
}

func newArticleRouter(provider ArticleProvider) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewArticleHandler(provider)
	r.GET("/articles", h.GetArticles)
	r.POST("/articles/balanced", h.GetBalancedArticles)
	r.GET("/bias-stats", h.GetBiasStats)
	r.GET("/health", h.GetHealth)
	return r
}

func TestGetArticles_ReturnsArticles(t *testing.T) {
	provider := &fakeArticleProvider{articles: []model.Article{
		biasedArticle("a", model.BiasNeutral),
		biasedArticle("b", model.BiasLeft),
	}}
	r := newArticleRouter(provider)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/articles?category=technology", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "technology", provider.gotCategory)
	assert.Equal(t, true, provider.gotBias)

	var res []model.Article
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, 2, len(res))
	assert.Equal(t, "a", res[0].Title)
}

func TestGetArticles_UnsupportedCategoryMapsToAll(t *testing.T) {
	provider := &fakeArticleProvider{}
	r := newArticleRouter(provider)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/articles?category=Gardening", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "all", provider.gotCategory)
}

func TestGetArticles_IncludeBiasFalse(t *testing.T) {
	provider := &fakeArticleProvider{}
	r := newArticleRouter(provider)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/articles?include_bias=false", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, false, provider.gotBias)
}

func TestGetArticles_UpstreamError(t *testing.T) {
	provider := &fakeArticleProvider{err: errors.New("upstream down")}
	r := newArticleRouter(provider)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/articles", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadGateway, w.Code)

	var res map[string]string
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.NotEqual(t, "", res["error"])
}

func TestGetBalancedArticles(t *testing.T) {
	var articles []model.Article
	for i := 0; i < 5; i++ {
		articles = append(articles, biasedArticle("l", model.BiasLeft))
	}
	for i := 0; i < 5; i++ {
		articles = append(articles, biasedArticle("n", model.BiasNeutral))
	}
	for i := 0; i < 5; i++ {
		articles = append(articles, biasedArticle("r", model.BiasRight))
	}

	provider := &fakeArticleProvider{articles: articles}
	r := newArticleRouter(provider)

	body, _ := json.Marshal(BalancedArticlesRequest{Category: "all"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/articles/balanced", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var res BalancedArticlesResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, 10, len(res.Articles))
	assert.Equal(t, 15, res.BalanceInfo.TotalAnalyzed)
	assert.Equal(t, 10, res.BalanceInfo.Selected)
}

func TestGetBalancedArticles_InvalidBody(t *testing.T) {
	r := newArticleRouter(&fakeArticleProvider{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/articles/balanced", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetBiasStats_Distribution(t *testing.T) {
	var articles []model.Article
	for i := 0; i < 4; i++ {
		articles = append(articles, biasedArticle("l", model.BiasLeft))
	}
	for i := 0; i < 3; i++ {
		articles = append(articles, biasedArticle("r", model.BiasRight))
	}
	// No bias analysis counts as neutral.
	for i := 0; i < 3; i++ {
		articles = append(articles, model.Article{Title: "n", Source: "AP", URL: "u", Summary: "s"})
	}

	provider := &fakeArticleProvider{articles: articles}
	r := newArticleRouter(provider)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/bias-stats?category=business", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var res BiasStatsResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, "business", res.Category)
	assert.Equal(t, 10, res.TotalAnalyzed)
	assert.Equal(t, 4, res.BiasDistribution["left-leaning"])
	assert.Equal(t, 3, res.BiasDistribution["neutral"])
	assert.Equal(t, 3, res.BiasDistribution["right-leaning"])
	assert.Equal(t, 40.0, res.Percentages["left-leaning"])
	assert.Equal(t, 30.0, res.Percentages["neutral"])
	assert.Equal(t, 30.0, res.Percentages["right-leaning"])
}

func TestGetHealth(t *testing.T) {
	r := newArticleRouter(&fakeArticleProvider{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/health", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var res map[string]string
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, "healthy", res["status"])
}
