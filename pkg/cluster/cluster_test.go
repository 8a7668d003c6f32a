package cluster

import (
	"context"
	"errors"
	"testing"

	"github.com/go-playground/assert/v2"

	"github.com/jessicayin66/newslens/internal/model"
)

type fakeEmbedder struct {
	vectors [][]float64
	err     error
}

func (f *fakeEmbedder) Embed(ctx context.Context, texts []string) ([][]float64, error) {
	return f.vectors, f.err
}

func article(title string) model.Article {
	return model.Article{Title: title, Source: "s", URL: "https://example.com/" + title, Summary: title}
}

func assertTotalPartition(t *testing.T, clusters []model.TopicCluster, input []model.Article) {
	t.Helper()

	seen := map[string]int{}
	total := 0
	for _, c := range clusters {
		total += len(c.Articles)
		for _, a := range c.Articles {
			seen[a.URL]++
		}
	}

	assert.Equal(t, len(input), total)
	for _, a := range input {
		assert.Equal(t, 1, seen[a.URL])
	}
}

func TestCluster_EmbeddingGroups(t *testing.T) {
	articles := []model.Article{
		article("fed rates one"),
		article("fed rates two"),
		article("fed rates three"),
		article("mars rover"),
	}

	embedder := &fakeEmbedder{vectors: [][]float64{
		{1, 0, 0},
		{0.99, 0.05, 0},
		{0.98, 0.1, 0},
		{0, 1, 0},
	}}

	clusters := New(embedder).Cluster(context.Background(), articles)

	assert.Equal(t, 2, len(clusters))
	assert.Equal(t, 3, len(clusters[0].Articles))
	assert.Equal(t, 1, len(clusters[1].Articles))
	assertTotalPartition(t, clusters, articles)
}

func TestCluster_OrderedBySizeDescending(t *testing.T) {
	articles := []model.Article{
		article("solo story"),
		article("big story a"),
		article("big story b"),
	}

	embedder := &fakeEmbedder{vectors: [][]float64{
		{0, 1},
		{1, 0},
		{1, 0.01},
	}}

	clusters := New(embedder).Cluster(context.Background(), articles)

	assert.Equal(t, 2, len(clusters))
	assert.Equal(t, true, len(clusters[0].Articles) >= len(clusters[1].Articles))
	assert.Equal(t, 0, clusters[0].ID)
	assert.Equal(t, 1, clusters[1].ID)
}

func TestCluster_EmbedFailureFallsBackToKeywords(t *testing.T) {
	articles := []model.Article{
		article("budget vote delayed in senate budget talks"),
		article("budget deal reached after budget standoff"),
		article("championship game ends in overtime thriller"),
	}

	embedder := &fakeEmbedder{err: errors.New("embeddings unavailable")}

	clusters := New(embedder).Cluster(context.Background(), articles)

	assert.Equal(t, true, len(clusters) >= 1)
	assertTotalPartition(t, clusters, articles)
}

func TestCluster_NoEmbedderStillTotal(t *testing.T) {
	articles := []model.Article{
		article("election results certified statewide"),
		article("election recount requested by campaign"),
		article("storm warning issued for coastal region"),
	}

	clusters := New(nil).Cluster(context.Background(), articles)
	assertTotalPartition(t, clusters, articles)
}

func TestCluster_EmptyInput(t *testing.T) {
	clusters := New(nil).Cluster(context.Background(), nil)
	assert.Equal(t, 0, len(clusters))
}

func TestCluster_SingleArticle(t *testing.T) {
	articles := []model.Article{article("one story")}
	clusters := New(nil).Cluster(context.Background(), articles)

	assert.Equal(t, 1, len(clusters))
	assert.Equal(t, 1, len(clusters[0].Articles))
}

func TestCosine(t *testing.T) {
	assert.Equal(t, 1.0, cosine([]float64{1, 0}, []float64{1, 0}))
	assert.Equal(t, 0.0, cosine([]float64{1, 0}, []float64{0, 1}))
	assert.Equal(t, 0.0, cosine([]float64{0, 0}, []float64{1, 0}))
	assert.Equal(t, 0.0, cosine([]float64{1}, []float64{1, 0}))
}

func TestTopKeywords(t *testing.T) {
	got := topKeywords("Budget budget BUDGET talks stall as budget deadline nears", 2)

	assert.Equal(t, true, len(got) >= 1)
	assert.Equal(t, "budget", got[0])
}

func TestTopByFrequency_TieBreaksByFirstSeen(t *testing.T) {
	got := topByFrequency([]string{"alpha", "beta", "beta", "alpha", "gamma"}, 3)
	assert.Equal(t, []string{"alpha", "beta", "gamma"}, got)
}

func TestExtractEntities_CapitalizedFallback(t *testing.T) {
	got := extractEntities([]string{
		"Acme Corp announced a merger with Acme Corp rival Globex",
	})

	assert.Equal(t, true, len(got) > 0)
	assert.Equal(t, true, len(got) <= maxEntities)
}
