package cluster

import (
	"context"
	"log/slog"
	"math"
	"sort"

	"github.com/jessicayin66/newslens/internal/model"
	"github.com/jessicayin66/newslens/pkg/llm"
)

// Cosine similarity above which an article joins an existing topic cluster.
const similarityThreshold = 0.75

// Clusterer partitions a batch of same-category articles into topic
// clusters. embedder may be nil; keyword grouping is used instead.
type Clusterer struct {
	embedder  llm.Embedder
	threshold float64
}

func New(embedder llm.Embedder) *Clusterer {
	return &Clusterer{embedder: embedder, threshold: similarityThreshold}
}

// Cluster always returns a total, disjoint partition of the input: every
// article lands in exactly one cluster. Clusters are ordered by size
// descending, ties by first-seen order, and IDs are assigned after ordering.
func (c *Clusterer) Cluster(ctx context.Context, articles []model.Article) []model.TopicCluster {
	if len(articles) == 0 {
		return []model.TopicCluster{}
	}

	var groups [][]int
	if c.embedder != nil {
		texts := make([]string, len(articles))
		for i, a := range articles {
			texts[i] = a.Title + " " + a.Summary
		}

		vectors, err := c.embedder.Embed(ctx, texts)
		if err != nil {
			slog.Warn("embedding failed, falling back to keyword grouping", "error", err)
		} else {
			groups = embeddingGroups(vectors, c.threshold)
		}
	}

	if groups == nil {
		groups = keywordGroups(articles)
	}

	if len(groups) == 0 {
		// Terminal fallback: one cluster holding everything.
		all := make([]int, len(articles))
		for i := range all {
			all[i] = i
		}
		groups = [][]int{all}
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return len(groups[i]) > len(groups[j])
	})

	clusters := make([]model.TopicCluster, 0, len(groups))
	for id, indices := range groups {
		members := make([]model.Article, 0, len(indices))
		texts := make([]string, 0, len(indices))
		for _, idx := range indices {
			members = append(members, articles[idx])
			texts = append(texts, articles[idx].Title+" "+articles[idx].Summary)
		}

		clusters = append(clusters, model.TopicCluster{
			ID:          id,
			Articles:    members,
			KeyEntities: extractEntities(texts),
		})
	}

	return clusters
}

// embeddingGroups assigns each article to the nearest cluster centroid when
// similarity clears the threshold, otherwise starts a new cluster. Centroids
// are running means.
func embeddingGroups(vectors [][]float64, threshold float64) [][]int {
	var groups [][]int
	var centroids [][]float64

	for i, v := range vectors {
		best := -1
		bestSim := threshold

		for g, centroid := range centroids {
			if sim := cosine(v, centroid); sim >= bestSim {
				best = g
				bestSim = sim
			}
		}

		if best == -1 {
			groups = append(groups, []int{i})
			centroids = append(centroids, append([]float64(nil), v...))
			continue
		}

		groups[best] = append(groups[best], i)
		n := float64(len(groups[best]))
		centroid := centroids[best]
		for d := range centroid {
			centroid[d] += (v[d] - centroid[d]) / n
		}
	}

	return groups
}

func cosine(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// keywordGroups buckets articles by their top title/summary keywords. An
// article joins the first existing bucket keyed by one of its top three
// keywords; otherwise it opens a new bucket. Articles with no usable
// keywords share a single bucket so the partition stays total.
func keywordGroups(articles []model.Article) [][]int {
	buckets := map[string][]int{}
	var order []string

	for i, a := range articles {
		keywords := topKeywords(a.Title+" "+a.Summary, 3)

		key := ""
		for _, kw := range keywords {
			if _, ok := buckets[kw]; ok {
				key = kw
				break
			}
		}
		if key == "" && len(keywords) > 0 {
			key = keywords[0]
		}

		if _, ok := buckets[key]; !ok {
			order = append(order, key)
		}
		buckets[key] = append(buckets[key], i)
	}

	groups := make([][]int, 0, len(order))
	for _, key := range order {
		groups = append(groups, buckets[key])
	}
	return groups
}
