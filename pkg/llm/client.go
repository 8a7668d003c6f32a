package llm

import "context"

type Classification struct {
	Leaning    string
	Confidence float64
}

// Classifier labels text as left/neutral/right leaning.
type Classifier interface {
	Classify(ctx context.Context, title, text string) (*Classification, error)
}

// Digester produces a short abstractive summary of the input text.
type Digester interface {
	Digest(ctx context.Context, text string, maxSentences int) (string, error)
}

// Embedder converts texts into dense vectors for similarity clustering.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float64, error)
}
