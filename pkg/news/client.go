package news

import (
	"context"
	"time"
)

type RawArticle struct {
	Title       string
	Source      string
	URL         string
	Description string
	Content     string
	PublishedAt time.Time
}

type Source interface {
	Fetch(ctx context.Context, category string, limit int) ([]RawArticle, error)
	Name() string
}
