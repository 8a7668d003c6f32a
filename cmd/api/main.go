package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/jessicayin66/newslens/db"
	"github.com/jessicayin66/newslens/internal/handler"
	"github.com/jessicayin66/newslens/internal/pipeline"
	"github.com/jessicayin66/newslens/internal/tldr"
	"github.com/jessicayin66/newslens/pkg/bias"
	"github.com/jessicayin66/newslens/pkg/cluster"
	"github.com/jessicayin66/newslens/pkg/llm"
	"github.com/jessicayin66/newslens/pkg/news"
	"github.com/jessicayin66/newslens/pkg/summarize"
)

func main() {

	godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	newsAPIKey := os.Getenv("NEWSAPI_KEY")
	if newsAPIKey == "" {
		log.Fatal("NEWSAPI_KEY environment variable is not set")
	}

	if err := db.ConnectRedis(); err != nil {
		slog.Warn("Redis unavailable, caching disabled", "error", err)
	}
	defer db.CloseRedis()

	var classifier llm.Classifier
	if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
		classifier = llm.NewAnthropicClient(key)
	} else {
		slog.Warn("ANTHROPIC_API_KEY not set, bias model signal disabled")
	}

	var digester llm.Digester
	var embedder llm.Embedder
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		client := llm.NewOpenAIClient(key)
		digester = client
		embedder = client
	} else {
		slog.Warn("OPENAI_API_KEY not set, abstractive summaries and embedding clusters disabled")
	}

	source := news.NewNewsAPIClient(newsAPIKey)
	analyzer := bias.NewAnalyzer(classifier)
	summarizer := summarize.New(digester)
	clusterer := cluster.New(embedder)

	pipe := pipeline.New(source, summarizer, analyzer)
	digests := tldr.NewService(pipe, clusterer, summarizer)

	articleHandler := handler.NewArticleHandler(pipe)
	tldrHandler := handler.NewTLDRHandler(digests)

	r := gin.Default()

	allowedOrigins := []string{"http://localhost:3000"}

	if frontendURL := os.Getenv("FRONTEND_URL"); frontendURL != "" {
		allowedOrigins = append(allowedOrigins, frontendURL)
	}

	slog.Info("AllowOrigins URL:", "urls", allowedOrigins)

	r.Use(cors.New(cors.Config{
		AllowOrigins: allowedOrigins,
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type"},
	}))

	r.GET("/articles", articleHandler.GetArticles)
	r.POST("/articles/balanced", articleHandler.GetBalancedArticles)
	r.GET("/bias-stats", articleHandler.GetBiasStats)
	r.GET("/tldr", tldrHandler.GetAllTLDR)
	r.GET("/tldr/cache-stats", tldrHandler.GetCacheStats)
	r.GET("/tldr/:category", tldrHandler.GetCategoryTLDR)
	r.POST("/tldr/clear-cache", tldrHandler.ClearCache)
	r.GET("/trending/:category", tldrHandler.GetTrending)
	r.GET("/health", articleHandler.GetHealth)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}

	err := r.Run(":" + port)
	if err != nil {
		log.Fatalf("error starting server: %v", err)
	}
}
