package llm

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const classifyPrompt = `You are a media-bias analyst. Given a news article's headline and text, classify its political leaning.

Rules:
1. Judge framing and word choice, not the topic itself
2. "left" = left-leaning framing, "right" = right-leaning framing, "neutral" = balanced or apolitical
3. Confidence reflects how strongly the framing signals a leaning, 0.0 to 1.0

Output JSON only, no other text:
{
  "leaning": "left | neutral | right",
  "confidence": 0.0
}`

type AnthropicClient struct {
	client    *anthropic.Client
	model     anthropic.Model
	modelName string
}

func NewAnthropicClient(apiKey string) *AnthropicClient {
	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	return &AnthropicClient{
		client:    &client,
		model:     anthropic.ModelClaudeHaiku4_5,
		modelName: "claude-4.5-haiku",
	}
}

func (c *AnthropicClient) Classify(ctx context.Context, title, text string) (*Classification, error) {
	userPrompt := fmt.Sprintf("Headline: %s\nText: %s", title, truncate(text, 2000))

	resp, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: 256,
		System: []anthropic.TextBlockParam{
			{Text: classifyPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userPrompt)),
		},
	})

	if err != nil {
		return nil, fmt.Errorf("anthropic API error: %w", err)
	}

	if len(resp.Content) == 0 {
		return nil, fmt.Errorf("no response from anthropic")
	}

	content := cleanJSONResponse(resp.Content[0].Text)

	var parsed struct {
		Leaning    string  `json:"leaning"`
		Confidence float64 `json:"confidence"`
	}

	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w, content: %s", err, content)
	}

	switch parsed.Leaning {
	case "left", "neutral", "right":
	default:
		return nil, fmt.Errorf("unexpected leaning %q", parsed.Leaning)
	}

	return &Classification{
		Leaning:    parsed.Leaning,
		Confidence: parsed.Confidence,
	}, nil
}
