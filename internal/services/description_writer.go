package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/sashabaranov/go-openai"
	"google.golang.org/api/option"
)

// DescriptionWriter drafts a short catalogue description for a place.
type DescriptionWriter interface {
	Describe(ctx context.Context, name, city, category string) (string, error)
}

const describeTimeout = 30 * time.Second

func describePrompt(name, city, category, country string) string {
	place := name
	if city != "" {
		place += ", " + city
	}
	if country != "" {
		place += ", " + country
	}
	return fmt.Sprintf(
		"Write a two sentence description for a tourism website of this %s: %s. "+
			"Plain text only, no markdown, no quotes, no invented prices or opening hours.",
		strings.TrimSuffix(category, "s"), place,
	)
}

func cleanDescription(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, "\"")
	return strings.TrimSpace(s)
}

type OpenAIDescriptionWriter struct {
	client  *openai.Client
	model   string
	country string
}

func NewOpenAIDescriptionWriter(apiKey, model, country string) *OpenAIDescriptionWriter {
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAIDescriptionWriter{client: openai.NewClient(apiKey), model: model, country: country}
}

func (w *OpenAIDescriptionWriter) Describe(ctx context.Context, name, city, category string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, describeTimeout)
	defer cancel()

	resp, err := w.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: w.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: "You write concise, factual travel copy."},
			{Role: openai.ChatMessageRoleUser, Content: describePrompt(name, city, category, w.country)},
		},
		Temperature: 0.4,
		MaxTokens:   160,
	})
	if err != nil {
		return "", fmt.Errorf("openai: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai: no choices returned")
	}
	out := cleanDescription(resp.Choices[0].Message.Content)
	if out == "" {
		return "", fmt.Errorf("openai: empty description")
	}
	return out, nil
}

type GeminiDescriptionWriter struct {
	client  *genai.Client
	model   string
	country string
}

func NewGeminiDescriptionWriter(ctx context.Context, apiKey, model, country string) (*GeminiDescriptionWriter, error) {
	if model == "" {
		model = "gemini-1.5-flash"
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiDescriptionWriter{client: client, model: model, country: country}, nil
}

func (w *GeminiDescriptionWriter) Describe(ctx context.Context, name, city, category string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, describeTimeout)
	defer cancel()

	m := w.client.GenerativeModel(w.model)
	m.SetTemperature(0.4)
	m.SetMaxOutputTokens(200)

	resp, err := m.GenerateContent(ctx, genai.Text(describePrompt(name, city, category, w.country)))
	if err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini: no content generated")
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			b.WriteString(string(t))
		}
	}
	out := cleanDescription(b.String())
	if out == "" {
		return "", fmt.Errorf("gemini: empty description")
	}
	return out, nil
}

func (w *GeminiDescriptionWriter) Close() error {
	return w.client.Close()
}
