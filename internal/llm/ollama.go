package llm

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/ollama/ollama/api"
	"github.com/tahcohcat/maitre/config"
	"github.com/tahcohcat/maitre/internal/logger"
)

type OllamaClient struct {
	client *api.Client
	config *config.OllamaConfig
	logger *logger.Log
}

func NewOllamaClient(cfg *config.OllamaConfig) (*OllamaClient, error) {
	base, err := url.Parse(cfg.URL())
	if err != nil {
		return nil, fmt.Errorf("invalid ollama address %q: %w", cfg.URL(), err)
	}

	return &OllamaClient{
		client: api.NewClient(base, http.DefaultClient),
		config: cfg,
		logger: logger.New(),
	}, nil
}

func (c *OllamaClient) Chat(ctx context.Context, messages []Message, onDelta func(delta string)) (string, error) {

	shouldStream := onDelta != nil

	chatMessages := make([]api.Message, len(messages))
	for i, m := range messages {
		chatMessages[i] = api.Message{Role: m.Role, Content: m.Content}
	}

	req := &api.ChatRequest{
		Model:    c.config.Model,
		Messages: chatMessages,
		Stream:   &shouldStream,
		Options: map[string]interface{}{
			"temperature": 0.7,
			"top_p":       0.9,
		},
	}

	// Create context with timeout
	timeoutCtx, cancel := context.WithTimeout(ctx, time.Duration(c.config.Timeout)*time.Second)
	defer cancel()

	c.logger.Debug(fmt.Sprintf("Generating reply with model %s", c.config.Model))

	var reply string

	f := func(r api.ChatResponse) error {
		if r.Message.Content != "" {
			reply += r.Message.Content
			if onDelta != nil {
				onDelta(r.Message.Content)
			}
		}
		return nil
	}

	err := c.client.Chat(timeoutCtx, req, f)
	if err != nil {
		c.logger.WithError(err).Error("Failed to generate reply")
		return "", fmt.Errorf("ollama chat failed: %w", err)
	}

	return reply, nil
}

// Ping reports whether the Ollama server is reachable.
func (c *OllamaClient) Ping(ctx context.Context) error {
	if _, err := c.client.Version(ctx); err != nil {
		return fmt.Errorf("ollama not reachable at %s: %w", c.config.URL(), err)
	}
	return nil
}

func (c *OllamaClient) IsModelAvailable(ctx context.Context) error {
	models, err := c.client.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list models: %w", err)
	}

	for _, model := range models.Models {
		if model.Name == c.config.Model {
			return nil
		}
	}

	return fmt.Errorf("model %s not found. Available models: %v", c.config.Model, modelNames(models.Models))
}

func modelNames(models []api.ListModelResponse) []string {
	names := make([]string, len(models))
	for i, model := range models {
		names[i] = model.Name
	}
	return names
}
