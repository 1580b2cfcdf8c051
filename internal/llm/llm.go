package llm

import (
	"context"
)

// Message is a single turn in the running conversation.
type Message struct {
	Role    string `json:"role"` // "system", "user" or "assistant"
	Content string `json:"content"`
}

// LLM defines the interface for language model providers
type LLM interface {

	// Chat sends the conversation so far and returns the full reply.
	// onDelta, when non-nil, receives reply fragments as they stream in.
	Chat(ctx context.Context, messages []Message, onDelta func(delta string)) (string, error)

	// IsModelAvailable checks if the configured model is available
	IsModelAvailable(ctx context.Context) error
}
