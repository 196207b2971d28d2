package llm

import (
	"context"
	"time"
)

// Message is a single chat turn sent to the model.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request describes one completion call. JSONMode asks the provider to
// constrain the response to a JSON object.
type Request struct {
	Messages    []Message
	Temperature float64
	JSONMode    bool
}

// Client is the outbound contract to the external content/analysis generator.
type Client interface {
	// Complete returns the text content of the first choice.
	Complete(ctx context.Context, req Request) (string, error)
}

// Config carries provider connection settings.
type Config struct {
	APIKey           string
	BaseURL          string
	Model            string
	Timeout          time.Duration
	MaxResponseBytes int64
}

// SystemMessage builds a system-role message.
func SystemMessage(content string) Message {
	return Message{Role: "system", Content: content}
}

// UserMessage builds a user-role message.
func UserMessage(content string) Message {
	return Message{Role: "user", Content: content}
}
