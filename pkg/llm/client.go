// Package llm defines the chat-completion boundary used by the agent loop
// and its OpenAI-compatible implementation.
package llm

import (
	"context"

	"github.com/minhyannv/agent-loop-go/pkg/conversation"
	"github.com/minhyannv/agent-loop-go/pkg/tools"
)

// Request is one chat-completion call: the full conversation plus the tool menu.
type Request struct {
	Messages  []conversation.Message
	Tools     []tools.Definition
	Model     string
	MaxTokens int64
}

// Choice is one candidate completion.
type Choice struct {
	Message      conversation.Message
	FinishReason string
}

// Response holds the ranked choices of one completion.
type Response struct {
	Choices []Choice
}

// ChatClient sends one request and returns one structured response.
type ChatClient interface {
	Complete(ctx context.Context, req Request) (*Response, error)
}
