// Package conversation holds the provider-agnostic message model and the
// append-only conversation state sent to the model on every turn.
package conversation

import (
	"errors"
	"fmt"
)

// Role is the role for a chat message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// ToolCall is a model request to run one tool.
// Arguments is the raw text the model produced, expected to be a JSON object.
type ToolCall struct {
	ID        string
	Name      string
	Arguments string
}

// Message is one entry of the conversation. Role selects which fields apply:
// assistant messages carry Content or ToolCalls, tool messages carry
// ToolCallID and Content.
type Message struct {
	Role       Role
	Content    string
	ToolCalls  []ToolCall
	ToolCallID string
}

func System(text string) Message { return Message{Role: RoleSystem, Content: text} }

func User(text string) Message { return Message{Role: RoleUser, Content: text} }

func Assistant(text string, calls ...ToolCall) Message {
	return Message{Role: RoleAssistant, Content: text, ToolCalls: calls}
}

// ToolResult builds the tool message answering the call with toolCallID.
func ToolResult(toolCallID, content string) Message {
	return Message{Role: RoleTool, ToolCallID: toolCallID, Content: content}
}

// HasToolCalls reports whether the message requests tool execution.
func (m Message) HasToolCalls() bool { return len(m.ToolCalls) > 0 }

// ErrToolTurnMismatch is returned when tool results do not answer the
// assistant's tool calls one-to-one and in order.
var ErrToolTurnMismatch = errors.New("tool results do not match tool calls")

// Conversation is the ordered, append-only list of messages for one run.
// It is owned by a single orchestrator and is not safe for concurrent use.
type Conversation struct {
	messages []Message
}

// New seeds a conversation with an optional system prompt and the user prompt.
func New(systemPrompt, prompt string) *Conversation {
	c := &Conversation{}
	if systemPrompt != "" {
		c.messages = append(c.messages, System(systemPrompt))
	}
	c.messages = append(c.messages, User(prompt))
	return c
}

// Append adds messages at the end of the conversation.
func (c *Conversation) Append(msgs ...Message) {
	c.messages = append(c.messages, msgs...)
}

// AppendToolTurn appends the assistant tool-call message followed by its
// results. Results must answer every call exactly once, in call order;
// otherwise nothing is appended.
func (c *Conversation) AppendToolTurn(assistant Message, results []Message) error {
	if assistant.Role != RoleAssistant || !assistant.HasToolCalls() {
		return fmt.Errorf("%w: assistant message carries no tool calls", ErrToolTurnMismatch)
	}
	if len(results) != len(assistant.ToolCalls) {
		return fmt.Errorf("%w: %d calls, %d results", ErrToolTurnMismatch, len(assistant.ToolCalls), len(results))
	}
	for i, call := range assistant.ToolCalls {
		res := results[i]
		if res.Role != RoleTool || res.ToolCallID != call.ID {
			return fmt.Errorf("%w: result %d answers %q, want %q", ErrToolTurnMismatch, i, res.ToolCallID, call.ID)
		}
	}

	c.messages = append(c.messages, assistant)
	c.messages = append(c.messages, results...)
	return nil
}

// Messages returns a copy of the conversation so callers cannot mutate it.
func (c *Conversation) Messages() []Message {
	out := make([]Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// Len returns the number of messages.
func (c *Conversation) Len() int { return len(c.messages) }
