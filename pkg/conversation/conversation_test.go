package conversation

import (
	"errors"
	"testing"
)

func TestNewSeedsPrompt(t *testing.T) {
	c := New("", "hello")
	msgs := c.Messages()
	if len(msgs) != 1 || msgs[0].Role != RoleUser || msgs[0].Content != "hello" {
		t.Fatalf("unexpected seed: %+v", msgs)
	}
}

func TestNewWithSystemPrompt(t *testing.T) {
	c := New("be terse", "hello")
	msgs := c.Messages()
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}
	if msgs[0].Role != RoleSystem || msgs[1].Role != RoleUser {
		t.Fatalf("unexpected roles: %s, %s", msgs[0].Role, msgs[1].Role)
	}
}

func TestAppendToolTurnOrdersAssistantBeforeResults(t *testing.T) {
	c := New("", "go")
	asst := Assistant("", ToolCall{ID: "a", Name: "Read"}, ToolCall{ID: "b", Name: "Bash"})

	err := c.AppendToolTurn(asst, []Message{ToolResult("a", "1"), ToolResult("b", "2")})
	if err != nil {
		t.Fatalf("AppendToolTurn: %v", err)
	}

	msgs := c.Messages()
	if len(msgs) != 4 {
		t.Fatalf("expected 4 messages, got %d", len(msgs))
	}
	if msgs[1].Role != RoleAssistant || !msgs[1].HasToolCalls() {
		t.Fatalf("expected assistant tool-call message at index 1, got %+v", msgs[1])
	}
	if msgs[2].ToolCallID != "a" || msgs[3].ToolCallID != "b" {
		t.Fatalf("unexpected result order: %q, %q", msgs[2].ToolCallID, msgs[3].ToolCallID)
	}
}

func TestAppendToolTurnRejectsMismatch(t *testing.T) {
	asst := Assistant("", ToolCall{ID: "a"}, ToolCall{ID: "b"})

	tests := []struct {
		name      string
		assistant Message
		results   []Message
	}{
		{name: "missing result", assistant: asst, results: []Message{ToolResult("a", "")}},
		{name: "swapped order", assistant: asst, results: []Message{ToolResult("b", ""), ToolResult("a", "")}},
		{name: "wrong role", assistant: asst, results: []Message{ToolResult("a", ""), User("b")}},
		{name: "no tool calls", assistant: Assistant("hi"), results: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New("", "go")
			err := c.AppendToolTurn(tt.assistant, tt.results)
			if !errors.Is(err, ErrToolTurnMismatch) {
				t.Fatalf("expected ErrToolTurnMismatch, got %v", err)
			}
			if c.Len() != 1 {
				t.Fatalf("expected nothing appended, got %d messages", c.Len())
			}
		})
	}
}

func TestMessagesReturnsCopy(t *testing.T) {
	c := New("", "original")
	msgs := c.Messages()
	msgs[0].Content = "mutated"

	if c.Messages()[0].Content != "original" {
		t.Fatal("conversation was mutated through Messages()")
	}
}
