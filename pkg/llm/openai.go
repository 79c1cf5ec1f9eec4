package llm

import (
	"context"
	"fmt"

	"github.com/minhyannv/agent-loop-go/pkg/config"
	"github.com/minhyannv/agent-loop-go/pkg/conversation"
	"github.com/minhyannv/agent-loop-go/pkg/tools"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// OpenAIClient talks to any OpenAI-compatible chat completions endpoint,
// OpenRouter by default.
type OpenAIClient struct {
	client openai.Client
}

// NewOpenAIClient builds a client for cfg.BaseURL authenticated with cfg.APIKey.
// SDK retries are disabled: a failed call is fatal to the run.
func NewOpenAIClient(cfg config.Config, extra ...option.RequestOption) *OpenAIClient {
	opts := []option.RequestOption{option.WithMaxRetries(0)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if cfg.APIKey != "" {
		opts = append(opts, option.WithAPIKey(cfg.APIKey))
	}
	opts = append(opts, extra...)
	return &OpenAIClient{client: openai.NewClient(opts...)}
}

// Complete sends req as one non-streaming chat completion.
func (c *OpenAIClient) Complete(ctx context.Context, req Request) (*Response, error) {
	messages, err := toOpenAIMessages(req.Messages)
	if err != nil {
		return nil, err
	}

	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(req.Model),
		Messages: messages,
		Tools:    toOpenAITools(req.Tools),
	}
	if req.MaxTokens > 0 {
		params.MaxCompletionTokens = openai.Int(req.MaxTokens)
	}

	completion, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("chat completion: %w", err)
	}
	return fromOpenAICompletion(completion), nil
}

func toOpenAIMessages(messages []conversation.Message) ([]openai.ChatCompletionMessageParamUnion, error) {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for i, msg := range messages {
		switch msg.Role {
		case conversation.RoleSystem:
			out = append(out, openai.SystemMessage(msg.Content))
		case conversation.RoleUser:
			out = append(out, openai.UserMessage(msg.Content))
		case conversation.RoleAssistant:
			out = append(out, toOpenAIAssistant(msg))
		case conversation.RoleTool:
			out = append(out, openai.ToolMessage(msg.Content, msg.ToolCallID))
		default:
			return nil, fmt.Errorf("invalid message role at index %d: %q", i, msg.Role)
		}
	}
	return out, nil
}

func toOpenAIAssistant(msg conversation.Message) openai.ChatCompletionMessageParamUnion {
	var asst openai.ChatCompletionAssistantMessageParam
	if msg.Content != "" {
		asst.Content.OfString = openai.String(msg.Content)
	}
	for _, call := range msg.ToolCalls {
		asst.ToolCalls = append(asst.ToolCalls, openai.ChatCompletionMessageToolCallParam{
			ID: call.ID,
			Function: openai.ChatCompletionMessageToolCallFunctionParam{
				Name:      call.Name,
				Arguments: call.Arguments,
			},
		})
	}
	return openai.ChatCompletionMessageParamUnion{OfAssistant: &asst}
}

func toOpenAITools(defs []tools.Definition) []openai.ChatCompletionToolParam {
	if len(defs) == 0 {
		return nil
	}
	out := make([]openai.ChatCompletionToolParam, 0, len(defs))
	for _, def := range defs {
		fn := openai.FunctionDefinitionParam{
			Name:        def.Name,
			Description: openai.String(def.Description),
			Parameters:  openai.FunctionParameters(def.Parameters),
		}
		if def.Strict {
			fn.Strict = openai.Bool(true)
		}
		out = append(out, openai.ChatCompletionToolParam{Function: fn})
	}
	return out
}

func fromOpenAICompletion(completion *openai.ChatCompletion) *Response {
	resp := &Response{Choices: make([]Choice, 0, len(completion.Choices))}
	for _, choice := range completion.Choices {
		msg := conversation.Message{
			Role:    conversation.RoleAssistant,
			Content: choice.Message.Content,
		}
		for _, call := range choice.Message.ToolCalls {
			msg.ToolCalls = append(msg.ToolCalls, conversation.ToolCall{
				ID:        call.ID,
				Name:      call.Function.Name,
				Arguments: call.Function.Arguments,
			})
		}
		resp.Choices = append(resp.Choices, Choice{
			Message:      msg,
			FinishReason: choice.FinishReason,
		})
	}
	return resp
}
