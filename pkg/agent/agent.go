// Package agent runs the tool-calling loop: ask the model, execute the tools
// it requests, feed the results back, and stop at the first text-only answer.
package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"

	configpkg "github.com/minhyannv/agent-loop-go/pkg/config"
	"github.com/minhyannv/agent-loop-go/pkg/conversation"
	"github.com/minhyannv/agent-loop-go/pkg/llm"
	loggerpkg "github.com/minhyannv/agent-loop-go/pkg/logger"
	"github.com/minhyannv/agent-loop-go/pkg/tools"
)

var (
	// ErrNoChoices means the endpoint answered with zero choices.
	ErrNoChoices = errors.New("empty completion choices")
	// ErrEmptyResponse means the chosen message had neither text nor tool calls.
	ErrEmptyResponse = errors.New("response had neither tool calls nor content")
	// ErrMaxTurns means the configured turn cap was hit before a final answer.
	ErrMaxTurns = errors.New("max turns reached before assistant produced a final response")
)

// ToolExecutor declares the available tools and executes tool calls.
// Execute must always return a result for the call it was given.
type ToolExecutor interface {
	Declarations() []tools.Definition
	Execute(ctx context.Context, call conversation.ToolCall) tools.Result
}

// Result describes the outcome of one Run.
type Result struct {
	Text     string
	Turns    int
	Messages []conversation.Message
}

// Orchestrator drives the request/dispatch cycle for a single prompt.
// It is not safe for concurrent Runs.
type Orchestrator struct {
	config  configpkg.Config
	client  llm.ChatClient
	tools   ToolExecutor
	logger  loggerpkg.Logger
	verbose bool
}

type state int

const (
	awaitingModelResponse state = iota
	dispatchingTools
	done
)

// New builds an Orchestrator from an immutable configuration.
func New(client llm.ChatClient, executor ToolExecutor, cfg configpkg.Config, opts ...Option) (*Orchestrator, error) {
	if client == nil {
		return nil, errors.New("chat client is required")
	}
	if executor == nil {
		return nil, errors.New("tool executor is required")
	}
	cfg = configpkg.Normalize(cfg)

	d := deps{logger: loggerpkg.NopLogger{}}
	for _, opt := range opts {
		if opt != nil {
			opt(&d)
		}
	}

	o := &Orchestrator{
		config:  cfg,
		client:  client,
		tools:   executor,
		logger:  loggerpkg.OrNop(d.logger),
		verbose: cfg.Verbose,
	}
	loggerpkg.Debug(o.verbose, o.logger, "orchestrator init", loggerpkg.Fields{
		"model":      cfg.Model,
		"max_tokens": cfg.MaxTokens,
		"max_turns":  cfg.MaxTurns,
		"tools":      len(executor.Declarations()),
	})
	return o, nil
}

// Run seeds a conversation with prompt and loops until the model answers
// with text. Tool failures are returned to the model; transport failures and
// malformed responses end the run with an error.
func (o *Orchestrator) Run(ctx context.Context, prompt string) (Result, error) {
	if strings.TrimSpace(prompt) == "" {
		return Result{}, errors.New("prompt is required")
	}

	conv := conversation.New(o.config.SystemPrompt, prompt)
	declarations := o.tools.Declarations()

	var (
		current state = awaitingModelResponse
		pending conversation.Message
		turns   int
	)
	for {
		switch current {
		case awaitingModelResponse:
			if o.config.MaxTurns > 0 && turns >= o.config.MaxTurns {
				return Result{Turns: turns, Messages: conv.Messages()}, fmt.Errorf("%w (%d)", ErrMaxTurns, o.config.MaxTurns)
			}
			turns++

			msg, err := o.complete(ctx, conv, declarations, turns)
			if err != nil {
				return Result{Turns: turns, Messages: conv.Messages()}, err
			}
			pending = msg
			switch {
			case msg.HasToolCalls():
				current = dispatchingTools
			case msg.Content != "":
				conv.Append(msg)
				current = done
			default:
				return Result{Turns: turns, Messages: conv.Messages()}, ErrEmptyResponse
			}

		case dispatchingTools:
			if err := o.dispatch(ctx, conv, pending, turns); err != nil {
				return Result{Turns: turns, Messages: conv.Messages()}, err
			}
			current = awaitingModelResponse

		case done:
			return Result{Text: pending.Content, Turns: turns, Messages: conv.Messages()}, nil
		}
	}
}

// complete performs one model request and returns the first choice's message.
func (o *Orchestrator) complete(
	ctx context.Context,
	conv *conversation.Conversation,
	declarations []tools.Definition,
	turn int,
) (conversation.Message, error) {
	o.debugf("turn %d: sending %d message(s)", turn, conv.Len())
	resp, err := o.client.Complete(ctx, llm.Request{
		Messages:  conv.Messages(),
		Tools:     declarations,
		Model:     o.config.Model,
		MaxTokens: o.config.MaxTokens,
	})
	if err != nil {
		return conversation.Message{}, err
	}
	if resp == nil || len(resp.Choices) == 0 {
		return conversation.Message{}, ErrNoChoices
	}

	choice := resp.Choices[0]
	o.debugf("turn %d: finish_reason=%s, tool_calls=%d", turn, choice.FinishReason, len(choice.Message.ToolCalls))
	msg := choice.Message
	msg.Role = conversation.RoleAssistant
	return msg, nil
}

// dispatch executes every requested tool in order and appends the assistant
// message followed by one result per call.
func (o *Orchestrator) dispatch(
	ctx context.Context,
	conv *conversation.Conversation,
	assistant conversation.Message,
	turn int,
) error {
	results := make([]conversation.Message, 0, len(assistant.ToolCalls))
	for _, call := range assistant.ToolCalls {
		loggerpkg.Info(o.logger, "tool call", loggerpkg.Fields{
			"turn": turn,
			"id":   call.ID,
			"name": call.Name,
		})
		res := o.tools.Execute(ctx, call)
		// Results are keyed by the request, whatever the executor reports.
		res.ToolCallID = call.ID
		o.debugf("turn %d: %s returned %d bytes", turn, call.Name, len(res.Content))
		results = append(results, res.Message())
	}
	return conv.AppendToolTurn(assistant, results)
}

func (o *Orchestrator) debugf(format string, args ...any) {
	loggerpkg.Debugf(o.verbose, o.logger, format, args...)
}
