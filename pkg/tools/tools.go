// Package tools implements the local tools the model may call and the
// registry that declares and dispatches them.
package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/minhyannv/agent-loop-go/pkg/conversation"
	loggerpkg "github.com/minhyannv/agent-loop-go/pkg/logger"
)

// DefaultShell runs Bash tool commands.
const DefaultShell = "bash"

type tool interface {
	name() string
	description() string
	schema() Schema
	execute(ctx context.Context, args arguments) (string, error)
}

// arguments holds the validated required string arguments of one call.
type arguments map[string]string

// Definition is the immutable declaration of a tool sent with every request.
type Definition struct {
	Name        string
	Description string
	Parameters  map[string]any
	Required    []string
	Strict      bool
}

// Result is the textual outcome of one tool call.
type Result struct {
	ToolCallID string
	Content    string
}

// Message converts the result into the tool message appended to the conversation.
func (r Result) Message() conversation.Message {
	return conversation.ToolResult(r.ToolCallID, r.Content)
}

// Options configures the built-in tools.
type Options struct {
	Shell   string
	Verbose bool
	Logger  loggerpkg.Logger
}

func (o Options) debugf(format string, args ...any) {
	loggerpkg.Debugf(o.Verbose, o.Logger, format, args...)
}

type entry struct {
	impl tool
	def  Definition
}

// Registry holds registered tools and handles execution.
// Lookups are by exact tool name; declarations keep registration order.
type Registry struct {
	registry map[string]entry
	params   []Definition
	opts     Options
}

type toolResponse struct {
	OK   bool        `json:"ok"`
	Tool string      `json:"tool,omitempty"`
	Data interface{} `json:"data,omitempty"`
	Err  string      `json:"error,omitempty"`
}

// New builds a registry with the built-in Read, Write and Bash tools.
//
// Bash runs arbitrary commands with the privileges of the current process.
// The registry is a trust boundary: do not expose it to untrusted prompts.
func New(opts Options) *Registry {
	opts.Logger = loggerpkg.OrNop(opts.Logger)
	if strings.TrimSpace(opts.Shell) == "" {
		opts.Shell = DefaultShell
	}

	r := &Registry{
		registry: make(map[string]entry),
		opts:     opts,
	}
	r.register(&readTool{opts: opts})
	r.register(&writeTool{opts: opts})
	r.register(&bashTool{opts: opts})
	return r
}

func (r *Registry) register(impl tool) {
	s := impl.schema()
	def := Definition{
		Name:        impl.name(),
		Description: impl.description(),
		Parameters:  s.Parameters,
		Required:    s.Required,
		Strict:      true,
	}
	if _, exists := r.registry[def.Name]; !exists {
		r.params = append(r.params, def)
	}
	r.registry[def.Name] = entry{impl: impl, def: def}
	r.opts.debugf("registered tool: %s", def.Name)
}

// Declarations returns the tool definitions in registration order.
func (r *Registry) Declarations() []Definition {
	out := make([]Definition, len(r.params))
	copy(out, r.params)
	return out
}

// Dispatch resolves name, parses rawArguments and runs the tool.
// An unknown name is reported whatever the arguments look like.
// Errors are *UnknownToolError, *ArgumentParseError, *MissingArgumentError
// or *ToolFailure.
func (r *Registry) Dispatch(ctx context.Context, name, rawArguments string) (string, error) {
	e, ok := r.registry[name]
	if !ok {
		return "", &UnknownToolError{Name: name}
	}

	parsed, err := parseArguments(rawArguments)
	if err != nil {
		return "", &ArgumentParseError{Tool: name, Err: err}
	}

	args := make(arguments, len(e.def.Required))
	for _, key := range e.def.Required {
		v, ok := parsed[key].(string)
		if !ok {
			return "", &MissingArgumentError{Tool: name, Key: key}
		}
		args[key] = v
	}

	if err := ctx.Err(); err != nil {
		return "", &ToolFailure{Tool: name, Err: err}
	}

	output, err := e.impl.execute(ctx, args)
	if err != nil {
		return "", &ToolFailure{Tool: name, Err: err}
	}
	return output, nil
}

// Execute dispatches call and always yields a result: failures become the
// content so the model can see and react to them.
func (r *Registry) Execute(ctx context.Context, call conversation.ToolCall) Result {
	output, err := r.Dispatch(ctx, call.Name, call.Arguments)
	if err != nil {
		loggerpkg.Warn(r.opts.Logger, "tool failed", loggerpkg.Fields{
			"id":    call.ID,
			"name":  call.Name,
			"error": err.Error(),
		})
	} else {
		r.opts.debugf("%s (%s): ok, %d bytes", call.Name, call.ID, len(output))
	}

	content, marshalErr := marshalToolResponse(call.Name, output, err)
	if marshalErr != nil {
		content = fmt.Sprintf(`{"ok":false,"error":%q}`, marshalErr.Error())
	}
	return Result{ToolCallID: call.ID, Content: content}
}

func parseArguments(raw string) (map[string]any, error) {
	if strings.TrimSpace(raw) == "" {
		return map[string]any{}, nil
	}
	var parsed map[string]any
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, err
	}
	if parsed == nil {
		parsed = map[string]any{}
	}
	return parsed, nil
}

func marshalToolResponse(toolName string, output string, err error) (string, error) {
	resp := toolResponse{
		OK:   err == nil,
		Tool: toolName,
	}
	if err != nil {
		resp.Err = err.Error()
	} else {
		resp.Data = output
	}
	payload, marshalErr := json.Marshal(resp)
	if marshalErr != nil {
		return "", marshalErr
	}
	return string(payload), nil
}
