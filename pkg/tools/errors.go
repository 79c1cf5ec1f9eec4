package tools

import "fmt"

// ArgumentParseError means the model's arguments were not a JSON object.
type ArgumentParseError struct {
	Tool string
	Err  error
}

func (e *ArgumentParseError) Error() string {
	return fmt.Sprintf("invalid arguments for %s: %v", e.Tool, e.Err)
}

func (e *ArgumentParseError) Unwrap() error { return e.Err }

// UnknownToolError means the model asked for a tool that is not registered.
type UnknownToolError struct {
	Name string
}

func (e *UnknownToolError) Error() string {
	return fmt.Sprintf("unknown tool: %s", e.Name)
}

// MissingArgumentError means a required key was absent or not a string.
type MissingArgumentError struct {
	Tool string
	Key  string
}

func (e *MissingArgumentError) Error() string {
	return fmt.Sprintf("%s: missing or invalid `%s` argument", e.Tool, e.Key)
}

// ToolFailure wraps an error returned by a tool handler.
type ToolFailure struct {
	Tool string
	Err  error
}

func (e *ToolFailure) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Tool, e.Err)
}

func (e *ToolFailure) Unwrap() error { return e.Err }
