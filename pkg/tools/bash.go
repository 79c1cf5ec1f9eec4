package tools

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"
)

type bashArgs struct {
	Command string `json:"command" jsonschema_description:"Shell command to execute."`
}

type bashTool struct {
	opts Options
}

func (t *bashTool) name() string { return "Bash" }

func (t *bashTool) description() string {
	return "Execute a shell command. Takes a `command` argument."
}

func (t *bashTool) schema() Schema { return GenerateSchema[bashArgs]() }

// execute runs the command with `<shell> -c` and returns stdout followed by
// stderr. A non-zero exit status is reported through the output only.
func (t *bashTool) execute(ctx context.Context, args arguments) (string, error) {
	command := args["command"]
	t.opts.debugf("Bash: shell=%s, command_bytes=%d", t.opts.Shell, len(command))

	cmd := exec.CommandContext(ctx, t.opts.Shell, "-c", command)
	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return "", ctxErr
	}

	exitCode := 0
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return "", fmt.Errorf("spawn %s: %w", t.opts.Shell, err)
		}
		exitCode = exitErr.ExitCode()
	}
	t.opts.debugf("Bash: exit_code=%d, duration=%dms, stdout=%d bytes, stderr=%d bytes",
		exitCode, time.Since(start).Milliseconds(), stdout.Len(), stderr.Len())

	return stdout.String() + stderr.String(), nil
}
