// Package main provides the single-prompt CLI for the agent loop.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/minhyannv/agent-loop-go/pkg/agent"
	configpkg "github.com/minhyannv/agent-loop-go/pkg/config"
	"github.com/minhyannv/agent-loop-go/pkg/llm"
	loggerpkg "github.com/minhyannv/agent-loop-go/pkg/logger"
	"github.com/minhyannv/agent-loop-go/pkg/tools"
	"github.com/spf13/cobra"
)

// main is the program entry point.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(run).ExecuteContext(ctx); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

// runFunc executes one prompt, writing the answer to stdout and logs to stderr.
type runFunc func(ctx context.Context, prompt string, stdout, stderr io.Writer) error

func newRootCmd(runner runFunc) *cobra.Command {
	var prompt string
	cmd := &cobra.Command{
		Use:   "agent-loop-go",
		Short: "Answer a prompt with a model that can read, write and run commands",
		Long: `agent-loop-go sends a prompt to an OpenAI-compatible chat completion endpoint
(OpenRouter by default) and lets the model call the Read, Write and Bash tools
until it produces a final answer.

Environment:
  OPENROUTER_API_KEY   API key (required)
  OPENROUTER_BASE_URL  endpoint base URL (default ` + configpkg.DefaultBaseURL + `)`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runner(cmd.Context(), prompt, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
	cmd.CompletionOptions.DisableDefaultCmd = true
	cmd.Flags().StringVarP(&prompt, "prompt", "p", "", "Initial instruction for the model")
	_ = cmd.MarkFlagRequired("prompt")
	return cmd
}

// run loads configuration, wires the tools, client and orchestrator, and
// prints the final answer.
func run(ctx context.Context, prompt string, stdout, stderr io.Writer) error {
	_ = godotenv.Load()

	cfg, err := configpkg.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	appLogger := loggerpkg.NewWriterLogger(stderr)
	registry := tools.New(tools.Options{Verbose: cfg.Verbose, Logger: appLogger})
	client := llm.NewOpenAIClient(cfg)

	orchestrator, err := agent.New(client, registry, cfg, agent.WithLogger(appLogger))
	if err != nil {
		return err
	}

	result, err := orchestrator.Run(ctx, prompt)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(stdout, result.Text)
	return err
}
