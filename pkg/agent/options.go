package agent

import loggerpkg "github.com/minhyannv/agent-loop-go/pkg/logger"

// Option configures optional runtime dependencies for an Orchestrator.
type Option func(*deps)

type deps struct {
	logger loggerpkg.Logger
}

// WithLogger injects a logger dependency.
func WithLogger(l loggerpkg.Logger) Option {
	return func(d *deps) {
		d.logger = l
	}
}
