package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

var ErrUnknownAgent = errors.New("unknown agent")

// MissingInputError lists the required inputs absent from a run request.
type MissingInputError struct {
	Missing []string
}

func (e *MissingInputError) Error() string {
	return "missing required inputs: " + strings.Join(e.Missing, ", ")
}

// Completer is the LLM surface the runner depends on.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

type Runner struct {
	Client Completer
	Logger *zap.Logger
}

// Run validates inputs, builds the agent's prompt, and forwards it to the
// model.
func (r *Runner) Run(ctx context.Context, id string, inputs map[string]string) (string, error) {
	a, ok := Get(id)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownAgent, id)
	}
	if missing := a.MissingInputs(inputs); len(missing) > 0 {
		return "", &MissingInputError{Missing: missing}
	}

	output, err := r.Client.Complete(ctx, a.System, a.BuildPrompt(inputs))
	if err != nil {
		if r.Logger != nil {
			r.Logger.Warn("agent completion failed", zap.String("agent", a.ID), zap.Error(err))
		}
		return "", fmt.Errorf("agent %s: %w", a.ID, err)
	}
	return strings.TrimSpace(output), nil
}
