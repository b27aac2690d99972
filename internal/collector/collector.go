// Package collector runs the terminal feedback form. It is the single
// suspension point of a tool invocation: the server hands it the work
// summary and the normalized choice payload, the user fills in the form,
// and the collected result comes back as one FeedbackResult.
//
// stdin/stdout belong to the MCP transport, so the form renders on
// stderr. Without a terminal the collector reports cancellation
// immediately instead of hanging the agent.
package collector

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/yolodolo42/checkback/internal/envcheck"
	"github.com/yolodolo42/checkback/internal/feedback"
)

// ErrCancelled is the tagged cancellation outcome: the user dismissed the
// form, the timeout expired, or no terminal was available.
var ErrCancelled = errors.New("feedback cancelled")

// Request carries everything one collection session needs.
type Request struct {
	ProjectDir string
	Summary    string
	Timeout    time.Duration
	Choices    *feedback.ChoicePayload
}

// Collect shows the feedback form and blocks until the user submits,
// cancels, or the timeout expires. Returns ErrCancelled for every
// non-submit outcome.
func Collect(ctx context.Context, req Request) (*feedback.FeedbackResult, error) {
	if !envcheck.IsInteractive() {
		return nil, ErrCancelled
	}

	m := newForm(req)

	p := tea.NewProgram(m,
		tea.WithOutput(os.Stderr),
		tea.WithContext(ctx),
	)

	final, err := p.Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) || errors.Is(err, context.Canceled) {
			return nil, ErrCancelled
		}
		return nil, fmt.Errorf("feedback form failed: %w", err)
	}

	form, ok := final.(formModel)
	if !ok || form.cancelled {
		return nil, ErrCancelled
	}

	return form.result(), nil
}
