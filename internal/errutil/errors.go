// Package errutil classifies failures and logs them with correlation ids.
// The tool invocation must always return a well-formed response, so errors
// are logged in full here and surfaced to the agent only as short
// non-technical messages carrying the correlation id.
package errutil

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// Kind is the failure taxonomy: malformed input, an unavailable
// collaborator, or a file/system problem.
type Kind string

const (
	KindShape      Kind = "shape"
	KindDependency Kind = "dependency"
	KindFileIO     Kind = "file_io"
	KindSystem     Kind = "system"
)

// Log records err under a fresh correlation id and returns the id.
// The id is the only error detail that ever reaches the agent.
func Log(kind Kind, operation string, err error, attrs ...slog.Attr) string {
	id := uuid.NewString()[:8]

	logAttrs := append([]slog.Attr{
		slog.String("error_id", id),
		slog.String("kind", string(kind)),
		slog.String("operation", operation),
		slog.Any("error", err),
	}, attrs...)

	slog.LogAttrs(context.Background(), slog.LevelError, "operation failed", logAttrs...)
	return id
}

// UserMessage renders a failure as a short sentence safe to show the
// agent (and through it, the user). Technical detail stays in the logs,
// findable by the correlation id.
func UserMessage(kind Kind, errorID string) string {
	var msg string
	switch kind {
	case KindShape:
		msg = "The feedback request contained input the tool could not understand."
	case KindDependency:
		msg = "The feedback interface could not be started."
	case KindFileIO:
		msg = "The feedback could not be saved."
	default:
		msg = "Collecting feedback failed due to an internal problem."
	}
	return msg + " (error id: " + errorID + ")"
}
