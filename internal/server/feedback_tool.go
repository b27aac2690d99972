package server

import (
	"context"
	"encoding/base64"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/yolodolo42/checkback/internal/collector"
	"github.com/yolodolo42/checkback/internal/errutil"
	"github.com/yolodolo42/checkback/internal/feedback"
	"github.com/yolodolo42/checkback/internal/settings"
)

const (
	defaultSummary        = "I have completed the task you requested."
	defaultTimeoutSeconds = 2400

	// CancelledText is the only response when the user dismisses the form.
	CancelledText = "The user cancelled the feedback."
)

func interactiveFeedbackTool() mcp.Tool {
	return mcp.NewTool("interactive_feedback",
		mcp.WithDescription(`Collect interactive feedback from the user on completed work.

Call this tool whenever a task, step, or question needs human review. Keep
calling it until the user explicitly says the interaction is over. Summarize
what was done in the summary argument so the user can judge the work.`),
		mcp.WithTitleAnnotation("Interactive Feedback"),
		mcp.WithReadOnlyHintAnnotation(false),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithString("project_directory",
			mcp.Description("Project directory path for context"),
			mcp.DefaultString("."),
		),
		mcp.WithString("summary",
			mcp.Description("Summary of the completed work, shown to the user for review"),
			mcp.DefaultString(defaultSummary),
		),
		mcp.WithNumber("timeout",
			mcp.Description("Seconds to wait for the user before giving up"),
			mcp.DefaultNumber(defaultTimeoutSeconds),
		),
		mcp.WithArray("choices",
			mcp.Description("Selectable options (id, description, recommended); also accepts an object wrapping such a list"),
		),
		mcp.WithObject("choice_config",
			mcp.Description("Choice configuration: selection_mode (single/multi) and auto_submit_seconds"),
		),
		mcp.WithArray("options",
			mcp.Description("Legacy alias for choices"),
		),
		mcp.WithObject("config",
			mcp.Description("Legacy alias for choice_config"),
		),
	)
}

// handleInteractiveFeedback is the invocation orchestrator: normalize the
// choice input (falling back to defaults when the summary asked for
// choices), run the collector once, persist the snapshot, and assemble the
// response items. Every failure becomes a plain text item; the call never
// surfaces a protocol-level fault.
func (s *Server) handleInteractiveFeedback(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()

	projectDir := req.GetString("project_directory", ".")
	if _, err := os.Stat(projectDir); err != nil {
		if wd, wdErr := os.Getwd(); wdErr == nil {
			projectDir = wd
		}
	}
	if abs, err := filepath.Abs(projectDir); err == nil {
		projectDir = abs
	}

	summary := req.GetString("summary", defaultSummary)
	timeout := req.GetInt("timeout", defaultTimeoutSeconds)

	// Legacy parameter names, honored only when the canonical ones are empty.
	choices := args["choices"]
	if emptyInput(choices) {
		choices = args["options"]
	}
	choiceConfig := args["choice_config"]
	if emptyInput(choiceConfig) {
		choiceConfig = args["config"]
	}

	cfg := settings.Load(s.dataDir)

	payload := feedback.Normalize(choices, choiceConfig)
	fallbackUsed := false
	if payload == nil {
		if fb := feedback.BuildFallback(cfg, summary); fb != nil {
			payload = fb
			fallbackUsed = true
		}
	}
	s.choiceLog.Record(choices, choiceConfig, payload, fallbackUsed)

	slog.Debug("collecting feedback",
		"project_dir", projectDir,
		"timeout_seconds", timeout,
		"has_choices", payload != nil,
		"fallback_used", fallbackUsed,
	)

	result, err := s.collect(ctx, collector.Request{
		ProjectDir: projectDir,
		Summary:    summary,
		Timeout:    time.Duration(timeout) * time.Second,
		Choices:    payload,
	})
	if err != nil {
		if errors.Is(err, collector.ErrCancelled) {
			return mcp.NewToolResultText(CancelledText), nil
		}
		errID := errutil.Log(errutil.KindDependency, "feedback collection", err,
			slog.String("project_dir", projectDir))
		return mcp.NewToolResultText(errutil.UserMessage(errutil.KindDependency, errID)), nil
	}

	if _, err := feedback.SaveSnapshot(result, ""); err != nil {
		errID := errutil.Log(errutil.KindFileIO, "feedback persistence", err)
		return mcp.NewToolResultText(errutil.UserMessage(errutil.KindFileIO, errID)), nil
	}

	var items []mcp.Content
	if !result.Empty() {
		items = append(items, mcp.NewTextContent(feedback.RenderText(result, cfg.EnableBase64Detail)))
	}
	for _, img := range feedback.DecodeImages(result.Images) {
		items = append(items, mcp.NewImageContent(
			base64.StdEncoding.EncodeToString(img.Bytes),
			"image/"+img.Format,
		))
	}
	if len(items) == 0 {
		items = append(items, mcp.NewTextContent(feedback.NoFeedbackText))
	}

	return &mcp.CallToolResult{Content: items}, nil
}

// emptyInput mirrors how an agent "omits" a parameter: missing, nil, or
// an empty container all count as absent.
func emptyInput(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case []any:
		return len(t) == 0
	case map[string]any:
		return len(t) == 0
	case string:
		return t == ""
	default:
		return false
	}
}
