package server

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yolodolo42/checkback/internal/collector"
	"github.com/yolodolo42/checkback/internal/feedback"
	"github.com/yolodolo42/checkback/internal/testutil"
)

func newTestServer(t *testing.T, collect CollectFunc) *Server {
	t.Helper()
	return New(testutil.TempDir(t), "test", WithCollector(collect))
}

func feedbackRequest(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Name = "interactive_feedback"
	req.Params.Arguments = args
	return req
}

func textOf(t *testing.T, item mcp.Content) string {
	t.Helper()
	text, ok := item.(mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", item)
	return text.Text
}

func TestHandleInteractiveFeedback_Cancellation(t *testing.T) {
	s := newTestServer(t, func(ctx context.Context, req collector.Request) (*feedback.FeedbackResult, error) {
		return nil, collector.ErrCancelled
	})

	res, err := s.handleInteractiveFeedback(context.Background(), feedbackRequest(nil))
	require.NoError(t, err)
	require.Len(t, res.Content, 1)
	assert.Equal(t, CancelledText, textOf(t, res.Content[0]))
}

func TestHandleInteractiveFeedback_CollectorFailure(t *testing.T) {
	s := newTestServer(t, func(ctx context.Context, req collector.Request) (*feedback.FeedbackResult, error) {
		return nil, errors.New("form exploded")
	})

	res, err := s.handleInteractiveFeedback(context.Background(), feedbackRequest(nil))
	require.NoError(t, err, "failures must not surface as protocol faults")
	require.Len(t, res.Content, 1)

	text := textOf(t, res.Content[0])
	assert.Contains(t, text, "error id:")
	assert.NotContains(t, text, "form exploded")
}

func TestHandleInteractiveFeedback_Response(t *testing.T) {
	t.Run("text then images", func(t *testing.T) {
		s := newTestServer(t, func(ctx context.Context, req collector.Request) (*feedback.FeedbackResult, error) {
			return &feedback.FeedbackResult{
				InteractiveFeedback: "nice work",
				Images: []feedback.ImageAttachment{
					{Name: "shot.png", Size: 3, Data: []byte{1, 2, 3}},
					{Name: "photo.jpg", Size: 2, Data: []byte{4, 5}},
				},
			}, nil
		})

		res, err := s.handleInteractiveFeedback(context.Background(), feedbackRequest(nil))
		require.NoError(t, err)
		require.Len(t, res.Content, 3)

		assert.Contains(t, textOf(t, res.Content[0]), "nice work")

		img1, ok := res.Content[1].(mcp.ImageContent)
		require.True(t, ok)
		assert.Equal(t, "image/png", img1.MIMEType)
		assert.NotEmpty(t, img1.Data)

		img2, ok := res.Content[2].(mcp.ImageContent)
		require.True(t, ok)
		assert.Equal(t, "image/jpeg", img2.MIMEType)
	})

	t.Run("empty result never yields an empty response", func(t *testing.T) {
		s := newTestServer(t, func(ctx context.Context, req collector.Request) (*feedback.FeedbackResult, error) {
			return &feedback.FeedbackResult{}, nil
		})

		res, err := s.handleInteractiveFeedback(context.Background(), feedbackRequest(nil))
		require.NoError(t, err)
		require.Len(t, res.Content, 1)
		assert.Equal(t, feedback.NoFeedbackText, textOf(t, res.Content[0]))
	})

	t.Run("corrupt image dropped from response", func(t *testing.T) {
		s := newTestServer(t, func(ctx context.Context, req collector.Request) (*feedback.FeedbackResult, error) {
			return &feedback.FeedbackResult{
				Images: []feedback.ImageAttachment{
					{Name: "bad.png", Size: 1, Data: "%%% not base64"},
					{Name: "good.png", Size: 1, Data: []byte{7}},
				},
			}, nil
		})

		res, err := s.handleInteractiveFeedback(context.Background(), feedbackRequest(nil))
		require.NoError(t, err)
		// One text item (image summary) plus the one decodable image.
		require.Len(t, res.Content, 2)
		_, ok := res.Content[1].(mcp.ImageContent)
		assert.True(t, ok)
	})
}

func TestHandleInteractiveFeedback_ChoiceWiring(t *testing.T) {
	t.Run("choices normalized before collection", func(t *testing.T) {
		var captured collector.Request
		s := newTestServer(t, func(ctx context.Context, req collector.Request) (*feedback.FeedbackResult, error) {
			captured = req
			return &feedback.FeedbackResult{InteractiveFeedback: "ok"}, nil
		})

		_, err := s.handleInteractiveFeedback(context.Background(), feedbackRequest(map[string]any{
			"choices": []any{map[string]any{"value": "a", "label": "A"}},
			"choice_config": map[string]any{
				"selectionMode":     "checkbox",
				"autoSubmitSeconds": 5.0,
			},
		}))
		require.NoError(t, err)

		require.NotNil(t, captured.Choices)
		assert.Equal(t, feedback.ModeMulti, captured.Choices.SelectionMode)
		assert.Equal(t, 5, captured.Choices.AutoSubmitSeconds)
		require.Len(t, captured.Choices.Options, 1)
		assert.Equal(t, "a", captured.Choices.Options[0].ID)
	})

	t.Run("legacy aliases honored when canonical names empty", func(t *testing.T) {
		var captured collector.Request
		s := newTestServer(t, func(ctx context.Context, req collector.Request) (*feedback.FeedbackResult, error) {
			captured = req
			return &feedback.FeedbackResult{InteractiveFeedback: "ok"}, nil
		})

		_, err := s.handleInteractiveFeedback(context.Background(), feedbackRequest(map[string]any{
			"options": []any{"Yes", "No"},
			"config":  map[string]any{"selection_mode": "multi"},
		}))
		require.NoError(t, err)

		require.NotNil(t, captured.Choices)
		assert.Len(t, captured.Choices.Options, 2)
		assert.Equal(t, feedback.ModeMulti, captured.Choices.SelectionMode)
	})

	t.Run("fallback used when summary asks for choices", func(t *testing.T) {
		var captured collector.Request
		s := newTestServer(t, func(ctx context.Context, req collector.Request) (*feedback.FeedbackResult, error) {
			captured = req
			return &feedback.FeedbackResult{InteractiveFeedback: "ok"}, nil
		})

		_, err := s.handleInteractiveFeedback(context.Background(), feedbackRequest(map[string]any{
			"summary": "done [choices]",
		}))
		require.NoError(t, err)

		require.NotNil(t, captured.Choices)
		assert.Len(t, captured.Choices.Options, 3)
	})

	t.Run("no fallback without marker", func(t *testing.T) {
		var captured collector.Request
		s := newTestServer(t, func(ctx context.Context, req collector.Request) (*feedback.FeedbackResult, error) {
			captured = req
			return &feedback.FeedbackResult{InteractiveFeedback: "ok"}, nil
		})

		_, err := s.handleInteractiveFeedback(context.Background(), feedbackRequest(map[string]any{
			"summary": "done, please review",
		}))
		require.NoError(t, err)
		assert.Nil(t, captured.Choices)
	})

	t.Run("supplied choices suppress the fallback", func(t *testing.T) {
		var captured collector.Request
		s := newTestServer(t, func(ctx context.Context, req collector.Request) (*feedback.FeedbackResult, error) {
			captured = req
			return &feedback.FeedbackResult{InteractiveFeedback: "ok"}, nil
		})

		_, err := s.handleInteractiveFeedback(context.Background(), feedbackRequest(map[string]any{
			"summary": "done [choices]",
			"choices": []any{"keep", "revert"},
		}))
		require.NoError(t, err)

		require.NotNil(t, captured.Choices)
		assert.Len(t, captured.Choices.Options, 2)
	})
}

func TestHandleInteractiveFeedback_Parameters(t *testing.T) {
	t.Run("missing project directory replaced by cwd", func(t *testing.T) {
		var captured collector.Request
		s := newTestServer(t, func(ctx context.Context, req collector.Request) (*feedback.FeedbackResult, error) {
			captured = req
			return &feedback.FeedbackResult{InteractiveFeedback: "ok"}, nil
		})

		_, err := s.handleInteractiveFeedback(context.Background(), feedbackRequest(map[string]any{
			"project_directory": "/definitely/not/a/real/path",
		}))
		require.NoError(t, err)

		wd, _ := os.Getwd()
		assert.Equal(t, wd, captured.ProjectDir)
	})

	t.Run("timeout forwarded as a duration", func(t *testing.T) {
		var captured collector.Request
		s := newTestServer(t, func(ctx context.Context, req collector.Request) (*feedback.FeedbackResult, error) {
			captured = req
			return &feedback.FeedbackResult{InteractiveFeedback: "ok"}, nil
		})

		_, err := s.handleInteractiveFeedback(context.Background(), feedbackRequest(map[string]any{
			"timeout": 60.0,
		}))
		require.NoError(t, err)
		assert.Equal(t, time.Minute, captured.Timeout)
	})

	t.Run("default timeout", func(t *testing.T) {
		var captured collector.Request
		s := newTestServer(t, func(ctx context.Context, req collector.Request) (*feedback.FeedbackResult, error) {
			captured = req
			return &feedback.FeedbackResult{InteractiveFeedback: "ok"}, nil
		})

		_, err := s.handleInteractiveFeedback(context.Background(), feedbackRequest(nil))
		require.NoError(t, err)
		assert.Equal(t, defaultTimeoutSeconds*time.Second, captured.Timeout)
	})
}

func TestEmptyInput(t *testing.T) {
	assert.True(t, emptyInput(nil))
	assert.True(t, emptyInput([]any{}))
	assert.True(t, emptyInput(map[string]any{}))
	assert.True(t, emptyInput(""))
	assert.False(t, emptyInput([]any{"x"}))
	assert.False(t, emptyInput(map[string]any{"k": "v"}))
	assert.False(t, emptyInput(0))
}
