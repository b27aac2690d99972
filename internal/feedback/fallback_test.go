package feedback

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yolodolo42/checkback/internal/settings"
)

func boolPtr(b bool) *bool { return &b }

func TestBuildFallback_Triggering(t *testing.T) {
	t.Run("requires a choice marker in the summary", func(t *testing.T) {
		assert.Nil(t, BuildFallback(settings.Settings{}, "work is done"))
		assert.Nil(t, BuildFallback(settings.Settings{}, ""))

		assert.NotNil(t, BuildFallback(settings.Settings{}, "done [choices] please review"))
		assert.NotNil(t, BuildFallback(settings.Settings{}, "done [[ask_choice]]"))
	})

	t.Run("explicit disable wins", func(t *testing.T) {
		cfg := settings.Settings{DefaultChoiceFallbackEnabled: boolPtr(false)}
		assert.Nil(t, BuildFallback(cfg, "done [choices]"))
	})

	t.Run("unset enable flag counts as enabled", func(t *testing.T) {
		assert.NotNil(t, BuildFallback(settings.Settings{}, "done [choices]"))
	})
}

func TestBuildFallback_Options(t *testing.T) {
	t.Run("built-in set is single mode with one recommendation", func(t *testing.T) {
		payload := BuildFallback(settings.Settings{}, "[choices]")

		require.NotNil(t, payload)
		require.Len(t, payload.Options, 3)
		assert.Equal(t, ModeSingle, payload.SelectionMode)
		assert.Zero(t, payload.AutoSubmitSeconds)

		recommended := 0
		for _, opt := range payload.Options {
			if opt.Recommended {
				recommended++
			}
		}
		assert.Equal(t, 1, recommended)
		assert.Equal(t, "Done", payload.Options[0].ID)
		assert.True(t, payload.Options[0].Recommended)
	})

	t.Run("user-configured options replace the built-ins", func(t *testing.T) {
		cfg := settings.Settings{
			DefaultChoiceFallbackOptions: []any{
				map[string]any{"id": "ship", "description": "Ship it", "recommended": true},
				"hold",
			},
		}
		payload := BuildFallback(cfg, "[choices]")

		require.NotNil(t, payload)
		require.Len(t, payload.Options, 2)
		assert.Equal(t, "ship", payload.Options[0].ID)
		assert.Equal(t, ModeSingle, payload.SelectionMode)
	})

	t.Run("unusable configured options fall back to built-ins", func(t *testing.T) {
		cfg := settings.Settings{
			DefaultChoiceFallbackOptions: []any{map[string]any{"irrelevant": true}},
		}
		payload := BuildFallback(cfg, "[choices]")

		require.NotNil(t, payload)
		assert.Len(t, payload.Options, 3)
	})
}

func TestBuildFallback_Localization(t *testing.T) {
	cases := map[string]struct {
		language string
		firstID  string
	}{
		"english default":       {"", "Done"},
		"explicit english":      {"en-US", "Done"},
		"traditional taiwan":    {"zh-TW", "完成"},
		"traditional hong kong": {"zh-HK", "完成"},
		"simplified":            {"zh-CN", "完成"},
		"bare zh":               {"zh", "完成"},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			payload := BuildFallback(settings.Settings{Language: tc.language}, "[choices]")
			require.NotNil(t, payload)
			assert.Equal(t, tc.firstID, payload.Options[0].ID)
		})
	}

	t.Run("traditional and simplified differ", func(t *testing.T) {
		tw := BuildFallback(settings.Settings{Language: "zh-TW"}, "[choices]")
		cn := BuildFallback(settings.Settings{Language: "zh-CN"}, "[choices]")
		require.NotNil(t, tw)
		require.NotNil(t, cn)
		assert.NotEqual(t, tw.Options[1].ID, cn.Options[1].ID)
	})
}
