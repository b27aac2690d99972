package feedback

import (
	"strings"

	"github.com/yolodolo42/checkback/internal/settings"
)

// Summary markers that signal the agent expected choices to be shown.
var fallbackMarkers = []string{"[choices]", "[[ask_choice]]"}

// Localized built-in fallback option sets. The first option is the
// recommended one in every locale.
var (
	fallbackOptionsEN = []ChoiceOption{
		{ID: "Done", Description: "Completed or confirmed", Recommended: true},
		{ID: "Needs Changes", Description: "Requires adjustments"},
		{ID: "Unclear", Description: "Unclear or not reproducible"},
	}
	fallbackOptionsZHHant = []ChoiceOption{
		{ID: "完成", Description: "已完成或已確認", Recommended: true},
		{ID: "需調整", Description: "需要修改或再優化"},
		{ID: "無法判斷", Description: "無法判斷或未復現"},
	}
	fallbackOptionsZHHans = []ChoiceOption{
		{ID: "完成", Description: "已完成或已确认", Recommended: true},
		{ID: "需调整", Description: "需要修改或再优化"},
		{ID: "无法判断", Description: "无法判断或未复现"},
	}
)

// BuildFallback synthesizes a default choice payload when the agent's
// summary asked for choices but none survived normalization. It never
// merges with partial user-supplied choices; the orchestrator only calls
// it after Normalize returned nil.
//
// Returns nil when the fallback is disabled, the summary carries no choice
// marker, or the user-configured options normalize to nothing and the
// built-in set is somehow unusable.
func BuildFallback(cfg settings.Settings, summary string) *ChoicePayload {
	if !cfg.FallbackEnabled() {
		return nil
	}

	marked := false
	for _, marker := range fallbackMarkers {
		if strings.Contains(summary, marker) {
			marked = true
			break
		}
	}
	if !marked {
		return nil
	}

	forced := map[string]any{"selection_mode": ModeSingle}

	if len(cfg.DefaultChoiceFallbackOptions) > 0 {
		if payload := Normalize(cfg.DefaultChoiceFallbackOptions, forced); payload != nil {
			return payload
		}
	}

	return Normalize(localizedFallbackOptions(cfg.Language), forced)
}

// localizedFallbackOptions picks the built-in option set by a
// case-insensitive prefix match on the configured language. Traditional
// Chinese regions get Traditional labels, any other zh* gets Simplified,
// everything else gets English.
func localizedFallbackOptions(language string) []ChoiceOption {
	lang := strings.ToLower(language)
	switch {
	case strings.HasPrefix(lang, "zh-tw") || strings.HasPrefix(lang, "zh-hk") || strings.HasPrefix(lang, "zh_hk"):
		return fallbackOptionsZHHant
	case strings.HasPrefix(lang, "zh"):
		return fallbackOptionsZHHans
	default:
		return fallbackOptionsEN
	}
}
