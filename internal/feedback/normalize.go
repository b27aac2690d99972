package feedback

import (
	"strconv"
	"strings"
)

// Container keys probed, in order, when the choices input is map-shaped.
var containerAliases = []string{"options", "choices", "items", "data"}

// Field aliases probed, in order, when an option entry is map-shaped.
var (
	idAliases          = []string{"id", "value", "key", "name"}
	descriptionAliases = []string{"description", "label", "text", "title", "name", "value"}
	recommendedAliases = []string{"recommended", "isRecommended", "default", "selected"}
)

// Tokens that mean "multi" in a selection_mode value.
var multiModeSynonyms = map[string]bool{
	ModeMulti:      true,
	"multiple":     true,
	"multi_select": true,
	"multi-choice": true,
	"multi_choice": true,
	"checkbox":     true,
	"checks":       true,
}

// Normalize reconciles the loosely-shaped choices and config inputs an
// agent may send into one canonical payload. Agents wrap options in
// different containers ("options"/"choices"/"items"/"data"), name fields
// differently (id vs value vs key), and sometimes send bare strings; all
// of those collapse to the same ChoicePayload here so the rest of the
// pipeline only ever sees one shape.
//
// Returns nil when no usable option survives. Ordering follows the input;
// duplicate ids are passed through untouched. Applying Normalize to its own
// output yields an identical payload.
func Normalize(choicesInput, configInput any) *ChoicePayload {
	if choicesInput == nil {
		return nil
	}

	entries, container := optionEntries(choicesInput)
	if entries == nil {
		return nil
	}

	var options []ChoiceOption
	for _, raw := range entries {
		opt, ok := normalizeEntry(raw)
		if !ok {
			continue
		}
		options = append(options, opt)
	}
	if len(options) == 0 {
		return nil
	}

	// A map-shaped choices input may carry its own config; it only applies
	// when the caller did not pass one separately.
	cfg := asMap(configInput)
	if len(cfg) == 0 && container != nil {
		if embedded := asMap(container["config"]); len(embedded) > 0 {
			cfg = embedded
		} else if embedded := asMap(container["choice_config"]); len(embedded) > 0 {
			cfg = embedded
		}
	}

	return &ChoicePayload{
		Options:           options,
		SelectionMode:     normalizeSelectionMode(configValue(cfg, "selection_mode", "selectionMode")),
		AutoSubmitSeconds: normalizeAutoSubmit(configValue(cfg, "auto_submit_seconds", "autoSubmitSeconds")),
	}
}

// optionEntries extracts the ordered option entries from the choices input.
// For a map-shaped input it also returns the container map so embedded
// config can be resolved later. A nil entries slice means the input shape
// is unusable.
func optionEntries(input any) ([]any, map[string]any) {
	if entries, ok := asEntrySlice(input); ok {
		return entries, nil
	}

	container := asMap(input)
	if container == nil {
		return nil, nil
	}
	for _, alias := range containerAliases {
		nested, present := container[alias]
		if !present {
			continue
		}
		if entries, ok := asEntrySlice(nested); ok {
			return entries, container
		}
		return nil, nil
	}
	return nil, nil
}

// normalizeEntry derives a canonical option from one raw entry. An entry
// missing both id and description is dropped; one missing exactly one of
// the two inherits the other's value.
func normalizeEntry(raw any) (ChoiceOption, bool) {
	var id, description string
	var recommended bool

	switch v := raw.(type) {
	case ChoiceOption:
		id, description, recommended = v.ID, v.Description, v.Recommended
	case map[string]any:
		id = firstStringField(v, idAliases)
		description = firstStringField(v, descriptionAliases)
		for _, alias := range recommendedAliases {
			if truthy(v[alias]) {
				recommended = true
				break
			}
		}
	default:
		s, ok := scalarString(raw)
		if !ok {
			return ChoiceOption{}, false
		}
		id, description = s, s
	}

	if id == "" {
		id = description
	}
	if description == "" {
		description = id
	}
	if id == "" || description == "" {
		return ChoiceOption{}, false
	}
	return ChoiceOption{ID: id, Description: description, Recommended: recommended}, true
}

// normalizeSelectionMode collapses the mode value to "single" or "multi".
// Anything absent or unrecognized is "single".
func normalizeSelectionMode(v any) string {
	s, ok := scalarString(v)
	if !ok {
		return ModeSingle
	}
	if multiModeSynonyms[strings.ToLower(s)] {
		return ModeMulti
	}
	return ModeSingle
}

// normalizeAutoSubmit yields a positive whole number of seconds or 0
// (disabled). Fractional values are truncated.
func normalizeAutoSubmit(v any) int {
	var seconds int
	switch n := v.(type) {
	case int:
		seconds = n
	case int32:
		seconds = int(n)
	case int64:
		seconds = int(n)
	case float32:
		seconds = int(n)
	case float64:
		seconds = int(n)
	default:
		return 0
	}
	if seconds <= 0 {
		return 0
	}
	return seconds
}

func configValue(cfg map[string]any, canonical, alias string) any {
	if cfg == nil {
		return nil
	}
	if v, ok := cfg[canonical]; ok && v != nil {
		return v
	}
	return cfg[alias]
}

// asEntrySlice widens the slice shapes decoded JSON or our own output can
// take into a single []any view.
func asEntrySlice(v any) ([]any, bool) {
	switch s := v.(type) {
	case []any:
		return s, true
	case []ChoiceOption:
		entries := make([]any, len(s))
		for i, opt := range s {
			entries[i] = opt
		}
		return entries, true
	case []map[string]any:
		entries := make([]any, len(s))
		for i, m := range s {
			entries[i] = m
		}
		return entries, true
	case []string:
		entries := make([]any, len(s))
		for i, str := range s {
			entries[i] = str
		}
		return entries, true
	default:
		return nil, false
	}
}

func asMap(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

// firstStringField returns the first alias whose value renders to a
// non-empty trimmed string. An alias present but empty falls through to
// the next one.
func firstStringField(m map[string]any, aliases []string) string {
	for _, alias := range aliases {
		s, ok := scalarString(m[alias])
		if ok && s != "" {
			return s
		}
	}
	return ""
}

// scalarString renders a string or numeric scalar as a trimmed string.
func scalarString(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s), true
	case int:
		return strconv.Itoa(s), true
	case int32:
		return strconv.FormatInt(int64(s), 10), true
	case int64:
		return strconv.FormatInt(s, 10), true
	case float32:
		return strconv.FormatFloat(float64(s), 'g', -1, 32), true
	case float64:
		return strconv.FormatFloat(s, 'g', -1, 64), true
	default:
		return "", false
	}
}

func truthy(v any) bool {
	switch b := v.(type) {
	case nil:
		return false
	case bool:
		return b
	case string:
		return b != ""
	case int:
		return b != 0
	case int32:
		return b != 0
	case int64:
		return b != 0
	case float32:
		return b != 0
	case float64:
		return b != 0
	default:
		return false
	}
}
