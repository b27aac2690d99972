package feedback

// Selection modes for choice payloads.
const (
	ModeSingle = "single"
	ModeMulti  = "multi"
)

// ChoiceOption is one selectable option presented to the user.
// Invariant: after normalization both ID and Description are non-empty.
type ChoiceOption struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Recommended bool   `json:"recommended"`
}

// ChoicePayload is the canonical choice set handed to the collector.
// AutoSubmitSeconds == 0 means auto-submit is disabled.
type ChoicePayload struct {
	Options           []ChoiceOption `json:"options"`
	SelectionMode     string         `json:"selection_mode"`
	AutoSubmitSeconds int            `json:"auto_submit_seconds,omitempty"`
}

// ImageAttachment is an image the user attached to their feedback.
// Data holds either raw []byte or a base64-encoded string.
type ImageAttachment struct {
	Name string `json:"name"`
	Size int    `json:"size"`
	Data any    `json:"data,omitempty"`
}

// ChoiceSelection records what the user picked from a ChoicePayload.
type ChoiceSelection struct {
	SelectionMode          string            `json:"selection_mode"`
	SelectedIDs            []string          `json:"selected_ids"`
	RecommendedSelectedIDs []string          `json:"recommended_selected_ids,omitempty"`
	OptionAnnotations      map[string]string `json:"option_annotations,omitempty"`
	AutoSubmitted          bool              `json:"auto_submitted,omitempty"`
}

// FeedbackResult is everything the collector gathered in one session.
// All fields are scoped to a single tool invocation.
type FeedbackResult struct {
	InteractiveFeedback string            `json:"interactive_feedback,omitempty"`
	CommandLogs         string            `json:"command_logs,omitempty"`
	Images              []ImageAttachment `json:"images,omitempty"`
	ChoiceResult        *ChoiceSelection  `json:"choice_result,omitempty"`
}

// Empty reports whether the result carries no feedback at all.
func (r *FeedbackResult) Empty() bool {
	if r == nil {
		return true
	}
	return r.InteractiveFeedback == "" && r.CommandLogs == "" &&
		len(r.Images) == 0 && r.ChoiceResult == nil
}
