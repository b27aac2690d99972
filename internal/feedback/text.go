package feedback

import (
	"encoding/base64"
	"fmt"
	"sort"
	"strings"
)

// NoFeedbackText is returned whenever a render or a whole invocation ends
// up with nothing to show. The tool response is never empty.
const NoFeedbackText = "The user did not provide any feedback."

const base64PreviewLen = 50

// RenderText builds the human-readable feedback block returned to the
// agent: free-text feedback, command logs, the choice selection, and an
// image summary, in that order, each section present only when its data
// is. verboseAttachments additionally inlines full data: URIs so agents
// without MCP image support can still read the attachments.
func RenderText(result *FeedbackResult, verboseAttachments bool) string {
	if result == nil {
		return NoFeedbackText
	}

	var parts []string

	if result.InteractiveFeedback != "" {
		parts = append(parts, "=== User Feedback ===\n"+result.InteractiveFeedback)
	}

	if result.CommandLogs != "" {
		parts = append(parts, "=== Command Logs ===\n"+result.CommandLogs)
	}

	if result.ChoiceResult != nil {
		parts = append(parts, renderChoiceResult(result.ChoiceResult)...)
	}

	if len(result.Images) > 0 {
		parts = append(parts, renderImageSummary(result.Images, verboseAttachments)...)
	}

	if len(parts) == 0 {
		return NoFeedbackText
	}
	return strings.Join(parts, "\n\n")
}

func renderChoiceResult(choice *ChoiceSelection) []string {
	mode := choice.SelectionMode
	if mode == "" {
		mode = ModeSingle
	}

	parts := []string{"=== Choice Selection ===\nMode: " + mode}

	if len(choice.SelectedIDs) > 0 {
		parts = append(parts, "Selected: "+strings.Join(choice.SelectedIDs, ", "))
	} else {
		parts = append(parts, "Selected: (none selected)")
	}

	if len(choice.RecommendedSelectedIDs) > 0 {
		parts = append(parts, "Recommended selected: "+strings.Join(choice.RecommendedSelectedIDs, ", "))
	}

	if len(choice.OptionAnnotations) > 0 {
		lines := []string{"Option notes:"}
		for _, id := range sortedKeys(choice.OptionAnnotations) {
			if note := choice.OptionAnnotations[id]; note != "" {
				lines = append(lines, fmt.Sprintf("- %s: %s", id, note))
			}
		}
		if len(lines) > 1 {
			parts = append(parts, strings.Join(lines, "\n"))
		}
	}

	if choice.AutoSubmitted {
		parts = append(parts, "Submitted automatically when the recommendation timer expired.")
	}

	return parts
}

func renderImageSummary(images []ImageAttachment, verbose bool) []string {
	parts := []string{fmt.Sprintf("=== Image Attachments ===\nThe user provided %d image(s):", len(images))}

	for i, img := range images {
		name := img.Name
		if name == "" {
			name = "unknown"
		}

		var b strings.Builder
		fmt.Fprintf(&b, "  %d. %s (%s)", i+1, name, FormatSize(img.Size))

		if encoded := attachmentBase64(img.Data); encoded != "" {
			preview := encoded
			if len(preview) > base64PreviewLen {
				preview = preview[:base64PreviewLen] + "..."
			}
			fmt.Fprintf(&b, "\n     Base64 preview: %s", preview)
			fmt.Fprintf(&b, "\n     Full base64 length: %d chars", len(encoded))

			if verbose {
				fmt.Fprintf(&b, "\n     Full base64: data:%s;base64,%s", MIMEForName(img.Name), encoded)
			}
		}

		parts = append(parts, b.String())
	}

	parts = append(parts, "Note: if the images above are not displayed, their full content is available in the base64 data.")
	return parts
}

// attachmentBase64 renders an attachment payload as a base64 string, or ""
// when there is no usable payload.
func attachmentBase64(data any) string {
	switch d := data.(type) {
	case []byte:
		if len(d) == 0 {
			return ""
		}
		return base64.StdEncoding.EncodeToString(d)
	case string:
		return d
	default:
		return ""
	}
}

// FormatSize renders a byte count with base-1024 units: bytes below 1 KB,
// one-decimal KB below 1 MB, one-decimal MB above.
func FormatSize(size int) string {
	switch {
	case size < 1024:
		return fmt.Sprintf("%d B", size)
	case size < 1024*1024:
		return fmt.Sprintf("%.1f KB", float64(size)/1024)
	default:
		return fmt.Sprintf("%.1f MB", float64(size)/(1024*1024))
	}
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
