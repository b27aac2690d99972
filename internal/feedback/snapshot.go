package feedback

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// snapshotImage mirrors ImageAttachment with the payload forced into a
// JSON-safe base64 string. DataType marks payloads that were converted
// from raw bytes.
type snapshotImage struct {
	Name     string `json:"name"`
	Size     int    `json:"size"`
	Data     string `json:"data,omitempty"`
	DataType string `json:"data_type,omitempty"`
}

type snapshot struct {
	InteractiveFeedback string           `json:"interactive_feedback,omitempty"`
	CommandLogs         string           `json:"command_logs,omitempty"`
	Images              []snapshotImage  `json:"images,omitempty"`
	ChoiceResult        *ChoiceSelection `json:"choice_result,omitempty"`
}

// SaveSnapshot writes the full feedback result to disk as indented JSON.
// An empty path gets a unique feedback_*.json temp file, so concurrent
// invocations never collide. Returns the path written.
func SaveSnapshot(result *FeedbackResult, path string) (string, error) {
	if path == "" {
		f, err := os.CreateTemp("", "feedback_*.json")
		if err != nil {
			return "", fmt.Errorf("create snapshot file: %w", err)
		}
		path = f.Name()
		_ = f.Close()
	} else if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return "", fmt.Errorf("create snapshot directory: %w", err)
		}
	}

	snap := snapshot{
		InteractiveFeedback: result.InteractiveFeedback,
		CommandLogs:         result.CommandLogs,
		ChoiceResult:        result.ChoiceResult,
	}
	for _, img := range result.Images {
		entry := snapshotImage{Name: img.Name, Size: img.Size}
		switch data := img.Data.(type) {
		case []byte:
			entry.Data = base64.StdEncoding.EncodeToString(data)
			entry.DataType = "base64"
		case string:
			entry.Data = data
		}
		snap.Images = append(snap.Images, entry)
	}

	raw, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}

	return path, nil
}
