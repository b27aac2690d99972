package feedback

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// ChoiceLog is an append-only JSONL trace of choice normalization
// decisions. It exists to debug shape mismatches between agents and the
// feedback form without enabling full debug logging; write failures are
// swallowed so the log can never affect the main flow.
type ChoiceLog struct {
	mu sync.Mutex
	f  *os.File
}

// NewChoiceLog opens (or creates) choice_debug.jsonl under dataDir.
func NewChoiceLog(dataDir string) (*ChoiceLog, error) {
	if dataDir == "" {
		return nil, fmt.Errorf("data dir not configured")
	}
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return nil, err
	}

	path := filepath.Join(dataDir, "choice_debug.jsonl")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, err
	}
	return &ChoiceLog{f: f}, nil
}

// Close releases the underlying file. Safe on nil receivers so callers
// can defer it unconditionally.
func (l *ChoiceLog) Close() {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.f != nil {
		_ = l.f.Close()
		l.f = nil
	}
}

// ChoiceRecord captures one invocation's choice processing outcome.
type ChoiceRecord struct {
	TS               string         `json:"ts"`
	ChoicesType      string         `json:"choices_type"`
	ChoiceConfigType string         `json:"choice_config_type"`
	Payload          *ChoicePayload `json:"choice_payload,omitempty"`
	FallbackUsed     bool           `json:"fallback_used,omitempty"`
}

// Record appends one decision record. Errors are deliberately dropped.
func (l *ChoiceLog) Record(choices, choiceConfig any, payload *ChoicePayload, fallbackUsed bool) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.f == nil {
		return
	}

	rec := ChoiceRecord{
		TS:               time.Now().UTC().Format(time.RFC3339Nano),
		ChoicesType:      fmt.Sprintf("%T", choices),
		ChoiceConfigType: fmt.Sprintf("%T", choiceConfig),
		Payload:          payload,
		FallbackUsed:     fallbackUsed,
	}

	b, err := json.Marshal(rec)
	if err != nil {
		return
	}
	b = append(b, '\n')
	_, _ = l.f.Write(b)
}
