package chat

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// historyLog appends chat exchanges to a date-named log file, one JSON
// object per line.
type historyLog struct {
	file *os.File
}

type historyEntry struct {
	Timestamp string `json:"ts"`
	User      string `json:"user"`
	Assistant string `json:"assistant"`
}

func openHistoryLog(dir string) (*historyLog, error) {
	if dir == "" {
		dir = "chat_history"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create chat history dir: %w", err)
	}

	path := filepath.Join(dir, time.Now().Format("2006-01-02")+".log")
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open chat log: %w", err)
	}

	return &historyLog{file: file}, nil
}

func (h *historyLog) Append(user, assistant string) error {
	entry := historyEntry{
		Timestamp: time.Now().Format(time.RFC3339),
		User:      user,
		Assistant: assistant,
	}
	line, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to encode chat log entry: %w", err)
	}
	if _, err := h.file.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("failed to write chat log entry: %w", err)
	}
	return nil
}

func (h *historyLog) Close() error {
	if h.file == nil {
		return nil
	}
	return h.file.Close()
}
