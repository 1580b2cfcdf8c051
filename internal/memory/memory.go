package memory

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Store persists free-text memory notes across chat sessions.
// Notes live in a flat JSON list so the file stays hand-editable.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// List returns all saved notes. A missing or corrupt file reads as empty.
func (s *Store) List() []string {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil
	}

	var notes []string
	if err := json.Unmarshal(data, &notes); err != nil {
		return nil
	}
	return notes
}

// Add appends a note and persists the list.
func (s *Store) Add(note string) error {
	note = strings.TrimSpace(note)
	if note == "" {
		return fmt.Errorf("empty note")
	}
	return s.save(append(s.List(), note))
}

// Clear removes all saved notes.
func (s *Store) Clear() error {
	return s.save([]string{})
}

func (s *Store) save(notes []string) error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create memory dir: %w", err)
		}
	}

	data, err := json.MarshalIndent(notes, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode memories: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write memories: %w", err)
	}
	return nil
}

// ShouldCapture reports whether the user's message asks to be remembered,
// e.g. "remember that my daughter's recital is on Friday".
func ShouldCapture(userText string) bool {
	lower := strings.ToLower(userText)
	return strings.Contains(lower, "remember that") || strings.Contains(lower, "note that")
}
