package voice

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/schollz/closestmatch"
)

const pointerFile = "current_voice.txt"

// ErrNoVoice is returned when no voice sample has been selected yet.
var ErrNoVoice = fmt.Errorf("no voice set")

// Manager tracks the voice samples directory and the pointer file that
// names the active sample.
type Manager struct {
	dir string
}

func NewManager(samplesDir string) (*Manager, error) {
	if samplesDir == "" {
		samplesDir = "voice_samples"
	}
	if err := os.MkdirAll(samplesDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create samples dir: %w", err)
	}
	return &Manager{dir: samplesDir}, nil
}

func (m *Manager) Dir() string {
	return m.dir
}

// Current returns the path of the active voice sample, or ErrNoVoice
// when the pointer file does not exist.
func (m *Manager) Current() (string, error) {
	data, err := os.ReadFile(filepath.Join(m.dir, pointerFile))
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrNoVoice
		}
		return "", fmt.Errorf("failed to read voice pointer: %w", err)
	}

	path := strings.TrimSpace(string(data))
	if path == "" {
		return "", ErrNoVoice
	}
	return path, nil
}

// Set points the active voice at the given sample file.
func (m *Manager) Set(path string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("voice sample not found: %s", path)
	}
	if err := os.WriteFile(filepath.Join(m.dir, pointerFile), []byte(path+"\n"), 0o644); err != nil {
		return fmt.Errorf("failed to write voice pointer: %w", err)
	}
	return nil
}

// Samples lists the audio files in the samples directory.
func (m *Manager) Samples() []string {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		return nil
	}

	var samples []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".wav", ".mp3", ".m4a", ".flac":
			samples = append(samples, entry.Name())
		}
	}
	return samples
}

// Resolve turns a /voice argument into a sample path. Existing paths
// are taken as-is; anything else is fuzzy-matched against the files in
// the samples directory so "prepared" finds "prepared_voice.wav".
func (m *Manager) Resolve(arg string) (string, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return "", fmt.Errorf("empty voice path")
	}

	if _, err := os.Stat(arg); err == nil {
		return arg, nil
	}

	samples := m.Samples()
	if len(samples) == 0 {
		return "", fmt.Errorf("voice sample not found: %s", arg)
	}

	cm := closestmatch.New(samples, []int{2, 3})
	match := cm.Closest(strings.ToLower(arg))
	if match == "" {
		return "", fmt.Errorf("voice sample not found: %s", arg)
	}
	return filepath.Join(m.dir, match), nil
}
