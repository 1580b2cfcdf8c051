package tts

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/tahcohcat/maitre/config"
	"github.com/tahcohcat/maitre/internal/logger"
)

// SystemEngine speaks through the operating system's speech command:
// `say` on macOS, espeak-ng/espeak elsewhere. It is the offline
// fallback when cloud synthesis is not configured.
type SystemEngine struct {
	voice    string
	baseRate int // words per minute
	logger   *logger.Log
}

func NewSystemEngine(cfg *config.TtsConfig) (*SystemEngine, error) {
	if _, err := exec.LookPath(speechBinary()); err != nil {
		return nil, fmt.Errorf("system speech command %q not found: %w", speechBinary(), err)
	}

	return &SystemEngine{
		voice:    systemVoiceName(cfg.Voice),
		baseRate: 160,
		logger:   logger.New(),
	}, nil
}

// SetBaseRate overrides the neutral speaking rate, e.g. from a voice
// profile derived from a recorded sample.
func (s *SystemEngine) SetBaseRate(wpm int) {
	if wpm > 0 {
		s.baseRate = wpm
	}
}

// rateFor maps a synthesis category onto the speech command's
// words-per-minute scale: supportive slows down, encouraging speeds up.
func (s *SystemEngine) rateFor(category Category) int {
	switch category {
	case CategorySupportive:
		if r := s.baseRate - 30; r > 130 {
			return r
		}
		return 130
	case CategoryEncouraging:
		if r := s.baseRate + 30; r < 190 {
			return r
		}
		return 190
	default:
		return s.baseRate
	}
}

func (s *SystemEngine) Synthesize(ctx context.Context, text string, category Category) ([]byte, error) {
	if text == "" {
		return nil, fmt.Errorf("text cannot be empty")
	}
	return renderSpeech(ctx, text, s.voice, s.rateFor(category))
}

func (s *SystemEngine) Speak(ctx context.Context, text string, category Category) error {
	if text == "" {
		return fmt.Errorf("text cannot be empty")
	}
	s.logger.Debug(fmt.Sprintf("Speaking with system voice %q at %d wpm", s.voice, s.rateFor(category)))
	return speak(ctx, text, s.voice, s.rateFor(category))
}

func (s *SystemEngine) Name() string {
	return fmt.Sprintf("System speech (%s)", speechBinary())
}
