package tts

import (
	"context"
	"strings"

	"github.com/tahcohcat/maitre/config"
	"github.com/tahcohcat/maitre/internal/logger"
)

// Category selects the delivery style of a synthesized reply.
type Category string

const (
	CategorySupportive  Category = "supportive"
	CategoryEncouraging Category = "encouraging"
	CategoryNormal      Category = "normal"
)

// Parameters are the synthesis settings attached to a category.
type Parameters struct {
	SpeakingRate float64
	Pitch        float64
	VolumeGainDb float64
}

// CategoryParameters returns the fixed synthesis tuple for a category.
// Unknown categories fall back to normal delivery.
func CategoryParameters(category Category) Parameters {
	switch category {
	case CategorySupportive:
		return Parameters{SpeakingRate: 0.9, Pitch: -2.0, VolumeGainDb: 2.0}
	case CategoryEncouraging:
		return Parameters{SpeakingRate: 1.1, Pitch: 1.5, VolumeGainDb: 1.0}
	default:
		return Parameters{SpeakingRate: 1.0, Pitch: 0.0, VolumeGainDb: 0.0}
	}
}

// Engine converts companion replies to audio.
type Engine interface {
	// Synthesize renders text to audio bytes without playing it.
	Synthesize(ctx context.Context, text string, category Category) ([]byte, error)

	// Speak renders and plays the text.
	Speak(ctx context.Context, text string, category Category) error

	Name() string
}

var encouragingWords = []string{
	"great", "excellent", "amazing", "proud", "success", "achieve",
	"strength", "courage", "believe", "you can", "keep going",
}

var supportiveWords = []string{
	"understand", "difficult", "challenging", "stress", "worry",
	"anxiety", "tired", "lonely", "hard", "struggle", "here for you",
}

// Classify picks a synthesis category from the reply content by
// counting encouraging vs. supportive keywords.
func Classify(text string) Category {
	lower := strings.ToLower(text)

	encouraging := 0
	for _, w := range encouragingWords {
		if strings.Contains(lower, w) {
			encouraging++
		}
	}

	supportive := 0
	for _, w := range supportiveWords {
		if strings.Contains(lower, w) {
			supportive++
		}
	}

	switch {
	case encouraging > supportive:
		return CategoryEncouraging
	case supportive > 0:
		return CategorySupportive
	default:
		return CategoryNormal
	}
}

// NewEngine builds the configured TTS engine. A disabled config always
// yields the dummy engine. When the preferred engine cannot be
// constructed the next one in the chain (google -> system -> dummy) is
// tried so a missing cloud setup never blocks the chat loop.
func NewEngine(cfg *config.TtsConfig) Engine {
	log := logger.New()

	if !cfg.Enabled {
		return NewDummyEngine()
	}

	switch cfg.Engine {
	case "google":
		engine, err := NewGoogleEngine(cfg)
		if err == nil {
			return engine
		}
		log.WithError(err).Warn("google tts unavailable, falling back to system voice")
		fallthrough
	case "system":
		engine, err := NewSystemEngine(cfg)
		if err == nil {
			return engine
		}
		log.WithError(err).Warn("system voice unavailable, audio output disabled")
		return NewDummyEngine()
	default:
		return NewDummyEngine()
	}
}
