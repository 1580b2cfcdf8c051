package tts

import (
	"context"

	"github.com/tahcohcat/maitre/internal/logger"
)

// DummyEngine swallows all synthesis requests. Selected when USE_TTS=0.
type DummyEngine struct {
}

func NewDummyEngine() *DummyEngine {
	return &DummyEngine{}
}

func (d *DummyEngine) Synthesize(_ context.Context, text string, category Category) ([]byte, error) {
	logger.New().Debug("no tts configured. ignoring synthesis request")
	return nil, nil
}

func (d *DummyEngine) Speak(_ context.Context, text string, category Category) error {
	logger.New().Debug("no tts configured. ignoring speak request")
	return nil
}

func (d *DummyEngine) Name() string {
	return "dummy"
}
