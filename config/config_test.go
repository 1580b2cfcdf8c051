package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "ollama", cfg.LLM.Provider)
	assert.Equal(t, "llama3.1:8b", cfg.Ollama.Model)
	assert.Equal(t, "http://localhost:11434", cfg.Ollama.URL())

	assert.True(t, cfg.Tts.Enabled)
	assert.Equal(t, "google", cfg.Tts.Engine)
	assert.Equal(t, "en-US-Chirp-HD-F", cfg.Tts.Voice)
	assert.Equal(t, 22050, cfg.Tts.SampleRate)

	assert.Equal(t, "voice_samples", cfg.Voice.SamplesDir)
	assert.Equal(t, "storage/memories.json", cfg.Storage.MemoriesPath)
	assert.Equal(t, "persona/astronaut.json", cfg.Storage.PersonaFile)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Setenv("OLLAMA_HOST", "ollama.local")
	t.Setenv("OLLAMA_PORT", "11500")
	t.Setenv("MODEL", "mistral:7b")
	t.Setenv("GCS_BUCKET_NAME", "mission-voices")
	t.Setenv("GCS_VOICE_SAMPLE_PATH", "samples/commander.wav")
	t.Setenv("PERSONA_FILE", "persona/custom.json")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://ollama.local:11500", cfg.Ollama.URL())
	assert.Equal(t, "mistral:7b", cfg.Ollama.Model)
	assert.Equal(t, "mission-voices", cfg.Voice.Bucket)
	assert.Equal(t, "samples/commander.wav", cfg.Voice.BucketPath)
	assert.Equal(t, "persona/custom.json", cfg.Storage.PersonaFile)
}

func TestUseTTSDisablesSpeech(t *testing.T) {
	t.Setenv("USE_TTS", "0")

	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.Tts.Enabled)
}
