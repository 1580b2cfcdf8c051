package tts

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tahcohcat/maitre/config"
)

func TestCategoryParameters(t *testing.T) {
	tests := []struct {
		category Category
		want     Parameters
	}{
		{CategorySupportive, Parameters{SpeakingRate: 0.9, Pitch: -2.0, VolumeGainDb: 2.0}},
		{CategoryEncouraging, Parameters{SpeakingRate: 1.1, Pitch: 1.5, VolumeGainDb: 1.0}},
		{CategoryNormal, Parameters{SpeakingRate: 1.0, Pitch: 0.0, VolumeGainDb: 0.0}},
		{Category("made-up"), Parameters{SpeakingRate: 1.0, Pitch: 0.0, VolumeGainDb: 0.0}},
	}

	for _, tt := range tests {
		t.Run(string(tt.category), func(t *testing.T) {
			assert.Equal(t, tt.want, CategoryParameters(tt.category))
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Category
	}{
		{
			name: "encouraging outweighs supportive",
			text: "You've got this! Every challenge makes you stronger. Keep going, I believe in you.",
			want: CategoryEncouraging,
		},
		{
			name: "supportive keywords",
			text: "I understand this mission can be difficult and lonely at times.",
			want: CategorySupportive,
		},
		{
			name: "neutral text",
			text: "The next resupply launch is scheduled for Tuesday.",
			want: CategoryNormal,
		},
		{
			name: "empty text",
			text: "",
			want: CategoryNormal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.text))
		})
	}
}

func TestGoogleBuildRequest(t *testing.T) {
	engine := &GoogleEngine{voice: "en-US-Chirp-HD-F", sampleRate: 22050}

	req := engine.BuildRequest("Hello [commander]", CategorySupportive)

	assert.Equal(t, "en-US", req.Voice.LanguageCode)
	assert.Equal(t, "en-US-Chirp-HD-F", req.Voice.Name)
	assert.Equal(t, "Hello commander", req.Input.GetText())

	require.NotNil(t, req.AudioConfig)
	assert.Equal(t, 0.9, req.AudioConfig.SpeakingRate)
	assert.Equal(t, -2.0, req.AudioConfig.Pitch)
	assert.Equal(t, 2.0, req.AudioConfig.VolumeGainDb)
	assert.Equal(t, int32(22050), req.AudioConfig.SampleRateHertz)

	req = engine.BuildRequest("Great work", CategoryEncouraging)
	assert.Equal(t, 1.1, req.AudioConfig.SpeakingRate)
	assert.Equal(t, 1.5, req.AudioConfig.Pitch)
	assert.Equal(t, 1.0, req.AudioConfig.VolumeGainDb)
}

func TestGoogleEngineRequiresCredentials(t *testing.T) {
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", "")

	_, err := NewGoogleEngine(&config.TtsConfig{Engine: "google"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GOOGLE_APPLICATION_CREDENTIALS")
}

func TestDisabledConfigSelectsDummy(t *testing.T) {
	engine := NewEngine(&config.TtsConfig{Enabled: false, Engine: "google"})
	assert.Equal(t, "dummy", engine.Name())

	// The dummy engine must suppress all audio output
	audio, err := engine.Synthesize(context.Background(), "hello", CategoryNormal)
	require.NoError(t, err)
	assert.Empty(t, audio)
	require.NoError(t, engine.Speak(context.Background(), "hello", CategoryNormal))
}

func TestSystemEngineRates(t *testing.T) {
	engine := &SystemEngine{baseRate: 160}

	assert.Equal(t, 160, engine.rateFor(CategoryNormal))
	assert.Equal(t, 130, engine.rateFor(CategorySupportive))
	assert.Equal(t, 190, engine.rateFor(CategoryEncouraging))

	engine.SetBaseRate(180)
	assert.Equal(t, 180, engine.rateFor(CategoryNormal))
	assert.Equal(t, 150, engine.rateFor(CategorySupportive))
	assert.Equal(t, 190, engine.rateFor(CategoryEncouraging))

	// Zero is ignored
	engine.SetBaseRate(0)
	assert.Equal(t, 180, engine.rateFor(CategoryNormal))
}
