package tts

import (
	"context"
	"fmt"
	"os"
	"strings"

	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	ttspb "cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
	"google.golang.org/api/option"

	"github.com/tahcohcat/maitre/config"
	"github.com/tahcohcat/maitre/internal/logger"
)

type GoogleEngine struct {
	client     *texttospeech.Client
	voice      string
	language   string
	sampleRate int32
	logger     *logger.Log
}

func NewGoogleEngine(cfg *config.TtsConfig) (*GoogleEngine, error) {
	ctx := context.Background()

	credentials := cfg.Credentials
	if credentials == "" {
		credentials = os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")
	}
	if credentials == "" {
		return nil, fmt.Errorf("google tts authentication failed: GOOGLE_APPLICATION_CREDENTIALS is not set")
	}

	client, err := texttospeech.NewClient(ctx, option.WithCredentialsFile(credentials))
	if err != nil {
		return nil, fmt.Errorf("failed to create google tts client: %w", err)
	}

	sampleRate := int32(cfg.SampleRate)
	if sampleRate == 0 {
		sampleRate = 22050
	}

	return &GoogleEngine{
		client:     client,
		voice:      cfg.Voice,
		language:   cfg.LanguageCode,
		sampleRate: sampleRate,
		logger:     logger.New(),
	}, nil
}

// Extract language code from voice name (e.g. "en-US-Chirp-HD-F" -> "en-US")
func (g *GoogleEngine) languageCode() string {
	if g.language != "" {
		return g.language
	}
	parts := strings.Split(g.voice, "-")
	if len(parts) >= 2 {
		return fmt.Sprintf("%s-%s", parts[0], parts[1])
	}
	return "en-US"
}

// BuildRequest assembles the synthesis request for a category.
func (g *GoogleEngine) BuildRequest(text string, category Category) *ttspb.SynthesizeSpeechRequest {
	params := CategoryParameters(category)

	// Square brackets read badly when spoken aloud
	cleanText := strings.ReplaceAll(text, "[", "")
	cleanText = strings.ReplaceAll(cleanText, "]", "")

	return &ttspb.SynthesizeSpeechRequest{
		Input: &ttspb.SynthesisInput{
			InputSource: &ttspb.SynthesisInput_Text{Text: cleanText},
		},
		Voice: &ttspb.VoiceSelectionParams{
			LanguageCode: g.languageCode(),
			Name:         g.voice,
		},
		AudioConfig: &ttspb.AudioConfig{
			AudioEncoding:   ttspb.AudioEncoding_MP3,
			SpeakingRate:    params.SpeakingRate,
			Pitch:           params.Pitch,
			VolumeGainDb:    params.VolumeGainDb,
			SampleRateHertz: g.sampleRate,
		},
	}
}

// Synthesize generates MP3 audio for the text without playing it.
func (g *GoogleEngine) Synthesize(ctx context.Context, text string, category Category) ([]byte, error) {
	if text == "" {
		return nil, fmt.Errorf("text cannot be empty")
	}

	req := g.BuildRequest(text, category)

	g.logger.Debug(fmt.Sprintf("Generating google tts audio with voice: %s, category: %s", g.voice, category))

	resp, err := g.client.SynthesizeSpeech(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to synthesize speech: %w", err)
	}

	if len(resp.AudioContent) == 0 {
		return nil, fmt.Errorf("empty audio content received from google tts")
	}

	g.logger.Debug(fmt.Sprintf("Generated %d bytes of MP3 audio", len(resp.AudioContent)))
	return resp.AudioContent, nil
}

// Speak synthesizes the text and plays it through the system player.
func (g *GoogleEngine) Speak(ctx context.Context, text string, category Category) error {
	audio, err := g.Synthesize(ctx, text, category)
	if err != nil {
		return err
	}
	return playMP3(ctx, audio)
}

func (g *GoogleEngine) Name() string {
	return "Google Cloud Text-to-Speech"
}

func (g *GoogleEngine) Close() error {
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}
