//go:build darwin

package tts

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
)

func speechBinary() string {
	return "say"
}

// systemVoiceName maps the configured voice onto a macOS voice. Cloud
// voice names like "en-US-Chirp-HD-F" mean nothing to `say`, so those
// fall back to a warm default.
func systemVoiceName(configured string) string {
	switch configured {
	case "", "en-US-Chirp-HD-F":
		return "Samantha"
	default:
		if len(configured) > 2 && configured[2] == '-' {
			// Looks like a locale-prefixed cloud voice name
			return "Samantha"
		}
		return configured
	}
}

func speak(ctx context.Context, text, voice string, rate int) error {
	cmd := exec.CommandContext(ctx, "say", "-v", voice, "-r", strconv.Itoa(rate), text)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("speech failed: %w\n%s", err, out)
	}
	return nil
}

// renderSpeech renders TTS to WAV bytes. macOS `say` outputs AIFF
// natively, so we write a temp AIFF then convert with afconvert.
func renderSpeech(ctx context.Context, text, voice string, rate int) ([]byte, error) {
	tmp, err := os.CreateTemp("", "maitre-say-*.wav")
	if err != nil {
		return nil, fmt.Errorf("temp file: %w", err)
	}
	wavPath := tmp.Name()
	tmp.Close()
	defer os.Remove(wavPath)

	aiff := wavPath + ".aiff"
	cmd := exec.CommandContext(ctx, "say", "-v", voice, "-r", strconv.Itoa(rate), "-o", aiff, text)
	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("speech to file failed: %w\n%s", err, out)
	}
	defer os.Remove(aiff)

	cmd = exec.CommandContext(ctx, "afconvert", "-f", "WAVE", "-d", "LEI16", aiff, wavPath)
	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("aiff to wav conversion failed: %w\n%s", err, out)
	}

	return os.ReadFile(wavPath)
}

// playMP3 plays MP3 audio bytes through the system player.
func playMP3(ctx context.Context, audio []byte) error {
	tmp, err := os.CreateTemp("", "maitre-tts-*.mp3")
	if err != nil {
		return fmt.Errorf("temp file: %w", err)
	}
	path := tmp.Name()
	defer os.Remove(path)

	if _, err := tmp.Write(audio); err != nil {
		tmp.Close()
		return fmt.Errorf("write audio: %w", err)
	}
	tmp.Close()

	cmd := exec.CommandContext(ctx, "afplay", path)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("audio playback failed: %w\n%s", err, out)
	}
	return nil
}
