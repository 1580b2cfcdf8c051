//go:build linux

package tts

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
)

func speechBinary() string {
	for _, bin := range []string{"espeak-ng", "espeak"} {
		if _, err := exec.LookPath(bin); err == nil {
			return bin
		}
	}
	return "espeak-ng"
}

// systemVoiceName maps the configured voice onto an espeak voice.
// Cloud voice names are ignored in favor of the default English voice.
func systemVoiceName(configured string) string {
	if configured == "" || (len(configured) > 2 && configured[2] == '-') {
		return "en"
	}
	return configured
}

func speak(ctx context.Context, text, voice string, rate int) error {
	bin := speechBinary()
	if _, err := exec.LookPath(bin); err != nil {
		return fmt.Errorf("speech not available: install espeak-ng or espeak")
	}
	cmd := exec.CommandContext(ctx, bin, "-v", voice, "-s", strconv.Itoa(rate), text)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("speech failed: %w\n%s", err, out)
	}
	return nil
}

// renderSpeech renders TTS to WAV bytes. espeak-ng/espeak write WAV to
// stdout with --stdout.
func renderSpeech(ctx context.Context, text, voice string, rate int) ([]byte, error) {
	bin := speechBinary()
	if _, err := exec.LookPath(bin); err != nil {
		return nil, fmt.Errorf("speech not available: install espeak-ng or espeak")
	}
	cmd := exec.CommandContext(ctx, bin, "-v", voice, "-s", strconv.Itoa(rate), "--stdout", text)
	data, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("speech to file failed: %w", err)
	}
	return data, nil
}

// playMP3 plays MP3 audio bytes through the first available player.
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

	players := [][]string{
		{"mpg123", "-q", path},
		{"ffplay", "-nodisp", "-autoexit", "-loglevel", "quiet", path},
	}
	for _, player := range players {
		if _, err := exec.LookPath(player[0]); err != nil {
			continue
		}
		cmd := exec.CommandContext(ctx, player[0], player[1:]...)
		if out, err := cmd.CombinedOutput(); err != nil {
			return fmt.Errorf("audio playback failed: %w\n%s", err, out)
		}
		return nil
	}
	return fmt.Errorf("no audio player found: install mpg123 or ffmpeg")
}
