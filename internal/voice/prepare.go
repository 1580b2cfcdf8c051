package voice

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Prepare converts a recorded sample into the canonical reference
// format: 22050 Hz mono 16-bit PCM WAV. Returns the output path.
func (m *Manager) Prepare(ctx context.Context, inputPath string) (string, error) {
	if _, err := os.Stat(inputPath); err != nil {
		return "", fmt.Errorf("voice sample not found: %s", inputPath)
	}
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		return "", fmt.Errorf("ffmpeg not found, install it to prepare voice samples: %w", err)
	}

	outputPath := filepath.Join(m.dir, "prepared_voice.wav")

	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-i", inputPath,
		"-ar", "22050",
		"-ac", "1",
		"-acodec", "pcm_s16le",
		"-y",
		outputPath)
	if out, err := cmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("failed to prepare audio: %w\n%s", err, strings.TrimSpace(string(out)))
	}

	return outputPath, nil
}
