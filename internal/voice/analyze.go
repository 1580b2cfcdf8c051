package voice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// probeResult mirrors the JSON ffprobe emits for -show_format -show_streams.
type probeResult struct {
	Streams []probeStream `json:"streams"`
	Format  probeFormat   `json:"format"`
}

type probeStream struct {
	CodecName  string `json:"codec_name"`
	CodecType  string `json:"codec_type"`
	SampleRate string `json:"sample_rate"`
	Channels   int    `json:"channels"`
	Duration   string `json:"duration"`
}

type probeFormat struct {
	Duration string `json:"duration"`
	BitRate  string `json:"bit_rate"`
}

// Profile describes the measured characteristics of a voice sample.
type Profile struct {
	Path       string
	Codec      string
	Duration   float64 // seconds
	SampleRate int     // Hz
	Channels   int
	BitRate    int // bits per second
}

// Report is the outcome of validating a sample for voice matching.
type Report struct {
	Profile         Profile
	Issues          []string
	Recommendations []string
}

// OK reports whether the sample passed all checks.
func (r Report) OK() bool {
	return len(r.Issues) == 0
}

// Analyze inspects an audio file with ffprobe and builds its profile.
func Analyze(ctx context.Context, path string) (Profile, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Profile{}, errors.New("voice analyze: empty path")
	}

	cmd := exec.CommandContext(ctx, "ffprobe",
		"-v", "quiet", "-print_format", "json", "-show_format", "-show_streams", path)
	output, err := cmd.Output()
	if err != nil {
		return Profile{}, fmt.Errorf("could not analyze audio file: %w", err)
	}

	var result probeResult
	if err := json.Unmarshal(output, &result); err != nil {
		return Profile{}, fmt.Errorf("ffprobe parse: %w", err)
	}

	var audio *probeStream
	for i := range result.Streams {
		if strings.EqualFold(result.Streams[i].CodecType, "audio") {
			audio = &result.Streams[i]
			break
		}
	}
	if audio == nil {
		return Profile{}, fmt.Errorf("no audio stream in %s", path)
	}

	profile := Profile{
		Path:       path,
		Codec:      audio.CodecName,
		Duration:   parseFloat(result.Format.Duration),
		SampleRate: parseInt(audio.SampleRate),
		Channels:   audio.Channels,
		BitRate:    parseInt(result.Format.BitRate),
	}
	if profile.Duration == 0 {
		profile.Duration = parseFloat(audio.Duration)
	}

	return profile, nil
}

// Validate checks a profile against the requirements for a usable
// reference sample: 10-60 seconds of speech at 16 kHz or better, mono
// preferred.
func Validate(profile Profile) Report {
	report := Report{Profile: profile}

	if profile.Duration < 10 {
		report.Issues = append(report.Issues, "audio too short (less than 10 seconds)")
		report.Recommendations = append(report.Recommendations, "record at least 10-30 seconds of speech")
	} else if profile.Duration > 60 {
		report.Issues = append(report.Issues, "audio too long (more than 60 seconds)")
		report.Recommendations = append(report.Recommendations, "use 10-30 seconds for best results")
	}

	if profile.SampleRate < 16000 {
		report.Issues = append(report.Issues, "low sample rate (less than 16kHz)")
		report.Recommendations = append(report.Recommendations, "record at 22kHz or higher")
	}

	if profile.Channels > 1 {
		report.Issues = append(report.Issues, "stereo audio detected")
		report.Recommendations = append(report.Recommendations, "mono audio works better for voice matching")
	}

	if profile.BitRate > 0 && profile.BitRate < 64000 {
		report.Issues = append(report.Issues, "low bit rate")
		report.Recommendations = append(report.Recommendations, "use a higher quality recording")
	}

	return report
}

// SpeakingRate estimates a words-per-minute base rate for the system
// voice from the sample's measured characteristics.
func (p Profile) SpeakingRate() int {
	switch {
	case p.SampleRate > 0 && p.SampleRate < 16000:
		return 140
	case p.SampleRate >= 44100:
		return 180
	default:
		return 160
	}
}

func parseFloat(value string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0
	}
	return f
}

func parseInt(value string) int {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0
	}
	return n
}
