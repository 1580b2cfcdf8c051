package deps

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCheck(t *testing.T) {
	binDir := t.TempDir()
	present := filepath.Join(binDir, "present")
	script := []byte("#!/bin/sh\nexit 0\n")
	if err := os.WriteFile(present, script, 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	reqs := []Requirement{
		{Name: "Present", Command: present},
		{Name: "Missing", Command: "clearly-not-present-binary"},
		{Name: "Unconfigured", Command: "  "},
	}

	results := Check(reqs)
	if len(results) != len(reqs) {
		t.Fatalf("expected %d results, got %d", len(reqs), len(results))
	}

	if !results[0].Available {
		t.Fatalf("expected first requirement to be available, got %#v", results[0])
	}
	if results[0].Detail != "" {
		t.Fatalf("unexpected detail for available dependency: %s", results[0].Detail)
	}

	if results[1].Available {
		t.Fatalf("expected missing binary to be unavailable")
	}
	if results[1].Detail == "" {
		t.Fatalf("expected detail message for missing binary")
	}

	if results[2].Available {
		t.Fatalf("expected unconfigured command to be unavailable")
	}
}

func TestCheckIsIdempotent(t *testing.T) {
	binDir := t.TempDir()
	present := filepath.Join(binDir, "ffmpeg")
	if err := os.WriteFile(present, []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	reqs := []Requirement{{Name: "ffmpeg", Command: present}}

	// An already-installed tool reports available on every run
	first := Check(reqs)
	second := Check(reqs)

	if !first[0].Available || !second[0].Available {
		t.Fatalf("expected tool to stay available across runs: %#v / %#v", first[0], second[0])
	}
}

func TestMissingRequired(t *testing.T) {
	statuses := []Status{
		{Name: "a", Available: true},
		{Name: "b", Available: false, Optional: true},
		{Name: "c", Available: false},
	}

	missing := MissingRequired(statuses)
	if len(missing) != 1 {
		t.Fatalf("expected 1 missing required dependency, got %d", len(missing))
	}
	if missing[0].Name != "c" {
		t.Fatalf("unexpected missing dependency: %s", missing[0].Name)
	}
}

func TestDefaultsIncludeAudioTools(t *testing.T) {
	var haveFFmpeg, haveFFprobe, haveOllama bool
	for _, req := range Defaults() {
		switch req.Command {
		case "ffmpeg":
			haveFFmpeg = true
		case "ffprobe":
			haveFFprobe = true
		case "ollama":
			haveOllama = true
		}
	}
	if !haveFFmpeg || !haveFFprobe || !haveOllama {
		t.Fatalf("defaults missing a core tool: ffmpeg=%v ffprobe=%v ollama=%v", haveFFmpeg, haveFFprobe, haveOllama)
	}
}
