package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/tahcohcat/maitre/config"
	"github.com/tahcohcat/maitre/internal/chat"
	"github.com/tahcohcat/maitre/internal/database"
	"github.com/tahcohcat/maitre/internal/deps"
	"github.com/tahcohcat/maitre/internal/llm"
	"github.com/tahcohcat/maitre/internal/logger"
	"github.com/tahcohcat/maitre/internal/memory"
	"github.com/tahcohcat/maitre/internal/persona"
	"github.com/tahcohcat/maitre/internal/tts"
	"github.com/tahcohcat/maitre/internal/voice"
)

func main() {
	checkOnly := flag.Bool("check", false, "check external tool availability and exit")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	if *debug {
		logger.GlobalLogLevel = logger.LogLevelDebug
	}
	log := logger.New()

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Error("Failed to load configuration")
		os.Exit(1)
	}

	if *checkOnly {
		os.Exit(runSetupCheck())
	}

	if err := chat.Bootstrap(cfg); err != nil {
		log.WithError(err).Error("Failed to prepare working directories")
		os.Exit(1)
	}

	// Warn early about missing tools instead of failing mid-chat
	statuses := deps.Check(deps.Defaults())
	for _, missing := range deps.MissingRequired(statuses) {
		log.Warn(fmt.Sprintf("%s (%s): %s", missing.Name, missing.Description, missing.Detail))
	}

	profile, err := persona.Load(cfg.Storage.PersonaFile)
	if err != nil {
		log.WithError(err).Error("Persona file is required. Please create it")
		os.Exit(1)
	}

	model, err := llm.NewLLMClient(cfg)
	if err != nil {
		log.WithError(err).Error("Failed to create LLM client")
		os.Exit(1)
	}

	ctx := context.Background()

	if ollamaClient, ok := model.(*llm.OllamaClient); ok {
		if err := ollamaClient.Ping(ctx); err != nil {
			log.WithError(err).Error("Ollama is not running. Start it with 'ollama serve'")
			os.Exit(1)
		}
		if err := model.IsModelAvailable(ctx); err != nil {
			log.WithError(err).Warn("Configured model not pulled yet")
		}
	}

	engine := tts.NewEngine(&cfg.Tts)
	log.Info(fmt.Sprintf("Voice output: %s", engine.Name()))

	voices, err := voice.NewManager(cfg.Voice.SamplesDir)
	if err != nil {
		log.WithError(err).Error("Failed to prepare voice samples directory")
		os.Exit(1)
	}

	setupVoiceSample(ctx, cfg, voices, engine, log)

	memories := memory.NewStore(cfg.Storage.MemoriesPath)

	db, err := database.NewDatabase(cfg.Storage.DatabasePath)
	if err != nil {
		log.WithError(err).Warn("Transcript store unavailable, continuing without it")
		db = nil
	} else {
		defer db.Close()
	}

	session, err := chat.New(cfg, profile, model, engine, memories, voices, db)
	if err != nil {
		log.WithError(err).Error("Failed to start chat session")
		os.Exit(1)
	}
	defer session.Close()

	if err := session.Run(ctx, os.Stdin, os.Stdout); err != nil {
		log.WithError(err).Error("Chat loop ended unexpectedly")
		os.Exit(1)
	}
}

// setupVoiceSample makes a reference sample available: the configured
// local file first, then a download from the configured bucket. Either
// way the prepared sample becomes the active voice.
func setupVoiceSample(ctx context.Context, cfg *config.Config, voices *voice.Manager, engine tts.Engine, log *logger.Log) {
	if _, err := voices.Current(); err == nil {
		return // a voice is already selected
	} else if !errors.Is(err, voice.ErrNoVoice) {
		log.WithError(err).Warn("Could not read voice pointer")
		return
	}

	samplePath := cfg.Voice.SampleFile
	if samplePath == "" && cfg.Voice.Bucket != "" {
		downloaded, err := voices.FetchFromBucket(ctx, cfg.Voice.Bucket, cfg.Voice.BucketPath)
		if err != nil {
			log.WithError(err).Warn("Voice sample download failed")
			return
		}
		samplePath = downloaded
	}
	if samplePath == "" {
		return
	}

	prepared, err := voices.Prepare(ctx, samplePath)
	if err != nil {
		log.WithError(err).Warn("Voice sample preparation failed")
		return
	}

	if err := voices.Set(prepared); err != nil {
		log.WithError(err).Warn("Could not select prepared voice")
		return
	}

	profile, err := voice.Analyze(ctx, prepared)
	if err != nil {
		log.WithError(err).Debug("Voice analysis skipped")
		return
	}
	if system, ok := engine.(*tts.SystemEngine); ok {
		system.SetBaseRate(profile.SpeakingRate())
	}
	log.Info(fmt.Sprintf("Voice sample ready: %.1fs at %d Hz", profile.Duration, profile.SampleRate))
}

func runSetupCheck() int {
	statuses := deps.Check(deps.Defaults())
	for _, status := range statuses {
		mark := "ok"
		if !status.Available {
			mark = "missing"
			if status.Optional {
				mark = "missing (optional)"
			}
		}
		fmt.Printf("%-10s %-28s %s\n", status.Command, status.Description, mark)
		if status.Detail != "" {
			fmt.Printf("           %s\n", status.Detail)
		}
	}
	if len(deps.MissingRequired(statuses)) > 0 {
		return 1
	}
	return 0
}
