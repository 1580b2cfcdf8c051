package chat

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/tahcohcat/maitre/config"
	"github.com/tahcohcat/maitre/internal/database"
	"github.com/tahcohcat/maitre/internal/llm"
	"github.com/tahcohcat/maitre/internal/logger"
	"github.com/tahcohcat/maitre/internal/memory"
	"github.com/tahcohcat/maitre/internal/persona"
	"github.com/tahcohcat/maitre/internal/tts"
	"github.com/tahcohcat/maitre/internal/voice"
)

const autoGreeting = "Hello commander, how are you feeling today? I'm here to support you on this mission."

// maxSeededMemories caps how many notes are injected into the context.
const maxSeededMemories = 10

// Session holds one running conversation with the companion.
type Session struct {
	cfg      *config.Config
	profile  *persona.Persona
	model    llm.LLM
	engine   tts.Engine
	memories *memory.Store
	voices   *voice.Manager
	db       *database.DB // optional transcript store
	history  *historyLog

	messages  []llm.Message
	sessionID int64
	logger    *logger.Log
}

// New assembles a chat session: system prompt from the persona, saved
// memories seeded as extra context.
func New(cfg *config.Config, profile *persona.Persona, model llm.LLM, engine tts.Engine,
	memories *memory.Store, voices *voice.Manager, db *database.DB) (*Session, error) {

	s := &Session{
		cfg:      cfg,
		profile:  profile,
		model:    model,
		engine:   engine,
		memories: memories,
		voices:   voices,
		db:       db,
		logger:   logger.New(),
	}

	s.messages = append(s.messages, llm.Message{
		Role:    "system",
		Content: profile.SystemPrompt(),
	})

	if notes := memories.List(); len(notes) > 0 {
		if len(notes) > maxSeededMemories {
			notes = notes[:maxSeededMemories]
		}
		s.messages = append(s.messages, llm.Message{
			Role:    "system",
			Content: "Context: Here are personal notes to help you connect: " + strings.Join(notes, "; "),
		})
	}

	history, err := openHistoryLog(cfg.Storage.ChatHistoryDir)
	if err != nil {
		return nil, err
	}
	s.history = history

	if db != nil {
		id, err := db.StartSession()
		if err != nil {
			s.logger.WithError(err).Warn("transcript store unavailable")
		} else {
			s.sessionID = id
		}
	}

	return s, nil
}

// Close flushes the chat log and finishes the transcript session.
func (s *Session) Close() error {
	if s.db != nil && s.sessionID != 0 {
		if err := s.db.FinishSession(s.sessionID); err != nil {
			s.logger.WithError(err).Warn("failed to finish transcript session")
		}
	}
	return s.history.Close()
}

// Greet speaks and records the opening line.
func (s *Session) Greet(ctx context.Context) string {
	s.messages = append(s.messages, llm.Message{Role: "assistant", Content: autoGreeting})
	s.speak(ctx, autoGreeting, tts.CategorySupportive)
	return autoGreeting
}

// Respond sends the user's message to the model, speaks the reply and
// records the exchange. onDelta receives streamed reply fragments.
func (s *Session) Respond(ctx context.Context, userText string, onDelta func(string)) (string, tts.Category, error) {
	s.messages = append(s.messages, llm.Message{Role: "user", Content: userText})

	reply, err := s.model.Chat(ctx, s.messages, onDelta)
	if err != nil {
		// Keep the conversation consistent: drop the unanswered turn
		s.messages = s.messages[:len(s.messages)-1]
		return "", tts.CategoryNormal, err
	}

	reply = strings.TrimSpace(reply)
	if reply == "" {
		reply = "(no response)"
	}
	s.messages = append(s.messages, llm.Message{Role: "assistant", Content: reply})

	category := tts.Classify(reply)
	if reply != "(no response)" {
		s.speak(ctx, reply, category)
	}

	if err := s.history.Append(userText, reply); err != nil {
		s.logger.WithError(err).Warn("failed to write chat log")
	}
	if s.db != nil && s.sessionID != 0 {
		if err := s.db.RecordExchange(s.sessionID, userText, reply, string(category)); err != nil {
			s.logger.WithError(err).Warn("failed to record exchange")
		}
	}

	// Lightweight memory heuristic: store what the user explicitly
	// asks to be remembered
	if memory.ShouldCapture(userText) {
		if err := s.memories.Add(userText); err != nil {
			s.logger.WithError(err).Warn("failed to capture memory")
		}
	}

	return reply, category, nil
}

// Engine exposes the active TTS engine, e.g. for a startup banner.
func (s *Session) Engine() tts.Engine {
	return s.engine
}

func (s *Session) speak(ctx context.Context, text string, category tts.Category) {
	if err := s.engine.Speak(ctx, text, category); err != nil {
		s.logger.WithError(err).Warn("tts error")
	}
}

func (s *Session) applyVoiceProfile(profile voice.Profile) {
	if system, ok := s.engine.(*tts.SystemEngine); ok {
		system.SetBaseRate(profile.SpeakingRate())
	}
}

// Run drives the terminal chat loop until /exit or EOF.
func (s *Session) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	fmt.Fprintf(out, "Maitre Pen-Pal ready. Type /help for commands.\n\n")
	fmt.Fprintf(out, "Maitre: %s\n\n", s.Greet(ctx))

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "You: ")
		if !scanner.Scan() {
			fmt.Fprintln(out, "\nGoodbye.")
			return scanner.Err()
		}

		userText := strings.TrimSpace(scanner.Text())
		if userText == "" {
			continue
		}

		if result, handled := s.HandleCommand(ctx, userText); handled {
			fmt.Fprintln(out, result.Reply)
			if result.Exit {
				return nil
			}
			continue
		}

		fmt.Fprint(out, "Maitre: ")
		_, _, err := s.Respond(ctx, userText, func(delta string) {
			fmt.Fprint(out, delta)
		})
		if err != nil {
			fmt.Fprintf(out, "\n[Error contacting the model] %v\n", err)
			continue
		}
		fmt.Fprint(out, "\n\n")
	}
}

// Bootstrap ensures the working directories from the documented file
// layout exist.
func Bootstrap(cfg *config.Config) error {
	dirs := []string{
		"persona",
		"storage",
		cfg.Storage.ChatHistoryDir,
		cfg.Voice.SamplesDir,
	}
	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	return nil
}
