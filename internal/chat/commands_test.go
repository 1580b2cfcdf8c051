package chat

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tahcohcat/maitre/config"
	"github.com/tahcohcat/maitre/internal/llm"
	"github.com/tahcohcat/maitre/internal/memory"
	"github.com/tahcohcat/maitre/internal/persona"
	"github.com/tahcohcat/maitre/internal/tts"
	"github.com/tahcohcat/maitre/internal/voice"
)

// scriptedLLM replays canned replies instead of calling a model.
type scriptedLLM struct {
	replies []string
	err     error
	calls   int
}

func (s *scriptedLLM) Chat(_ context.Context, _ []llm.Message, onDelta func(string)) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	reply := "Copy that, commander."
	if s.calls < len(s.replies) {
		reply = s.replies[s.calls]
	}
	s.calls++
	if onDelta != nil {
		onDelta(reply)
	}
	return reply, nil
}

func (s *scriptedLLM) IsModelAvailable(context.Context) error { return nil }

func newTestSession(t *testing.T, model llm.LLM) *Session {
	t.Helper()

	dir := t.TempDir()
	cfg := &config.Config{
		Voice: config.VoiceConfig{SamplesDir: filepath.Join(dir, "voice_samples")},
		Storage: config.StorageConfig{
			MemoriesPath:   filepath.Join(dir, "memories.json"),
			ChatHistoryDir: filepath.Join(dir, "chat_history"),
		},
	}

	profile := &persona.Persona{AstronautName: "Cmdr. Test"}
	memories := memory.NewStore(cfg.Storage.MemoriesPath)
	voices, err := voice.NewManager(cfg.Voice.SamplesDir)
	require.NoError(t, err)

	session, err := New(cfg, profile, model, tts.NewDummyEngine(), memories, voices, nil)
	require.NoError(t, err)
	t.Cleanup(func() { session.Close() })
	return session
}

func TestHandleCommandPassthrough(t *testing.T) {
	s := newTestSession(t, &scriptedLLM{})

	_, handled := s.HandleCommand(context.Background(), "hello there")
	assert.False(t, handled)
}

func TestHandleCommandExit(t *testing.T) {
	s := newTestSession(t, &scriptedLLM{})

	result, handled := s.HandleCommand(context.Background(), "/exit")
	require.True(t, handled)
	assert.True(t, result.Exit)
	assert.Equal(t, "Goodbye. Safe travels, commander!", result.Reply)
}

func TestHandleCommandHelp(t *testing.T) {
	s := newTestSession(t, &scriptedLLM{})

	result, handled := s.HandleCommand(context.Background(), "/help")
	require.True(t, handled)
	assert.False(t, result.Exit)
	assert.Contains(t, result.Reply, "/remember <note>")
	assert.Contains(t, result.Reply, "/voice_info")
}

func TestMemoryCommands(t *testing.T) {
	s := newTestSession(t, &scriptedLLM{})
	ctx := context.Background()

	result, _ := s.HandleCommand(ctx, "/mem")
	assert.Equal(t, "No saved memories yet. Use /remember <note> to add one.", result.Reply)

	result, _ = s.HandleCommand(ctx, "/remember likes stargazing from the cupola")
	assert.Equal(t, "Saved.", result.Reply)

	result, _ = s.HandleCommand(ctx, "/mem")
	assert.Contains(t, result.Reply, "likes stargazing from the cupola")

	result, _ = s.HandleCommand(ctx, "/remember")
	assert.Equal(t, "Usage: /remember <note>", result.Reply)

	result, _ = s.HandleCommand(ctx, "/clear_mem")
	assert.Equal(t, "Cleared all memories.", result.Reply)

	result, _ = s.HandleCommand(ctx, "/mem")
	assert.Equal(t, "No saved memories yet. Use /remember <note> to add one.", result.Reply)
}

func TestVoiceInfoWithoutVoice(t *testing.T) {
	s := newTestSession(t, &scriptedLLM{})

	result, handled := s.HandleCommand(context.Background(), "/voice_info")
	require.True(t, handled)
	assert.Equal(t, "No voice set. Use /voice <path> to set a voice file.", result.Reply)
}

func TestVoiceCommandMissingFile(t *testing.T) {
	s := newTestSession(t, &scriptedLLM{})

	result, handled := s.HandleCommand(context.Background(), "/voice nope.wav")
	require.True(t, handled)
	assert.Equal(t, "File not found: nope.wav", result.Reply)
}

func TestUnknownCommand(t *testing.T) {
	s := newTestSession(t, &scriptedLLM{})

	result, handled := s.HandleCommand(context.Background(), "/teleport")
	require.True(t, handled)
	assert.Equal(t, "Unknown command. Type /help for available commands.", result.Reply)
}

func TestGreet(t *testing.T) {
	s := newTestSession(t, &scriptedLLM{})

	greeting := s.Greet(context.Background())
	assert.Contains(t, greeting, "Hello commander")
}

func TestRespondRecordsExchange(t *testing.T) {
	model := &scriptedLLM{replies: []string{"You're doing great, keep going, I believe in you!"}}
	s := newTestSession(t, model)

	var streamed string
	reply, category, err := s.Respond(context.Background(), "I had a rough day", func(delta string) {
		streamed += delta
	})
	require.NoError(t, err)
	assert.Equal(t, "You're doing great, keep going, I believe in you!", reply)
	assert.Equal(t, reply, streamed)
	assert.Equal(t, tts.CategoryEncouraging, category)
}

func TestRespondCapturesExplicitMemories(t *testing.T) {
	s := newTestSession(t, &scriptedLLM{replies: []string{"Noted."}})

	_, _, err := s.Respond(context.Background(), "Remember that my daughter's recital is on Friday", nil)
	require.NoError(t, err)

	notes := s.memories.List()
	require.Len(t, notes, 1)
	assert.Contains(t, notes[0], "recital")
}

func TestRespondRollsBackOnModelError(t *testing.T) {
	s := newTestSession(t, &scriptedLLM{err: errors.New("connection refused")})
	before := len(s.messages)

	_, _, err := s.Respond(context.Background(), "are you there?", nil)
	require.Error(t, err)
	assert.Len(t, s.messages, before)
}

func TestBlankReplyIsNotSpoken(t *testing.T) {
	s := newTestSession(t, &scriptedLLM{replies: []string{"   "}})

	reply, category, err := s.Respond(context.Background(), "hello", nil)
	require.NoError(t, err)
	assert.Equal(t, "(no response)", reply)
	assert.Equal(t, tts.CategoryNormal, category)
}
