package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tahcohcat/maitre/internal/voice"
)

const helpText = `Commands:
/help            - Show this help
/mem             - List memories
/remember <note> - Add a memory
/clear_mem       - Clear all memories
/voice <path>    - Set the active voice sample
/voice_info      - Show the active voice sample
/exit            - Quit

Chat normally otherwise.`

// CommandResult is what a slash command hands back to the loop.
type CommandResult struct {
	Reply string
	Exit  bool
}

// HandleCommand processes slash commands. The second return value is
// false when the input is not a command and should go to the model.
func (s *Session) HandleCommand(ctx context.Context, userText string) (CommandResult, bool) {
	text := strings.TrimSpace(userText)
	if !strings.HasPrefix(text, "/") {
		return CommandResult{}, false
	}

	switch {
	case text == "/exit":
		return CommandResult{Reply: "Goodbye. Safe travels, commander!", Exit: true}, true

	case text == "/help":
		return CommandResult{Reply: helpText}, true

	case text == "/mem":
		notes := s.memories.List()
		if len(notes) == 0 {
			return CommandResult{Reply: "No saved memories yet. Use /remember <note> to add one."}, true
		}
		return CommandResult{Reply: "Memories:\n- " + strings.Join(notes, "\n- ")}, true

	case strings.HasPrefix(text, "/remember"):
		note := strings.TrimSpace(strings.TrimPrefix(text, "/remember"))
		if note == "" {
			return CommandResult{Reply: "Usage: /remember <note>"}, true
		}
		if err := s.memories.Add(note); err != nil {
			return CommandResult{Reply: fmt.Sprintf("Could not save memory: %v", err)}, true
		}
		return CommandResult{Reply: "Saved."}, true

	case text == "/clear_mem":
		if err := s.memories.Clear(); err != nil {
			return CommandResult{Reply: fmt.Sprintf("Could not clear memories: %v", err)}, true
		}
		return CommandResult{Reply: "Cleared all memories."}, true

	case strings.HasPrefix(text, "/voice "):
		return CommandResult{Reply: s.setVoice(ctx, strings.TrimSpace(strings.TrimPrefix(text, "/voice ")))}, true

	case text == "/voice_info":
		current, err := s.voices.Current()
		if err != nil {
			if errors.Is(err, voice.ErrNoVoice) {
				return CommandResult{Reply: "No voice set. Use /voice <path> to set a voice file."}, true
			}
			return CommandResult{Reply: fmt.Sprintf("Could not read voice pointer: %v", err)}, true
		}
		return CommandResult{Reply: fmt.Sprintf("Current voice: %s", current)}, true

	default:
		return CommandResult{Reply: "Unknown command. Type /help for available commands."}, true
	}
}

func (s *Session) setVoice(ctx context.Context, arg string) string {
	path, err := s.voices.Resolve(arg)
	if err != nil {
		return fmt.Sprintf("File not found: %s", arg)
	}

	if err := s.voices.Set(path); err != nil {
		return fmt.Sprintf("Could not set voice: %v", err)
	}

	reply := fmt.Sprintf("Voice set to: %s", path)

	// Best effort analysis; missing ffprobe only costs the profile
	profile, err := voice.Analyze(ctx, path)
	if err != nil {
		s.logger.WithError(err).Debug("voice analysis skipped")
		return reply
	}

	s.applyVoiceProfile(profile)

	report := voice.Validate(profile)
	if !report.OK() {
		reply += "\nSample may not work well for voice matching:"
		for _, issue := range report.Issues {
			reply += "\n  - " + issue
		}
		for _, rec := range report.Recommendations {
			reply += "\n  tip: " + rec
		}
	}
	return reply
}
