package persona

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
)

// Persona is the astronaut profile consumed by the chat companion.
type Persona struct {
	AstronautName    string   `json:"astronaut_name"`
	Mission          Mission  `json:"mission"`
	Likes            []string `json:"likes"`
	Family           Family   `json:"family"`
	Backstory        string   `json:"backstory"`
	SupportFocus     []string `json:"support_focus"`
	ToneGuidelines   []string `json:"tone_guidelines"`
	InteractionStyle []string `json:"interaction_style"`
	TabooTopics      []string `json:"taboo_topics"`
}

type Mission struct {
	Vehicle      string `json:"vehicle"`
	MissionType  string `json:"mission_type"`
	Destination  string `json:"destination"`
	DurationDays int    `json:"duration_days"`
}

type Family struct {
	Partner   string            `json:"partner"`
	Daughters map[string]string `json:"daughters"`
}

// Load reads the persona profile from the given JSON file.
func Load(path string) (*Persona, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("persona file not found at %s: %w", path, err)
	}

	var p Persona
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse persona file %s: %w", path, err)
	}

	return &p, nil
}

// Name returns the astronaut's name, falling back to a generic address.
func (p *Persona) Name() string {
	if p.AstronautName != "" {
		return p.AstronautName
	}
	return "Commander"
}

// SystemPrompt renders the persona into the companion's system message.
func (p *Persona) SystemPrompt() string {
	var parts []string

	parts = append(parts,
		"You are Maitre, a warm, supportive pen-pal companion for an astronaut.")
	parts = append(parts,
		"Your role is to chat casually, listen actively, and keep conversations engaging and empathetic.")
	parts = append(parts,
		"Do not provide medical, safety-critical, or operational instructions. If asked, gently defer.")

	mission := p.missionSummary()
	parts = append(parts, fmt.Sprintf(
		"Astronaut profile: name=%s; mission=%s; likes=%s; family=%s.",
		p.Name(), mission, strings.Join(p.Likes, ", "), p.familySummary()))

	if p.Backstory != "" {
		parts = append(parts, fmt.Sprintf("Backstory: %s", p.Backstory))
	}
	if len(p.SupportFocus) > 0 {
		parts = append(parts, fmt.Sprintf("Support focus: %s", strings.Join(p.SupportFocus, ", ")))
	}
	if len(p.ToneGuidelines) > 0 {
		parts = append(parts, fmt.Sprintf("Tone: %s", strings.Join(p.ToneGuidelines, ", ")))
	}
	if len(p.InteractionStyle) > 0 {
		parts = append(parts, fmt.Sprintf("Style: %s", strings.Join(p.InteractionStyle, ", ")))
	}
	if len(p.TabooTopics) > 0 {
		parts = append(parts, fmt.Sprintf("Avoid topics: %s", strings.Join(p.TabooTopics, ", ")))
	}

	parts = append(parts,
		"Keep responses brief (1-3 sentences), provide evidence-based guidance, and support family connection.")
	parts = append(parts,
		"Prefer short paragraphs. Ask one thoughtful follow-up question when it helps connection.")

	return strings.Join(parts, "\n")
}

func (p *Persona) missionSummary() string {
	var bits []string
	if p.Mission.Vehicle != "" {
		bits = append(bits, p.Mission.Vehicle)
	}
	if p.Mission.MissionType != "" {
		bits = append(bits, p.Mission.MissionType)
	}
	if p.Mission.Destination != "" {
		bits = append(bits, "to "+p.Mission.Destination)
	}
	if p.Mission.DurationDays > 0 {
		bits = append(bits, fmt.Sprintf("%d days", p.Mission.DurationDays))
	}
	if len(bits) == 0 {
		return "space mission"
	}
	return strings.Join(bits, ", ")
}

func (p *Persona) familySummary() string {
	var bits []string
	if p.Family.Partner != "" {
		bits = append(bits, "partner "+p.Family.Partner)
	}
	for _, daughter := range sortedValues(p.Family.Daughters) {
		bits = append(bits, "daughter "+daughter)
	}
	if len(bits) == 0 {
		return "unknown"
	}
	return strings.Join(bits, ", ")
}

func sortedValues(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	// Deterministic order so the system prompt is stable across runs.
	sort.Strings(keys)
	values := make([]string, 0, len(keys))
	for _, k := range keys {
		values = append(values, m[k])
	}
	return values
}
