package api

import (
	"encoding/json"
	"net/http"

	"github.com/tahcohcat/maitre/config"
	"github.com/tahcohcat/maitre/internal/tts"
)

type statusResponse struct {
	Status   string `json:"status"`
	Provider string `json:"provider"`
	Model    string `json:"model"`
	Voice    string `json:"voice"`
}

// StatusHandler reports what the server is wired to. Used as a health
// check and by the web UI banner.
func StatusHandler(cfg *config.Config, engine tts.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		model := cfg.Ollama.Model
		if cfg.LLM.Provider == "openai" {
			model = cfg.OpenAI.Model
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(statusResponse{
			Status:   "ok",
			Provider: cfg.LLM.Provider,
			Model:    model,
			Voice:    engine.Name(),
		})
	}
}
