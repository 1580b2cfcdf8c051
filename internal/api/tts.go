package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/tahcohcat/maitre/internal/tts"
)

type TTSHandler struct {
	engine tts.Engine
}

type TTSRequest struct {
	Text     string `json:"text"`
	Category string `json:"category"`
}

func NewTTSHandler(engine tts.Engine) *TTSHandler {
	return &TTSHandler{engine: engine}
}

// POST /api/v1/tts/speak - Generate and stream TTS audio
func (th *TTSHandler) SpeakText(w http.ResponseWriter, r *http.Request) {
	var req TTSRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Text == "" {
		http.Error(w, "Text is required", http.StatusBadRequest)
		return
	}

	category := tts.Category(req.Category)
	if category == "" {
		category = tts.Classify(req.Text)
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	audioData, err := th.engine.Synthesize(ctx, req.Text, category)
	if err != nil {
		http.Error(w, "Failed to generate TTS: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if len(audioData) == 0 {
		http.Error(w, "TTS is disabled", http.StatusServiceUnavailable)
		return
	}

	// Stream MP3 audio to the browser
	w.Header().Set("Content-Type", "audio/mpeg")
	w.Header().Set("Cache-Control", "no-cache")

	if _, err := w.Write(audioData); err != nil {
		http.Error(w, "Failed to stream audio", http.StatusInternalServerError)
		return
	}
}

// GET /api/v1/tts/test - Test TTS functionality
func (th *TTSHandler) TestTTS(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	testText := "Hello commander, this is a test of the voice output system."

	audioData, err := th.engine.Synthesize(ctx, testText, tts.CategorySupportive)
	if err != nil {
		http.Error(w, "TTS test failed: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if len(audioData) == 0 {
		http.Error(w, "TTS is disabled", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "audio/mpeg")
	w.Header().Set("Cache-Control", "no-cache")

	if _, err := w.Write(audioData); err != nil {
		http.Error(w, "Failed to stream test audio", http.StatusInternalServerError)
		return
	}
}

func RegisterTTSRoutes(r *mux.Router, engine tts.Engine) {
	ttsHandler := NewTTSHandler(engine)

	r.HandleFunc("/tts/speak", ttsHandler.SpeakText).Methods("POST")
	r.HandleFunc("/tts/test", ttsHandler.TestTTS).Methods("GET")
}
