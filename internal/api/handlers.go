package api

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"

	"github.com/tahcohcat/maitre/internal/database"
	"github.com/tahcohcat/maitre/internal/llm"
	"github.com/tahcohcat/maitre/internal/logger"
	"github.com/tahcohcat/maitre/internal/memory"
	"github.com/tahcohcat/maitre/internal/persona"
	"github.com/tahcohcat/maitre/internal/tts"
	"github.com/tahcohcat/maitre/internal/websocket"
)

// ChatHandler serves the web chat: one shared conversation, mirroring
// the single-user terminal loop.
type ChatHandler struct {
	model    llm.LLM
	memories *memory.Store
	db       *database.DB
	hub      *websocket.Hub
	logger   *logger.Log

	mu        sync.Mutex
	messages  []llm.Message
	sessionID int64
}

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Reply    string `json:"reply"`
	Category string `json:"category"`
}

type transcriptEvent struct {
	Timestamp string `json:"ts"`
	User      string `json:"user"`
	Assistant string `json:"assistant"`
	Category  string `json:"category"`
}

func NewChatHandler(profile *persona.Persona, model llm.LLM, memories *memory.Store,
	db *database.DB, hub *websocket.Hub) *ChatHandler {

	h := &ChatHandler{
		model:    model,
		memories: memories,
		db:       db,
		hub:      hub,
		logger:   logger.New(),
	}

	h.messages = append(h.messages, llm.Message{Role: "system", Content: profile.SystemPrompt()})

	if db != nil {
		if id, err := db.StartSession(); err == nil {
			h.sessionID = id
		}
	}

	return h
}

// POST /api/v1/chat - send a message, get the companion reply
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Message == "" {
		http.Error(w, "Message is required", http.StatusBadRequest)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.messages = append(h.messages, llm.Message{Role: "user", Content: req.Message})

	reply, err := h.model.Chat(r.Context(), h.messages, nil)
	if err != nil {
		h.messages = h.messages[:len(h.messages)-1]
		h.logger.WithError(err).Error("chat generation failed")
		http.Error(w, "Failed to generate reply: "+err.Error(), http.StatusBadGateway)
		return
	}
	h.messages = append(h.messages, llm.Message{Role: "assistant", Content: reply})
	h.logger.Speaker("Maitre", reply)

	category := tts.Classify(reply)

	if h.db != nil && h.sessionID != 0 {
		if err := h.db.RecordExchange(h.sessionID, req.Message, reply, string(category)); err != nil {
			h.logger.WithError(err).Warn("failed to record exchange")
		}
	}
	if memory.ShouldCapture(req.Message) {
		if err := h.memories.Add(req.Message); err != nil {
			h.logger.WithError(err).Warn("failed to capture memory")
		}
	}

	if h.hub != nil {
		event, err := json.Marshal(transcriptEvent{
			Timestamp: time.Now().Format(time.RFC3339),
			User:      req.Message,
			Assistant: reply,
			Category:  string(category),
		})
		if err == nil {
			h.hub.Broadcast(event)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(chatResponse{Reply: reply, Category: string(category)})
}

// GET /api/v1/sessions - list recent transcript sessions
func (h *ChatHandler) Sessions(w http.ResponseWriter, r *http.Request) {
	if h.db == nil {
		http.Error(w, "Transcript store not available", http.StatusServiceUnavailable)
		return
	}

	sessions, err := h.db.Sessions(20)
	if err != nil {
		http.Error(w, "Failed to list sessions: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(sessions)
}

// GET /api/v1/memories - list saved memory notes
func (h *ChatHandler) Memories(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.memories.List())
}

// RegisterRoutes attaches the chat API to the router.
func RegisterRoutes(r *mux.Router, h *ChatHandler) {
	r.HandleFunc("/chat", h.Chat).Methods("POST")
	r.HandleFunc("/sessions", h.Sessions).Methods("GET")
	r.HandleFunc("/memories", h.Memories).Methods("GET")
}
