// cmd/maitre-web/main.go
package main

import (
	"log"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/tahcohcat/maitre/config"
	"github.com/tahcohcat/maitre/internal/api"
	"github.com/tahcohcat/maitre/internal/auth"
	"github.com/tahcohcat/maitre/internal/database"
	"github.com/tahcohcat/maitre/internal/llm"
	"github.com/tahcohcat/maitre/internal/memory"
	"github.com/tahcohcat/maitre/internal/persona"
	"github.com/tahcohcat/maitre/internal/tts"
	"github.com/tahcohcat/maitre/internal/websocket"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	profile, err := persona.Load(cfg.Storage.PersonaFile)
	if err != nil {
		log.Fatalf("Failed to load persona: %v", err)
	}

	model, err := llm.NewLLMClient(cfg)
	if err != nil {
		log.Fatalf("Failed to create LLM client: %v", err)
	}

	db, err := database.NewDatabase(cfg.Storage.DatabasePath)
	if err != nil {
		log.Printf("Transcript store unavailable: %v", err)
		db = nil
	} else {
		defer db.Close()
	}

	memories := memory.NewStore(cfg.Storage.MemoriesPath)
	engine := tts.NewEngine(&cfg.Tts)

	auth.Init(&cfg.Server)

	hub := websocket.NewHub()
	go hub.Run()

	chatHandler := api.NewChatHandler(profile, model, memories, db, hub)

	r := mux.NewRouter()

	// Public routes (no authentication required)
	r.HandleFunc("/login", auth.LoginHandler).Methods("POST")
	r.HandleFunc("/logout", auth.LogoutHandler).Methods("POST")
	r.HandleFunc("/health", api.StatusHandler(cfg, engine)).Methods("GET")

	// Authenticated routes
	authRouter := r.PathPrefix("/").Subrouter()
	authRouter.Use(auth.Middleware)

	apiRouter := authRouter.PathPrefix("/api/v1").Subrouter()
	api.RegisterRoutes(apiRouter, chatHandler)
	api.RegisterTTSRoutes(apiRouter, engine)

	authRouter.HandleFunc("/ws/transcript", hub.ServeWS)

	// CORS setup for development
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	handler := c.Handler(r)

	addr := cfg.Server.Addr
	if port := os.Getenv("PORT"); port != "" {
		addr = ":" + port
	}

	log.Printf("Maitre web server starting on %s", addr)
	log.Printf("Voice output: %s", engine.Name())

	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
