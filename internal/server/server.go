// Package server exposes the engine to the UI layer over a local HTTP API.
// The UI owns all rendering; it reads status snapshots here and invokes the
// mutating operations.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/pondside/duckpet/internal/chat"
	"github.com/pondside/duckpet/internal/pet"
	"github.com/pondside/duckpet/internal/store"
)

// Server is the duckpet HTTP API server.
type Server struct {
	db      *store.DB
	ctrl    *pet.Controller
	gateway *chat.Gateway
	router  chi.Router
	version string
	started time.Time
}

// New creates a new Server over the controller and gateway.
func New(db *store.DB, ctrl *pet.Controller, gw *chat.Gateway, version string) *Server {
	s := &Server{
		db:      db,
		ctrl:    ctrl,
		gateway: gw,
		version: version,
		started: time.Now(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		r.Get("/status", s.handleStatus)
		r.Post("/feed", s.handleCare(s.ctrl.Feed))
		r.Post("/clean", s.handleCare(s.ctrl.Clean))
		r.Post("/play", s.handleCare(s.ctrl.Play))
		r.Post("/revive", s.handleRevive)

		r.Post("/chat", s.handleChat)
		r.Get("/chat/history", s.handleChatHistory)
		r.Delete("/chat/history", s.handleClearHistory)

		r.Get("/settings", s.handleGetSettings)
		r.Put("/settings", s.handlePutSettings)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	dbOK := true
	if err := s.db.Ping(); err != nil {
		dbOK = false
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": s.version,
		"uptime":  time.Since(s.started).Seconds(),
		"db":      dbOK,
		"db_path": s.db.Path,
	})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}
