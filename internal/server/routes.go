package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/pondside/duckpet/internal/chat"
	"github.com/pondside/duckpet/internal/locale"
	"github.com/pondside/duckpet/internal/pet"
	"github.com/pondside/duckpet/internal/store"
)

// statusResponse mirrors pet.Status on the wire. Timestamps are integer
// milliseconds since epoch, matching the persisted representation.
type statusResponse struct {
	Hunger      float64 `json:"hunger"`
	Cleanliness float64 `json:"cleanliness"`
	Happiness   float64 `json:"happiness"`
	LastUpdate  int64   `json:"last_update"`
	LastFed     int64   `json:"last_fed"`
	LastCleaned int64   `json:"last_cleaned"`
	LastPlayed  int64   `json:"last_played"`
	IsDead      bool    `json:"is_dead"`
	DeathCause  string  `json:"death_cause"`
}

func toResponse(s pet.Status) statusResponse {
	return statusResponse{
		Hunger:      s.Hunger,
		Cleanliness: s.Cleanliness,
		Happiness:   s.Happiness,
		LastUpdate:  s.LastUpdate.UnixMilli(),
		LastFed:     s.LastFed.UnixMilli(),
		LastCleaned: s.LastCleaned.UnixMilli(),
		LastPlayed:  s.LastPlayed.UnixMilli(),
		IsDead:      s.Dead,
		DeathCause:  string(s.DeathCause),
	}
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toResponse(s.ctrl.Status()))
}

// handleCare wraps one care action. Care on a dead pet is a no-op by engine
// rule; the returned snapshot makes that visible to the caller.
func (s *Server) handleCare(action func() pet.Status) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, toResponse(action()))
	}
}

func (s *Server) handleRevive(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toResponse(s.ctrl.Revive()))
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Message       string `json:"message"`
		AttachContext bool   `json:"attach_context"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	lang, _ := s.db.GetString(store.KeyLanguage, "en")
	reply, err := s.gateway.SendMessage(r.Context(), req.Message, req.AttachContext)
	switch {
	case errors.Is(err, chat.ErrEmptyMessage):
		writeError(w, http.StatusBadRequest, locale.T(lang, locale.EmptyMessage))
	case errors.Is(err, chat.ErrMessageTooLong):
		writeError(w, http.StatusBadRequest, locale.T(lang, locale.MessageTooLong))
	case errors.Is(err, chat.ErrNoCredential):
		writeError(w, http.StatusConflict, locale.T(lang, locale.NoCredential))
	case err != nil:
		// Transport failure: the gateway already produced the generic
		// localized fallback as the reply.
		log.Printf("server: chat: %v", err)
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": reply})
	default:
		writeJSON(w, http.StatusOK, map[string]string{"reply": reply})
	}
}

func (s *Server) handleChatHistory(w http.ResponseWriter, r *http.Request) {
	entries, err := s.gateway.History()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	type turn struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	}
	turns := make([]turn, 0, len(entries))
	for _, e := range entries {
		turns = append(turns, turn{Role: e.Role, Content: e.Content})
	}
	writeJSON(w, http.StatusOK, map[string]any{"history": turns})
}

func (s *Server) handleClearHistory(w http.ResponseWriter, r *http.Request) {
	if err := s.gateway.ClearHistory(); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	name, _ := s.db.GetString(store.KeyDuckName, "")
	lang, _ := s.db.GetString(store.KeyLanguage, "en")
	key, _ := s.db.GetString(store.KeyAPIKey, "")

	writeJSON(w, http.StatusOK, map[string]any{
		"duck_name":   name,
		"language":    lang,
		"has_api_key": key != "",
	})
}

func (s *Server) handlePutSettings(w http.ResponseWriter, r *http.Request) {
	var req struct {
		DuckName *string `json:"duck_name"`
		Language *string `json:"language"`
		APIKey   *string `json:"chatgpt_api_key"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	updates := map[string]*string{
		store.KeyDuckName: req.DuckName,
		store.KeyLanguage: req.Language,
		store.KeyAPIKey:   req.APIKey,
	}
	for key, val := range updates {
		if val == nil {
			continue
		}
		if err := s.db.SetString(key, *val); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
