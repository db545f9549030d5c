package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/karamlee/polyask/internal/domain"
	"github.com/karamlee/polyask/internal/session"
	"github.com/karamlee/polyask/internal/storage"
)

// Handler serves the public API endpoints.
type Handler struct {
	session *session.Session
	store   storage.RoundStore
}

// NewHandler creates the API handler. store may be nil when round history is
// disabled.
func NewHandler(sess *session.Session, store storage.RoundStore) *Handler {
	return &Handler{session: sess, store: store}
}

// Routes mounts the public API on the router.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/api/ask", h.HandleAsk)
	r.Get("/api/rounds", h.HandleRounds)
	r.Get("/health", h.HandleHealth)
}

type askRequest struct {
	Question string `json:"question"`
}

// HandleAsk streams one round as newline-delimited JSON. A blank question is
// rejected with HTTP 400 before any streaming begins.
func (h *Handler) HandleAsk(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if strings.TrimSpace(req.Question) == "" {
		writeDetail(w, http.StatusBadRequest, domain.ErrEmptyQuestion.Error())
		return
	}

	w.Header().Set("Content-Type", "application/x-ndjson; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")

	emitter := session.NewNDJSONEmitter(w)
	if err := h.session.Run(r.Context(), req.Question, emitter); err != nil {
		// Validation already happened; anything surfacing here means no
		// event was written yet, so a plain error response is still possible.
		if errors.Is(err, domain.ErrEmptyQuestion) {
			writeDetail(w, http.StatusBadRequest, err.Error())
			return
		}
		AddLogField(r.Context(), "error", err.Error())
		writeDetail(w, http.StatusInternalServerError, err.Error())
	}
}

// HandleHealth reports service availability.
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// HandleRounds lists recently completed rounds, most recent first.
func (h *Handler) HandleRounds(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		writeDetail(w, http.StatusNotFound, "round history is disabled")
		return
	}

	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			writeDetail(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	rounds, err := h.store.ListRounds(r.Context(), limit)
	if err != nil {
		AddLogField(r.Context(), "error", err.Error())
		writeDetail(w, http.StatusInternalServerError, "failed to list rounds")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"rounds": rounds})
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"detail": detail})
}
