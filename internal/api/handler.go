// Package api exposes the tracker over a JSON HTTP API.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"wordsprout/internal/domain"
	"wordsprout/internal/middleware"
	"wordsprout/internal/service"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// Handler serves the HTTP API
type Handler struct {
	auth       *service.AuthService
	children   *service.ChildService
	words      *service.WordService
	milestones *service.MilestoneService
	stats      *service.StatsService
	voice      *service.VoiceService
	logger     *zap.Logger
	now        func() time.Time
}

// NewHandler creates a new API handler
func NewHandler(
	auth *service.AuthService,
	children *service.ChildService,
	words *service.WordService,
	milestones *service.MilestoneService,
	stats *service.StatsService,
	voice *service.VoiceService,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		auth:       auth,
		children:   children,
		words:      words,
		milestones: milestones,
		stats:      stats,
		voice:      voice,
		logger:     logger,
		now:        time.Now,
	}
}

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

// fail maps service errors onto HTTP statuses. Unexpected errors are logged
// and answered with a generic message.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	var verr domain.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: verr.Message, Field: verr.Field})
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
	case errors.Is(err, service.ErrInvalidCredentials):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrEmailTaken), errors.Is(err, service.ErrNotManual):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	default:
		h.logger.Error("Request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "something went wrong, please try again"})
	}
}

func decode(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return domain.ValidationError{Field: "body", Message: "invalid JSON body"}
	}
	return nil
}

func pathID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(mux.Vars(r)[name])
	if err != nil {
		return uuid.Nil, domain.ValidationError{Field: name, Message: "invalid id"}
	}
	return id, nil
}

func currentUser(r *http.Request) uuid.UUID {
	id, _ := middleware.UserID(r.Context())
	return id
}

// ownedChild resolves the {id} path parameter to a child of the current user
func (h *Handler) ownedChild(w http.ResponseWriter, r *http.Request) (*domain.Child, bool) {
	childID, err := pathID(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return nil, false
	}
	child, err := h.children.Get(childID, currentUser(r))
	if err != nil {
		h.fail(w, r, err)
		return nil, false
	}
	return child, true
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
