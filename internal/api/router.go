package api

import (
	"net/http"

	"wordsprout/internal/middleware"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// NewRouter wires every route. signInLimiter guards sign in and sign up.
func NewRouter(h *Handler, signInLimiter *middleware.RateLimiter, logger *zap.Logger) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.Logging(logger))

	r.HandleFunc("/health", h.health).Methods(http.MethodGet)

	public := r.PathPrefix("/api/auth").Subrouter()
	public.Use(signInLimiter.Middleware)
	public.HandleFunc("/signup", h.signUp).Methods(http.MethodPost)
	public.HandleFunc("/signin", h.signIn).Methods(http.MethodPost)

	api := r.PathPrefix("/api").Subrouter()
	api.Use(middleware.RequireAuth(h.auth))

	api.HandleFunc("/categories", h.listCategories).Methods(http.MethodGet)

	api.HandleFunc("/children", h.listChildren).Methods(http.MethodGet)
	api.HandleFunc("/children", h.createChild).Methods(http.MethodPost)
	api.HandleFunc("/children/{id}", h.deleteChild).Methods(http.MethodDelete)

	api.HandleFunc("/children/{id}/words", h.listWords).Methods(http.MethodGet)
	api.HandleFunc("/children/{id}/words", h.addWord).Methods(http.MethodPost)
	api.HandleFunc("/words/{id}", h.deleteWord).Methods(http.MethodDelete)
	api.HandleFunc("/children/{id}/voice", h.addVoiceWords).Methods(http.MethodPost)
	api.HandleFunc("/children/{id}/flashcards", h.flashcards).Methods(http.MethodGet)

	api.HandleFunc("/children/{id}/milestones", h.listMilestones).Methods(http.MethodGet)
	api.HandleFunc("/children/{id}/milestones/next", h.nextMilestone).Methods(http.MethodGet)
	api.HandleFunc("/milestones/{id}/achieved", h.setAchieved).Methods(http.MethodPut)

	api.HandleFunc("/children/{id}/dashboard", h.dashboard).Methods(http.MethodGet)
	api.HandleFunc("/children/{id}/statistics", h.statistics).Methods(http.MethodGet)
	api.HandleFunc("/children/{id}/days", h.days).Methods(http.MethodGet)
	api.HandleFunc("/children/{id}/days/{date}", h.dayWords).Methods(http.MethodGet)

	return r
}
