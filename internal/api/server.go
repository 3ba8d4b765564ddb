package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/hibbslab/prepdeck/internal/config"
	"github.com/hibbslab/prepdeck/internal/store"
)

// Server is the HTTP API for prepdeck: session CRUD plus file import.
type Server struct {
	router chi.Router
	store  *store.Store
	log    *slog.Logger
	cfg    config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(st *store.Store, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		store: st,
		log:   log,
		cfg:   cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	r.Get("/health", s.handleHealth)

	r.Group(func(r chi.Router) {
		// Auth is optional: without a configured key the tool runs open,
		// matching local single-user use.
		if s.cfg.APIKey != "" {
			r.Use(AuthMiddleware(s.cfg.APIKey, s.log))
		}

		r.Get("/api/sessions", s.handleListSessions)
		r.Post("/api/sessions", s.handleCreateSession)
		r.Get("/api/sessions/{sessionID}", s.handleGetSession)
		r.Put("/api/sessions/{sessionID}", s.handleUpdateSession)
		r.Delete("/api/sessions/{sessionID}", s.handleDeleteSession)
		r.Post("/api/sessions/{sessionID}/duplicate", s.handleDuplicateSession)

		r.Post("/api/sessions/{sessionID}/talking-points", s.handleAddTalkingPoint)
		r.Post("/api/sessions/{sessionID}/practice-questions", s.handleAddPracticeQuestion)
		r.Post("/api/sessions/{sessionID}/cheatsheet-cards", s.handleAddCheatsheetCard)

		r.Post("/api/import", s.handleImport)
		r.Post("/api/scan", s.handleScanFolder)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
