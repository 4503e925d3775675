package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"TeleshopNews/internal/ports"
	"TeleshopNews/internal/usecase"
)

// Server exposes read-only views of the news store and the health probe. It
// never mutates the store itself; staleness triggers go through the refresher.
type Server struct {
	log          *slog.Logger
	repo         ports.NewsRepository
	refresher    *usecase.Refresher
	defaultLimit int
	maxLimit     int
}

// Options bundles Server construction parameters.
type Options struct {
	Logger       *slog.Logger
	Repository   ports.NewsRepository
	Refresher    *usecase.Refresher
	DefaultLimit int
	MaxLimit     int
}

// NewServer builds the read layer.
func NewServer(opts Options) *Server {
	defaultLimit := opts.DefaultLimit
	if defaultLimit <= 0 {
		defaultLimit = 20
	}
	maxLimit := opts.MaxLimit
	if maxLimit <= 0 {
		maxLimit = 200
	}
	return &Server{
		log:          opts.Logger,
		repo:         opts.Repository,
		refresher:    opts.Refresher,
		defaultLimit: defaultLimit,
		maxLimit:     maxLimit,
	}
}

// Router assembles the chi routing table.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleIndex)
	r.Get("/api/news", s.handleNews)
	r.Get("/api/health", s.handleHealth)

	return r
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
