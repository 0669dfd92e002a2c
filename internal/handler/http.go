package handler

import (
	"bytes"
	"context"
	"net/http"

	"github.com/MikhailRaia/link-shortener/internal/logger"
	"github.com/MikhailRaia/link-shortener/internal/middleware"
	"github.com/MikhailRaia/link-shortener/internal/model"
	"github.com/MikhailRaia/link-shortener/internal/pool"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type LinkService interface {
	CreateShortLink(ctx context.Context, req model.CreateLinkRequest) (model.LinkResponse, error)
	ResolveURL(ctx context.Context, code string) (string, error)
	GetLinkStats(ctx context.Context, code string) (model.LinkResponse, error)
	GetSystemStats(ctx context.Context) (model.SystemStats, error)
}

type DBPinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	linkService LinkService
	dbPinger    DBPinger
	buffers     *pool.Pool[*bytes.Buffer]
}

func NewHandler(linkService LinkService, dbPinger DBPinger) *Handler {
	return &Handler{
		linkService: linkService,
		dbPinger:    dbPinger,
		buffers:     pool.NewBufferPool(64),
	}
}

func (h *Handler) RegisterRoutes() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)

	r.Use(logger.RequestLogger)

	// The page may be served from another origin.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Content-Encoding", "Accept-Encoding"},
		MaxAge:         300,
	}))

	r.Use(middleware.GzipReader)
	r.Use(middleware.GzipMiddleware)

	r.Route("/api", func(r chi.Router) {
		r.Post("/shorten", h.handleShorten)
		r.Get("/stats/{shortCode}", h.handleLinkStats)
		r.Get("/system-stats", h.handleSystemStats)
		r.Get("/health", h.handleHealth)
	})
	r.Get("/ping", h.handlePing)
	r.Get("/{shortCode}", h.handleRedirect)

	return r
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, model.HealthResponse{Status: "UP"})
}

func (h *Handler) handlePing(w http.ResponseWriter, r *http.Request) {
	if h.dbPinger == nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	err := h.dbPinger.Ping(r.Context())
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}
