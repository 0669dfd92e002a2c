package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"regexp"
	"strings"

	"github.com/MikhailRaia/link-shortener/internal/model"
	"github.com/MikhailRaia/link-shortener/internal/storage"
	"github.com/MikhailRaia/link-shortener/internal/validator"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const maxRequestBody = 1 << 16

var shortCodePattern = regexp.MustCompile(`^[a-zA-Z0-9]{4,10}$`)

func (h *Handler) handleShorten(w http.ResponseWriter, r *http.Request) {
	contentType := r.Header.Get("Content-Type")
	if contentType != "" && !strings.Contains(contentType, "application/json") {
		h.writeError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}

	var req model.CreateLinkRequest
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody))
	if err := decoder.Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if strings.TrimSpace(req.URL) == "" {
		h.writeError(w, http.StatusBadRequest, "URL is required")
		return
	}

	resp, err := h.linkService.CreateShortLink(r.Context(), req)
	if err != nil {
		var vErr *validator.ValidationError
		if errors.As(err, &vErr) {
			h.writeError(w, http.StatusBadRequest, vErr.Message)
			return
		}

		log.Error().Err(err).Str("url", req.URL).Msg("Failed to create short link")
		h.writeError(w, http.StatusInternalServerError, "An unexpected error occurred")
		return
	}

	h.writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleLinkStats(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "shortCode")

	resp, err := h.linkService.GetLinkStats(r.Context(), code)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			h.writeError(w, http.StatusNotFound, "Link not found")
			return
		}

		log.Error().Err(err).Str("shortCode", code).Msg("Failed to get link stats")
		h.writeError(w, http.StatusInternalServerError, "An unexpected error occurred")
		return
	}

	h.writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleSystemStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.linkService.GetSystemStats(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to get system stats")
		h.writeError(w, http.StatusInternalServerError, "An unexpected error occurred")
		return
	}

	h.writeJSON(w, http.StatusOK, stats)
}

func (h *Handler) handleRedirect(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "shortCode")
	if !shortCodePattern.MatchString(code) {
		h.writeError(w, http.StatusNotFound, "Link not found or expired")
		return
	}

	originalURL, err := h.linkService.ResolveURL(r.Context(), code)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			log.Error().Err(err).Str("shortCode", code).Msg("Failed to resolve short code")
		}
		h.writeError(w, http.StatusNotFound, "Link not found or expired")
		return
	}

	http.Redirect(w, r, originalURL, http.StatusFound)
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, model.ErrorResponse{Error: message})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	buf := h.buffers.Get()
	defer h.buffers.Put(buf)

	if err := json.NewEncoder(buf).Encode(v); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}
