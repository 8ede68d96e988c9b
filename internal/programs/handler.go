package programs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/TechXplorers1/comagend-website/internal/cache"
	"github.com/TechXplorers1/comagend-website/internal/httpx"
	"github.com/TechXplorers1/comagend-website/internal/middleware"
	"github.com/TechXplorers1/comagend-website/internal/schema"
	"github.com/TechXplorers1/comagend-website/internal/transport"
	"github.com/TechXplorers1/comagend-website/internal/validation"
	"github.com/go-chi/chi/v5"
)

const listCacheKey = "/api/programs"

type Handler struct {
	service  *Service
	val      *validation.Validator
	log      *slog.Logger
	cache    cache.Cache
	cacheTTL time.Duration
}

func NewHandler(service *Service, val *validation.Validator, log *slog.Logger, c cache.Cache, cacheTTL time.Duration) *Handler {
	return &Handler{
		service:  service,
		val:      val,
		log:      log,
		cache:    c,
		cacheTTL: cacheTTL,
	}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	filter := ListFilter{
		Category: strings.TrimSpace(r.URL.Query().Get("category")),
	}

	if filter.Category == "" {
		if cached, ok, err := h.cache.Get(ctx, listCacheKey); err == nil && ok {
			log.Info("programs list: cache hit")
			transport.WriteCachedJSON(w, http.StatusOK, cached)
			return
		}
	}

	items, err := h.service.List(ctx, filter)
	if err != nil {
		log.Error("programs list: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	if filter.Category == "" {
		if payload, err := json.Marshal(items); err == nil {
			_ = h.cache.Set(ctx, listCacheKey, payload, h.cacheTTL)
		}
	}

	log.Info("programs list: ok", slog.Int("count", len(items)))
	transport.WriteJSON(w, http.StatusOK, items)
}

func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		log.Warn("programs get: missing id")
		transport.WriteError(w, http.StatusBadRequest, "missing id", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	item, err := h.service.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			log.Warn("programs get: not found", slog.String("program_id", id))
			transport.WriteError(w, http.StatusNotFound, "program not found", nil)
			return
		}
		log.Error("programs get: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	log.Info("programs get: ok", slog.String("program_id", id))
	transport.WriteJSON(w, http.StatusOK, item)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	var req schema.ProgramInput
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("programs create: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}

	if details := schema.Validate(h.val, req); details != nil {
		log.Warn("programs create: validation error")
		transport.WriteError(w, http.StatusBadRequest, "validation error", details)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	item, err := h.service.Create(ctx, req)
	if err != nil {
		log.Error("programs create: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	_ = h.cache.Delete(ctx, listCacheKey)

	log.Info("programs create: ok", slog.String("program_id", item.ID))
	transport.WriteJSON(w, http.StatusCreated, item)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		log.Warn("programs update: missing id")
		transport.WriteError(w, http.StatusBadRequest, "missing id", nil)
		return
	}

	var req schema.ProgramPatch
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("programs update: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}

	if details := schema.Validate(h.val, req); details != nil {
		log.Warn("programs update: validation error")
		transport.WriteError(w, http.StatusBadRequest, "validation error", details)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	item, err := h.service.Update(ctx, id, req)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			log.Warn("programs update: not found", slog.String("program_id", id))
			transport.WriteError(w, http.StatusNotFound, "program not found", nil)
			return
		}
		log.Error("programs update: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	_ = h.cache.Delete(ctx, listCacheKey)

	log.Info("programs update: ok", slog.String("program_id", id))
	transport.WriteJSON(w, http.StatusOK, item)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		log.Warn("programs delete: missing id")
		transport.WriteError(w, http.StatusBadRequest, "missing id", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.service.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			log.Warn("programs delete: not found", slog.String("program_id", id))
			transport.WriteError(w, http.StatusNotFound, "program not found", nil)
			return
		}
		log.Error("programs delete: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	_ = h.cache.Delete(ctx, listCacheKey)

	log.Info("programs delete: ok", slog.String("program_id", id))
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) logWithRequest(r *http.Request) *slog.Logger {
	if r == nil {
		return h.log
	}
	if id := middleware.RequestIDFromContext(r.Context()); id != "" {
		return h.log.With(slog.String("request_id", id))
	}
	return h.log
}
