package contact

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/TechXplorers1/comagend-website/internal/cache"
	"github.com/TechXplorers1/comagend-website/internal/httpx"
	"github.com/TechXplorers1/comagend-website/internal/middleware"
	"github.com/TechXplorers1/comagend-website/internal/schema"
	"github.com/TechXplorers1/comagend-website/internal/transport"
	"github.com/TechXplorers1/comagend-website/internal/validation"
)

const listCacheKey = "/api/contact-messages"

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

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	var req schema.ContactInput
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("contact create: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}

	if details := schema.Validate(h.val, req); details != nil {
		log.Warn("contact create: validation error")
		transport.WriteError(w, http.StatusBadRequest, "validation error", details)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	msg, err := h.service.Create(ctx, req)
	if err != nil {
		log.Error("contact create: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	_ = h.cache.Delete(ctx, listCacheKey)

	log.Info("contact create: stored", slog.String("contact_id", msg.ID))
	transport.WriteJSON(w, http.StatusCreated, msg)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if cached, ok, err := h.cache.Get(ctx, listCacheKey); err == nil && ok {
		log.Info("contact list: cache hit")
		transport.WriteCachedJSON(w, http.StatusOK, cached)
		return
	}

	items, err := h.service.List(ctx)
	if err != nil {
		log.Error("contact list: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	if payload, err := json.Marshal(items); err == nil {
		_ = h.cache.Set(ctx, listCacheKey, payload, h.cacheTTL)
	}

	log.Info("contact list: ok", slog.Int("count", len(items)))
	transport.WriteJSON(w, http.StatusOK, items)
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
