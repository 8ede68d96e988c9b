package blog

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/TechXplorers1/comagend-website/internal/cache"
	"github.com/TechXplorers1/comagend-website/internal/middleware"
	"github.com/TechXplorers1/comagend-website/internal/transport"
)

const listCacheKey = "/api/blog"

type Handler struct {
	service  *Service
	log      *slog.Logger
	cache    cache.Cache
	cacheTTL time.Duration
}

func NewHandler(service *Service, log *slog.Logger, c cache.Cache, cacheTTL time.Duration) *Handler {
	return &Handler{
		service:  service,
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
			log.Info("blog list: cache hit")
			transport.WriteCachedJSON(w, http.StatusOK, cached)
			return
		}
	}

	items, err := h.service.List(ctx, filter)
	if err != nil {
		log.Error("blog list: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	if filter.Category == "" {
		if payload, err := json.Marshal(items); err == nil {
			_ = h.cache.Set(ctx, listCacheKey, payload, h.cacheTTL)
		}
	}

	log.Info("blog list: ok", slog.Int("count", len(items)))
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
