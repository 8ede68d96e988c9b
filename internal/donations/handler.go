package donations

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/TechXplorers1/comagend-website/internal/httpx"
	"github.com/TechXplorers1/comagend-website/internal/middleware"
	"github.com/TechXplorers1/comagend-website/internal/schema"
	"github.com/TechXplorers1/comagend-website/internal/transport"
	"github.com/TechXplorers1/comagend-website/internal/validation"
)

type Handler struct {
	service *Service
	val     *validation.Validator
	log     *slog.Logger
}

func NewHandler(service *Service, val *validation.Validator, log *slog.Logger) *Handler {
	return &Handler{
		service: service,
		val:     val,
		log:     log,
	}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	var req schema.DonationInput
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("donation create: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}

	if details := schema.Validate(h.val, req); details != nil {
		log.Warn("donation create: validation error")
		transport.WriteError(w, http.StatusBadRequest, "validation error", details)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	d, err := h.service.Create(ctx, req)
	if err != nil {
		log.Error("donation create: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	log.Info("donation create: stored", slog.String("donation_id", d.ID), slog.String("program", d.Program))
	transport.WriteJSON(w, http.StatusCreated, d)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	items, err := h.service.List(ctx)
	if err != nil {
		log.Error("donation list: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	log.Info("donation list: ok", slog.Int("count", len(items)))
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
