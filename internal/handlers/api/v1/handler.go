// Package v1 serves the knight HTTP API
package v1

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/KirkDiggler/knight-api/internal/entities"
	"github.com/KirkDiggler/knight-api/internal/errors"
	"github.com/KirkDiggler/knight-api/internal/orchestrators/knight"
	"github.com/KirkDiggler/knight-api/internal/pkg/clock"
)

// HandlerConfig holds dependencies for the knight handler
type HandlerConfig struct {
	KnightService knight.Service
	Clock         clock.Clock
}

// Validate ensures all required dependencies are present
func (c *HandlerConfig) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if c.KnightService == nil {
		return errors.InvalidArgument("knight service is required")
	}
	return nil
}

// Handler implements the knight HTTP endpoints
type Handler struct {
	knightService knight.Service
	clock         clock.Clock
}

// NewHandler creates a new knight handler with the given configuration
func NewHandler(cfg *HandlerConfig) (*Handler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := cfg.Clock
	if c == nil {
		c = clock.New()
	}

	return &Handler{
		knightService: cfg.KnightService,
		clock:         c,
	}, nil
}

// RegisterRoutes mounts the knight endpoints on r
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/knights", func(r chi.Router) {
		r.Get("/", h.ListKnights)
		r.Post("/", h.CreateKnight)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.GetKnight)
			r.Patch("/", h.UpdateKnight)
			r.Delete("/", h.DeleteKnight)
		})
	})
}

// ListKnights handles GET /knights?filter=heroes
func (h *Handler) ListKnights(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r.URL.Query().Get("filter"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	out, err := h.knightService.ListKnights(r.Context(), &knight.ListKnightsInput{Filter: filter})
	if err != nil {
		writeError(w, r, err)
		return
	}

	resp := make([]*KnightResponse, 0, len(out.Knights))
	for _, view := range out.Knights {
		resp = append(resp, toKnightResponse(view))
	}
	writeJSON(w, http.StatusOK, resp)
}

// GetKnight handles GET /knights/{id}
func (h *Handler) GetKnight(w http.ResponseWriter, r *http.Request) {
	id, err := parseKnightID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	out, err := h.knightService.GetKnight(r.Context(), &knight.GetKnightInput{KnightID: id})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toKnightResponse(out.Knight))
}

// CreateKnight handles POST /knights
func (h *Handler) CreateKnight(w http.ResponseWriter, r *http.Request) {
	var req CreateKnightRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	input, err := req.toInput(h.clock.Now())
	if err != nil {
		writeError(w, r, err)
		return
	}

	out, err := h.knightService.CreateKnight(r.Context(), input)
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Location", "/knights/"+out.Knight.ID)
	writeJSON(w, http.StatusCreated, toKnightResponse(out.Knight))
}

// UpdateKnight handles PATCH /knights/{id}
func (h *Handler) UpdateKnight(w http.ResponseWriter, r *http.Request) {
	id, err := parseKnightID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req UpdateKnightRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, r, err)
		return
	}

	out, err := h.knightService.UpdateKnight(r.Context(), &knight.UpdateKnightInput{
		KnightID: id,
		Nickname: req.Nickname,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toKnightResponse(out.Knight))
}

// DeleteKnight handles DELETE /knights/{id}
func (h *Handler) DeleteKnight(w http.ResponseWriter, r *http.Request) {
	id, err := parseKnightID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	if _, err := h.knightService.DeleteKnight(r.Context(), &knight.DeleteKnightInput{KnightID: id}); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func parseFilter(raw string) (entities.ListFilter, error) {
	filter := entities.ListFilter(raw)
	if !filter.IsValid() {
		return "", errors.InvalidArgumentf("filter must be empty or %q", entities.ListFilterHeroes).
			WithMeta("filter", raw)
	}
	return filter, nil
}
