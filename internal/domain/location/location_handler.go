package location

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/FACorreiaa/loci-canvas-api/internal/domain/session"
	"github.com/FACorreiaa/loci-canvas-api/internal/types"
	"github.com/FACorreiaa/loci-canvas-api/pkg/middleware"
	"github.com/FACorreiaa/loci-canvas-api/pkg/respond"
)

// Handler exposes the resolution flow over HTTP.
type Handler struct {
	service  Service
	sessions session.Service
	logger   *slog.Logger
}

func NewHandler(service Service, sessions session.Service, logger *slog.Logger) *Handler {
	return &Handler{
		service:  service,
		sessions: sessions,
		logger:   logger,
	}
}

type resolveRequest struct {
	Query       string             `json:"query"`
	Coordinates *types.Coordinates `json:"coordinates,omitempty"`
}

// Resolve handles POST /v1/locations/resolve.
func (h *Handler) Resolve(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID, _ := middleware.SessionIDFromContext(ctx)

	var body resolveRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respond.Error(w, h.logger, fmt.Errorf("invalid request body: %w", types.ErrBadRequest))
		return
	}

	h.sessions.AppendActivity(ctx, sessionID, "info", "Resolving %q", body.Query)

	record, err := h.service.Resolve(ctx, body.Query, body.Coordinates)
	if err != nil {
		h.sessions.AppendActivity(ctx, sessionID, "error", "Resolution failed: %v", err)
		respond.Error(w, h.logger, err)
		return
	}

	h.sessions.SetLocation(sessionID, record)
	// A new location supersedes the previous one but keeps the user's
	// perspective, style and quality choices intact.
	selection := h.sessions.GetOrCreate(sessionID).Selection
	selection.LocationName = record.Name
	selection.Description = record.Description
	h.sessions.SetSelection(sessionID, selection)
	h.sessions.AppendActivity(ctx, sessionID, "info", "Resolved %q as %s", body.Query, record.Name)

	respond.JSON(w, h.logger, http.StatusOK, record)
}

// Recent handles GET /v1/locations/recent.
func (h *Handler) Recent(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			respond.Error(w, h.logger, fmt.Errorf("invalid limit %q: %w", raw, types.ErrBadRequest))
			return
		}
		limit = parsed
	}

	records, err := h.service.RecentLocations(r.Context(), limit)
	if err != nil {
		respond.Error(w, h.logger, err)
		return
	}
	respond.JSON(w, h.logger, http.StatusOK, records)
}
