package style

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/FACorreiaa/loci-canvas-api/internal/domain/session"
	"github.com/FACorreiaa/loci-canvas-api/internal/types"
	"github.com/FACorreiaa/loci-canvas-api/pkg/middleware"
	"github.com/FACorreiaa/loci-canvas-api/pkg/respond"
)

// Handler exposes the recommendation flow over HTTP.
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

type recommendRequest struct {
	LocationName string `json:"location_name"`
	Description  string `json:"description"`
}

// Recommend handles POST /v1/styles/recommend. When the body omits the
// location the current session location is used instead.
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID, _ := middleware.SessionIDFromContext(ctx)

	var body recommendRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respond.Error(w, h.logger, fmt.Errorf("invalid request body: %w", types.ErrBadRequest))
		return
	}
	if body.LocationName == "" {
		state := h.sessions.GetOrCreate(sessionID)
		if state.Location == nil {
			respond.Error(w, h.logger, fmt.Errorf("no location resolved yet: %w", types.ErrBadRequest))
			return
		}
		body.LocationName = state.Location.Name
		body.Description = state.Location.Description
	}

	recommendation, err := h.service.Recommend(ctx, body.LocationName, body.Description)
	if err != nil {
		h.sessions.AppendActivity(ctx, sessionID, "error", "Recommendation failed: %v", err)
		respond.Error(w, h.logger, err)
		return
	}

	h.sessions.ApplyRecommendation(sessionID, *recommendation)
	h.sessions.AppendActivity(ctx, sessionID, "info",
		"Recommended %s / %s", recommendation.Perspective, recommendation.Style)

	respond.JSON(w, h.logger, http.StatusOK, recommendation)
}
