package visual

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

// Handler exposes the generation flow over HTTP.
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

// mergeSelection fills fields the request left empty from the session's
// current selection, so a minimal body regenerates with the last settings.
func mergeSelection(req types.GenerationRequest, selection types.GenerationRequest) types.GenerationRequest {
	if req.LocationName == "" {
		req.LocationName = selection.LocationName
	}
	if req.Description == "" {
		req.Description = selection.Description
	}
	if req.Perspective == "" {
		req.Perspective = selection.Perspective
	}
	if req.Style == "" {
		req.Style = selection.Style
	}
	if req.CustomStyleText == "" && req.Style == selection.Style {
		req.CustomStyleText = selection.CustomStyleText
	}
	if req.Quality == "" {
		req.Quality = selection.Quality
	}
	return req
}

// Generate handles POST /v1/visuals/generate.
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID, _ := middleware.SessionIDFromContext(ctx)

	var req types.GenerationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, h.logger, fmt.Errorf("invalid request body: %w", types.ErrBadRequest))
		return
	}

	state := h.sessions.GetOrCreate(sessionID)
	req = mergeSelection(req, state.Selection)
	if err := ValidateRequest(req); err != nil {
		respond.Error(w, h.logger, err)
		return
	}

	h.sessions.AppendActivity(ctx, sessionID, "info",
		"Generating %s / %s / %s for %s", req.Perspective, req.Style, req.Quality, req.LocationName)

	image, err := h.service.Generate(ctx, sessionID, req)
	if err != nil {
		h.sessions.AppendActivity(ctx, sessionID, "error", "Generation failed: %v", err)
		respond.Error(w, h.logger, err)
		return
	}

	h.sessions.SetSelection(sessionID, req)
	h.sessions.SetImage(sessionID, image)
	h.sessions.AppendActivity(ctx, sessionID, "info",
		"Generated %s image in %dms", req.Quality, image.LatencyMs)

	respond.JSON(w, h.logger, http.StatusOK, image)
}

// Recent handles GET /v1/visuals/recent.
func (h *Handler) Recent(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := GenerationFilter{Limit: 20}

	if raw := query.Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			respond.Error(w, h.logger, fmt.Errorf("invalid limit %q: %w", raw, types.ErrBadRequest))
			return
		}
		filter.Limit = parsed
	}
	if raw := query.Get("style"); raw != "" {
		parsed, err := types.ParseStyle(raw)
		if err != nil {
			respond.Error(w, h.logger, err)
			return
		}
		filter.Style = parsed
	}
	if raw := query.Get("quality"); raw != "" {
		parsed, err := types.ParseQuality(raw)
		if err != nil {
			respond.Error(w, h.logger, err)
			return
		}
		filter.Quality = parsed
	}
	if query.Get("session") == "current" {
		sessionID, _ := middleware.SessionIDFromContext(r.Context())
		filter.SessionID = sessionID
	}

	records, err := h.service.RecentGenerations(r.Context(), filter)
	if err != nil {
		respond.Error(w, h.logger, err)
		return
	}
	respond.JSON(w, h.logger, http.StatusOK, records)
}
