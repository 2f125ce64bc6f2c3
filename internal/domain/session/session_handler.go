package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/FACorreiaa/loci-canvas-api/internal/types"
	"github.com/FACorreiaa/loci-canvas-api/pkg/middleware"
	"github.com/FACorreiaa/loci-canvas-api/pkg/respond"
)

// Handler exposes session state, the activity log, and the two selection
// rehydration surfaces (deep links and share tokens).
type Handler struct {
	service Service
	tokens  *ShareTokens
	logger  *slog.Logger
}

func NewHandler(service Service, tokens *ShareTokens, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		tokens:  tokens,
		logger:  logger,
	}
}

// Current handles GET /v1/sessions/current.
func (h *Handler) Current(w http.ResponseWriter, r *http.Request) {
	sessionID, _ := middleware.SessionIDFromContext(r.Context())
	respond.JSON(w, h.logger, http.StatusOK, h.service.GetOrCreate(sessionID))
}

// Activity handles GET /v1/sessions/current/activity.
func (h *Handler) Activity(w http.ResponseWriter, r *http.Request) {
	sessionID, _ := middleware.SessionIDFromContext(r.Context())

	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			respond.Error(w, h.logger, fmt.Errorf("invalid limit %q: %w", raw, types.ErrBadRequest))
			return
		}
		limit = parsed
	}

	entries, err := h.service.ActivityLog(r.Context(), sessionID, limit)
	if err != nil {
		respond.Error(w, h.logger, err)
		return
	}
	respond.JSON(w, h.logger, http.StatusOK, entries)
}

// DeepLink handles GET /v1/deeplink. Recognized query parameters overwrite
// the session selection; unknown or invalid values are ignored.
func (h *Handler) DeepLink(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID, _ := middleware.SessionIDFromContext(ctx)

	selection := ParseDeepLink(r.URL.Query())
	h.service.SetSelection(sessionID, selection)
	h.service.AppendActivity(ctx, sessionID, "info", "Selection restored from deep link")

	respond.JSON(w, h.logger, http.StatusOK, selection)
}

type shareResponse struct {
	Token string `json:"token"`
	Query string `json:"query"`
}

// CreateShare handles POST /v1/share. The body may carry an explicit
// selection; an empty body shares the session's current one.
func (h *Handler) CreateShare(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID, _ := middleware.SessionIDFromContext(ctx)

	var req types.GenerationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		respond.Error(w, h.logger, fmt.Errorf("invalid request body: %w", types.ErrBadRequest))
		return
	}
	if req.LocationName == "" {
		req = h.service.GetOrCreate(sessionID).Selection
	}
	if req.LocationName == "" {
		respond.Error(w, h.logger, fmt.Errorf("nothing to share yet: %w", types.ErrBadRequest))
		return
	}

	token, err := h.tokens.Sign(req)
	if err != nil {
		respond.Error(w, h.logger, err)
		return
	}
	h.service.AppendActivity(ctx, sessionID, "info", "Share link created for %s", req.LocationName)

	respond.JSON(w, h.logger, http.StatusOK, shareResponse{
		Token: token,
		Query: EncodeDeepLink(req).Encode(),
	})
}

// ResolveShare handles GET /v1/share/{token}. A valid token overwrites the
// session selection with the shared one.
func (h *Handler) ResolveShare(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID, _ := middleware.SessionIDFromContext(ctx)

	selection, err := h.tokens.Verify(r.PathValue("token"))
	if err != nil {
		respond.Error(w, h.logger, err)
		return
	}

	h.service.SetSelection(sessionID, selection)
	h.service.AppendActivity(ctx, sessionID, "info", "Selection restored from share link")

	respond.JSON(w, h.logger, http.StatusOK, selection)
}
