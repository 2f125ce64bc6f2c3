package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/FACorreiaa/loci-canvas-api/internal/types"
)

// JSON writes payload as a JSON body with the given status. Encoding failures
// are logged and ignored; the status line has already been sent.
func JSON(w http.ResponseWriter, logger *slog.Logger, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("Failed to encode response payload", slog.Any("error", err))
	}
}

type errorBody struct {
	Error string `json:"error"`
}

// Error maps a domain error onto its HTTP status and writes a JSON error body.
func Error(w http.ResponseWriter, logger *slog.Logger, err error) {
	JSON(w, logger, types.HTTPStatus(err), errorBody{Error: err.Error()})
}
