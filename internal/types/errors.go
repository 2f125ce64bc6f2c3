package types

import (
	"errors"
	"net/http"
)

// Domain specific errors for the resolve / recommend / generate flows.
var (
	ErrNotFound       = errors.New("requested item not found")
	ErrBadRequest     = errors.New("bad request")
	ErrConfiguration  = errors.New("missing or invalid configuration")
	ErrResolution     = errors.New("location resolution failed")
	ErrRecommendation = errors.New("style recommendation failed")
	ErrGeneration     = errors.New("image generation failed")
)

// HTTPStatus maps a domain error to the status code the API surfaces.
// Upstream model failures are bad gateways: the backend call failed, not us.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrResolution),
		errors.Is(err, ErrRecommendation),
		errors.Is(err, ErrGeneration):
		return http.StatusBadGateway
	case errors.Is(err, ErrConfiguration):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
