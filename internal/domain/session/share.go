package session

import (
	"fmt"
	"net/url"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/FACorreiaa/loci-canvas-api/internal/types"
)

// Deep-link query-string keys, matching the shareable URL format.
const (
	deepLinkLocation    = "loc"
	deepLinkPerspective = "per"
	deepLinkStyle       = "sty"
	deepLinkQuality     = "qual"
	deepLinkCustom      = "cust"
)

// ParseDeepLink maps query-string parameters onto a GenerationRequest.
// Unrecognized enum values are silently ignored, leaving the default in
// place; only the location and custom text are carried verbatim.
func ParseDeepLink(values url.Values) types.GenerationRequest {
	req := types.DefaultGenerationRequest()

	req.LocationName = values.Get(deepLinkLocation)
	if perspective, err := types.ParsePerspective(values.Get(deepLinkPerspective)); err == nil {
		req.Perspective = perspective
	}
	if style, err := types.ParseStyle(values.Get(deepLinkStyle)); err == nil {
		req.Style = style
	}
	if quality, err := types.ParseQuality(values.Get(deepLinkQuality)); err == nil {
		req.Quality = quality
	}
	req.CustomStyleText = values.Get(deepLinkCustom)

	return req
}

// EncodeDeepLink renders a GenerationRequest as shareable query parameters.
func EncodeDeepLink(req types.GenerationRequest) url.Values {
	values := url.Values{}
	values.Set(deepLinkLocation, req.LocationName)
	values.Set(deepLinkPerspective, string(req.Perspective))
	values.Set(deepLinkStyle, string(req.Style))
	values.Set(deepLinkQuality, string(req.Quality))
	if req.CustomStyleText != "" {
		values.Set(deepLinkCustom, req.CustomStyleText)
	}
	return values
}

type shareClaims struct {
	Location    string `json:"loc"`
	Perspective string `json:"per"`
	Style       string `json:"sty"`
	Quality     string `json:"qual"`
	Custom      string `json:"cust,omitempty"`
	jwt.RegisteredClaims
}

// ShareTokens signs and verifies opaque share tokens wrapping a full
// GenerationRequest, so a session configuration travels as one URL segment.
type ShareTokens struct {
	secret []byte
	ttl    time.Duration
}

func NewShareTokens(secret []byte, ttl time.Duration) *ShareTokens {
	return &ShareTokens{secret: secret, ttl: ttl}
}

// Sign wraps the request in a signed token.
func (t *ShareTokens) Sign(req types.GenerationRequest) (string, error) {
	now := time.Now()
	claims := shareClaims{
		Location:    req.LocationName,
		Perspective: string(req.Perspective),
		Style:       string(req.Style),
		Quality:     string(req.Quality),
		Custom:      req.CustomStyleText,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign share token: %w", err)
	}
	return signed, nil
}

// Verify validates a share token and decodes the request it carries.
// Enum fields follow deep-link semantics: invalid values fall back to the
// defaults rather than failing the whole token.
func (t *ShareTokens) Verify(tokenString string) (types.GenerationRequest, error) {
	var claims shareClaims
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil {
		return types.GenerationRequest{}, fmt.Errorf("invalid share token: %v: %w", err, types.ErrBadRequest)
	}

	values := url.Values{}
	values.Set(deepLinkLocation, claims.Location)
	values.Set(deepLinkPerspective, claims.Perspective)
	values.Set(deepLinkStyle, claims.Style)
	values.Set(deepLinkQuality, claims.Quality)
	values.Set(deepLinkCustom, claims.Custom)
	return ParseDeepLink(values), nil
}
