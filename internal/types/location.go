package types

import (
	"time"

	"github.com/google/uuid"
)

// GroundingSourceKind discriminates the grounding source union.
type GroundingSourceKind string

const (
	GroundingSourceWeb  GroundingSourceKind = "web"
	GroundingSourceMaps GroundingSourceKind = "maps"
)

// GroundingSource is a citation the backend attached to a completion. Exactly
// one of the kind-specific fields is meaningful, selected by Kind.
type GroundingSource struct {
	Kind  GroundingSourceKind `json:"kind"`
	URI   string              `json:"uri"`
	Title string              `json:"title"`

	// Maps-only fields.
	PlaceID        string   `json:"place_id,omitempty"`
	ReviewSnippets []string `json:"review_snippets,omitempty"`
}

// Coordinates is an optional user position attached to a resolution request.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// LocationRecord is the normalized result of one grounded resolution call.
// Immutable after creation; a later resolution for a different query
// supersedes it wholesale.
type LocationRecord struct {
	ID               uuid.UUID         `json:"id"`
	Query            string            `json:"query"`
	Name             string            `json:"name"`
	Description      string            `json:"description"`
	RawText          string            `json:"raw_text"`
	GroundingSources []GroundingSource `json:"grounding_sources"`
	Coordinates      *Coordinates      `json:"coordinates,omitempty"`
	ThemeHints       []StyleOption     `json:"theme_hints,omitempty"`
	ResolvedAt       time.Time         `json:"resolved_at"`
}

// StyleRecommendation is the structured output of the recommender call. It is
// consumed immediately to overwrite the session selection, never persisted.
type StyleRecommendation struct {
	Perspective PerspectiveOption `json:"perspective"`
	Style       StyleOption       `json:"style"`
	Reasoning   string            `json:"reasoning"`
}

// GenerationRequest is the full input tuple for the prompt builder. It is
// consumed atomically; the builder never sees a partial request.
type GenerationRequest struct {
	LocationName    string            `json:"location_name"`
	Description     string            `json:"description"`
	Perspective     PerspectiveOption `json:"perspective"`
	Style           StyleOption       `json:"style"`
	CustomStyleText string            `json:"custom_style_text,omitempty"`
	Quality         QualityOption     `json:"quality"`
}

// DefaultGenerationRequest returns the selection a fresh session starts with.
func DefaultGenerationRequest() GenerationRequest {
	return GenerationRequest{
		Perspective: PerspectiveAerial,
		Style:       StyleRealistic,
		Quality:     QualityStandard,
	}
}

// GeneratedImage is a self-contained render payload. Created per generation
// call and replaced by the next one; never cached or deduplicated.
type GeneratedImage struct {
	ID          uuid.UUID     `json:"id"`
	DataURI     string        `json:"data_uri"`
	MIMEType    string        `json:"mime_type"`
	Prompt      string        `json:"prompt"`
	Quality     QualityOption `json:"quality"`
	Model       string        `json:"model"`
	LatencyMs   int64         `json:"latency_ms"`
	GeneratedAt time.Time     `json:"generated_at"`
}

// GenerationRecord is the persisted trace of one generation call.
type GenerationRecord struct {
	ID           uuid.UUID         `json:"id"`
	SessionID    uuid.UUID         `json:"session_id"`
	LocationName string            `json:"location_name"`
	Perspective  PerspectiveOption `json:"perspective"`
	Style        StyleOption       `json:"style"`
	Quality      QualityOption     `json:"quality"`
	Prompt       string            `json:"prompt"`
	Model        string            `json:"model"`
	LatencyMs    int64             `json:"latency_ms"`
	CreatedAt    time.Time         `json:"created_at"`
}
