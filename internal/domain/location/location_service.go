package location

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/genai"

	"github.com/FACorreiaa/loci-canvas-api/internal/llm"
	"github.com/FACorreiaa/loci-canvas-api/internal/types"
	"github.com/FACorreiaa/loci-canvas-api/pkg/observability"
)

var _ Service = (*ServiceImpl)(nil)

type Service interface {
	// Resolve issues one grounded completion for the query and normalizes it
	// into a LocationRecord. Coordinates are carried through untouched.
	Resolve(ctx context.Context, query string, coords *types.Coordinates) (*types.LocationRecord, error)

	// RecentLocations lists the most recently resolved locations.
	RecentLocations(ctx context.Context, limit int) ([]types.LocationRecord, error)
}

type ServiceImpl struct {
	repo     Repository
	aiClient llm.ChatClient
	logger   *slog.Logger
	cache    *cache.Cache
}

func NewServiceImpl(repo Repository, aiClient llm.ChatClient, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		repo:     repo,
		aiClient: aiClient,
		logger:   logger,
		cache:    cache.New(10*time.Minute, 30*time.Minute),
	}
}

// Resolve issues the grounded-search call and normalizes the response.
// A repeated identical query within the cache TTL short-circuits the call.
func (s *ServiceImpl) Resolve(ctx context.Context, query string, coords *types.Coordinates) (*types.LocationRecord, error) {
	ctx, span := otel.Tracer("LocationService").Start(ctx, "Resolve", trace.WithAttributes(
		attribute.String("query", query),
	))
	defer span.End()

	l := s.logger.With(slog.String("method", "Resolve"))

	query = strings.TrimSpace(query)
	if query == "" {
		err := fmt.Errorf("empty query: %w", types.ErrBadRequest)
		span.RecordError(err)
		span.SetStatus(codes.Error, "empty query")
		return nil, err
	}

	cacheKey := strings.ToLower(query)
	if cached, found := s.cache.Get(cacheKey); found {
		if record, ok := cached.(*types.LocationRecord); ok {
			observability.ResolutionsTotal.WithLabelValues("cache").Inc()
			l.DebugContext(ctx, "Resolution served from cache", slog.String("query", query))
			span.SetAttributes(attribute.String("source", "cache"))
			span.SetStatus(codes.Ok, "Cache hit")
			return record, nil
		}
	}

	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr[float32](0.4),
		Tools: []*genai.Tool{
			{GoogleSearch: &genai.GoogleSearch{}},
		},
	}

	startTime := time.Now()
	response, err := s.aiClient.GenerateResponse(ctx, resolveLocationPrompt(query), config)
	latencyMs := time.Since(startTime).Milliseconds()

	if err != nil {
		observability.ResolutionsTotal.WithLabelValues("error").Inc()
		l.ErrorContext(ctx, "Grounded completion failed", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Grounded completion failed")
		return nil, fmt.Errorf("grounded completion: %v: %w", err, types.ErrResolution)
	}

	text := responseText(response)
	if text == "" {
		observability.ResolutionsTotal.WithLabelValues("error").Inc()
		err := fmt.Errorf("empty completion text: %w", types.ErrResolution)
		l.ErrorContext(ctx, "Grounded completion returned no text")
		span.RecordError(err)
		span.SetStatus(codes.Error, "Empty completion")
		return nil, err
	}

	sources := normalizeGroundingSources(response)
	record := &types.LocationRecord{
		ID:               uuid.New(),
		Query:            query,
		Name:             deriveName(sources, query),
		Description:      text,
		RawText:          text,
		GroundingSources: sources,
		Coordinates:      coords,
		ThemeHints:       types.ThemeHints(text),
		ResolvedAt:       time.Now(),
	}

	observability.ResolutionsTotal.WithLabelValues("ok").Inc()
	l.InfoContext(ctx, "Location resolved",
		slog.String("query", query),
		slog.String("name", record.Name),
		slog.Int("sources", len(sources)),
		slog.Int64("latency_ms", latencyMs))
	span.SetAttributes(
		attribute.String("location.name", record.Name),
		attribute.Int("sources.count", len(sources)),
	)
	span.SetStatus(codes.Ok, "Resolution completed")

	s.cache.Set(cacheKey, record, cache.DefaultExpiration)

	// Persist for the recents listing (async, don't fail the resolution on it).
	if s.repo != nil {
		go func(rec types.LocationRecord) {
			if err := s.repo.SaveLocation(context.Background(), rec); err != nil {
				s.logger.Warn("failed to persist resolved location", slog.Any("error", err))
			}
		}(*record)
	}

	return record, nil
}

// RecentLocations lists the most recently resolved locations.
func (s *ServiceImpl) RecentLocations(ctx context.Context, limit int) ([]types.LocationRecord, error) {
	ctx, span := otel.Tracer("LocationService").Start(ctx, "RecentLocations")
	defer span.End()

	l := s.logger.With(slog.String("method", "RecentLocations"))

	if limit <= 0 {
		limit = 10
	}
	records, err := s.repo.RecentLocations(ctx, limit)
	if err != nil {
		l.ErrorContext(ctx, "Failed to list recent locations", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Listing failed")
		return nil, fmt.Errorf("failed to list recent locations: %w", err)
	}

	span.SetStatus(codes.Ok, "Listing completed")
	return records, nil
}

// responseText concatenates the text parts of the first candidate.
func responseText(response *genai.GenerateContentResponse) string {
	if response == nil || len(response.Candidates) == 0 {
		return ""
	}
	candidate := response.Candidates[0]
	if candidate.Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range candidate.Content.Parts {
		if part != nil && part.Text != "" {
			b.WriteString(part.Text)
		}
	}
	return strings.TrimSpace(b.String())
}

// normalizeGroundingSources flattens the heterogeneous grounding chunks into
// the tagged GroundingSource union, preserving order.
func normalizeGroundingSources(response *genai.GenerateContentResponse) []types.GroundingSource {
	if response == nil || len(response.Candidates) == 0 {
		return nil
	}
	metadata := response.Candidates[0].GroundingMetadata
	if metadata == nil {
		return nil
	}

	var sources []types.GroundingSource
	for _, chunk := range metadata.GroundingChunks {
		if chunk == nil {
			continue
		}
		switch {
		case chunk.Web != nil:
			sources = append(sources, types.GroundingSource{
				Kind:  types.GroundingSourceWeb,
				URI:   chunk.Web.URI,
				Title: chunk.Web.Title,
			})
		case chunk.Maps != nil:
			source := types.GroundingSource{
				Kind:    types.GroundingSourceMaps,
				URI:     chunk.Maps.URI,
				Title:   chunk.Maps.Title,
				PlaceID: chunk.Maps.PlaceID,
			}
			if chunk.Maps.Text != "" {
				source.ReviewSnippets = []string{chunk.Maps.Text}
			}
			sources = append(sources, source)
		}
	}
	return sources
}

// deriveName picks the first web source with a non-empty title; the query
// string is the fallback. A heuristic, not a canonicalization: the answer may
// describe a different canonical name and we would still return the query.
func deriveName(sources []types.GroundingSource, query string) string {
	for _, source := range sources {
		if source.Kind == types.GroundingSourceWeb && source.Title != "" {
			return source.Title
		}
	}
	return query
}
