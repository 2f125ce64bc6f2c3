package style

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/genai"

	"github.com/FACorreiaa/loci-canvas-api/internal/lib"
	"github.com/FACorreiaa/loci-canvas-api/internal/llm"
	"github.com/FACorreiaa/loci-canvas-api/internal/types"
	"github.com/FACorreiaa/loci-canvas-api/pkg/observability"
)

var _ Service = (*ServiceImpl)(nil)

type Service interface {
	// Recommend asks the model for a perspective/style pairing for the
	// resolved location. The heuristics live in the instruction text; the
	// only enforced contract here is strict schema validation of the reply.
	Recommend(ctx context.Context, locationName, description string) (*types.StyleRecommendation, error)
}

type ServiceImpl struct {
	aiClient llm.ChatClient
	logger   *slog.Logger
}

func NewServiceImpl(aiClient llm.ChatClient, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		aiClient: aiClient,
		logger:   logger,
	}
}

// recommendationSchema constrains the completion to the exact three-field
// shape, with both enum fields restricted to the closed option sets.
func recommendationSchema() *genai.Schema {
	perspectives := make([]string, 0, len(types.AllPerspectives()))
	for _, p := range types.AllPerspectives() {
		perspectives = append(perspectives, string(p))
	}
	styles := make([]string, 0, len(types.FixedStyles()))
	for _, s := range types.FixedStyles() {
		styles = append(styles, string(s))
	}

	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"perspective": {Type: genai.TypeString, Enum: perspectives},
			"style":       {Type: genai.TypeString, Enum: styles},
			"reasoning":   {Type: genai.TypeString},
		},
		Required: []string{"perspective", "style", "reasoning"},
	}
}

func (s *ServiceImpl) Recommend(ctx context.Context, locationName, description string) (*types.StyleRecommendation, error) {
	ctx, span := otel.Tracer("StyleService").Start(ctx, "Recommend", trace.WithAttributes(
		attribute.String("location.name", locationName),
	))
	defer span.End()

	l := s.logger.With(slog.String("method", "Recommend"))

	config := &genai.GenerateContentConfig{
		Temperature:      genai.Ptr[float32](0.2),
		ResponseMIMEType: "application/json",
		ResponseSchema:   recommendationSchema(),
	}

	startTime := time.Now()
	response, err := s.aiClient.GenerateResponse(ctx, recommendStylePrompt(locationName, description), config)
	latencyMs := time.Since(startTime).Milliseconds()

	if err != nil {
		observability.RecommendationsTotal.WithLabelValues("error").Inc()
		l.ErrorContext(ctx, "Structured completion failed", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Structured completion failed")
		return nil, fmt.Errorf("structured completion: %v: %w", err, types.ErrRecommendation)
	}

	text := responseText(response)
	if text == "" {
		observability.RecommendationsTotal.WithLabelValues("error").Inc()
		err := fmt.Errorf("empty completion text: %w", types.ErrRecommendation)
		l.ErrorContext(ctx, "Structured completion returned no text")
		span.RecordError(err)
		span.SetStatus(codes.Error, "Empty completion")
		return nil, err
	}

	var payload struct {
		Perspective string `json:"perspective"`
		Style       string `json:"style"`
		Reasoning   string `json:"reasoning"`
	}
	if err := json.Unmarshal([]byte(lib.CleanJSONResponse(text)), &payload); err != nil {
		observability.RecommendationsTotal.WithLabelValues("error").Inc()
		l.ErrorContext(ctx, "Recommendation payload unparseable",
			slog.Any("error", err),
			slog.String("payload_preview", text[:min(200, len(text))]))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Unparseable payload")
		return nil, fmt.Errorf("unparseable recommendation payload: %v: %w", err, types.ErrRecommendation)
	}

	// Strict enum validation; no default recommendation on failure.
	perspective, err := types.ParsePerspective(payload.Perspective)
	if err != nil {
		observability.RecommendationsTotal.WithLabelValues("error").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, "Invalid perspective")
		return nil, fmt.Errorf("recommendation returned invalid perspective %q: %w", payload.Perspective, types.ErrRecommendation)
	}
	styleOption, err := types.ParseStyle(payload.Style)
	if err != nil || styleOption == types.StyleCustom {
		observability.RecommendationsTotal.WithLabelValues("error").Inc()
		span.SetStatus(codes.Error, "Invalid style")
		return nil, fmt.Errorf("recommendation returned invalid style %q: %w", payload.Style, types.ErrRecommendation)
	}

	observability.RecommendationsTotal.WithLabelValues("ok").Inc()
	l.InfoContext(ctx, "Style recommended",
		slog.String("location", locationName),
		slog.String("perspective", string(perspective)),
		slog.String("style", string(styleOption)),
		slog.Int64("latency_ms", latencyMs))
	span.SetAttributes(
		attribute.String("recommendation.perspective", string(perspective)),
		attribute.String("recommendation.style", string(styleOption)),
	)
	span.SetStatus(codes.Ok, "Recommendation completed")

	return &types.StyleRecommendation{
		Perspective: perspective,
		Style:       styleOption,
		Reasoning:   payload.Reasoning,
	}, nil
}

func responseText(response *genai.GenerateContentResponse) string {
	if response == nil || len(response.Candidates) == 0 {
		return ""
	}
	candidate := response.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return ""
	}
	if candidate.Content.Parts[0] == nil {
		return ""
	}
	return candidate.Content.Parts[0].Text
}
