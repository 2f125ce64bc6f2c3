package visual

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/genai"

	"github.com/FACorreiaa/loci-canvas-api/internal/llm"
	"github.com/FACorreiaa/loci-canvas-api/internal/types"
	"github.com/FACorreiaa/loci-canvas-api/pkg/observability"
)

const generationAspectRatio = "16:9"

var _ Service = (*ServiceImpl)(nil)

type Service interface {
	// Generate builds the prompt for the request and renders one image,
	// routed by quality. The returned payload is a jpeg data URI regardless
	// of which route produced it.
	Generate(ctx context.Context, sessionID uuid.UUID, req types.GenerationRequest) (*types.GeneratedImage, error)

	// RecentGenerations lists persisted generation records, optionally
	// filtered by style and quality.
	RecentGenerations(ctx context.Context, filter GenerationFilter) ([]types.GenerationRecord, error)
}

// Config carries the model routing for the two generation paths.
type Config struct {
	InlineModel string // image-capable chat model, standard quality
	ImagenModel string // dedicated image-generation model, high and ultra
}

type ServiceImpl struct {
	repo        Repository
	imageClient llm.ImageClient
	logger      *slog.Logger
	config      Config
}

func NewServiceImpl(repo Repository, imageClient llm.ImageClient, config Config, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		repo:        repo,
		imageClient: imageClient,
		logger:      logger,
		config:      config,
	}
}

// ValidateRequest checks the invariants a GenerationRequest must satisfy
// before it reaches the prompt builder.
func ValidateRequest(req types.GenerationRequest) error {
	if strings.TrimSpace(req.LocationName) == "" {
		return fmt.Errorf("location name is required: %w", types.ErrBadRequest)
	}
	if _, err := types.ParsePerspective(string(req.Perspective)); err != nil {
		return err
	}
	if _, err := types.ParseStyle(string(req.Style)); err != nil {
		return err
	}
	if _, err := types.ParseQuality(string(req.Quality)); err != nil {
		return err
	}
	if req.Style == types.StyleCustom && strings.TrimSpace(req.CustomStyleText) == "" {
		return fmt.Errorf("custom style requires custom style text: %w", types.ErrBadRequest)
	}
	return nil
}

func (s *ServiceImpl) Generate(ctx context.Context, sessionID uuid.UUID, req types.GenerationRequest) (*types.GeneratedImage, error) {
	ctx, span := otel.Tracer("VisualService").Start(ctx, "Generate", trace.WithAttributes(
		attribute.String("location.name", req.LocationName),
		attribute.String("request.style", string(req.Style)),
		attribute.String("request.quality", string(req.Quality)),
	))
	defer span.End()

	l := s.logger.With(slog.String("method", "Generate"))

	if err := ValidateRequest(req); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Invalid generation request")
		return nil, err
	}

	prompt := BuildPrompt(req)

	var (
		payload []byte
		model   string
		err     error
	)
	startTime := time.Now()
	switch req.Quality {
	case types.QualityStandard:
		model = s.config.InlineModel
		payload, err = s.generateInline(ctx, model, prompt)
	default:
		model = s.config.ImagenModel
		payload, err = s.generateDedicated(ctx, model, prompt)
	}
	latencyMs := time.Since(startTime).Milliseconds()

	if err != nil {
		observability.GenerationsTotal.WithLabelValues(string(req.Quality), "error").Inc()
		l.ErrorContext(ctx, "Image generation failed",
			slog.String("model", model),
			slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Image generation failed")
		return nil, err
	}

	observability.GenerationsTotal.WithLabelValues(string(req.Quality), "ok").Inc()
	observability.GenerationLatency.WithLabelValues(string(req.Quality)).Observe(float64(latencyMs) / 1000)

	image := &types.GeneratedImage{
		ID:          uuid.New(),
		DataURI:     "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(payload),
		MIMEType:    "image/jpeg",
		Prompt:      prompt,
		Quality:     req.Quality,
		Model:       model,
		LatencyMs:   latencyMs,
		GeneratedAt: time.Now(),
	}

	l.InfoContext(ctx, "Image generated",
		slog.String("location", req.LocationName),
		slog.String("model", model),
		slog.String("quality", string(req.Quality)),
		slog.Int("payload_bytes", len(payload)),
		slog.Int64("latency_ms", latencyMs))
	span.SetAttributes(attribute.Int("payload.bytes", len(payload)))
	span.SetStatus(codes.Ok, "Generation completed")

	// Record the generation for the history listing (async, best effort).
	if s.repo != nil {
		record := types.GenerationRecord{
			ID:           image.ID,
			SessionID:    sessionID,
			LocationName: req.LocationName,
			Perspective:  req.Perspective,
			Style:        req.Style,
			Quality:      req.Quality,
			Prompt:       prompt,
			Model:        model,
			LatencyMs:    latencyMs,
			CreatedAt:    image.GeneratedAt,
		}
		go func() {
			if err := s.repo.SaveGeneration(context.Background(), record); err != nil {
				s.logger.Warn("failed to persist generation record", slog.Any("error", err))
			}
		}()
	}

	return image, nil
}

// generateInline asks an image-capable chat model for inline image bytes.
func (s *ServiceImpl) generateInline(ctx context.Context, model, prompt string) ([]byte, error) {
	config := &genai.GenerateContentConfig{
		ResponseModalities: []string{"TEXT", "IMAGE"},
	}
	response, err := s.imageClient.GenerateInlineImage(ctx, model, prompt, config)
	if err != nil {
		return nil, fmt.Errorf("inline image call: %v: %w", err, types.ErrGeneration)
	}
	if response == nil || len(response.Candidates) == 0 || response.Candidates[0].Content == nil {
		return nil, fmt.Errorf("inline image call returned no content: %w", types.ErrGeneration)
	}
	for _, part := range response.Candidates[0].Content.Parts {
		if part != nil && part.InlineData != nil && len(part.InlineData.Data) > 0 {
			return part.InlineData.Data, nil
		}
	}
	// Absence of image bytes is the same failure as a transport error.
	return nil, fmt.Errorf("inline image call returned no image bytes: %w", types.ErrGeneration)
}

// generateDedicated calls the dedicated image-generation endpoint.
func (s *ServiceImpl) generateDedicated(ctx context.Context, model, prompt string) ([]byte, error) {
	config := &genai.GenerateImagesConfig{
		NumberOfImages: 1,
		AspectRatio:    generationAspectRatio,
		OutputMIMEType: "image/jpeg",
	}
	response, err := s.imageClient.GenerateImages(ctx, model, prompt, config)
	if err != nil {
		return nil, fmt.Errorf("dedicated image call: %v: %w", err, types.ErrGeneration)
	}
	if response == nil || len(response.GeneratedImages) == 0 {
		return nil, fmt.Errorf("dedicated image call returned no images: %w", types.ErrGeneration)
	}
	image := response.GeneratedImages[0]
	if image == nil || image.Image == nil || len(image.Image.ImageBytes) == 0 {
		return nil, fmt.Errorf("dedicated image call returned no image bytes: %w", types.ErrGeneration)
	}
	return image.Image.ImageBytes, nil
}

func (s *ServiceImpl) RecentGenerations(ctx context.Context, filter GenerationFilter) ([]types.GenerationRecord, error) {
	ctx, span := otel.Tracer("VisualService").Start(ctx, "RecentGenerations")
	defer span.End()

	l := s.logger.With(slog.String("method", "RecentGenerations"))

	records, err := s.repo.RecentGenerations(ctx, filter)
	if err != nil {
		l.ErrorContext(ctx, "Failed to list generations", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Listing failed")
		return nil, fmt.Errorf("failed to list generations: %w", err)
	}

	span.SetStatus(codes.Ok, "Listing completed")
	return records, nil
}
