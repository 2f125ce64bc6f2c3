package visual

import (
	"context"
	"fmt"
	"log/slog"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/FACorreiaa/loci-canvas-api/internal/types"
	"github.com/FACorreiaa/loci-canvas-api/pkg/db"
)

var _ Repository = (*RepositoryImpl)(nil)

// GenerationFilter narrows the history listing. Zero values mean "no filter".
type GenerationFilter struct {
	SessionID uuid.UUID
	Style     types.StyleOption
	Quality   types.QualityOption
	Limit     int
}

type Repository interface {
	SaveGeneration(ctx context.Context, record types.GenerationRecord) error
	RecentGenerations(ctx context.Context, filter GenerationFilter) ([]types.GenerationRecord, error)
}

type RepositoryImpl struct {
	logger *slog.Logger
	pgpool db.Querier
}

func NewRepositoryImpl(pgpool db.Querier, logger *slog.Logger) *RepositoryImpl {
	return &RepositoryImpl{
		logger: logger,
		pgpool: pgpool,
	}
}

func (r *RepositoryImpl) SaveGeneration(ctx context.Context, record types.GenerationRecord) error {
	query := `
        INSERT INTO generations (
            id, session_id, location_name, perspective, style, quality,
            prompt, model, latency_ms, created_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
    `
	_, err := r.pgpool.Exec(ctx, query,
		record.ID,
		record.SessionID,
		record.LocationName,
		string(record.Perspective),
		string(record.Style),
		string(record.Quality),
		record.Prompt,
		record.Model,
		record.LatencyMs,
		record.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert generation record: %w", err)
	}
	return nil
}

func (r *RepositoryImpl) RecentGenerations(ctx context.Context, filter GenerationFilter) ([]types.GenerationRecord, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}

	builder := sq.Select(
		"id", "session_id", "location_name", "perspective", "style",
		"quality", "prompt", "model", "latency_ms", "created_at",
	).
		From("generations").
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		PlaceholderFormat(sq.Dollar)

	if filter.SessionID != uuid.Nil {
		builder = builder.Where(sq.Eq{"session_id": filter.SessionID})
	}
	if filter.Style != "" {
		builder = builder.Where(sq.Eq{"style": string(filter.Style)})
	}
	if filter.Quality != "" {
		builder = builder.Where(sq.Eq{"quality": string(filter.Quality)})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build generations query: %w", err)
	}

	rows, err := r.pgpool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query generations: %w", err)
	}
	defer rows.Close()

	var records []types.GenerationRecord
	for rows.Next() {
		var (
			record                      types.GenerationRecord
			perspective, style, quality string
		)
		if err := rows.Scan(
			&record.ID,
			&record.SessionID,
			&record.LocationName,
			&perspective,
			&style,
			&quality,
			&record.Prompt,
			&record.Model,
			&record.LatencyMs,
			&record.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan generation record: %w", err)
		}
		record.Perspective = types.PerspectiveOption(perspective)
		record.Style = types.StyleOption(style)
		record.Quality = types.QualityOption(quality)
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate generation records: %w", err)
	}
	return records, nil
}
