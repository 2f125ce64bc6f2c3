package location

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/FACorreiaa/loci-canvas-api/internal/types"
	"github.com/FACorreiaa/loci-canvas-api/pkg/db"
)

var _ Repository = (*RepositoryImpl)(nil)

type Repository interface {
	SaveLocation(ctx context.Context, record types.LocationRecord) error
	RecentLocations(ctx context.Context, limit int) ([]types.LocationRecord, error)
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

func (r *RepositoryImpl) SaveLocation(ctx context.Context, record types.LocationRecord) error {
	sourcesJSON, err := json.Marshal(record.GroundingSources)
	if err != nil {
		return fmt.Errorf("failed to marshal grounding sources: %w", err)
	}

	hints := make([]string, 0, len(record.ThemeHints))
	for _, hint := range record.ThemeHints {
		hints = append(hints, string(hint))
	}

	var lat, lon *float64
	if record.Coordinates != nil {
		lat = &record.Coordinates.Latitude
		lon = &record.Coordinates.Longitude
	}

	query := `
        INSERT INTO resolved_locations (
            id, query, name, description, raw_text, grounding_sources,
            latitude, longitude, theme_hints, resolved_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
    `
	_, err = r.pgpool.Exec(ctx, query,
		record.ID,
		record.Query,
		record.Name,
		record.Description,
		record.RawText,
		sourcesJSON,
		lat,
		lon,
		hints,
		record.ResolvedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert resolved location: %w", err)
	}
	return nil
}

func (r *RepositoryImpl) RecentLocations(ctx context.Context, limit int) ([]types.LocationRecord, error) {
	query := `
        SELECT id, query, name, description, raw_text, grounding_sources,
               latitude, longitude, theme_hints, resolved_at
        FROM resolved_locations
        ORDER BY resolved_at DESC
        LIMIT $1
    `
	rows, err := r.pgpool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent locations: %w", err)
	}
	defer rows.Close()

	var records []types.LocationRecord
	for rows.Next() {
		var (
			record      types.LocationRecord
			sourcesJSON []byte
			lat, lon    *float64
			hints       []string
		)
		if err := rows.Scan(
			&record.ID,
			&record.Query,
			&record.Name,
			&record.Description,
			&record.RawText,
			&sourcesJSON,
			&lat,
			&lon,
			&hints,
			&record.ResolvedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan resolved location: %w", err)
		}
		if len(sourcesJSON) > 0 {
			if err := json.Unmarshal(sourcesJSON, &record.GroundingSources); err != nil {
				r.logger.Warn("failed to unmarshal grounding sources", slog.Any("error", err))
			}
		}
		if lat != nil && lon != nil {
			record.Coordinates = &types.Coordinates{Latitude: *lat, Longitude: *lon}
		}
		for _, hint := range hints {
			record.ThemeHints = append(record.ThemeHints, types.StyleOption(hint))
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate resolved locations: %w", err)
	}
	return records, nil
}
