package session

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/FACorreiaa/loci-canvas-api/internal/types"
	"github.com/FACorreiaa/loci-canvas-api/pkg/db"
)

var _ Repository = (*RepositoryImpl)(nil)

type Repository interface {
	AppendActivity(ctx context.Context, sessionID uuid.UUID, entry types.ActivityEntry) error
	ActivityLog(ctx context.Context, sessionID uuid.UUID, limit int) ([]types.ActivityEntry, error)
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

func (r *RepositoryImpl) AppendActivity(ctx context.Context, sessionID uuid.UUID, entry types.ActivityEntry) error {
	query := `
        INSERT INTO session_activity (session_id, level, message, created_at)
        VALUES ($1, $2, $3, $4)
    `
	_, err := r.pgpool.Exec(ctx, query, sessionID, entry.Level, entry.Message, entry.Timestamp)
	if err != nil {
		return fmt.Errorf("failed to insert activity entry: %w", err)
	}
	return nil
}

func (r *RepositoryImpl) ActivityLog(ctx context.Context, sessionID uuid.UUID, limit int) ([]types.ActivityEntry, error) {
	query := `
        SELECT level, message, created_at
        FROM session_activity
        WHERE session_id = $1
        ORDER BY created_at DESC
        LIMIT $2
    `
	rows, err := r.pgpool.Query(ctx, query, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query activity log: %w", err)
	}
	defer rows.Close()

	var entries []types.ActivityEntry
	for rows.Next() {
		var entry types.ActivityEntry
		if err := rows.Scan(&entry.Level, &entry.Message, &entry.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan activity entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate activity entries: %w", err)
	}
	return entries, nil
}
