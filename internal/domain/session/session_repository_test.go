package session

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/loci-canvas-api/internal/types"
)

func TestAppendActivityInsert(t *testing.T) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()

	repo := NewRepositoryImpl(mockPool, slog.Default())
	sessionID := uuid.New()
	entry := types.ActivityEntry{
		Timestamp: time.Now(),
		Level:     "info",
		Message:   "Resolved \"Kyoto\"",
	}

	mockPool.ExpectExec("INSERT INTO session_activity").
		WithArgs(sessionID, entry.Level, entry.Message, entry.Timestamp).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err = repo.AppendActivity(context.Background(), sessionID, entry)

	require.NoError(t, err)
	assert.NoError(t, mockPool.ExpectationsWereMet())
}

func TestActivityLogQuery(t *testing.T) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()

	repo := NewRepositoryImpl(mockPool, slog.Default())
	sessionID := uuid.New()
	now := time.Now()

	rows := pgxmock.NewRows([]string{"level", "message", "created_at"}).
		AddRow("info", "Generated ultra image in 2100ms", now).
		AddRow("error", "Generation failed: upstream unavailable", now.Add(-time.Minute))

	mockPool.ExpectQuery("SELECT (.+) FROM session_activity").
		WithArgs(sessionID, 25).
		WillReturnRows(rows)

	entries, err := repo.ActivityLog(context.Background(), sessionID, 25)

	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "info", entries[0].Level)
	assert.Equal(t, "error", entries[1].Level)
	assert.NoError(t, mockPool.ExpectationsWereMet())
}
