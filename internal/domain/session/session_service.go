package session

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/FACorreiaa/loci-canvas-api/internal/types"
)

var _ Service = (*ServiceImpl)(nil)

// Service owns all session state. Flows mutate a session only through these
// methods; each write replaces the stored state wholesale, so concurrent
// flows on one session settle on last-write-wins.
type Service interface {
	GetOrCreate(sessionID uuid.UUID) *types.SessionState
	SetLocation(sessionID uuid.UUID, location *types.LocationRecord)
	SetSelection(sessionID uuid.UUID, selection types.GenerationRequest)
	ApplyRecommendation(sessionID uuid.UUID, rec types.StyleRecommendation)
	SetImage(sessionID uuid.UUID, image *types.GeneratedImage)

	AppendActivity(ctx context.Context, sessionID uuid.UUID, level, format string, args ...any)
	ActivityLog(ctx context.Context, sessionID uuid.UUID, limit int) ([]types.ActivityEntry, error)
}

type ServiceImpl struct {
	repo   Repository
	logger *slog.Logger
	states *cache.Cache
}

func NewServiceImpl(repo Repository, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		repo:   repo,
		logger: logger,
		states: cache.New(24*time.Hour, 1*time.Hour),
	}
}

func (s *ServiceImpl) GetOrCreate(sessionID uuid.UUID) *types.SessionState {
	if cached, found := s.states.Get(sessionID.String()); found {
		if state, ok := cached.(*types.SessionState); ok {
			return state
		}
	}
	state := types.NewSessionState(sessionID)
	s.states.Set(sessionID.String(), state, cache.DefaultExpiration)
	return state
}

func (s *ServiceImpl) SetLocation(sessionID uuid.UUID, location *types.LocationRecord) {
	state := *s.GetOrCreate(sessionID)
	state.Location = location
	state.UpdatedAt = time.Now()
	s.states.Set(sessionID.String(), &state, cache.DefaultExpiration)
}

func (s *ServiceImpl) SetSelection(sessionID uuid.UUID, selection types.GenerationRequest) {
	state := *s.GetOrCreate(sessionID)
	state.Selection = selection
	state.UpdatedAt = time.Now()
	s.states.Set(sessionID.String(), &state, cache.DefaultExpiration)
}

// ApplyRecommendation overwrites only the perspective and style of the current
// selection, leaving quality and custom text untouched.
func (s *ServiceImpl) ApplyRecommendation(sessionID uuid.UUID, rec types.StyleRecommendation) {
	state := *s.GetOrCreate(sessionID)
	state.Selection.Perspective = rec.Perspective
	state.Selection.Style = rec.Style
	state.UpdatedAt = time.Now()
	s.states.Set(sessionID.String(), &state, cache.DefaultExpiration)
}

func (s *ServiceImpl) SetImage(sessionID uuid.UUID, image *types.GeneratedImage) {
	state := *s.GetOrCreate(sessionID)
	state.CurrentImage = image
	state.UpdatedAt = time.Now()
	s.states.Set(sessionID.String(), &state, cache.DefaultExpiration)
}

// AppendActivity records one human-readable log line for the session. It
// never fails the calling flow; persistence errors are logged and dropped.
func (s *ServiceImpl) AppendActivity(ctx context.Context, sessionID uuid.UUID, level, format string, args ...any) {
	entry := types.ActivityEntry{
		Timestamp: time.Now(),
		Level:     level,
		Message:   fmt.Sprintf(format, args...),
	}
	if s.repo == nil {
		return
	}
	if err := s.repo.AppendActivity(ctx, sessionID, entry); err != nil {
		s.logger.Warn("failed to persist activity entry",
			slog.String("session_id", sessionID.String()),
			slog.Any("error", err))
	}
}

func (s *ServiceImpl) ActivityLog(ctx context.Context, sessionID uuid.UUID, limit int) ([]types.ActivityEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	entries, err := s.repo.ActivityLog(ctx, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load activity log: %w", err)
	}
	return entries, nil
}
