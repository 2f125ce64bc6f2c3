package location

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/loci-canvas-api/internal/domain/session"
	"github.com/FACorreiaa/loci-canvas-api/internal/types"
)

// MockLocationService is a mock implementation of Service
type MockLocationService struct {
	mock.Mock
}

func (m *MockLocationService) Resolve(ctx context.Context, query string, coords *types.Coordinates) (*types.LocationRecord, error) {
	args := m.Called(ctx, query, coords)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.LocationRecord), args.Error(1)
}

func (m *MockLocationService) RecentLocations(ctx context.Context, limit int) ([]types.LocationRecord, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.LocationRecord), args.Error(1)
}

func TestResolveHandlerKeepsSessionSelection(t *testing.T) {
	mockService := new(MockLocationService)
	sessions := session.NewServiceImpl(nil, slog.Default())
	handler := NewHandler(mockService, sessions, slog.Default())

	// The user already dialed in a look before resolving a new place.
	selection := types.GenerationRequest{
		LocationName: "Shibuya Crossing",
		Description:  "The busiest crossing in Tokyo.",
		Perspective:  types.PerspectiveIsometric,
		Style:        types.StyleNoir,
		Quality:      types.QualityUltra,
	}
	sessions.SetSelection(uuid.Nil, selection)

	record := &types.LocationRecord{
		ID:          uuid.New(),
		Query:       "eiffel tower",
		Name:        "Eiffel Tower",
		Description: "Wrought-iron lattice tower in Paris.",
	}
	mockService.On("Resolve", mock.Anything, "eiffel tower", (*types.Coordinates)(nil)).
		Return(record, nil)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPost, "/v1/locations/resolve",
		strings.NewReader(`{"query":"eiffel tower"}`))
	handler.Resolve(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)

	// The location fields follow the new record; everything the user
	// chose survives.
	got := sessions.GetOrCreate(uuid.Nil).Selection
	assert.Equal(t, "Eiffel Tower", got.LocationName)
	assert.Equal(t, "Wrought-iron lattice tower in Paris.", got.Description)
	assert.Equal(t, types.PerspectiveIsometric, got.Perspective)
	assert.Equal(t, types.StyleNoir, got.Style)
	assert.Equal(t, types.QualityUltra, got.Quality)
	assert.Equal(t, record.ID, sessions.GetOrCreate(uuid.Nil).Location.ID)
	mockService.AssertExpectations(t)
}

func TestResolveHandlerMapsResolutionError(t *testing.T) {
	mockService := new(MockLocationService)
	sessions := session.NewServiceImpl(nil, slog.Default())
	handler := NewHandler(mockService, sessions, slog.Default())

	mockService.On("Resolve", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, types.ErrResolution)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPost, "/v1/locations/resolve",
		strings.NewReader(`{"query":"somewhere"}`))
	handler.Resolve(recorder, request)

	assert.Equal(t, http.StatusBadGateway, recorder.Code)
}

func TestRecentHandlerRejectsBadLimit(t *testing.T) {
	mockService := new(MockLocationService)
	sessions := session.NewServiceImpl(nil, slog.Default())
	handler := NewHandler(mockService, sessions, slog.Default())

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/v1/locations/recent?limit=zero", nil)
	handler.Recent(recorder, request)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	mockService.AssertNotCalled(t, "RecentLocations", mock.Anything, mock.Anything)
}

func TestRecentHandlerReturnsRecords(t *testing.T) {
	mockService := new(MockLocationService)
	sessions := session.NewServiceImpl(nil, slog.Default())
	handler := NewHandler(mockService, sessions, slog.Default())

	records := []types.LocationRecord{{ID: uuid.New(), Name: "Alfama"}}
	mockService.On("RecentLocations", mock.Anything, 5).Return(records, nil)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/v1/locations/recent?limit=5", nil)
	handler.Recent(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)

	var got []types.LocationRecord
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &got))
	assert.Len(t, got, 1)
	assert.Equal(t, "Alfama", got[0].Name)
	mockService.AssertExpectations(t)
}
