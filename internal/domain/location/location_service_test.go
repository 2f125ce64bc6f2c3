package location

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/FACorreiaa/loci-canvas-api/internal/types"
)

// MockChatClient is a mock implementation of llm.ChatClient
type MockChatClient struct {
	mock.Mock
}

func (m *MockChatClient) GenerateResponse(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	args := m.Called(ctx, prompt, config)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*genai.GenerateContentResponse), args.Error(1)
}

func (m *MockChatClient) Model() string {
	return "test-model"
}

func groundedResponse(text string, chunks ...*genai.GroundingChunk) *genai.GenerateContentResponse {
	candidate := &genai.Candidate{
		Content: &genai.Content{
			Parts: []*genai.Part{{Text: text}},
		},
	}
	if len(chunks) > 0 {
		candidate.GroundingMetadata = &genai.GroundingMetadata{GroundingChunks: chunks}
	}
	return &genai.GenerateContentResponse{Candidates: []*genai.Candidate{candidate}}
}

func webChunk(uri, title string) *genai.GroundingChunk {
	return &genai.GroundingChunk{Web: &genai.GroundingChunkWeb{URI: uri, Title: title}}
}

func TestResolveEmptyQuery(t *testing.T) {
	service := NewServiceImpl(nil, new(MockChatClient), slog.Default())

	_, err := service.Resolve(context.Background(), "   ", nil)

	assert.ErrorIs(t, err, types.ErrBadRequest)
}

func TestResolveNormalizesSources(t *testing.T) {
	mockClient := new(MockChatClient)
	service := NewServiceImpl(nil, mockClient, slog.Default())
	ctx := context.Background()

	mapsChunk := &genai.GroundingChunk{
		Maps: &genai.GroundingChunkMaps{
			URI:     "https://maps.google.com/?cid=42",
			Title:   "Eiffel Tower",
			PlaceID: "ChIJLU7jZClu5kcR4PcOOO6p3I0",
			Text:    "Stunning views from the top.",
		},
	}
	mockClient.On("GenerateResponse", mock.Anything, mock.Anything, mock.Anything).
		Return(groundedResponse(
			"The Eiffel Tower is a wrought-iron lattice tower in Paris.",
			webChunk("https://en.wikipedia.org/wiki/Eiffel_Tower", "Eiffel Tower - Wikipedia"),
			mapsChunk,
		), nil)

	record, err := service.Resolve(ctx, "eiffel tower", nil)

	require.NoError(t, err)
	require.Len(t, record.GroundingSources, 2)

	web := record.GroundingSources[0]
	assert.Equal(t, types.GroundingSourceWeb, web.Kind)
	assert.Equal(t, "Eiffel Tower - Wikipedia", web.Title)
	assert.Empty(t, web.PlaceID)

	maps := record.GroundingSources[1]
	assert.Equal(t, types.GroundingSourceMaps, maps.Kind)
	assert.Equal(t, "ChIJLU7jZClu5kcR4PcOOO6p3I0", maps.PlaceID)
	assert.Equal(t, []string{"Stunning views from the top."}, maps.ReviewSnippets)
}

func TestResolveNameFromFirstWebTitle(t *testing.T) {
	mockClient := new(MockChatClient)
	service := NewServiceImpl(nil, mockClient, slog.Default())
	ctx := context.Background()

	mockClient.On("GenerateResponse", mock.Anything, mock.Anything, mock.Anything).
		Return(groundedResponse(
			"A famous tower.",
			webChunk("https://example.com/a", ""),
			webChunk("https://example.com/b", "Tokyo Tower"),
		), nil)

	record, err := service.Resolve(ctx, "tokyo tower", nil)

	require.NoError(t, err)
	assert.Equal(t, "Tokyo Tower", record.Name)
}

func TestResolveNameFallsBackToQuery(t *testing.T) {
	mockClient := new(MockChatClient)
	service := NewServiceImpl(nil, mockClient, slog.Default())
	ctx := context.Background()

	// No grounding chunks at all.
	mockClient.On("GenerateResponse", mock.Anything, mock.Anything, mock.Anything).
		Return(groundedResponse("Some description."), nil)

	record, err := service.Resolve(ctx, "hidden alley in Lisbon", nil)

	require.NoError(t, err)
	assert.Equal(t, "hidden alley in Lisbon", record.Name)
	assert.Empty(t, record.GroundingSources)
}

func TestResolveEmptyCompletion(t *testing.T) {
	mockClient := new(MockChatClient)
	service := NewServiceImpl(nil, mockClient, slog.Default())
	ctx := context.Background()

	mockClient.On("GenerateResponse", mock.Anything, mock.Anything, mock.Anything).
		Return(groundedResponse(""), nil)

	_, err := service.Resolve(ctx, "somewhere", nil)

	assert.ErrorIs(t, err, types.ErrResolution)
}

func TestResolveUpstreamError(t *testing.T) {
	mockClient := new(MockChatClient)
	service := NewServiceImpl(nil, mockClient, slog.Default())
	ctx := context.Background()

	mockClient.On("GenerateResponse", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("quota exceeded"))

	_, err := service.Resolve(ctx, "somewhere", nil)

	assert.ErrorIs(t, err, types.ErrResolution)
}

func TestResolveCachesRepeatedQuery(t *testing.T) {
	mockClient := new(MockChatClient)
	service := NewServiceImpl(nil, mockClient, slog.Default())
	ctx := context.Background()

	mockClient.On("GenerateResponse", mock.Anything, mock.Anything, mock.Anything).
		Return(groundedResponse("A plaza in Madrid."), nil).Once()

	first, err := service.Resolve(ctx, "Plaza Mayor", nil)
	require.NoError(t, err)

	// Same query with different casing hits the cache.
	second, err := service.Resolve(ctx, "plaza mayor", nil)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	mockClient.AssertNumberOfCalls(t, "GenerateResponse", 1)
}

func TestResolveCarriesCoordinates(t *testing.T) {
	mockClient := new(MockChatClient)
	service := NewServiceImpl(nil, mockClient, slog.Default())
	ctx := context.Background()

	mockClient.On("GenerateResponse", mock.Anything, mock.Anything, mock.Anything).
		Return(groundedResponse("A park nearby."), nil)

	coords := &types.Coordinates{Latitude: 38.7223, Longitude: -9.1393}
	record, err := service.Resolve(ctx, "park near me", coords)

	require.NoError(t, err)
	require.NotNil(t, record.Coordinates)
	assert.Equal(t, 38.7223, record.Coordinates.Latitude)
	assert.Equal(t, -9.1393, record.Coordinates.Longitude)
}

func TestResolveRequestsGroundingTool(t *testing.T) {
	mockClient := new(MockChatClient)
	service := NewServiceImpl(nil, mockClient, slog.Default())
	ctx := context.Background()

	mockClient.On("GenerateResponse", mock.Anything, mock.Anything, mock.MatchedBy(func(config *genai.GenerateContentConfig) bool {
		return len(config.Tools) == 1 && config.Tools[0].GoogleSearch != nil
	})).Return(groundedResponse("Grounded answer."), nil)

	_, err := service.Resolve(ctx, "Sagrada Familia", nil)

	require.NoError(t, err)
	mockClient.AssertExpectations(t)
}
