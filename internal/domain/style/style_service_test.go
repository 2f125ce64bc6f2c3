package style

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

func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []*genai.Part{{Text: text}}}},
		},
	}
}

func TestRecommendParsesStructuredReply(t *testing.T) {
	mockClient := new(MockChatClient)
	service := NewServiceImpl(mockClient, slog.Default())
	ctx := context.Background()

	mockClient.On("GenerateResponse", mock.Anything, mock.Anything, mock.Anything).
		Return(textResponse(`{"perspective":"street","style":"cyberpunk","reasoning":"Neon-lit district at night."}`), nil)

	recommendation, err := service.Recommend(ctx, "Kabukicho", "Tokyo's neon entertainment district.")

	require.NoError(t, err)
	assert.Equal(t, types.PerspectiveStreet, recommendation.Perspective)
	assert.Equal(t, types.StyleCyberpunk, recommendation.Style)
	assert.Equal(t, "Neon-lit district at night.", recommendation.Reasoning)
}

func TestRecommendStripsCodeFences(t *testing.T) {
	mockClient := new(MockChatClient)
	service := NewServiceImpl(mockClient, slog.Default())
	ctx := context.Background()

	fenced := "```json\n{\"perspective\":\"aerial\",\"style\":\"watercolor\",\"reasoning\":\"Coastal town.\"}\n```"
	mockClient.On("GenerateResponse", mock.Anything, mock.Anything, mock.Anything).
		Return(textResponse(fenced), nil)

	recommendation, err := service.Recommend(ctx, "Cinque Terre", "Colorful villages on the Italian coast.")

	require.NoError(t, err)
	assert.Equal(t, types.StyleWatercolor, recommendation.Style)
}

func TestRecommendRejectsUnparseablePayload(t *testing.T) {
	mockClient := new(MockChatClient)
	service := NewServiceImpl(mockClient, slog.Default())
	ctx := context.Background()

	mockClient.On("GenerateResponse", mock.Anything, mock.Anything, mock.Anything).
		Return(textResponse("I think an aerial cyberpunk view would look great!"), nil)

	_, err := service.Recommend(ctx, "Somewhere", "Some place.")

	assert.ErrorIs(t, err, types.ErrRecommendation)
}

func TestRecommendRejectsUnknownEnum(t *testing.T) {
	mockClient := new(MockChatClient)
	service := NewServiceImpl(mockClient, slog.Default())
	ctx := context.Background()

	mockClient.On("GenerateResponse", mock.Anything, mock.Anything, mock.Anything).
		Return(textResponse(`{"perspective":"orbital","style":"realistic","reasoning":"From space."}`), nil)

	_, err := service.Recommend(ctx, "Somewhere", "Some place.")

	assert.ErrorIs(t, err, types.ErrRecommendation)
}

func TestRecommendRejectsCustomStyle(t *testing.T) {
	mockClient := new(MockChatClient)
	service := NewServiceImpl(mockClient, slog.Default())
	ctx := context.Background()

	// The recommender may only pick from the fixed styles.
	mockClient.On("GenerateResponse", mock.Anything, mock.Anything, mock.Anything).
		Return(textResponse(`{"perspective":"aerial","style":"custom","reasoning":"Something bespoke."}`), nil)

	_, err := service.Recommend(ctx, "Somewhere", "Some place.")

	assert.ErrorIs(t, err, types.ErrRecommendation)
}

func TestRecommendUpstreamError(t *testing.T) {
	mockClient := new(MockChatClient)
	service := NewServiceImpl(mockClient, slog.Default())
	ctx := context.Background()

	mockClient.On("GenerateResponse", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("deadline exceeded"))

	_, err := service.Recommend(ctx, "Somewhere", "Some place.")

	assert.ErrorIs(t, err, types.ErrRecommendation)
}

func TestRecommendRequestsJSONSchema(t *testing.T) {
	mockClient := new(MockChatClient)
	service := NewServiceImpl(mockClient, slog.Default())
	ctx := context.Background()

	mockClient.On("GenerateResponse", mock.Anything, mock.Anything, mock.MatchedBy(func(config *genai.GenerateContentConfig) bool {
		return config.ResponseMIMEType == "application/json" &&
			config.ResponseSchema != nil &&
			len(config.ResponseSchema.Required) == 3
	})).Return(textResponse(`{"perspective":"isometric","style":"voxel","reasoning":"Blocky downtown."}`), nil)

	_, err := service.Recommend(ctx, "Minecraft City", "A very blocky place.")

	require.NoError(t, err)
	mockClient.AssertExpectations(t)
}
