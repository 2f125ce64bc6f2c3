package llm

import (
	"context"

	generativeAI "github.com/FACorreiaa/go-genai-sdk/lib"
	"google.golang.org/genai"
)

// ChatClient abstracts the text-completion capabilities domain services need
// (grounded search and structured output both ride on the config).
type ChatClient interface {
	GenerateResponse(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
	Model() string
}

// ImageClient abstracts the two image routes. GenerateInlineImage asks an
// image-capable chat model for inline bytes; GenerateImages calls the
// dedicated image-generation endpoint.
type ImageClient interface {
	GenerateInlineImage(ctx context.Context, model, prompt string, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
	GenerateImages(ctx context.Context, model, prompt string, config *genai.GenerateImagesConfig) (*genai.GenerateImagesResponse, error)
}

// GeminiChatClient adapts the generativeAI LLM client to the ChatClient interface.
type GeminiChatClient struct {
	client generativeAI.ChatClient
}

// defaultChatModel is the SDK's documented default chat model.
const defaultChatModel = "gemini-2.5-flash"

// NewGeminiChatClient creates a ChatClient backed by Gemini.
func NewGeminiChatClient(ctx context.Context, apiKey string) (ChatClient, error) {
	client, err := generativeAI.NewGeminiChatClient(ctx, apiKey, defaultChatModel)
	if err != nil {
		return nil, err
	}
	return &GeminiChatClient{client: client}, nil
}

func (g *GeminiChatClient) GenerateResponse(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	return g.client.GenerateResponse(ctx, prompt, config)
}

func (g *GeminiChatClient) Model() string {
	if g.client == nil {
		return ""
	}
	return g.client.Model()
}

// GeminiImageClient adapts the raw genai client to the ImageClient interface.
type GeminiImageClient struct {
	client *genai.Client
}

// NewGeminiImageClient creates an ImageClient backed by Gemini.
func NewGeminiImageClient(ctx context.Context, apiKey string) (ImageClient, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, err
	}
	return &GeminiImageClient{client: client}, nil
}

func (g *GeminiImageClient) GenerateInlineImage(ctx context.Context, model, prompt string, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	return g.client.Models.GenerateContent(ctx, model, genai.Text(prompt), config)
}

func (g *GeminiImageClient) GenerateImages(ctx context.Context, model, prompt string, config *genai.GenerateImagesConfig) (*genai.GenerateImagesResponse, error) {
	return g.client.Models.GenerateImages(ctx, model, prompt, config)
}
