package llm

import (
	"context"
	"log/slog"

	"google.golang.org/genai"

	apperrors "github.com/fabioluciano/profile-analyzer/internal/errors"
)

// GeminiGenerator implements Generator on Google's Generative AI SDK.
type GeminiGenerator struct {
	client *genai.Client
	model  string
	logger *slog.Logger
}

// NewGeminiGenerator creates a Gemini-backed README generator.
func NewGeminiGenerator(ctx context.Context, apiKey, model string) (*GeminiGenerator, error) {
	if apiKey == "" {
		return nil, apperrors.ConfigError("gemini api key is required")
	}

	if model == "" {
		model = "gemini-2.5-flash"
	}

	clientConfig := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, apperrors.GenerationError(err, "create gemini client")
	}

	logger := slog.Default().With("component", "gemini", "model", model)
	logger.Info("gemini client initialized")

	return &GeminiGenerator{
		client: client,
		model:  model,
		logger: logger,
	}, nil
}

// Generate sends the structured analysis to Gemini and splits the
// response into per-language README variants. Any service failure or
// empty response surfaces as a generation error.
func (g *GeminiGenerator) Generate(ctx context.Context, payload Payload) (map[string]string, error) {
	prompt := BuildPrompt(payload)

	// Creative sampling for profile prose; determinism lives in the
	// prompt, not the sampling.
	genConfig := &genai.GenerateContentConfig{
		Temperature:     ptrFloat32(0.7),
		TopP:            ptrFloat32(0.9),
		TopK:            ptrFloat32(40),
		MaxOutputTokens: 8192,
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), genConfig)
	if err != nil {
		return nil, apperrors.GenerationError(err, "gemini generation failed")
	}

	if len(resp.Candidates) == 0 {
		return nil, apperrors.New(apperrors.ErrorTypeGeneration, "gemini returned no candidates")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return nil, apperrors.New(apperrors.ErrorTypeGeneration, "gemini returned no content parts")
	}

	text := candidate.Content.Parts[0].Text
	if text == "" {
		return nil, apperrors.New(apperrors.ErrorTypeGeneration, "gemini returned empty text")
	}

	g.logger.Debug("gemini completion",
		"prompt_length", len(prompt),
		"response_length", len(text),
	)

	return SplitVariants(text, payload.Languages), nil
}

func ptrFloat32(f float64) *float32 {
	f32 := float32(f)
	return &f32
}
