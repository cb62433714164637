package service

import (
	"context"
	"fmt"
	"net/http"

	"github.com/lucassaureliano/amelie/internal/config"
	"github.com/lucassaureliano/amelie/internal/domain"
	"google.golang.org/genai"
)

// ModelClient is the narrow surface the responder needs from the generative
// model: a pure function from request to reply text.
type ModelClient interface {
	Generate(ctx context.Context, req domain.ModelRequest) (string, error)
}

// GeminiService calls the hosted Gemini API. Safety filtering is disabled for
// every category; the responder sanitizes replies itself.
type GeminiService struct {
	client *genai.Client
	model  string
}

func NewGeminiService(ctx context.Context, apiKey, model string) (*GeminiService, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: &http.Client{Timeout: config.RequestTimeout},
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &GeminiService{client: client, model: model}, nil
}

func (s *GeminiService) Generate(ctx context.Context, req domain.ModelRequest) (string, error) {
	cfg := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(float32(req.Temperature)),
		TopK:            genai.Ptr(float32(req.TopK)),
		TopP:            genai.Ptr(float32(req.TopP)),
		MaxOutputTokens: int32(req.MaxOutputTokens),
		SafetySettings:  safetyOff,
	}
	if req.SystemInstructions != "" {
		cfg.SystemInstruction = genai.NewContentFromText(req.SystemInstructions, genai.RoleUser)
	}

	parts := make([]*genai.Part, 0, len(req.Parts))
	for _, p := range req.Parts {
		if p.Data != nil {
			parts = append(parts, genai.NewPartFromBytes(p.Data, p.MimeType))
			continue
		}
		parts = append(parts, genai.NewPartFromText(p.Text))
	}

	resp, err := s.client.Models.GenerateContent(ctx, s.model,
		[]*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}, cfg)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", domain.ErrEmptyReply
	}
	return text, nil
}

var safetyOff = []*genai.SafetySetting{
	{Category: genai.HarmCategoryHarassment, Threshold: genai.HarmBlockThresholdBlockNone},
	{Category: genai.HarmCategoryHateSpeech, Threshold: genai.HarmBlockThresholdBlockNone},
	{Category: genai.HarmCategorySexuallyExplicit, Threshold: genai.HarmBlockThresholdBlockNone},
	{Category: genai.HarmCategoryDangerousContent, Threshold: genai.HarmBlockThresholdBlockNone},
}
