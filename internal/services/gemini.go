package services

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"google.golang.org/genai"

	"alfredoptarigan/ats-resume-expert/internal/config"
	"alfredoptarigan/ats-resume-expert/internal/models"
)

var (
	ErrNilImage      = errors.New("page image is required")
	ErrEmptyResponse = errors.New("no text content in response")
)

// GeminiService sends a job description, a resume page image and a prompt to the model
// as one request. Failed calls are not retried and responses are not cached.
type GeminiService interface {
	Generate(ctx context.Context, input string, image *models.PageImage, prompt models.PromptTemplate) (string, error)
}

type geminiService struct {
	client    *genai.Client
	modelName string
	timeout   time.Duration
}

func NewGeminiService(ctx context.Context, cfg config.GeminiConfig) (GeminiService, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, config.ErrMissingAPIKey
	}

	clientCfg := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &geminiService{
		client:    client,
		modelName: cfg.Model,
		timeout:   cfg.Timeout,
	}, nil
}

// Generate implements GeminiService.
func (g *geminiService) Generate(ctx context.Context, input string, image *models.PageImage, prompt models.PromptTemplate) (string, error) {
	if image == nil {
		return "", ErrNilImage
	}

	imageBytes, err := base64.StdEncoding.DecodeString(image.Data)
	if err != nil {
		return "", fmt.Errorf("failed to decode page image: %w", err)
	}

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	// An empty text part serializes as {} and the API rejects the request.
	parts := make([]*genai.Part, 0, 3)
	if strings.TrimSpace(input) != "" {
		parts = append(parts, genai.NewPartFromText(input))
	}
	parts = append(parts,
		genai.NewPartFromBytes(imageBytes, image.MimeType),
		genai.NewPartFromText(prompt.String()),
	)
	content := genai.NewContentFromParts(parts, genai.RoleUser)

	start := time.Now()
	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, []*genai.Content{content}, nil)
	if err != nil {
		log.Error().Err(err).Str("model", g.modelName).Msg("Gemini API error")
		return "", fmt.Errorf("failed to generate content: %w", err)
	}
	if resp == nil {
		return "", fmt.Errorf("%w (nil response)", ErrEmptyResponse)
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyResponse
	}

	log.Debug().
		Str("model", g.modelName).
		Dur("latency", time.Since(start)).
		Int("chars", len(text)).
		Msg("Gemini response received")

	return text, nil
}
