package gemini

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Swarup012/Github-Manager-Backend/internal/domain/ports"
	apperrors "github.com/Swarup012/Github-Manager-Backend/internal/errors"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

var _ ports.TextGenerator = (*GeminiGenerator)(nil)

// GeminiGenerator genera texto con la API de Gemini. Se crea un cliente por
// llamada porque la API key puede cambiar en cada pedido.
type GeminiGenerator struct {
	model   string
	timeout time.Duration
}

// NewGeminiGenerator crea el generador. Con timeout 0 solo rige el deadline del contexto.
func NewGeminiGenerator(model string, timeout time.Duration) *GeminiGenerator {
	return &GeminiGenerator{model: model, timeout: timeout}
}

func (g *GeminiGenerator) Name() string {
	return "Gemini"
}

func (g *GeminiGenerator) Generate(ctx context.Context, apiKey, systemPrompt, utterance string) (string, error) {
	if apiKey == "" {
		return "", apperrors.ErrAIKeyMissing.WithContext("provider", g.Name())
	}

	ctx, cancel := g.withTimeout(ctx)
	defer cancel()

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return "", apperrors.ErrAIGeneration.WithError(fmt.Errorf("failed to create Gemini client: %w", err))
	}
	defer client.Close()

	model := client.GenerativeModel(g.model)
	resp, err := model.GenerateContent(ctx, genai.Text(systemPrompt), genai.Text(utterance))
	if err != nil {
		return "", apperrors.ErrAIGeneration.WithError(err)
	}

	text := formatResponse(resp)
	if strings.TrimSpace(text) == "" {
		return "", apperrors.ErrEmptyAIResponse
	}
	return text, nil
}

func (g *GeminiGenerator) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if g.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, g.timeout)
}

func formatResponse(resp *genai.GenerateContentResponse) string {
	if resp == nil || resp.Candidates == nil {
		return ""
	}

	var formattedContent strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content != nil {
			for _, part := range cand.Content.Parts {
				formattedContent.WriteString(fmt.Sprintf("%v", part))
			}
		}
	}
	return formattedContent.String()
}
