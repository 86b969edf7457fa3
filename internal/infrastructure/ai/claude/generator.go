package claude

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/Swarup012/Github-Manager-Backend/internal/domain/ports"
	apperrors "github.com/Swarup012/Github-Manager-Backend/internal/errors"
	"github.com/Swarup012/Github-Manager-Backend/internal/infrastructure/httpclient"
	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const maxTokens = 1024

var _ ports.TextGenerator = (*ClaudeGenerator)(nil)

// ClaudeGenerator genera texto con la API de mensajes de Anthropic.
type ClaudeGenerator struct {
	model      string
	baseURL    string
	httpClient *http.Client
}

// NewClaudeGenerator crea el generador. baseURL vacío usa el endpoint público.
func NewClaudeGenerator(model, baseURL string, timeout time.Duration) *ClaudeGenerator {
	return &ClaudeGenerator{
		model:      model,
		baseURL:    baseURL,
		httpClient: httpclient.New(timeout),
	}
}

func (g *ClaudeGenerator) Name() string {
	return "Claude"
}

func (g *ClaudeGenerator) Generate(ctx context.Context, apiKey, systemPrompt, utterance string) (string, error) {
	if apiKey == "" {
		return "", apperrors.ErrAIKeyMissing.WithContext("provider", g.Name())
	}

	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
		option.WithHTTPClient(g.httpClient),
	}
	if g.baseURL != "" {
		opts = append(opts, option.WithBaseURL(g.baseURL))
	}
	client := anthropic.NewClient(opts...)

	resp, err := client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(g.model),
		MaxTokens: maxTokens,
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(utterance)),
		},
	})
	if err != nil {
		return "", apperrors.ErrAIGeneration.WithError(err)
	}

	var b strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	if strings.TrimSpace(b.String()) == "" {
		return "", apperrors.ErrEmptyAIResponse
	}
	return b.String(), nil
}
