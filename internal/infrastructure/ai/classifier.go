package ai

import (
	"context"
	"strings"

	"github.com/Swarup012/Github-Manager-Backend/internal/domain/models"
	"github.com/Swarup012/Github-Manager-Backend/internal/domain/ports"
	apperrors "github.com/Swarup012/Github-Manager-Backend/internal/errors"
	"github.com/Swarup012/Github-Manager-Backend/internal/i18n"
	"github.com/Swarup012/Github-Manager-Backend/internal/logger"
)

var _ ports.IntentClassifier = (*IntentClassifier)(nil)

// IntentClassifier maps an utterance to a Classification with a single
// text-generation call.
type IntentClassifier struct {
	generator ports.TextGenerator
	trans     *i18n.Translations
	prompt    string
}

func NewIntentClassifier(generator ports.TextGenerator, trans *i18n.Translations) *IntentClassifier {
	return &IntentClassifier{
		generator: generator,
		trans:     trans,
		prompt:    BuildIntentPrompt(models.ActionSpecs(), trans.Language()),
	}
}

func (c *IntentClassifier) ProviderName() string {
	return c.generator.Name()
}

// Classify returns an error only when apiKey is empty. Generator failures are
// turned into a PlainText diagnostic for the user.
func (c *IntentClassifier) Classify(ctx context.Context, utterance, apiKey string) (models.Classification, error) {
	if apiKey == "" {
		return models.Classification{}, apperrors.ErrAIKeyMissing.WithContext("provider", c.generator.Name())
	}

	ctx = logger.With(ctx, "provider", c.generator.Name())

	raw, err := c.generator.Generate(ctx, apiKey, c.prompt, utterance)
	if err == nil && strings.TrimSpace(raw) == "" {
		err = apperrors.ErrEmptyAIResponse
	}
	if err != nil {
		logger.Warn(ctx, "text generation failed", "error", err)
		return models.PlainText(c.trans.GetMessage("ai_backend_error", 0, map[string]interface{}{
			"Provider": c.generator.Name(),
			"Error":    err.Error(),
		})), nil
	}

	logger.Debug(ctx, "raw classifier reply", "reply", raw)

	return InterpretReply(ctx, raw), nil
}
