package ports

import (
	"context"

	"github.com/Swarup012/Github-Manager-Backend/internal/domain/models"
)

// TextGenerator es un backend de generación de texto sin estado.
type TextGenerator interface {
	// Generate envía el prompt de sistema y el mensaje del usuario en una sola llamada y retorna el texto crudo.
	Generate(ctx context.Context, apiKey, systemPrompt, utterance string) (string, error)

	// Name retorna el nombre visible del proveedor (ej: "Gemini").
	Name() string
}

// IntentClassifier convierte un mensaje en una acción o en una respuesta conversacional.
type IntentClassifier interface {
	// Classify solo retorna error cuando falta la API key; las fallas del backend se degradan a texto.
	Classify(ctx context.Context, utterance, apiKey string) (models.Classification, error)

	// ProviderName retorna el nombre visible del proveedor activo.
	ProviderName() string
}
