package gemini

import (
	"fmt"

	"github.com/Swarup012/Github-Manager-Backend/internal/config"
	"github.com/Swarup012/Github-Manager-Backend/internal/domain/ports"
)

// GeminiProviderFactory implementa AIProviderFactory para Gemini
type GeminiProviderFactory struct{}

// NewGeminiProviderFactory crea una nueva factory para Gemini
func NewGeminiProviderFactory() *GeminiProviderFactory {
	return &GeminiProviderFactory{}
}

// CreateTextGenerator crea el generador de texto con el modelo configurado
func (f *GeminiProviderFactory) CreateTextGenerator(cfg *config.Config) (ports.TextGenerator, error) {
	if err := f.ValidateConfig(cfg); err != nil {
		return nil, err
	}
	return NewGeminiGenerator(cfg.ActiveModel(), cfg.RequestTimeout()), nil
}

// ValidateConfig valida la configuración de Gemini. La API key puede llegar
// en cada pedido, así que no es obligatoria acá.
func (f *GeminiProviderFactory) ValidateConfig(cfg *config.Config) error {
	if cfg.AIModel == "" {
		return nil
	}
	for _, m := range config.ModelsForAI(config.AIGemini) {
		if string(m) == cfg.AIModel {
			return nil
		}
	}
	return fmt.Errorf("modelo de gemini no soportado: %s", cfg.AIModel)
}

// Name retorna el nombre del proveedor
func (f *GeminiProviderFactory) Name() string {
	return string(config.AIGemini)
}
