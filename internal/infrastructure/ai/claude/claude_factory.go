package claude

import (
	"fmt"

	"github.com/Swarup012/Github-Manager-Backend/internal/config"
	"github.com/Swarup012/Github-Manager-Backend/internal/domain/ports"
)

// ClaudeProviderFactory implementa AIProviderFactory para Anthropic
type ClaudeProviderFactory struct{}

func NewClaudeProviderFactory() *ClaudeProviderFactory {
	return &ClaudeProviderFactory{}
}

// CreateTextGenerator crea el generador con el modelo y la URL configurados
func (f *ClaudeProviderFactory) CreateTextGenerator(cfg *config.Config) (ports.TextGenerator, error) {
	if err := f.ValidateConfig(cfg); err != nil {
		return nil, err
	}
	return NewClaudeGenerator(cfg.ActiveModel(), cfg.AnthropicURL, cfg.RequestTimeout()), nil
}

// ValidateConfig valida el modelo elegido; la API key puede llegar en cada pedido
func (f *ClaudeProviderFactory) ValidateConfig(cfg *config.Config) error {
	if cfg.AIModel == "" {
		return nil
	}
	for _, m := range config.ModelsForAI(config.AIAnthropic) {
		if string(m) == cfg.AIModel {
			return nil
		}
	}
	return fmt.Errorf("modelo de anthropic no soportado: %s", cfg.AIModel)
}

// Name retorna el nombre del proveedor
func (f *ClaudeProviderFactory) Name() string {
	return string(config.AIAnthropic)
}
