package di

import (
	"fmt"
	"sync"

	"github.com/Swarup012/Github-Manager-Backend/internal/config"
	"github.com/Swarup012/Github-Manager-Backend/internal/domain/models"
	"github.com/Swarup012/Github-Manager-Backend/internal/domain/ports"
	"github.com/Swarup012/Github-Manager-Backend/internal/i18n"
	"github.com/Swarup012/Github-Manager-Backend/internal/infrastructure/ai"
	"github.com/Swarup012/Github-Manager-Backend/internal/infrastructure/ai/registry"
	"github.com/Swarup012/Github-Manager-Backend/internal/infrastructure/audit"
	"github.com/Swarup012/Github-Manager-Backend/internal/infrastructure/vcs/github"
	"github.com/Swarup012/Github-Manager-Backend/internal/services"
)

// Container gestiona las dependencias de la aplicación
type Container struct {
	config       *config.Config
	translations *i18n.Translations

	aiRegistry *registry.AIProviderRegistry

	mu         sync.Mutex
	clients    ports.RepositoryClientFactory
	classifier ports.IntentClassifier
	auditStore ports.AuditStore
	auditOpen  bool
	dispatcher ports.Dispatcher
}

// NewContainer crea un nuevo contenedor de dependencias
func NewContainer(cfg *config.Config, trans *i18n.Translations) *Container {
	return &Container{
		config:       cfg,
		translations: trans,
		aiRegistry:   registry.NewAIProviderRegistry(),
	}
}

// RegisterAIProvider registra un proveedor de IA
func (c *Container) RegisterAIProvider(name string, factory registry.AIProviderFactory) error {
	return c.aiRegistry.Register(name, factory)
}

// GetAIRegistry retorna el registro de proveedores AI
func (c *Container) GetAIRegistry() *registry.AIProviderRegistry {
	return c.aiRegistry
}

// SetRepositoryClientFactory reemplaza la factory de clientes de GitHub
func (c *Container) SetRepositoryClientFactory(f ports.RepositoryClientFactory) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clients = f
}

// SetAuditStore reemplaza el store de auditoría
func (c *Container) SetAuditStore(store ports.AuditStore) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.auditStore = store
	c.auditOpen = true
}

// GetRepositoryClientFactory retorna la factory de clientes (lazy initialization)
func (c *Container) GetRepositoryClientFactory() (ports.RepositoryClientFactory, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.repositoryClientFactory()
}

func (c *Container) repositoryClientFactory() (ports.RepositoryClientFactory, error) {
	if c.clients != nil {
		return c.clients, nil
	}
	f, err := github.NewGitHubClientFactory(c.config.GitHubBaseURL, c.config.RequestTimeout())
	if err != nil {
		return nil, fmt.Errorf("error al crear el cliente de GitHub: %w", err)
	}
	c.clients = f
	return c.clients, nil
}

// GetTokenVerifier retorna la factory de clientes como verificador de tokens
func (c *Container) GetTokenVerifier() (ports.TokenVerifier, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	clients, err := c.repositoryClientFactory()
	if err != nil {
		return nil, err
	}
	verifier, ok := clients.(ports.TokenVerifier)
	if !ok {
		return nil, fmt.Errorf("la factory de clientes %T no puede verificar tokens", clients)
	}
	return verifier, nil
}

// GetTextGenerator retorna un generador nuevo del proveedor activo, fuera del clasificador
func (c *Container) GetTextGenerator() (ports.TextGenerator, error) {
	return c.aiRegistry.TextGeneratorFor(c.config)
}

// OpenAuditStore abre un store en path, independiente del que administra el contenedor
func (c *Container) OpenAuditStore(path string) (ports.AuditStore, error) {
	store, err := audit.NewSQLiteStore(path)
	if err != nil {
		return nil, err
	}
	return store, nil
}

// GetClassifier retorna el clasificador del proveedor activo (lazy initialization)
func (c *Container) GetClassifier() (ports.IntentClassifier, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.intentClassifier()
}

func (c *Container) intentClassifier() (ports.IntentClassifier, error) {
	if c.classifier != nil {
		return c.classifier, nil
	}
	generator, err := c.aiRegistry.TextGeneratorFor(c.config)
	if err != nil {
		return nil, err
	}
	c.classifier = ai.NewIntentClassifier(generator, c.translations)
	return c.classifier, nil
}

// GetAuditStore retorna el store de auditoría, o nil si audit_db_path está vacío
func (c *Container) GetAuditStore() (ports.AuditStore, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.audit()
}

func (c *Container) audit() (ports.AuditStore, error) {
	if c.auditOpen {
		return c.auditStore, nil
	}
	if c.config.AuditDBPath == "" {
		c.auditOpen = true
		return nil, nil
	}
	store, err := audit.NewSQLiteStore(c.config.AuditDBPath)
	if err != nil {
		return nil, fmt.Errorf("error al abrir el registro de auditoría: %w", err)
	}
	c.auditStore = store
	c.auditOpen = true
	return c.auditStore, nil
}

// GetDispatcher arma el dispatcher con todas sus dependencias (lazy initialization)
func (c *Container) GetDispatcher() (ports.Dispatcher, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.dispatcher != nil {
		return c.dispatcher, nil
	}

	classifier, err := c.intentClassifier()
	if err != nil {
		return nil, err
	}
	clients, err := c.repositoryClientFactory()
	if err != nil {
		return nil, err
	}
	store, err := c.audit()
	if err != nil {
		return nil, err
	}

	opts := []services.DispatcherOption{
		services.WithDefaultCredentials(models.Credentials{
			GitHubToken: c.config.GitHubToken,
			AIKey:       c.config.ActiveAIKey(),
		}),
	}
	if store != nil {
		opts = append(opts, services.WithAuditStore(store))
	}

	c.dispatcher = services.NewDispatcherService(classifier, clients, c.translations, opts...)
	return c.dispatcher, nil
}

// Close libera los recursos abiertos por el contenedor
func (c *Container) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.auditStore == nil {
		return nil
	}
	err := c.auditStore.Close()
	c.auditStore = nil
	return err
}

// GetConfig retorna la configuración
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetTranslations retorna las traducciones
func (c *Container) GetTranslations() *i18n.Translations {
	return c.translations
}
