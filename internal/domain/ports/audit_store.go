package ports

import (
	"context"

	"github.com/Swarup012/Github-Manager-Backend/internal/domain/models"
)

// AuditStore persiste el historial de acciones despachadas.
type AuditStore interface {
	Record(ctx context.Context, entry models.AuditEntry) error
	Recent(ctx context.Context, limit int) ([]models.AuditEntry, error)
	Close() error
}

// Dispatcher atiende un pedido completo y siempre produce una respuesta.
type Dispatcher interface {
	Dispatch(ctx context.Context, req models.DispatchRequest) models.DispatchResult
}
