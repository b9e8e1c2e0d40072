package repositories

import (
	"context"
	"github.com/crowdtide/payeer-gateway/internal/domain/models"
)

type PaymentSessionRepository interface {
	Open(ctx context.Context, session *models.PaymentSession) error
	GetByID(ctx context.Context, id string) (*models.PaymentSession, error)
	// BindOrderID binds the generated order id to the session exactly once.
	// Calling it again with the same id is a no-op; a different id is an error.
	BindOrderID(ctx context.Context, session *models.PaymentSession, orderID string) error
	ResolveByOrderID(ctx context.Context, orderID string) (*models.PaymentSession, error)
	// Close releases the order id binding; when removeEntirely is true the
	// session record itself is deleted as well.
	Close(ctx context.Context, session *models.PaymentSession, removeEntirely bool) error
}
