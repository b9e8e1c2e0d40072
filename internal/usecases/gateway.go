package usecases

import (
	"context"

	"github.com/crowdtide/payeer-gateway/internal/payeer"
	"github.com/crowdtide/payeer-gateway/internal/usecases/dtos"
	"github.com/crowdtide/payeer-gateway/internal/usecases/interactor"
)

// Gateway is the payment gateway surface the transport layer drives. An
// orchestrator invokes the three entry points with contextual parameters;
// everything else is internal to the implementation.
type Gateway interface {
	BuildPaymentRequest(ctx context.Context, checkout *dtos.CheckoutDTO) (*payeer.PaymentRequest, error)
	HandleNotification(ctx context.Context, notification *dtos.NotificationDTO) *interactor.NotificationResult
	CompleteCheckout(ctx context.Context, status string, projectID int64) (string, error)
}

var _ Gateway = (*interactor.PayeerGateway)(nil)
