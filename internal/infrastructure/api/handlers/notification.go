package handlers

import (
	"net/http"

	"github.com/crowdtide/payeer-gateway/internal/errors"
	"github.com/crowdtide/payeer-gateway/internal/usecases"
	"github.com/crowdtide/payeer-gateway/internal/usecases/dtos"
	"github.com/crowdtide/payeer-gateway/pkg/log"
	"github.com/rs/zerolog"
)

type NotificationHandler struct {
	gateway usecases.Gateway
	logger  *zerolog.Logger
}

func NewNotificationHandler(gateway usecases.Gateway) *NotificationHandler {
	logger := log.GetLogger()
	return &NotificationHandler{gateway: gateway, logger: &logger}
}

// HandleNotification is the IPN endpoint. Whatever happens inside, the
// processor always receives HTTP 200 with the "<orderid>|success" or
// "<orderid>|error" marker it expects.
func (h *NotificationHandler) HandleNotification(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.logger.Error().Err(err).Msg(errors.ErrFailedDecodeRequestBody)
		errors.WriteNotifyResponse(w, "", false)
		return
	}

	notification := dtos.NewNotificationDTO(r.PostForm)
	result := h.gateway.HandleNotification(r.Context(), notification)

	errors.WriteNotifyResponse(w, result.OrderID, result.Ok)
}
