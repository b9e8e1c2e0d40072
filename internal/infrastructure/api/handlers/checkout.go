package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/crowdtide/payeer-gateway/internal/errors"
	"github.com/crowdtide/payeer-gateway/internal/usecases"
	"github.com/crowdtide/payeer-gateway/internal/usecases/dtos"
	"github.com/crowdtide/payeer-gateway/pkg/log"
	"github.com/rs/zerolog"
)

type CheckoutHandler struct {
	gateway usecases.Gateway
	logger  *zerolog.Logger
}

func NewCheckoutHandler(gateway usecases.Gateway) *CheckoutHandler {
	logger := log.GetLogger()
	return &CheckoutHandler{gateway: gateway, logger: &logger}
}

func (h *CheckoutHandler) BuildPaymentRequest(w http.ResponseWriter, r *http.Request) {
	var dto dtos.CheckoutDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.logger.Error().Err(err).Msg(errors.ErrFailedDecodeRequestBody)
		errors.HandleHTTPError(w, errors.NewBadRequestError(errors.ErrInvalidRequestBody))
		return
	}

	request, err := h.gateway.BuildPaymentRequest(r.Context(), &dto)
	if err != nil {
		h.logger.Error().Err(err).Msg(errors.ErrFailedBuildPaymentRequest)
		errors.HandleHTTPError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(request)
}

func (h *CheckoutHandler) CompleteCheckout(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	projectID, err := strconv.ParseInt(r.URL.Query().Get("projectId"), 10, 64)
	if err != nil {
		h.logger.Error().Err(err).Msg(errors.ErrInvalidRequestBody)
		errors.HandleHTTPError(w, errors.NewBadRequestError(errors.ErrInvalidRequestBody))
		return
	}

	redirectURL, err := h.gateway.CompleteCheckout(r.Context(), status, projectID)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to complete checkout")
		errors.HandleHTTPError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(struct {
		RedirectURL string `json:"redirect_url"`
	}{RedirectURL: redirectURL})
}
