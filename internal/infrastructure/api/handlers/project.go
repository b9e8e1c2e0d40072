package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/crowdtide/payeer-gateway/internal/errors"
	http2 "github.com/crowdtide/payeer-gateway/internal/infrastructure/api/http"
	"github.com/crowdtide/payeer-gateway/internal/usecases/interactor"
	"github.com/crowdtide/payeer-gateway/pkg/log"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

type FundsHandler struct {
	interactor *interactor.ProjectInteractor
	logger     *zerolog.Logger
}

func NewFundsHandler(interactor *interactor.ProjectInteractor) *FundsHandler {
	logger := log.GetLogger()
	return &FundsHandler{interactor: interactor, logger: &logger}
}

func (fh *FundsHandler) GetFunds(w http.ResponseWriter, r *http.Request) {
	projectID, err := strconv.ParseInt(chi.URLParam(r, http2.ProjectIDParam), 10, 64)
	if err != nil {
		fh.logger.Error().Err(err).Msg(errors.ErrInvalidRequestBody)
		errors.HandleHTTPError(w, errors.NewBadRequestError(errors.ErrInvalidRequestBody))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	funds, err := fh.interactor.GetFunds(ctx, projectID)
	if err != nil {
		fh.logger.Error().Err(err).Msg("failed to get project funds")
		errors.HandleHTTPError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(struct {
		Funds float64 `json:"funds"`
	}{Funds: funds})
}
