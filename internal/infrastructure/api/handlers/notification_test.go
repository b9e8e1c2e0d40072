package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"

	"github.com/crowdtide/payeer-gateway/internal/payeer"
	"github.com/crowdtide/payeer-gateway/internal/usecases/dtos"
	"github.com/crowdtide/payeer-gateway/internal/usecases/interactor"
	"github.com/crowdtide/payeer-gateway/pkg/log"
	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	log.Init("handlers-test")
	os.Exit(m.Run())
}

type stubGateway struct {
	result *interactor.NotificationResult
	seen   *dtos.NotificationDTO
}

func (s *stubGateway) BuildPaymentRequest(_ context.Context, _ *dtos.CheckoutDTO) (*payeer.PaymentRequest, error) {
	return nil, nil
}

func (s *stubGateway) HandleNotification(_ context.Context, notification *dtos.NotificationDTO) *interactor.NotificationResult {
	s.seen = notification
	return s.result
}

func (s *stubGateway) CompleteCheckout(_ context.Context, _ string, _ int64) (string, error) {
	return "", nil
}

func postForm(handler *NotificationHandler, form url.Values) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodPost, "/api/v1/notify/payeer/", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	handler.HandleNotification(w, r)
	return w
}

func TestHandleNotificationSuccessBody(t *testing.T) {
	stub := &stubGateway{result: &interactor.NotificationResult{OrderID: "ABC123", Ok: true}}
	handler := NewNotificationHandler(stub)

	form := url.Values{}
	form.Set(payeer.FieldOrderID, "ABC123")
	form.Set(payeer.FieldStatus, payeer.StatusSuccess)

	w := postForm(handler, form)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ABC123|success", w.Body.String())
	assert.Equal(t, "ABC123", stub.seen.Get(payeer.FieldOrderID))
}

func TestHandleNotificationErrorBody(t *testing.T) {
	stub := &stubGateway{result: &interactor.NotificationResult{OrderID: "ABC123", Ok: false}}
	handler := NewNotificationHandler(stub)

	form := url.Values{}
	form.Set(payeer.FieldOrderID, "ABC123")

	w := postForm(handler, form)

	assert.Equal(t, http.StatusOK, w.Code, "the processor never sees a 5xx")
	assert.Equal(t, "ABC123|error", w.Body.String())
}
