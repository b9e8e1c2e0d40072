package middlewares

import (
	"net/http"

	"github.com/crowdtide/payeer-gateway/internal/errors"
	"github.com/crowdtide/payeer-gateway/pkg/log"
)

// RequestMethodMiddleware enforces the notification request method while
// keeping the processor's plain-text response contract (no 405 pages).
func RequestMethodMiddleware(method string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != method {
				logger := log.GetLogger()
				logger.Error().
					Str("method", r.Method).
					Msg(errors.NewInvalidRequestMethodError(r.Method).Error())
				errors.WriteNotifyResponse(w, "", false)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
