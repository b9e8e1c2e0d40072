package middlewares

import (
	"net"
	"net/http"

	"github.com/crowdtide/payeer-gateway/internal/errors"
	"github.com/crowdtide/payeer-gateway/pkg/log"
)

// IPFilterMiddleware rejects notifications from source addresses outside the
// allow-list. An empty list allows everything. Rejections log only the
// address, never the payload: an unauthenticated sender gets no echo of
// transaction data.
func IPFilterMiddleware(allowed []string) func(next http.Handler) http.Handler {
	allowedSet := make(map[string]struct{}, len(allowed))
	for _, addr := range allowed {
		allowedSet[addr] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(allowedSet) == 0 {
				next.ServeHTTP(w, r)
				return
			}

			remoteAddr := r.RemoteAddr
			if host, _, err := net.SplitHostPort(remoteAddr); err == nil {
				remoteAddr = host
			}

			if _, ok := allowedSet[remoteAddr]; !ok {
				logger := log.GetLogger()
				logger.Error().
					Str("remote_addr", remoteAddr).
					Msg(errors.NewInvalidRemoteAddressError(remoteAddr).Error())
				errors.WriteNotifyResponse(w, "", false)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
