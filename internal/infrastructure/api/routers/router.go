package routers

import (
	"fmt"
	"net/http"

	"github.com/crowdtide/payeer-gateway/internal/di"
	http2 "github.com/crowdtide/payeer-gateway/internal/infrastructure/api/http"
	"github.com/crowdtide/payeer-gateway/internal/infrastructure/api/middlewares"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewRouter(container *di.Container, allowedAddresses []string) *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Logger)

	// Set up v1 routes with a path prefix
	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/notify/payeer", func(r chi.Router) {
			// The IPN path answers in the processor's plain-text dialect
			// for every failure mode, including wrong method and source.
			r.Use(middlewares.IPFilterMiddleware(allowedAddresses))
			r.Use(middlewares.RequestMethodMiddleware(http.MethodPost))
			nh := container.NotificationHandler
			r.HandleFunc("/", nh.HandleNotification)
		})
		r.Route("/checkout/payeer", func(r chi.Router) {
			ch := container.CheckoutHandler
			r.Post("/", ch.BuildPaymentRequest)
			r.Get("/complete", ch.CompleteCheckout)
		})
		r.Route("/projects", func(r chi.Router) {
			r.Route(fmt.Sprintf("/{%s}", http2.ProjectIDParam), func(r chi.Router) {
				fh := container.FundsHandler
				r.Get("/funds", fh.GetFunds)
			})
		})
	})

	return router
}
