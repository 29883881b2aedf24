package http

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

// NewRouter initializes the HTTP router with all application routes.
// The webhook handler owns "/" for every method: GET is the health check,
// POST is the trigger endpoint, and anything else falls through to payload
// validation.
func NewRouter(webhook http.HandlerFunc) *http.ServeMux {
	mux := http.NewServeMux()

	// Ops
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	// Webhook endpoint
	mux.HandleFunc("/", webhook)

	return mux
}
