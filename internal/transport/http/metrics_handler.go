package http

import (
	"net/http"

	apierrors "yieldboard/internal/errors"
)

// NewMetricsHandler exposes the Prometheus scrape endpoint. When metrics
// are disabled (promHandler is nil) it answers 503.
func NewMetricsHandler(promHandler http.Handler, errorHandler *apierrors.ErrorHandler) http.Handler {
	if promHandler != nil {
		return promHandler
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		errorHandler.HandleError(w, r, apierrors.New(
			http.StatusServiceUnavailable,
			apierrors.CodeServiceUnavailable,
			"metrics are disabled",
		))
	})
}
