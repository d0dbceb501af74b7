package http

import (
	"log/slog"
	"net/http"
	"os"

	apierrors "yieldboard/internal/errors"
)

// FrontendHandler serves the single-page dashboard.
type FrontendHandler struct {
	path         string
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewFrontendHandler creates a handler serving the HTML file at path.
func NewFrontendHandler(path string, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *FrontendHandler {
	return &FrontendHandler{
		path:         path,
		logger:       logger.With(slog.String("handler", "frontend")),
		errorHandler: errorHandler,
	}
}

// ServeHTTP handles GET /. The file is read on every request so edits show
// up without a restart; it is sent verbatim, not templated.
func (h *FrontendHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	content, err := os.ReadFile(h.path)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "front-end file unavailable",
			slog.String("path", h.path),
			slog.String("error", err.Error()))
		h.errorHandler.HandleError(w, r, apierrors.FrontendUnavailableError(err))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if r.Method != http.MethodHead {
		w.Write(content)
	}
}
