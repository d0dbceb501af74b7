package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"yieldboard/internal/dataprocessing"
	apierrors "yieldboard/internal/errors"
	"yieldboard/internal/infrastructure"
)

// DataHandler handles data-related HTTP requests with RFC 7807 compliance
type DataHandler struct {
	service      DataServiceInterface
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewDataHandler creates a new data handler with RFC 7807 error handling
func NewDataHandler(service DataServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *DataHandler {
	return &DataHandler{
		service:      service,
		logger:       infrastructure.WithComponent(logger, "data_handler"),
		errorHandler: errorHandler,
	}
}

// GetData handles GET /api/data
func (h *DataHandler) GetData(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := middleware.GetReqID(ctx)

	resp, err := h.service.GetData(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to load dashboard data",
			slog.String("error", err.Error()),
			slog.String("error_kind", dataprocessing.ErrorKind(err)),
			slog.String("request_id", reqID),
		)
		h.errorHandler.HandleError(w, r, toAPIError(err))
		return
	}

	h.logger.DebugContext(ctx, "dashboard data served",
		slog.String("file", resp.Meta.File),
		slog.Int("rows", resp.Meta.TotalRows),
		slog.String("request_id", reqID),
	)

	render.JSON(w, r, resp)
}

// toAPIError maps pipeline errors onto API errors. Errors it does not
// recognise are returned unchanged for the error handler's generic mapping.
func toAPIError(err error) error {
	var schemaErr *dataprocessing.SchemaError
	switch {
	case errors.As(err, &schemaErr):
		return apierrors.MissingColumnsError(schemaErr.Missing)
	case errors.Is(err, dataprocessing.ErrSourceNotFound):
		return apierrors.SourceNotFoundError(err)
	case errors.Is(err, dataprocessing.ErrMalformedSource):
		return apierrors.MalformedSourceError(err)
	default:
		return err
	}
}
