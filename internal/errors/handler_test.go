package errors

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yieldboard/internal/shared/testutil"
)

func decodeProblem(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body
}

func TestNewErrorHandler(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)

	handler := NewErrorHandler(logger, true)

	assert.True(t, handler.includeStack)
	assert.NotNil(t, handler.logger)
}

func TestErrorHandler_HandleError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantType   string
		wantCode   string
		wantDetail string
	}{
		{
			name:       "deadline exceeded",
			err:        context.DeadlineExceeded,
			wantStatus: http.StatusGatewayTimeout,
			wantType:   TypeTimeout,
		},
		{
			name:       "canceled",
			err:        fmt.Errorf("pipeline: %w", context.Canceled),
			wantStatus: http.StatusGatewayTimeout,
			wantType:   TypeTimeout,
		},
		{
			name:       "source not found",
			err:        SourceNotFoundError(fs.ErrNotExist),
			wantStatus: http.StatusNotFound,
			wantType:   TypeSourceNotFound,
			wantCode:   CodeSourceNotFound,
			wantDetail: "source file not found",
		},
		{
			name:       "missing columns",
			err:        MissingColumnsError([]string{"a", "b"}),
			wantStatus: http.StatusInternalServerError,
			wantType:   TypeMissingColumns,
			wantCode:   CodeMissingColumns,
			wantDetail: "missing columns in source file: a, b",
		},
		{
			name:       "wrapped api error",
			err:        fmt.Errorf("loading: %w", MalformedSourceError(errors.New("bad"))),
			wantStatus: http.StatusInternalServerError,
			wantType:   TypeMalformedSource,
			wantCode:   CodeMalformedSource,
		},
		{
			name:       "plain not-exist error",
			err:        fmt.Errorf("open x: %w", fs.ErrNotExist),
			wantStatus: http.StatusNotFound,
			wantType:   TypeNotFound,
		},
		{
			name:       "unknown error",
			err:        errors.New("kaboom"),
			wantStatus: http.StatusInternalServerError,
			wantType:   TypeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, logs := testutil.NewTestLogger(t)
			handler := NewErrorHandler(logger, false)

			req := httptest.NewRequest(http.MethodGet, "/api/data", nil)
			req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "req-1"))
			rec := httptest.NewRecorder()

			handler.HandleError(rec, req, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			body := decodeProblem(t, rec)
			assert.Equal(t, tt.wantType, body["type"])
			assert.Equal(t, "/api/data", body["instance"])
			assert.Equal(t, "req-1", body["trace_id"])
			assert.NotContains(t, body, "stack")
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, body["error_code"])
			}
			if tt.wantDetail != "" {
				assert.Equal(t, tt.wantDetail, body["detail"])
			}
			assert.True(t, logs.ContainsMessage("request failed"))
		})
	}
}

func TestErrorHandler_HandleError_Nil(t *testing.T) {
	logger, logs := testutil.NewTestLogger(t)
	rec := httptest.NewRecorder()

	NewErrorHandler(logger, false).HandleError(rec, httptest.NewRequest(http.MethodGet, "/", nil), nil)

	assert.Zero(t, rec.Body.Len())
	assert.Zero(t, logs.Count())
}

func TestErrorHandler_MissingColumnsDetails(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	rec := httptest.NewRecorder()

	NewErrorHandler(logger, false).HandleError(rec, httptest.NewRequest(http.MethodGet, "/api/data", nil),
		MissingColumnsError([]string{"שנה"}))

	body := decodeProblem(t, rec)
	details, ok := body["details"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, []interface{}{"שנה"}, details["missing_columns"])
}

func TestErrorHandler_IncludeStack(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	rec := httptest.NewRecorder()

	NewErrorHandler(logger, true).HandleError(rec, httptest.NewRequest(http.MethodGet, "/", nil), errors.New("x"))

	assert.Contains(t, decodeProblem(t, rec), "stack")
}

func TestErrorHandler_ServerErrorsLogAtErrorLevel(t *testing.T) {
	logger, logs := testutil.NewTestLogger(t)
	handler := NewErrorHandler(logger, false)
	req := httptest.NewRequest(http.MethodGet, "/api/data", nil)

	handler.HandleError(httptest.NewRecorder(), req, SourceNotFoundError(nil))
	handler.HandleError(httptest.NewRecorder(), req, MalformedSourceError(nil))

	assert.Len(t, logs.GetRecordsByLevel(slog.LevelWarn), 1)
	assert.Len(t, logs.GetRecordsByLevel(slog.LevelError), 1)
}

func TestErrorHandler_HandlePanic(t *testing.T) {
	tests := []struct {
		name         string
		includeStack bool
		wantDetails  bool
	}{
		{"panic value hidden", false, false},
		{"panic value exposed with stack", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, logs := testutil.NewTestLogger(t)
			rec := httptest.NewRecorder()

			NewErrorHandler(logger, tt.includeStack).HandlePanic(rec, httptest.NewRequest(http.MethodGet, "/x", nil), "boom")

			assert.Equal(t, http.StatusInternalServerError, rec.Code)
			body := decodeProblem(t, rec)
			assert.Equal(t, TypeInternal, body["type"])
			assert.Equal(t, CodeInternalServer, body["error_code"])
			assert.Equal(t, "Internal server error", body["detail"])
			assert.Contains(t, body, "trace_id")
			if tt.wantDetails {
				assert.Equal(t, map[string]interface{}{"message": "boom"}, body["details"])
				assert.Contains(t, body, "stack")
			} else {
				assert.NotContains(t, body, "details")
				assert.NotContains(t, body, "stack")
			}
			testutil.AssertLogContains(t, logs, slog.LevelError, "panic recovered")
		})
	}
}

func TestErrorHandler_NotFoundAndMethodNotAllowed(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	handler := NewErrorHandler(logger, false)

	rec := httptest.NewRecorder()
	handler.NotFound(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	body := decodeProblem(t, rec)
	assert.Equal(t, TypeNotFound, body["type"])
	assert.Equal(t, CodeNotFound, body["error_code"])
	assert.Equal(t, "Resource not found", body["detail"])
	assert.Equal(t, "/nope", body["instance"])

	rec = httptest.NewRecorder()
	handler.MethodNotAllowed(rec, httptest.NewRequest(http.MethodPost, "/api/data", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "Method POST is not allowed for this endpoint", decodeProblem(t, rec)["detail"])
}
