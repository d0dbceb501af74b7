package errors

import (
	"encoding/json"
	"errors"
	"io/fs"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *APIError
		want string
	}{
		{"message only", New(http.StatusBadRequest, CodeInvalidRequest, "bad"), "bad"},
		{"with cause", SourceNotFoundError(fs.ErrNotExist), "source file not found: file does not exist"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestAPIError_Unwrap(t *testing.T) {
	err := MalformedSourceError(errors.New("bare quote"))
	assert.EqualError(t, errors.Unwrap(err), "bare quote")

	var wrapped error = SourceNotFoundError(fs.ErrNotExist)
	assert.True(t, errors.Is(wrapped, fs.ErrNotExist))
}

func TestDomainErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        *APIError
		wantStatus int
		wantCode   string
	}{
		{"source not found", SourceNotFoundError(nil), http.StatusNotFound, CodeSourceNotFound},
		{"missing columns", MissingColumnsError([]string{"a"}), http.StatusInternalServerError, CodeMissingColumns},
		{"malformed", MalformedSourceError(nil), http.StatusInternalServerError, CodeMalformedSource},
		{"frontend", FrontendUnavailableError(nil), http.StatusInternalServerError, CodeFrontendUnavailable},
		{"panic", ErrPanic("boom"), http.StatusInternalServerError, CodeInternalServer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantStatus, tt.err.StatusCode)
			assert.Equal(t, tt.wantCode, tt.err.ErrorCode)
		})
	}
}

func TestMissingColumnsError(t *testing.T) {
	err := MissingColumnsError([]string{"שנה", "רבעון"})

	assert.Equal(t, "missing columns in source file: שנה, רבעון", err.Message)

	body, jerr := json.Marshal(err)
	require.NoError(t, jerr)
	assert.JSONEq(t, `{
		"status_code": 500,
		"error_code": "MISSING_COLUMNS",
		"message": "missing columns in source file: שנה, רבעון",
		"details": {"missing_columns": ["שנה", "רבעון"]}
	}`, string(body))
}

func TestProblemDetails_MarshalJSON(t *testing.T) {
	problem := NewProblemDetails(http.StatusNotFound, TypeNotFound, "Not Found", "", "/api/data").
		WithExtension("trace_id", "abc").
		WithExtension("status", "overridden?")

	body, err := json.Marshal(problem)
	require.NoError(t, err)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &got))

	assert.Equal(t, TypeNotFound, got["type"])
	assert.Equal(t, float64(404), got["status"], "standard members win over extensions")
	assert.Equal(t, "abc", got["trace_id"])
	assert.Equal(t, "/api/data", got["instance"])
	assert.NotContains(t, got, "detail", "empty detail is omitted")
}
