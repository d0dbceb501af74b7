package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"yieldboard/internal/dataprocessing"
	apierrors "yieldboard/internal/errors"
	"yieldboard/internal/files"
	"yieldboard/internal/shared/testutil"
	api "yieldboard/pkg/contracts/api/v1"
	"yieldboard/pkg/contracts/domain"
)

// MockDataService is a mock implementation of DataServiceInterface
type MockDataService struct {
	mock.Mock
}

func (m *MockDataService) GetData(ctx context.Context) (*api.DataResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.DataResponse), args.Error(1)
}

func newDataHandler(t *testing.T, svc DataServiceInterface) *DataHandler {
	t.Helper()
	logger, _ := testutil.NewTestLogger(t)
	return NewDataHandler(svc, logger, apierrors.NewErrorHandler(logger, false))
}

func TestDataHandler_GetData_Success(t *testing.T) {
	svc := &MockDataService{}
	svc.On("GetData", mock.Anything).Return(&api.DataResponse{
		Status: api.StatusOK,
		Rows: []domain.Record{{
			TrackID:   domain.NumberIdentifier(7),
			Company:   domain.StringPtr("מגדל"),
			Liquidity: domain.StringPtr(domain.LiquidityLiquid),
		}},
		Meta: domain.Metadata{File: "yields.csv", TotalRows: 1, Companies: []string{}},
	}, nil)

	rec := httptest.NewRecorder()
	newDataHandler(t, svc).GetData(rec, httptest.NewRequest(http.MethodGet, "/api/data", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	rows := body["rows"].([]interface{})
	require.Len(t, rows, 1)
	row := rows[0].(map[string]interface{})
	assert.Equal(t, float64(7), row["track_id"])
	assert.Equal(t, "מגדל", row["company"])
	assert.Nil(t, row["yield"])
	assert.Equal(t, "yields.csv", body["meta"].(map[string]interface{})["file"])
	svc.AssertExpectations(t)
}

func TestDataHandler_GetData_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantDetail string
	}{
		{
			name:       "source not found",
			err:        fmt.Errorf("%w: %w", dataprocessing.ErrSourceNotFound, files.ErrNoSourceFile),
			wantStatus: http.StatusNotFound,
			wantCode:   apierrors.CodeSourceNotFound,
		},
		{
			name:       "missing columns",
			err:        &dataprocessing.SchemaError{Missing: []string{"שנה", "רבעון"}},
			wantStatus: http.StatusInternalServerError,
			wantCode:   apierrors.CodeMissingColumns,
			wantDetail: "missing columns in source file: שנה, רבעון",
		},
		{
			name:       "malformed source",
			err:        fmt.Errorf("%w: wrong number of fields", dataprocessing.ErrMalformedSource),
			wantStatus: http.StatusInternalServerError,
			wantCode:   apierrors.CodeMalformedSource,
		},
		{
			name:       "cancelled",
			err:        fmt.Errorf("pipeline: %w", context.Canceled),
			wantStatus: http.StatusGatewayTimeout,
		},
		{
			name:       "unexpected",
			err:        errors.New("disk on fire"),
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockDataService{}
			svc.On("GetData", mock.Anything).Return(nil, tt.err)

			rec := httptest.NewRecorder()
			newDataHandler(t, svc).GetData(rec, httptest.NewRequest(http.MethodGet, "/api/data", nil))

			assert.Equal(t, tt.wantStatus, rec.Code)

			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, float64(tt.wantStatus), body["status"])
			assert.NotContains(t, body, "rows", "no partial payload on error")
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, body["error_code"])
			}
			if tt.wantDetail != "" {
				assert.Equal(t, tt.wantDetail, body["detail"])
			}
		})
	}
}

func TestDataHandler_MissingColumnsDetails(t *testing.T) {
	svc := &MockDataService{}
	svc.On("GetData", mock.Anything).Return(nil, &dataprocessing.SchemaError{Missing: []string{"ח.פ"}})

	rec := httptest.NewRecorder()
	newDataHandler(t, svc).GetData(rec, httptest.NewRequest(http.MethodGet, "/api/data", nil))

	var body struct {
		Details struct {
			MissingColumns []string `json:"missing_columns"`
		} `json:"details"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, []string{"ח.פ"}, body.Details.MissingColumns)
}

func TestToAPIError(t *testing.T) {
	plain := errors.New("plain")
	assert.Same(t, plain, toAPIError(plain))

	var apiErr *apierrors.APIError
	require.True(t, errors.As(toAPIError(dataprocessing.ErrSourceNotFound), &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
}
