package http

import (
	"context"

	api "yieldboard/pkg/contracts/api/v1"
)

// DataServiceInterface defines the interface for data operations
type DataServiceInterface interface {
	GetData(ctx context.Context) (*api.DataResponse, error)
}
