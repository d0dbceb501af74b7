// Package api contains the HTTP API contract of the yield dashboard.
// Version v1 represents the current stable API version.
package api

import (
	"yieldboard/pkg/contracts/domain"
)

// StatusOK is the status value of a successful data response.
const StatusOK = "ok"

// DataResponse is the body of GET /api/data.
type DataResponse struct {
	Status string          `json:"status"`
	Rows   []domain.Record `json:"rows"`
	Meta   domain.Metadata `json:"meta"`
}

// HealthResponse is the body of the health endpoints.
type HealthResponse struct {
	Status    string                 `json:"status"`
	Version   string                 `json:"version"`
	Timestamp string                 `json:"timestamp"`
	Checks    map[string]CheckResult `json:"checks,omitempty"`
	System    interface{}            `json:"system,omitempty"`
}

// CheckResult is the outcome of a single readiness check.
type CheckResult struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// Health status values.
const (
	HealthStatusHealthy   = "healthy"
	HealthStatusUnhealthy = "unhealthy"
)
