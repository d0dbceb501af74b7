package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"yieldboard/internal/config"
	"yieldboard/internal/infrastructure"
	"yieldboard/pkg/contracts"
	api "yieldboard/pkg/contracts/api/v1"
)

// HealthService provides health check functionality
type HealthService struct {
	version      string
	dataDir      string
	frontendFile string
	resolver     SourceResolver
	startTime    time.Time
	logger       *slog.Logger
}

// NewHealthService creates a new health service with injected dependencies
func NewHealthService(version string, source config.SourceConfig, paths config.PathsConfig, resolver SourceResolver, logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}

	return &HealthService{
		version:      version,
		dataDir:      source.DataDir,
		frontendFile: paths.FrontendFile,
		resolver:     resolver,
		startTime:    time.Now(),
		logger:       infrastructure.WithComponent(logger, "health_service"),
	}
}

// HealthCheck returns overall health status along with runtime statistics
func (hs *HealthService) HealthCheck(ctx context.Context) api.HealthResponse {
	status := hs.newResponse(api.HealthStatusHealthy)
	status.System = infrastructure.CollectSystemStats(hs.startTime)
	return status
}

// ReadinessCheck reports whether the service can answer data requests:
// the data directory must exist, a source file must resolve and the
// front-end page must be present.
func (hs *HealthService) ReadinessCheck(ctx context.Context) api.HealthResponse {
	status := hs.newResponse(api.HealthStatusHealthy)
	status.Checks = map[string]api.CheckResult{
		"data_dir": hs.checkDataDir(),
		"source":   hs.checkSource(),
		"frontend": hs.checkFrontend(),
	}

	for name, check := range status.Checks {
		if check.Status != api.HealthStatusHealthy {
			status.Status = api.HealthStatusUnhealthy
			hs.logger.WarnContext(ctx, "ReadinessCheck: check failed",
				slog.String("check", name),
				slog.String("message", check.Message))
		}
	}

	return status
}

// LivenessCheck returns liveness status
func (hs *HealthService) LivenessCheck(ctx context.Context) api.HealthResponse {
	return hs.newResponse(api.HealthStatusHealthy)
}

// Version returns version information
func (hs *HealthService) Version() map[string]interface{} {
	info := contracts.GetVersionInfo()
	return map[string]interface{}{
		"version":        hs.version,
		"api_version":    info.APIVersion,
		"data_format":    info.DataFormat,
		"build_time":     info.BuildTime,
		"git_commit":     info.GitCommit,
		"go_version":     info.GoVersion,
		"os":             info.OS,
		"arch":           info.Architecture,
		"prerelease":     contracts.IsPrerelease(),
		"uptime_seconds": time.Since(hs.startTime).Seconds(),
		"start_time":     hs.startTime.UTC().Format(time.RFC3339),
	}
}

func (hs *HealthService) newResponse(status string) api.HealthResponse {
	return api.HealthResponse{
		Status:    status,
		Version:   hs.version,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

func (hs *HealthService) checkDataDir() api.CheckResult {
	if !config.DirExists(hs.dataDir) {
		return api.CheckResult{
			Status:  api.HealthStatusUnhealthy,
			Message: fmt.Sprintf("data directory not found: %s", hs.dataDir),
		}
	}
	return api.CheckResult{Status: api.HealthStatusHealthy}
}

func (hs *HealthService) checkSource() api.CheckResult {
	if hs.resolver == nil {
		return api.CheckResult{Status: api.HealthStatusUnhealthy, Message: "source resolver not configured"}
	}
	path, err := hs.resolver.Resolve()
	if err != nil {
		return api.CheckResult{Status: api.HealthStatusUnhealthy, Message: err.Error()}
	}
	return api.CheckResult{Status: api.HealthStatusHealthy, Message: path}
}

func (hs *HealthService) checkFrontend() api.CheckResult {
	if !config.FileExists(hs.frontendFile) {
		return api.CheckResult{
			Status:  api.HealthStatusUnhealthy,
			Message: fmt.Sprintf("front-end file not found: %s", hs.frontendFile),
		}
	}
	return api.CheckResult{Status: api.HealthStatusHealthy}
}
