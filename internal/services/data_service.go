package services

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"yieldboard/internal/dataprocessing"
	"yieldboard/internal/infrastructure"
	api "yieldboard/pkg/contracts/api/v1"
)

// SourceResolver picks the file a request reads.
type SourceResolver interface {
	Resolve() (string, error)
}

// RecordPipeline turns a source file into records and metadata.
type RecordPipeline interface {
	Run(ctx context.Context, path string) (*dataprocessing.Result, error)
}

// DataService provides the dashboard data set
type DataService struct {
	resolver SourceResolver
	pipeline RecordPipeline
	logger   *slog.Logger
}

// NewDataService creates a new data service with injected dependencies
func NewDataService(resolver SourceResolver, pipeline RecordPipeline, logger *slog.Logger) *DataService {
	if logger == nil {
		logger = slog.Default()
	}
	return &DataService{
		resolver: resolver,
		pipeline: pipeline,
		logger:   infrastructure.WithComponent(logger, "data_service"),
	}
}

// GetData resolves the current source file and runs it through the record
// pipeline. Nothing is cached: every call re-reads the file. On error no
// partial payload is returned.
func (ds *DataService) GetData(ctx context.Context) (*api.DataResponse, error) {
	path, err := ds.resolver.Resolve()
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			err = fmt.Errorf("%w: %w", dataprocessing.ErrSourceNotFound, err)
		}
		ds.logger.WarnContext(ctx, "GetData: no source file", slog.String("error", err.Error()))
		return nil, err
	}

	result, err := ds.pipeline.Run(ctx, path)
	if err != nil {
		return nil, err
	}

	ds.logger.DebugContext(ctx, "GetData: completed",
		slog.String("file", result.Meta.File),
		slog.Int("rows", len(result.Records)))

	return &api.DataResponse{
		Status: api.StatusOK,
		Rows:   result.Records,
		Meta:   result.Meta,
	}, nil
}
