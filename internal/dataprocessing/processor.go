package dataprocessing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"yieldboard/internal/infrastructure"
	"yieldboard/pkg/contracts/domain"
)

const TracerName = "yieldboard.pipeline"

// Result is the output of one pipeline run.
type Result struct {
	Records []domain.Record
	Meta    domain.Metadata
	Stats   domain.PipelineStats
}

// Pipeline turns a source file into canonical records plus metadata. It
// holds no per-run state and is safe for concurrent use; every Run re-reads
// the file.
type Pipeline struct {
	logger  *slog.Logger
	tracer  trace.Tracer
	metrics *infrastructure.BusinessMetrics
}

// PipelineOption configures a Pipeline.
type PipelineOption func(*Pipeline)

// WithMetrics makes the pipeline record run and stage metrics.
func WithMetrics(m *infrastructure.BusinessMetrics) PipelineOption {
	return func(p *Pipeline) { p.metrics = m }
}

// WithTracer overrides the tracer taken from the global provider.
func WithTracer(t trace.Tracer) PipelineOption {
	return func(p *Pipeline) { p.tracer = t }
}

// NewPipeline creates a pipeline. A nil logger falls back to slog.Default.
func NewPipeline(logger *slog.Logger, opts ...PipelineOption) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	p := &Pipeline{
		logger: infrastructure.WithComponent(logger, "pipeline"),
		tracer: otel.Tracer(TracerName),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// runState is threaded through the stages of a single run.
type runState struct {
	path    string
	table   *Table
	records []domain.Record
	meta    domain.Metadata
	stats   domain.PipelineStats
}

type stage struct {
	name string
	fn   func(context.Context, *runState) error
}

// stages run in this order; each one only sees the output of the previous.
var stages = []stage{
	{"load", func(ctx context.Context, s *runState) error {
		t, err := LoadTable(s.path)
		if err != nil {
			return err
		}
		s.table = t
		s.stats.SourceRows = t.Len()
		infrastructure.AddSpanEvent(ctx, "rows_loaded", map[string]interface{}{
			"rows":    t.Len(),
			"columns": len(t.Header),
		})
		return nil
	}},
	{"validate", func(_ context.Context, s *runState) error {
		return ValidateSchema(s.table)
	}},
	{"resolve_liquidity", func(_ context.Context, s *runState) error {
		s.stats.LiquidityDerived = ResolveLiquidity(s.table)
		return nil
	}},
	{"map", func(ctx context.Context, s *runState) error {
		records, cs := mapRecords(s.table)
		s.records = records
		s.stats.NullCoercions = cs.nullCoercions
		s.stats.QuarterOutOfRange = cs.quarterOutOfRange
		infrastructure.AddSpanEvent(ctx, "records_mapped", map[string]interface{}{
			"records":              len(records),
			"null_coercions":       cs.nullCoercions,
			"quarter_out_of_range": cs.quarterOutOfRange,
		})
		return nil
	}},
	{"sanitize", func(_ context.Context, s *runState) error {
		s.stats.Sanitized = Sanitize(s.records)
		return nil
	}},
	{"summarize", func(_ context.Context, s *runState) error {
		s.meta = Summarize(s.path, s.records)
		return nil
	}},
}

// Run executes the pipeline on the file at path. On error no partial result
// is returned. A cancelled ctx stops the run before the next stage.
func (p *Pipeline) Run(ctx context.Context, path string) (*Result, error) {
	ctx, span := p.tracer.Start(ctx, "pipeline.run",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attribute.String("pipeline.source", path)),
	)
	defer span.End()

	start := time.Now()
	state := &runState{path: path}

	for _, st := range stages {
		if err := ctx.Err(); err != nil {
			return nil, p.fail(ctx, start, st.name, fmt.Errorf("pipeline cancelled before %s: %w", st.name, err))
		}
		if err := p.runStage(ctx, st, state); err != nil {
			return nil, p.fail(ctx, start, st.name, err)
		}
	}

	stats := state.stats
	if stats.QuarterOutOfRange > 0 {
		p.logger.WarnContext(ctx, "quarters outside 1..4 kept as-is",
			slog.String("file", state.meta.File),
			slog.Int("rows", stats.QuarterOutOfRange))
	}
	if stats.Sanitized > 0 {
		p.logger.WarnContext(ctx, "non-finite values nulled after mapping",
			slog.String("file", state.meta.File),
			slog.Int("values", stats.Sanitized))
	}

	duration := time.Since(start)
	p.logger.InfoContext(ctx, "pipeline completed",
		slog.String("file", state.meta.File),
		slog.Int("rows", state.meta.TotalRows),
		slog.Int("null_coercions", stats.NullCoercions),
		slog.Int("liquidity_derived", stats.LiquidityDerived),
		slog.Duration("duration", duration))

	infrastructure.RecordPipelineRun(ctx, p.metrics, infrastructure.PipelineRunMetrics{
		Duration:          duration,
		Rows:              state.meta.TotalRows,
		NullCoercions:     stats.NullCoercions,
		LiquidityDerived:  stats.LiquidityDerived,
		QuarterOutOfRange: stats.QuarterOutOfRange,
	})
	span.SetAttributes(attribute.Int("pipeline.rows", state.meta.TotalRows))
	span.SetStatus(codes.Ok, "pipeline completed")

	return &Result{
		Records: state.records,
		Meta:    state.meta,
		Stats:   stats,
	}, nil
}

func (p *Pipeline) runStage(ctx context.Context, st stage, state *runState) error {
	ctx, span := p.tracer.Start(ctx, "pipeline."+st.name)
	defer span.End()

	start := time.Now()
	err := st.fn(ctx, state)
	infrastructure.RecordPipelineStage(ctx, p.metrics, st.name, time.Since(start), err == nil)

	if err != nil {
		infrastructure.RecordError(ctx, err)
	}
	return err
}

// fail expects ctx to carry the run span.
func (p *Pipeline) fail(ctx context.Context, start time.Time, stageName string, err error) error {
	kind := ErrorKind(err)

	p.logger.ErrorContext(ctx, "pipeline failed",
		slog.String("stage", stageName),
		slog.String("error_kind", kind),
		slog.String("error", err.Error()))

	infrastructure.RecordPipelineRun(ctx, p.metrics, infrastructure.PipelineRunMetrics{
		Duration:  time.Since(start),
		ErrorKind: kind,
	})
	infrastructure.RecordError(ctx, err)
	return err
}

// ErrorKind classifies a pipeline error for logs and metrics.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrSourceNotFound):
		return "source_not_found"
	case errors.Is(err, ErrSchema):
		return "schema"
	case errors.Is(err, ErrMalformedSource):
		return "malformed_source"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "cancelled"
	default:
		return "internal"
	}
}
