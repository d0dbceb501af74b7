// Package services implements the business logic layer of the yield
// dashboard. It sits between the HTTP handlers and the record pipeline.
//
// DataService resolves the current source file and runs the pipeline on
// every call; nothing is cached. HealthService answers liveness, readiness
// and version queries.
//
// Dependencies are injected as small interfaces (SourceResolver,
// RecordPipeline) so that services can be tested with testify mocks.
package services
