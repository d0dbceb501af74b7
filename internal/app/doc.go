// Package app wires the yield dashboard together and manages its lifecycle.
//
// # Initialization Flow
//
//	1. Initialize logging (unless the caller supplies a logger)
//	2. Initialize OpenTelemetry and register business and system metrics
//	3. Create the source resolver and the record pipeline
//	4. Create the data and health services
//	5. Set up the chi router and its middleware chain
//	6. Create the HTTP server
//
// # Routes
//
//	GET, HEAD /             the dashboard page, read from disk on every request
//	GET /api/data           the full dataset plus filter metadata
//	GET /api/health         overall health with process statistics
//	GET /api/health/live    liveness
//	GET /api/health/ready   readiness (503 when the source or page is missing)
//	GET /api/version        build and version information
//	GET /metrics            Prometheus scrape endpoint
//
// Every response carries no-cache headers, errors included.
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    return err
//	}
//	application, err := app.NewApplication(cfg, nil)
//	if err != nil {
//	    return err
//	}
//	return application.Run(ctx)
//
// Run returns on SIGINT, SIGTERM or context cancellation after draining
// in-flight requests and flushing telemetry. The package never calls
// os.Exit.
package app
