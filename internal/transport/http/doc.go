// Package http implements the HTTP transport layer of the yield dashboard:
// thin chi-compatible handlers that call into the services package and
// render JSON with go-chi/render.
//
// Errors are never written directly. Handlers translate pipeline errors
// into *errors.APIError values and hand them to the shared ErrorHandler,
// which renders RFC 7807 problem documents:
//
//	SOURCE_NOT_FOUND  404  no source file could be resolved
//	MISSING_COLUMNS   500  required columns absent, details.missing_columns lists them
//	MALFORMED_SOURCE  500  the file could not be parsed
//
// Routing and middleware are assembled in internal/app.
package http
