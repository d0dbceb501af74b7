package dataprocessing

import (
	"errors"
	"strings"
)

var (
	// ErrSourceNotFound is returned when the source file (or, in discovery
	// mode, any candidate file) does not exist.
	ErrSourceNotFound = errors.New("source file not found")

	// ErrSchema is matched by every *SchemaError.
	ErrSchema = errors.New("source file schema mismatch")

	// ErrMalformedSource is returned when the file exists but cannot be
	// parsed into a table (empty file, broken quoting, rows wider than the
	// header).
	ErrMalformedSource = errors.New("malformed source file")
)

// SchemaError lists the required source columns absent from a table.
type SchemaError struct {
	// Missing holds the absent column names in declaration order.
	Missing []string
}

func (e *SchemaError) Error() string {
	return "missing columns in source file: " + strings.Join(e.Missing, ", ")
}

// Is makes errors.Is(err, ErrSchema) hold for any *SchemaError.
func (e *SchemaError) Is(target error) bool {
	return target == ErrSchema
}
