// Package shared holds code used across packages without belonging to any
// one layer. Its testutil subpackage provides a capturing slog handler and
// yield export fixtures for tests.
package shared
