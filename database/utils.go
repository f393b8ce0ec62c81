package database

import (
	"context"
	"time"
)

// ContextWithTimeout creates a context with timeout and cancel function
// This utility eliminates the repetitive pattern across all repositories
func ContextWithTimeout(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// Common timeout durations for database operations
const (
	// ShortTimeout for quick operations like upserting a single day record
	ShortTimeout = 5 * time.Second

	// MediumTimeout for queries that return multiple documents, like the full snapshot
	MediumTimeout = 10 * time.Second
)

// WithShortTimeout creates a context with ShortTimeout (5 seconds)
func WithShortTimeout() (context.Context, context.CancelFunc) {
	return ContextWithTimeout(ShortTimeout)
}

// WithMediumTimeout creates a context with MediumTimeout (10 seconds)
func WithMediumTimeout() (context.Context, context.CancelFunc) {
	return ContextWithTimeout(MediumTimeout)
}
