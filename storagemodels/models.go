/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package storagemodels

import (
	"time"
)

// ListOptions configures how a datastore fetches the complete set of records
// of a model type.
type ListOptions struct {
	PageSize        int32              // Items per backend page (default: 100)
	MaxRetries      int                // Retry attempts for transient errors (default: 3)
	RetryBackoff    time.Duration      // Backoff step between retries (default: 1s)
	ProgressHandler func(ListProgress) // Optional progress callback, invoked once per page
}

// ListProgress tracks a running fetch-all.
type ListProgress struct {
	ItemsFetched   int64     // Total items decoded so far
	PagesProcessed int       // Pages read so far
	Done           bool      // True on the final report
	StartTime      time.Time // When listing started
}

// ListOption is a functional option for configuring listing
type ListOption func(*ListOptions)

// DefaultListOptions returns default listing options
func DefaultListOptions() ListOptions {
	return ListOptions{
		PageSize:     100,
		MaxRetries:   3,
		RetryBackoff: time.Second,
	}
}

// ApplyListOptions returns the defaults with opts applied in order.
func ApplyListOptions(opts ...ListOption) ListOptions {
	options := DefaultListOptions()
	for _, opt := range opts {
		opt(&options)
	}
	if options.PageSize <= 0 {
		options.PageSize = DefaultListOptions().PageSize
	}
	if options.MaxRetries < 0 {
		options.MaxRetries = 0
	}
	return options
}

// WithPageSize sets the backend page size
func WithPageSize(size int32) ListOption {
	return func(opts *ListOptions) {
		opts.PageSize = size
	}
}

// WithMaxRetries sets the maximum retry attempts
func WithMaxRetries(retries int) ListOption {
	return func(opts *ListOptions) {
		opts.MaxRetries = retries
	}
}

// WithRetryBackoff sets the retry backoff duration
func WithRetryBackoff(backoff time.Duration) ListOption {
	return func(opts *ListOptions) {
		opts.RetryBackoff = backoff
	}
}

// WithProgressHandler sets a progress callback
func WithProgressHandler(handler func(ListProgress)) ListOption {
	return func(opts *ListOptions) {
		opts.ProgressHandler = handler
	}
}
