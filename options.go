/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package entityconst

import (
	"github.com/suparena/entityconst/identifier"
	"github.com/suparena/entityconst/storagemodels"
)

type options struct {
	logger    Logger
	normalize func(string) string
	listOpts  []storagemodels.ListOption
}

func defaultOptions() options {
	return options{
		logger:    NopLogger{},
		normalize: identifier.Constantize,
	}
}

// Option configures a Registry.
type Option func(*options)

// WithLogger sets the logger. A nil logger disables logging.
func WithLogger(l Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NopLogger{}
		}
		o.logger = l
	}
}

// WithNormalizer replaces identifier.Constantize as the function that turns
// attribute text into an identifier. Truncation is applied afterwards.
func WithNormalizer(fn func(string) string) Option {
	return func(o *options) {
		if fn != nil {
			o.normalize = fn
		}
	}
}

// WithListOptions passes options to the datastore's All call during Register.
func WithListOptions(opts ...storagemodels.ListOption) Option {
	return func(o *options) {
		o.listOpts = append(o.listOpts, opts...)
	}
}
