/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package entityconst

import "slices"

const (
	// DefaultKey is the attribute read when Config.Key is empty.
	DefaultKey = "name"
	// DefaultLimit is the identifier length used when Config.Limit is not positive.
	DefaultLimit = 64
)

// Config controls how a model type's records become identifiers.
type Config struct {
	// Key names the record attribute the identifier is derived from.
	Key string `yaml:"key"`
	// Limit caps the identifier length in characters.
	Limit int `yaml:"limit"`
	// AllowRecaching lets a later record take over an identifier that is
	// already bound. Without it the first record wins.
	AllowRecaching bool `yaml:"allow_recaching"`
	// Reserved identifiers belong to something other than this registry.
	// Deriving one of them fails with a DuplicateIdentifierError unless
	// AllowRecaching is set.
	Reserved []string `yaml:"reserved,omitempty"`
}

// DefaultConfig returns the configuration used before Register is called.
func DefaultConfig() Config {
	return Config{Key: DefaultKey, Limit: DefaultLimit}
}

// Normalized fills in defaults: an empty Key becomes "name" and a
// non-positive Limit becomes 64.
func (c Config) Normalized() Config {
	if c.Key == "" {
		c.Key = DefaultKey
	}
	if c.Limit <= 0 {
		c.Limit = DefaultLimit
	}
	c.Reserved = slices.Clone(c.Reserved)
	return c
}

// derivesLike reports whether c and o derive the same identifier from a record.
func (c Config) derivesLike(o Config) bool {
	return c.Key == o.Key && c.Limit == o.Limit
}

func (c Config) reserves(id string) bool {
	return slices.Contains(c.Reserved, id)
}
