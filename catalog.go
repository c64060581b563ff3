/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package entityconst

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/suparena/entityconst/errors"
)

// Registrar is the non-generic view of a Registry, used where model types
// are addressed by name (configuration files, the CLI).
type Registrar interface {
	Name() string
	Register(ctx context.Context, cfg Config) error
	Config() Config
	Identifiers() []string
	Value(id string) (any, bool)
	Len() int
	Reset()
}

// Catalog is a thread-safe set of registrars keyed by model type name.
type Catalog struct {
	mu         sync.RWMutex
	registrars map[string]Registrar
}

// NewCatalog creates an empty Catalog
func NewCatalog() *Catalog {
	return &Catalog{
		registrars: make(map[string]Registrar),
	}
}

// Add stores r under r.Name()
func (c *Catalog) Add(r Registrar) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.registrars[r.Name()]; exists {
		return errors.NewAlreadyExistsError("registrar", r.Name())
	}
	c.registrars[r.Name()] = r
	return nil
}

// Get retrieves the registrar for a model type
func (c *Catalog) Get(name string) (Registrar, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	r, exists := c.registrars[name]
	if !exists {
		return nil, errors.NewNotFoundError("registrar", name)
	}
	return r, nil
}

// Remove deletes a registrar by name
func (c *Catalog) Remove(name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.registrars[name]; !exists {
		return errors.NewNotFoundError("registrar", name)
	}
	delete(c.registrars, name)
	return nil
}

// Names returns the registered model type names in sorted order
func (c *Catalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.registrars))
	for k := range c.registrars {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// RegisterAll registers every model type in name order. Types missing from
// cfgs use the default configuration. A configuration naming an unknown type
// is rejected before anything is registered.
func (c *Catalog) RegisterAll(ctx context.Context, cfgs map[string]Config) error {
	for name := range cfgs {
		if _, err := c.Get(name); err != nil {
			return fmt.Errorf("configuration for unknown model type: %w", err)
		}
	}

	for _, name := range c.Names() {
		r, err := c.Get(name)
		if err != nil {
			return err
		}
		if err := r.Register(ctx, cfgs[name]); err != nil {
			return err
		}
	}
	return nil
}

// Typed returns the registrar called name as a *Registry[E, P].
func Typed[E any, P Record[E]](c *Catalog, name string) (*Registry[E, P], error) {
	r, err := c.Get(name)
	if err != nil {
		return nil, err
	}
	typed, ok := r.(*Registry[E, P])
	if !ok {
		var zero E
		return nil, errors.NewValidationError("type", fmt.Sprintf("registrar %q does not hold %T records", name, zero))
	}
	return typed, nil
}
