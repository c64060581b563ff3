/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package mock provides an in-memory implementation of the DataStore interface for testing
package mock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/suparena/entityconst/errors"
	"github.com/suparena/entityconst/storagemodels"
)

// DataStore is an insertion-ordered, in-memory datastore.DataStore[T].
// All returns pointers to the stored records, so repeated calls hand out the
// same instances until the record is replaced by Put.
type DataStore[T any] struct {
	mu         sync.RWMutex
	data       map[string]*T
	order      []string
	getKeyFunc func(entity T) string
	allError   error
	putError   error
	allCalls   int
}

// New creates a new mock DataStore
func New[T any]() *DataStore[T] {
	return &DataStore[T]{
		data: make(map[string]*T),
	}
}

// WithGetKeyFunc sets a custom function to extract keys from entities
func (m *DataStore[T]) WithGetKeyFunc(f func(T) string) *DataStore[T] {
	m.getKeyFunc = f
	return m
}

// WithAllError makes All return an error
func (m *DataStore[T]) WithAllError(err error) *DataStore[T] {
	m.allError = err
	return m
}

// WithPutError makes Put operations return an error
func (m *DataStore[T]) WithPutError(err error) *DataStore[T] {
	m.putError = err
	return m
}

// GetOne retrieves an entity by key
func (m *DataStore[T]) GetOne(ctx context.Context, key string) (*T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if entity, exists := m.data[key]; exists {
		return entity, nil
	}

	var zero T
	return nil, errors.NewNotFoundError(fmt.Sprintf("%T", zero), key)
}

// Put stores an entity. Replacing an existing key keeps its position.
func (m *DataStore[T]) Put(ctx context.Context, entity T) error {
	if m.putError != nil {
		return m.putError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	key := m.extractKey(entity)
	if key == "" {
		return errors.NewValidationError("key", "unable to extract key from entity")
	}

	if _, exists := m.data[key]; !exists {
		m.order = append(m.order, key)
	}
	m.data[key] = &entity
	return nil
}

// Delete removes an entity by key
func (m *DataStore[T]) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.data[key]; !exists {
		var zero T
		return errors.NewNotFoundError(fmt.Sprintf("%T", zero), key)
	}

	delete(m.data, key)
	for i, k := range m.order {
		if k == key {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

// All returns every stored entity in insertion order
func (m *DataStore[T]) All(ctx context.Context, opts ...storagemodels.ListOption) ([]*T, error) {
	options := storagemodels.ApplyListOptions(opts...)
	start := time.Now()

	m.mu.Lock()
	m.allCalls++
	m.mu.Unlock()

	if m.allError != nil {
		return nil, m.allError
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	results := make([]*T, 0, len(m.order))
	for _, k := range m.order {
		results = append(results, m.data[k])
	}
	m.mu.RUnlock()

	if options.ProgressHandler != nil {
		options.ProgressHandler(storagemodels.ListProgress{
			ItemsFetched:   int64(len(results)),
			PagesProcessed: 1,
			Done:           true,
			StartTime:      start,
		})
	}
	return results, nil
}

// Helper methods for testing

// AllCalls reports how many times All was invoked
func (m *DataStore[T]) AllCalls() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.allCalls
}

// Count returns the number of stored entities
func (m *DataStore[T]) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}

// Clear removes all data
func (m *DataStore[T]) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = make(map[string]*T)
	m.order = nil
}

// extractKey attempts to extract a key from an entity
func (m *DataStore[T]) extractKey(entity T) string {
	if m.getKeyFunc != nil {
		return m.getKeyFunc(entity)
	}
	return fmt.Sprintf("key_%v", entity)
}
