/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package entityconst

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/suparena/entityconst/datastore"
	"github.com/suparena/entityconst/errors"
	"github.com/suparena/entityconst/identifier"
)

// Record constrains P to be *E and to expose attributes by name.
type Record[E any] interface {
	*E
	datastore.Attributer
}

type memoized struct {
	id string
	ok bool
}

// Registry binds the records of one model type to identifiers derived from
// a configured attribute, so that a row can be referred to by name:
// statuses.MustLookup("PENDING").
//
// Register is meant to run once during start-up; lookups afterwards are safe
// from multiple goroutines.
type Registry[E any, P Record[E]] struct {
	mu       sync.RWMutex
	name     string
	src      datastore.Lister[E]
	cfg      Config
	opts     options
	bindings map[string]*E
	memo     map[*E]memoized
}

// New creates an empty registry for the model type called name, fed by src.
// The type parameter P is inferred: New[Status](...) yields a Registry[Status, *Status].
func New[E any, P Record[E]](name string, src datastore.Lister[E], opts ...Option) *Registry[E, P] {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Registry[E, P]{
		name:     name,
		src:      src,
		cfg:      DefaultConfig(),
		opts:     o,
		bindings: make(map[string]*E),
		memo:     make(map[*E]memoized),
	}
}

// Name returns the model type name.
func (r *Registry[E, P]) Name() string {
	return r.name
}

// Config returns the active configuration.
func (r *Registry[E, P]) Config() Config {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.cfg.Normalized()
}

// Register replaces the active configuration with cfg, fetches every record
// from the datastore and binds them in fetch order. The first
// DuplicateIdentifierError aborts the pass; records after it stay unbound.
//
// Bindings from earlier passes are kept while Key and Limit stay the same.
// When either changes, earlier bindings and cached identifiers are dropped
// and every record is derived again.
func (r *Registry[E, P]) Register(ctx context.Context, cfg Config) error {
	cfg = cfg.Normalized()

	r.mu.Lock()
	rederive := !r.cfg.derivesLike(cfg)
	if rederive {
		r.bindings = make(map[string]*E)
		r.memo = make(map[*E]memoized)
	} else {
		r.pruneMemoLocked()
	}
	r.cfg = cfg
	r.mu.Unlock()

	if rederive {
		r.opts.logger.Debug("identifier derivation changed, dropping bindings", Fields{
			"type":  r.name,
			"key":   cfg.Key,
			"limit": cfg.Limit,
		})
	}

	if r.src == nil {
		return errors.NewValidationError("datastore", fmt.Sprintf("registry %q has no datastore", r.name))
	}

	instances, err := r.src.All(ctx, r.opts.listOpts...)
	if err != nil {
		return fmt.Errorf("%s: fetch all: %w", r.name, err)
	}

	for i, inst := range instances {
		if err := r.Bind(inst); err != nil {
			r.opts.logger.Error("constant registration aborted", Fields{
				"type":      r.name,
				"processed": i,
				"remaining": len(instances) - i - 1,
				"error":     err.Error(),
			})
			return fmt.Errorf("register %s: %w", r.name, err)
		}
	}

	r.opts.logger.Info("constants registered", Fields{
		"type":        r.name,
		"records":     len(instances),
		"identifiers": r.Len(),
		"key":         cfg.Key,
		"limit":       cfg.Limit,
	})
	return nil
}

// Bind registers a single record under its derived identifier.
//
// Records without an identifier are ignored. When the identifier is already
// bound, the existing binding is replaced if AllowRecaching is set and kept
// otherwise. A reserved identifier fails with a DuplicateIdentifierError
// unless AllowRecaching is set.
func (r *Registry[E, P]) Bind(inst *E) error {
	if inst == nil {
		return nil
	}

	r.mu.Lock()
	note, err := r.bindLocked(inst)
	r.mu.Unlock()

	note.emit(r.opts.logger)
	return err
}

// logNote is a log line decided under the lock and written after it is released.
type logNote struct {
	level  string
	msg    string
	fields Fields
}

func (n logNote) emit(l Logger) {
	switch n.level {
	case "debug":
		l.Debug(n.msg, n.fields)
	case "warn":
		l.Warn(n.msg, n.fields)
	}
}

func (r *Registry[E, P]) bindLocked(inst *E) (logNote, error) {
	id, ok := r.identifierLocked(inst)
	if !ok {
		return logNote{"debug", "record has no identifier", Fields{"type": r.name, "key": r.cfg.Key}}, nil
	}

	var note logNote
	prev, bound := r.bindings[id]
	switch {
	case r.cfg.reserves(id) && !r.cfg.AllowRecaching:
		return note, errors.NewDuplicateIdentifierError(r.name, id)
	case bound && !r.cfg.AllowRecaching:
		if prev != inst {
			note = logNote{"debug", "identifier already bound, keeping first record", Fields{"type": r.name, "identifier": id}}
		}
		return note, nil
	case bound:
		delete(r.bindings, id)
		note = logNote{"debug", "recaching identifier", Fields{"type": r.name, "identifier": id}}
	case r.cfg.reserves(id):
		note = logNote{"warn", "binding over reserved identifier", Fields{"type": r.name, "identifier": id}}
	}

	r.bindings[id] = inst
	return note, nil
}

// IdentifierFor returns the identifier derived from inst, computing it on
// first use. The result is cached per record, so later changes to the
// attribute do not change it, until a Register pass changes Key or Limit or
// finds the record unbound. The boolean is false when the attribute is
// missing or empty.
func (r *Registry[E, P]) IdentifierFor(inst *E) (string, bool) {
	if inst == nil {
		return "", false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.identifierLocked(inst)
}

func (r *Registry[E, P]) identifierLocked(inst *E) (string, bool) {
	if m, ok := r.memo[inst]; ok {
		return m.id, m.ok
	}
	id, ok := r.derive(inst)
	r.memo[inst] = memoized{id: id, ok: ok}
	return id, ok
}

// pruneMemoLocked forgets cached identifiers of records that are not bound.
// Backends that decode fresh records on every fetch would otherwise grow the
// cache with each Register pass.
func (r *Registry[E, P]) pruneMemoLocked() {
	bound := make(map[*E]struct{}, len(r.bindings))
	for _, inst := range r.bindings {
		bound[inst] = struct{}{}
	}
	for inst := range r.memo {
		if _, ok := bound[inst]; !ok {
			delete(r.memo, inst)
		}
	}
}

func (r *Registry[E, P]) derive(inst *E) (string, bool) {
	raw, ok := P(inst).Attribute(r.cfg.Key)
	if !ok || raw == "" {
		return "", false
	}
	id := identifier.Truncate(r.opts.normalize(raw), r.cfg.Limit)
	if id == "" {
		return "", false
	}
	return id, true
}

// Lookup returns the record bound to id.
func (r *Registry[E, P]) Lookup(id string) (*E, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	inst, ok := r.bindings[id]
	return inst, ok
}

// MustLookup is like Lookup but panics when id is not bound.
func (r *Registry[E, P]) MustLookup(id string) *E {
	inst, ok := r.Lookup(id)
	if !ok {
		panic(errors.NewNotFoundError(r.name, id))
	}
	return inst
}

// Value implements Registrar.
func (r *Registry[E, P]) Value(id string) (any, bool) {
	inst, ok := r.Lookup(id)
	if !ok {
		return nil, false
	}
	return inst, true
}

// Identifiers returns the bound identifiers in sorted order.
func (r *Registry[E, P]) Identifiers() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.bindings))
	for id := range r.bindings {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len returns the number of bound identifiers.
func (r *Registry[E, P]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.bindings)
}

// Reset drops every binding and cached identifier. The configuration is kept.
func (r *Registry[E, P]) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bindings = make(map[string]*E)
	r.memo = make(map[*E]memoized)
}
