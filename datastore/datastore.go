/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package datastore

import (
	"context"

	"github.com/suparena/entityconst/storagemodels"
)

// Lister fetches every current record of one model type, in backend order.
type Lister[T any] interface {
	All(ctx context.Context, opts ...storagemodels.ListOption) ([]*T, error)
}

type DataStore[T any] interface {
	Lister[T]

	GetOne(ctx context.Context, key string) (*T, error)

	Put(ctx context.Context, entity T) error

	Delete(ctx context.Context, key string) error
}

// Attributer exposes a record's attributes by name. The boolean reports
// whether the attribute is present; NULL or missing attributes return false.
type Attributer interface {
	Attribute(name string) (string, bool)
}
