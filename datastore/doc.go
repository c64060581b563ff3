/*
Package datastore defines the persistence collaborators used by entityconst.

The registrar only needs Lister[T], a single "fetch all" call that returns
the records of a model type in a stable order:

	type Lister[T any] interface {
	    All(ctx context.Context, opts ...storagemodels.ListOption) ([]*T, error)
	}

DataStore[T] adds the CRUD operations used to seed and maintain the records:

	type DataStore[T any] interface {
	    Lister[T]
	    GetOne(ctx context.Context, key string) (*T, error)
	    Put(ctx context.Context, entity T) error
	    Delete(ctx context.Context, key string) error
	}

Records expose their attributes through Attributer, which the registrar
reads with the configured key.

Implementations:
  - ddb: DynamoDB implementation with support for single-table design
  - sqlstore: SQLite implementation returning generic rows
  - mock: In-memory mock implementation for testing
*/
package datastore
