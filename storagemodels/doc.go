/*
Package storagemodels defines the data structures shared by the datastore
implementations.

ListOptions:
Configuration for fetching every record of a model type:

	opts := []ListOption{
	    WithPageSize(25),
	    WithMaxRetries(3),
	    WithRetryBackoff(500 * time.Millisecond),
	    WithProgressHandler(func(p ListProgress) {
	        log.Printf("fetched %d items in %d pages", p.ItemsFetched, p.PagesProcessed)
	    }),
	}
	records, err := store.All(ctx, opts...)

Backends that have no notion of pages (the in-memory mock, SQLite) still
report a single progress event so callers observe the same lifecycle.
*/
package storagemodels
