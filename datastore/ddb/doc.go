/*
Package ddb provides a DynamoDB implementation of the DataStore interface.

The DynamodbDataStore supports:
  - Single-table design patterns
  - Macro-based key expansion (e.g., "STATUS#{Id}")
  - Automatic EntityType injection for polymorphic storage
  - Fetch-all by table scan or through an entity-type GSI
  - Retry of throttled and transient errors while listing

Macro Expansion:
Keys use macros that are replaced with entity field values:

	registry.RegisterIndexMap[Status](registry.IndexMap{
	    "PK": "STATUS#{Id}",   // Becomes "STATUS#pending"
	    "SK": "STATUS#{Id}",
	})

Listing:

	store, _ := ddb.New[Status](client, "app-table", "Status",
	    ddb.WithTypeIndexName("GSI1"),
	)
	statuses, err := store.All(ctx,
	    storagemodels.WithPageSize(25),
	    storagemodels.WithMaxRetries(3),
	)

Tests that talk to a real table carry the integration build tag.
*/
package ddb
