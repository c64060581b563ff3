/*
Package registry holds the process-wide DynamoDB metadata used by the ddb datastore.

Index Map Registry:
Associates Go types with DynamoDB key patterns:

	err := registry.RegisterIndexMap[Status](registry.IndexMap{
	    "PK": "STATUS#{Id}",
	    "SK": "STATUS#{Id}",
	})

Decoder Registry:
Maps EntityType values to custom decode functions:

	err := registry.RegisterDecoder("Status", func(item map[string]types.AttributeValue) (any, error) {
	    ...
	})

Both registries are thread-safe and should be populated during initialization.
*/
package registry
