/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

// GSIConfig names a global secondary index whose partition key holds the
// entity type, and the attributes Put fills for it.
type GSIConfig struct {
	IndexName        string
	PartitionKeyName string
	SortKeyName      string
}

// DefaultGSIConfigs lists the type indexes known by name to WithTypeIndexName.
var DefaultGSIConfigs = map[string]GSIConfig{
	"GSI1": {
		IndexName:        "GSI1",
		PartitionKeyName: "PK1",
		SortKeyName:      "SK1",
	},
}

// GetGSIConfig looks up a type index in DefaultGSIConfigs.
func GetGSIConfig(indexName string) (GSIConfig, bool) {
	cfg, ok := DefaultGSIConfigs[indexName]
	return cfg, ok
}
