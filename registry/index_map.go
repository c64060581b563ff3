/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"reflect"
	"sync"

	"github.com/suparena/entityconst/errors"
)

// IndexMap maps DynamoDB key attributes (PK, SK, GSI1PK, ...) to templates
// such as "STATUS#{Id}".
type IndexMap map[string]string

var (
	indexMaps   = make(map[reflect.Type]IndexMap)
	indexMapsMu sync.RWMutex
)

// RegisterIndexMap associates the Go type T with idxMap. The map must define
// PK and SK; registering again replaces the previous map.
func RegisterIndexMap[T any](idxMap IndexMap) error {
	if idxMap["PK"] == "" || idxMap["SK"] == "" {
		return errors.NewValidationError("indexMap", "PK and SK templates are required")
	}

	copied := make(IndexMap, len(idxMap))
	for k, v := range idxMap {
		copied[k] = v
	}

	indexMapsMu.Lock()
	defer indexMapsMu.Unlock()
	indexMaps[typeOf[T]()] = copied
	return nil
}

// GetIndexMap retrieves the index map for type T, if any.
func GetIndexMap[T any]() (IndexMap, bool) {
	indexMapsMu.RLock()
	defer indexMapsMu.RUnlock()
	m, ok := indexMaps[typeOf[T]()]
	return m, ok
}

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}
