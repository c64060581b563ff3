/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"strconv"
)

// Item is a schemaless record: the raw attributes of a DynamoDB item decoded
// into Go values. It lets a registry read tables that have no model type.
type Item map[string]any

// Attribute implements datastore.Attributer for string, number and boolean
// attributes. Other kinds are absent.
func (i *Item) Attribute(name string) (string, bool) {
	if i == nil {
		return "", false
	}
	switch v := (*i)[name].(type) {
	case string:
		return v, true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(v), true
	}
	return "", false
}
