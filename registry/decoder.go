/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"sync"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/suparena/entityconst/errors"
)

// DecodeFunc turns a raw DynamoDB item into a record. It is used when the
// default attributevalue unmarshalling does not fit a model type, for example
// when the stored layout predates the Go struct.
type DecodeFunc func(item map[string]types.AttributeValue) (any, error)

var (
	decoders   = make(map[string]DecodeFunc)
	decodersMu sync.RWMutex
)

// RegisterDecoder registers fn for items whose EntityType attribute equals entityType.
func RegisterDecoder(entityType string, fn DecodeFunc) error {
	decodersMu.Lock()
	defer decodersMu.Unlock()

	if _, exists := decoders[entityType]; exists {
		return errors.NewAlreadyExistsError("decoder", entityType)
	}
	decoders[entityType] = fn
	return nil
}

// GetDecoder returns the decoder registered for entityType.
func GetDecoder(entityType string) (DecodeFunc, error) {
	decodersMu.RLock()
	defer decodersMu.RUnlock()

	fn, ok := decoders[entityType]
	if !ok {
		return nil, errors.NewNotFoundError("decoder", entityType)
	}
	return fn, nil
}

// UnregisterDecoder removes the decoder for entityType. It is a no-op when none is registered.
func UnregisterDecoder(entityType string) {
	decodersMu.Lock()
	defer decodersMu.Unlock()
	delete(decoders, entityType)
}
