/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	stderrors "errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/suparena/entityconst/errors"
	"github.com/suparena/entityconst/registry"
)

// EntityTypeAttribute is written on every item so that records of several
// model types can share one table.
const EntityTypeAttribute = "EntityType"

// API is the subset of the DynamoDB client used by the datastore.
type API interface {
	GetItem(ctx context.Context, in *sdk.GetItemInput, optFns ...func(*sdk.Options)) (*sdk.GetItemOutput, error)
	PutItem(ctx context.Context, in *sdk.PutItemInput, optFns ...func(*sdk.Options)) (*sdk.PutItemOutput, error)
	DeleteItem(ctx context.Context, in *sdk.DeleteItemInput, optFns ...func(*sdk.Options)) (*sdk.DeleteItemOutput, error)
	Query(ctx context.Context, in *sdk.QueryInput, optFns ...func(*sdk.Options)) (*sdk.QueryOutput, error)
	Scan(ctx context.Context, in *sdk.ScanInput, optFns ...func(*sdk.Options)) (*sdk.ScanOutput, error)
}

var _ API = (*sdk.Client)(nil)

// DynamodbDataStore implements datastore.DataStore[T] on a single DynamoDB table.
type DynamodbDataStore[T any] struct {
	client     API
	tableName  string
	entityType string
	typeIndex  *GSIConfig
}

// Option configures a DynamodbDataStore.
type Option func(*storeOptions)

type storeOptions struct {
	typeIndex *GSIConfig
	err       error
}

// WithTypeIndex makes All query the given GSI, whose partition key holds the
// entity type, instead of scanning the table. Put maintains the index keys.
func WithTypeIndex(cfg GSIConfig) Option {
	return func(o *storeOptions) {
		o.typeIndex = &cfg
	}
}

// WithTypeIndexName is like WithTypeIndex for an index listed in
// DefaultGSIConfigs. New fails when indexName is not listed.
func WithTypeIndexName(indexName string) Option {
	return func(o *storeOptions) {
		cfg, ok := GetGSIConfig(indexName)
		if !ok {
			o.err = errors.NewValidationError("typeIndex", fmt.Sprintf("no GSI configuration named %q", indexName))
			return
		}
		o.typeIndex = &cfg
	}
}

var macroPattern = regexp.MustCompile(`{([^}]+)}`)

func expandMacros(indexMap registry.IndexMap, keysInput any) (map[string]string, error) {
	av, err := attributevalue.MarshalMap(keysInput)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal keysInput: %w", err)
	}

	res := make(map[string]string, len(indexMap))
	for fieldName, template := range indexMap {
		res[fieldName] = macroPattern.ReplaceAllStringFunc(template, func(macro string) string {
			val, ok := av[strings.Trim(macro, "{}")]
			if !ok {
				return ""
			}
			switch tv := val.(type) {
			case *types.AttributeValueMemberS:
				return tv.Value
			case *types.AttributeValueMemberN:
				return tv.Value
			case *types.AttributeValueMemberBOOL:
				return fmt.Sprintf("%v", tv.Value)
			default:
				// binary, sets, maps and NULL cannot appear in a key
				return ""
			}
		})
	}
	return res, nil
}

// expandStringKey replaces every macro in the index map templates with key.
func expandStringKey(indexMap registry.IndexMap, key string) map[string]string {
	expanded := make(map[string]string, len(indexMap))
	for field, template := range indexMap {
		expanded[field] = macroPattern.ReplaceAllLiteralString(template, key)
	}
	return expanded
}

// buildKeyFromExpanded builds the primary key from an expanded index map.
func buildKeyFromExpanded(expanded map[string]string) (map[string]types.AttributeValue, error) {
	pk, sk := expanded["PK"], expanded["SK"]
	if pk == "" || sk == "" {
		return nil, errors.NewValidationError("key", "expanded index map missing valid PK or SK")
	}
	return map[string]types.AttributeValue{
		"PK": &types.AttributeValueMemberS{Value: pk},
		"SK": &types.AttributeValueMemberS{Value: sk},
	}, nil
}

// NewDynamoDBClient initializes a DynamoDB client using static AWS credentials.
func NewDynamoDBClient(ctx context.Context, awsAccessKey, awsSecretKey, awsRegion string) (*sdk.Client, error) {
	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(awsRegion),
		config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(awsAccessKey, awsSecretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}
	return sdk.NewFromConfig(cfg), nil
}

// New constructs a DynamodbDataStore for records of entityType stored in tableName.
func New[T any](client API, tableName, entityType string, opts ...Option) (*DynamodbDataStore[T], error) {
	if client == nil {
		return nil, errors.NewValidationError("client", "DynamoDB client is required")
	}
	if tableName == "" {
		return nil, errors.NewValidationError("tableName", "must not be empty")
	}
	if entityType == "" {
		return nil, errors.NewValidationError("entityType", "must not be empty")
	}

	var o storeOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	return &DynamodbDataStore[T]{
		client:     client,
		tableName:  tableName,
		entityType: entityType,
		typeIndex:  o.typeIndex,
	}, nil
}

// NewDynamodbDataStore creates a client from static credentials and wraps it in a datastore.
func NewDynamodbDataStore[T any](ctx context.Context, awsAccessKey, awsSecretKey, awsRegion, tableName, entityType string, opts ...Option) (*DynamodbDataStore[T], error) {
	client, err := NewDynamoDBClient(ctx, awsAccessKey, awsSecretKey, awsRegion)
	if err != nil {
		return nil, fmt.Errorf("failed to create DynamoDB client: %w", err)
	}
	return New[T](client, tableName, entityType, opts...)
}

// EntityType returns the EntityType value this datastore reads and writes.
func (d *DynamodbDataStore[T]) EntityType() string {
	return d.entityType
}

func (d *DynamodbDataStore[T]) indexMap() (registry.IndexMap, error) {
	indexMap, ok := registry.GetIndexMap[T]()
	if !ok {
		var zero T
		return nil, fmt.Errorf("%T: %w", zero, errors.ErrNoIndexMap)
	}
	return indexMap, nil
}

func (d *DynamodbDataStore[T]) keyFor(key string) (map[string]types.AttributeValue, error) {
	indexMap, err := d.indexMap()
	if err != nil {
		return nil, err
	}
	return buildKeyFromExpanded(expandStringKey(indexMap, key))
}

// GetOne retrieves a single item using a string key expanded through the index map.
func (d *DynamodbDataStore[T]) GetOne(ctx context.Context, key string) (*T, error) {
	keyMap, err := d.keyFor(key)
	if err != nil {
		return nil, fmt.Errorf("failed to build key: %w", err)
	}

	out, err := d.client.GetItem(ctx, &sdk.GetItemInput{
		TableName: &d.tableName,
		Key:       keyMap,
	})
	if err != nil {
		return nil, fmt.Errorf("GetItem error: %w", err)
	}
	if out.Item == nil {
		return nil, errors.NewNotFoundError(d.entityType, key)
	}
	return d.decode(out.Item)
}

// Put stores entity, filling PK, SK and any other index attributes from the
// index map templates and tagging the item with its EntityType.
func (d *DynamodbDataStore[T]) Put(ctx context.Context, entity T) error {
	indexMap, err := d.indexMap()
	if err != nil {
		return err
	}

	av, err := attributevalue.MarshalMap(entity)
	if err != nil {
		return fmt.Errorf("failed to marshal entity: %w", err)
	}

	expanded, err := expandMacros(indexMap, entity)
	if err != nil {
		return err
	}
	if _, err := buildKeyFromExpanded(expanded); err != nil {
		return err
	}

	for k, v := range expanded {
		av[k] = &types.AttributeValueMemberS{Value: v}
	}
	av[EntityTypeAttribute] = &types.AttributeValueMemberS{Value: d.entityType}
	if d.typeIndex != nil {
		av[d.typeIndex.PartitionKeyName] = &types.AttributeValueMemberS{Value: d.entityType}
		av[d.typeIndex.SortKeyName] = &types.AttributeValueMemberS{Value: expanded["SK"]}
	}

	_, err = d.client.PutItem(ctx, &sdk.PutItemInput{
		TableName: &d.tableName,
		Item:      av,
	})
	if err != nil {
		return fmt.Errorf("PutItem failed: %w", err)
	}
	return nil
}

// Delete removes an item using a string key.
func (d *DynamodbDataStore[T]) Delete(ctx context.Context, key string) error {
	keyMap, err := d.keyFor(key)
	if err != nil {
		return fmt.Errorf("failed to build key for Delete: %w", err)
	}

	_, err = d.client.DeleteItem(ctx, &sdk.DeleteItemInput{
		TableName: &d.tableName,
		Key:       keyMap,
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if stderrors.As(err, &cfe) {
			return fmt.Errorf("delete condition failed: %w", err)
		}
		return fmt.Errorf("failed to delete item in DynamoDB: %w", err)
	}
	return nil
}

// decode turns a raw item into a record, preferring a decoder registered for
// the item's EntityType over plain attributevalue unmarshalling.
func (d *DynamodbDataStore[T]) decode(item map[string]types.AttributeValue) (*T, error) {
	entityType := d.entityType
	if attr, ok := item[EntityTypeAttribute]; ok {
		if err := attributevalue.Unmarshal(attr, &entityType); err != nil {
			return nil, fmt.Errorf("failed to unmarshal EntityType: %w", err)
		}
	}

	if fn, err := registry.GetDecoder(entityType); err == nil {
		obj, err := fn(item)
		if err != nil {
			return nil, fmt.Errorf("failed to decode item for EntityType %q: %w", entityType, err)
		}
		switch v := obj.(type) {
		case *T:
			return v, nil
		case T:
			return &v, nil
		default:
			return nil, fmt.Errorf("decoder for EntityType %q returned %T", entityType, obj)
		}
	}

	result := new(T)
	if err := attributevalue.UnmarshalMap(item, result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal item: %w", err)
	}
	return result, nil
}
