/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/suparena/entityconst/storagemodels"
)

// All returns every item tagged with the datastore's EntityType.
//
// Without a type index the table is scanned with a filter on EntityType and
// items come back in scan order. With WithTypeIndex the index is queried and
// items come back in ascending sort-key order.
func (d *DynamodbDataStore[T]) All(ctx context.Context, opts ...storagemodels.ListOption) ([]*T, error) {
	options := storagemodels.ApplyListOptions(opts...)
	progress := storagemodels.ListProgress{StartTime: time.Now()}

	var results []*T
	var startKey map[string]types.AttributeValue
	for {
		items, lastKey, err := d.fetchPage(ctx, startKey, options)
		if err != nil {
			return nil, err
		}
		progress.PagesProcessed++

		for _, item := range items {
			rec, err := d.decode(item)
			if err != nil {
				return nil, err
			}
			results = append(results, rec)
		}
		progress.ItemsFetched = int64(len(results))
		progress.Done = len(lastKey) == 0
		if options.ProgressHandler != nil {
			options.ProgressHandler(progress)
		}

		if progress.Done {
			return results, nil
		}
		startKey = lastKey
	}
}

func (d *DynamodbDataStore[T]) fetchPage(
	ctx context.Context,
	startKey map[string]types.AttributeValue,
	options storagemodels.ListOptions,
) ([]map[string]types.AttributeValue, map[string]types.AttributeValue, error) {
	values := map[string]types.AttributeValue{
		":et": &types.AttributeValueMemberS{Value: d.entityType},
	}

	if d.typeIndex != nil {
		keyCond := "#pk = :et"
		input := &sdk.QueryInput{
			TableName:                 &d.tableName,
			IndexName:                 aws.String(d.typeIndex.IndexName),
			KeyConditionExpression:    &keyCond,
			ExpressionAttributeNames:  map[string]string{"#pk": d.typeIndex.PartitionKeyName},
			ExpressionAttributeValues: values,
			ExclusiveStartKey:         startKey,
			Limit:                     aws.Int32(options.PageSize),
			ScanIndexForward:          aws.Bool(true),
		}
		out, err := withRetry(ctx, options, func() (*sdk.QueryOutput, error) {
			return d.client.Query(ctx, input)
		})
		if err != nil {
			return nil, nil, fmt.Errorf("query %s: %w", d.typeIndex.IndexName, err)
		}
		return out.Items, out.LastEvaluatedKey, nil
	}

	filter := "#et = :et"
	input := &sdk.ScanInput{
		TableName:                 &d.tableName,
		FilterExpression:          &filter,
		ExpressionAttributeNames:  map[string]string{"#et": EntityTypeAttribute},
		ExpressionAttributeValues: values,
		ExclusiveStartKey:         startKey,
		Limit:                     aws.Int32(options.PageSize),
	}
	out, err := withRetry(ctx, options, func() (*sdk.ScanOutput, error) {
		return d.client.Scan(ctx, input)
	})
	if err != nil {
		return nil, nil, fmt.Errorf("scan %s: %w", d.tableName, err)
	}
	return out.Items, out.LastEvaluatedKey, nil
}

// withRetry calls fn until it succeeds, fails with a non-retryable error or
// runs out of attempts. The wait grows linearly with RetryBackoff.
func withRetry[O any](ctx context.Context, options storagemodels.ListOptions, fn func() (O, error)) (O, error) {
	var zero O
	var lastErr error

	for attempt := 0; attempt <= options.MaxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return zero, err
		}

		out, err := fn()
		if err == nil {
			return out, nil
		}
		lastErr = err

		if !isRetryableError(err) {
			return zero, err
		}

		if attempt < options.MaxRetries {
			backoff := time.Duration(attempt+1) * options.RetryBackoff
			select {
			case <-ctx.Done():
				return zero, ctx.Err()
			case <-time.After(backoff):
			}
		}
	}

	return zero, fmt.Errorf("failed after %d retries: %w", options.MaxRetries, lastErr)
}

// isRetryableError reports whether a DynamoDB error is transient.
func isRetryableError(err error) bool {
	var throughput *types.ProvisionedThroughputExceededException
	var limit *types.RequestLimitExceeded
	var internal *types.InternalServerError
	if stderrors.As(err, &throughput) || stderrors.As(err, &limit) || stderrors.As(err, &internal) {
		return true
	}

	var retryable interface{ IsRetryable() bool }
	if stderrors.As(err, &retryable) {
		return retryable.IsRetryable()
	}
	return false
}
