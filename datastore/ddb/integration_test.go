//go:build integration
// +build integration

/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/go-openapi/strfmt"
	"github.com/joho/godotenv"
	"github.com/suparena/entityconst"
	"github.com/suparena/entityconst/datastore/testmodels"
)

func getStatusStore(t *testing.T) *DynamodbDataStore[testmodels.Status] {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, proceeding with environment variables")
	}

	tableName := os.Getenv("AWS_DDB_TABLE")
	if tableName == "" {
		t.Skip("AWS_DDB_TABLE not set, skipping integration test")
	}

	store, err := NewDynamodbDataStore[testmodels.Status](
		context.Background(),
		os.Getenv("AWS_ACCESS_KEY"),
		os.Getenv("AWS_SECRET_KEY"),
		os.Getenv("AWS_REGION"),
		tableName,
		fmt.Sprintf("StatusIT%d", time.Now().UnixNano()),
	)
	if err != nil {
		t.Fatalf("Failed to create datastore: %v", err)
	}
	return store
}

func TestIntegrationRegisterStatuses(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	store := getStatusStore(t)

	now := strfmt.DateTime(time.Now())
	suffix := store.EntityType()
	for _, name := range []string{"Pending", "Active", "Completed, Late"} {
		err := store.Put(ctx, testmodels.Status{
			ID:        aws.String(suffix + "-" + name),
			Name:      aws.String(name),
			CreatedAt: &now,
		})
		if err != nil {
			t.Fatalf("Put(%s) failed: %v", name, err)
		}
		defer store.Delete(ctx, suffix+"-"+name)
	}

	statuses := entityconst.New[testmodels.Status]("statuses", store)
	if err := statuses.Register(ctx, entityconst.Config{}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	for _, id := range []string{"PENDING", "ACTIVE", "COMPLETED_LATE"} {
		if _, ok := statuses.Lookup(id); !ok {
			t.Errorf("%s not bound, have %v", id, statuses.Identifiers())
		}
	}
}
