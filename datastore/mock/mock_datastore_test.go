/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package mock_test

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/suparena/entityconst/datastore"
	"github.com/suparena/entityconst/datastore/mock"
	"github.com/suparena/entityconst/errors"
	"github.com/suparena/entityconst/storagemodels"
)

type TestEntity struct {
	ID   string
	Name string
}

var _ datastore.DataStore[TestEntity] = (*mock.DataStore[TestEntity])(nil)

func names(items []*TestEntity) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Name)
	}
	return out
}

func TestMockDataStore(t *testing.T) {
	ctx := context.Background()

	t.Run("BasicOperations", func(t *testing.T) {
		mockStore := mock.New[TestEntity]().
			WithGetKeyFunc(func(e TestEntity) string { return e.ID })

		entity := TestEntity{ID: "123", Name: "Test"}
		if err := mockStore.Put(ctx, entity); err != nil {
			t.Fatalf("Put failed: %v", err)
		}

		retrieved, err := mockStore.GetOne(ctx, "123")
		if err != nil {
			t.Fatalf("GetOne failed: %v", err)
		}
		if retrieved.ID != "123" || retrieved.Name != "Test" {
			t.Fatalf("Retrieved entity mismatch: %+v", retrieved)
		}

		if err := mockStore.Delete(ctx, "123"); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}

		_, err = mockStore.GetOne(ctx, "123")
		if !errors.IsNotFound(err) {
			t.Fatalf("Expected not found error, got: %v", err)
		}
	})

	t.Run("AllKeepsInsertionOrder", func(t *testing.T) {
		mockStore := mock.New[TestEntity]().
			WithGetKeyFunc(func(e TestEntity) string { return e.ID })

		for _, e := range []TestEntity{
			{ID: "3", Name: "Three"},
			{ID: "1", Name: "One"},
			{ID: "2", Name: "Two"},
		} {
			if err := mockStore.Put(ctx, e); err != nil {
				t.Fatalf("Put failed: %v", err)
			}
		}
		// replacing keeps the original slot
		if err := mockStore.Put(ctx, TestEntity{ID: "1", Name: "Uno"}); err != nil {
			t.Fatalf("Put failed: %v", err)
		}
		if err := mockStore.Delete(ctx, "3"); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}

		var progress storagemodels.ListProgress
		items, err := mockStore.All(ctx, storagemodels.WithProgressHandler(func(p storagemodels.ListProgress) {
			progress = p
		}))
		if err != nil {
			t.Fatalf("All failed: %v", err)
		}
		if diff := cmp.Diff([]string{"Uno", "Two"}, names(items)); diff != "" {
			t.Fatalf("All order mismatch (-want +got):\n%s", diff)
		}
		if !progress.Done || progress.ItemsFetched != 2 {
			t.Fatalf("unexpected progress report: %+v", progress)
		}
		if mockStore.AllCalls() != 1 {
			t.Fatalf("expected 1 All call, got %d", mockStore.AllCalls())
		}
	})

	t.Run("AllReturnsStableInstances", func(t *testing.T) {
		mockStore := mock.New[TestEntity]().
			WithGetKeyFunc(func(e TestEntity) string { return e.ID })
		_ = mockStore.Put(ctx, TestEntity{ID: "1", Name: "One"})

		first, _ := mockStore.All(ctx)
		second, _ := mockStore.All(ctx)
		if first[0] != second[0] {
			t.Fatal("expected the same instance pointer across All calls")
		}
	})

	t.Run("ErrorSimulation", func(t *testing.T) {
		putErr := errors.NewValidationError("name", "required")
		allErr := stderrors.New("connection reset")
		mockStore := mock.New[TestEntity]().WithPutError(putErr).WithAllError(allErr)

		if err := mockStore.Put(ctx, TestEntity{ID: "1"}); err != putErr {
			t.Fatalf("Expected put error, got: %v", err)
		}
		if _, err := mockStore.All(ctx); err != allErr {
			t.Fatalf("Expected all error, got: %v", err)
		}
	})

	t.Run("CancelledContext", func(t *testing.T) {
		mockStore := mock.New[TestEntity]()
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		if _, err := mockStore.All(cctx); !stderrors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	})

	t.Run("HelperMethods", func(t *testing.T) {
		mockStore := mock.New[TestEntity]().
			WithGetKeyFunc(func(e TestEntity) string { return e.ID })
		_ = mockStore.Put(ctx, TestEntity{ID: "1", Name: "One"})
		_ = mockStore.Put(ctx, TestEntity{ID: "2", Name: "Two"})

		if mockStore.Count() != 2 {
			t.Fatalf("Expected count 2, got %d", mockStore.Count())
		}

		mockStore.Clear()
		if mockStore.Count() != 0 {
			t.Fatalf("Expected count 0 after clear, got %d", mockStore.Count())
		}
		items, _ := mockStore.All(ctx)
		if len(items) != 0 {
			t.Fatalf("Expected no items after clear, got %d", len(items))
		}
	})
}
