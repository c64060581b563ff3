/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package sqlstore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/suparena/entityconst"
	"github.com/suparena/entityconst/datastore"
	"github.com/suparena/entityconst/errors"
	"github.com/suparena/entityconst/storagemodels"
)

var _ datastore.DataStore[Row] = (*Store)(nil)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "constants.db"), "statuses")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	if err := s.EnsureTable(context.Background(), "name", "abbreviation"); err != nil {
		t.Fatalf("EnsureTable failed: %v", err)
	}
	return s
}

func TestValidation(t *testing.T) {
	if _, err := New(nil, "statuses; DROP TABLE x"); !errors.IsValidationError(err) {
		t.Fatalf("expected validation error for table name, got %v", err)
	}

	s := openStore(t)
	if err := s.EnsureTable(context.Background(), "bad column"); !errors.IsValidationError(err) {
		t.Fatalf("expected validation error for column, got %v", err)
	}
	if err := s.Put(context.Background(), NewRow(1, map[string]string{"x-y": "1"})); !errors.IsValidationError(err) {
		t.Fatalf("expected validation error for attribute, got %v", err)
	}
	if _, err := s.GetOne(context.Background(), "abc"); !errors.IsValidationError(err) {
		t.Fatalf("expected validation error for key, got %v", err)
	}
}

func TestCRUD(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)

	if err := s.Put(ctx, NewRow(7, map[string]string{"name": "Pending"})); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := s.Put(ctx, NewRow(0, map[string]string{"name": "Auto"})); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, err := s.GetOne(ctx, "7")
	if err != nil {
		t.Fatalf("GetOne failed: %v", err)
	}
	if name, ok := got.Attribute("name"); !ok || name != "Pending" {
		t.Fatalf("name = %q, %v", name, ok)
	}
	if _, ok := got.Attribute("abbreviation"); ok {
		t.Fatal("NULL column should be absent")
	}
	if id, _ := got.Attribute(IDColumn); id != "7" {
		t.Fatalf("id attribute = %q", id)
	}

	auto, err := s.GetOne(ctx, "8")
	if err != nil {
		t.Fatalf("expected auto-assigned id 8: %v", err)
	}
	if name, _ := auto.Attribute("name"); name != "Auto" {
		t.Fatalf("unexpected auto row %+v", auto)
	}

	if err := s.Put(ctx, NewRow(7, map[string]string{"name": "Waiting"})); err != nil {
		t.Fatalf("replacing Put failed: %v", err)
	}
	got, _ = s.GetOne(ctx, "7")
	if name, _ := got.Attribute("name"); name != "Waiting" {
		t.Fatalf("row not replaced: %q", name)
	}

	if err := s.Delete(ctx, "7"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := s.GetOne(ctx, "7"); !errors.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err := s.Delete(ctx, "7"); !errors.IsNotFound(err) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}

func TestAllOrderedByID(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)
	for _, r := range []Row{
		NewRow(3, map[string]string{"name": "Completed, Late"}),
		NewRow(1, map[string]string{"name": "Pending"}),
		NewRow(2, map[string]string{"name": "Active"}),
	} {
		if err := s.Put(ctx, r); err != nil {
			t.Fatalf("Put failed: %v", err)
		}
	}

	var progress storagemodels.ListProgress
	rows, err := s.All(ctx, storagemodels.WithProgressHandler(func(p storagemodels.ListProgress) { progress = p }))
	if err != nil {
		t.Fatalf("All failed: %v", err)
	}
	var ids []int64
	for _, r := range rows {
		ids = append(ids, r.ID)
	}
	if diff := cmp.Diff([]int64{1, 2, 3}, ids); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
	if !progress.Done || progress.ItemsFetched != 3 {
		t.Fatalf("unexpected progress %+v", progress)
	}
}

func TestRegistryOverSQLite(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)
	for _, r := range []Row{
		NewRow(1, map[string]string{"name": "California", "abbreviation": "CA"}),
		NewRow(2, map[string]string{"name": "Colorado", "abbreviation": "CO"}),
		NewRow(3, map[string]string{"name": "Unknown"}),
		NewRow(4, map[string]string{"name": "Canada", "abbreviation": "CAN"}),
	} {
		if err := s.Put(ctx, r); err != nil {
			t.Fatalf("Put failed: %v", err)
		}
	}

	states := entityconst.New[Row]("states", s)
	if err := states.Register(ctx, entityconst.Config{Key: "abbreviation", Limit: 2}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if diff := cmp.Diff([]string{"CA", "CO"}, states.Identifiers()); diff != "" {
		t.Fatalf("identifiers mismatch (-want +got):\n%s", diff)
	}
	if ca := states.MustLookup("CA"); ca.ID != 1 {
		t.Fatalf("CA should keep the first row, got id %d", ca.ID)
	}
}
