/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package sqlstore implements datastore.DataStore over a SQLite table whose
// rows are returned as generic attribute maps.
package sqlstore

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3" // registers the sqlite3 driver

	"github.com/suparena/entityconst/errors"
	"github.com/suparena/entityconst/storagemodels"
)

// IDColumn is the integer primary key every table must have.
const IDColumn = "id"

var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Row is one record of a table. A nil attribute value stands for SQL NULL.
type Row struct {
	ID    int64
	Attrs map[string]*string
}

// NewRow builds a row from plain string attributes.
func NewRow(id int64, attrs map[string]string) Row {
	r := Row{ID: id, Attrs: make(map[string]*string, len(attrs))}
	for k, v := range attrs {
		r.Attrs[k] = &v
	}
	return r
}

// Attribute implements datastore.Attributer. NULL and unknown columns are absent.
func (r *Row) Attribute(name string) (string, bool) {
	if name == IDColumn {
		return strconv.FormatInt(r.ID, 10), true
	}
	v, ok := r.Attrs[name]
	if !ok || v == nil {
		return "", false
	}
	return *v, true
}

// Store reads and writes the rows of one table.
type Store struct {
	db    *sql.DB
	table string
}

// Open opens the SQLite database at path and returns a Store for table.
func Open(path, table string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	s, err := New(db, table)
	if err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// New wraps an open database handle.
func New(db *sql.DB, table string) (*Store, error) {
	if !identPattern.MatchString(table) {
		return nil, errors.NewValidationError("table", fmt.Sprintf("%q is not a valid table name", table))
	}
	return &Store{db: db, table: table}, nil
}

// Close closes the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Table returns the table name.
func (s *Store) Table() string {
	return s.table
}

func quote(ident string) string {
	return `"` + ident + `"`
}

// EnsureTable creates the table with an integer id and the given TEXT columns
// if it does not exist yet.
func (s *Store) EnsureTable(ctx context.Context, columns ...string) error {
	defs := []string{quote(IDColumn) + " INTEGER PRIMARY KEY"}
	for _, c := range columns {
		if !identPattern.MatchString(c) || c == IDColumn {
			return errors.NewValidationError("column", fmt.Sprintf("%q is not a valid column name", c))
		}
		defs = append(defs, quote(c)+" TEXT")
	}
	stmt := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", quote(s.table), strings.Join(defs, ", "))
	if _, err := s.db.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("create table %s: %w", s.table, err)
	}
	return nil
}

// All returns every row ordered by id.
func (s *Store) All(ctx context.Context, opts ...storagemodels.ListOption) ([]*Row, error) {
	options := storagemodels.ApplyListOptions(opts...)
	start := time.Now()

	rows, err := s.db.QueryContext(ctx, fmt.Sprintf("SELECT * FROM %s ORDER BY %s", quote(s.table), quote(IDColumn)))
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", s.table, err)
	}
	defer rows.Close()

	results, err := scanRows(rows)
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", s.table, err)
	}

	if options.ProgressHandler != nil {
		options.ProgressHandler(storagemodels.ListProgress{
			ItemsFetched:   int64(len(results)),
			PagesProcessed: 1,
			Done:           true,
			StartTime:      start,
		})
	}
	return results, nil
}

// GetOne returns the row whose id is key.
func (s *Store) GetOne(ctx context.Context, key string) (*Row, error) {
	id, err := strconv.ParseInt(key, 10, 64)
	if err != nil {
		return nil, errors.NewValidationError("key", fmt.Sprintf("%q is not an integer id", key))
	}

	rows, err := s.db.QueryContext(ctx,
		fmt.Sprintf("SELECT * FROM %s WHERE %s = ?", quote(s.table), quote(IDColumn)), id)
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", s.table, err)
	}
	defer rows.Close()

	results, err := scanRows(rows)
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", s.table, err)
	}
	if len(results) == 0 {
		return nil, errors.NewNotFoundError(s.table, key)
	}
	return results[0], nil
}

// Put inserts row, replacing any row with the same id. A zero ID lets SQLite
// assign the next id.
func (s *Store) Put(ctx context.Context, row Row) error {
	cols := make([]string, 0, len(row.Attrs)+1)
	for c := range row.Attrs {
		if c == IDColumn {
			continue
		}
		if !identPattern.MatchString(c) {
			return errors.NewValidationError("column", fmt.Sprintf("%q is not a valid column name", c))
		}
		cols = append(cols, c)
	}
	sort.Strings(cols)

	args := make([]any, 0, len(cols)+1)
	names := make([]string, 0, len(cols)+1)
	if row.ID != 0 {
		names = append(names, quote(IDColumn))
		args = append(args, row.ID)
	}
	for _, c := range cols {
		names = append(names, quote(c))
		if v := row.Attrs[c]; v != nil {
			args = append(args, *v)
		} else {
			args = append(args, nil)
		}
	}

	var stmt string
	if len(names) == 0 {
		stmt = fmt.Sprintf("INSERT INTO %s DEFAULT VALUES", quote(s.table))
	} else {
		stmt = fmt.Sprintf("INSERT OR REPLACE INTO %s (%s) VALUES (%s)",
			quote(s.table), strings.Join(names, ", "), strings.TrimSuffix(strings.Repeat("?, ", len(names)), ", "))
	}
	if _, err := s.db.ExecContext(ctx, stmt, args...); err != nil {
		return fmt.Errorf("insert into %s: %w", s.table, err)
	}
	return nil
}

// Delete removes the row whose id is key.
func (s *Store) Delete(ctx context.Context, key string) error {
	id, err := strconv.ParseInt(key, 10, 64)
	if err != nil {
		return errors.NewValidationError("key", fmt.Sprintf("%q is not an integer id", key))
	}
	res, err := s.db.ExecContext(ctx,
		fmt.Sprintf("DELETE FROM %s WHERE %s = ?", quote(s.table), quote(IDColumn)), id)
	if err != nil {
		return fmt.Errorf("delete from %s: %w", s.table, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return errors.NewNotFoundError(s.table, key)
	}
	return nil
}

func scanRows(rows *sql.Rows) ([]*Row, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var results []*Row
	for rows.Next() {
		values := make([]sql.NullString, len(cols))
		dest := make([]any, len(cols))
		for i := range values {
			dest[i] = &values[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}

		row := &Row{Attrs: make(map[string]*string, len(cols))}
		for i, c := range cols {
			if c == IDColumn {
				if !values[i].Valid {
					return nil, stderrors.New("row without id")
				}
				id, err := strconv.ParseInt(values[i].String, 10, 64)
				if err != nil {
					return nil, fmt.Errorf("parse id: %w", err)
				}
				row.ID = id
				continue
			}
			if values[i].Valid {
				v := values[i].String
				row.Attrs[c] = &v
			} else {
				row.Attrs[c] = nil
			}
		}
		results = append(results, row)
	}
	return results, rows.Err()
}
