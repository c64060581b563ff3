/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Command constdump registers the records of one model type and prints the
// identifiers they are bound to.
//
//	constdump -type statuses -db ./app.db
//	constdump -type statuses -backend dynamodb -table Entities -config consts.yaml
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/olekukonko/tablewriter"
	"github.com/suparena/entityconst"
	"github.com/suparena/entityconst/config"
	"github.com/suparena/entityconst/datastore"
	"github.com/suparena/entityconst/datastore/ddb"
	"github.com/suparena/entityconst/datastore/sqlstore"
	zapadapter "github.com/suparena/entityconst/log/zap"
	"go.uber.org/zap"
)

const (
	backendSQLite   = "sqlite"
	backendDynamoDB = "dynamodb"
)

type options struct {
	typeName   string
	configPath string
	envFile    string
	backend    string
	dbPath     string
	table      string
	entityType string
	typeIndex  string
	key        string
	limit      int
	recache    bool
	debug      bool
}

var (
	versionFlag = flag.Bool("version", false, "Show version information")
	vFlag       = flag.Bool("v", false, "Show version information (short)")
)

func main() {
	var o options
	flag.StringVar(&o.typeName, "type", "", "model type to register (sqlite table name, default DynamoDB entity type)")
	flag.StringVar(&o.configPath, "config", "", "YAML file with per-type registration settings")
	flag.StringVar(&o.envFile, "env", ".env", "dotenv file with backend settings")
	flag.StringVar(&o.backend, "backend", "", "datastore backend: sqlite or dynamodb (detected from the environment when empty)")
	flag.StringVar(&o.dbPath, "db", "", "SQLite database path")
	flag.StringVar(&o.table, "table", "", "DynamoDB table name")
	flag.StringVar(&o.entityType, "entity-type", "", "DynamoDB EntityType value (defaults to -type)")
	flag.StringVar(&o.typeIndex, "type-index", "", "DynamoDB GSI keyed by entity type (scans the table when empty)")
	flag.StringVar(&o.key, "key", "", "attribute the identifiers are derived from")
	flag.IntVar(&o.limit, "limit", 0, "maximum identifier length")
	flag.BoolVar(&o.recache, "recache", false, "let later records replace earlier bindings")
	flag.BoolVar(&o.debug, "debug", false, "enable debug logging")
	flag.Parse()

	if *versionFlag || *vFlag {
		info := entityconst.GetVersionInfo()
		fmt.Printf("entityconst constdump version %s\n", info.Version)
		fmt.Printf("Git commit: %s\n", info.GitCommit)
		fmt.Printf("Build date: %s\n", info.BuildDate)
		fmt.Printf("Go version: %s\n", info.GoVersion)
		os.Exit(0)
	}

	logger, err := newLogger(o.debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "constdump: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, o, zapadapter.ZapLogger{L: logger}, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "constdump: %v\n", err)
		os.Exit(1)
	}
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return cfg.Build()
}

func run(ctx context.Context, o options, logger entityconst.Logger, w io.Writer) error {
	if o.typeName == "" {
		return fmt.Errorf("-type is required")
	}

	cfg, err := resolveConfig(o)
	if err != nil {
		return err
	}

	backend, err := config.LoadBackend(o.envFile)
	if err != nil {
		return err
	}

	reg, closeFn, err := openRegistrar(ctx, o, backend, logger)
	if err != nil {
		return err
	}
	defer closeFn()

	catalog := entityconst.NewCatalog()
	if err := catalog.Add(reg); err != nil {
		return err
	}
	if err := catalog.RegisterAll(ctx, map[string]entityconst.Config{o.typeName: cfg}); err != nil {
		return err
	}

	printTable(w, reg)
	return nil
}

// resolveConfig reads the settings for the requested type and applies the
// command line overrides.
func resolveConfig(o options) (entityconst.Config, error) {
	cfg := entityconst.DefaultConfig()
	if o.configPath != "" {
		f, err := config.Load(o.configPath)
		if err != nil {
			return cfg, err
		}
		if c, ok := f.Types[o.typeName]; ok {
			cfg = c
		}
	}
	if o.key != "" {
		cfg.Key = o.key
	}
	if o.limit > 0 {
		cfg.Limit = o.limit
	}
	if o.recache {
		cfg.AllowRecaching = true
	}
	return cfg.Normalized(), nil
}

func openRegistrar(ctx context.Context, o options, b config.Backend, logger entityconst.Logger) (entityconst.Registrar, func(), error) {
	backend := o.backend
	if backend == "" {
		backend = backendSQLite
		if o.dbPath == "" && b.SQLitePath == "" && b.UseDynamoDB() {
			backend = backendDynamoDB
		}
	}

	switch backend {
	case backendSQLite:
		path := o.dbPath
		if path == "" {
			path = b.SQLitePath
		}
		if path == "" {
			return nil, nil, fmt.Errorf("no SQLite database: pass -db or set %s", config.EnvSQLitePath)
		}
		store, err := sqlstore.Open(path, o.typeName)
		if err != nil {
			return nil, nil, err
		}
		reg := entityconst.New[sqlstore.Row](o.typeName, store, entityconst.WithLogger(logger))
		return reg, func() { store.Close() }, nil

	case backendDynamoDB:
		table := o.table
		if table == "" {
			table = b.DDBTable
		}
		entityType := o.entityType
		if entityType == "" {
			entityType = o.typeName
		}
		var storeOpts []ddb.Option
		if o.typeIndex != "" {
			storeOpts = append(storeOpts, ddb.WithTypeIndexName(o.typeIndex))
		}
		store, err := ddb.NewDynamodbDataStore[ddb.Item](ctx, b.AWSAccessKey, b.AWSSecretKey, b.AWSRegion, table, entityType, storeOpts...)
		if err != nil {
			return nil, nil, err
		}
		reg := entityconst.New[ddb.Item](o.typeName, store, entityconst.WithLogger(logger))
		return reg, func() {}, nil
	}
	return nil, nil, fmt.Errorf("unknown backend %q", backend)
}

func printTable(w io.Writer, reg entityconst.Registrar) {
	key := reg.Config().Key

	var data [][]string
	for _, id := range reg.Identifiers() {
		source := ""
		if v, ok := reg.Value(id); ok {
			if a, ok := v.(datastore.Attributer); ok {
				source, _ = a.Attribute(key)
			}
		}
		data = append(data, []string{id, source})
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"IDENTIFIER", key})
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetNoWhiteSpace(true)
	table.SetTablePadding("    ")
	table.AppendBulk(data)
	table.Render()
}
