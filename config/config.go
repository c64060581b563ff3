/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package config loads registrar configuration from YAML and backend
// settings from the environment.
package config

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/suparena/entityconst"
	"github.com/suparena/entityconst/errors"
	"gopkg.in/yaml.v3"
)

// File is the YAML document describing how each model type is registered:
//
//	types:
//	  statuses:
//	    key: name
//	    limit: 64
//	  states:
//	    key: abbreviation
//	    limit: 2
//	    allow_recaching: true
//	    reserved: [NEW]
type File struct {
	Types map[string]entityconst.Config `yaml:"types"`
}

// Parse decodes a configuration document. Unknown fields are rejected and
// every entry is normalized, so a missing or non-positive limit reads as 64.
func Parse(r io.Reader) (*File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil && !stderrors.Is(err, io.EOF) {
		return nil, errors.NewValidationError("config", err.Error())
	}
	if f.Types == nil {
		f.Types = make(map[string]entityconst.Config)
	}
	for name, cfg := range f.Types {
		if name == "" {
			return nil, errors.NewValidationError("types", "model type name must not be empty")
		}
		f.Types[name] = cfg.Normalized()
	}
	return &f, nil
}

// Load reads and parses the configuration file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	f, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return f, nil
}

// Backend names the datastore the CLI reads from.
type Backend struct {
	AWSAccessKey string
	AWSSecretKey string
	AWSRegion    string
	DDBTable     string
	SQLitePath   string
}

// Environment variables read by LoadBackend.
const (
	EnvAWSAccessKey = "AWS_ACCESS_KEY"
	EnvAWSSecretKey = "AWS_SECRET_KEY"
	EnvAWSRegion    = "AWS_REGION"
	EnvDDBTable     = "AWS_DDB_TABLE"
	EnvSQLitePath   = "ENTITYCONST_SQLITE_PATH"
)

// LoadBackend loads the given .env files (default ".env") into the process
// environment, without overriding variables that are already set, and reads
// the backend settings. Missing .env files are not an error.
func LoadBackend(envFiles ...string) (Backend, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !stderrors.Is(err, fs.ErrNotExist) {
			return Backend{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	return Backend{
		AWSAccessKey: os.Getenv(EnvAWSAccessKey),
		AWSSecretKey: os.Getenv(EnvAWSSecretKey),
		AWSRegion:    os.Getenv(EnvAWSRegion),
		DDBTable:     os.Getenv(EnvDDBTable),
		SQLitePath:   os.Getenv(EnvSQLitePath),
	}, nil
}

// UseDynamoDB reports whether enough settings are present to reach DynamoDB.
func (b Backend) UseDynamoDB() bool {
	return b.DDBTable != "" && b.AWSRegion != ""
}
