/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package zap adapts a *zap.Logger to entityconst.Logger.
package zap

import (
	"sort"

	"github.com/suparena/entityconst"
	"go.uber.org/zap"
)

var _ entityconst.Logger = ZapLogger{}

type ZapLogger struct{ L *zap.Logger }

func (z ZapLogger) Debug(msg string, f entityconst.Fields) { z.L.Debug(msg, zf(f)...) }
func (z ZapLogger) Info(msg string, f entityconst.Fields)  { z.L.Info(msg, zf(f)...) }
func (z ZapLogger) Warn(msg string, f entityconst.Fields)  { z.L.Warn(msg, zf(f)...) }
func (z ZapLogger) Error(msg string, f entityconst.Fields) { z.L.Error(msg, zf(f)...) }

// zf converts fields in key order so encoded lines are stable.
func zf(f entityconst.Fields) []zap.Field {
	if len(f) == 0 {
		return nil
	}
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]zap.Field, 0, len(f))
	for _, k := range keys {
		out = append(out, zap.Any(k, f[k]))
	}
	return out
}
