/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package logrus adapts a *logrus.Entry to entityconst.Logger.
package logrus

import (
	"github.com/sirupsen/logrus"
	"github.com/suparena/entityconst"
)

var _ entityconst.Logger = LogrusLogger{}

type LogrusLogger struct{ E *logrus.Entry }

func (l LogrusLogger) Debug(msg string, f entityconst.Fields) {
	l.E.WithFields(logrus.Fields(f)).Debug(msg)
}
func (l LogrusLogger) Info(msg string, f entityconst.Fields) { l.E.WithFields(logrus.Fields(f)).Info(msg) }
func (l LogrusLogger) Warn(msg string, f entityconst.Fields) { l.E.WithFields(logrus.Fields(f)).Warn(msg) }
func (l LogrusLogger) Error(msg string, f entityconst.Fields) {
	l.E.WithFields(logrus.Fields(f)).Error(msg)
}
