/*
 * Copyright (c) 2018 The Go Authors. All rights reserved.
 * Use of this source code is governed by a BSD-style license that can be found in the LICENSE file.
 */

// Package logging provides the structured logger interface used across
// the core (demux, server) and a logrus-backed adapter, grounded on
// flashmob-go-guerrilla's log package: a small interface the core
// depends on, with logrus confined to this one adapter so nothing else
// imports it directly.
package logging

import (
	"github.com/sirupsen/logrus"
)

// Logger is the diagnostic sink core components accept. A nil Logger
// is never passed around internally — Discard fills that role — so
// implementations don't need nil checks of their own.
type Logger interface {
	WithField(key string, value interface{}) Logger
	WithError(err error) Logger
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// discardLogger implements Logger by doing nothing, the default for any
// component constructed without an explicit WithLogger option.
type discardLogger struct{}

func (discardLogger) WithField(string, interface{}) Logger   { return discardLogger{} }
func (discardLogger) WithError(error) Logger                 { return discardLogger{} }
func (discardLogger) Debugf(string, ...interface{})          {}
func (discardLogger) Infof(string, ...interface{})           {}
func (discardLogger) Warnf(string, ...interface{})           {}
func (discardLogger) Errorf(string, ...interface{})          {}

// Discard is the zero-cost default Logger.
var Discard Logger = discardLogger{}

// logrusLogger adapts *logrus.Entry to Logger.
type logrusLogger struct {
	entry *logrus.Entry
}

// New wraps a *logrus.Logger as a Logger. Passing nil is equivalent to
// logrus.New() with its default (text, stderr) configuration.
func New(base *logrus.Logger) Logger {
	if base == nil {
		base = logrus.New()
	}
	return logrusLogger{entry: logrus.NewEntry(base)}
}

func (l logrusLogger) WithField(key string, value interface{}) Logger {
	return logrusLogger{entry: l.entry.WithField(key, value)}
}

func (l logrusLogger) WithError(err error) Logger {
	return logrusLogger{entry: l.entry.WithError(err)}
}

func (l logrusLogger) Debugf(format string, args ...interface{}) { l.entry.Debugf(format, args...) }
func (l logrusLogger) Infof(format string, args ...interface{})  { l.entry.Infof(format, args...) }
func (l logrusLogger) Warnf(format string, args ...interface{})  { l.entry.Warnf(format, args...) }
func (l logrusLogger) Errorf(format string, args ...interface{}) { l.entry.Errorf(format, args...) }
