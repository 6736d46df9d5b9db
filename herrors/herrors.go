/*
 * Copyright (c) 2018 The Go Authors. All rights reserved.
 * Use of this source code is governed by a BSD-style license that can be found in the LICENSE file.
 */

// Package herrors types the error kinds a request processor logs
// internally: malformed requests, unresolved routing, misbehaving
// handlers, I/O failures and registration conflicts. None of these
// cross the handle_one_request/Connect/Disconnect boundary as a second
// return value — those keep their documented bool/sentinel contracts —
// they exist purely so a Logger (package logging) can render a
// meaningful WithError(err) entry, wrapped with
// github.com/pkg/errors so %+v prints a stack trace.
package herrors

import "github.com/pkg/errors"

// ParseError wraps a malformed-request failure: bad method, bad URL,
// unknown version, header too long, MD5 mismatch.
type ParseError struct {
	cause error
	Path  string
}

func (e *ParseError) Error() string { return "parse error for " + e.Path + ": " + e.cause.Error() }
func (e *ParseError) Unwrap() error { return e.cause }

// NewParseError wraps msg with a stack trace and the request path the
// failure occurred on.
func NewParseError(path, msg string) *ParseError {
	return &ParseError{cause: errors.New(msg), Path: path}
}

// ResourceError records that no handler matched a request.
type ResourceError struct {
	cause  error
	Path   string
	Method string
}

func (e *ResourceError) Error() string {
	return "no handler for " + e.Method + " " + e.Path
}
func (e *ResourceError) Unwrap() error { return e.cause }

// NewResourceError builds a ResourceError with a stack trace attached.
func NewResourceError(method, path string) *ResourceError {
	return &ResourceError{cause: errors.New("unresolved route"), Path: path, Method: method}
}

// HandlerError records that a handler callback panicked.
type HandlerError struct {
	cause error
	Path  string
}

func (e *HandlerError) Error() string { return "handler panicked for " + e.Path + ": " + e.cause.Error() }
func (e *HandlerError) Unwrap() error { return e.cause }

// NewHandlerError wraps the recovered panic value (already rendered as
// an error) with a stack trace.
func NewHandlerError(path string, recovered error) *HandlerError {
	return &HandlerError{cause: errors.WithStack(recovered), Path: path}
}

// IOError records that Connection.Receive or Connection.Send reported
// failure.
type IOError struct {
	cause error
	Op    string
}

func (e *IOError) Error() string { return "connection " + e.Op + " failed: " + e.cause.Error() }
func (e *IOError) Unwrap() error { return e.cause }

// NewIOError wraps a connection I/O failure with a stack trace.
func NewIOError(op string) *IOError {
	return &IOError{cause: errors.New("operation returned false"), Op: op}
}

// RegistrationError records a rejected Connect/RegisterMimeType call:
// duplicate registration or ID space exhaustion. The caller still gets
// the documented sentinel return (nil handle / INVALID id); this type
// exists only for the log line explaining why.
type RegistrationError struct {
	cause error
	What  string
}

func (e *RegistrationError) Error() string { return "registration rejected: " + e.What }
func (e *RegistrationError) Unwrap() error { return e.cause }

// NewRegistrationError wraps a rejected registration attempt with a
// stack trace.
func NewRegistrationError(what string) *RegistrationError {
	return &RegistrationError{cause: errors.New(what), What: what}
}
