/*
 * Copyright (c) 2018 The Go Authors. All rights reserved.
 * Use of this source code is governed by a BSD-style license that can be found in the LICENSE file.
 */

package server

import "sync"

// ErrorHandlerFunc renders a response for a given error status, such as
// a custom 404 page.
type ErrorHandlerFunc func(status int, w *Response)

type errorHandlerRecord struct {
	cb      ErrorHandlerFunc
	enabled bool
}

// errorHandlerTable is the per-status-code registry from §4.6, kept
// under its own mutex — separate from the demux's, per the lock-order
// rule in §5 (MIME → demux → error-handler; a worker never holds two at
// once).
type errorHandlerTable struct {
	mu       sync.Mutex
	handlers map[int]*errorHandlerRecord
}

func newErrorHandlerTable() *errorHandlerTable {
	return &errorHandlerTable{handlers: make(map[int]*errorHandlerRecord)}
}

// ErrorHandlerHandle is the owning token SetErrorHandler returns. Close
// is the only supported way to release the registration.
type ErrorHandlerHandle struct {
	once  sync.Once
	table *errorHandlerTable
	code  int
}

// Close removes this handle's error handler registration. Idempotent.
func (h *ErrorHandlerHandle) Close() error {
	h.once.Do(func() {
		h.table.mu.Lock()
		delete(h.table.handlers, h.code)
		h.table.mu.Unlock()
	})
	return nil
}

// set registers cb for code, returning nil if code is already
// registered — the table only ever holds one handler per status.
func (t *errorHandlerTable) set(code int, cb ErrorHandlerFunc) *ErrorHandlerHandle {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, exists := t.handlers[code]; exists {
		return nil
	}
	t.handlers[code] = &errorHandlerRecord{cb: cb, enabled: true}
	return &ErrorHandlerHandle{table: t, code: code}
}

func (t *errorHandlerTable) reset(code int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, exists := t.handlers[code]; !exists {
		return false
	}
	delete(t.handlers, code)
	return true
}

func (t *errorHandlerTable) setEnabled(code int, enabled bool) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	rec, exists := t.handlers[code]
	if !exists {
		return false
	}
	rec.enabled = enabled
	return true
}

func (t *errorHandlerTable) isEnabled(code int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	rec, exists := t.handlers[code]
	return exists && rec.enabled
}

// lookup returns the registered, enabled handler for code, if any. The
// mutex is released before the caller invokes it — handlers run without
// any core mutex held, per §5.
func (t *errorHandlerTable) lookup(code int) (ErrorHandlerFunc, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	rec, exists := t.handlers[code]
	if !exists || !rec.enabled {
		return nil, false
	}
	return rec.cb, true
}
