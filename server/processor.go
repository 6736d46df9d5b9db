/*
 * Copyright (c) 2018 The Go Authors. All rights reserved.
 * Use of this source code is governed by a BSD-style license that can be found in the LICENSE file.
 */

package server

import (
	"bufio"
	"fmt"

	"github.com/google/uuid"

	"github.com/badu/hutznohmd/demux"
	"github.com/badu/hutznohmd/herrors"
	"github.com/badu/hutznohmd/logging"
	"github.com/badu/hutznohmd/mime"
	"github.com/badu/hutznohmd/parser"
)

// Processor drives one connection's request/response cycle:
// IDLE → READING → PROCESSING → WRITING → IDLE while keep-alive holds,
// or CLOSED on any parse or I/O failure. A Processor is not safe to
// share across connections; construct one per connection (or reuse one
// sequentially), mirroring the per-connection-not-thread-safe
// constraint in §5.
type Processor struct {
	demux   *demux.Demux
	reg     *mime.Registry
	timeout int
	errors  *errorHandlerTable
	limits  parser.Limits
	log     logging.Logger
}

// Option configures a Processor at construction time.
type Option func(*Processor)

// WithLogger attaches a structured logger; nil is a no-op.
func WithLogger(l logging.Logger) Option {
	return func(p *Processor) {
		if l != nil {
			p.log = l
		}
	}
}

// WithLimits overrides the default header/body size limits package
// parser enforces.
func WithLimits(l parser.Limits) Option {
	return func(p *Processor) { p.limits = l }
}

// New returns a Processor that resolves handlers through d and bounds
// each blocking receive to connectionTimeoutSecs, mirroring
// create_request_processor(demux_query, connection_timeout_secs).
func New(d *demux.Demux, reg *mime.Registry, connectionTimeoutSecs int, opts ...Option) *Processor {
	p := &Processor{
		demux:   d,
		reg:     reg,
		timeout: connectionTimeoutSecs,
		errors:  newErrorHandlerTable(),
		log:     logging.Discard,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// SetErrorHandler registers cb to render responses for status, returning
// nil if status is already registered.
func (p *Processor) SetErrorHandler(status int, cb ErrorHandlerFunc) *ErrorHandlerHandle {
	return p.errors.set(status, cb)
}

// ResetErrorHandler removes status's registered handler, if any.
func (p *Processor) ResetErrorHandler(status int) bool { return p.errors.reset(status) }

// EnableErrorHandler re-enables a disabled handler for status.
func (p *Processor) EnableErrorHandler(status int) bool { return p.errors.setEnabled(status, true) }

// DisableErrorHandler suspends status's handler without unregistering
// it.
func (p *Processor) DisableErrorHandler(status int) bool { return p.errors.setEnabled(status, false) }

// IsErrorHandlerEnabled reports whether status currently has an
// enabled handler.
func (p *Processor) IsErrorHandlerEnabled(status int) bool { return p.errors.isEnabled(status) }

// HandleOneRequest reads, resolves, dispatches and answers exactly one
// request on conn. It returns true if conn should stay open for
// another request (HTTP/1.1 default, or an explicit
// "Connection: keep-alive"), false otherwise — including every failure
// path, which always means the connection transitions to CLOSED.
func (p *Processor) HandleOneRequest(conn Connection) bool {
	connID := uuid.New()
	clog := p.log.WithField("connection_id", connID.String())

	conn.SetLingeringTimeout(p.timeout)
	br := bufio.NewReader(connReader{conn: conn})

	if _, err := br.Peek(1); err != nil {
		clog.Debugf("connection closed or timed out before a request arrived")
		return false
	}

	req, outcome := parser.Parse(br, p.reg, p.limits)
	if outcome != parser.OutcomeOK {
		clog.WithError(herrors.NewParseError(req.Path, outcome.String())).Warnf("malformed request")
		resp := newResponse(p.reg, req.Version, false)
		p.renderError(resp, outcomeStatus(outcome))
		conn.Send(resp.Render())
		return false
	}

	result := p.demux.Determine(req)
	resp := newResponse(p.reg, req.Version, req.KeepAlive)

	switch {
	case result.Callback != nil:
		p.invoke(clog, req, resp, result.Callback)
	case !result.PathKnown:
		clog.WithError(herrors.NewResourceError(methodName(req.Method), req.Path)).Infof("path unknown")
		p.renderError(resp, 404)
	case !result.MethodKnown:
		p.renderError(resp, 405)
	default:
		p.renderError(resp, 406)
	}

	if !conn.Send(resp.Render()) {
		clog.WithError(herrors.NewIOError("send")).Warnf("failed to write response")
		return false
	}

	return req.KeepAlive
}

// invoke calls cb with panic recovery: an abnormally returning handler
// is treated as a 500, per §4.6 step 5.
func (p *Processor) invoke(clog logging.Logger, req *parser.Request, resp *Response, cb demux.HandlerFunc) {
	defer func() {
		if r := recover(); r != nil {
			clog.WithError(herrors.NewHandlerError(req.Path, fmt.Errorf("%v", r))).Errorf("handler panicked")
			p.renderError(resp, 500)
		}
	}()
	cb(req, resp)
}

// renderError applies any registered, enabled error handler for
// status, falling back to a bare status line with no body.
func (p *Processor) renderError(resp *Response, status int) {
	resp.SetStatus(status)
	if cb, ok := p.errors.lookup(status); ok {
		cb(status, resp)
	}
}

func outcomeStatus(o parser.Outcome) int {
	switch o {
	case parser.OutcomeMalformed, parser.OutcomeUnsupportedVersion, parser.OutcomeHeaderTooLong, parser.OutcomePayloadTooLarge:
		return 400
	case parser.OutcomeTimeout:
		return 408
	default:
		return 400
	}
}

func methodName(m parser.Method) string {
	switch m {
	case parser.MethodGet:
		return "GET"
	case parser.MethodHead:
		return "HEAD"
	case parser.MethodPost:
		return "POST"
	case parser.MethodPut:
		return "PUT"
	case parser.MethodDelete:
		return "DELETE"
	case parser.MethodConnect:
		return "CONNECT"
	case parser.MethodOptions:
		return "OPTIONS"
	case parser.MethodTrace:
		return "TRACE"
	default:
		return "UNKNOWN"
	}
}
