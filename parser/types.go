/*
 * Copyright (c) 2018 The Go Authors. All rights reserved.
 * Use of this source code is governed by a BSD-style license that can be found in the LICENSE file.
 */

// Package parser implements the incremental HTTP/1.x request parser
// request line, headers and optional body,
// read from a pull-based byte source. It never panics; every failure
// comes back as an Outcome other than OutcomeOK.
package parser

import "github.com/badu/hutznohmd/mime"

// Method is one of the methods the request-line grammar names, compared
// case-sensitively against the request line's token.
type Method int

const (
	MethodUnknown Method = iota
	MethodGet
	MethodHead
	MethodPost
	MethodPut
	MethodDelete
	MethodConnect
	MethodOptions
	MethodTrace
)

var methodNames = map[string]Method{
	"GET":     MethodGet,
	"HEAD":    MethodHead,
	"POST":    MethodPost,
	"PUT":     MethodPut,
	"DELETE":  MethodDelete,
	"CONNECT": MethodConnect,
	"OPTIONS": MethodOptions,
	"TRACE":   MethodTrace,
}

// Version is the parsed HTTP version token.
type Version int

const (
	VersionUnknown Version = iota
	Version10
	Version11
)

// Outcome is the structured result of a parse attempt. The parser never
// panics; every failure path returns one of these instead.
type Outcome int

const (
	OutcomeOK Outcome = iota
	OutcomeMalformed
	OutcomeUnsupportedVersion
	OutcomePayloadTooLarge
	OutcomeHeaderTooLong
	OutcomeTimeout
)

func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeMalformed:
		return "malformed"
	case OutcomeUnsupportedVersion:
		return "unsupported-version"
	case OutcomePayloadTooLarge:
		return "payload-too-large"
	case OutcomeHeaderTooLong:
		return "header-too-long"
	case OutcomeTimeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// Accept is one parsed element of an Accept header: a media type with
// its quality (0-1000, ×1000 of the 0.000-1.000 header value) and its
// specification grade (0-3, the negotiation tie-breaker: both wildcard
// scores 0, both concrete scores 3).
type Accept struct {
	Type    mime.Pair
	Quality int
	Grade   int
}

// MaxContentLength is the largest value a
// Content-Length header to declare: a signed 31-bit integer, matching
// the source this spec was distilled from.
const MaxContentLength = (1 << 31) - 1

// Request is a fully parsed HTTP/1.x request.
type Request struct {
	Method     Method
	Path       string
	Host       string
	Query      map[string][]string
	Fragment   string
	Version    Version
	Header     map[string][]string // keyed by lowercase header name
	HasContent bool
	ContentLen int64 // meaningful only if HasContent
	Content    []byte
	ContentType mime.Pair
	AcceptList  []Accept
	Expect      string
	HasDate     bool
	Date        int64 // epoch seconds, meaningful only if HasDate
	KeepAlive   bool
}

// HeaderValue returns the first value stored for a lowercase header
// name, and whether it was present at all.
func (r *Request) HeaderValue(name string) (string, bool) {
	vs, ok := r.Header[name]
	if !ok || len(vs) == 0 {
		return "", false
	}
	return vs[0], true
}

// AcceptCursor walks a Request's accept list in priority order,
// refilling out at each step, mirroring a C-style "accept(&mut handle, &mut
// out) -> bool" iterator, expressed as a small stateful cursor instead
// of an in/out-parameter pair.
type AcceptCursor struct {
	req *Request
	idx int
}

// Cursor returns a fresh AcceptCursor over r's accept list.
func (r *Request) Cursor() *AcceptCursor {
	return &AcceptCursor{req: r}
}

// Next refills out with the next accept entry in priority order and
// reports whether one was available.
func (c *AcceptCursor) Next(out *mime.Pair) bool {
	if c.idx >= len(c.req.AcceptList) {
		return false
	}
	*out = c.req.AcceptList[c.idx].Type
	c.idx++
	return true
}
