/*
 * Copyright (c) 2018 The Go Authors. All rights reserved.
 * Use of this source code is governed by a BSD-style license that can be found in the LICENSE file.
 */

// Package demux resolves a parsed request's (path, method, content-type,
// accept) tuple to a registered handler callback, the same role
// mux.ServeMux plays for net/http-shaped routing but keyed on a wider
// tuple than just a URL pattern.
package demux

import (
	"github.com/badu/hutznohmd/mime"
	"github.com/badu/hutznohmd/parser"
)

// ResponseWriter is the minimal surface a handler needs to produce a
// response, kept here (rather than importing a concrete response type)
// so this package never depends on package server — the same layering
// net/http uses to let ServeMux and Handler share a ResponseWriter
// interface instead of a concrete struct.
type ResponseWriter interface {
	SetStatus(code int)
	Header() map[string][]string
	SetContentType(mime.Pair)
	Write(data []byte) (int, error)
}

// HandlerFunc handles one request, reading it and writing a response
// through w.
type HandlerFunc func(req *parser.Request, w ResponseWriter)

// ID names one registration's routing key: the exact path and method it
// serves, the content-type it accepts as a request body, and the accept
// (response media type) it produces. mime.TypeWildcard/SubtypeWildcard
// in ContentType or Accept match anything on the corresponding side.
type ID struct {
	Path        string
	Method      parser.Method
	ContentType mime.Pair
	Accept      mime.Pair
}

type handlerRecord struct {
	id      ID
	cb      HandlerFunc
	enabled bool
}

// routeKey groups registrations that share a path and method: the unit
// Determine first narrows on before filtering by content-type and
// accept.
type routeKey struct {
	Path   string
	Method parser.Method
}

// Result is what Determine found, carrying enough detail for a request
// processor to pick a status code even when no callback matched: path
// known but wrong method, path and method known but no acceptable
// representation, or path altogether unknown.
type Result struct {
	PathKnown   bool
	MethodKnown bool
	Callback    HandlerFunc
}
