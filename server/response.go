/*
 * Copyright (c) 2018 The Go Authors. All rights reserved.
 * Use of this source code is governed by a BSD-style license that can be found in the LICENSE file.
 */

package server

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"

	"github.com/badu/hutznohmd/hdrnames"
	"github.com/badu/hutznohmd/mime"
	"github.com/badu/hutznohmd/parser"
)

// Response accumulates a status, headers and an optional body for one
// request. It implements demux.ResponseWriter so handler callbacks can
// fill it in without this package depending on demux's HandlerFunc
// type in the other direction.
type Response struct {
	status      int
	header      map[string][]string
	body        []byte
	contentType mime.Pair
	reg         *mime.Registry
	version     parser.Version
	keepAlive   bool
}

// newResponse builds a Response that will render as version, with a
// Connection: close header once keepAlive is false — mirroring the
// request it answers, per RFC 7230 §6.1.
func newResponse(reg *mime.Registry, version parser.Version, keepAlive bool) *Response {
	return &Response{
		status:    200,
		header:    make(map[string][]string),
		reg:       reg,
		version:   version,
		keepAlive: keepAlive,
	}
}

// SetStatus sets the response's status code, overriding whatever
// default the processor assigned.
func (r *Response) SetStatus(code int) { r.status = code }

// Status returns the currently set status code.
func (r *Response) Status() int { return r.status }

// Header returns the response's header multimap, keyed by lowercase
// name, for direct manipulation (e.g. hdrnames.Location).
func (r *Response) Header() map[string][]string { return r.header }

// SetContentType records the media type of Write's payload; Render
// emits it as the Content-Type header.
func (r *Response) SetContentType(p mime.Pair) { r.contentType = p }

// Write appends data to the response body. Render computes
// Content-Length from the accumulated total, so handlers may call
// Write more than once.
func (r *Response) Write(data []byte) (int, error) {
	r.body = append(r.body, data...)
	return len(data), nil
}

// Render produces the deliberately minimal wire form: a status line,
// headers sorted by name for deterministic output, an empty line, then
// the body. It is intentionally not a full net/http-grade response
// writer — no chunked transfer, no trailers — matching the library's
// stated scope of an embeddable dispatcher, not a general web server.
func (r *Response) Render() []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s %d %s\r\n", versionText(r.version), r.status, statusText(r.status))

	if len(r.body) > 0 {
		r.header[hdrnames.ContentLength] = []string{strconv.Itoa(len(r.body))}
	}
	if r.contentType.Valid() {
		r.header[hdrnames.ContentType] = []string{mimeHeaderValue(r.reg, r.contentType)}
	}
	if !r.keepAlive {
		r.header[hdrnames.Connection] = []string{"close"}
	}

	names := make([]string, 0, len(r.header))
	for name := range r.header {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		for _, value := range r.header[name] {
			fmt.Fprintf(&buf, "%s: %s\r\n", name, value)
		}
	}
	buf.WriteString("\r\n")
	buf.Write(r.body)
	return buf.Bytes()
}

func mimeHeaderValue(reg *mime.Registry, p mime.Pair) string {
	typeName, ok := reg.TypeName(p.Type)
	if !ok {
		typeName = "application"
	}
	subtypeName, ok := reg.SubtypeName(p.Subtype)
	if !ok {
		subtypeName = "octet-stream"
	}
	return typeName + "/" + subtypeName
}

func versionText(v parser.Version) string {
	if v == parser.Version10 {
		return "HTTP/1.0"
	}
	return "HTTP/1.1"
}

func statusText(code int) string {
	switch code {
	case 200:
		return "OK"
	case 400:
		return "Bad Request"
	case 404:
		return "Not Found"
	case 405:
		return "Method Not Allowed"
	case 406:
		return "Not Acceptable"
	case 500:
		return "Internal Server Error"
	default:
		return "Unknown"
	}
}
