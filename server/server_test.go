/*
 * Copyright (c) 2018 The Go Authors. All rights reserved.
 * Use of this source code is governed by a BSD-style license that can be found in the LICENSE file.
 */

package server

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/badu/hutznohmd/demux"
	"github.com/badu/hutznohmd/mime"
	"github.com/badu/hutznohmd/parser"
)

type fakeConn struct {
	in  *bytes.Reader
	out bytes.Buffer
}

func newFakeConn(request string) *fakeConn {
	return &fakeConn{in: bytes.NewReader([]byte(request))}
}

func (c *fakeConn) Receive(buf []byte) (int, bool) {
	n, err := c.in.Read(buf)
	return n, err == nil
}

func (c *fakeConn) Send(data []byte) bool {
	c.out.Write(data)
	return true
}

func (c *fakeConn) SetLingeringTimeout(int) bool { return true }

func TestHandleOneRequestHTTP11KeepsConnectionOpen(t *testing.T) {
	reg := mime.NewRegistry()
	d := demux.New(reg)
	_, err := d.Connect(demux.ID{Path: "/items", Method: parser.MethodGet, ContentType: mime.Wildcard, Accept: mime.Wildcard},
		func(req *parser.Request, w demux.ResponseWriter) {
			w.SetStatus(200)
			w.Write([]byte("ok"))
		})
	require.NoError(t, err)

	p := New(d, reg, 30)
	conn := newFakeConn("GET /items HTTP/1.1\r\nHost: example.com\r\n\r\n")
	keepOpen := p.HandleOneRequest(conn)

	assert.True(t, keepOpen)
	assert.True(t, strings.HasPrefix(conn.out.String(), "HTTP/1.1 200"))
	assert.Contains(t, conn.out.String(), "ok")
}

func TestHandleOneRequestHTTP10Closes(t *testing.T) {
	reg := mime.NewRegistry()
	d := demux.New(reg)
	_, err := d.Connect(demux.ID{Path: "/", Method: parser.MethodGet, ContentType: mime.Wildcard, Accept: mime.Wildcard},
		func(req *parser.Request, w demux.ResponseWriter) { w.SetStatus(200) })
	require.NoError(t, err)

	p := New(d, reg, 30)
	conn := newFakeConn("GET / HTTP/1.0\r\n\r\n")
	keepOpen := p.HandleOneRequest(conn)

	assert.False(t, keepOpen)
	assert.True(t, strings.HasPrefix(conn.out.String(), "HTTP/1.0 200"))
	assert.Contains(t, conn.out.String(), "connection: close")
}

func TestHandleOneRequestPathUnknownIs404(t *testing.T) {
	reg := mime.NewRegistry()
	d := demux.New(reg)
	p := New(d, reg, 30)
	conn := newFakeConn("GET /missing HTTP/1.1\r\n\r\n")
	p.HandleOneRequest(conn)
	assert.True(t, strings.HasPrefix(conn.out.String(), "HTTP/1.1 404"))
}

func TestHandleOneRequestMethodUnknownIs405(t *testing.T) {
	reg := mime.NewRegistry()
	d := demux.New(reg)
	_, err := d.Connect(demux.ID{Path: "/items", Method: parser.MethodGet, ContentType: mime.Wildcard, Accept: mime.Wildcard},
		func(*parser.Request, demux.ResponseWriter) {})
	require.NoError(t, err)

	p := New(d, reg, 30)
	conn := newFakeConn("POST /items HTTP/1.1\r\nContent-Length: 0\r\n\r\n")
	p.HandleOneRequest(conn)
	assert.True(t, strings.HasPrefix(conn.out.String(), "HTTP/1.1 405"))
}

func TestHandleOneRequestNoAcceptableRepresentationIs406(t *testing.T) {
	reg := mime.NewRegistry()
	d := demux.New(reg)
	textPlain := mime.Pair{Type: mime.TypeText, Subtype: mime.SubtypePlain}
	_, err := d.Connect(demux.ID{Path: "/items", Method: parser.MethodGet, ContentType: mime.Wildcard, Accept: textPlain},
		func(*parser.Request, demux.ResponseWriter) {})
	require.NoError(t, err)

	p := New(d, reg, 30)
	conn := newFakeConn("GET /items HTTP/1.1\r\nAccept: application/xml\r\n\r\n")
	p.HandleOneRequest(conn)
	assert.True(t, strings.HasPrefix(conn.out.String(), "HTTP/1.1 406"))
}

func TestHandleOneRequestMalformedContentMD5Is400(t *testing.T) {
	reg := mime.NewRegistry()
	d := demux.New(reg)
	p := New(d, reg, 30)
	body := "hello"
	raw := "POST /items HTTP/1.1\r\nContent-Length: 5\r\nContent-MD5: bm90YW1hdGNo\r\n\r\n" + body
	conn := newFakeConn(raw)
	p.HandleOneRequest(conn)
	assert.True(t, strings.HasPrefix(conn.out.String(), "HTTP/1.1 400"))
}

func TestHandleOneRequestHandlerPanicIs500(t *testing.T) {
	reg := mime.NewRegistry()
	d := demux.New(reg)
	_, err := d.Connect(demux.ID{Path: "/boom", Method: parser.MethodGet, ContentType: mime.Wildcard, Accept: mime.Wildcard},
		func(*parser.Request, demux.ResponseWriter) { panic("boom") })
	require.NoError(t, err)

	p := New(d, reg, 30)
	conn := newFakeConn("GET /boom HTTP/1.1\r\n\r\n")
	p.HandleOneRequest(conn)
	assert.True(t, strings.HasPrefix(conn.out.String(), "HTTP/1.1 500"))
}

func TestSetErrorHandlerOverridesDefaultBody(t *testing.T) {
	reg := mime.NewRegistry()
	d := demux.New(reg)
	p := New(d, reg, 30)

	h := p.SetErrorHandler(404, func(status int, w *Response) {
		w.Write([]byte("custom not found"))
	})
	require.NotNil(t, h)

	conn := newFakeConn("GET /missing HTTP/1.1\r\n\r\n")
	p.HandleOneRequest(conn)
	assert.Contains(t, conn.out.String(), "custom not found")
}

func TestSetErrorHandlerDuplicateReturnsNil(t *testing.T) {
	reg := mime.NewRegistry()
	d := demux.New(reg)
	p := New(d, reg, 30)

	require.NotNil(t, p.SetErrorHandler(500, func(int, *Response) {}))
	assert.Nil(t, p.SetErrorHandler(500, func(int, *Response) {}))
}

func TestDisabledErrorHandlerIsSkipped(t *testing.T) {
	reg := mime.NewRegistry()
	d := demux.New(reg)
	p := New(d, reg, 30)

	p.SetErrorHandler(404, func(status int, w *Response) { w.Write([]byte("custom")) })
	require.True(t, p.DisableErrorHandler(404))
	assert.False(t, p.IsErrorHandlerEnabled(404))

	conn := newFakeConn("GET /missing HTTP/1.1\r\n\r\n")
	p.HandleOneRequest(conn)
	assert.NotContains(t, conn.out.String(), "custom")
}

func TestHandleOneRequestOnClosedConnectionReturnsFalse(t *testing.T) {
	reg := mime.NewRegistry()
	d := demux.New(reg)
	p := New(d, reg, 30)
	conn := newFakeConn("")
	assert.False(t, p.HandleOneRequest(conn))
}
