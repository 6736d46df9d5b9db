/*
 * Copyright (c) 2018 The Go Authors. All rights reserved.
 * Use of this source code is governed by a BSD-style license that can be found in the LICENSE file.
 */

package demux

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/badu/hutznohmd/mime"
	"github.com/badu/hutznohmd/parser"
)

type fakeWriter struct {
	status int
	header map[string][]string
	body   []byte
	ct     mime.Pair
}

func newFakeWriter() *fakeWriter { return &fakeWriter{header: make(map[string][]string)} }

func (w *fakeWriter) SetStatus(code int)           { w.status = code }
func (w *fakeWriter) Header() map[string][]string  { return w.header }
func (w *fakeWriter) SetContentType(p mime.Pair)   { w.ct = p }
func (w *fakeWriter) Write(data []byte) (int, error) {
	w.body = append(w.body, data...)
	return len(data), nil
}

func newTestRegistry(t *testing.T) *mime.Registry {
	t.Helper()
	return mime.NewRegistry()
}

func TestConnectAndDetermineExactMatch(t *testing.T) {
	reg := newTestRegistry(t)
	d := New(reg)

	id := ID{Path: "/items", Method: parser.MethodGet, ContentType: mime.Wildcard, Accept: mime.Wildcard}
	called := false
	h, err := d.Connect(id, func(req *parser.Request, w ResponseWriter) {
		called = true
		w.SetStatus(200)
	})
	require.NoError(t, err)
	require.NotNil(t, h)

	req := &parser.Request{Path: "/items", Method: parser.MethodGet, AcceptList: []parser.Accept{{Type: mime.Wildcard}}}
	result := d.Determine(req)
	require.NotNil(t, result.Callback)
	require.True(t, result.PathKnown)
	require.True(t, result.MethodKnown)

	w := newFakeWriter()
	result.Callback(req, w)
	assert.True(t, called)
	assert.Equal(t, 200, w.status)
}

func TestConnectDuplicateExactTupleFails(t *testing.T) {
	reg := newTestRegistry(t)
	d := New(reg)

	id := ID{Path: "/x", Method: parser.MethodGet, Accept: mime.Wildcard}
	_, err := d.Connect(id, func(*parser.Request, ResponseWriter) {})
	require.NoError(t, err)

	_, err = d.Connect(id, func(*parser.Request, ResponseWriter) {})
	assert.ErrorIs(t, err, ErrAlreadyRegistered)
}

func TestDisconnectViaHandleIsIdempotent(t *testing.T) {
	reg := newTestRegistry(t)
	d := New(reg)

	id := ID{Path: "/x", Method: parser.MethodGet, Accept: mime.Wildcard}
	h, err := d.Connect(id, func(*parser.Request, ResponseWriter) {})
	require.NoError(t, err)
	require.Equal(t, 1, d.Len())

	require.NoError(t, h.Close())
	assert.Equal(t, 0, d.Len())

	// Closing again must not panic or re-disconnect something else.
	require.NoError(t, h.Close())
	assert.Equal(t, 0, d.Len())
}

func TestDeterminePathUnknownReportsNotFound(t *testing.T) {
	reg := newTestRegistry(t)
	d := New(reg)
	req := &parser.Request{Path: "/missing", Method: parser.MethodGet}
	result := d.Determine(req)
	assert.False(t, result.PathKnown)
	assert.Nil(t, result.Callback)
}

func TestDetermineMethodUnknownReportsMethodNotAllowed(t *testing.T) {
	reg := newTestRegistry(t)
	d := New(reg)
	id := ID{Path: "/x", Method: parser.MethodGet, Accept: mime.Wildcard}
	_, err := d.Connect(id, func(*parser.Request, ResponseWriter) {})
	require.NoError(t, err)

	req := &parser.Request{Path: "/x", Method: parser.MethodPost}
	result := d.Determine(req)
	assert.True(t, result.PathKnown)
	assert.False(t, result.MethodKnown)
	assert.Nil(t, result.Callback)
}

func TestDetermineNoAcceptableRepresentationReportsKnownButNoCallback(t *testing.T) {
	reg := newTestRegistry(t)
	d := New(reg)
	jsonType := reg.RegisterType("application")
	_ = jsonType
	textPlain := mime.Pair{Type: mime.TypeText, Subtype: mime.SubtypePlain}

	id := ID{Path: "/x", Method: parser.MethodGet, Accept: textPlain}
	_, err := d.Connect(id, func(*parser.Request, ResponseWriter) {})
	require.NoError(t, err)

	xmlSub := reg.RegisterSubtype("xml")
	req := &parser.Request{
		Path:       "/x",
		Method:     parser.MethodGet,
		AcceptList: []parser.Accept{{Type: mime.Pair{Type: mime.TypeApplication, Subtype: xmlSub}}},
	}
	result := d.Determine(req)
	assert.True(t, result.PathKnown)
	assert.True(t, result.MethodKnown)
	assert.Nil(t, result.Callback)
}

func TestDetermineWildcardAcceptMatchesAnyRegistration(t *testing.T) {
	reg := newTestRegistry(t)
	d := New(reg)
	textPlain := mime.Pair{Type: mime.TypeText, Subtype: mime.SubtypePlain}
	id := ID{Path: "/x", Method: parser.MethodGet, Accept: textPlain}
	_, err := d.Connect(id, func(*parser.Request, ResponseWriter) {})
	require.NoError(t, err)

	req := &parser.Request{
		Path:       "/x",
		Method:     parser.MethodGet,
		AcceptList: []parser.Accept{{Type: mime.Wildcard}},
	}
	result := d.Determine(req)
	assert.NotNil(t, result.Callback)
}

func TestConcurrentConnectDisconnect(t *testing.T) {
	reg := newTestRegistry(t)
	d := New(reg)

	const n = 50
	handles := make([]*Handle, n)
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			id := ID{Path: "/concurrent", Method: parser.MethodGet, Accept: mime.Pair{Type: mime.Type(100 + i), Subtype: mime.SubtypeWildcard}}
			h, err := d.Connect(id, func(*parser.Request, ResponseWriter) {})
			if err == nil {
				handles[i] = h
			}
		}(i)
	}
	wg.Wait()

	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			if handles[i] != nil {
				_ = handles[i].Close()
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 0, d.Len())
}
