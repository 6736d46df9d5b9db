/*
 * Copyright (c) 2018 The Go Authors. All rights reserved.
 * Use of this source code is governed by a BSD-style license that can be found in the LICENSE file.
 */

package parser

import (
	"bufio"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/badu/hutznohmd/internal/codec"
	"github.com/badu/hutznohmd/mime"
)

func parseString(t *testing.T, raw string, limits Limits) (*Request, Outcome) {
	t.Helper()
	req, outcome := Parse(bufio.NewReader(strings.NewReader(raw)), mime.NewRegistry(), limits)
	require.NotNil(t, req)
	return req, outcome
}

func TestParseSimpleGetKeepAlive(t *testing.T) {
	req, outcome := parseString(t, "GET /foo HTTP/1.1\r\nHost: example.com\r\n\r\n", Limits{})
	require.Equal(t, OutcomeOK, outcome)
	assert.Equal(t, MethodGet, req.Method)
	assert.Equal(t, "/foo", req.Path)
	assert.Equal(t, "example.com", req.Host)
	assert.True(t, req.KeepAlive)
	assert.False(t, req.HasContent)
}

func TestParseHTTP10DefaultsToClose(t *testing.T) {
	req, outcome := parseString(t, "GET / HTTP/1.0\r\n\r\n", Limits{})
	require.Equal(t, OutcomeOK, outcome)
	assert.False(t, req.KeepAlive)
}

func TestParseHTTP10HonorsKeepAliveHeader(t *testing.T) {
	req, outcome := parseString(t, "GET / HTTP/1.0\r\nConnection: keep-alive\r\n\r\n", Limits{})
	require.Equal(t, OutcomeOK, outcome)
	assert.True(t, req.KeepAlive)
}

func TestParseHTTP11HonorsCloseHeader(t *testing.T) {
	req, outcome := parseString(t, "GET / HTTP/1.1\r\nConnection: close\r\n\r\n", Limits{})
	require.Equal(t, OutcomeOK, outcome)
	assert.False(t, req.KeepAlive)
}

func TestParseUnsupportedVersion(t *testing.T) {
	_, outcome := parseString(t, "GET / HTTP/2.0\r\n\r\n", Limits{})
	assert.Equal(t, OutcomeUnsupportedVersion, outcome)
}

func TestParseRequestBody(t *testing.T) {
	body := "hello"
	raw := "POST /items HTTP/1.1\r\n" +
		"Host: example.com\r\n" +
		"Content-Type: text/plain\r\n" +
		"Content-Length: " + "5" + "\r\n" +
		"\r\n" + body
	req, outcome := parseString(t, raw, Limits{})
	require.Equal(t, OutcomeOK, outcome)
	assert.True(t, req.HasContent)
	assert.Equal(t, int64(5), req.ContentLen)
	assert.Equal(t, []byte(body), req.Content)
	assert.Equal(t, mime.TypeText, req.ContentType.Type)
	assert.Equal(t, mime.SubtypePlain, req.ContentType.Subtype)
}

func TestParseContentMD5MismatchIsMalformed(t *testing.T) {
	body := "hello"
	wrongSum := codec.EncodeBase64([]byte("0123456789abcdef"))
	raw := "POST /items HTTP/1.1\r\n" +
		"Content-Length: 5\r\n" +
		"Content-MD5: " + wrongSum + "\r\n" +
		"\r\n" + body
	_, outcome := parseString(t, raw, Limits{})
	assert.Equal(t, OutcomeMalformed, outcome)
}

func TestParseContentMD5MatchIsOK(t *testing.T) {
	body := "hello"
	sum := codec.MD5Sum([]byte(body))
	raw := "POST /items HTTP/1.1\r\n" +
		"Content-Length: 5\r\n" +
		"Content-MD5: " + codec.EncodeBase64(sum[:]) + "\r\n" +
		"\r\n" + body
	_, outcome := parseString(t, raw, Limits{})
	assert.Equal(t, OutcomeOK, outcome)
}

func TestParseAcceptHeaderPriority(t *testing.T) {
	raw := "GET / HTTP/1.1\r\nAccept: text/plain;q=0.5, text/*;q=0.9, */*\r\n\r\n"
	req, outcome := parseString(t, raw, Limits{})
	require.Equal(t, OutcomeOK, outcome)
	require.Len(t, req.AcceptList, 3)
	// Quality is the primary sort key: */* carries the default q=1.0 and
	// comes first, and text/* at q=0.9 outranks text/plain at q=0.5
	// despite being less specific.
	assert.Equal(t, mime.Wildcard, req.AcceptList[0].Type)
	assert.Equal(t, mime.TypeText, req.AcceptList[1].Type.Type)
	assert.Equal(t, mime.SubtypeWildcard, req.AcceptList[1].Type.Subtype)
	assert.Equal(t, mime.TypeText, req.AcceptList[2].Type.Type)
	assert.Equal(t, mime.SubtypePlain, req.AcceptList[2].Type.Subtype)
}

func TestParsePayloadTooLarge(t *testing.T) {
	raw := "POST /items HTTP/1.1\r\nContent-Length: 100\r\n\r\n" + strings.Repeat("x", 100)
	_, outcome := parseString(t, raw, Limits{MaxBodyBytes: 10})
	assert.Equal(t, OutcomePayloadTooLarge, outcome)
}

func TestParseHeaderTooLong(t *testing.T) {
	raw := "GET / HTTP/1.1\r\nX-Long: " + strings.Repeat("a", 500) + "\r\n\r\n"
	_, outcome := parseString(t, raw, Limits{MaxHeaderBytes: 32})
	assert.Equal(t, OutcomeHeaderTooLong, outcome)
}

func TestParseMalformedRequestLine(t *testing.T) {
	_, outcome := parseString(t, "GET /no-version-here\r\n\r\n", Limits{})
	assert.Equal(t, OutcomeMalformed, outcome)
}

func TestParseWildcardTarget(t *testing.T) {
	req, outcome := parseString(t, "OPTIONS * HTTP/1.1\r\n\r\n", Limits{})
	require.Equal(t, OutcomeOK, outcome)
	assert.Equal(t, MethodOptions, req.Method)
	assert.Equal(t, "*", req.Path)
}
