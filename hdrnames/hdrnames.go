/*
 * Copyright (c) 2018 The Go Authors. All rights reserved.
 * Use of this source code is governed by a BSD-style license that can be found in the LICENSE file.
 */

// Package hdrnames names the header fields the grammar in package
// parser recognizes, so handler code can refer to them without
// repeating string literals or risking a typo.
package hdrnames

// Request and response header field names, lowercase to match how
// package parser keys its header multimap.
const (
	Accept         = "accept"
	AcceptCharset  = "accept-charset"
	AcceptEncoding = "accept-encoding"
	AcceptLanguage = "accept-language"
	Allow          = "allow"
	CacheControl   = "cache-control"
	Connection     = "connection"
	ContentLength  = "content-length"
	ContentLocation = "content-location"
	ContentMD5     = "content-md5"
	ContentType    = "content-type"
	Date           = "date"
	ETag           = "etag"
	Expect         = "expect"
	From           = "from"
	Host           = "host"
	Location       = "location"
	Referer        = "referer"
	RetryAfter     = "retry-after"
	Server         = "server"
	UserAgent      = "user-agent"
)
