/*
 * Copyright (c) 2018 The Go Authors. All rights reserved.
 * Use of this source code is governed by a BSD-style license that can be found in the LICENSE file.
 */

// Package charmap provides a 256-entry boolean lookup table over bytes,
// the same shape as net/http's isTokenTable literal, built from a list
// of characters instead of written out by hand.
package charmap

// Map is a 256-entry boolean table answering "is this byte a member".
// It is immutable once built; construct it once and share it, the same
// way isTokenTable- and validHostByte-style tables are built as
// package-level literals.
type Map [256]bool

// New builds a Map containing every byte in chars.
func New(chars string) Map {
	var m Map
	for i := 0; i < len(chars); i++ {
		m[chars[i]] = true
	}
	return m
}

// Contains reports whether b is a member of the map. Values outside
// 0-255 (i.e. the -1 EOF sentinel used throughout the lexer) are never
// members.
func (m Map) Contains(b int32) bool {
	if b < 0 || b > 255 {
		return false
	}
	return m[b]
}

var (
	// WhitespaceMap recognizes space and horizontal tab, the two bytes
	// get_non_whitespace skips but a bare line feed does not.
	WhitespaceMap = New(" \t")

	// TokenMap recognizes RFC 7230 "tchar" — the characters allowed in an
	// HTTP token (method names, header field names).
	TokenMap = New("!#$%&'*+-.^_`|~0123456789" +
		"abcdefghijklmnopqrstuvwxyz" +
		"ABCDEFGHIJKLMNOPQRSTUVWXYZ")

	// DigitMap recognizes ASCII decimal digits.
	DigitMap = New("0123456789")
)
