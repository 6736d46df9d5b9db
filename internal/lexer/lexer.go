/*
 * Copyright (c) 2018 The Go Authors. All rights reserved.
 * Use of this source code is governed by a BSD-style license that can be found in the LICENSE file.
 */

// Package lexer implements the pull-based byte scanner the HTTP request
// parser is built on. It normalizes line endings
// (CR, LF, CRLF all become LF) and implements RFC 2616-style header
// folding: a line feed immediately followed by a space or tab collapses
// to a single space, letting the parser treat a folded continuation
// line as if it were never split.
//
// The lexer owns neither the byte source nor its buffering; it is
// handed two closures (Get, Peek) and normalizes whatever they produce,
// expressed in Go as plain function values instead of a
// function-pointer/void* pair.
package lexer

import (
	"github.com/badu/hutznohmd/internal/charmap"
)

// EOF is returned by Get and Peek once the underlying source is
// exhausted.
const EOF int32 = -1

// Lexer normalizes a byte-pull source for HTTP/1.x parsing.
type Lexer struct {
	get      func() int32
	peek     func() int32
	lastChar int32
}

// New builds a Lexer around get/peek closures that each return one byte
// (0-255) or EOF.
func New(get, peek func() int32) *Lexer {
	return &Lexer{get: get, peek: peek, lastChar: 0}
}

// Get returns the next normalized byte: CR, LF and CRLF all become a
// single LF; a LF directly followed by SP or HT (a folded continuation
// line) is reported as a single SP, with the following whitespace byte
// consumed so the caller never observes the fold.
func (l *Lexer) Get() int32 {
	result := l.get()
	if result == '\r' {
		if l.peek() == '\n' {
			l.get()
		}
		result = '\n'
	}

	if result == '\n' && l.lastChar != '\n' {
		if n := l.peek(); n == ' ' || n == '\t' {
			l.get()
			result = ' '
		}
	}

	l.lastChar = result
	return result
}

// GetNonWhitespace returns the next byte that is not SP or HT. A bare
// LF is not skipped: it terminates a header line.
func (l *Lexer) GetNonWhitespace() int32 {
	var result int32
	for {
		result = l.Get()
		if result != ' ' && result != '\t' {
			return result
		}
	}
}

// GetUnsignedIntegerFD parses a decimal integer starting at character
// (already fetched by the caller) and returns the parsed value plus the
// next unconsumed character. If character is not a digit it returns -1
// and character unchanged; if the accumulated value would overflow an
// int32 it returns -1 and the digit that would have overflowed it.
func (l *Lexer) GetUnsignedIntegerFD(character int32) (value int32, next int32) {
	if character < '0' || character > '9' {
		return -1, character
	}
	var result int32
	for character >= '0' && character <= '9' {
		digit := character - '0'
		if result > (1<<31-1-digit)/10 {
			return -1, character
		}
		result = result*10 + digit
		character = l.Get()
	}
	return result, character
}

// ParseComment consumes an RFC 2616 comment starting at the opening
// '(' already held in character, supporting arbitrary nesting, and
// returns the next unconsumed character plus whether a well-formed,
// terminated comment was found.
func (l *Lexer) ParseComment(character int32) (next int32, ok bool) {
	if character != '(' {
		return character, false
	}
	character = l.Get()
	depth := 1
	for character >= 0 {
		switch character {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return l.Get(), true
			}
		}
		character = l.Get()
	}
	return character, false
}

// SkipWhile advances character while it belongs to m, appending each
// byte into dst, and returns the first character outside m.
func SkipWhile(l *Lexer, character int32, m charmap.Map, dst *PushBackString) int32 {
	for character >= 0 && m.Contains(character) {
		dst.PushBack(byte(character))
		character = l.Get()
	}
	return character
}
