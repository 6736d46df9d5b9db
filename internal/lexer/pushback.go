/*
 * Copyright (c) 2018 The Go Authors. All rights reserved.
 * Use of this source code is governed by a BSD-style license that can be found in the LICENSE file.
 */

package lexer

// inlineCap is the size of a PushBackString's inline buffer, a
// small-buffer-optimized byte accumulator sized to cover the common
// token lengths this package sees.
const inlineCap = 32

// PushBackString is a small-buffer-optimized byte accumulator: pushes
// go into a fixed inline array until it's exhausted, then spill to a
// heap slice. It exists because the request-line and header scanners
// in package parser build up short tokens one byte at a time and want to avoid
// an allocation for the common case (a short header name, a short
// media-type token).
type PushBackString struct {
	inline [inlineCap]byte
	n      int
	spill  []byte
}

// PushBack appends a single byte.
func (p *PushBackString) PushBack(c byte) {
	if p.spill == nil && p.n < inlineCap {
		p.inline[p.n] = c
		p.n++
		return
	}
	if p.spill == nil {
		p.spill = make([]byte, p.n, 2*inlineCap)
		copy(p.spill, p.inline[:p.n])
	}
	p.spill = append(p.spill, c)
	p.n++
}

// Append appends every byte of s.
func (p *PushBackString) Append(s string) {
	for i := 0; i < len(s); i++ {
		p.PushBack(s[i])
	}
}

// Empty reports whether no bytes have been pushed since construction or
// the last Clear.
func (p *PushBackString) Empty() bool {
	return p.n == 0
}

// Len reports the number of bytes accumulated.
func (p *PushBackString) Len() int {
	return p.n
}

// Clear resets the accumulator without releasing the spill buffer's
// capacity, so a PushBackString reused across many short tokens settles
// into not re-allocating.
func (p *PushBackString) Clear() {
	p.n = 0
	if p.spill != nil {
		p.spill = p.spill[:0]
	}
}

// String returns the accumulated bytes.
func (p *PushBackString) String() string {
	if p.spill != nil {
		return string(p.spill)
	}
	return string(p.inline[:p.n])
}

// Bytes returns the accumulated bytes as a slice. The slice aliases the
// accumulator's internal storage and is only valid until the next call
// that mutates the accumulator.
func (p *PushBackString) Bytes() []byte {
	if p.spill != nil {
		return p.spill
	}
	return p.inline[:p.n]
}
