/*
 * Copyright (c) 2018 The Go Authors. All rights reserved.
 * Use of this source code is governed by a BSD-style license that can be found in the LICENSE file.
 */

// Package mime interns MIME type and subtype strings into compact
// numeric identifiers, so Accept/Content-Type negotiation in package
// demux reduces to integer comparisons instead of repeated string
// comparisons.
//
// This directory previously held an RFC 2388 multipart/form-data reader
// and writer (multipart_reader.go, multipart_writer.go, part.go,
// form.go, file_header.go); none of that survives here. Multipart form
// parsing is a different concern from media-type interning and nothing
// in this package's data model or operations calls for it (see
// DESIGN.md). The package name and its doc-comment density are kept;
// the content is new.
package mime

// Type is an interned MIME top-level type identifier (e.g. the "text"
// in "text/plain"). The zero value is Invalid.
type Type uint8

// Subtype is an interned MIME subtype identifier (e.g. the "plain" in
// "text/plain"). The zero value is Invalid.
type Subtype uint16

const (
	// TypeInvalid marks a type that failed to parse or register.
	TypeInvalid Type = 0
	// TypeNone marks the absence of a type (as opposed to a wildcard).
	TypeNone Type = 1
	// TypeWildcard is the pre-registered "*" type, matching anything.
	TypeWildcard Type = 2

	// Well-known pre-registered types, seeded in a fixed order. Every
	// fresh Registry assigns these identically, so they are stable
	// constants rather than per-instance state.
	TypeText        Type = 3
	TypeApplication Type = 4
	TypeAudio       Type = 5
	TypeImage       Type = 6
	TypeVideo       Type = 7

	firstUserType = 8
	maxUserType   = 255 // 8-bit ID space, minus sentinels and seeded types.
)

const (
	// SubtypeInvalid marks a subtype that failed to parse or register.
	SubtypeInvalid Subtype = 0
	// SubtypeNone marks the absence of a subtype.
	SubtypeNone Subtype = 1
	// SubtypeWildcard is the pre-registered "*" subtype.
	SubtypeWildcard Subtype = 2

	// SubtypePlain is the pre-registered "plain" subtype.
	SubtypePlain Subtype = 3

	firstUserSubtype = 4
	maxUserSubtype   = 65535 // 16-bit ID space, minus sentinels and seeds.
)

// Pair is a parsed media type: a (Type, Subtype) tuple. It is the key
// half of a request-handler key and the element type of a
// request's Accept list.
type Pair struct {
	Type    Type
	Subtype Subtype
}

// Wildcard is the "*/*" media type.
var Wildcard = Pair{Type: TypeWildcard, Subtype: SubtypeWildcard}

// Valid reports whether p is structurally usable: both halves must be
// non-invalid, and either both are NONE or neither is (a wildcard half
// paired with a concrete half is still valid — wildcard matching is a
// demux-time concern, not a validity concern). Valid consults no
// registry, so it does not check that the halves are registered;
// Registry.IsValid does.
func (p Pair) Valid() bool {
	if p.Type == TypeInvalid || p.Subtype == SubtypeInvalid {
		return false
	}
	if p.Type == TypeNone || p.Subtype == SubtypeNone {
		return p.Type == TypeNone && p.Subtype == SubtypeNone
	}
	return true
}
