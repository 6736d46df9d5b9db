/*
 * Copyright (c) 2018 The Go Authors. All rights reserved.
 * Use of this source code is governed by a BSD-style license that can be found in the LICENSE file.
 */

package mime

import (
	"strings"
	"sync"

	"github.com/badu/hutznohmd/internal/trie"
)

// Registry interns MIME type and subtype strings, keeping everything
// under one lock. It holds two tries plus two reverse maps: the same
// shape used twice, once for Type and once for Subtype.
type Registry struct {
	mu sync.Mutex

	types    *trie.Trie[Type]
	subtypes *trie.Trie[Subtype]

	typeNames    map[Type]string
	subtypeNames map[Subtype]string

	nextType    int
	nextSubtype int
}

// NewRegistry returns a Registry seeded with the wildcard type/subtype
// and a handful of well-known types: TEXT/PLAIN,
// APPLICATION, AUDIO, IMAGE, VIDEO and PLAIN.
func NewRegistry() *Registry {
	r := &Registry{
		types:        trie.New[Type](),
		subtypes:     trie.New[Subtype](),
		typeNames:    make(map[Type]string),
		subtypeNames: make(map[Subtype]string),
		nextType:     firstUserType,
		nextSubtype:  firstUserSubtype,
	}

	mustInsertType(r, "*", TypeWildcard)
	mustInsertSubtype(r, "*", SubtypeWildcard)

	mustInsertType(r, "text", TypeText)
	mustInsertType(r, "application", TypeApplication)
	mustInsertType(r, "audio", TypeAudio)
	mustInsertType(r, "image", TypeImage)
	mustInsertType(r, "video", TypeVideo)
	mustInsertSubtype(r, "plain", SubtypePlain)

	return r
}

func mustInsertType(r *Registry, s string, v Type) {
	if !r.types.Insert(s, v) {
		panic("mime: seed type collision for " + s)
	}
	r.typeNames[v] = s
}

func mustInsertSubtype(r *Registry, s string, v Subtype) {
	if !r.subtypes.Insert(s, v) {
		panic("mime: seed subtype collision for " + s)
	}
	r.subtypeNames[v] = s
}

// RegisterType interns s as a new top-level type. It returns
// TypeInvalid if s is empty, already registered (case-insensitively),
// or the 8-bit ID space (248 user slots, after the three sentinels and
// the five seeded well-known types) is exhausted.
func (r *Registry) RegisterType(s string) Type {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s == "" || r.nextType > maxUserType {
		return TypeInvalid
	}
	v := Type(r.nextType)
	if !r.types.Insert(s, v) {
		return TypeInvalid
	}
	r.nextType++
	r.typeNames[v] = s
	return v
}

// RegisterSubtype interns s as a new subtype, with a 16-bit ID space.
func (r *Registry) RegisterSubtype(s string) Subtype {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s == "" || r.nextSubtype > maxUserSubtype {
		return SubtypeInvalid
	}
	v := Subtype(r.nextSubtype)
	if !r.subtypes.Insert(s, v) {
		return SubtypeInvalid
	}
	r.nextSubtype++
	r.subtypeNames[v] = s
	return v
}

// UnregisterType removes a previously registered type, freeing its name
// (but not its numeric slot) for reuse with a different value. It
// reports false if t was never registered.
func (r *Registry) UnregisterType(t Type) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	name, ok := r.typeNames[t]
	if !ok {
		return false
	}
	result := r.types.Erase(name)
	// The reverse-map entry is dropped whatever the trie's result,
	// the way mime_data.hpp does.
	delete(r.typeNames, t)
	return result
}

// UnregisterSubtype removes a previously registered subtype.
func (r *Registry) UnregisterSubtype(s Subtype) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	name, ok := r.subtypeNames[s]
	if !ok {
		return false
	}
	result := r.subtypes.Erase(name)
	delete(r.subtypeNames, s)
	return result
}

// IsTypeRegistered reports whether t currently names a registered type.
func (r *Registry) IsTypeRegistered(t Type) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.typeNames[t]
	return ok
}

// IsSubtypeRegistered reports whether s currently names a registered
// subtype.
func (r *Registry) IsSubtypeRegistered(s Subtype) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.subtypeNames[s]
	return ok
}

// TypeName returns the string a type was registered under, for
// rendering a Content-Type/Accept header back out ("*" for
// TypeWildcard). It reports false for TypeNone, TypeInvalid or an
// unregistered value.
func (r *Registry) TypeName(t Type) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	name, ok := r.typeNames[t]
	return name, ok
}

// SubtypeName returns the string a subtype was registered under.
func (r *Registry) SubtypeName(s Subtype) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	name, ok := r.subtypeNames[s]
	return name, ok
}

// ParseType looks up a bare type token (already split from its
// subtype), trimmed of surrounding whitespace, and returns its
// identifier, or TypeInvalid if unregistered.
func (r *Registry) ParseType(s string) Type {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.types.Find(s)
	if !ok {
		return TypeInvalid
	}
	return v
}

// ParseSubtype looks up a bare subtype token.
func (r *Registry) ParseSubtype(s string) Subtype {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.subtypes.Find(s)
	if !ok {
		return SubtypeInvalid
	}
	return v
}

// Parse scans up to maxLen bytes of raw, splitting at the first '/'
// and trimming at the first whitespace byte found in either half,
// looking up both sides. Either half is TypeInvalid/SubtypeInvalid if
// unregistered.
func (r *Registry) Parse(raw string, maxLen int) Pair {
	if maxLen >= 0 && maxLen < len(raw) {
		raw = raw[:maxLen]
	}

	slash := strings.IndexByte(raw, '/')
	if slash < 0 {
		return Pair{Type: r.ParseType(trimAtWhitespace(raw)), Subtype: SubtypeInvalid}
	}
	typeTok := trimAtWhitespace(raw[:slash])
	subTok := trimAtWhitespace(raw[slash+1:])
	return Pair{Type: r.ParseType(typeTok), Subtype: r.ParseSubtype(subTok)}
}

func trimAtWhitespace(s string) string {
	if i := strings.IndexAny(s, " \t\r\n"); i >= 0 {
		return s[:i]
	}
	return s
}

// IsValid reports a pair's validity invariant: p.Valid holds and,
// unless both halves are NONE, both halves are registered in r.
func (r *Registry) IsValid(p Pair) bool {
	if !p.Valid() {
		return false
	}
	if p.Type == TypeNone {
		return true
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	_, typeOK := r.typeNames[p.Type]
	_, subtypeOK := r.subtypeNames[p.Subtype]
	return typeOK && subtypeOK
}
