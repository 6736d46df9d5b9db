/*
 * Copyright (c) 2018 The Go Authors. All rights reserved.
 * Use of this source code is governed by a BSD-style license that can be found in the LICENSE file.
 */

package demux

import "github.com/badu/hutznohmd/mime"

// acceptMap is an ordered dictionary from an accept media type to the
// handler record that serves it, plus a parallel insertion-ordered
// sequence used for enumeration and Len.
type acceptMap struct {
	byType map[mime.Pair]*handlerRecord
	order  []mime.Pair
}

func newAcceptMap() *acceptMap {
	return &acceptMap{byType: make(map[mime.Pair]*handlerRecord)}
}

func (a *acceptMap) insert(accept mime.Pair, rec *handlerRecord) bool {
	if _, exists := a.byType[accept]; exists {
		return false
	}
	a.byType[accept] = rec
	a.order = append(a.order, accept)
	return true
}

func (a *acceptMap) remove(accept mime.Pair) bool {
	if _, exists := a.byType[accept]; !exists {
		return false
	}
	delete(a.byType, accept)
	for i, t := range a.order {
		if t == accept {
			a.order = append(a.order[:i], a.order[i+1:]...)
			break
		}
	}
	return true
}

func (a *acceptMap) len() int {
	return len(a.order)
}

// find returns the first registered entry whose accept type is
// compatible with want, honoring wildcards on either side.
func (a *acceptMap) find(want mime.Pair) *handlerRecord {
	for _, t := range a.order {
		if mimeCompatible(t, want) {
			return a.byType[t]
		}
	}
	return nil
}

// mimeCompatible reports whether a and b could name the same
// representation, treating a wildcard component on either side as
// matching anything.
func mimeCompatible(a, b mime.Pair) bool {
	if a.Type != mime.TypeWildcard && b.Type != mime.TypeWildcard && a.Type != b.Type {
		return false
	}
	if a.Subtype != mime.SubtypeWildcard && b.Subtype != mime.SubtypeWildcard && a.Subtype != b.Subtype {
		return false
	}
	return true
}
