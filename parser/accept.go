/*
 * Copyright (c) 2018 The Go Authors. All rights reserved.
 * Use of this source code is governed by a BSD-style license that can be found in the LICENSE file.
 */

package parser

import (
	"sort"
	"strconv"
	"strings"

	"github.com/badu/hutznohmd/mime"
)

// splitAcceptElements splits an Accept header value at top-level
// commas, respecting RFC 2616 quoted-strings and nested parenthesized
// comments so a comma inside either doesn't end an element early.
func splitAcceptElements(value string) []string {
	var elems []string
	depth := 0
	inQuotes := false
	start := 0
	for i := 0; i < len(value); i++ {
		switch value[i] {
		case '"':
			inQuotes = !inQuotes
		case '(':
			if !inQuotes {
				depth++
			}
		case ')':
			if !inQuotes && depth > 0 {
				depth--
			}
		case ',':
			if !inQuotes && depth == 0 {
				elems = append(elems, value[start:i])
				start = i + 1
			}
		}
	}
	elems = append(elems, value[start:])
	return elems
}

// specificationGrade scores how concretely p names a media type:
// neither half wildcard scores 3, the type half alone scores 1, the
// subtype half alone scores 2, both wildcard scores 0. It is used as a
// tie-breaker after quality.
func specificationGrade(p mime.Pair) int {
	grade := 0
	if p.Type != mime.TypeWildcard {
		grade++
	}
	if p.Subtype != mime.SubtypeWildcard {
		grade += 2
	}
	return grade
}

// parseAccept parses a full Accept header value into a priority-ordered
// list: sorted by (quality desc, specification grade desc, original
// order).
func parseAccept(value string, reg *mime.Registry) ([]Accept, bool) {
	elements := splitAcceptElements(value)
	out := make([]Accept, 0, len(elements))

	for _, elem := range elements {
		elem = strings.TrimSpace(elem)
		if elem == "" {
			continue
		}
		parts := strings.Split(elem, ";")
		mediaType := strings.TrimSpace(parts[0])
		slash := strings.IndexByte(mediaType, '/')
		if slash < 0 {
			return nil, false
		}
		typeTok := strings.TrimSpace(mediaType[:slash])
		subTok := strings.TrimSpace(mediaType[slash+1:])

		var p mime.Pair
		if typeTok == "*" {
			p.Type = mime.TypeWildcard
		} else {
			p.Type = reg.ParseType(typeTok)
		}
		if subTok == "*" {
			p.Subtype = mime.SubtypeWildcard
		} else {
			p.Subtype = reg.ParseSubtype(subTok)
		}

		quality := 1000
		for _, param := range parts[1:] {
			param = strings.TrimSpace(param)
			if strings.HasPrefix(strings.ToLower(param), "q=") {
				q, ok := parseQuality(param[2:])
				if !ok {
					return nil, false
				}
				quality = q
			}
			// Other extension parameters are accepted but ignored.
		}

		out = append(out, Accept{Type: p, Quality: quality, Grade: specificationGrade(p)})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Quality != out[j].Quality {
			return out[i].Quality > out[j].Quality
		}
		return out[i].Grade > out[j].Grade
	})
	return out, true
}

// parseQuality parses a q-value, clamping to [0.000, 1.000] and scaling
// ×1000.
func parseQuality(s string) (int, bool) {
	s = strings.TrimSpace(s)
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	if f < 0 {
		f = 0
	}
	if f > 1 {
		f = 1
	}
	return int(f*1000 + 0.5), true
}
