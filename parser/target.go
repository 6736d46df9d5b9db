/*
 * Copyright (c) 2018 The Go Authors. All rights reserved.
 * Use of this source code is governed by a BSD-style license that can be found in the LICENSE file.
 */

package parser

import (
	"strconv"
	"strings"
)

// reservedChars is RFC 3986's "reserved" set: percent-decoding must
// leave these alone.
const reservedChars = ":/?#[]@!$&'()*+,;="

func isReserved(b byte) bool {
	return strings.IndexByte(reservedChars, b) >= 0
}

// percentDecode decodes %XX escapes, except escapes that would produce
// a reserved-set byte: those are left percent-encoded (upper-cased) so
// a later path-segment split can't be fooled by a decoded "/" or "?".
func percentDecode(s string) (string, bool) {
	if strings.IndexByte(s, '%') < 0 {
		return s, true
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '%' {
			b.WriteByte(s[i])
			continue
		}
		if i+2 >= len(s) {
			return "", false
		}
		v, err := strconv.ParseUint(s[i+1:i+3], 16, 8)
		if err != nil {
			return "", false
		}
		c := byte(v)
		if isReserved(c) {
			b.WriteString(strings.ToUpper(s[i : i+3]))
		} else {
			b.WriteByte(c)
		}
		i += 2
	}
	return b.String(), true
}

// cleanPathSegments resolves "." and ".." segments the way RFC 3986
// §5.2.4 requires, without touching a leading or trailing slash.
func cleanPathSegments(p string) string {
	if p == "" {
		return "/"
	}
	absolute := strings.HasPrefix(p, "/")
	trailingSlash := len(p) > 1 && strings.HasSuffix(p, "/")

	parts := strings.Split(p, "/")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		switch part {
		case "", ".":
			continue
		case "..":
			if len(out) > 0 {
				out = out[:len(out)-1]
			}
		default:
			out = append(out, part)
		}
	}

	result := strings.Join(out, "/")
	if absolute {
		result = "/" + result
	}
	if trailingSlash && !strings.HasSuffix(result, "/") {
		result += "/"
	}
	if result == "" {
		result = "/"
	}
	return result
}

// target is the decomposed request target: scheme/host (absolute-form
// only), path, query multimap and fragment.
type target struct {
	scheme   string
	host     string
	path     string
	query    map[string][]string
	fragment string
}

// parseTarget implements the request-target grammar: scheme?,
// authority?, path, query, fragment, with percent-decoding outside the
// reserved set and scheme/host lower-cased.
func parseTarget(raw string) (target, bool) {
	var t target
	rest := raw

	if rest == "*" {
		t.path = "*"
		return t, true
	}

	if hasSchemePrefix(rest) {
		slash := strings.IndexByte(rest, '/')
		schemeEnd := strings.Index(rest, "://")
		t.scheme = strings.ToLower(rest[:schemeEnd])
		rest = rest[schemeEnd+3:]
		if slash < 0 {
			return t, false
		}
		authorityEnd := strings.IndexAny(rest, "/?#")
		if authorityEnd < 0 {
			t.host = strings.ToLower(rest)
			rest = "/"
		} else {
			t.host = strings.ToLower(rest[:authorityEnd])
			rest = rest[authorityEnd:]
		}
	}

	if hash := strings.IndexByte(rest, '#'); hash >= 0 {
		frag, ok := percentDecode(rest[hash+1:])
		if !ok {
			return t, false
		}
		t.fragment = frag
		rest = rest[:hash]
	}

	if q := strings.IndexByte(rest, '?'); q >= 0 {
		query, ok := parseQuery(rest[q+1:])
		if !ok {
			return t, false
		}
		t.query = query
		rest = rest[:q]
	} else {
		t.query = map[string][]string{}
	}

	if rest == "" {
		rest = "/"
	}
	decodedPath, ok := percentDecode(rest)
	if !ok {
		return t, false
	}
	t.path = cleanPathSegments(decodedPath)
	return t, true
}

func hasSchemePrefix(s string) bool {
	idx := strings.Index(s, "://")
	if idx <= 0 {
		return false
	}
	for i := 0; i < idx; i++ {
		c := s[i]
		isAlpha := (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
		isDigit := c >= '0' && c <= '9'
		if !isAlpha && !isDigit && c != '+' && c != '-' && c != '.' {
			return false
		}
	}
	return true
}

func parseQuery(raw string) (map[string][]string, bool) {
	q := make(map[string][]string)
	if raw == "" {
		return q, true
	}
	for _, pair := range strings.Split(raw, "&") {
		if pair == "" {
			continue
		}
		name, value := pair, ""
		if eq := strings.IndexByte(pair, '='); eq >= 0 {
			name, value = pair[:eq], pair[eq+1:]
		}
		name = strings.ReplaceAll(name, "+", " ")
		value = strings.ReplaceAll(value, "+", " ")
		decodedName, ok := percentDecode(name)
		if !ok {
			return nil, false
		}
		decodedValue, ok := percentDecode(value)
		if !ok {
			return nil, false
		}
		q[decodedName] = append(q[decodedName], decodedValue)
	}
	return q, true
}
