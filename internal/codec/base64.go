/*
 * Copyright (c) 2018 The Go Authors. All rights reserved.
 * Use of this source code is governed by a BSD-style license that can be found in the LICENSE file.
 */

// Package codec implements the byte-accurate codecs request parsing
// needs beyond what the lexer does: a tolerant RFC 4648 base64
// decoder (used for Content-MD5), an MD5 digest wrapper, and an RFC
// 2616 date parser with a deliberately non-calendar-correct
// leap-year rule.
package codec

import "encoding/base64"

// base64Value maps an ASCII byte to its 6-bit base64 value, or -1 if
// the byte is not part of the tolerant alphabet. Position 62 accepts
// both '+' (RFC 4648 standard) and '-' (RFC 4648 URL-safe); position 63
// accepts both '/' and '_'.
var base64Value [256]int8

func init() {
	for i := range base64Value {
		base64Value[i] = -1
	}
	for i := 0; i < 26; i++ {
		base64Value['A'+byte(i)] = int8(i)
		base64Value['a'+byte(i)] = int8(26 + i)
	}
	for i := 0; i < 10; i++ {
		base64Value['0'+byte(i)] = int8(52 + i)
	}
	base64Value['+'] = 62
	base64Value['-'] = 62
	base64Value['/'] = 63
	base64Value['_'] = 63
}

// EncodeBase64 encodes data using the standard '+/' alphabet with '='
// padding (RFC 4648 §4). Encoding needs none of the decoder's
// tolerance, so this defers straight to the standard library.
func EncodeBase64(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

// DecodeBase64 decodes a base64 string tolerantly: '-' and '_' are
// accepted as aliases for '+' and '/', padding ('=') is optional, and
// any byte outside the alphabet (including line breaks) is silently
// skipped rather than rejected. It reports an error only when exactly
// one significant (alphabet) character remains — not enough to
// reconstruct even a single output byte. An input with no significant
// characters decodes to an empty slice without error.
func DecodeBase64(encoded string) ([]byte, error) {
	sig := make([]byte, 0, len(encoded))
	for i := 0; i < len(encoded); i++ {
		c := encoded[i]
		if c == '=' {
			continue
		}
		if v := base64Value[c]; v >= 0 {
			sig = append(sig, byte(v))
		}
	}

	if len(sig) == 0 {
		return []byte{}, nil
	}
	if len(sig) == 1 {
		return nil, errMalformedBase64
	}

	out := make([]byte, 0, (len(sig)*6)/8+1)
	i := 0
	for ; i+4 <= len(sig); i += 4 {
		out = append(out,
			sig[i]<<2|sig[i+1]>>4,
			sig[i+1]<<4|sig[i+2]>>2,
			sig[i+2]<<6|sig[i+3],
		)
	}
	switch len(sig) - i {
	case 2:
		out = append(out, sig[i]<<2|sig[i+1]>>4)
	case 3:
		out = append(out,
			sig[i]<<2|sig[i+1]>>4,
			sig[i+1]<<4|sig[i+2]>>2,
		)
	}
	return out, nil
}
