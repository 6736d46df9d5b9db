/*
 * Copyright (c) 2018 The Go Authors. All rights reserved.
 * Use of this source code is governed by a BSD-style license that can be found in the LICENSE file.
 */

package parser

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/badu/hutznohmd/internal/codec"
	"github.com/badu/hutznohmd/internal/lexer"
	"github.com/badu/hutznohmd/mime"
)

// Parse reads exactly one HTTP/1.x request from br: request line,
// headers, and — if Content-Length says there's one — a body. It
// never blocks past what br itself blocks on, and it never panics: any
// malformed input comes back as a non-OK Outcome with a partially
// populated Request that callers should discard.
func Parse(br *bufio.Reader, reg *mime.Registry, limits Limits) (*Request, Outcome) {
	p := &parseState{
		br:       br,
		reg:      reg,
		limits:   limits,
		headerCt: 0,
	}

	get := func() int32 {
		b, err := br.ReadByte()
		if err != nil {
			return lexer.EOF
		}
		p.headerCt++
		return int32(b)
	}
	peek := func() int32 {
		b, err := br.Peek(1)
		if err != nil {
			return lexer.EOF
		}
		return int32(b[0])
	}
	p.lex = lexer.New(get, peek)

	return p.parse()
}

type parseState struct {
	br       *bufio.Reader
	reg      *mime.Registry
	limits   Limits
	lex      *lexer.Lexer
	headerCt int64
}

func (p *parseState) tooLong() bool {
	return p.headerCt > p.limits.headerBytes()
}

func (p *parseState) parse() (*Request, Outcome) {
	req := &Request{Header: make(map[string][]string)}

	methodTok, character, ok := p.readUntilSpace()
	if !ok {
		return req, p.earlyOutcome()
	}
	if m, known := methodNames[methodTok]; known {
		req.Method = m
	} else {
		req.Method = MethodUnknown
	}

	character = p.lex.GetNonWhitespace()
	targetTok, character, ok := p.readUntil(character, func(c int32) bool { return c == ' ' })
	if !ok {
		return req, p.earlyOutcome()
	}
	tgt, ok := parseTarget(targetTok)
	if !ok {
		return req, OutcomeMalformed
	}
	req.Path = tgt.path
	req.Host = tgt.host
	req.Query = tgt.query
	req.Fragment = tgt.fragment

	character = p.lex.GetNonWhitespace()
	versionTok, character, ok := p.readUntil(character, func(c int32) bool { return c == '\n' })
	if !ok {
		return req, p.earlyOutcome()
	}
	switch strings.TrimSpace(versionTok) {
	case "HTTP/1.1":
		req.Version = Version11
		req.KeepAlive = true
	case "HTTP/1.0":
		req.Version = Version10
		req.KeepAlive = false
	default:
		return req, OutcomeUnsupportedVersion
	}

	character = p.lex.Get()
	if outcome := p.readHeaders(req, character); outcome != OutcomeOK {
		return req, outcome
	}

	if connVal, present := req.HeaderValue("connection"); present {
		switch strings.ToLower(strings.TrimSpace(connVal)) {
		case "keep-alive":
			req.KeepAlive = true
		case "close":
			req.KeepAlive = false
		}
	}
	if req.Host == "" {
		if h, present := req.HeaderValue("host"); present {
			req.Host = h
		}
	}
	if len(req.AcceptList) == 0 {
		// RFC 7231 §5.3.2: a request with no Accept header (or an empty
		// one) accepts any media type.
		req.AcceptList = []Accept{{Type: mime.Wildcard, Quality: 1000, Grade: 0}}
	}

	return p.readBody(req)
}

// readHeaders consumes header-field lines until the blank line that
// ends them. character is the first byte of the first header line (or
// the terminating LF if there are no headers), already fetched by the
// caller.
func (p *parseState) readHeaders(req *Request, character int32) Outcome {
	for {
		if character == '\n' {
			return OutcomeOK
		}
		if character < 0 {
			return OutcomeMalformed
		}
		if p.tooLong() {
			return OutcomeHeaderTooLong
		}

		nameTok, next, ok := p.readUntil(character, func(c int32) bool { return c == ':' })
		if !ok {
			return p.earlyOutcome()
		}
		if next != ':' {
			return OutcomeMalformed
		}
		character = p.lex.GetNonWhitespace()
		valueTok, next, ok := p.readUntil(character, func(c int32) bool { return c == '\n' })
		if !ok {
			return p.earlyOutcome()
		}

		name := strings.ToLower(strings.TrimSpace(nameTok))
		value := strings.TrimSpace(valueTok)
		if name != "" {
			req.Header[name] = append(req.Header[name], value)
			if outcome := p.applyHeader(req, name, value); outcome != OutcomeOK {
				return outcome
			}
		}

		character = p.lex.Get()
	}
}

// applyHeader gives the headers this package assigns meaning to a
// chance to populate the typed Request fields. Everything else stays
// reachable only through req.Header.
func (p *parseState) applyHeader(req *Request, name, value string) Outcome {
	switch name {
	case "content-length":
		n, ok := parseContentLength(value)
		if !ok {
			return OutcomeMalformed
		}
		if n > p.limits.bodyBytes() {
			return OutcomePayloadTooLarge
		}
		req.HasContent = true
		req.ContentLen = n
	case "content-type":
		req.ContentType = p.reg.Parse(value, len(value))
	case "accept":
		list, ok := parseAccept(value, p.reg)
		if !ok {
			return OutcomeMalformed
		}
		req.AcceptList = append(req.AcceptList, list...)
	case "date":
		epoch, ok := codec.ParseDate(value)
		if !ok {
			return OutcomeMalformed
		}
		req.HasDate = true
		req.Date = epoch
	case "expect":
		req.Expect = value
	}
	return OutcomeOK
}

func parseContentLength(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n < 0 || n > MaxContentLength {
		return 0, false
	}
	return n, true
}

// readBody reads req.ContentLen bytes verbatim once the headers are
// done, and cross-checks a Content-MD5 header if one was present. It
// does not run in the header byte budget: body size is governed solely
// by Content-Length against limits.bodyBytes.
func (p *parseState) readBody(req *Request) (*Request, Outcome) {
	if !req.HasContent || req.ContentLen == 0 {
		return req, OutcomeOK
	}

	buf := make([]byte, req.ContentLen)
	if _, err := io.ReadFull(p.br, buf); err != nil {
		return req, OutcomeMalformed
	}
	req.Content = buf

	if md5Header, present := req.HeaderValue("content-md5"); present {
		decoded, err := codec.DecodeBase64(md5Header)
		if err != nil || len(decoded) != 16 {
			return req, OutcomeMalformed
		}
		sum := codec.MD5Sum(buf)
		if string(decoded) != string(sum[:]) {
			return req, OutcomeMalformed
		}
	}

	return req, OutcomeOK
}

// readUntilSpace reads a token up to (not including) the first plain
// space, returning it plus the separator character reached.
func (p *parseState) readUntilSpace() (token string, sep int32, ok bool) {
	character := p.lex.Get()
	return p.readUntil(character, func(c int32) bool { return c == ' ' })
}

// readUntil accumulates bytes starting at character (already fetched)
// until stop reports true or the source is exhausted, returning the
// accumulated token and the byte that stopped it. ok is false if the
// source ran out before stop matched.
func (p *parseState) readUntil(character int32, stop func(int32) bool) (token string, sep int32, ok bool) {
	var buf lexer.PushBackString
	for character >= 0 && !stop(character) {
		if p.tooLong() {
			return buf.String(), character, false
		}
		buf.PushBack(byte(character))
		character = p.lex.Get()
	}
	if character < 0 {
		return buf.String(), character, false
	}
	return buf.String(), character, true
}

// earlyOutcome decides whether running out of input mid-request-line
// means the request was too large or simply malformed (cut off).
func (p *parseState) earlyOutcome() Outcome {
	if p.tooLong() {
		return OutcomeHeaderTooLong
	}
	return OutcomeMalformed
}
