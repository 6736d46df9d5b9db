/*
 * Copyright (c) 2018 The Go Authors. All rights reserved.
 * Use of this source code is governed by a BSD-style license that can be found in the LICENSE file.
 */

package main

import (
	"fmt"

	"github.com/badu/hutznohmd/demux"
	"github.com/badu/hutznohmd/mime"
	"github.com/badu/hutznohmd/parser"
)

// registerDemoResources wires a couple of sample routes into d, so a
// freshly started server answers to more than silence.
func registerDemoResources(d *demux.Demux) error {
	textPlain := mime.Pair{Type: mime.TypeText, Subtype: mime.SubtypePlain}

	if _, err := d.Connect(demux.ID{Path: "/", Method: parser.MethodGet, ContentType: mime.Wildcard, Accept: textPlain},
		func(req *parser.Request, w demux.ResponseWriter) {
			w.SetStatus(200)
			w.SetContentType(textPlain)
			w.Write([]byte("hutznohmd demo server\n"))
		}); err != nil {
		return fmt.Errorf("registering /: %w", err)
	}

	if _, err := d.Connect(demux.ID{Path: "/echo", Method: parser.MethodPost, ContentType: mime.Wildcard, Accept: mime.Wildcard},
		func(req *parser.Request, w demux.ResponseWriter) {
			w.SetStatus(200)
			w.SetContentType(req.ContentType)
			w.Write(req.Content)
		}); err != nil {
		return fmt.Errorf("registering /echo: %w", err)
	}

	return nil
}
