/*
 * Copyright (c) 2018 The Go Authors. All rights reserved.
 * Use of this source code is governed by a BSD-style license that can be found in the LICENSE file.
 */

package demux

import (
	"sync"

	"github.com/pkg/errors"

	"github.com/badu/hutznohmd/herrors"
	"github.com/badu/hutznohmd/logging"
	"github.com/badu/hutznohmd/mime"
	"github.com/badu/hutznohmd/parser"
)

// ErrAlreadyRegistered is returned by Connect when id's exact tuple is
// already owned by another handle. A wildcard-overlapping registration
// (same path/method/content-type, a different accept type) is not a
// collision and succeeds.
var ErrAlreadyRegistered = errors.New("demux: handler already registered for this id")

// Demux maps (path, method, content-type, accept) tuples to handler
// callbacks, the same mutex-guarded-map shape mux.ServeMux uses for
// path-only routing (paths compare by exact Go map equality; MIME
// strings are interned through internal/trie by package mime before
// they reach the Demux).
type Demux struct {
	mu       sync.Mutex
	reg      *mime.Registry
	log      logging.Logger
	handlers map[ID]*handlerRecord
	routes   map[routeKey]map[mime.Pair]*acceptMap // routeKey -> content-type -> accept map
}

// New returns an empty Demux backed by reg for MIME interning. reg is
// shared with whatever parser instances feed this Demux's requests, so
// type/subtype identifiers compare equal across both.
func New(reg *mime.Registry, opts ...Option) *Demux {
	d := &Demux{
		reg:      reg,
		log:      logging.Discard,
		handlers: make(map[ID]*handlerRecord),
		routes:   make(map[routeKey]map[mime.Pair]*acceptMap),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Option configures a Demux at construction time.
type Option func(*Demux)

// WithLogger attaches a structured logger. A nil logger is equivalent
// to not calling this option at all.
func WithLogger(l logging.Logger) Option {
	return func(d *Demux) {
		if l != nil {
			d.log = l
		}
	}
}

// Connect registers cb for id and returns a Handle whose Close
// unregisters it. It fails if id's exact tuple is already registered;
// registrations that merely overlap via a wildcard component are
// independent entries, resolved at Determine time: within one
// registered content type, the earliest-registered compatible accept
// type wins; the order in which different registered content types are
// tried is not defined.
func (d *Demux) Connect(id ID, cb HandlerFunc) (*Handle, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.handlers[id]; exists {
		d.log.WithError(herrors.NewRegistrationError("duplicate handler id")).Warnf("demux: rejected connect for %s %s", id.Method, id.Path)
		return nil, ErrAlreadyRegistered
	}

	rec := &handlerRecord{id: id, cb: cb, enabled: true}
	rk := routeKey{Path: id.Path, Method: id.Method}
	byContentType, ok := d.routes[rk]
	if !ok {
		byContentType = make(map[mime.Pair]*acceptMap)
		d.routes[rk] = byContentType
	}
	accepts, ok := byContentType[id.ContentType]
	if !ok {
		accepts = newAcceptMap()
		byContentType[id.ContentType] = accepts
	}
	if !accepts.insert(id.Accept, rec) {
		d.log.WithError(herrors.NewRegistrationError("duplicate accept type for this route")).Warnf("demux: rejected connect for %s %s", id.Method, id.Path)
		return nil, ErrAlreadyRegistered
	}

	d.handlers[id] = rec
	d.log.Infof("demux: connected %s %s", id.Method, id.Path)
	return &Handle{demux: d, id: id}, nil
}

// Disconnect removes id's registration, idempotently. It reports false
// if id was never registered or was already disconnected.
func (d *Demux) Disconnect(id ID) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.disconnectLocked(id)
}

func (d *Demux) disconnectLocked(id ID) bool {
	if _, exists := d.handlers[id]; !exists {
		return false
	}
	delete(d.handlers, id)

	rk := routeKey{Path: id.Path, Method: id.Method}
	byContentType := d.routes[rk]
	accepts := byContentType[id.ContentType]
	accepts.remove(id.Accept)
	if accepts.len() == 0 {
		delete(byContentType, id.ContentType)
	}
	if len(byContentType) == 0 {
		delete(d.routes, rk)
	}
	d.log.Infof("demux: disconnected %s %s", id.Method, id.Path)
	return true
}

// Determine resolves req against every current registration, walking
// req's accept list in priority order and returning the first
// compatible match. The mutex is released as soon as a callback
// reference is copied out, so the handler itself runs without any
// Demux lock held.
func (d *Demux) Determine(req *parser.Request) Result {
	d.mu.Lock()
	defer d.mu.Unlock()

	var anyPath, anyMethod bool
	for rk := range d.routes {
		if rk.Path == req.Path {
			anyPath = true
			if rk.Method == req.Method {
				anyMethod = true
			}
		}
	}

	byContentType, ok := d.routes[routeKey{Path: req.Path, Method: req.Method}]
	if !ok {
		return Result{PathKnown: anyPath, MethodKnown: anyMethod}
	}

	cursor := req.Cursor()
	var want mime.Pair
	for cursor.Next(&want) {
		for registeredContentType, accepts := range byContentType {
			if !mimeCompatible(registeredContentType, req.ContentType) {
				continue
			}
			if rec := accepts.find(want); rec != nil && rec.enabled {
				return Result{PathKnown: true, MethodKnown: true, Callback: rec.cb}
			}
		}
	}
	return Result{PathKnown: true, MethodKnown: true}
}

// RegisterMimeType delegates to the shared MIME registry.
func (d *Demux) RegisterMimeType(s string) mime.Type { return d.reg.RegisterType(s) }

// RegisterMimeSubtype delegates to the shared MIME registry.
func (d *Demux) RegisterMimeSubtype(s string) mime.Subtype { return d.reg.RegisterSubtype(s) }

// UnregisterMimeType delegates to the shared MIME registry.
func (d *Demux) UnregisterMimeType(t mime.Type) bool { return d.reg.UnregisterType(t) }

// UnregisterMimeSubtype delegates to the shared MIME registry.
func (d *Demux) UnregisterMimeSubtype(s mime.Subtype) bool { return d.reg.UnregisterSubtype(s) }

// Len reports the number of currently registered handlers, for tests
// that assert a clean teardown after a batch of disconnects.
func (d *Demux) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.handlers)
}
