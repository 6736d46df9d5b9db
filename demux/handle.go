/*
 * Copyright (c) 2018 The Go Authors. All rights reserved.
 * Use of this source code is governed by a BSD-style license that can be found in the LICENSE file.
 */

package demux

import "sync"

// Handle is the owning token Connect returns. Go has no destructors, so
// unlike the C++ original's RAII handle, deregistration here is
// explicit: Close is the only supported way to release a registration,
// and calling it more than once is safe and a no-op after the first.
type Handle struct {
	once  sync.Once
	demux *Demux
	id    ID
}

// Close unregisters this handle's callback from its owning Demux. It
// never returns an error: disconnecting an already-closed handle is a
// no-op, matching Disconnect's idempotent-removal contract.
func (h *Handle) Close() error {
	h.once.Do(func() {
		h.demux.Disconnect(h.id)
	})
	return nil
}
