/*
 * Copyright (c) 2018 The Go Authors. All rights reserved.
 * Use of this source code is governed by a BSD-style license that can be found in the LICENSE file.
 */

package main

import (
	"net"
	"time"
)

// netConn adapts a net.Conn to the server.Connection interface; every
// read, write and deadline the processor issues on an accepted
// connection goes through it.
type netConn struct {
	conn net.Conn
}

func (c netConn) Receive(buf []byte) (int, bool) {
	n, err := c.conn.Read(buf)
	return n, err == nil
}

func (c netConn) Send(data []byte) bool {
	_, err := c.conn.Write(data)
	return err == nil
}

func (c netConn) SetLingeringTimeout(secs int) bool {
	return c.conn.SetDeadline(time.Now().Add(time.Duration(secs)*time.Second)) == nil
}
