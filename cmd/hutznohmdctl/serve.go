/*
 * Copyright (c) 2018 The Go Authors. All rights reserved.
 * Use of this source code is governed by a BSD-style license that can be found in the LICENSE file.
 */

package main

import (
	"net"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/badu/hutznohmd/demux"
	"github.com/badu/hutznohmd/logging"
	"github.com/badu/hutznohmd/mime"
	"github.com/badu/hutznohmd/server"
)

func newServeCmd() *cobra.Command {
	var addr string
	var timeoutSecs int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Listen on addr and serve the demo resources",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(addr, timeoutSecs)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "address to listen on")
	cmd.Flags().IntVar(&timeoutSecs, "timeout", 30, "per-connection read timeout, in seconds")
	return cmd
}

func runServe(addr string, timeoutSecs int) error {
	log := logging.New(logrus.StandardLogger())

	reg := mime.NewRegistry()
	d := demux.New(reg, demux.WithLogger(log))
	if err := registerDemoResources(d); err != nil {
		return err
	}

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	defer listener.Close()

	log.WithField("addr", addr).Infof("listening")

	for {
		conn, err := listener.Accept()
		if err != nil {
			log.WithError(err).Warnf("accept failed")
			continue
		}
		go serveConn(conn, d, reg, timeoutSecs, log)
	}
}

func serveConn(conn net.Conn, d *demux.Demux, reg *mime.Registry, timeoutSecs int, log logging.Logger) {
	defer conn.Close()

	p := server.New(d, reg, timeoutSecs, server.WithLogger(log))
	nc := netConn{conn: conn}
	for p.HandleOneRequest(nc) {
	}
}
