/*
 * Copyright (c) 2018 The Go Authors. All rights reserved.
 * Use of this source code is governed by a BSD-style license that can be found in the LICENSE file.
 */

// Command hutznohmdctl runs a small demonstration server: it wires a
// handful of sample resources into a demux and serves them over plain
// TCP, one goroutine per accepted connection.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "hutznohmdctl",
		Short:   "Run a demonstration hutznohmd server",
		Version: "0.1.0",
	}
	root.AddCommand(newServeCmd())
	return root
}
