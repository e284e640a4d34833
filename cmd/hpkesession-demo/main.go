// Copyright 2021 The age Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command hpkesession-demo exercises the session façade end to end: it can
// generate a recipient key pair, or run an in-process sender/recipient
// exchange and print the recovered plaintexts. It exists to demonstrate
// and smoke-test the library, not as a network service — spec.md §6 rules
// out a transport for the core itself.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	configPath string
	envPath    string
)

var rootCmd = &cobra.Command{
	Use:   "hpkesession-demo",
	Short: "Exercise the bidirectional HPKE session library",
	Long: `hpkesession-demo drives the github.com/lunarforge/hpkesession session
façade end to end: generating recipient key pairs and running an
in-process sender/recipient request/response exchange.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "hpkesession-demo: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file")
	rootCmd.PersistentFlags().StringVar(&envPath, "env", "", "path to a .env overlay file")
}
