// Copyright 2021 The age Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lunarforge/hpkesession"
)

var keygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "Generate a recipient key pair and print its public key",
	RunE: func(cmd *cobra.Command, args []string) error {
		recipient, err := hpkesession.NewRecipientCryptoProvider()
		if err != nil {
			return fmt.Errorf("couldn't generate recipient key pair: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(recipient.SerializedPublicKey()))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(keygenCmd)
}
