// Copyright 2019 Google LLC
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file or at
// https://developers.google.com/open-source/licenses/bsd

package session

import (
	"errors"
	"fmt"

	"github.com/lunarforge/hpkesession/internal/hpke"
)

// ErrIllegalState is returned when a linear wrapper (an encryptor or
// decryptor) is used a second time. Spec.md §9 prefers this over silent
// corruption: each wrapper carries a used flag that trips on first use.
var ErrIllegalState = errors.New("hpkesession: wrapper already consumed")

// wrapError attaches op as human-readable context to err, per spec.md §7,
// while keeping err reachable through errors.Is/errors.As (including down
// to an *hpke.Error's Kind).
func wrapError(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", op, err)
}

// Kind re-exports hpke.Kind so callers don't need to import the internal
// hpke package to classify a failure.
type Kind = hpke.Kind

// Error re-exports hpke.Error: the concrete error type carried by every
// failure this package returns, reachable with errors.As.
type Error = hpke.Error

const (
	InvalidPublicKey      = hpke.InvalidPublicKey
	AuthenticationFailure = hpke.AuthenticationFailure
	NonceOverflow         = hpke.NonceOverflow
	RandomnessFailure     = hpke.RandomnessFailure
	PrimitiveFailure      = hpke.PrimitiveFailure
)
