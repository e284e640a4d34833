// Copyright 2019 Google LLC
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file or at
// https://developers.google.com/open-source/licenses/bsd

package session

import (
	"sync/atomic"

	"github.com/lunarforge/hpkesession/internal/hpke"
)

// SenderRequestEncryptor seals one request message on the sender side of a
// session. It is linear: Encrypt consumes it and returns the decryptor for
// the matching response. Calling Encrypt a second time on the same value
// fails with ErrIllegalState (spec.md Design Notes, option (a)).
type SenderRequestEncryptor struct {
	ctx  *hpke.SessionContexts
	used atomic.Bool
}

// Encrypt seals plaintext under the request context, authenticating
// associatedData, and returns the ciphertext and the decryptor for the
// session's next response.
func (e *SenderRequestEncryptor) Encrypt(plaintext, associatedData []byte) ([]byte, *SenderResponseDecryptor, error) {
	if e.used.Swap(true) {
		return nil, nil, ErrIllegalState
	}
	ciphertext, err := e.ctx.SealRequest(plaintext, associatedData)
	if err != nil {
		e.ctx.Zero()
		return nil, nil, wrapError("couldn't encrypt request", err)
	}
	return ciphertext, &SenderResponseDecryptor{ctx: e.ctx}, nil
}

// Zero wipes the session's AEAD key material for both directions and marks
// this wrapper consumed. Call it to abandon a session instead of completing
// its next step; the underlying context is shared with every other wrapper
// still alive on this side of the same session, so zeroing from any one of
// them ends the session for all of them. The peer's wrappers hold their
// own contexts and are not affected.
func (e *SenderRequestEncryptor) Zero() {
	e.used.Store(true)
	e.ctx.Zero()
}

// SenderResponseDecryptor opens one response message on the sender side of
// a session. It is linear: Decrypt consumes it and returns the encryptor
// for the session's next request.
type SenderResponseDecryptor struct {
	ctx  *hpke.SessionContexts
	used atomic.Bool
}

// Decrypt opens ciphertext under the response context, verifying
// associatedData, and returns the plaintext and the encryptor for the
// session's next request. A failed open does not return a next-step
// wrapper: the session is poisoned and both sides must be dropped
// (spec.md §4.5, Failure semantics).
func (d *SenderResponseDecryptor) Decrypt(ciphertext, associatedData []byte) ([]byte, *SenderRequestEncryptor, error) {
	if d.used.Swap(true) {
		return nil, nil, ErrIllegalState
	}
	plaintext, err := d.ctx.OpenResponse(ciphertext, associatedData)
	if err != nil {
		d.ctx.Zero()
		return nil, nil, wrapError("couldn't decrypt response", err)
	}
	return plaintext, &SenderRequestEncryptor{ctx: d.ctx}, nil
}

// Zero wipes the session's AEAD key material for both directions and marks
// this wrapper consumed.
func (d *SenderResponseDecryptor) Zero() {
	d.used.Store(true)
	d.ctx.Zero()
}
