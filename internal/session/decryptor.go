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

// RecipientRequestDecryptor opens one request message on the recipient
// side of a session. It is linear: Decrypt consumes it and returns the
// encryptor for the session's matching response.
type RecipientRequestDecryptor struct {
	ctx  *hpke.SessionContexts
	used atomic.Bool
}

// Decrypt opens ciphertext under the request context, verifying
// associatedData, and returns the plaintext and the encryptor for the
// session's response. A failed open does not return a next-step wrapper:
// the session is poisoned (spec.md §4.5, Failure semantics).
func (d *RecipientRequestDecryptor) Decrypt(ciphertext, associatedData []byte) ([]byte, *RecipientResponseEncryptor, error) {
	if d.used.Swap(true) {
		return nil, nil, ErrIllegalState
	}
	plaintext, err := d.ctx.OpenRequest(ciphertext, associatedData)
	if err != nil {
		d.ctx.Zero()
		return nil, nil, wrapError("couldn't decrypt request", err)
	}
	return plaintext, &RecipientResponseEncryptor{ctx: d.ctx}, nil
}

// Zero wipes the session's AEAD key material for both directions and marks
// this wrapper consumed. The underlying context is shared with every other
// wrapper still alive on this side of the same session, so zeroing from
// any one of them ends the session for all of them. The peer's wrappers
// hold their own contexts and are not affected.
func (d *RecipientRequestDecryptor) Zero() {
	d.used.Store(true)
	d.ctx.Zero()
}

// RecipientResponseEncryptor seals one response message on the recipient
// side of a session. It is linear: Encrypt consumes it and returns the
// decryptor for the session's next request. There is deliberately no
// constructor that yields a RecipientResponseEncryptor directly from
// RecipientCryptoProvider — spec.md §9 leaves unsolicited responses out of
// scope, and the façade forbids them structurally by only ever minting one
// from a consumed RecipientRequestDecryptor.
type RecipientResponseEncryptor struct {
	ctx  *hpke.SessionContexts
	used atomic.Bool
}

// Encrypt seals plaintext under the response context, authenticating
// associatedData, and returns the ciphertext and the decryptor for the
// session's next request.
func (e *RecipientResponseEncryptor) Encrypt(plaintext, associatedData []byte) ([]byte, *RecipientRequestDecryptor, error) {
	if e.used.Swap(true) {
		return nil, nil, ErrIllegalState
	}
	ciphertext, err := e.ctx.SealResponse(plaintext, associatedData)
	if err != nil {
		e.ctx.Zero()
		return nil, nil, wrapError("couldn't encrypt response", err)
	}
	return ciphertext, &RecipientRequestDecryptor{ctx: e.ctx}, nil
}

// Zero wipes the session's AEAD key material for both directions and marks
// this wrapper consumed.
func (e *RecipientResponseEncryptor) Zero() {
	e.used.Store(true)
	e.ctx.Zero()
}
