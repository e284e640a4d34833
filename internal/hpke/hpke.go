// Copyright 2019 Google LLC
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file or at
// https://developers.google.com/open-source/licenses/bsd

// Package hpke implements the fixed HPKE (RFC 9180) Base-mode suite this
// module requires: DHKEM(P-256, HKDF-SHA-256), HKDF-SHA-256, and
// AES-128-GCM. Unlike a general-purpose HPKE library it derives two
// independent AEAD contexts per setup — request and response — so that a
// single ephemeral DH exchange can anchor a bidirectional exchange of
// messages rather than a single one-shot seal.
package hpke

import (
	"encoding/binary"
	"io"

	"github.com/lunarforge/hpkesession/internal/zeroize"
)

const kdfID uint16 = 0x0001 // HKDF-SHA-256, RFC 9180 table 3.

// suiteID builds the "HPKE" || kem_id || kdf_id || aead_id identifier that
// binds the key schedule to this module's fixed suite.
func suiteID() []byte {
	sid := make([]byte, 0, 10)
	sid = append(sid, []byte("HPKE")...)
	sid = binary.BigEndian.AppendUint16(sid, kemID)
	sid = binary.BigEndian.AppendUint16(sid, kdfID)
	sid = binary.BigEndian.AppendUint16(sid, aeadID)
	return sid
}

// SessionContexts holds the request and response AEAD contexts produced by
// one HPKE setup. Both sides of a session derive byte-identical contexts
// from the same (zz, info) inputs; that equality is the core correctness
// property of the protocol (spec.md §3, invariant 2).
type SessionContexts struct {
	Request  *aeadContext
	Response *aeadContext
}

// SealRequest encrypts a request-direction message. See spec.md §4.1 for
// the sequencing discipline.
func (c *SessionContexts) SealRequest(plaintext, aad []byte) ([]byte, error) {
	return c.Request.seal(plaintext, aad)
}

// OpenRequest decrypts a request-direction message.
func (c *SessionContexts) OpenRequest(ciphertext, aad []byte) ([]byte, error) {
	return c.Request.open(ciphertext, aad)
}

// SealResponse encrypts a response-direction message.
func (c *SessionContexts) SealResponse(plaintext, aad []byte) ([]byte, error) {
	return c.Response.seal(plaintext, aad)
}

// OpenResponse decrypts a response-direction message.
func (c *SessionContexts) OpenResponse(ciphertext, aad []byte) ([]byte, error) {
	return c.Response.open(ciphertext, aad)
}

// Zero wipes the key material of both directions.
func (c *SessionContexts) Zero() {
	c.Request.zero()
	c.Response.zero()
}

// Zeroed reports whether Zero has wiped both directions' key material.
func (c *SessionContexts) Zeroed() bool {
	return c.Request.zeroed && c.Response.zeroed
}

// newSessionContexts runs the RFC 9180 §5.1 key schedule (Base mode, mode
// byte 0x00) over the shared secret zz and info, deriving the four
// direction-specific values of spec.md §4.2. The exporter_secret is
// derived for schedule completeness but is not exposed, matching spec.md's
// scope.
func newSessionContexts(zz, info []byte) (*SessionContexts, error) {
	sid := suiteID()

	pskIDHash := labeledExtract(sid, nil, "psk_id_hash", nil)
	infoHash := labeledExtract(sid, nil, "info_hash", info)
	ksContext := make([]byte, 0, 1+len(pskIDHash)+len(infoHash))
	ksContext = append(ksContext, 0x00) // Base mode.
	ksContext = append(ksContext, pskIDHash...)
	ksContext = append(ksContext, infoHash...)

	secret := labeledExtract(sid, zz, "secret", nil)
	defer zeroize.Bytes(secret)

	requestKey := labeledExpand(sid, secret, "request_key", ksContext, aeadKeySize)
	requestNonce := labeledExpand(sid, secret, "request_base_nonce", ksContext, aeadNonceSize)
	responseKey := labeledExpand(sid, secret, "response_key", ksContext, aeadKeySize)
	responseNonce := labeledExpand(sid, secret, "response_base_nonce", ksContext, aeadNonceSize)
	exporterSecret := labeledExpand(sid, secret, "exporter_secret", ksContext, 32) // derived, unexposed.
	defer zeroize.Bytes(exporterSecret)

	reqCtx, err := newAEADContext(requestKey, requestNonce)
	if err != nil {
		return nil, err
	}
	respCtx, err := newAEADContext(responseKey, responseNonce)
	if err != nil {
		return nil, err
	}
	return &SessionContexts{Request: reqCtx, Response: respCtx}, nil
}

// SetupBaseSender runs the sender side of Base-mode HPKE setup: it
// generates an ephemeral key pair via rnd, encapsulates it to
// recipientPublic, and derives the session contexts from the resulting
// shared secret and info. It returns the serialized ephemeral public key
// (enc) alongside the contexts.
func SetupBaseSender(rnd io.Reader, recipientPublic, info []byte) (enc []byte, ctx *SessionContexts, err error) {
	enc, zz, err := encapsulate(rnd, recipientPublic)
	if err != nil {
		return nil, nil, err
	}
	defer zeroize.Bytes(zz)
	ctx, err = newSessionContexts(zz, info)
	if err != nil {
		return nil, nil, err
	}
	return enc, ctx, nil
}

// SetupBaseRecipient runs the recipient side of Base-mode HPKE setup: it
// decapsulates enc using recipient's private key and derives the session
// contexts identically to SetupBaseSender.
func SetupBaseRecipient(enc []byte, recipient *KeyPair, info []byte) (*SessionContexts, error) {
	zz, err := decapsulate(enc, recipient)
	if err != nil {
		return nil, err
	}
	defer zeroize.Bytes(zz)
	return newSessionContexts(zz, info)
}
