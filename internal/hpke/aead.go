// Copyright 2019 Google LLC
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file or at
// https://developers.google.com/open-source/licenses/bsd

package hpke

import (
	"crypto/aes"
	"crypto/cipher"
	"math/bits"

	"github.com/lunarforge/hpkesession/internal/zeroize"
)

const (
	aeadID         uint16 = 0x0001 // AES-128-GCM, RFC 9180 table 5.
	aeadKeySize           = 16
	aeadNonceSize         = 12
	aeadOverhead          = 16 // GCM tag length.
)

// aeadContext is one direction (request or response) of an HPKE session:
// a sealed AES-128-GCM key, its base nonce, and a monotonic sequence
// counter. The per-message nonce is base_nonce XOR seq, big-endian.
type aeadContext struct {
	aead      cipher.AEAD
	key       []byte
	baseNonce []byte
	seq       uint64
	overflow  bool
	zeroed    bool
}

func newAEADContext(key, baseNonce []byte) (*aeadContext, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, &Error{Kind: PrimitiveFailure, Op: "initialize AEAD", Err: err}
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, &Error{Kind: PrimitiveFailure, Op: "initialize AEAD", Err: err}
	}
	return &aeadContext{aead: gcm, key: key, baseNonce: baseNonce}, nil
}

func (c *aeadContext) nonce() []byte {
	nonce := make([]byte, aeadNonceSize)
	var seqBytes [8]byte
	for i := 0; i < 8; i++ {
		seqBytes[i] = byte(c.seq >> (56 - 8*i))
	}
	copy(nonce, c.baseNonce)
	for i := 0; i < 8; i++ {
		nonce[aeadNonceSize-8+i] ^= seqBytes[i]
	}
	return nonce
}

// advance increments the sequence counter, failing with NonceOverflow if
// doing so would wrap past 2^64-1.
func (c *aeadContext) advance() error {
	next, carry := bits.Add64(c.seq, 1, 0)
	if carry != 0 || c.overflow {
		c.overflow = true
		return &Error{Kind: NonceOverflow, Op: "advance sequence number"}
	}
	c.seq = next
	return nil
}

// seal encrypts plaintext under the current nonce, authenticating aad, and
// advances the sequence counter on success.
func (c *aeadContext) seal(plaintext, aad []byte) ([]byte, error) {
	if c.overflow {
		return nil, &Error{Kind: NonceOverflow, Op: "seal"}
	}
	nonce := c.nonce()
	ciphertext := c.aead.Seal(nil, nonce, plaintext, aad)
	if err := c.advance(); err != nil {
		return nil, err
	}
	return ciphertext, nil
}

// open decrypts ciphertext under the current nonce, verifying aad. The
// sequence counter advances only when the tag verifies; a failed open
// leaves the context retryable at the same nonce per spec.md §4.1.
func (c *aeadContext) open(ciphertext, aad []byte) ([]byte, error) {
	if c.overflow {
		return nil, &Error{Kind: NonceOverflow, Op: "open"}
	}
	nonce := c.nonce()
	plaintext, err := c.aead.Open(nil, nonce, ciphertext, aad)
	if err != nil {
		return nil, &Error{Kind: AuthenticationFailure, Op: "open", Err: err}
	}
	if err := c.advance(); err != nil {
		return nil, err
	}
	return plaintext, nil
}

func (c *aeadContext) zero() {
	zeroize.Bytes(c.key)
	zeroize.Bytes(c.baseNonce)
	c.zeroed = true
}
