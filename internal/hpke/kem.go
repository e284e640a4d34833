// Copyright 2019 Google LLC
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file or at
// https://developers.google.com/open-source/licenses/bsd

package hpke

import (
	"crypto/ecdh"
	"io"

	"github.com/lunarforge/hpkesession/internal/zeroize"
)

// kemID identifies DHKEM(P-256, HKDF-SHA-256), RFC 9180 table 2.
const kemID uint16 = 0x0010

// kemSuiteID is the "KEM" || kem_id suite_id used by extractAndExpand,
// distinct from the outer HPKE suite_id used by the key schedule.
var kemSuiteID = append([]byte("KEM"), 0x00, 0x10)

// KeyPair is a NIST P-256 key pair. The zero value is not usable; obtain
// one from GenerateKeyPair.
//
// The private scalar is held as a byte slice this struct owns, not only
// through an *ecdh.PrivateKey: crypto/ecdh.PrivateKey.Bytes() returns a
// fresh copy on every call, so zeroizing that copy would leave the
// scalar backing the PrivateKey itself untouched. A PrivateKey is
// reconstructed from the owned scalar on demand for each ECDH operation
// and discarded immediately after.
type KeyPair struct {
	scalar []byte
	pub    *ecdh.PublicKey
}

// GenerateKeyPair samples a uniform P-256 scalar from rnd (normally
// crypto/rand.Reader) and derives its public point.
func GenerateKeyPair(rnd io.Reader) (*KeyPair, error) {
	priv, err := ecdh.P256().GenerateKey(rnd)
	if err != nil {
		return nil, &Error{Kind: RandomnessFailure, Op: "generate key pair", Err: err}
	}
	return &KeyPair{scalar: priv.Bytes(), pub: priv.PublicKey()}, nil
}

// SerializedPublicKey returns the SEC1 uncompressed encoding of the key
// pair's public point: 0x04 || X || Y, 65 bytes.
func (kp *KeyPair) SerializedPublicKey() []byte {
	return kp.pub.Bytes()
}

// ecdh runs ECDH between the key pair's scalar and peer, reconstructing a
// private key from the owned scalar for the duration of the call.
func (kp *KeyPair) ecdh(peer *ecdh.PublicKey) ([]byte, error) {
	priv, err := ecdh.P256().NewPrivateKey(kp.scalar)
	if err != nil {
		return nil, err
	}
	return priv.ECDH(peer)
}

// Zero wipes the private scalar. The KeyPair must not be used afterwards.
func (kp *KeyPair) Zero() {
	if kp == nil || kp.scalar == nil {
		return
	}
	zeroize.Bytes(kp.scalar)
	kp.scalar = nil
	kp.pub = nil
}

// parseRecipientKey decodes and validates a SEC1-uncompressed P-256 public
// key, rejecting malformed encodings and points not on the curve.
func parseRecipientKey(serialized []byte) (*ecdh.PublicKey, error) {
	pub, err := ecdh.P256().NewPublicKey(serialized)
	if err != nil {
		return nil, &Error{Kind: InvalidPublicKey, Op: "parse recipient public key", Err: err}
	}
	return pub, nil
}

// encapsulate runs the sender side of DHKEM(P-256, HKDF-SHA-256): a fresh
// ephemeral key pair is generated from rnd, combined via ECDH with the
// recipient's public key, and the shared secret zz is derived with
// ExtractAndExpand per RFC 9180 §4.1. It returns the serialized ephemeral
// public key (enc) and zz.
func encapsulate(rnd io.Reader, recipientPublic []byte) (enc, zz []byte, err error) {
	recipientPub, err := parseRecipientKey(recipientPublic)
	if err != nil {
		return nil, nil, err
	}
	ephemeral, err := GenerateKeyPair(rnd)
	if err != nil {
		return nil, nil, err
	}
	defer ephemeral.Zero()

	dh, err := ephemeral.ecdh(recipientPub)
	if err != nil {
		return nil, nil, &Error{Kind: PrimitiveFailure, Op: "encapsulate", Err: err}
	}
	defer zeroize.Bytes(dh)

	encPubEph := ephemeral.pub.Bytes()
	kemContext := append(append([]byte{}, encPubEph...), recipientPub.Bytes()...)
	zz = extractAndExpand(dh, kemContext)
	return encPubEph, zz, nil
}

// decapsulate runs the recipient side of DHKEM(P-256, HKDF-SHA-256): it
// parses the sender's encapsulated ephemeral public key, combines it with
// the recipient's private scalar via ECDH, and derives zz identically to
// encapsulate.
func decapsulate(enc []byte, recipient *KeyPair) (zz []byte, err error) {
	ephPub, err := parseRecipientKey(enc)
	if err != nil {
		return nil, &Error{Kind: InvalidPublicKey, Op: "decapsulate", Err: err}
	}
	dh, err := recipient.ecdh(ephPub)
	if err != nil {
		return nil, &Error{Kind: PrimitiveFailure, Op: "decapsulate", Err: err}
	}
	defer zeroize.Bytes(dh)
	kemContext := append(append([]byte{}, enc...), recipient.pub.Bytes()...)
	return extractAndExpand(dh, kemContext), nil
}

// extractAndExpand implements RFC 9180 §4.1's ExtractAndExpand for
// DHKEM(P-256, HKDF-SHA-256), producing a 32-byte shared secret.
func extractAndExpand(dh, kemContext []byte) []byte {
	const nSecret = 32
	eaePRK := labeledExtract(kemSuiteID, nil, "eae_prk", dh)
	return labeledExpand(kemSuiteID, eaePRK, "shared_secret", kemContext, nSecret)
}
