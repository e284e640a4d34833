// Copyright 2019 Google LLC
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file or at
// https://developers.google.com/open-source/licenses/bsd

// Package session implements the bidirectional HPKE session façade:
// SenderCryptoProvider/RecipientCryptoProvider spawn sessions, and the four
// one-shot SenderRequestEncryptor/SenderResponseDecryptor/
// RecipientRequestDecryptor/RecipientResponseEncryptor wrappers alternate
// strictly, each consuming itself and returning the wrapper for the
// opposite step (spec.md §4.5).
package session

import (
	"crypto/rand"
	"io"

	"github.com/lunarforge/hpkesession/internal/hpke"
)

// DefaultInfo is the fixed HPKE info binding for this module (spec.md §6).
const DefaultInfo = "Oak Hybrid Public Key Encryption v1"

// Option configures a provider at construction time.
type Option func(*options)

type options struct {
	info []byte
}

func newOptions(opts []Option) options {
	o := options{info: []byte(DefaultInfo)}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithInfo overrides the HPKE info binding used by a provider. It exists
// for interop testing against a non-default info string; both sides of a
// session must agree on it or setup will still succeed but the derived
// keys will differ, and the first message will fail authentication.
func WithInfo(info []byte) Option {
	return func(o *options) {
		o.info = append([]byte{}, info...)
	}
}

// SenderCryptoProvider holds a recipient's serialized public key and
// spawns independent bidirectional sessions against it. It is read-only
// after construction and safe for concurrent use by multiple goroutines
// (spec.md §5).
type SenderCryptoProvider struct {
	recipientPublicKey []byte
	info               []byte
	rnd                io.Reader
}

// NewSenderCryptoProvider creates a provider for the recipient identified
// by serializedRecipientPublicKey, a 65-byte SEC1-uncompressed P-256 point.
// The key is not validated until the first call to CreateEncryptor.
func NewSenderCryptoProvider(serializedRecipientPublicKey []byte, opts ...Option) *SenderCryptoProvider {
	key := make([]byte, len(serializedRecipientPublicKey))
	copy(key, serializedRecipientPublicKey)
	o := newOptions(opts)
	return &SenderCryptoProvider{recipientPublicKey: key, info: o.info, rnd: rand.Reader}
}

// CreateEncryptor starts a new session: it generates a fresh ephemeral key
// pair, performs one HPKE Base-mode setup against the recipient's public
// key, and returns the serialized encapsulated ephemeral public key
// alongside the encryptor for the session's first request. Independent
// calls on the same provider start independent sessions (spec.md §4.5.1).
func (p *SenderCryptoProvider) CreateEncryptor() ([]byte, *SenderRequestEncryptor, error) {
	enc, ctx, err := hpke.SetupBaseSender(p.rnd, p.recipientPublicKey, p.info)
	if err != nil {
		return nil, nil, wrapError("couldn't create sender request encryptor", err)
	}
	return enc, &SenderRequestEncryptor{ctx: ctx}, nil
}

// RecipientCryptoProvider holds a recipient's own key pair and creates
// decryptors for sessions opened by senders that encapsulate to its public
// key. It is read-only after construction and safe for concurrent use.
type RecipientCryptoProvider struct {
	keyPair *hpke.KeyPair
	info    []byte
}

// NewRecipientCryptoProvider generates a fresh P-256 key pair and returns a
// provider wrapping it.
func NewRecipientCryptoProvider(opts ...Option) (*RecipientCryptoProvider, error) {
	kp, err := hpke.GenerateKeyPair(rand.Reader)
	if err != nil {
		return nil, wrapError("couldn't generate recipient key pair", err)
	}
	o := newOptions(opts)
	return &RecipientCryptoProvider{keyPair: kp, info: o.info}, nil
}

// SerializedPublicKey returns the 65-byte SEC1-uncompressed encoding of the
// provider's public key, to be published to senders.
func (p *RecipientCryptoProvider) SerializedPublicKey() []byte {
	return p.keyPair.SerializedPublicKey()
}

// CreateDecryptor starts a new session from a sender's serialized
// encapsulated ephemeral public key, performing the matching HPKE
// Base-mode setup and returning the decryptor for the session's first
// request (spec.md §4.5, recipient side).
func (p *RecipientCryptoProvider) CreateDecryptor(serializedEncapsulatedPublicKey []byte) (*RecipientRequestDecryptor, error) {
	ctx, err := hpke.SetupBaseRecipient(serializedEncapsulatedPublicKey, p.keyPair, p.info)
	if err != nil {
		return nil, wrapError("couldn't create recipient request decryptor", err)
	}
	return &RecipientRequestDecryptor{ctx: ctx}, nil
}

// Zero wipes the provider's private key material. The provider must not be
// used afterwards.
func (p *RecipientCryptoProvider) Zero() {
	p.keyPair.Zero()
}
