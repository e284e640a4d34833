// Copyright 2019 Google LLC
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file or at
// https://developers.google.com/open-source/licenses/bsd

// Package hpkesession implements bidirectional secure messaging between a
// sender and a recipient using the Hybrid Public Key Encryption (HPKE)
// construction of RFC 9180, in its Base-mode bidirectional (response
// encryption) variant: DHKEM(P-256, HKDF-SHA-256), HKDF-SHA-256, and
// AES-128-GCM.
//
// A session is established once, by the sender calling CreateEncryptor
// against a recipient's published public key and the recipient calling
// CreateDecryptor against the resulting encapsulated key. After that, an
// arbitrary number of request/response pairs may be exchanged under two
// independently sequenced AEAD contexts derived from the single HPKE
// setup. Each of the four one-shot wrapper types returned along the way
// (SenderRequestEncryptor, SenderResponseDecryptor,
// RecipientRequestDecryptor, RecipientResponseEncryptor) is consumed by its
// single operation and yields the wrapper for the opposite step, so the
// request/response alternation cannot be violated through the API.
//
// This package re-exports internal/session through type aliases and thin
// forwarding functions to allow session encryption as a library, mirroring
// the way this module's teacher exposes internal/age at its root.
package hpkesession

import "github.com/lunarforge/hpkesession/internal/session"

// SenderCryptoProvider holds a recipient's serialized public key and
// spawns independent bidirectional sessions against it.
type SenderCryptoProvider = session.SenderCryptoProvider

// RecipientCryptoProvider holds a recipient's own key pair and creates
// decryptors for sessions opened against its public key.
type RecipientCryptoProvider = session.RecipientCryptoProvider

// SenderRequestEncryptor seals one request message on the sender side of a
// session.
type SenderRequestEncryptor = session.SenderRequestEncryptor

// SenderResponseDecryptor opens one response message on the sender side of
// a session.
type SenderResponseDecryptor = session.SenderResponseDecryptor

// RecipientRequestDecryptor opens one request message on the recipient
// side of a session.
type RecipientRequestDecryptor = session.RecipientRequestDecryptor

// RecipientResponseEncryptor seals one response message on the recipient
// side of a session.
type RecipientResponseEncryptor = session.RecipientResponseEncryptor

// Kind classifies a failure returned by this package, per spec.md §7.
type Kind = session.Kind

// Error is the concrete error type carried by every failure this package
// returns. Use errors.As(err, &e) to recover it and inspect e.Kind.
type Error = session.Error

// Failure kinds this package can return, wrapped inside an error produced
// by one of the operations above. Use errors.As to recover an *Error and
// inspect its Kind.
const (
	InvalidPublicKey      = session.InvalidPublicKey
	AuthenticationFailure = session.AuthenticationFailure
	NonceOverflow         = session.NonceOverflow
	RandomnessFailure     = session.RandomnessFailure
	PrimitiveFailure      = session.PrimitiveFailure
)

// ErrIllegalState is returned when a one-shot wrapper above is used a
// second time.
var ErrIllegalState = session.ErrIllegalState

// Option configures a provider at construction time.
type Option = session.Option

// WithInfo overrides the fixed HPKE info binding (spec.md §6) a provider
// uses. Both sides of a session must agree on it, or the first message
// will fail authentication even though setup itself succeeds.
func WithInfo(info []byte) Option {
	return session.WithInfo(info)
}

// DefaultInfo is the HPKE info binding used when no WithInfo option is
// given: the UTF-8 bytes of "Oak Hybrid Public Key Encryption v1".
const DefaultInfo = session.DefaultInfo

// NewSenderCryptoProvider creates a provider for the recipient identified
// by serializedRecipientPublicKey, a 65-byte SEC1-uncompressed P-256 point
// (0x04 || X || Y).
func NewSenderCryptoProvider(serializedRecipientPublicKey []byte, opts ...Option) *SenderCryptoProvider {
	return session.NewSenderCryptoProvider(serializedRecipientPublicKey, opts...)
}

// NewRecipientCryptoProvider generates a fresh P-256 key pair and returns a
// provider wrapping it. Call SerializedPublicKey to publish the key to
// senders.
func NewRecipientCryptoProvider(opts ...Option) (*RecipientCryptoProvider, error) {
	return session.NewRecipientCryptoProvider(opts...)
}
