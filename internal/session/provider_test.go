// Copyright 2019 Google LLC
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file or at
// https://developers.google.com/open-source/licenses/bsd

package session

import (
	"testing"

	"github.com/lunarforge/hpkesession/internal/hpke"
	"github.com/stretchr/testify/require"
)

func TestWithInfoMustMatchOnBothSides(t *testing.T) {
	recipient, err := NewRecipientCryptoProvider(WithInfo([]byte("custom/v1")))
	require.NoError(t, err)
	sender := NewSenderCryptoProvider(recipient.SerializedPublicKey(), WithInfo([]byte("custom/v1")))

	enc, reqEnc, err := sender.CreateEncryptor()
	require.NoError(t, err)
	recDec, err := recipient.CreateDecryptor(enc)
	require.NoError(t, err)

	ct, _, err := reqEnc.Encrypt([]byte("hello"), nil)
	require.NoError(t, err)
	pt, _, err := recDec.Decrypt(ct, nil)
	require.NoError(t, err)
	require.Equal(t, "hello", string(pt))
}

func TestMismatchedInfoFailsAuthentication(t *testing.T) {
	recipient, err := NewRecipientCryptoProvider(WithInfo([]byte("custom/v1")))
	require.NoError(t, err)
	sender := NewSenderCryptoProvider(recipient.SerializedPublicKey()) // default info

	enc, reqEnc, err := sender.CreateEncryptor()
	require.NoError(t, err)
	recDec, err := recipient.CreateDecryptor(enc)
	require.NoError(t, err)

	ct, _, err := reqEnc.Encrypt([]byte("hello"), nil)
	require.NoError(t, err)
	_, _, err = recDec.Decrypt(ct, nil)
	require.Error(t, err)
	var hErr *hpke.Error
	require.ErrorAs(t, err, &hErr)
	require.Equal(t, AuthenticationFailure, hErr.Kind)
}

func TestRecipientProviderZero(t *testing.T) {
	recipient, err := NewRecipientCryptoProvider()
	require.NoError(t, err)
	recipient.Zero()
	require.Nil(t, recipient.keyPair.scalar)
}
