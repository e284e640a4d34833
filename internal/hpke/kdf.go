// Copyright 2019 Google LLC
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file or at
// https://developers.google.com/open-source/licenses/bsd

package hpke

import (
	"crypto/hkdf"
	"crypto/sha256"
	"encoding/binary"
)

// labeledExtract implements the LabeledExtract operation of RFC 9180 §4:
// the input keying material is prefixed with "HPKE-v1" || suite_id || label
// before being fed to HKDF-Extract.
func labeledExtract(suiteID, salt []byte, label string, ikm []byte) []byte {
	labeledIKM := make([]byte, 0, 7+len(suiteID)+len(label)+len(ikm))
	labeledIKM = append(labeledIKM, hpkeVersion...)
	labeledIKM = append(labeledIKM, suiteID...)
	labeledIKM = append(labeledIKM, label...)
	labeledIKM = append(labeledIKM, ikm...)
	prk, err := hkdf.Extract(sha256.New, labeledIKM, salt)
	if err != nil {
		// hkdf.Extract only fails on a hash.Hash misuse, never on input length.
		panic("hpke: internal error: " + err.Error())
	}
	return prk
}

// labeledExpand implements the LabeledExpand operation of RFC 9180 §4.
func labeledExpand(suiteID, prk []byte, label string, info []byte, length int) []byte {
	labeledInfo := make([]byte, 0, 2+7+len(suiteID)+len(label)+len(info))
	labeledInfo = binary.BigEndian.AppendUint16(labeledInfo, uint16(length))
	labeledInfo = append(labeledInfo, hpkeVersion...)
	labeledInfo = append(labeledInfo, suiteID...)
	labeledInfo = append(labeledInfo, label...)
	labeledInfo = append(labeledInfo, info...)
	out, err := hkdf.Expand(sha256.New, prk, string(labeledInfo), length)
	if err != nil {
		panic("hpke: internal error: " + err.Error())
	}
	return out
}

var hpkeVersion = []byte("HPKE-v1")
