// Copyright 2019 Google LLC
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file or at
// https://developers.google.com/open-source/licenses/bsd

// Package zeroize provides a best-effort secure-erase helper for the key
// material held by this module's session objects (spec.md §5). It cannot
// guarantee the Go runtime hasn't copied the bytes elsewhere (a moving GC,
// a register spill, a prior append reallocation) — only that the
// caller-visible buffer is overwritten before it is dropped.
package zeroize

// Bytes overwrites b with zeros in place.
func Bytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
