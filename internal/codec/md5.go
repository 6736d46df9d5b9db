/*
 * Copyright (c) 2018 The Go Authors. All rights reserved.
 * Use of this source code is governed by a BSD-style license that can be found in the LICENSE file.
 */

package codec

import "crypto/md5"

// MD5Sum returns the RFC 1321 digest of data. Unlike base64 and the
// date grammar, MD5's bit-level algorithm has no required deviation
// from the standard one, so this defers entirely to crypto/md5 rather
// than a hand-rolled implementation: there is no audited third-party
// MD5 worth preferring over the standard library's, and no reason to
// reimplement a hash primitive by hand.
func MD5Sum(data []byte) [16]byte {
	return md5.Sum(data)
}
