/*
 * Copyright (c) 2018 The Go Authors. All rights reserved.
 * Use of this source code is governed by a BSD-style license that can be found in the LICENSE file.
 */

package codec

import "github.com/pkg/errors"

var errMalformedBase64 = errors.New("codec: base64 input has fewer than two significant characters")
