// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bow

import "errors"

// ErrBraceHeightTooLow is returned when the unbraced limb tip is already at or behind the brace
// line, hence no string can brace the bow
var ErrBraceHeightTooLow = errors.New("bow: brace height too low")
