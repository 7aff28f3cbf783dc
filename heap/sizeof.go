// Copyright 2017 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heap

import "unsafe"

// sizeofHint returns the in-memory size of a zero value of K, used only to
// turn a page-size budget into a slot count in defaultCapacity. It is a
// sizing hint, not a layout guarantee: K may contain slices or pointers
// whose referents live elsewhere.
func sizeofHint[K any](zero K) int {
	return int(unsafe.Sizeof(zero))
}
