// Copyright 2017 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build unix

package heap

import "golang.org/x/sys/unix"

// osPageSize reports the host's memory page size, used only to pick a
// pleasant default arena capacity (see defaultCapacity); arenas themselves
// are plain Go slices, not mmap'd regions, so nothing here touches raw
// pages directly.
func osPageSize() int {
	return unix.Getpagesize()
}
