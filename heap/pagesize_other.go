// Copyright 2017 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !unix

package heap

// osPageSize is a portable fallback for targets without golang.org/x/sys/unix
// page-size support (e.g. windows, wasm).
func osPageSize() int {
	return 4096
}
