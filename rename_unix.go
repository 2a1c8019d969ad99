// rename_unix.go - classify rename failures that have a fallback
//
// (c) 2025 Sudhi Herle <sudhi@herle.net>
//
// Licensing Terms: GPLv2
//
// If you need a commercial license for this work, please contact
// the author.
//
// This software does not come with any express or implied
// warranty; it is provided "as is". No claim  is made to its
// suitability for any purpose.

//go:build unix

package fsops

import (
	"syscall"
)

// renameFallsBack returns true when a failed rename(2) indicates a
// condition the copy-and-delete strategy can still serve: another
// volume or filesystem, or a destination the OS won't atomically
// replace.
func renameFallsBack(err error) bool {
	return errAny(err, syscall.EXDEV, syscall.ENOTEMPTY, syscall.EEXIST)
}
