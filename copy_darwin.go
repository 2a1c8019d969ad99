// copy_darwin.go - macOS specific file copy
//
// (c) 2021 Sudhi Herle <sudhi@herle.net>
//
// Licensing Terms: GPLv2
//
// If you need a commercial license for this work, please contact
// the author.
//
// This software does not come with any express or implied
// warranty; it is provided "as is". No claim  is made to its
// suitability for any purpose.

//go:build darwin

package fsops

import (
	"fmt"
	"io/fs"
	"os"
	"syscall"

	"golang.org/x/sys/unix"
)

// sysCopyPath clones 'src' onto a temp name next to 'dst' with
// clonefile(2) and renames it into place. clonefile requires that
// the clone target not exist, so it cannot write into an
// already-open temp file - hence the path-level variant here.
// Returns false when the filesystem has no CoW support and the
// caller must take the byte-copy path.
func sysCopyPath(dst, src string, perm fs.FileMode) (bool, error) {
	tmp := fmt.Sprintf("%s.tmp.%d.%x", dst, os.Getpid(), randU32())

	err := unix.Clonefile(src, tmp, unix.CLONE_NOFOLLOW)
	if err != nil {
		if errAny(err, syscall.ENOTSUP, syscall.ENOSYS, syscall.EXDEV, syscall.EEXIST) {
			return false, nil
		}
		return false, &OpError{"clone", src, dst, err}
	}

	if err = os.Chmod(tmp, perm); err == nil {
		err = os.Rename(tmp, dst)
	}
	if err != nil {
		os.Remove(tmp)
		return false, &OpError{"clone-rename", src, dst, err}
	}
	return true, nil
}

// macOS doesn't have an fclonefile() that takes two fds; and
// clonefile(2)/fclonefileat(2) both require that the destination
// NOT exist - which conflicts with our temp file. So, fd-to-fd
// copies are stuck with the mmap path.
func sysCopyFd(dst, src *os.File) error {
	return copyViaMmap(dst, src)
}
