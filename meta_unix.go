// meta_unix.go - metadata cloning for unixish platforms
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

//go:build unix

package fsops

import (
	"fmt"
	"os"
)

// a cloner clones a specific attribute
type cloner func(dst string, fi *Info) error

// all fs entries will have these attrs cloned.
// We stack mtime update to the end.
var mdUpdaters = []cloner{
	clonexattr,
	cloneugid,
	clonemode,
	clonetimes,
}

// CloneMetadata writes the metadata captured in 'fi' onto 'dst':
// xattr, uid/gid, mode/perm, atime/mtime.
func CloneMetadata(dst string, fi *Info) error {
	for _, fp := range mdUpdaters {
		if err := fp(dst, fi); err != nil {
			return &OpError{"clone-meta", fi.Path(), dst, err}
		}
	}
	return nil
}

// CloneLink reproduces the symlink at 'src' as 'dst': the new link
// points at the same target text, resolved or not.
func CloneLink(dst, src string) error {
	targ, err := os.Readlink(src)
	if err != nil {
		return &OpError{"readlink", src, dst, err}
	}
	if err = os.Symlink(targ, dst); err != nil {
		return &OpError{"symlink", src, dst, err}
	}

	fi, err := Lstat(src)
	if err != nil {
		return &OpError{"lstat", src, dst, err}
	}
	return lclonexattr(dst, fi)
}

func clonexattr(dst string, fi *Info) error {
	return ReplaceXattr(dst, fi.Xattr)
}

// xattr of the symlink itself
func lclonexattr(dst string, fi *Info) error {
	return LreplaceXattr(dst, fi.Xattr)
}

func cloneugid(dst string, fi *Info) error {
	return os.Lchown(dst, int(fi.Uid), int(fi.Gid))
}

func clonemode(dst string, fi *Info) error {
	return os.Chmod(dst, fi.Mode())
}

func clonetimes(dst string, fi *Info) error {
	if err := os.Chtimes(dst, fi.Atim, fi.Mtim); err != nil {
		return fmt.Errorf("utimes: %w", err)
	}
	return nil
}
