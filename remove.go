// remove.go - remove a file or symlink
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

package fsops

import (
	"io/fs"
	"os"
)

// RemoveFile removes the file or symbolic link at 'nm' itself.
// A symlink's target is never followed and never touched.
func RemoveFile(nm string) error {
	li, err := Lstat(nm)
	if err != nil {
		if os.IsNotExist(err) {
			return &OpError{"rm", nm, "", ErrNotFound}
		}
		return &OpError{"rm", nm, "", err}
	}

	m := li.Mode()
	if !m.IsRegular() && (m&fs.ModeSymlink) == 0 {
		return &OpError{"rm", nm, "", ErrNotAFile}
	}

	if err := os.Remove(nm); err != nil {
		return &OpError{"rm", nm, "", err}
	}
	return nil
}
