// size.go - logical file size query
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
	"os"
)

// FileSize returns the logical byte size of the file at 'nm'.
// Symlinks to files are followed.
func FileSize(nm string) (int64, error) {
	fi, err := Stat(nm)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, &OpError{"size", nm, "", ErrNotFound}
		}
		return 0, &OpError{"size", nm, "", err}
	}

	if !fi.IsRegular() {
		return 0, &OpError{"size", nm, "", ErrNotAFile}
	}
	return fi.Size(), nil
}
