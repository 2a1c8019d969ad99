// size.go - scan derived tree measurements
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

package scan

import (
	"io"
	"os"
)

// TreeSize sums the sizes of every file reachable by an unlimited
// scan of 'base'. When 'follow' is set, symlinked files count with
// their target's size and symlinked directories are entered.
func TreeSize(base string, follow bool) (int64, error) {
	opt := Options{
		MaxDepth:          Unlimited(),
		FollowSymlinks:    follow,
		FollowBaseSymlink: true,
	}

	var total int64
	for e, err := range Entries(base, opt) {
		if err != nil {
			return 0, err
		}
		if e.Info.IsRegular() {
			total += e.Info.Size()
		}
	}
	return total, nil
}

// IsEmpty reports whether the directory 'nm' has no entries at all.
func IsEmpty(nm string) (bool, error) {
	fd, err := os.Open(nm)
	if err != nil {
		return false, &Error{"opendir", nm, err}
	}
	defer fd.Close()

	if _, err = fd.ReadDir(1); err == io.EOF {
		return true, nil
	}
	if err != nil {
		return false, &Error{"readdir", nm, err}
	}
	return false, nil
}

// Count returns the number of entries an unlimited scan of 'base'
// yields, excluding the base directory itself.
func Count(base string) (int, error) {
	var n int
	for _, err := range Entries(base, Options{MaxDepth: Unlimited()}) {
		if err != nil {
			return 0, err
		}
		n++
	}
	return n, nil
}
