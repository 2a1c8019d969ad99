// fileutils.go -- small fs helpers for the testsuite

package main

import (
	"bytes"
	"os"
	"path/filepath"
)

func mksymlink(newnm, target string) error {
	if err := os.MkdirAll(filepath.Dir(newnm), 0700); err != nil {
		return err
	}
	return os.Symlink(target, newnm)
}

// filesEqual compares two files byte for byte.
func filesEqual(a, b string) (bool, error) {
	x, err := os.ReadFile(a)
	if err != nil {
		return false, err
	}
	y, err := os.ReadFile(b)
	if err != nil {
		return false, err
	}
	return bytes.Equal(x, y), nil
}
