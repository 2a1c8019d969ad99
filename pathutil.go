// pathutil.go - relative path rebasing and path comparison
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
	"path/filepath"
	"strings"
)

// RebasePath computes the destination counterpart of 'srcSub':
// the path of srcSub relative to srcBase, joined onto dstBase.
// srcSub must be srcBase itself or a descendant of it; when the
// two are equal the result is dstBase unchanged.
func RebasePath(srcBase, srcSub, dstBase string) (string, error) {
	if PathsEqual(srcBase, srcSub) {
		return dstBase, nil
	}

	rel, err := filepath.Rel(srcBase, srcSub)
	if err != nil || !isRelDown(rel) {
		return "", &OpError{"rebase", srcSub, srcBase, ErrNotUnderBase}
	}
	return filepath.Join(dstBase, rel), nil
}

// PathsEqual compares two paths after cleaning and platform
// prefix simplification. This is a purely lexical comparison;
// semantic same-file detection is Info.Same().
func PathsEqual(a, b string) bool {
	return simplifyPath(filepath.Clean(a)) == simplifyPath(filepath.Clean(b))
}

// IsDescendant returns true if 'p' is strictly below 'base'.
// Both paths must be in comparable form (both canonical or both
// as given); the check is lexical.
func IsDescendant(base, p string) bool {
	rel, err := filepath.Rel(filepath.Clean(base), filepath.Clean(p))
	if err != nil {
		return false
	}
	if rel == "." {
		return false
	}
	return isRelDown(rel)
}

// a relative path "goes down" if it doesn't start with ".."
func isRelDown(rel string) bool {
	if rel == ".." {
		return false
	}
	return !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
