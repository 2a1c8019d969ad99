// validate.go - pre-operation source and destination validation
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
	"path/filepath"
)

// validatedSource describes a source file that is known to exist
// and be (or resolve to) a regular file. When the original path was
// a symlink, nm is the canonical resolved path and symlinkToFile is
// set - move consults it to degrade to copy + delete-of-symlink.
type validatedSource struct {
	nm string
	fi *Info

	symlinkToFile bool
}

// validatedDest describes a destination path. When it exists, nm
// is canonical and platform-simplified and fi is the resolved
// metadata.
type validatedDest struct {
	nm     string
	exists bool
	fi     *Info
}

func validateSourceFile(src string) (*validatedSource, error) {
	li, err := Lstat(src)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &OpError{"stat-src", src, "", ErrSrcNotFound}
		}
		return nil, &OpError{"stat-src", src, "", err}
	}

	if li.IsSymlink() {
		canon, err := filepath.EvalSymlinks(src)
		if err != nil {
			// a broken symlink has no file behind it
			if os.IsNotExist(err) {
				return nil, &OpError{"canon-src", src, "", ErrSrcNotFound}
			}
			return nil, &OpError{"canon-src", src, "", err}
		}

		fi, err := Lstat(canon)
		if err != nil {
			return nil, &OpError{"stat-src", canon, "", err}
		}
		if !fi.IsRegular() {
			return nil, &OpError{"validate-src", src, "", ErrSrcNotAFile}
		}

		return &validatedSource{
			nm:            simplifyPath(canon),
			fi:            fi,
			symlinkToFile: true,
		}, nil
	}

	if !li.IsRegular() {
		return nil, &OpError{"validate-src", src, "", ErrSrcNotAFile}
	}

	return &validatedSource{nm: src, fi: li}, nil
}

// validateDestFile applies the existing-file policy 'eb' to the
// destination 'dst'. The second return is true when the operation
// must be skipped (policy Skip with an existing destination).
func validateDestFile(vs *validatedSource, dst string, eb ExistingFileBehaviour) (*validatedDest, bool, error) {
	li, err := Lstat(dst)
	if err != nil {
		if os.IsNotExist(err) {
			return &validatedDest{nm: dst}, false, nil
		}
		return nil, false, &OpError{"stat-dst", vs.nm, dst, err}
	}

	fi := li
	if li.IsSymlink() {
		if fi, err = Stat(dst); err != nil {
			if os.IsNotExist(err) {
				// broken symlink in the way of the destination
				return nil, false, &OpError{"canon-dst", vs.nm, dst, ErrDstNotAFile}
			}
			return nil, false, &OpError{"canon-dst", vs.nm, dst, err}
		}
	}

	if fi.IsDir() {
		return nil, false, &OpError{"validate-dst", vs.nm, dst, ErrDstNotAFile}
	}

	if fi.Same(vs.fi) {
		return nil, false, &OpError{"validate-dst", vs.nm, dst, ErrSameFile}
	}

	switch eb {
	case Abort:
		return nil, false, &OpError{"validate-dst", vs.nm, dst, ErrDstExists}
	case Skip:
		return nil, true, nil
	case Overwrite:
		// fallthrough
	default:
		panic("fsops: unknown existing-file behaviour")
	}

	canon, err := filepath.EvalSymlinks(dst)
	if err != nil {
		return nil, false, &OpError{"canon-dst", vs.nm, dst, err}
	}

	return &validatedDest{
		nm:     simplifyPath(canon),
		exists: true,
		fi:     fi,
	}, false, nil
}
