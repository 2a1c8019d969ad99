// prep.go - shared source/destination validation for tree ops
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

package tree

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/opencoff/go-fsops"
	"github.com/opencoff/go-fsops/scan"
)

// opts is the resolved option set for a tree operation.
type opts struct {
	rule       Rule
	depth      scan.Depth
	followBase bool
	preserve   bool
	bufsiz     int
	interval   int64
}

func defaultOpts() opts {
	return opts{
		rule:       AllowEmpty(),
		depth:      scan.Unlimited(),
		followBase: true,
	}
}

// Option captures the various options for copying or moving a
// directory tree.
type Option func(o *opts)

// WithDestRule picks the destination-directory rule; the default
// is AllowEmpty().
func WithDestRule(r Rule) Option {
	return func(o *opts) {
		o.rule = r
	}
}

// WithDepthLimit bounds how deep a copy descends; the default is
// unlimited. Move ignores it.
func WithDepthLimit(d scan.Depth) Option {
	return func(o *opts) {
		o.depth = d
	}
}

// WithFollowBaseSymlink says whether a source that is a symlink to
// a directory is resolved and operated on; default true.
func WithFollowBaseSymlink(follow bool) Option {
	return func(o *opts) {
		o.followBase = follow
	}
}

// WithPreserveMetadata clones mode, ownership, times and xattr of
// every copied entry onto its destination counterpart.
func WithPreserveMetadata(preserve bool) Option {
	return func(o *opts) {
		o.preserve = preserve
	}
}

// WithBufSize sets the per-file copy buffer used by the progress
// variants.
func WithBufSize(n int) Option {
	return func(o *opts) {
		o.bufsiz = n
	}
}

// WithInterval sets the byte granularity of progress updates.
func WithInterval(n int64) Option {
	return func(o *opts) {
		o.interval = n
	}
}

// prepped is the validated context a tree operation runs with.
// src and dst are canonical absolute paths.
type prepped struct {
	src string
	dst string

	// the source path as the caller gave it; differs from src
	// when the source was a symlink
	orig string

	srcInfo *fsops.Info
	dstInfo *fsops.Info

	srcWasSymlink bool
	dstExists     bool
	dstEmpty      bool
	createdBase   bool
}

// prepare validates the source and destination of a tree operation
// against the configured rule. When 'create' is set a missing
// destination base directory is created.
func prepare(dst, src string, o *opts, create bool) (*prepped, error) {
	li, err := fsops.Lstat(src)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &Error{"prepare", src, dst, fsops.ErrSrcNotFound}
		}
		return nil, &Error{"prepare", src, dst, err}
	}

	srcWasSymlink := li.IsSymlink()
	if srcWasSymlink && !o.followBase {
		return nil, &Error{"prepare", src, dst, fsops.ErrSrcNotADir}
	}

	csrc := canonAbs(src)
	si, err := fsops.Lstat(csrc)
	if err != nil {
		if os.IsNotExist(err) {
			// broken symlink has no directory behind it
			return nil, &Error{"prepare", src, dst, fsops.ErrSrcNotFound}
		}
		return nil, &Error{"prepare", src, dst, err}
	}
	if !si.IsDir() {
		return nil, &Error{"prepare", src, dst, fsops.ErrSrcNotADir}
	}

	cdst := canonAbs(dst)

	if fsops.PathsEqual(csrc, cdst) {
		return nil, &Error{"prepare", src, dst, fsops.ErrSameFile}
	}
	if fsops.IsDescendant(csrc, cdst) || fsops.IsDescendant(cdst, csrc) {
		return nil, &Error{"prepare", src, dst, fsops.ErrDstUnderSrc}
	}

	p := &prepped{
		src:           csrc,
		dst:           cdst,
		orig:          src,
		srcInfo:       si,
		srcWasSymlink: srcWasSymlink,
	}

	di, err := fsops.Lstat(cdst)
	switch {
	case err == nil:
		if !di.IsDir() {
			return nil, &Error{"prepare", src, dst, fsops.ErrNotADir}
		}
		if di.Same(si) {
			return nil, &Error{"prepare", src, dst, fsops.ErrSameFile}
		}

		p.dstExists = true
		p.dstInfo = di

		empty, err := scan.IsEmpty(cdst)
		if err != nil {
			return nil, &Error{"prepare", src, dst, err}
		}
		p.dstEmpty = empty

		switch o.rule.kind {
		case disallowExisting:
			return nil, &Error{"prepare", src, dst, fsops.ErrDstExists}
		case allowEmpty:
			if !empty {
				return nil, &Error{"prepare", src, dst, fsops.ErrDstNotEmpty}
			}
		}

	case os.IsNotExist(err):
		if create {
			perm := si.Mode() & fs.ModePerm
			if err = os.MkdirAll(cdst, perm); err != nil {
				return nil, &Error{"mkdir", src, dst, err}
			}
			p.createdBase = true
			p.dstEmpty = true
		}

	default:
		return nil, &Error{"prepare", src, dst, err}
	}

	return p, nil
}

// canonAbs resolves 'p' to an absolute, symlink-free form. Missing
// trailing components are carried over verbatim so that a
// not-yet-created destination still compares sensibly.
func canonAbs(p string) string {
	a, err := filepath.Abs(p)
	if err != nil {
		return filepath.Clean(p)
	}

	rest := ""
	for {
		if r, err := filepath.EvalSymlinks(a); err == nil {
			return filepath.Join(r, rest)
		}

		parent := filepath.Dir(a)
		if parent == a {
			return filepath.Join(a, rest)
		}
		rest = filepath.Join(filepath.Base(a), rest)
		a = parent
	}
}
