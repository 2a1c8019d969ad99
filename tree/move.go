// move.go - directory move: rename probe, copy-and-delete fallback
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
	"os"
	"path/filepath"

	"github.com/opencoff/go-fsops"
	"github.com/opencoff/go-fsops/scan"
)

// MoveResult is a CopyResult plus the strategy that was used.
// Under MethodRename the counts describe the renamed tree; no
// user-space bytes were moved.
type MoveResult struct {
	CopyResult
	Method fsops.Method
}

// Move relocates the directory tree at 'src' to 'dst'. A rename is
// attempted when the two sit on the same volume and the destination
// is missing or empty; otherwise the tree is copied and the source
// removed bottom-up. A source that is a symlink to a directory is
// never renamed: its subtree is copied and only the link removed.
func Move(dst, src string, opta ...Option) (*MoveResult, error) {
	return moveTree(dst, src, nil, opta)
}

// MoveWithProgress is Move with a progress callback. The rename
// fast path delivers a single terminal update.
func MoveWithProgress(dst, src string, fp ProgressFunc, opta ...Option) (*MoveResult, error) {
	return moveTree(dst, src, fp, opta)
}

func moveTree(dst, src string, fp ProgressFunc, opta []Option) (*MoveResult, error) {
	o := defaultOpts()
	for _, f := range opta {
		f(&o)
	}
	// a move is always whole-tree
	o.depth = scan.Unlimited()

	p, err := prepare(dst, src, &o, false)
	if err != nil {
		return nil, err
	}

	bytes, files, dirs := preScan(p.src, o.depth)

	if canRename(p) {
		if err := os.Rename(p.src, p.dst); err == nil {
			if fp != nil {
				fp(TreeProgress{Bytes: bytes, Total: bytes, Files: files, Dirs: dirs})
			}
			res := &MoveResult{Method: fsops.MethodRename}
			res.Bytes, res.Files, res.Dirs = bytes, files, dirs
			return res, nil
		}
		// whatever the OS objected to, the byte copy will either
		// serve or surface it
	}

	if !p.dstExists {
		perm := p.srcInfo.Mode() & os.ModePerm
		if err := os.MkdirAll(p.dst, perm); err != nil {
			return nil, &Error{"mkdir", src, dst, err}
		}
		p.createdBase = true
		p.dstEmpty = true
	}

	st := newCopyState(&o, fp)
	if p.createdBase {
		st.res.Dirs++
	}
	st.total = bytes

	preserve := p.createdBase || p.dstEmpty
	if err := st.walk(p.src, p.dst, preserve); err != nil {
		return nil, err
	}

	if err := removeSource(p); err != nil {
		return nil, err
	}

	return &MoveResult{CopyResult: st.res, Method: fsops.MethodCopyDelete}, nil
}

// canRename says whether the fast path is even worth attempting:
// same volume, a destination that is missing or empty, and a real
// directory (not a symlink) as the source.
func canRename(p *prepped) bool {
	if p.srcWasSymlink {
		return false
	}
	if p.dstExists && !p.dstEmpty {
		return false
	}

	return p.srcInfo.Dev == dstDev(p)
}

// dstDev is the device the destination will land on: the existing
// destination itself, or its nearest existing ancestor.
func dstDev(p *prepped) uint64 {
	if p.dstExists {
		return p.dstInfo.Dev
	}

	for d := filepath.Dir(p.dst); ; d = filepath.Dir(d) {
		if fi, err := fsops.Lstat(d); err == nil {
			return fi.Dev
		}
		if filepath.Dir(d) == d {
			break
		}
	}
	return 0
}

// removeSource deletes what the fallback copied: the whole tree
// for a real source, only the link itself for a symlinked one.
func removeSource(p *prepped) error {
	if p.srcWasSymlink {
		// p.src is the resolved path; the link is what the caller
		// gave us and what must disappear
		if err := os.Remove(p.orig); err != nil {
			return &Error{"rm-src", p.src, p.dst, err}
		}
		return nil
	}

	if err := os.RemoveAll(p.src); err != nil {
		return &Error{"rm-src", p.src, p.dst, err}
	}
	return nil
}
