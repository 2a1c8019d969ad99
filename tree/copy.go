// copy.go - recursive directory copy with destination rules
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

// Package tree copies and moves whole directory trees. The
// destination policy, depth bound and symlink handling are
// configured per call; enumeration is delegated to fsops/scan and
// byte moving to fsops.
package tree

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/opencoff/go-fsops"
	"github.com/opencoff/go-fsops/scan"
)

// CopyResult aggregates what a finished directory copy did.
type CopyResult struct {
	Bytes    int64 // bytes written into destination files
	Files    int   // files copied (skipped files don't count)
	Dirs     int   // directories created
	Symlinks int   // symbolic links reproduced
}

// TreeProgress describes an in-flight directory operation.
type TreeProgress struct {
	Bytes int64 // running byte total across all files
	Total int64 // pre-computed tree byte total

	Src string // source path of the in-flight file
	Dst string // its destination counterpart

	Files int // files finished so far
	Dirs  int // directories finished so far
}

// ProgressFunc receives directory progress updates; delivered
// synchronously from the copying goroutine.
type ProgressFunc func(p TreeProgress)

// Copy copies the directory tree at 'src' into 'dst'. A missing
// destination is created; an existing one is arbitrated by the
// configured Rule. Every source entry is visited exactly once; a
// failed entry aborts the copy and leaves the partial destination
// as-is.
func Copy(dst, src string, opta ...Option) (*CopyResult, error) {
	return copyTree(dst, src, nil, opta)
}

// CopyWithProgress is Copy with a progress callback: updates fire
// every interval bytes and at each per-file boundary.
func CopyWithProgress(dst, src string, fp ProgressFunc, opta ...Option) (*CopyResult, error) {
	return copyTree(dst, src, fp, opta)
}

func copyTree(dst, src string, fp ProgressFunc, opta []Option) (*CopyResult, error) {
	o := defaultOpts()
	for _, f := range opta {
		f(&o)
	}

	p, err := prepare(dst, src, &o, true)
	if err != nil {
		return nil, err
	}

	st := newCopyState(&o, fp)
	if p.createdBase {
		st.res.Dirs++
	}
	if fp != nil {
		st.total, _, _ = preScan(p.src, o.depth)
	}

	preserve := p.createdBase || p.dstEmpty
	if err := st.walk(p.src, p.dst, preserve); err != nil {
		return nil, err
	}

	if o.preserve {
		if err := fsops.CloneMetadata(p.dst, p.srcInfo); err != nil {
			return nil, &Error{"clone-meta", p.src, p.dst, err}
		}
	}
	return &st.res, nil
}

// copyState carries the walker's counters and progress plumbing.
type copyState struct {
	o  *opts
	fp ProgressFunc

	res CopyResult

	// progress bookkeeping
	total int64 // pre-computed byte total
	done  int64 // bytes of fully copied files
}

func newCopyState(o *opts, fp ProgressFunc) *copyState {
	return &copyState{o: o, fp: fp}
}

// walk copies everything the scanner yields below 'src' into its
// rebased counterpart below 'dst'. 'preserve' says whether symlinks
// are reproduced as links (an empty or fresh destination) or
// dereferenced into real entries.
func (st *copyState) walk(src, dst string, preserve bool) error {
	sopt := scan.Options{MaxDepth: st.o.depth}

	for e, err := range scan.Entries(src, sopt) {
		if err != nil {
			return &Error{"scan", src, dst, err}
		}

		target, err := fsops.RebasePath(src, e.Path, dst)
		if err != nil {
			return &Error{"rebase", e.Path, dst, err}
		}

		m := e.Info.Mode()
		switch {
		case m.IsDir():
			err = st.copyDir(e, target)

		case m.IsRegular():
			err = st.copyFile(e.Path, target, e.Info)

		case e.Info.IsSymlink():
			err = st.copySymlink(e, target, preserve)

		default:
			// fifos, sockets and devices are not reproduced
		}

		if err != nil {
			return err
		}
	}
	return nil
}

func (st *copyState) copyDir(e *scan.Entry, target string) error {
	k, err := fsops.KindOf(target)
	if err != nil {
		return &Error{"stat", e.Path, target, err}
	}

	switch k {
	case fsops.KindNotFound:
		perm := e.Info.Mode() & fs.ModePerm
		if err := os.Mkdir(target, perm); err != nil {
			return &Error{"mkdir", e.Path, target, err}
		}
		st.res.Dirs++

	case fsops.KindBareDir, fsops.KindSymlinkToDir:
		if !st.o.rule.allowsExistingSubdirs() {
			return &Error{"copy", e.Path, target, fsops.ErrDstExists}
		}
		return nil

	default:
		return &Error{"copy", e.Path, target, fsops.ErrNotADir}
	}

	if st.o.preserve {
		if err := fsops.CloneMetadata(target, e.Info); err != nil {
			return &Error{"clone-meta", e.Path, target, err}
		}
	}
	return nil
}

func (st *copyState) copyFile(src, target string, fi *fsops.Info) error {
	cpo := fsops.CopyOpts{
		Existing: st.o.rule.existingFile(),
		BufSize:  st.o.bufsiz,
		Interval: st.o.interval,
	}

	var r fsops.Result
	var err error
	if st.fp != nil {
		pcb := func(p fsops.Progress) {
			st.fp(TreeProgress{
				Bytes: st.done + p.Bytes,
				Total: st.total,
				Src:   src,
				Dst:   target,
				Files: st.res.Files,
				Dirs:  st.res.Dirs,
			})
		}
		r, err = fsops.CopyFileWithProgress(target, src, cpo, pcb)
	} else {
		r, err = fsops.CopyFile(target, src, cpo)
	}
	if err != nil {
		return &Error{"copy-file", src, target, err}
	}

	if r.Outcome == fsops.Skipped {
		return nil
	}

	st.res.Bytes += r.Bytes
	st.res.Files++
	st.done += r.Bytes

	if st.o.preserve {
		if err := fsops.CloneMetadata(target, fi); err != nil {
			return &Error{"clone-meta", src, target, err}
		}
	}
	return nil
}

func (st *copyState) copySymlink(e *scan.Entry, target string, preserve bool) error {
	if preserve {
		if err := fsops.CloneLink(target, e.Path); err != nil {
			return &Error{"clone-link", e.Path, target, err}
		}
		st.res.Symlinks++
		return nil
	}

	// dereference into the merge
	k, err := fsops.KindOf(e.Path)
	if err != nil {
		return &Error{"stat", e.Path, target, err}
	}

	switch k {
	case fsops.KindSymlinkToFile:
		return st.copyFile(e.Path, target, e.Info)

	case fsops.KindSymlinkToDir:
		return st.derefDir(e, target)

	case fsops.KindBrokenSymlink:
		// nothing to dereference; reproduce the link text
		if err := fsops.CloneLink(target, e.Path); err != nil {
			return &Error{"clone-link", e.Path, target, err}
		}
		st.res.Symlinks++
	}
	return nil
}

// derefDir copies the subtree behind a symlinked directory into
// 'target' as real entries.
func (st *copyState) derefDir(e *scan.Entry, target string) error {
	resolved, err := filepath.EvalSymlinks(e.Path)
	if err != nil {
		return &Error{"readlink", e.Path, target, err}
	}

	created := false
	k, err := fsops.KindOf(target)
	if err != nil {
		return &Error{"stat", e.Path, target, err}
	}

	switch k {
	case fsops.KindNotFound:
		perm := e.Info.Mode() & fs.ModePerm
		if err := os.Mkdir(target, perm); err != nil {
			return &Error{"mkdir", e.Path, target, err}
		}
		st.res.Dirs++
		created = true

	case fsops.KindBareDir, fsops.KindSymlinkToDir:
		if !st.o.rule.allowsExistingSubdirs() {
			return &Error{"copy", e.Path, target, fsops.ErrDstExists}
		}

	default:
		return &Error{"copy", e.Path, target, fsops.ErrNotADir}
	}

	empty := created
	if !created {
		if empty, err = scan.IsEmpty(target); err != nil {
			return &Error{"stat", e.Path, target, err}
		}
	}
	return st.walk(resolved, target, empty)
}

// preScan measures the tree for progress totals: bytes in regular
// files, plus counts of files and directories.
func preScan(src string, depth scan.Depth) (bytes int64, files, dirs int) {
	for e, err := range scan.Entries(src, scan.Options{MaxDepth: depth}) {
		if err != nil {
			continue
		}
		switch {
		case e.Info.IsRegular():
			bytes += e.Info.Size()
			files++
		case e.Info.IsDir():
			dirs++
		}
	}
	return bytes, files, dirs
}
