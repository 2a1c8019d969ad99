// move.go - file move: rename fast path, copy-and-delete fallback
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

// MoveOpts are the options for MoveFile and MoveFileWithProgress.
type MoveOpts struct {
	Existing ExistingFileBehaviour

	// copy buffer size and progress granularity; used only when
	// the move degrades to a byte copy
	BufSize  int
	Interval int64
}

// MoveFile moves the file at 'src' to 'dst'. A rename is attempted
// first; when the OS reports a condition it cannot rename across
// (another volume, typically), the move degrades to a byte copy
// followed by removal of the source. A source that is a symlink to
// a file is never renamed: the target's bytes are copied and only
// the symlink is removed, so the real file stays where other
// referrers expect it.
func MoveFile(dst, src string, opt MoveOpts) (Result, error) {
	return moveFile(dst, src, opt, nil)
}

// MoveFileWithProgress is MoveFile with a progress callback. The
// rename fast path delivers a single terminal update.
func MoveFileWithProgress(dst, src string, opt MoveOpts, fp ProgressFunc) (Result, error) {
	return moveFile(dst, src, opt, fp)
}

func moveFile(dst, src string, opt MoveOpts, fp ProgressFunc) (Result, error) {
	vs, err := validateSourceFile(src)
	if err != nil {
		return Result{}, err
	}

	vd, skip, err := validateDestFile(vs, dst, opt.Existing)
	if err != nil {
		return Result{}, err
	}
	if skip {
		return Result{Outcome: Skipped}, nil
	}

	out := Created
	if vd.exists {
		out = Overwritten
	}

	cpOpt := CopyOpts{BufSize: opt.BufSize, Interval: opt.Interval}

	// the user gave us a symlink; relocating the resolved file
	// would yank it out from under every other referrer. Copy the
	// bytes and delete the link itself.
	if vs.symlinkToFile {
		n, err := writeFile(vd.nm, vs, cpOpt, fp)
		if err != nil {
			return Result{}, err
		}
		if err = os.Remove(src); err != nil {
			return Result{}, &OpError{"rm-src", src, dst, err}
		}
		return Result{Outcome: out, Method: MethodCopyDelete, Bytes: n}, nil
	}

	if err = os.Rename(src, vd.nm); err == nil {
		if fp != nil {
			newMeter(fp, opt.Interval, vs.fi.Size()).finish()
		}
		return Result{Outcome: out, Method: MethodRename, Bytes: vs.fi.Size()}, nil
	}

	if !renameFallsBack(err) {
		return Result{}, &OpError{"rename", src, dst, err}
	}

	n, err := writeFile(vd.nm, vs, cpOpt, fp)
	if err != nil {
		return Result{}, err
	}
	if err = os.Remove(src); err != nil {
		return Result{}, &OpError{"rm-src", src, dst, err}
	}
	return Result{Outcome: out, Method: MethodCopyDelete, Bytes: n}, nil
}
