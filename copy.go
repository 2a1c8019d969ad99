// copy.go - policy driven single file copy
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
	"io"
	"io/fs"
	"os"
)

// ExistingFileBehaviour picks what happens when the destination
// of a file copy or move already exists.
type ExistingFileBehaviour int

const (
	Abort     ExistingFileBehaviour = iota // fail with ErrDstExists
	Skip                                   // return Skipped, touch nothing
	Overwrite                              // replace the destination
)

var ebStr = map[ExistingFileBehaviour]string{
	Abort:     "abort",
	Skip:      "skip",
	Overwrite: "overwrite",
}

// String returns the name of an ExistingFileBehaviour
func (eb ExistingFileBehaviour) String() string {
	if s, ok := ebStr[eb]; ok {
		return s
	}
	return "unknown"
}

// Outcome says what a finished operation did to the destination.
type Outcome int

const (
	Created     Outcome = iota // destination did not exist before
	Overwritten                // destination existed and was replaced
	Skipped                    // destination existed; nothing was done
)

var outStr = map[Outcome]string{
	Created:     "created",
	Overwritten: "overwritten",
	Skipped:     "skipped",
}

// String returns the name of an Outcome
func (o Outcome) String() string {
	if s, ok := outStr[o]; ok {
		return s
	}
	return "unknown"
}

// Method says how a finished move relocated the bytes.
type Method int

const (
	MethodCopy       Method = iota // plain byte copy (all copies)
	MethodRename                   // atomic rename; no user-space bytes moved
	MethodCopyDelete               // byte copy followed by source removal
)

var methStr = map[Method]string{
	MethodCopy:       "copy",
	MethodRename:     "rename",
	MethodCopyDelete: "copy-and-delete",
}

// String returns the name of a Method
func (m Method) String() string {
	if s, ok := methStr[m]; ok {
		return s
	}
	return "unknown"
}

// Result describes a finished file copy or move. Bytes is the
// number of bytes physically written to the destination - except
// for MethodRename where it is the source file size.
type Result struct {
	Outcome Outcome
	Method  Method
	Bytes   int64
}

// CopyOpts are the options for CopyFile and CopyFileWithProgress.
// Zero values select abort-on-existing and the default buffer and
// progress interval sizes.
type CopyOpts struct {
	Existing ExistingFileBehaviour

	// copy buffer size in bytes; used by the progress variant
	BufSize int

	// byte granularity of progress updates
	Interval int64
}

// CopyFile copies the file at 'src' to 'dst'. A symlink source is
// dereferenced: the destination is always a real file with the
// terminal target's contents. The destination materialises via a
// temp file + rename, so a failed copy never leaves a partial
// destination behind.
func CopyFile(dst, src string, opt CopyOpts) (Result, error) {
	return copyFile(dst, src, opt, nil)
}

// CopyFileWithProgress is CopyFile with a progress callback; 'fp'
// is invoked every opt.Interval bytes and once at completion with
// Bytes == Total.
func CopyFileWithProgress(dst, src string, opt CopyOpts, fp ProgressFunc) (Result, error) {
	return copyFile(dst, src, opt, fp)
}

func copyFile(dst, src string, opt CopyOpts, fp ProgressFunc) (Result, error) {
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

	n, err := writeFile(vd.nm, vs, opt, fp)
	if err != nil {
		return Result{}, err
	}

	out := Created
	if vd.exists {
		out = Overwritten
	}
	return Result{Outcome: out, Bytes: n}, nil
}

// writeFile streams the validated source into 'dst'; the policy
// decisions have all been made by now.
func writeFile(dst string, vs *validatedSource, opt CopyOpts, fp ProgressFunc) (int64, error) {
	perm := vs.fi.Mode() & fs.ModePerm

	// CoW clone via a path-level OS primitive where one exists;
	// the progress variant always takes the byte loop so the
	// meter sees real transfers.
	if fp == nil {
		if done, err := sysCopyPath(dst, vs.nm, perm); done || err != nil {
			if err != nil {
				return 0, err
			}
			return vs.fi.Size(), nil
		}
	}

	s, err := os.Open(vs.nm)
	if err != nil {
		return 0, &OpError{"open-src", vs.nm, dst, err}
	}
	defer s.Close()

	d, err := NewSafeFile(dst, OPT_OVERWRITE, os.O_CREATE|os.O_RDWR, perm)
	if err != nil {
		return 0, &OpError{"safefile", vs.nm, dst, err}
	}
	defer d.Abort()

	var n int64
	if fp == nil {
		if n, err = copyFd(d.File, s, vs.fi); err != nil {
			return 0, err
		}
	} else {
		m := newMeter(fp, opt.Interval, vs.fi.Size())
		if n, err = copyFdMeter(d.File, s, opt.BufSize, m); err != nil {
			return 0, &OpError{"copy", vs.nm, dst, err}
		}
		m.finish()
	}

	if err = d.Close(); err != nil {
		return 0, &OpError{"close", vs.nm, dst, err}
	}
	return n, nil
}

// copyFd moves all of 'src' into 'dst' using the most efficient OS
// primitive available - CoW facilities where the filesystem has
// them, an mmap'd copy otherwise.
func copyFd(dst, src *os.File, si *Info) (int64, error) {
	di, err := Fstat(dst)
	if err != nil {
		return 0, &OpError{"fstat-dst", src.Name(), dst.Name(), err}
	}

	if di.IsSameFS(si) {
		if err = sysCopyFd(dst, src); err != nil {
			return 0, err
		}
		return si.Size(), nil
	}

	if err = copyViaMmap(dst, src); err != nil {
		return 0, err
	}
	return si.Size(), nil
}

// copyFdMeter is the byte-counting copy loop used by the progress
// variants.
func copyFdMeter(dst, src *os.File, bufsiz int, m *meter) (int64, error) {
	if bufsiz <= 0 {
		bufsiz = DefaultBufSize
	}

	buf := make([]byte, bufsiz)
	var total int64
	for {
		nr, err := src.Read(buf)
		if nr > 0 {
			nw, werr := fullWrite(dst, buf[:nr])
			total += int64(nw)
			if werr != nil {
				return total, werr
			}
			m.add(int64(nw))
		}
		if err == io.EOF {
			return total, nil
		}
		if err != nil {
			return total, err
		}
	}
}
