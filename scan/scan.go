// scan.go - lazy, depth bounded directory iterator
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

// Package scan walks a directory tree lazily, one open directory
// handle at a time, yielding each entry exactly once together with
// its metadata and depth. Symbolic links are not followed unless
// asked; per-entry I/O errors are yielded as items so the consumer
// decides whether to abort.
package scan

import (
	"fmt"
	"io"
	"iter"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/opencoff/go-fsops"
	"github.com/puzpuzpuz/xsync/v3"
)

// Depth bounds how far below the base directory a scan descends.
// The zero value is unlimited.
type Depth struct {
	limited bool
	max     int
}

// Unlimited places no bound on the descent.
func Unlimited() Depth {
	return Depth{}
}

// Limited bounds the descent: entries at depth 'max' are yielded
// but directories at that depth are not entered.
func Limited(max int) Depth {
	return Depth{limited: true, max: max}
}

// String returns a printable representation of a Depth
func (d Depth) String() string {
	if d.limited {
		return fmt.Sprintf("limited(%d)", d.max)
	}
	return "unlimited"
}

// descends says whether a directory sitting at depth 'd' is entered.
func (d Depth) descends(at EntryDepth) bool {
	return !d.limited || int(at) < d.max
}

// EntryDepth is how far below the base directory an entry sits.
// The base itself is BaseDir; its immediate children are 0.
type EntryDepth int

// BaseDir is the depth of the base directory itself.
const BaseDir EntryDepth = -1

// String returns a printable representation of an EntryDepth
func (d EntryDepth) String() string {
	if d == BaseDir {
		return "base"
	}
	return fmt.Sprintf("at-depth(%d)", int(d))
}

// Options control the behavior of a scan.
type Options struct {
	// yield the base directory itself as the first item
	YieldBase bool

	// how deep to descend
	MaxDepth Depth

	// resolve symlinks encountered during enumeration: the
	// resolved path and target metadata are yielded in place of
	// the link's own
	FollowSymlinks bool

	// resolve the base directory if it is itself a symlink;
	// independent of FollowSymlinks
	FollowBaseSymlink bool

	// shell-glob patterns (doublestar syntax) matched against the
	// basename; matching entries are neither yielded nor entered
	Excludes []string
}

// Entry is a single scanned filesystem entry.
type Entry struct {
	Path  string
	Info  *fsops.Info
	Depth EntryDepth

	// the yielded path is a resolved symlink target
	FollowedSymlink bool
}

// String returns a printable representation of an Entry
func (e *Entry) String() string {
	return fmt.Sprintf("%s [%s] %d", e.Path, e.Depth.String(), e.Info.Size())
}

// Entries lazily scans 'base' and yields each entry exactly once.
// The sequence is finite and non-restartable; build a fresh one to
// scan again. Per-entry failures appear as (nil, err) items and the
// scan continues past them unless the consumer breaks.
func Entries(base string, opt Options) iter.Seq2[*Entry, error] {
	return New(base, opt).Entries()
}

// Scanner is a single-use scan of a base directory. Use New +
// Entries; after the sequence is exhausted, CoveredEntireTree says
// whether the depth bound cut the traversal short.
type Scanner struct {
	base string
	opt  Options
	s    scanner
}

// New builds a Scanner for 'base'.
func New(base string, opt Options) *Scanner {
	return &Scanner{base: base, opt: opt}
}

// Entries yields each entry exactly once; see the package-level
// Entries for the full contract.
func (sc *Scanner) Entries() iter.Seq2[*Entry, error] {
	return func(yield func(*Entry, error) bool) {
		sc.s = scanner{opt: sc.opt}
		defer sc.s.closeCur()
		sc.s.run(sc.base, yield)
	}
}

// CoveredEntireTree returns true when the finished scan descended
// into every directory it saw - ie nothing was cut off by the
// depth limit.
func (sc *Scanner) CoveredEntireTree() bool {
	return !sc.s.truncated
}

type pendingDir struct {
	nm    string
	depth EntryDepth
}

// scanner holds at most one open directory handle; finished
// directories are closed before the next pending one is opened.
type scanner struct {
	opt Options

	cur      *os.File
	curNm    string
	curDepth EntryDepth

	pending []pendingDir

	// dev:ino of every yielded entry, tracked only when following
	// symlinks - the one-time yield discipline that bounds cycles
	visited *xsync.MapOf[string, bool]

	// a directory was left unentered because of the depth limit
	truncated bool
}

func (s *scanner) run(base string, yield func(*Entry, error) bool) {
	li, err := fsops.Lstat(base)
	if err != nil {
		yield(nil, &Error{"lstat", base, err})
		return
	}

	if li.IsSymlink() {
		if !s.opt.FollowBaseSymlink {
			yield(nil, &Error{"scan", base, fsops.ErrNotADir})
			return
		}

		resolved, err := filepath.EvalSymlinks(base)
		if err != nil {
			yield(nil, &Error{"readlink", base, err})
			return
		}
		if li, err = fsops.Lstat(resolved); err != nil {
			yield(nil, &Error{"lstat", resolved, err})
			return
		}
		base = resolved
	}

	if !li.IsDir() {
		yield(nil, &Error{"scan", base, fsops.ErrNotADir})
		return
	}

	if s.opt.FollowSymlinks {
		s.visited = xsync.NewMapOf[string, bool]()
		s.seenBefore(li)
	}

	if s.opt.YieldBase {
		if !yield(&Entry{Path: base, Info: li, Depth: BaseDir}, nil) {
			return
		}
	}

	s.pending = append(s.pending, pendingDir{base, BaseDir})

	for len(s.pending) > 0 || s.cur != nil {
		if s.cur == nil {
			p := s.pending[0]
			s.pending = s.pending[1:]

			fd, err := os.Open(p.nm)
			if err != nil {
				if !yield(nil, &Error{"opendir", p.nm, err}) {
					return
				}
				continue
			}
			s.cur, s.curNm, s.curDepth = fd, p.nm, p.depth
		}

		ents, err := s.cur.ReadDir(1)
		if err == io.EOF {
			s.closeCur()
			continue
		}
		if err != nil {
			nm := s.curNm
			s.closeCur()
			if !yield(nil, &Error{"readdir", nm, err}) {
				return
			}
			continue
		}

		de := ents[0]
		if s.excluded(de.Name()) {
			continue
		}

		nm := filepath.Join(s.curNm, de.Name())
		fi, err := fsops.Lstat(nm)
		if err != nil {
			if !yield(nil, &Error{"lstat", nm, err}) {
				return
			}
			continue
		}

		followed := false
		if fi.IsSymlink() && s.opt.FollowSymlinks {
			resolved, err := filepath.EvalSymlinks(nm)
			if err != nil {
				if !yield(nil, &Error{"readlink", nm, err}) {
					return
				}
				continue
			}

			rfi, err := fsops.Lstat(resolved)
			if err != nil {
				if !yield(nil, &Error{"lstat", resolved, err}) {
					return
				}
				continue
			}
			nm, fi, followed = resolved, rfi, true
		}

		if s.visited != nil && s.seenBefore(fi) {
			continue
		}

		depth := s.curDepth + 1
		if !yield(&Entry{Path: nm, Info: fi, Depth: depth, FollowedSymlink: followed}, nil) {
			return
		}

		if fi.IsDir() {
			if s.opt.MaxDepth.descends(depth) {
				s.pending = append(s.pending, pendingDir{nm, depth})
			} else {
				s.truncated = true
			}
		}
	}
}

func (s *scanner) closeCur() {
	if s.cur != nil {
		s.cur.Close()
		s.cur = nil
	}
}

// return true iff basename 'nm' matches one of the exclude patterns
func (s *scanner) excluded(nm string) bool {
	for _, pat := range s.opt.Excludes {
		if ok, err := doublestar.Match(pat, nm); err == nil && ok {
			return true
		}
	}
	return false
}

// track this entry's identity; return true if we've yielded it before
func (s *scanner) seenBefore(fi *fsops.Info) bool {
	key := fmt.Sprintf("%d:%d:%d", fi.Dev, fi.Rdev, fi.Ino)
	_, loaded := s.visited.LoadOrStore(key, true)
	return loaded
}
