// rule.go - destination directory policy
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
	"fmt"

	"github.com/opencoff/go-fsops"
)

// SubDirBehaviour picks what happens when a destination
// sub-directory already exists during a merge.
type SubDirBehaviour int

const (
	SubDirAbort    SubDirBehaviour = iota // an existing sub-directory is an error
	SubDirContinue                        // an existing sub-directory is used as-is
)

type ruleKind int

const (
	allowEmpty ruleKind = iota
	disallowExisting
	allowNonEmpty
)

// Rule governs whether and how the destination of a directory
// operation may already exist. The zero value is AllowEmpty().
type Rule struct {
	kind     ruleKind
	onFile   fsops.ExistingFileBehaviour
	onSubdir SubDirBehaviour
}

// DisallowExisting requires that the destination directory not
// exist at all.
func DisallowExisting() Rule {
	return Rule{kind: disallowExisting}
}

// AllowEmpty permits a destination directory that exists but is
// empty; a missing destination is also acceptable. This is the
// default.
func AllowEmpty() Rule {
	return Rule{kind: allowEmpty}
}

// AllowNonEmpty permits merging into a destination directory with
// existing contents; the two arguments pick the per-conflict
// behaviour for existing files and existing sub-directories.
func AllowNonEmpty(onFile fsops.ExistingFileBehaviour, onSubdir SubDirBehaviour) Rule {
	return Rule{
		kind:     allowNonEmpty,
		onFile:   onFile,
		onSubdir: onSubdir,
	}
}

// String returns a printable representation of a Rule
func (r Rule) String() string {
	switch r.kind {
	case disallowExisting:
		return "disallow-existing"
	case allowEmpty:
		return "allow-empty"
	}
	return fmt.Sprintf("allow-non-empty(file=%s,subdir=%d)", r.onFile, r.onSubdir)
}

// existingFile derives the file-level policy the walker hands to
// each per-file copy.
func (r Rule) existingFile() fsops.ExistingFileBehaviour {
	if r.kind == allowNonEmpty {
		return r.onFile
	}
	return fsops.Abort
}

func (r Rule) allowsExistingSubdirs() bool {
	return r.kind == allowNonEmpty && r.onSubdir == SubDirContinue
}
