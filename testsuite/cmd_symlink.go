// cmd_symlink.go -- implements the "symlink" command

package main

import (
	"fmt"
	"strings"
)

type symlinkCmd struct {
}

func (t *symlinkCmd) Name() string {
	return "symlink"
}

func (t *symlinkCmd) Reset() {
}

// symlink NEWNAME@TARGET [NEWNAME@TARGET...]
//
// The target is stored verbatim; pointing a link at a missing
// target makes a broken symlink, which is a legitimate fixture.
func (t *symlinkCmd) Run(env *TestEnv, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("symlink: no links given")
	}

	for _, nm := range args {
		i := strings.Index(nm, "@")
		if i < 0 {
			return fmt.Errorf("symlink: %s: incorrect format; exp NEWNAME@TARGET", nm)
		}

		newnm := nm[:i]
		target := nm[i+1:]

		if err := mksymlink(newnm, target); err != nil {
			return fmt.Errorf("symlink: %w", err)
		}
		env.log.Debug("symlink %s -> %s", newnm, target)
	}
	return nil
}

var _ Cmd = &symlinkCmd{}

func init() {
	RegisterCommand(&symlinkCmd{})
}
