// cmd_mkfile.go -- implements the "mkfile" command

package main

import (
	"fmt"
	"os"
	"path/filepath"

	flag "github.com/opencoff/pflag"
)

type mkfileCmd struct {
	*flag.FlagSet

	mkdir   bool
	seed    uint64
	size    SizeValue
	content string
}

func (t *mkfileCmd) Name() string {
	return "mkfile"
}

func (t *mkfileCmd) Reset() {
	t.mkdir = false
	t.seed = 0
	t.size = 8 * 1024
	t.content = ""
}

// mkfile [-d] [-s seed] [-z size] [-c literal] path...
func (t *mkfileCmd) Run(env *TestEnv, args []string) error {
	if err := t.Parse(args); err != nil {
		return fmt.Errorf("mkfile: %w", err)
	}

	args = t.Args()
	if len(args) == 0 {
		return fmt.Errorf("mkfile: no paths given")
	}

	for _, nm := range args {
		var err error

		if t.mkdir {
			env.log.Debug("mkdir %s", nm)
			err = os.MkdirAll(nm, 0700)
		} else {
			env.log.Debug("mkfile %s %d seed %d", nm, t.size.Value(), t.seed)
			err = t.mkfile(nm)
		}

		if err != nil {
			return fmt.Errorf("mkfile: %s: %w", nm, err)
		}
	}
	return nil
}

func (t *mkfileCmd) mkfile(nm string) error {
	if err := os.MkdirAll(filepath.Dir(nm), 0700); err != nil {
		return err
	}

	b := []byte(t.content)
	if len(t.content) == 0 {
		b = seededBytes(int64(t.size.Value()), t.seed)
	}
	return os.WriteFile(nm, b, 0600)
}

var _ Cmd = &mkfileCmd{}

func newMkFileCmd() *mkfileCmd {
	n := &mkfileCmd{
		FlagSet: flag.NewFlagSet("mkfile", flag.ContinueOnError),
		size:    8 * 1024,
	}
	fs := n
	fs.VarP(&n.size, "size", "z", "Size of the file to be created [8k]")
	fs.Uint64VarP(&n.seed, "seed", "s", 0, "Seed for the deterministic file content [0]")
	fs.BoolVarP(&n.mkdir, "dir", "d", false, "Make directories instead of files")
	fs.StringVarP(&n.content, "content", "c", "", "Use `S` as the literal file content")

	return n
}

func init() {
	RegisterCommand(newMkFileCmd())
}
