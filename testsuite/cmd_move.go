// cmd_move.go -- implements the "move-file" and "move-tree" commands

package main

import (
	"fmt"

	"github.com/opencoff/go-fsops"
	"github.com/opencoff/go-fsops/tree"
	flag "github.com/opencoff/pflag"
)

type moveFileCmd struct {
	*flag.FlagSet

	existing string
}

func (t *moveFileCmd) Name() string {
	return "move-file"
}

func (t *moveFileCmd) Reset() {
	t.existing = "abort"
}

// move-file [-e abort|skip|overwrite] SRC DST
func (t *moveFileCmd) Run(env *TestEnv, args []string) error {
	if err := t.Parse(args); err != nil {
		return fmt.Errorf("move-file: %w", err)
	}

	args = t.Args()
	if len(args) != 2 {
		return fmt.Errorf("move-file: expect SRC DST")
	}

	eb, err := parseExisting(t.existing)
	if err != nil {
		return fmt.Errorf("move-file: %w", err)
	}

	r, err := fsops.MoveFile(args[1], args[0], fsops.MoveOpts{Existing: eb})
	if err != nil {
		return fmt.Errorf("move-file: %w", err)
	}

	env.log.Debug("move-file %s -> %s: %s via %s, %d bytes",
		args[0], args[1], r.Outcome, r.Method, r.Bytes)
	return nil
}

var _ Cmd = &moveFileCmd{}

type moveTreeCmd struct {
	*flag.FlagSet

	existing   string
	rule       string
	contSubdir bool
}

func (t *moveTreeCmd) Name() string {
	return "move-tree"
}

func (t *moveTreeCmd) Reset() {
	t.existing = "abort"
	t.rule = "empty"
	t.contSubdir = false
}

// move-tree [-r disallow|empty|merge] [-e ...] [-k] SRC DST
func (t *moveTreeCmd) Run(env *TestEnv, args []string) error {
	if err := t.Parse(args); err != nil {
		return fmt.Errorf("move-tree: %w", err)
	}

	args = t.Args()
	if len(args) != 2 {
		return fmt.Errorf("move-tree: expect SRC DST")
	}

	rule, err := parseRule(t.rule, t.existing, t.contSubdir)
	if err != nil {
		return fmt.Errorf("move-tree: %w", err)
	}

	r, err := tree.Move(args[1], args[0], tree.WithDestRule(rule))
	if err != nil {
		return fmt.Errorf("move-tree: %w", err)
	}

	env.log.Debug("move-tree %s -> %s via %s: %d bytes, %d files, %d dirs",
		args[0], args[1], r.Method, r.Bytes, r.Files, r.Dirs)
	return nil
}

var _ Cmd = &moveTreeCmd{}

func newMoveFileCmd() *moveFileCmd {
	n := &moveFileCmd{
		FlagSet:  flag.NewFlagSet("move-file", flag.ContinueOnError),
		existing: "abort",
	}
	n.StringVarP(&n.existing, "existing", "e", "abort", "Existing destination behaviour (abort, skip, overwrite)")
	return n
}

func newMoveTreeCmd() *moveTreeCmd {
	n := &moveTreeCmd{
		FlagSet:  flag.NewFlagSet("move-tree", flag.ContinueOnError),
		existing: "abort",
		rule:     "empty",
	}
	n.StringVarP(&n.rule, "rule", "r", "empty", "Destination rule (disallow, empty, merge)")
	n.StringVarP(&n.existing, "existing", "e", "abort", "Existing destination file behaviour under merge")
	n.BoolVarP(&n.contSubdir, "keep-subdirs", "k", false, "Continue into existing destination subdirs under merge")
	return n
}

func init() {
	RegisterCommand(newMoveFileCmd())
	RegisterCommand(newMoveTreeCmd())
}
