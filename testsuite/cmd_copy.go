// cmd_copy.go -- implements the "copy-file" and "copy-tree" commands

package main

import (
	"fmt"

	"github.com/opencoff/go-fsops"
	"github.com/opencoff/go-fsops/scan"
	"github.com/opencoff/go-fsops/tree"
	flag "github.com/opencoff/pflag"
)

func parseExisting(s string) (fsops.ExistingFileBehaviour, error) {
	switch s {
	case "abort":
		return fsops.Abort, nil
	case "skip":
		return fsops.Skip, nil
	case "overwrite":
		return fsops.Overwrite, nil
	}
	return fsops.Abort, fmt.Errorf("unknown existing-file behaviour '%s'", s)
}

func parseRule(rule, existing string, contSubdir bool) (tree.Rule, error) {
	eb, err := parseExisting(existing)
	if err != nil {
		return tree.AllowEmpty(), err
	}

	switch rule {
	case "disallow":
		return tree.DisallowExisting(), nil
	case "empty":
		return tree.AllowEmpty(), nil
	case "merge":
		sb := tree.SubDirAbort
		if contSubdir {
			sb = tree.SubDirContinue
		}
		return tree.AllowNonEmpty(eb, sb), nil
	}
	return tree.AllowEmpty(), fmt.Errorf("unknown destination rule '%s'", rule)
}

type copyFileCmd struct {
	*flag.FlagSet

	existing string
}

func (t *copyFileCmd) Name() string {
	return "copy-file"
}

func (t *copyFileCmd) Reset() {
	t.existing = "abort"
}

// copy-file [-e abort|skip|overwrite] SRC DST
func (t *copyFileCmd) Run(env *TestEnv, args []string) error {
	if err := t.Parse(args); err != nil {
		return fmt.Errorf("copy-file: %w", err)
	}

	args = t.Args()
	if len(args) != 2 {
		return fmt.Errorf("copy-file: expect SRC DST")
	}

	eb, err := parseExisting(t.existing)
	if err != nil {
		return fmt.Errorf("copy-file: %w", err)
	}

	r, err := fsops.CopyFile(args[1], args[0], fsops.CopyOpts{Existing: eb})
	if err != nil {
		return fmt.Errorf("copy-file: %w", err)
	}

	env.log.Debug("copy-file %s -> %s: %s %d bytes", args[0], args[1], r.Outcome, r.Bytes)
	return nil
}

var _ Cmd = &copyFileCmd{}

type copyTreeCmd struct {
	*flag.FlagSet

	existing   string
	rule       string
	contSubdir bool
	depth      int
	preserve   bool
}

func (t *copyTreeCmd) Name() string {
	return "copy-tree"
}

func (t *copyTreeCmd) Reset() {
	t.existing = "abort"
	t.rule = "empty"
	t.contSubdir = false
	t.depth = -1
	t.preserve = false
}

// copy-tree [-r disallow|empty|merge] [-e ...] [-k] [-n depth] [-p] SRC DST
func (t *copyTreeCmd) Run(env *TestEnv, args []string) error {
	if err := t.Parse(args); err != nil {
		return fmt.Errorf("copy-tree: %w", err)
	}

	args = t.Args()
	if len(args) != 2 {
		return fmt.Errorf("copy-tree: expect SRC DST")
	}

	rule, err := parseRule(t.rule, t.existing, t.contSubdir)
	if err != nil {
		return fmt.Errorf("copy-tree: %w", err)
	}

	opts := []tree.Option{
		tree.WithDestRule(rule),
		tree.WithPreserveMetadata(t.preserve),
	}
	if t.depth >= 0 {
		opts = append(opts, tree.WithDepthLimit(scan.Limited(t.depth)))
	}

	r, err := tree.Copy(args[1], args[0], opts...)
	if err != nil {
		return fmt.Errorf("copy-tree: %w", err)
	}

	env.log.Debug("copy-tree %s -> %s: %d bytes, %d files, %d dirs, %d links",
		args[0], args[1], r.Bytes, r.Files, r.Dirs, r.Symlinks)
	return nil
}

var _ Cmd = &copyTreeCmd{}

func newCopyFileCmd() *copyFileCmd {
	n := &copyFileCmd{
		FlagSet:  flag.NewFlagSet("copy-file", flag.ContinueOnError),
		existing: "abort",
	}
	n.StringVarP(&n.existing, "existing", "e", "abort", "Existing destination behaviour (abort, skip, overwrite)")
	return n
}

func newCopyTreeCmd() *copyTreeCmd {
	n := &copyTreeCmd{
		FlagSet:  flag.NewFlagSet("copy-tree", flag.ContinueOnError),
		existing: "abort",
		rule:     "empty",
		depth:    -1,
	}
	n.StringVarP(&n.rule, "rule", "r", "empty", "Destination rule (disallow, empty, merge)")
	n.StringVarP(&n.existing, "existing", "e", "abort", "Existing destination file behaviour under merge")
	n.BoolVarP(&n.contSubdir, "keep-subdirs", "k", false, "Continue into existing destination subdirs under merge")
	n.IntVarP(&n.depth, "depth", "n", -1, "Limit copy depth to `N` [unlimited]")
	n.BoolVarP(&n.preserve, "preserve", "p", false, "Clone metadata onto copied entries")
	return n
}

func init() {
	RegisterCommand(newCopyFileCmd())
	RegisterCommand(newCopyTreeCmd())
}
