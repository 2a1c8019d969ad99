// cmd_expect.go -- implements the "expect" command

package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/opencoff/go-fsops"
	"github.com/opencoff/go-fsops/scan"
)

type expectCmd struct {
}

func (t *expectCmd) Name() string {
	return "expect"
}

func (t *expectCmd) Reset() {
}

// expect kind=KIND PATH
// expect size=N PATH
// expect absent PATH
// expect same A B
// expect tree-equal SRC DST
// expect empty PATH
func (t *expectCmd) Run(env *TestEnv, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("expect: too few arguments")
	}

	what := args[0]
	rest := args[1:]

	switch {
	case what == "absent":
		return t.absent(rest)

	case what == "same":
		return t.same(rest)

	case what == "tree-equal":
		return t.treeEqual(rest)

	case what == "empty":
		return t.empty(rest)

	case strings.HasPrefix(what, "kind="):
		return t.kind(what[len("kind="):], rest)

	case strings.HasPrefix(what, "size="):
		return t.size(what[len("size="):], rest)
	}

	return fmt.Errorf("expect: unknown assertion '%s'", what)
}

func (t *expectCmd) absent(paths []string) error {
	for _, nm := range paths {
		k, err := fsops.KindOf(nm)
		if err != nil {
			return err
		}
		if k != fsops.KindNotFound {
			return fmt.Errorf("expect: %s exists (%s); want absent", nm, k)
		}
	}
	return nil
}

func (t *expectCmd) kind(want string, paths []string) error {
	for _, nm := range paths {
		k, err := fsops.KindOf(nm)
		if err != nil {
			return err
		}
		if k.String() != want {
			return fmt.Errorf("expect: %s is %s; want %s", nm, k, want)
		}
	}
	return nil
}

func (t *expectCmd) size(want string, paths []string) error {
	z, err := strconv.ParseInt(want, 10, 64)
	if err != nil {
		return fmt.Errorf("expect: size '%s': %w", want, err)
	}

	for _, nm := range paths {
		n, err := fsops.FileSize(nm)
		if err != nil {
			return err
		}
		if n != z {
			return fmt.Errorf("expect: %s is %d bytes; want %d", nm, n, z)
		}
	}
	return nil
}

func (t *expectCmd) same(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("expect same: want two paths")
	}

	ok, err := filesEqual(args[0], args[1])
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("expect: %s and %s differ", args[0], args[1])
	}
	return nil
}

func (t *expectCmd) empty(paths []string) error {
	for _, nm := range paths {
		ok, err := scan.IsEmpty(nm)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("expect: %s is not empty", nm)
		}
	}
	return nil
}

// treeEqual checks that every relative path below src has a
// byte-identical counterpart below dst, and vice-versa.
func (t *expectCmd) treeEqual(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("expect tree-equal: want two paths")
	}

	src, dst := args[0], args[1]
	if err := coveredBy(src, dst); err != nil {
		return err
	}
	return coveredBy(dst, src)
}

func coveredBy(a, b string) error {
	for e, err := range scan.Entries(a, scan.Options{MaxDepth: scan.Unlimited()}) {
		if err != nil {
			return err
		}

		other, err := fsops.RebasePath(a, e.Path, b)
		if err != nil {
			return err
		}

		ka, err := fsops.KindOf(e.Path)
		if err != nil {
			return err
		}
		kb, err := fsops.KindOf(other)
		if err != nil {
			return err
		}
		if ka != kb {
			return fmt.Errorf("expect: %s is %s but %s is %s", e.Path, ka, other, kb)
		}

		if ka == fsops.KindBareFile {
			ok, err := filesEqual(e.Path, other)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("expect: %s and %s differ", e.Path, other)
			}
		}
	}
	return nil
}

var _ Cmd = &expectCmd{}

func init() {
	RegisterCommand(&expectCmd{})
}
