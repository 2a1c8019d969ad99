// cmd.go -- command registry and script parsing
//
// A script is a sequence of lines; '#' starts a comment. The first
// word of a line names a registered command, the rest are its
// arguments (shell quoting rules apply).

package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/opencoff/shlex"
)

// Cmd is one scriptable command.
type Cmd interface {
	Name() string

	// Run executes the command; flag state is reset between
	// invocations via Reset.
	Run(env *TestEnv, args []string) error
	Reset()
}

var registry = make(map[string]Cmd)

func RegisterCommand(c Cmd) {
	if _, ok := registry[c.Name()]; ok {
		panic(fmt.Sprintf("command %s registered twice", c.Name()))
	}
	registry[c.Name()] = c
}

// TestStep is a parsed script line: the command and its args.
type TestStep struct {
	Cmd  Cmd
	Args []string
	Line int
}

// ParseScript reads 'nm' and resolves each line against the
// command registry.
func ParseScript(nm string) ([]TestStep, error) {
	fd, err := os.Open(nm)
	if err != nil {
		return nil, err
	}
	defer fd.Close()

	var steps []TestStep
	var lineno int

	sc := bufio.NewScanner(fd)
	for sc.Scan() {
		lineno++
		line := strings.TrimSpace(sc.Text())
		if len(line) == 0 || line[0] == '#' {
			continue
		}

		words, err := shlex.Split(line)
		if err != nil {
			return nil, fmt.Errorf("%s: %d: %w", nm, lineno, err)
		}
		if len(words) == 0 {
			continue
		}

		cmd, ok := registry[words[0]]
		if !ok {
			return nil, fmt.Errorf("%s: %d: unknown command '%s'", nm, lineno, words[0])
		}

		steps = append(steps, TestStep{Cmd: cmd, Args: words[1:], Line: lineno})
	}

	if err := sc.Err(); err != nil {
		return nil, err
	}
	return steps, nil
}
