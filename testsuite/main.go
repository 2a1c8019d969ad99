// main.go - scripted test-tree tool for go-fsops
//
// Builds declarative filesystem trees (seeded random files, dirs,
// symlinks), runs copy/move operations on them and checks
// expectations. Scripts are plain text; one command per line.

package main

import (
	"fmt"
	"os"
	"path"

	flag "github.com/opencoff/pflag"
)

var Z = path.Base(os.Args[0])

type config struct {
	tempdir   string
	logStdout bool
}

func main() {
	var help, stdout bool
	var tmpdir string

	fs := flag.NewFlagSet(Z, flag.ExitOnError)

	fs.BoolVarP(&help, "help", "h", false, "Show help and exit [False]")
	fs.StringVarP(&tmpdir, "workdir", "d", "", "Use `D` as the test root directory [OS Tempdir]")
	fs.BoolVarP(&stdout, "log-stdout", "", false, "Put log output to STDOUT [False]")

	fs.SetOutput(os.Stdout)

	err := fs.Parse(os.Args[1:])
	if err != nil {
		Die("%s", err)
	}

	if help {
		usage(fs)
	}

	args := fs.Args()
	if len(args) == 0 {
		Die("Usage: %s test.t [test.t...]", Z)
	}

	tempdir := os.TempDir()
	if len(tmpdir) > 0 {
		tempdir = tmpdir
	}

	cfg := &config{
		tempdir:   path.Join(tempdir, "fsops", randName(4)),
		logStdout: stdout,
	}

	var nfail int
	for _, nm := range args {
		ts, err := ParseScript(nm)
		if err != nil {
			Die("%s: %s", nm, err)
		}

		tname := path.Base(nm)
		if err = RunTest(tname, cfg, ts); err != nil {
			fmt.Fprintf(os.Stderr, "%s: FAIL\n%s\n", tname, err)
			nfail++
			continue
		}
		fmt.Printf("%s: OK\n", tname)
	}

	if nfail > 0 {
		os.Exit(1)
	}
}

func usage(fs *flag.FlagSet) {
	fmt.Printf(`%s - run scripted fsops tests

Usage: %s [options] test.t [test.t...]

Options:
`, Z, Z)
	fs.PrintDefaults()
	os.Exit(0)
}
