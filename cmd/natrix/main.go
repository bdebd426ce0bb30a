// Command natrix runs a natrix source file.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/tethal/natrix"
	"github.com/tethal/natrix/ascii"
)

func usage() {
	fmt.Fprintf(os.Stderr, "usage: %s [-ast] [-gc-stats] <filename> [arg]\n", os.Args[0])
}

func main() {
	astOnly := flag.Bool("ast", false, "print the parsed AST and exit, without running it")
	gcStats := flag.Bool("gc-stats", false, "log a line after every garbage collection")
	flag.Usage = usage
	flag.Parse()

	args := flag.Args()
	if len(args) < 1 || len(args) > 2 {
		usage()
		log.Fatal("wrong number of arguments")
	}

	filename := args[0]
	argValue := int64(0)
	if len(args) == 2 {
		v, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil || v < 0 {
			log.Fatal("arg must be a non-negative decimal integer")
		}
		argValue = v
	}

	source, err := natrix.SourceFromFile(filename)
	if err != nil {
		log.Fatal(err)
	}

	cfg := natrix.DefaultConfig()
	cfg.GCStats = *gcStats
	if cfg.GCStats {
		cfg.GCStatsWriter = func(format string, a ...any) {
			fmt.Fprintf(os.Stderr, format+"\n", a...)
		}
	}

	diag := natrix.NewWriterDiagnosticHandler(os.Stderr, ascii.DefaultTheme)

	arena := natrix.NewArena(cfg)
	file, ok := natrix.ParseFile(arena, source, diag, cfg)
	if !ok {
		os.Exit(1)
	}

	if *astOnly {
		fmt.Println(natrix.DumpAST(file, source))
		return
	}

	os.Exit(run(cfg, source, file, argValue))
}

// run executes file, recovering a RuntimeError panic at this one
// boundary (spec.md §7: runtime failures are fatal within the
// evaluator, but the process itself reports them as a single
// diagnostic line and exits non-zero rather than crashing with a Go
// stack trace).
func run(cfg natrix.Config, source *natrix.Source, file *natrix.File, argValue int64) (exitCode int) {
	defer func() {
		if r := recover(); r != nil {
			rerr, ok := r.(natrix.RuntimeError)
			if !ok {
				panic(r)
			}
			fmt.Fprintln(os.Stderr, rerr.Error())
			exitCode = 1
		}
	}()

	gc := natrix.NewGC(cfg)
	eval := natrix.NewEvaluator(gc, source, os.Stdout)
	eval.Bind("arg", natrix.NewInt(gc, argValue))
	eval.Run(file)
	return 0
}
