// Command jobsentinel scores job postings locally and keeps a SQLite audit
// log of reported postings.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

// errUsage marks errors caused by bad arguments.
var errUsage = errors.New("usage error")

const usage = `usage: jobsentinel <command> [flags]

commands:
  score     score a posting given as JSON or flags
  extract   extract a posting from a job page
  report    append a posting to the local audit log
  reports   list the local audit log
`

type env struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	os.Exit(run(ctx, os.Args[1:], env{stdin: os.Stdin, stdout: os.Stdout, stderr: os.Stderr}))
}

func run(ctx context.Context, args []string, e env) int {
	if len(args) == 0 {
		fmt.Fprint(e.stderr, usage)
		return exitUsage
	}

	var err error
	switch args[0] {
	case "score":
		err = runScore(ctx, args[1:], e)
	case "extract":
		err = runExtract(ctx, args[1:], e)
	case "report":
		err = runReport(ctx, args[1:], e)
	case "reports":
		err = runReports(ctx, args[1:], e)
	case "help", "-h", "--help":
		fmt.Fprint(e.stdout, usage)
		return exitOK
	default:
		fmt.Fprintf(e.stderr, "unknown command %q\n\n%s", args[0], usage)
		return exitUsage
	}

	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, errUsage):
		fmt.Fprintln(e.stderr, err)
		return exitUsage
	default:
		fmt.Fprintf(e.stderr, "jobsentinel %s: %v\n", args[0], err)
		return exitError
	}
}

func usageErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errUsage, fmt.Sprintf(format, args...))
}
