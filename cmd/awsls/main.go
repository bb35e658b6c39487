// awsls - read-only AWS inventory on the command line.
package main

import (
	"context"
	"errors"
	"io"
	"os"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/oklog/run"

	"github.com/yairfalse/awsls/internal/format"
)

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}

// execute runs one command next to a signal handler and returns the exit
// code.
func execute(args []string, stdout, stderr io.Writer) int {
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if len(args) == 0 {
		_ = rootCmd.Help()
		return 0
	}
	rootCmd.SetArgs(args)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var g run.Group
	g.Add(func() error {
		return rootCmd.ExecuteContext(ctx)
	}, func(error) {
		cancel()
	})
	g.Add(run.SignalHandler(ctx, os.Interrupt, syscall.SIGTERM))

	err := g.Run()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err != nil {
		current.log.Debug().Err(err).Msg("command failed")
	}
	current.close(shutdownCtx)

	return exitCode(stderr, err)
}

// exitCode prints err in red and maps it to an exit code.
func exitCode(stderr io.Writer, err error) int {
	if err == nil {
		return 0
	}

	red := color.New(color.FgRed)

	var sigErr run.SignalError
	if errors.As(err, &sigErr) {
		red.Fprintf(stderr, "Error: interrupted by %v\n", sigErr.Signal)
		return 1
	}

	if errors.Is(err, errMissingCommand) {
		red.Fprintln(stderr, "Error: Use -h for help")
		return 1
	}

	var validation *format.ValidationError
	if errors.As(err, &validation) {
		red.Fprintf(stderr, "Error: fatal, no recovery: %v\n", err)
		return 1
	}

	red.Fprintln(stderr, "Error: "+err.Error())
	return 1
}
