// internal/appshell/shell.go
package appshell

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
)

// RunFunc is the entry point of a tool.
type RunFunc func(context.Context, []string, io.Writer, io.Writer) int

// Main runs a tool with a signal-aware context and exits with its code.
func Main(run RunFunc) {
	os.Exit(Exec(run, os.Args[1:]))
}

// Exec is Main without os.Exit. No arguments means -h.
func Exec(run RunFunc, argv []string) int {
	if len(argv) == 0 {
		argv = []string{"-h"}
	}
	return exec(run, argv)
}

// Serve runs a long-lived tool. It starts without arguments, and a
// shutdown by signal keeps the tool's own exit code.
func Serve(run RunFunc) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

func exec(run RunFunc, argv []string) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	code := run(ctx, argv, os.Stdout, os.Stderr)
	// Normalize cancellation exit code.
	if ctx.Err() != nil && code == 0 {
		code = 130
	}
	return code
}
