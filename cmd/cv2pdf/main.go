package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

const dotEnvFile = ".env"

func main() {
	os.Exit(runMain(os.Args, DefaultEnv()))
}

// runMain dispatches the command line and returns the process exit code.
func runMain(args []string, env *Environment) int {
	if err := loadDotEnv(dotEnvFile); err != nil {
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		return ExitUsage
	}

	rest := args[1:]
	if len(rest) > 0 && rest[0] == "doctor" {
		return runDoctorCmd(rest[1:], env)
	}

	flags, positional, err := parseFlags(rest)
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v\n\n", err)
		printUsage(env.Stderr)
		return ExitUsage
	}
	if flags.help {
		printUsage(env.Stdout)
		return ExitSuccess
	}
	if flags.version {
		fmt.Fprintf(env.Stdout, "cv2pdf %s\n", Version)
		return ExitSuccess
	}

	logger := newLogger(env.Stderr, flags.common.quiet, flags.common.verbose)

	// maxprocs.Set only fails on an invalid GOMAXPROCS; runtime defaults apply.
	_, _ = maxprocs.Set(maxprocs.Logger(func(format string, a ...interface{}) {
		logger.Debug(fmt.Sprintf(format, a...))
	}))

	warnUnknownEnvVars(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := runRender(ctx, positional, flags, env, logger); err != nil {
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// newLogger returns a text logger on w. Quiet keeps errors only; verbose
// adds debug records.
func newLogger(w io.Writer, quiet, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	switch {
	case quiet:
		level = slog.LevelError
	case verbose:
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
