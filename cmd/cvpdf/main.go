package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	os.Exit(runMain(os.Args, DefaultEnv()))
}

// runMain dispatches the command in args and returns the process exit code.
func runMain(args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	cmd, rest := args[1], args[2:]
	switch cmd {
	case "generate":
		return runGenerateCmd(rest, env)
	case "inspect":
		return runInspectCmd(rest, env)
	case "doctor":
		for _, a := range rest {
			if a == "-h" || a == "--help" {
				printDoctorUsage(env.Stdout)
				return ExitSuccess
			}
		}
		return runDoctorCmd(rest, env)
	case "completion":
		return exitWith(runCompletion(rest, env), env)
	case "version", "--version":
		fmt.Fprintf(env.Stdout, "cvpdf %s\n", Version)
		return ExitSuccess
	case "help", "-h", "--help":
		return runHelp(rest, env)
	default:
		fmt.Fprintf(env.Stderr, "unknown command: %s\n\n", cmd)
		printUsage(env.Stderr)
		return ExitUsage
	}
}

// runGenerateCmd parses flags, sizes GOMAXPROCS and runs generation until
// done or interrupted.
func runGenerateCmd(args []string, env *Environment) int {
	flags, positional, err := parseGenerateFlags(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		fmt.Fprintln(env.Stderr, err)
		return ExitUsage
	}

	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	if flags.common.verbose {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			fmt.Fprintf(env.Stderr, format+"\n", args...)
		}))
	} else {
		_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()

	return exitWith(runGenerate(ctx, positional, flags, env), env)
}

// runInspectCmd parses flags and inspects every file argument.
func runInspectCmd(args []string, env *Environment) int {
	flags, positional, err := parseInspectFlags(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		fmt.Fprintln(env.Stderr, err)
		return ExitUsage
	}
	return exitWith(runInspect(positional, flags, env), env)
}

// exitWith prints err, if any, and maps it to an exit code.
func exitWith(err error, env *Environment) int {
	if err == nil {
		return ExitSuccess
	}
	var be *batchError
	if errors.As(err, &be) {
		// Each failure was already reported with its hint.
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
	} else {
		fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err))
	}
	return exitCodeFor(err)
}
