// Package main is the entry point for the guestctl application.
package main

import (
	"os"
	"runtime/debug"

	"github.com/devantler-tech/guestctl/internal/buildmeta"
	"github.com/devantler-tech/guestctl/pkg/cli/cmd"
	"github.com/devantler-tech/guestctl/pkg/ui/notify"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

//nolint:nonamedreturns // Named return simplifies panic recovery logic.
func run(args []string) (exitCode int) {
	defer func() {
		if r := recover(); r != nil {
			notify.Errorf(os.Stderr, "panic recovered: %v\n%s", r, debug.Stack())

			exitCode = 1
		}
	}()

	rootCmd := cmd.NewRootCmd(buildmeta.Version, buildmeta.Commit, buildmeta.Date)
	rootCmd.SetArgs(args)

	err := cmd.Execute(rootCmd)
	if err != nil {
		notify.Errorf(rootCmd.ErrOrStderr(), "%v", err)

		return 1
	}

	return 0
}
