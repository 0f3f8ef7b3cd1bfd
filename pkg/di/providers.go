package di

import (
	"github.com/devantler-tech/guestctl/pkg/svc/directory"
	"github.com/devantler-tech/guestctl/pkg/ui/timer"
	"github.com/samber/do/v2"
)

// NewRuntime constructs the shared runtime container used by the root command
// and tests. It registers the default timer and the platform directory
// service.
func NewRuntime() *Runtime {
	return New(
		provideTimer,
		provideDirectory,
	)
}

// provideTimer registers the wall-clock timer dependency.
func provideTimer(injector Injector) error {
	do.Provide(injector, func(Injector) (timer.Timer, error) {
		return timer.New(), nil
	})

	return nil
}

// provideDirectory registers the platform's local identity service. On
// unsupported platforms the error surfaces when the dependency is resolved,
// keeping help and version output working everywhere.
func provideDirectory(injector Injector) error {
	do.Provide(injector, func(Injector) (directory.Service, error) {
		return directory.Default()
	})

	return nil
}
