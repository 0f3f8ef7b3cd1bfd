// Package di wires guestctl's shared dependencies through a samber/do
// container so commands resolve them lazily and tests can substitute fakes.
package di

import (
	"github.com/samber/do/v2"
)

// Injector is the dependency injector handed to providers and resolvers.
type Injector = do.Injector

// Provider registers one or more dependencies with the injector.
type Provider func(Injector) error

// Runtime owns the dependency container shared by the root command and tests.
type Runtime struct {
	injector do.Injector
	setupErr error
}

// New constructs a Runtime and applies the given providers. Provider failures
// are deferred to Invoke so that command construction never fails.
func New(providers ...Provider) *Runtime {
	runtime := &Runtime{injector: do.New()}

	for _, provider := range providers {
		err := provider(runtime.injector)
		if err != nil {
			runtime.setupErr = err

			break
		}
	}

	return runtime
}

// Invoke runs fn with the container's injector, surfacing any provider setup
// error first.
func (r *Runtime) Invoke(fn func(Injector) error) error {
	if r.setupErr != nil {
		return r.setupErr
	}

	return fn(r.injector)
}
