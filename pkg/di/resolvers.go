package di

import (
	"fmt"

	"github.com/devantler-tech/guestctl/pkg/svc/directory"
	"github.com/devantler-tech/guestctl/pkg/ui/timer"
	"github.com/samber/do/v2"
)

// ResolveTimer retrieves the timer dependency from the injector.
func ResolveTimer(injector Injector) (timer.Timer, error) {
	tmr, err := do.Invoke[timer.Timer](injector)
	if err != nil {
		return nil, fmt.Errorf("resolve timer dependency: %w", err)
	}

	return tmr, nil
}

// ResolveDirectory retrieves the directory service dependency from the
// injector.
func ResolveDirectory(injector Injector) (directory.Service, error) {
	svc, err := do.Invoke[directory.Service](injector)
	if err != nil {
		return nil, fmt.Errorf("resolve directory dependency: %w", err)
	}

	return svc, nil
}
