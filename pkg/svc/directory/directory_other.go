//go:build !windows

package directory

import "fmt"

// Default returns the local identity service for this host. Only Windows
// hosts carry a built-in Guest account, so other platforms report
// ErrUnsupportedPlatform at resolution time rather than at startup; help and
// version output still work everywhere.
func Default() (Service, error) {
	return nil, fmt.Errorf("%w (windows only)", ErrUnsupportedPlatform)
}
