package v1alpha1

import (
	"errors"
	"fmt"
)

// ErrInvalidDesiredState is returned when an ensure value is not a known
// DesiredState.
var ErrInvalidDesiredState = errors.New("invalid desired state")

// Validate checks that the policy is internally consistent.
func (p *Policy) Validate() error {
	_, err := ParseDesiredState(string(p.Ensure))
	if err != nil {
		return fmt.Errorf("validate policy: %w", err)
	}

	return nil
}
