package v1alpha1

import (
	"fmt"
	"strings"
)

// DesiredState defines the target enabled/disabled state of the account.
type DesiredState string

const (
	// DesiredStateDisabled converges the account to disabled.
	DesiredStateDisabled DesiredState = "Disabled"
	// DesiredStateEnabled converges the account to enabled.
	DesiredStateEnabled DesiredState = "Enabled"
)

// ValidValues returns all valid string values for DesiredState.
func (d DesiredState) ValidValues() []string {
	return []string{string(DesiredStateDisabled), string(DesiredStateEnabled)}
}

// ParseDesiredState converts a case-insensitive string into a DesiredState.
func ParseDesiredState(raw string) (DesiredState, error) {
	for _, valid := range (DesiredState("")).ValidValues() {
		if strings.EqualFold(raw, valid) {
			return DesiredState(valid), nil
		}
	}

	return "", fmt.Errorf(
		"%w: %q (valid values: %s)",
		ErrInvalidDesiredState,
		raw,
		strings.Join((DesiredState("")).ValidValues(), ", "),
	)
}
