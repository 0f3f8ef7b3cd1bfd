// Package v1alpha1 defines the typed configuration surface of guestctl: the
// hardening policy for the built-in Guest account.
package v1alpha1

// Policy describes the desired state of the Guest account and the execution
// mode of a single guestctl run. Values are layered from defaults, an
// optional config file, environment variables, and flags.
type Policy struct {
	// Ensure is the desired enabled/disabled state of the Guest account.
	Ensure DesiredState `json:"ensure,omitzero" mapstructure:"ensure"`

	// RemoveFromAdministrators additionally enforces that the Guest account
	// is not a member of the built-in Administrators group.
	RemoveFromAdministrators bool `json:"removeFromAdministrators,omitzero" mapstructure:"removeFromAdministrators"`

	// AuditOnly reports the current state without mutating anything. When
	// set, Ensure is ignored.
	AuditOnly bool `json:"auditOnly,omitzero" mapstructure:"auditOnly"`

	// DryRun logs intended actions without executing them.
	DryRun bool `json:"dryRun,omitzero" mapstructure:"dryRun"`

	// Confirm prompts interactively before each mutation. Prompting is
	// skipped automatically when stdin is not a terminal.
	Confirm bool `json:"confirm,omitzero" mapstructure:"confirm"`
}

// NewPolicy returns a Policy with defaults applied: the Guest account is
// ensured Disabled and no group membership is enforced.
func NewPolicy() *Policy {
	return &Policy{
		Ensure: DesiredStateDisabled,
	}
}
