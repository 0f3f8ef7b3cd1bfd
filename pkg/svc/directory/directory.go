// Package directory abstracts the host's local identity subsystem behind a
// single capability interface: enumerate accounts, flip their enabled state,
// inspect and edit local group membership, and translate well-known
// identifiers into display names.
//
// The Windows implementation talks to the local security authority through
// golang.org/x/sys/windows and netapi32. Tests use the in-memory
// implementation in the fake subpackage.
package directory

import (
	"context"
	"errors"

	"github.com/devantler-tech/guestctl/pkg/sid"
)

// ErrUnsupportedPlatform is returned by Default on platforms without a local
// account management implementation.
var ErrUnsupportedPlatform = errors.New("local account management is not supported on this platform")

// Account is a read-only snapshot of a local account, captured fresh at the
// start of every invocation. Name is the current, possibly renamed or
// localized display name; ID is the durable handle.
type Account struct {
	// Name is the current display name of the account.
	Name string
	// ID is the account's stable security identifier.
	ID sid.ID
	// Enabled reports whether the account can log on.
	Enabled bool
}

// Group identifies a local group by stable identifier and resolved name.
type Group struct {
	// Name is the current, possibly localized display name of the group.
	Name string
	// ID is the group's stable security identifier.
	ID sid.ID
}

// Service is the capability interface over the host identity subsystem. All
// implementations are synchronous; calls block until the platform returns.
type Service interface {
	// IsElevated reports whether the invoking principal holds the local
	// administrative role.
	IsElevated() (bool, error)

	// Accounts returns a snapshot of all normal local accounts.
	Accounts(ctx context.Context) ([]Account, error)

	// SetAccountEnabled enables or disables the named account. The call is
	// idempotent: setting an already-converged state succeeds.
	SetAccountEnabled(ctx context.Context, name string, enabled bool) error

	// GroupMembers returns the stable identifiers of the named group's
	// members.
	GroupMembers(ctx context.Context, groupName string) ([]sid.ID, error)

	// RemoveGroupMember removes the member with the given identifier from
	// the named group.
	RemoveGroupMember(ctx context.Context, groupName string, member sid.ID) error

	// LookupWellKnownGroup translates a well-known group identifier into the
	// host's current display name for that group.
	LookupWellKnownGroup(ctx context.Context, group sid.ID) (string, error)
}
