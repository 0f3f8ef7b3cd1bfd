// Package inspector reads the current state of a resolved principal: its
// enabled flag and its membership in a local group.
package inspector

import (
	"context"
	"fmt"

	"github.com/devantler-tech/guestctl/pkg/sid"
	"github.com/devantler-tech/guestctl/pkg/svc/directory"
)

// Inspector reports account state through a directory service.
type Inspector struct {
	directory directory.Service
}

// New constructs an Inspector over the given directory service.
func New(svc directory.Service) *Inspector {
	return &Inspector{directory: svc}
}

// EnabledState reports whether the account snapshot is enabled.
func (i *Inspector) EnabledState(account directory.Account) bool {
	return account.Enabled
}

// IsMember reports whether any member of the group carries the given stable
// identifier. A failed member enumeration is treated as "not a member" so
// that audit and report flows stay resilient; the returned error is advisory
// and should at most be surfaced as a warning.
func (i *Inspector) IsMember(ctx context.Context, group directory.Group, id sid.ID) (bool, error) {
	members, err := i.directory.GroupMembers(ctx, group.Name)
	if err != nil {
		return false, fmt.Errorf("enumerate members of group %q: %w", group.Name, err)
	}

	for _, member := range members {
		if member.Equal(id) {
			return true, nil
		}
	}

	return false, nil
}
