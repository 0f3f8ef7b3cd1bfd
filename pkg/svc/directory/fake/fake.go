// Package fake provides an in-memory directory.Service for tests. It records
// every mutation in order so tests can assert on idempotence, ordering, and
// dry-run purity without a privileged host.
package fake

import (
	"context"
	"fmt"

	"github.com/devantler-tech/guestctl/pkg/sid"
	"github.com/devantler-tech/guestctl/pkg/svc/directory"
)

// Mutation records a single state change applied to the fake directory.
type Mutation struct {
	// Op is one of "enable", "disable", or "remove-member".
	Op string
	// Target is the account name for enable/disable, or "<group>/<sid>" for
	// member removal.
	Target string
}

// Directory is an in-memory directory.Service.
type Directory struct {
	// Elevated is the result of IsElevated. Defaults to true.
	Elevated bool
	// ElevatedErr, when set, is returned by IsElevated.
	ElevatedErr error
	// AccountsErr, when set, fails account enumeration.
	AccountsErr error
	// MembersErr, when set, fails group member enumeration.
	MembersErr error
	// SetEnabledErr, when set, fails SetAccountEnabled.
	SetEnabledErr error
	// RemoveMemberErr, when set, fails RemoveGroupMember.
	RemoveMemberErr error
	// LookupErr, when set, fails well-known group translation.
	LookupErr error

	// Mutations records applied state changes in call order.
	Mutations []Mutation

	accounts   []directory.Account
	members    map[string][]sid.ID
	groupNames map[string]string
}

// New returns an empty elevated directory that translates the built-in
// Administrators identifier to "Administrators".
func New() *Directory {
	return &Directory{
		Elevated: true,
		members:  make(map[string][]sid.ID),
		groupNames: map[string]string{
			sid.BuiltinAdministrators().String(): "Administrators",
		},
	}
}

// AddAccount registers a local account snapshot.
func (d *Directory) AddAccount(name string, id sid.ID, enabled bool) {
	d.accounts = append(d.accounts, directory.Account{Name: name, ID: id, Enabled: enabled})
}

// AddGroupMember adds a member to the named group.
func (d *Directory) AddGroupMember(groupName string, member sid.ID) {
	d.members[groupName] = append(d.members[groupName], member)
}

// SetGroupName overrides the display name a well-known identifier translates
// to, emulating a localized or renamed group.
func (d *Directory) SetGroupName(id sid.ID, name string) {
	d.groupNames[id.String()] = name
}

// RenameAccount changes an account's display name without touching its
// identifier, emulating an administrator rename between invocations.
func (d *Directory) RenameAccount(id sid.ID, newName string) {
	for i := range d.accounts {
		if d.accounts[i].ID.Equal(id) {
			d.accounts[i].Name = newName
		}
	}
}

// IsElevated implements directory.Service.
func (d *Directory) IsElevated() (bool, error) {
	if d.ElevatedErr != nil {
		return false, d.ElevatedErr
	}

	return d.Elevated, nil
}

// Accounts implements directory.Service.
func (d *Directory) Accounts(_ context.Context) ([]directory.Account, error) {
	if d.AccountsErr != nil {
		return nil, d.AccountsErr
	}

	snapshot := make([]directory.Account, len(d.accounts))
	copy(snapshot, d.accounts)

	return snapshot, nil
}

// SetAccountEnabled implements directory.Service.
func (d *Directory) SetAccountEnabled(_ context.Context, name string, enabled bool) error {
	if d.SetEnabledErr != nil {
		return d.SetEnabledErr
	}

	for i := range d.accounts {
		if d.accounts[i].Name == name {
			d.accounts[i].Enabled = enabled

			op := "disable"
			if enabled {
				op = "enable"
			}

			d.Mutations = append(d.Mutations, Mutation{Op: op, Target: name})

			return nil
		}
	}

	return fmt.Errorf("fake: no account named %q", name)
}

// GroupMembers implements directory.Service.
func (d *Directory) GroupMembers(_ context.Context, groupName string) ([]sid.ID, error) {
	if d.MembersErr != nil {
		return nil, d.MembersErr
	}

	snapshot := make([]sid.ID, len(d.members[groupName]))
	copy(snapshot, d.members[groupName])

	return snapshot, nil
}

// RemoveGroupMember implements directory.Service.
func (d *Directory) RemoveGroupMember(_ context.Context, groupName string, member sid.ID) error {
	if d.RemoveMemberErr != nil {
		return d.RemoveMemberErr
	}

	remaining := d.members[groupName][:0]

	for _, id := range d.members[groupName] {
		if !id.Equal(member) {
			remaining = append(remaining, id)
		}
	}

	d.members[groupName] = remaining
	d.Mutations = append(d.Mutations, Mutation{
		Op:     "remove-member",
		Target: groupName + "/" + member.String(),
	})

	return nil
}

// LookupWellKnownGroup implements directory.Service.
func (d *Directory) LookupWellKnownGroup(_ context.Context, group sid.ID) (string, error) {
	if d.LookupErr != nil {
		return "", d.LookupErr
	}

	name, ok := d.groupNames[group.String()]
	if !ok {
		return "", fmt.Errorf("fake: no translation for %s", group)
	}

	return name, nil
}

// Interface compliance check.
var _ directory.Service = (*Directory)(nil)
