// Package resolver locates well-known security principals by their stable
// identifiers, independent of display-name renames and localization.
package resolver

import (
	"context"
	"errors"
	"fmt"

	"github.com/devantler-tech/guestctl/pkg/sid"
	"github.com/devantler-tech/guestctl/pkg/svc/directory"
)

// ErrAccountNotFound is returned when no local account carries the requested
// well-known relative identifier, e.g. when the account has been deleted.
var ErrAccountNotFound = errors.New("account not found")

// DefaultAdministratorsName is the conventional display name used when the
// built-in Administrators group identifier cannot be translated on this host.
const DefaultAdministratorsName = "Administrators"

// Resolver resolves accounts and groups through a directory service.
type Resolver struct {
	directory directory.Service
}

// New constructs a Resolver over the given directory service.
func New(svc directory.Service) *Resolver {
	return &Resolver{directory: svc}
}

// AccountByWellKnownRID scans all local accounts and returns the one whose
// stable identifier ends in the given well-known relative identifier. The
// display name plays no part in the match.
func (r *Resolver) AccountByWellKnownRID(ctx context.Context, rid uint32) (directory.Account, error) {
	accounts, err := r.directory.Accounts(ctx)
	if err != nil {
		return directory.Account{}, fmt.Errorf("enumerate local accounts: %w", err)
	}

	for _, account := range accounts {
		if account.ID.HasWellKnownRID(rid) {
			return account, nil
		}
	}

	return directory.Account{}, fmt.Errorf(
		"%w: no local account with relative identifier %d",
		ErrAccountNotFound,
		rid,
	)
}

// GroupByStableID translates a well-known group identifier into the host's
// current display name. Translation failure is not fatal: the returned group
// carries fallbackName and the error describes the failed translation so the
// caller can warn and continue. Subsequent membership operations compare by
// identifier, so a conventional name is good enough here.
func (r *Resolver) GroupByStableID(
	ctx context.Context,
	id sid.ID,
	fallbackName string,
) (directory.Group, error) {
	name, err := r.directory.LookupWellKnownGroup(ctx, id)
	if err != nil {
		return directory.Group{Name: fallbackName, ID: id}, fmt.Errorf(
			"translate group %s: %w",
			id,
			err,
		)
	}

	return directory.Group{Name: name, ID: id}, nil
}
