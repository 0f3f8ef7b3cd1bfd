// Package reconciler converges the Guest account onto a desired state. It
// compares desired against current, applies only the changes needed, and
// reports a no-op when already converged. Every mutation goes through the
// gate controller, and the account transition is always applied before the
// membership transition.
package reconciler

import (
	"context"
	"errors"
	"fmt"
	"io"

	v1alpha1 "github.com/devantler-tech/guestctl/pkg/apis/guest/v1alpha1"
	"github.com/devantler-tech/guestctl/pkg/svc/directory"
	"github.com/devantler-tech/guestctl/pkg/svc/gate"
	"github.com/devantler-tech/guestctl/pkg/svc/inspector"
	"github.com/devantler-tech/guestctl/pkg/ui/notify"
)

// ErrMutation marks a failed platform mutation. Mutation failures are
// terminal for the remainder of the run; already-applied steps are not rolled
// back because every step is independently idempotent and re-running is the
// recovery path.
var ErrMutation = errors.New("mutation failed")

// Result records the outcome of a single convergence pass.
type Result struct {
	// AccountApplied reports whether an enable/disable mutation executed.
	AccountApplied bool
	// MembershipApplied reports whether a group-removal mutation executed.
	MembershipApplied bool
}

// Reconciler is the convergence engine.
type Reconciler struct {
	directory directory.Service
	inspector *inspector.Inspector
	gate      *gate.Controller
	writer    io.Writer
}

// New constructs a Reconciler. All mutations are routed through the given
// gate controller and all reporting goes to writer.
func New(svc directory.Service, gateController *gate.Controller, writer io.Writer) *Reconciler {
	return &Reconciler{
		directory: svc,
		inspector: inspector.New(svc),
		gate:      gateController,
		writer:    writer,
	}
}

// Reconcile applies the policy to the resolved account: first the
// enabled/disabled transition, then, when requested, removal from the
// privileged group. Membership cleanup runs second because it is a secondary
// hardening step conditional on the account having a determinate identity.
func (r *Reconciler) Reconcile(
	ctx context.Context,
	account directory.Account,
	group directory.Group,
	policy *v1alpha1.Policy,
) (*Result, error) {
	result := &Result{}

	applied, err := r.convergeEnabledState(ctx, account, policy.Ensure)
	if err != nil {
		return result, err
	}

	result.AccountApplied = applied

	if policy.RemoveFromAdministrators {
		applied, err = r.convergeMembership(ctx, account, group)
		if err != nil {
			return result, err
		}

		result.MembershipApplied = applied
	}

	return result, nil
}

func (r *Reconciler) convergeEnabledState(
	ctx context.Context,
	account directory.Account,
	desired v1alpha1.DesiredState,
) (bool, error) {
	wantEnabled := desired == v1alpha1.DesiredStateEnabled

	if account.Enabled == wantEnabled {
		notify.Activityf(
			r.writer,
			"no change: account %q already %s",
			account.Name,
			stateWord(account.Enabled),
		)

		return false, nil
	}

	verb := "disable"
	if wantEnabled {
		verb = "enable"
	}

	description := fmt.Sprintf("%s account %q", verb, account.Name)

	applied, err := r.gate.Run(description, func() error {
		return r.directory.SetAccountEnabled(ctx, account.Name, wantEnabled)
	})
	if err != nil {
		return false, fmt.Errorf("%w: %s: %w", ErrMutation, description, err)
	}

	if applied {
		notify.Successf(r.writer, "account %q %sd", account.Name, verb)
	}

	return applied, nil
}

func (r *Reconciler) convergeMembership(
	ctx context.Context,
	account directory.Account,
	group directory.Group,
) (bool, error) {
	member, queryErr := r.inspector.IsMember(ctx, group, account.ID)
	if queryErr != nil {
		notify.Warningf(
			r.writer,
			"membership query failed, treating %q as not a member: %v",
			account.Name,
			queryErr,
		)
	}

	if !member {
		notify.Activityf(
			r.writer,
			"no change: account %q is not a member of %q",
			account.Name,
			group.Name,
		)

		return false, nil
	}

	description := fmt.Sprintf("remove account %q from group %q", account.Name, group.Name)

	applied, err := r.gate.Run(description, func() error {
		return r.directory.RemoveGroupMember(ctx, group.Name, account.ID)
	})
	if err != nil {
		return false, fmt.Errorf("%w: %s: %w", ErrMutation, description, err)
	}

	if applied {
		notify.Successf(r.writer, "removed %q from %q", account.Name, group.Name)
	}

	return applied, nil
}

func stateWord(enabled bool) string {
	if enabled {
		return "enabled"
	}

	return "disabled"
}
