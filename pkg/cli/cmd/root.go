// Package cmd builds the guestctl command line interface.
package cmd

import (
	"errors"
	"fmt"
	"io"

	runtime "github.com/devantler-tech/guestctl/pkg/di"
	"github.com/devantler-tech/guestctl/pkg/io/configmanager"
	"github.com/devantler-tech/guestctl/pkg/sid"
	"github.com/devantler-tech/guestctl/pkg/svc/directory"
	"github.com/devantler-tech/guestctl/pkg/svc/gate"
	"github.com/devantler-tech/guestctl/pkg/svc/inspector"
	"github.com/devantler-tech/guestctl/pkg/svc/reconciler"
	"github.com/devantler-tech/guestctl/pkg/svc/resolver"
	"github.com/devantler-tech/guestctl/pkg/ui/notify"
	"github.com/devantler-tech/guestctl/pkg/ui/timer"
	"github.com/spf13/cobra"
)

// ErrPermissionDenied is returned when the invoking principal does not hold
// the local administrative role. It is checked before any resolution or
// mutation work.
var ErrPermissionDenied = errors.New("administrative privileges required")

const rootLong = `guestctl audits and converges the state of the built-in Guest account on the
local machine. The account is resolved by its well-known relative identifier
(501), so renames and localization never change which account is managed. By
default the account is ensured Disabled; --also-remove-from-administrators
additionally removes it from the built-in Administrators group.`

// NewRootCmd creates the root command with version info and flags bound.
func NewRootCmd(version, commit, date string) *cobra.Command {
	runtimeContainer := runtime.NewRuntime()

	cmd := &cobra.Command{
		Use:          "guestctl",
		Short:        "Audit and harden the built-in Guest account",
		Long:         rootLong,
		SilenceUsage: true,
	}

	cmd.Version = fmt.Sprintf("%s (Built on %s from Git SHA %s)", version, date, commit)

	cfgManager := configmanager.NewCommandConfigManager(cmd)

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		return runtimeContainer.Invoke(func(injector runtime.Injector) error {
			svc, err := runtime.ResolveDirectory(injector)
			if err != nil {
				return err
			}

			tmr, err := runtime.ResolveTimer(injector)
			if err != nil {
				return err
			}

			return HandleRootRunE(cmd, cfgManager, Deps{Directory: svc, Timer: tmr})
		})
	}

	return cmd
}

// Deps captures dependencies needed for the root command logic.
type Deps struct {
	// Directory is the local identity service.
	Directory directory.Service
	// Timer tracks activity durations for --timing output.
	Timer timer.Timer
	// ConfirmInput overrides the confirmation input stream. Defaults to the
	// command's stdin. This is primarily for testing purposes.
	ConfirmInput io.Reader
}

// HandleRootRunE handles the root command.
// Exported for testing purposes.
func HandleRootRunE(
	cmd *cobra.Command,
	cfgManager *configmanager.ConfigManager,
	deps Deps,
) error {
	writer := cmd.OutOrStdout()

	policy, err := cfgManager.LoadPolicy()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	if policy.AuditOnly && cmd.Flags().Changed(configmanager.EnsureFlagName) {
		notify.Warningf(writer, "audit-only: ignoring --%s", configmanager.EnsureFlagName)
	}

	// Privilege is checked before any resolution so a denied run can never
	// have partial effects.
	err = requireElevation(deps.Directory)
	if err != nil {
		return err
	}

	account, group, err := resolveIdentities(cmd, deps.Directory, writer)
	if err != nil {
		return err
	}

	notify.Infof(writer, "Account: %s (%s)", account.Name, account.ID)
	notify.Infof(writer, "State: %s", stateWord(account.Enabled))

	if policy.AuditOnly {
		return auditReport(cmd, cfgManager, deps, account, group)
	}

	confirmInput := deps.ConfirmInput
	if confirmInput == nil {
		confirmInput = cmd.InOrStdin()
	}

	gateController := gate.New(gate.Options{
		DryRun:  policy.DryRun,
		Confirm: policy.Confirm,
		In:      confirmInput,
		Out:     writer,
	})

	_, err = reconciler.
		New(deps.Directory, gateController, writer).
		Reconcile(cmd.Context(), account, group, policy)
	if err != nil {
		return err
	}

	reportSuccess(cfgManager, deps, writer, "converged")

	return nil
}

// requireElevation fails with ErrPermissionDenied when the invoking principal
// is not a member of the local administrative role.
func requireElevation(svc directory.Service) error {
	elevated, err := svc.IsElevated()
	if err != nil {
		return fmt.Errorf("check administrative privileges: %w", err)
	}

	if !elevated {
		return fmt.Errorf("%w: re-run guestctl from an elevated session", ErrPermissionDenied)
	}

	return nil
}

// resolveIdentities locates the Guest account and the Administrators group by
// their stable identifiers. A failed group translation is reported as a
// warning and the conventional name is used instead.
func resolveIdentities(
	cmd *cobra.Command,
	svc directory.Service,
	writer io.Writer,
) (directory.Account, directory.Group, error) {
	res := resolver.New(svc)

	account, err := res.AccountByWellKnownRID(cmd.Context(), sid.GuestRID)
	if err != nil {
		return directory.Account{}, directory.Group{}, fmt.Errorf("resolve guest account: %w", err)
	}

	group, err := res.GroupByStableID(
		cmd.Context(),
		sid.BuiltinAdministrators(),
		resolver.DefaultAdministratorsName,
	)
	if err != nil {
		notify.Warningf(writer, "%v; using conventional name %q", err, group.Name)
	}

	return account, group, nil
}

// auditReport prints the membership line and stops without mutating anything.
func auditReport(
	cmd *cobra.Command,
	cfgManager *configmanager.ConfigManager,
	deps Deps,
	account directory.Account,
	group directory.Group,
) error {
	writer := cmd.OutOrStdout()

	member, queryErr := inspector.New(deps.Directory).IsMember(cmd.Context(), group, account.ID)
	if queryErr != nil {
		notify.Warningf(writer, "membership query failed, reporting not a member: %v", queryErr)
	}

	notify.Infof(writer, "Member: %t (%s)", member, group.Name)
	reportSuccess(cfgManager, deps, writer, "audit complete")

	return nil
}

func reportSuccess(
	cfgManager *configmanager.ConfigManager,
	deps Deps,
	writer io.Writer,
	message string,
) {
	if cfgManager.Viper.GetBool(configmanager.TimingFlagName) && deps.Timer != nil {
		notify.SuccessWithTimerf(writer, deps.Timer, "%s", message)

		return
	}

	notify.Successf(writer, "%s", message)
}

func stateWord(enabled bool) string {
	if enabled {
		return "Enabled"
	}

	return "Disabled"
}
