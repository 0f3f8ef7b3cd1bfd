package configmanager_test

import (
	"os"
	"path/filepath"
	"testing"

	v1alpha1 "github.com/devantler-tech/guestctl/pkg/apis/guest/v1alpha1"
	"github.com/devantler-tech/guestctl/pkg/io/configmanager"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupManager(t *testing.T) (*cobra.Command, *configmanager.ConfigManager) {
	t.Helper()

	cmd := &cobra.Command{Use: "guestctl"}
	manager := configmanager.NewCommandConfigManager(cmd)

	return cmd, manager
}

func TestLoadPolicy_Defaults(t *testing.T) {
	t.Parallel()

	_, manager := setupManager(t)

	policy, err := manager.LoadPolicy()
	require.NoError(t, err)

	assert.Equal(t, v1alpha1.DesiredStateDisabled, policy.Ensure)
	assert.False(t, policy.RemoveFromAdministrators)
	assert.False(t, policy.AuditOnly)
	assert.False(t, policy.DryRun)
	assert.False(t, policy.Confirm)
}

func TestLoadPolicy_Flags(t *testing.T) {
	t.Parallel()

	cmd, manager := setupManager(t)

	require.NoError(t, cmd.Flags().Set(configmanager.EnsureFlagName, "enabled"))
	require.NoError(t, cmd.Flags().Set(configmanager.RemoveFlagName, "true"))
	require.NoError(t, cmd.Flags().Set(configmanager.DryRunFlagName, "true"))

	policy, err := manager.LoadPolicy()
	require.NoError(t, err)

	assert.Equal(t, v1alpha1.DesiredStateEnabled, policy.Ensure)
	assert.True(t, policy.RemoveFromAdministrators)
	assert.True(t, policy.DryRun)
}

func TestLoadPolicy_InvalidEnsure(t *testing.T) {
	t.Parallel()

	cmd, manager := setupManager(t)

	require.NoError(t, cmd.Flags().Set(configmanager.EnsureFlagName, "Locked"))

	_, err := manager.LoadPolicy()
	require.ErrorIs(t, err, v1alpha1.ErrInvalidDesiredState)
}

func TestLoadPolicy_ConfigFile(t *testing.T) {
	t.Parallel()

	configPath := filepath.Join(t.TempDir(), "guestctl.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("ensure: Enabled\nauditOnly: true\n"), 0o600))

	cmd, manager := setupManager(t)
	require.NoError(t, cmd.Flags().Set(configmanager.ConfigFileFlagName, configPath))

	policy, err := manager.LoadPolicy()
	require.NoError(t, err)

	assert.Equal(t, v1alpha1.DesiredStateEnabled, policy.Ensure)
	assert.True(t, policy.AuditOnly)
}

func TestLoadPolicy_FlagsOverrideConfigFile(t *testing.T) {
	t.Parallel()

	configPath := filepath.Join(t.TempDir(), "guestctl.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("ensure: Enabled\n"), 0o600))

	cmd, manager := setupManager(t)
	require.NoError(t, cmd.Flags().Set(configmanager.ConfigFileFlagName, configPath))
	require.NoError(t, cmd.Flags().Set(configmanager.EnsureFlagName, "Disabled"))

	policy, err := manager.LoadPolicy()
	require.NoError(t, err)

	assert.Equal(t, v1alpha1.DesiredStateDisabled, policy.Ensure)
}

func TestLoadPolicy_MissingExplicitConfigFile(t *testing.T) {
	t.Parallel()

	cmd, manager := setupManager(t)
	require.NoError(t, cmd.Flags().Set(
		configmanager.ConfigFileFlagName,
		filepath.Join(t.TempDir(), "missing.yaml"),
	))

	_, err := manager.LoadPolicy()
	require.Error(t, err)
}

func TestLoadPolicy_Environment(t *testing.T) {
	t.Setenv("GUESTCTL_DRYRUN", "true")

	_, manager := setupManager(t)

	policy, err := manager.LoadPolicy()
	require.NoError(t, err)

	assert.True(t, policy.DryRun)
}
