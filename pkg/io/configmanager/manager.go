// Package configmanager layers guestctl configuration from defaults, an
// optional config file, environment variables, and flags, and decodes it into
// the typed policy.
package configmanager

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	v1alpha1 "github.com/devantler-tech/guestctl/pkg/apis/guest/v1alpha1"
	mapstructure "github.com/go-viper/mapstructure/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Flag names. The flag surface is the stable scripting interface; viper keys
// map onto the Policy field names.
const (
	EnsureFlagName     = "ensure"
	RemoveFlagName     = "also-remove-from-administrators"
	AuditOnlyFlagName  = "audit-only"
	DryRunFlagName     = "dry-run"
	ConfirmFlagName    = "confirm"
	TimingFlagName     = "timing"
	ConfigFileFlagName = "config"
)

const envPrefix = "GUESTCTL"

// ConfigManager binds flags, environment variables, and an optional config
// file into a v1alpha1.Policy.
type ConfigManager struct {
	// Viper is the underlying configuration registry, exposed so commands
	// can read ambient settings such as timing.
	Viper *viper.Viper

	command *cobra.Command
}

// NewCommandConfigManager constructs a ConfigManager bound to the given
// command: it registers the policy flags on the command and wires them into
// viper. Configuration priority: defaults < config file < environment <
// flags.
func NewCommandConfigManager(cmd *cobra.Command) *ConfigManager {
	viperInstance := viper.New()
	viperInstance.SetConfigName("guestctl")
	viperInstance.SetConfigType("yaml")
	viperInstance.AddConfigPath(".")
	viperInstance.SetEnvPrefix(envPrefix)
	viperInstance.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viperInstance.AutomaticEnv()

	manager := &ConfigManager{Viper: viperInstance, command: cmd}
	manager.addFlags(cmd)

	return manager
}

func (m *ConfigManager) addFlags(cmd *cobra.Command) {
	flags := cmd.Flags()

	registerPolicyFlags(flags)

	// Viper keys follow the Policy field names; flag names keep the CLI
	// surface stable.
	bindings := map[string]string{
		"ensure":                   EnsureFlagName,
		"removeFromAdministrators": RemoveFlagName,
		"auditOnly":                AuditOnlyFlagName,
		"dryRun":                   DryRunFlagName,
		"confirm":                  ConfirmFlagName,
		"timing":                   TimingFlagName,
	}

	for key, flagName := range bindings {
		_ = m.Viper.BindPFlag(key, flags.Lookup(flagName))
	}
}

func registerPolicyFlags(flags *pflag.FlagSet) {
	flags.String(
		EnsureFlagName,
		string(v1alpha1.DesiredStateDisabled),
		"Desired state of the Guest account (Disabled|Enabled)",
	)
	flags.Bool(
		RemoveFlagName,
		false,
		"Additionally remove the Guest account from the Administrators group",
	)
	flags.Bool(AuditOnlyFlagName, false, "Report current state without changing anything")
	flags.Bool(DryRunFlagName, false, "Log intended actions without executing them")
	flags.Bool(ConfirmFlagName, false, "Prompt before each change")
	flags.Bool(TimingFlagName, false, "Show timing output on success")
	flags.String(ConfigFileFlagName, "", "Path to a guestctl config file")
}

// LoadPolicy reads the layered configuration and decodes it into a validated
// Policy. A missing default config file is fine; an explicitly requested one
// must exist.
func (m *ConfigManager) LoadPolicy() (*v1alpha1.Policy, error) {
	configFile, err := m.command.Flags().GetString(ConfigFileFlagName)
	if err != nil {
		return nil, fmt.Errorf("read config flag: %w", err)
	}

	if configFile != "" {
		m.Viper.SetConfigFile(configFile)

		err = m.Viper.ReadInConfig()
		if err != nil {
			return nil, fmt.Errorf("read config file %q: %w", configFile, err)
		}
	} else {
		err = m.Viper.ReadInConfig()

		var notFound viper.ConfigFileNotFoundError
		if err != nil && !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	policy := v1alpha1.NewPolicy()

	err = m.Viper.Unmarshal(policy, viper.DecodeHook(desiredStateDecodeHook()))
	if err != nil {
		return nil, fmt.Errorf("decode policy: %w", err)
	}

	err = policy.Validate()
	if err != nil {
		return nil, err
	}

	return policy, nil
}

// desiredStateDecodeHook converts string config values into DesiredState,
// accepting any casing. Unknown values pass through unchanged so that
// Policy.Validate reports them with full context instead of a decode error.
func desiredStateDecodeHook() mapstructure.DecodeHookFuncType {
	return func(from reflect.Type, to reflect.Type, data any) (any, error) {
		if from.Kind() != reflect.String || to != reflect.TypeOf(v1alpha1.DesiredState("")) {
			return data, nil
		}

		raw, ok := data.(string)
		if !ok {
			return data, nil
		}

		parsed, err := v1alpha1.ParseDesiredState(raw)
		if err != nil {
			return v1alpha1.DesiredState(raw), nil
		}

		return parsed, nil
	}
}
