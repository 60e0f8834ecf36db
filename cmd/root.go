package cmd

import (
	"context"
	"fmt"

	"github.com/jzelinskie/cobrautil/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/kubev2v/installer-driver/internal/config"
)

// NewRootCommand builds the installer-driver command tree.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "installer-driver",
		Short:         "Drive the vCenter plugin installer through its prompts and record the outcome",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: cobrautil.CommandStack(
			cobrautil.SyncViperPreRunE(config.EnvPrefix),
			setupLogging,
		),
	}

	registerGlobalFlags(root.PersistentFlags())

	root.AddCommand(
		NewInstallCommand(),
		NewUninstallCommand(),
		NewUITestsCommand(),
		NewHSUIATestsCommand(),
		NewMatrixCommand(),
		NewThumbprintCommand(),
		NewPreflightCommand(),
		NewHistoryCommand(),
		NewImageCommand(),
	)

	return root
}

func Execute(ctx context.Context) error {
	defer func() { _ = zap.L().Sync() }()
	return NewRootCommand().ExecuteContext(ctx)
}

func registerGlobalFlags(flags *pflag.FlagSet) {
	defaults := config.NewConfigurationWithOptionsAndDefaults()

	flags.String(config.KeyHost, defaults.Target.Host, "vCenter address typed at the host prompt")
	flags.String(config.KeyUsername, defaults.Target.Username, "vCenter administrator username")
	flags.String(config.KeyPassword, defaults.Target.Password, "vCenter administrator password")
	flags.Bool(config.KeyTrustFingerprint, defaults.Target.TrustFingerprint, "answer yes to the trust prompt")
	flags.String(config.KeyFingerprint, defaults.Target.Fingerprint, "SHA-1 thumbprint typed when the fingerprint is not trusted")

	flags.String(config.KeyInstallerDir, defaults.Installer.Dir, "directory holding install.sh and uninstall.sh")
	flags.String(config.KeyLogDir, defaults.Installer.LogDir, "directory receiving <operation>.log")
	flags.Duration(config.KeyTimeout, defaults.Installer.Timeout, "bound on every prompt wait")

	flags.String(config.KeyRunnerCommand, defaults.Runner.Command, "build tool running the NGC/UI tests")
	flags.StringSlice(config.KeyRunnerArgs, defaults.Runner.Args, "arguments passed to the build tool before the credentials")
	flags.String(config.KeyRunnerParamPrefix, defaults.Runner.ParamPrefix, "prefix of the credential parameters")
	flags.String(config.KeyRunnerHostParam, defaults.Runner.HostParam, "build property receiving the host, empty to leave it out")
	flags.String(config.KeyRunnerUsernameParam, defaults.Runner.UsernameParam, "build property receiving the username")
	flags.String(config.KeyRunnerPasswordParam, defaults.Runner.PasswordParam, "build property receiving the password")
	flags.String(config.KeyRunnerRunlist, defaults.Runner.Runlist, "runlist of the HSUIA build")
	flags.String(config.KeyRunnerDir, defaults.Runner.Dir, "working directory of the build tool")
	flags.String(config.KeyRunnerUIRoot, defaults.Runner.UIRoot, "UI source root; when set the test project is picked from the testbed information")
	flags.String(config.KeyTestbedInfo, defaults.Runner.TestbedInfo, "testbed information file read when runner-ui-root is set")
	flags.Duration(config.KeyLongTimeout, defaults.Runner.Timeout, "bound on the NGC/UI test run")

	flags.String(config.KeyDB, defaults.Store.Path, "run history database, empty to disable")
	flags.String(config.KeyEnvironment, defaults.Environment, "deployment environment: dev, stage or prod")
	flags.String(config.KeyLogFormat, defaults.LogFormat, "log format: console or json")
	flags.String(config.KeyLogLevel, defaults.LogLevel, "log level")
}

// loadConfig reads the flags, already synced with INSTALLER_DRIVER_*
// variables, into a validated configuration.
func loadConfig(cmd *cobra.Command) (*config.Configuration, error) {
	v := viper.New()
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return nil, fmt.Errorf("failed to bind flags: %w", err)
	}

	cfg := config.Load(v)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	zap.S().Named("cmd").Debugw("configuration loaded", "config", cfg.DebugMap())

	return cfg, nil
}
