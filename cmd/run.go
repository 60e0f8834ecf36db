package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kubev2v/installer-driver/internal/config"
	"github.com/kubev2v/installer-driver/internal/driver"
	"github.com/kubev2v/installer-driver/internal/models"
	"github.com/kubev2v/installer-driver/internal/runner"
	"github.com/kubev2v/installer-driver/internal/services"
	"github.com/kubev2v/installer-driver/internal/store"
)

const (
	flagExpectFailure = "expect-failure"
	flagForce         = "force"
)

// openStore opens and migrates the run history. A nil store means history
// is disabled.
func openStore(ctx context.Context, cfg *config.Configuration) (*store.Store, error) {
	if cfg.Store.Path == "" {
		return nil, nil
	}
	db, err := store.NewDB(cfg.Store.Path)
	if err != nil {
		return nil, err
	}
	s := store.NewStore(db)
	if err := s.Migrate(ctx); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("failed to migrate run history: %w", err)
	}
	return s, nil
}

func newDriver(cfg *config.Configuration, logDir string) *driver.Driver {
	return driver.New(cfg.Installer.Dir,
		driver.WithLogDir(logDir),
		driver.WithTimeout(cfg.Installer.Timeout),
	)
}

func newRunner(cfg *config.Configuration, logDir string) *runner.Runner {
	return runner.New(
		runner.WithCommand(cfg.Runner.Command, cfg.Runner.Args...),
		runner.WithParamPrefix(cfg.Runner.ParamPrefix),
		runner.WithParamNames(cfg.Runner.HostParam, cfg.Runner.UsernameParam, cfg.Runner.PasswordParam),
		runner.WithRunlist(cfg.Runner.Runlist),
		runner.WithDir(cfg.Runner.Dir),
		runner.WithLogDir(logDir),
		runner.WithTimeout(cfg.Runner.Timeout),
	)
}

// resolveRunnerDir points the runner at the test project picked from the
// testbed information when a UI source root is configured.
func resolveRunnerDir(cfg *config.Configuration) error {
	if cfg.Runner.UIRoot == "" {
		return nil
	}
	dir, err := runner.ResolveTestDir(cfg.Runner.UIRoot, cfg.Runner.TestbedInfo)
	if err != nil {
		return err
	}
	zap.S().Named("cmd").Infow("ui test project selected", "dir", dir, "testbed_info", cfg.Runner.TestbedInfo)
	cfg.Runner.Dir = dir
	return nil
}

// withRunService loads the configuration, opens the history and hands a
// RunService to fn. The run is printed and a run that did not end as
// expected fails the command.
func withRunService(cmd *cobra.Command, op models.Operation, fn func(ctx context.Context, cfg *config.Configuration, svc *services.RunService) (*models.Run, error)) error {
	ctx := cmd.Context()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if op.IsUITests() {
		if err := resolveRunnerDir(cfg); err != nil {
			return err
		}
	}

	st, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	var recorder services.RunRecorder
	if st != nil {
		defer st.Close()
		recorder = st.Runs()
	}

	svc := services.NewRunService(newDriver(cfg, cfg.Installer.LogDir), newRunner(cfg, cfg.Installer.LogDir), recorder)

	run, err := fn(ctx, cfg, svc)
	if run != nil {
		printRun(cmd.OutOrStdout(), run)
	}
	if err != nil {
		return err
	}
	if !run.Passed() {
		return fmt.Errorf("%s ended with outcome %s", run.Operation, displayOutcome(run.Outcome))
	}
	return nil
}

func NewInstallCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "install",
		Short: "Run install.sh against the target vCenter",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			expectFailure, _ := cmd.Flags().GetBool(flagExpectFailure)
			force, _ := cmd.Flags().GetBool(flagForce)

			return withRunService(cmd, models.OperationInstall, func(ctx context.Context, cfg *config.Configuration, svc *services.RunService) (*models.Run, error) {
				if err := cfg.ValidateTarget(); err != nil {
					return nil, err
				}
				zap.S().Named("cmd").Infow("installing plugin", "host", cfg.Target.Host, "force", force, "expect_failure", expectFailure)
				return svc.Install(ctx, cfg.ModelTarget(), expectFailure, force)
			})
		},
	}
	cmd.Flags().Bool(flagExpectFailure, false, "expect the installer to report an error")
	cmd.Flags().Bool(flagForce, false, "pass --force to install.sh")
	return cmd
}

func NewUninstallCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "uninstall",
		Short: "Run uninstall.sh against the target vCenter",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			expectFailure, _ := cmd.Flags().GetBool(flagExpectFailure)

			return withRunService(cmd, models.OperationUninstall, func(ctx context.Context, cfg *config.Configuration, svc *services.RunService) (*models.Run, error) {
				if err := cfg.ValidateTarget(); err != nil {
					return nil, err
				}
				zap.S().Named("cmd").Infow("uninstalling plugin", "host", cfg.Target.Host, "expect_failure", expectFailure)
				return svc.Uninstall(ctx, cfg.ModelTarget(), expectFailure)
			})
		},
	}
	cmd.Flags().Bool(flagExpectFailure, false, "expect the uninstaller to report an error")
	return cmd
}

func NewUITestsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ui-tests",
		Short: "Run the NGC/UI test build against the target vCenter",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withRunService(cmd, models.OperationUITests, func(ctx context.Context, cfg *config.Configuration, svc *services.RunService) (*models.Run, error) {
				zap.S().Named("cmd").Infow("running ui tests", "host", cfg.Target.Host, "command", cfg.Runner.Command)
				return svc.UITests(ctx, cfg.ModelTarget())
			})
		},
	}
}

func NewHSUIATestsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "hsuia-tests",
		Short: "Run the HSUIA test build on its runlist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withRunService(cmd, models.OperationHSUIA, func(ctx context.Context, cfg *config.Configuration, svc *services.RunService) (*models.Run, error) {
				zap.S().Named("cmd").Infow("running hsuia tests", "runlist", cfg.Runner.Runlist, "command", cfg.Runner.Command)
				return svc.HSUIATests(ctx, cfg.ModelTarget())
			})
		},
	}
}
