package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kubev2v/installer-driver/internal/config"
	srvErrors "github.com/kubev2v/installer-driver/pkg/errors"
	"github.com/kubev2v/installer-driver/pkg/vmware"
)

func NewThumbprintCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "thumbprint",
		Short: "Print the SHA-1 thumbprint the installer expects for the target vCenter",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cfg.Target.Host == "" {
				return srvErrors.NewConfigurationError(config.KeyHost, "target vCenter host is empty")
			}

			thumbprint, err := vmware.Thumbprint(cfg.Target.Host)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), thumbprint)
			return nil
		},
	}
}

func NewPreflightCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preflight",
		Short: "Check that the target vCenter accepts the credentials before driving the installer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			maxWait, _ := cmd.Flags().GetDuration("max-wait")
			checkPrivileges, _ := cmd.Flags().GetBool("check-privileges")
			extensionKey, _ := cmd.Flags().GetString("extension-key")

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cfg.Target.Host == "" {
				return srvErrors.NewConfigurationError(config.KeyHost, "target vCenter host is empty")
			}

			report, err := vmware.Preflight(ctx, cfg.Target.Host, cfg.Target.Username, cfg.Target.Password, maxWait)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s\n", passColor.Sprint("host"), report.Host)
			fmt.Fprintf(out, "%s %s (%s, api %s)\n", passColor.Sprint("product"), report.Product, report.Version, report.APIVersion)
			fmt.Fprintf(out, "%s %s\n", passColor.Sprint("thumbprint"), report.Thumbprint)

			if !cfg.Target.TrustFingerprint && cfg.Target.Fingerprint != "" && cfg.Target.Fingerprint != report.Thumbprint {
				zap.S().Named("cmd").Warnw("configured fingerprint does not match the host", "configured", cfg.Target.Fingerprint, "actual", report.Thumbprint)
				fmt.Fprintf(out, "%s configured fingerprint differs from the host thumbprint\n", failColor.Sprint("warning"))
			}

			if !checkPrivileges && extensionKey == "" {
				return nil
			}

			c, err := vmware.Login(ctx, cfg.Target.Host, cfg.Target.Username, cfg.Target.Password)
			if err != nil {
				return err
			}
			defer func() { _ = c.Logout(ctx) }()

			if checkPrivileges {
				if err := vmware.ValidatePluginPrivileges(ctx, c.Client, cfg.Target.Username); err != nil {
					return err
				}
				fmt.Fprintf(out, "%s %v\n", passColor.Sprint("privileges"), vmware.PluginPrivileges)
			}

			if extensionKey != "" {
				registered, err := vmware.IsRegistered(ctx, c.Client, extensionKey)
				if err != nil {
					return err
				}
				state := dimColor.Sprint("not registered")
				if registered {
					state = passColor.Sprint("registered")
				}
				fmt.Fprintf(out, "%s %s %s\n", passColor.Sprint("extension"), extensionKey, state)
			}
			return nil
		},
	}
	cmd.Flags().Duration("max-wait", 2*time.Minute, "how long to retry an unreachable vCenter")
	cmd.Flags().Bool("check-privileges", false, "also check the extension privileges of the user")
	cmd.Flags().String("extension-key", "", "also report whether this plugin extension key is registered")
	return cmd
}
